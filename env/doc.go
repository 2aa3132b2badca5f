// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package env names the environment variables that override skillctl settings.

Every settings key has a variable formed from [Prefix] and the upper-cased
key, so "log_level" is read from SKILLCTL_LOG_LEVEL and "http_timeout" from
SKILLCTL_HTTP_TIMEOUT. The config package hands [Prefix] and [KeyReplacer]
to viper, which performs the lookup:

	v.SetEnvPrefix(env.Prefix)
	v.SetEnvKeyReplacer(env.KeyReplacer)
	v.AutomaticEnv()

[Var] returns the variable for a key, for help text and tests.
*/
package env
