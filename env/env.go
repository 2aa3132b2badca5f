// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package env

import "strings"

// Prefix is prepended to every settings key to form its environment variable.
const Prefix = "SKILLCTL"

// KeyReplacer maps nested settings keys onto variable names.
var KeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// Var returns the environment variable that overrides the settings key.
func Var(key string) string {
	return Prefix + "_" + strings.ToUpper(KeyReplacer.Replace(key))
}
