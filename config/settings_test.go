// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/skillctl/env"
	"github.com/stacklok/skillctl/inject"
	"github.com/stacklok/skillctl/skillerr"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSettings_Defaults(t *testing.T) {
	t.Parallel()

	s, err := LoadSettings(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ".", s.ProjectDir)
	assert.Equal(t, DefaultManifestFile, s.ManifestFile)
	assert.False(t, s.AssumeYes)
	assert.Equal(t, "warn", s.LogLevel)
	assert.Equal(t, "text", s.LogFormat)
	assert.Equal(t, inject.FormatLegacy, s.Format())
	assert.Equal(t, []string{"main", "master"}, s.Branches)
	assert.Equal(t, 30*time.Second, s.HTTPTimeout)
	assert.Equal(t, DefaultManifestFile, filepath.Base(s.ManifestPath()))
}

func TestLoadSettings_FileThenEnvThenFlags(t *testing.T) { //nolint:paralleltest // Modifies environment variables
	file := writeSettings(t, "log_level: info\ninjection_format: fenced\nbranches: [trunk]\nhttp_timeout: 45s\nproject_dir: /from/file\n")

	t.Setenv(env.Var(KeyLogLevel), "debug")
	t.Setenv(env.Var(KeyProjectDir), "/from/env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("project-dir", ".", "")
	require.NoError(t, flags.Parse([]string{"--project-dir", "/from/flag"}))

	v := viper.New()
	require.NoError(t, v.BindPFlag(KeyProjectDir, flags.Lookup("project-dir")))

	s, err := LoadSettings(v, file)
	require.NoError(t, err)

	assert.Equal(t, "debug", s.LogLevel, "environment overrides the settings file")
	assert.Equal(t, inject.FormatFenced, s.Format(), "settings file overrides defaults")
	assert.Equal(t, []string{"trunk"}, s.Branches)
	assert.Equal(t, 45*time.Second, s.HTTPTimeout)
	assert.Equal(t, "/from/flag", s.ProjectDir, "flags override the environment")
	assert.Equal(t, filepath.Join("/from/flag", DefaultManifestFile), s.ManifestPath())
}

func TestLoadSettings_EnvironmentCoversEveryKey(t *testing.T) { //nolint:paralleltest // Modifies environment variables
	file := writeSettings(t, "yes: false\nbranches: [trunk]\nhttp_timeout: 45s\n")

	t.Setenv(env.Var(KeyAssumeYes), "true")
	t.Setenv(env.Var(KeyBranches), "dev,release")
	t.Setenv(env.Var(KeyHTTPTimeout), "5s")
	t.Setenv(env.Var(KeyManifestFile), "agents.json")
	t.Setenv(env.Var(KeyLogFormat), "json")

	s, err := LoadSettings(viper.New(), file)
	require.NoError(t, err)

	assert.True(t, s.AssumeYes)
	assert.Equal(t, []string{"dev", "release"}, s.Branches)
	assert.Equal(t, 5*time.Second, s.HTTPTimeout)
	assert.Equal(t, "agents.json", s.ManifestFile)
	assert.Equal(t, "json", s.LogFormat)
}

func TestLoadSettings_InvalidEnvironment(t *testing.T) { //nolint:paralleltest // Modifies environment variables
	t.Setenv(env.Var(KeyInjectionFormat), "yaml")

	_, err := LoadSettings(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, skillerr.KindValidation, skillerr.KindOf(err))
}

func TestLoadSettings_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"log level", "log_level: loud\n"},
		{"log format", "log_format: xml\n"},
		{"injection format", "injection_format: yaml\n"},
		{"malformed yaml", "log_level: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadSettings(viper.New(), writeSettings(t, tt.content))
			require.Error(t, err)
			assert.Equal(t, skillerr.KindValidation, skillerr.KindOf(err))
		})
	}
}

func TestSettingsFile(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join("skillctl", "config.yaml"),
		filepath.Join(filepath.Base(filepath.Dir(SettingsFile())), filepath.Base(SettingsFile())))
}
