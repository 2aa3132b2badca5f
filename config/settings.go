// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/stacklok/skillctl/env"
	"github.com/stacklok/skillctl/fetch"
	"github.com/stacklok/skillctl/inject"
	"github.com/stacklok/skillctl/logging"
	"github.com/stacklok/skillctl/skillerr"
)

// Settings keys, shared by flags, the settings file and environment
// variables (see env.Var).
const (
	KeyProjectDir      = "project_dir"
	KeyManifestFile    = "manifest_file"
	KeyAssumeYes       = "yes"
	KeyLogLevel        = "log_level"
	KeyLogFormat       = "log_format"
	KeyInjectionFormat = "injection_format"
	KeyBranches        = "branches"
	KeyHTTPTimeout     = "http_timeout"
)

// Settings are the resolved process options.
type Settings struct {
	ProjectDir      string        `mapstructure:"project_dir"`
	ManifestFile    string        `mapstructure:"manifest_file"`
	AssumeYes       bool          `mapstructure:"yes"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFormat       string        `mapstructure:"log_format"`
	InjectionFormat string        `mapstructure:"injection_format"`
	Branches        []string      `mapstructure:"branches"`
	HTTPTimeout     time.Duration `mapstructure:"http_timeout"`
}

// SettingsFile returns the default user settings file location.
func SettingsFile() string {
	return filepath.Join(xdg.ConfigHome, "skillctl", "config.yaml")
}

// SetDefaults registers the default value of every settings key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyProjectDir, ".")
	v.SetDefault(KeyManifestFile, DefaultManifestFile)
	v.SetDefault(KeyAssumeYes, false)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyInjectionFormat, inject.FormatLegacy.String())
	v.SetDefault(KeyBranches, fetch.DefaultBranches())
	v.SetDefault(KeyHTTPTimeout, fetch.DefaultTimeout)
}

// LoadSettings resolves settings from v. The settings file at file (or
// SettingsFile when empty) is read when present. SKILLCTL_* environment
// variables override it, and flags bound to v override both.
func LoadSettings(v *viper.Viper, file string) (*Settings, error) {
	SetDefaults(v)
	v.SetEnvPrefix(env.Prefix)
	v.SetEnvKeyReplacer(env.KeyReplacer)
	v.AutomaticEnv()

	if file == "" {
		file = SettingsFile()
	}
	v.SetConfigFile(file)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, skillerr.WithKind(fmt.Errorf("reading settings file %s: %w", file, err), skillerr.KindValidation)
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, skillerr.WithKind(fmt.Errorf("failed to unmarshal settings: %w", err), skillerr.KindValidation)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks values that have a closed set of options.
func (s *Settings) Validate() error {
	if _, ok := logging.ParseLevel(s.LogLevel); !ok {
		return skillerr.WithKind(fmt.Errorf("invalid log level %q (expected debug, info, warn or error)", s.LogLevel),
			skillerr.KindValidation)
	}
	if s.LogFormat != "text" && s.LogFormat != "json" {
		return skillerr.WithKind(fmt.Errorf("invalid log format %q (expected text or json)", s.LogFormat),
			skillerr.KindValidation)
	}
	if _, err := inject.ParseFormat(s.InjectionFormat); err != nil {
		return skillerr.WithKind(err, skillerr.KindValidation)
	}
	if s.HTTPTimeout <= 0 {
		return skillerr.WithKind(fmt.Errorf("invalid http timeout %s", s.HTTPTimeout), skillerr.KindValidation)
	}
	return nil
}

// ManifestPath returns the manifest location inside the project directory.
func (s *Settings) ManifestPath() string {
	if filepath.IsAbs(s.ManifestFile) {
		return s.ManifestFile
	}
	return filepath.Join(s.ProjectDir, s.ManifestFile)
}

// Format returns the parsed injection format.
func (s *Settings) Format() inject.Format {
	f, _ := inject.ParseFormat(s.InjectionFormat)
	return f
}
