// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package app provides the skillctl command tree.
package app

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stacklok/skillctl/config"
	"github.com/stacklok/skillctl/fetch"
	"github.com/stacklok/skillctl/logging"
	"github.com/stacklok/skillctl/skills"
)

const settingsFlag = "config"

// cli holds the state shared by every command of one invocation.
type cli struct {
	v        *viper.Viper
	settings *config.Settings
	logger   *slog.Logger

	// interactive reports whether overwrites may be confirmed on the terminal.
	interactive func() bool
	// transport overrides the HTTP transport of the fetch client.
	transport fetch.Option
}

// NewRootCmd creates the skillctl root command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&cli{v: viper.New(), interactive: stdinIsTerminal})
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "skillctl",
		Short: "Install AI agent skills from remote repositories",
		Long: `skillctl downloads skills from code repositories, stores them in a
hash-verified local store and references them from the configuration of
every active editor in the project.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		PersistentPreRunE: c.setup,
	}

	flags := root.PersistentFlags()
	flags.StringP("project-dir", "C", ".", "Project directory")
	flags.String("manifest", config.DefaultManifestFile, "Manifest file, relative to the project directory")
	flags.BoolP("yes", "y", false, "Overwrite changed skills without asking")
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flags.String("log-format", "text", "Log format (text, json)")
	flags.String("injection-format", "legacy", "Shared-file injection format (legacy, fenced)")
	flags.String(settingsFlag, "", "Settings file (default "+config.SettingsFile()+")")

	bindings := map[string]string{
		config.KeyProjectDir:      "project-dir",
		config.KeyManifestFile:    "manifest",
		config.KeyAssumeYes:       "yes",
		config.KeyLogLevel:        "log-level",
		config.KeyLogFormat:       "log-format",
		config.KeyInjectionFormat: "injection-format",
	}
	for key, name := range bindings {
		if err := c.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			slog.Error("Error binding flag", "flag", name, "error", err)
		}
	}

	root.AddCommand(
		newInitCmd(c),
		newAddCmd(c),
		newRemoveCmd(c),
		newInstallCmd(c),
		newUpdateCmd(c),
		newSyncCmd(c),
		newListCmd(c),
		newMemoryCmd(c),
		newVersionCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	file, err := cmd.Flags().GetString(settingsFlag)
	if err != nil {
		return err
	}

	s, err := config.LoadSettings(c.v, file)
	if err != nil {
		return err
	}
	c.settings = s

	level, _ := logging.ParseLevel(s.LogLevel)
	c.logger = logging.New(
		logging.WithLevel(level),
		logging.WithFormat(logging.ParseFormat(s.LogFormat)),
		logging.WithOutput(cmd.ErrOrStderr()),
	)
	slog.SetDefault(c.logger)
	c.logger.Debug("resolved settings", "project_dir", s.ProjectDir, "manifest", s.ManifestPath(),
		"injection_format", s.InjectionFormat)
	return nil
}

// manager builds the skill manager. A non-empty branch replaces the
// configured branch list.
func (c *cli) manager(branch string) (*skills.Manager, error) {
	opts := []fetch.Option{
		fetch.WithTimeout(c.settings.HTTPTimeout),
		fetch.WithLogger(c.logger),
	}
	if c.transport != nil {
		opts = append(opts, c.transport)
	}

	client, err := fetch.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP client: %w", err)
	}

	branches := c.settings.Branches
	if branch != "" {
		branches = []string{branch}
	}
	resolver := fetch.NewResolver(client, append(opts, fetch.WithBranches(branches...))...)

	var confirmer skills.Confirmer
	if c.interactive != nil && c.interactive() {
		confirmer = promptConfirmer{}
	}

	return skills.New(c.settings.ProjectDir, c.settings.ManifestPath(),
		skills.WithResolver(resolver),
		skills.WithDownloader(client),
		skills.WithConfirmer(confirmer),
		skills.WithAssumeYes(c.settings.AssumeYes),
		skills.WithInjectionFormat(c.settings.Format()),
		skills.WithLogger(c.logger),
	)
}
