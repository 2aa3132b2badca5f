// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stacklok/skillctl/editors"
	"github.com/stacklok/skillctl/skillerr"
)

func parseEditors(names []string) ([]editors.Target, error) {
	targets, err := editors.ParseTargets(names)
	if err != nil {
		return nil, skillerr.WithKind(err, skillerr.KindValidation)
	}
	return targets, nil
}

func newInitCmd(c *cli) *cobra.Command {
	var names []string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the skills manifest for this project",
		Long: `Create skills.json in the project directory. Without --editors the editors
whose configuration directory exists in the project are activated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targets, err := parseEditors(names)
			if err != nil {
				return err
			}
			mgr, err := c.manager("")
			if err != nil {
				return err
			}

			mf, err := mgr.Init(targets)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created %s\n", mgr.ManifestPath())
			if len(mf.ActiveEditors) == 0 {
				fmt.Fprintln(out, "No editors detected; run 'skillctl sync --editors NAME' to add one.")
				return nil
			}
			fmt.Fprintf(out, "Active editors: %s\n", strings.Join(editors.Names(mf.ActiveEditors), ", "))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&names, "editors", nil, "Editors to activate (default: detected)")
	return cmd
}

func newSyncCmd(c *cli) *cobra.Command {
	var names []string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Write references for every installed skill into editor configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targets, err := parseEditors(names)
			if err != nil {
				return err
			}
			mgr, err := c.manager("")
			if err != nil {
				return err
			}
			if err := mgr.Sync(targets); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Editor configuration is up to date.")
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&names, "editors", nil, "Editors to sync and activate (default: active editors)")
	return cmd
}
