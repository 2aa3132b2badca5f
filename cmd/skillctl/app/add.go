// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stacklok/skillctl/skills"
)

func newAddCmd(c *cli) *cobra.Command {
	var (
		skill  string
		path   string
		branch string
	)

	cmd := &cobra.Command{
		Use:   "add REPOSITORY_URL --skill NAME",
		Short: "Download a skill and reference it from every active editor",
		Long: `Download a skill from a repository, store it and inject a reference to it
into every active editor.

Without --path the conventional skill locations are tried in order on each
configured branch (main, then master). With --branch only that branch is tried.`,
		Example: `  skillctl add https://github.com/acme/skills --skill auth-helper
  skillctl add https://github.com/acme/skills --skill auth-helper --path docs/auth/SKILL.md --branch dev`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := c.manager(branch)
			if err != nil {
				return err
			}

			res, err := mgr.Add(cmd.Context(), skills.AddRequest{Repository: args[0], Skill: skill, Path: path})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch res.Status {
			case skills.StatusUnchanged:
				fmt.Fprintf(out, "%s is already up to date\n", res.Name)
			case skills.StatusDeclined:
				fmt.Fprintf(out, "Kept the installed copy of %s\n", res.Name)
			default:
				fmt.Fprintf(out, "%s %s from %s\n", res.Name, res.Status, res.Entry.URL)
			}
			if res.Description != "" {
				fmt.Fprintf(out, "  %s\n", res.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&skill, "skill", "s", "", "Skill name")
	cmd.Flags().StringVarP(&path, "path", "p", "", "Repository-relative path of the skill file")
	cmd.Flags().StringVarP(&branch, "branch", "b", "", "Branch to fetch from")
	_ = cmd.MarkFlagRequired("skill")
	return cmd
}

func newRemoveCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "remove NAME...",
		Aliases: []string{"rm"},
		Short:   "Uninstall skills and remove their editor references",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := c.manager("")
			if err != nil {
				return err
			}
			results, err := mgr.Remove(args...)
			printResults(cmd.OutOrStdout(), results)
			return err
		},
	}
}

func newInstallCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Verify installed skills and download missing or modified ones again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, err := c.manager("")
			if err != nil {
				return err
			}
			results, err := mgr.Restore(cmd.Context())
			printResults(cmd.OutOrStdout(), results)
			return err
		},
	}
}

func newUpdateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "update [NAME...]",
		Short: "Download installed skills again and apply upstream changes",
		Long: `Download each named skill, or every installed skill, from its recorded URL.
Changed content replaces the installed copy after confirmation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := c.manager("")
			if err != nil {
				return err
			}
			results, err := mgr.Update(cmd.Context(), args...)
			printResults(cmd.OutOrStdout(), results)
			return err
		},
	}
}
