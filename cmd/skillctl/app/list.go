// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stacklok/skillctl/filter"
	"github.com/stacklok/skillctl/skillerr"
	"github.com/stacklok/skillctl/skills"
)

func newListCmd(c *cli) *cobra.Command {
	var (
		expr   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List installed skills and their integrity",
		Long: `List installed skills. --filter takes a CEL expression over name, url, hash,
local_path, last_updated, verified, repository and branch.`,
		Example: `  skillctl list --filter '!verified'
  skillctl list --filter 'name.startsWith("auth")' --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := filter.Compile(expr)
			if err != nil {
				return skillerr.WithKind(err, skillerr.KindValidation)
			}
			mgr, err := c.manager("")
			if err != nil {
				return err
			}

			rows, err := mgr.List(f)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if rows == nil {
					rows = []skills.Row{}
				}
				return printJSON(out, rows)
			}
			if len(rows) == 0 {
				fmt.Fprintln(out, "No skills installed. Use 'skillctl add URL --skill NAME' to add one.")
				return nil
			}

			table := make([][]string, 0, len(rows))
			for _, r := range rows {
				table = append(table, []string{r.Name, integrity(r), shortHash(r.Hash), updated(r.LastUpdated), r.URL})
			}
			return printTable(out, []string{"NAME", "STATUS", "HASH", "UPDATED", "URL"}, table)
		},
	}

	cmd.Flags().StringVarP(&expr, "filter", "f", "", "CEL filter expression")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func integrity(r skills.Row) string {
	switch {
	case !r.Tracked:
		return "untracked"
	case r.Verified:
		return "ok"
	default:
		return "modified"
	}
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

func updated(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.RFC3339)
}
