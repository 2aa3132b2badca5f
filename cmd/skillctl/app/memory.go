// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stacklok/skillctl/memory"
	"github.com/stacklok/skillctl/skillerr"
)

func newMemoryCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Manage notes shared with every active editor",
	}

	var priority int
	learn := &cobra.Command{
		Use:   "learn TEXT...",
		Short: "Remember a note",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := c.manager("")
			if err != nil {
				return err
			}
			entry, err := mgr.Learn(strings.Join(args, " "), priority)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved memory %s\n", entry.ID)
			return nil
		},
	}
	learn.Flags().IntVar(&priority, "priority", 0, "Higher priorities are listed first")

	forget := &cobra.Command{
		Use:   "forget ID",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := c.manager("")
			if err != nil {
				return err
			}
			removed, err := mgr.Forget(args[0])
			if err != nil {
				return err
			}
			if !removed {
				return skillerr.WithKind(fmt.Errorf("memory %s not found", args[0]), skillerr.KindNotFound)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted memory %s\n", args[0])
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List notes in context order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, err := c.manager("")
			if err != nil {
				return err
			}
			entries, err := mgr.Memories()
			if err != nil {
				return err
			}
			return printMemories(cmd.OutOrStdout(), entries)
		},
	}

	search := &cobra.Command{
		Use:   "search QUERY",
		Short: "Find notes containing QUERY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := c.manager("")
			if err != nil {
				return err
			}
			entries, err := mgr.SearchMemories(args[0])
			if err != nil {
				return err
			}
			return printMemories(cmd.OutOrStdout(), entries)
		},
	}

	cmd.AddCommand(learn, forget, list, search)
	return cmd
}

func printMemories(w io.Writer, entries []memory.Entry) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No memories found.")
		return nil
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.ID, strconv.Itoa(e.Priority), e.Content})
	}
	return printTable(w, []string{"ID", "PRIORITY", "CONTENT"}, rows)
}
