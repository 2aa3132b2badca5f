// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/stacklok/skillctl/skills"
)

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	cells := make([]any, len(header))
	for i, h := range header {
		cells[i] = h
	}
	table.Header(cells...)
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}
	return nil
}

// printResults writes one line per skill result. Failed results are
// included; the caller returns the joined error.
func printResults(w io.Writer, results []skills.Result) {
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%s: %s (%v)\n", r.Name, r.Status, r.Err)
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", r.Name, r.Status)
	}
}
