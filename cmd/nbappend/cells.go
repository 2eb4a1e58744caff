package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/ukaji3/nbappend-go/pkg/nbappend"
	"github.com/ukaji3/nbappend-go/pkg/nbappend/output"
)

// maxFirstLine is the width of the first-line column in text listings.
const maxFirstLine = 60

func (a *app) newCellsCmd() *cobra.Command {
	var (
		xlsxPath string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "cells [notebook.ipynb]",
		Short: "List the cells of a notebook",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.notebookPath(args)
			doc, err := nbappend.Load(a.fs, path)
			if err != nil {
				return err
			}
			summaries := doc.Summaries()

			if xlsxPath != "" {
				if err := output.WriteInventoryXLSX(a.fs, xlsxPath, summaries); err != nil {
					return fmt.Errorf("failed to write inventory: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d cells to %s\n", len(summaries), xlsxPath)
				return nil
			}

			if asJSON {
				data, err := json.MarshalIndent(summaries, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "INDEX\tTYPE\tLINES\tEXEC\tOUTPUTS\tFIRST LINE")
			for _, s := range summaries {
				exec := "-"
				if s.ExecutionCount != nil {
					exec = fmt.Sprint(*s.ExecutionCount)
				}
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%d\t%s\n", s.Index, s.CellType, s.Lines, exec, s.Outputs, truncate(s.FirstLine, maxFirstLine))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Write the cell inventory to an xlsx file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the cell inventory as JSON")

	return cmd
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
