package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deen-commerce/orderlink/internal/model"
	"github.com/deen-commerce/orderlink/internal/store"
)

var (
	runsLimit  int
	runsStatus string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded conversion runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		runs, err := st.ListRuns(ctx, store.RunFilter{
			Status: model.RunStatus(runsStatus),
			Limit:  runsLimit,
		})
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			fmt.Println("no runs recorded")
			return nil
		}

		for _, run := range runs {
			line := fmt.Sprintf("%s  %-8s  %-19s  %s",
				run.ID, run.Status, run.CreatedAt.Format("2006-01-02 15:04:05"), run.Input)
			if run.Summary != nil {
				line += fmt.Sprintf("  rows=%d groups=%d skipped=%d errors=%d",
					run.Summary.Rows, run.Summary.Groups, run.Summary.SkippedRows, len(run.Summary.GroupErrors))
			}
			if run.Error != "" {
				line += "  error: " + run.Error
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum runs to list")
	runsCmd.Flags().StringVar(&runsStatus, "status", "", "filter by status (running|complete|failed)")
	rootCmd.AddCommand(runsCmd)
}
