package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joescharf/connoisseur/internal/output"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past reviews",
	Long:  "List recorded reviews, newest first, with diff stats and scores.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return historyRun()
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "Maximum rows to show")
	rootCmd.AddCommand(historyCmd)
}

func historyRun() error {
	s, err := getStore()
	if err != nil {
		return err
	}

	reviews, err := s.ListReviews(rootCmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		ui.Info("no reviews recorded yet")
		return nil
	}

	table := ui.Table([]string{"WHEN", "PATH", "DIFF", "ISSUES", "SCORE", "ID"})
	for _, r := range reviews {
		_ = table.Append([]string{
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Path,
			output.DiffStat(r.Added, r.Removed),
			fmt.Sprintf("%d", r.IssueCount),
			output.ScoreColor(r.Score),
			r.ID,
		})
	}
	return table.Render()
}
