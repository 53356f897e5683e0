package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joescharf/connoisseur/internal/feedback"
)

var (
	feedbackScore   float64
	feedbackComment string
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Record and summarize reviewer feedback",
	RunE: func(cmd *cobra.Command, args []string) error {
		return feedbackSummaryRun()
	},
}

var feedbackAddCmd = &cobra.Command{
	Use:   "add <review-id>",
	Short: "Record feedback for a review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return feedbackAddRun(args[0])
	},
}

var feedbackSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the running feedback summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		return feedbackSummaryRun()
	},
}

func init() {
	feedbackAddCmd.Flags().Float64Var(&feedbackScore, "score", 0, "Numeric score for the review (required)")
	feedbackAddCmd.Flags().StringVar(&feedbackComment, "comment", "", "Optional comment")
	_ = feedbackAddCmd.MarkFlagRequired("score")

	feedbackCmd.AddCommand(feedbackAddCmd)
	feedbackCmd.AddCommand(feedbackSummaryCmd)
	rootCmd.AddCommand(feedbackCmd)
}

func openFeedbackStore() (*feedback.Store, error) {
	return feedback.NewStore(viper.GetString("feedback_path"))
}

func feedbackAddRun(reviewID string) error {
	s, err := openFeedbackStore()
	if err != nil {
		return err
	}
	if err := s.Append(reviewID, feedbackScore, feedbackComment); err != nil {
		return err
	}
	ui.Success("recorded feedback for %s", reviewID)
	return nil
}

func feedbackSummaryRun() error {
	s, err := openFeedbackStore()
	if err != nil {
		return err
	}
	summary, err := s.Summarize()
	if err != nil {
		return err
	}

	if summary.Count == 0 {
		ui.Info("no feedback recorded yet")
		return nil
	}
	ui.Info("%d entries, average score %s", summary.Count, fmt.Sprintf("%.2f", *summary.AvgScore))
	return nil
}
