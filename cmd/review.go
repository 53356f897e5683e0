package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joescharf/connoisseur/internal/git"
	"github.com/joescharf/connoisseur/internal/llm"
	"github.com/joescharf/connoisseur/internal/models"
	"github.com/joescharf/connoisseur/internal/output"
	"github.com/joescharf/connoisseur/internal/review"
)

var (
	reviewOld     string
	reviewRev     string
	reviewJSON    bool
	reviewExplain bool
)

var reviewCmd = &cobra.Command{
	Use:   "review <path>",
	Short: "Review a file or directory tree",
	Long: `Review a source file: diff against a prior revision, extract symbols,
collect lint findings, and report the embedding length and a review score.
When <path> is a directory, every recognized source file underneath is
reviewed; one file's failure never aborts the rest.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return reviewRun(cmd.Context(), args[0])
	},
}

func init() {
	reviewCmd.Flags().StringVarP(&reviewOld, "old", "o", "", "Path of the prior revision")
	reviewCmd.Flags().StringVar(&reviewRev, "rev", "", "Git revision to diff against (e.g. HEAD)")
	reviewCmd.Flags().BoolVar(&reviewJSON, "json", false, "Emit the full review as JSON")
	reviewCmd.Flags().BoolVar(&reviewExplain, "explain", false, "Add an LLM-written review summary (needs anthropic.api_key)")
	reviewCmd.MarkFlagsMutuallyExclusive("old", "rev")
	rootCmd.AddCommand(reviewCmd)
}

func reviewRun(ctx context.Context, path string) error {
	root := path
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		root = filepath.Dir(path)
	}
	agent, _, err := newAgent(root)
	if err != nil {
		return err
	}

	var results map[string]*models.ReviewResult
	if reviewRev != "" {
		results = map[string]*models.ReviewResult{path: reviewAgainstRev(ctx, agent, path)}
	} else {
		results, err = agent.ReviewPath(ctx, path, reviewOld)
		if err != nil {
			return err
		}
	}

	if err := recordHistory(ctx, results); err != nil {
		ui.Warning("history not recorded: %v", err)
	}

	if reviewJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("encode results: %w", err)
		}
		fmt.Fprintln(ui.Out, string(data))
		return nil
	}

	paths := make([]string, 0, len(results))
	for p := range results {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		printReview(results[p])
	}

	if reviewExplain {
		for _, p := range paths {
			if results[p].Err != "" {
				continue
			}
			explainReview(ctx, results[p])
		}
	}
	return nil
}

// reviewAgainstRev fetches the prior revision from git history. Any git
// failure degrades to "no prior revision" rather than failing the review.
func reviewAgainstRev(ctx context.Context, agent *review.Agent, path string) *models.ReviewResult {
	oldText := ""
	if text, err := git.NewClient().Show(path, reviewRev); err == nil {
		oldText = text
	} else {
		ui.VerboseLog("no %s revision for %s: %v", reviewRev, path, err)
	}
	return agent.ReviewAgainst(ctx, path, oldText)
}

func printReview(r *models.ReviewResult) {
	if r.Err != "" {
		ui.Error("%s: %s", r.Path, r.Err)
		return
	}

	ui.Success("%s  %s  score %s", output.Cyan(r.Path), output.DiffStat(r.Diff.Added, r.Diff.Removed), output.ScoreColor(r.Score))
	if len(r.Analysis.Symbols.Functions) > 0 {
		ui.Info("functions: %v", r.Analysis.Symbols.Functions)
	}
	if len(r.Analysis.Symbols.Classes) > 0 {
		ui.Info("classes: %v", r.Analysis.Symbols.Classes)
	}
	if r.Analysis.Error != "" {
		ui.Warning("analysis: %s", r.Analysis.Error)
	}
	for _, issue := range r.Analysis.Issues {
		if issue.Line > 0 {
			ui.Warning("[%s] %s:%d %s", output.SourceColor(string(r.Analysis.LintSource)), r.Path, issue.Line, issue.Message)
		} else {
			ui.Warning("[%s] %s", output.SourceColor(string(r.Analysis.LintSource)), issue.Message)
		}
	}
	ui.VerboseLog("embedding: %d floats via %s", r.EmbeddingLen, r.EmbeddingSource)
	if verbose && r.Diff.Patch != "" {
		fmt.Fprint(ui.Out, r.Diff.Patch)
	}
}

func explainReview(ctx context.Context, r *models.ReviewResult) {
	apiKey := viper.GetString("anthropic.api_key")
	if apiKey == "" {
		ui.Warning("--explain needs anthropic.api_key (or ANTHROPIC_API_KEY)")
		return
	}

	client := llm.NewClient(apiKey, viper.GetString("anthropic.model"))
	summary, err := client.Narrate(ctx, r)
	if err != nil {
		ui.Warning("explain %s: %v", r.Path, err)
		return
	}
	ui.Info("summary for %s:\n%s", r.Path, summary)
}

// recordHistory persists one history row per successful review.
func recordHistory(ctx context.Context, results map[string]*models.ReviewResult) error {
	s, err := getStore()
	if err != nil {
		return err
	}
	for _, r := range results {
		if r.Err != "" {
			continue
		}
		record := &models.ReviewRecord{
			Path:            r.Path,
			Added:           r.Diff.Added,
			Removed:         r.Diff.Removed,
			IssueCount:      len(r.Analysis.Issues),
			FunctionCount:   len(r.Analysis.Symbols.Functions),
			ClassCount:      len(r.Analysis.Symbols.Classes),
			EmbeddingLen:    r.EmbeddingLen,
			EmbeddingSource: string(r.EmbeddingSource),
			LintSource:      string(r.Analysis.LintSource),
			Score:           r.Score,
		}
		if err := s.SaveReview(ctx, record); err != nil {
			return err
		}
		ui.VerboseLog("recorded review %s for %s", record.ID, record.Path)
	}
	return nil
}
