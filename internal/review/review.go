// Package review composes the diff engine, symbol extractor, lint runner,
// and embedding provider into one review per file, and fans out over
// directory trees with per-file error isolation.
package review

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joescharf/connoisseur/internal/diff"
	"github.com/joescharf/connoisseur/internal/embedding"
	"github.com/joescharf/connoisseur/internal/health"
	"github.com/joescharf/connoisseur/internal/lint"
	"github.com/joescharf/connoisseur/internal/models"
	"github.com/joescharf/connoisseur/internal/rules"
	"github.com/joescharf/connoisseur/internal/symbols"
)

// Agent runs reviews. All collaborators degrade internally, so the only
// failure a review can surface is an unreadable target file.
type Agent struct {
	extractor *symbols.Extractor
	linter    *lint.Runner
	provider  *embedding.Provider
	scorer    *health.Scorer
	rules     *rules.Rules
}

// NewAgent wires a review agent from its collaborators.
func NewAgent(provider *embedding.Provider, linter *lint.Runner, r *rules.Rules) *Agent {
	if r == nil {
		r = rules.Default()
	}
	return &Agent{
		extractor: symbols.New(),
		linter:    linter,
		provider:  provider,
		scorer:    health.NewScorer(),
		rules:     r,
	}
}

// ReviewFile reviews one file against an optional prior revision on disk.
// An unreadable target yields an error-carrying result; an unreadable old
// revision is treated as "no prior revision" rather than failing the
// review.
func (a *Agent) ReviewFile(ctx context.Context, path, oldPath string) *models.ReviewResult {
	newText, err := os.ReadFile(path)
	if err != nil {
		return &models.ReviewResult{
			Path: path,
			Err:  fmt.Sprintf("cannot read %s: %v", path, err),
		}
	}

	oldText := ""
	if oldPath != "" {
		if b, err := os.ReadFile(oldPath); err == nil {
			oldText = string(b)
		}
	}

	return a.Review(ctx, path, oldText, string(newText))
}

// ReviewAgainst reviews the file on disk against a prior revision supplied
// as text (e.g. fetched from git history).
func (a *Agent) ReviewAgainst(ctx context.Context, path, oldText string) *models.ReviewResult {
	newText, err := os.ReadFile(path)
	if err != nil {
		return &models.ReviewResult{
			Path: path,
			Err:  fmt.Sprintf("cannot read %s: %v", path, err),
		}
	}
	return a.Review(ctx, path, oldText, string(newText))
}

// Review merges diff, analysis, and embedding length into one result.
func (a *Agent) Review(ctx context.Context, path, oldText, newText string) *models.ReviewResult {
	result := &models.ReviewResult{
		Path: path,
		Diff: diff.Compute(oldText, newText),
	}

	analysis := models.AnalysisResult{Path: path}
	table, err := a.extractor.Extract(path, newText)
	analysis.Symbols = table
	if err != nil {
		analysis.Error = err.Error()
	}
	analysis.Issues, analysis.LintSource = a.linter.Run(ctx, path, newText)
	result.Analysis = analysis

	vec, source := a.provider.Embed(ctx, newText)
	result.EmbeddingLen = len(vec)
	result.EmbeddingSource = source

	result.Score = a.scorer.Score(result)
	return result
}

// ReviewTree reviews every recognized source file under root. One file's
// failure is recorded in its own result and never aborts the batch.
func (a *Agent) ReviewTree(ctx context.Context, root string) (map[string]*models.ReviewResult, error) {
	results := make(map[string]*models.ReviewResult)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if a.rules.Ignored(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !symbols.Recognized(path) {
			return nil
		}
		results[path] = a.ReviewFile(ctx, path, "")
		return nil
	})
	if err != nil {
		return results, fmt.Errorf("walk %s: %w", root, err)
	}
	return results, nil
}

// ReviewPath reviews a file or, when path is a directory, the whole tree.
func (a *Agent) ReviewPath(ctx context.Context, path, oldPath string) (map[string]*models.ReviewResult, error) {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return a.ReviewTree(ctx, path)
	}
	return map[string]*models.ReviewResult{path: a.ReviewFile(ctx, path, oldPath)}, nil
}
