// Package lint produces lint-style issues for a source file. The primary
// tier invokes eslint as an external process; any failure there degrades to
// a minimal built-in check so a review is always available.
package lint

import (
	"context"
	"encoding/json"
	"os/exec"
	"strings"
	"time"

	"github.com/joescharf/connoisseur/internal/models"
	"github.com/joescharf/connoisseur/internal/rules"
)

// eslintFile is one entry of eslint's --format json output.
type eslintFile struct {
	FilePath string `json:"filePath"`
	Messages []struct {
		RuleID   string `json:"ruleId"`
		Severity int    `json:"severity"`
		Message  string `json:"message"`
		Line     int    `json:"line"`
		Column   int    `json:"column"`
	} `json:"messages"`
}

// Runner invokes the external lint tool with a bounded wait, falling back
// to built-in checks when the tool is missing, crashes, times out, or emits
// output we cannot parse.
type Runner struct {
	rules   *rules.Rules
	timeout time.Duration

	// lookPath and runTool are replaceable in tests.
	lookPath func(string) (string, error)
	runTool  func(ctx context.Context, path string) ([]byte, error)
}

// NewRunner returns a Runner using the given rules for the built-in checks.
func NewRunner(r *rules.Rules, timeout time.Duration) *Runner {
	return &Runner{
		rules:    r,
		timeout:  timeout,
		lookPath: exec.LookPath,
		runTool:  runESLint,
	}
}

func runESLint(ctx context.Context, path string) ([]byte, error) {
	// eslint exits non-zero when it finds problems; the JSON on stdout is
	// still complete, so only a missing output stream is treated as failure.
	out, err := exec.CommandContext(ctx, "eslint", path, "--format", "json").Output()
	if err != nil && len(out) == 0 {
		return nil, err
	}
	return out, nil
}

// Run returns the issues for path and the tier that produced them. It never
// returns an error: every tool failure degrades to the built-in check.
func (r *Runner) Run(ctx context.Context, path, text string) ([]models.Issue, models.LintSource) {
	if issues, ok := r.runESLint(ctx, path); ok {
		return issues, models.LintSourceESLint
	}
	return r.builtin(text), models.LintSourceBuiltin
}

func (r *Runner) runESLint(ctx context.Context, path string) ([]models.Issue, bool) {
	if _, err := r.lookPath("eslint"); err != nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	out, err := r.runTool(ctx, path)
	if err != nil {
		return nil, false
	}

	var files []eslintFile
	if err := json.Unmarshal(out, &files); err != nil {
		return nil, false
	}

	issues := []models.Issue{}
	for _, f := range files {
		for _, m := range f.Messages {
			issues = append(issues, models.Issue{
				Type:     "eslint",
				Message:  m.Message,
				Rule:     m.RuleID,
				Line:     m.Line,
				Column:   m.Column,
				Severity: m.Severity,
			})
		}
	}
	return issues, true
}

// builtin is the degraded tier: flag configured debug-output patterns.
func (r *Runner) builtin(text string) []models.Issue {
	issues := []models.Issue{}
	for _, pattern := range r.rules.DebugPatterns {
		if strings.Contains(text, pattern) {
			issues = append(issues, models.Issue{
				Type:    "debug",
				Message: pattern + " statements present",
			})
		}
	}
	return issues
}
