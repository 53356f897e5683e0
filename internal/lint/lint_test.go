package lint

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/joescharf/connoisseur/internal/models"
	"github.com/joescharf/connoisseur/internal/rules"
)

func newTestRunner() *Runner {
	return NewRunner(rules.Default(), 5*time.Second)
}

func TestRun_ToolMissingFallsBack(t *testing.T) {
	r := newTestRunner()
	r.lookPath = func(string) (string, error) { return "", errors.New("not found") }

	issues, source := r.Run(context.Background(), "app.js", "console.log('x')\n")
	assert.Equal(t, models.LintSourceBuiltin, source)
	assert.Len(t, issues, 1)
	assert.Equal(t, "debug", issues[0].Type)
}

func TestRun_ToolCrashFallsBack(t *testing.T) {
	r := newTestRunner()
	r.lookPath = func(string) (string, error) { return "/usr/bin/eslint", nil }
	r.runTool = func(context.Context, string) ([]byte, error) {
		return nil, errors.New("exit status 2")
	}

	issues, source := r.Run(context.Background(), "app.js", "clean code\n")
	assert.Equal(t, models.LintSourceBuiltin, source)
	assert.Empty(t, issues)
}

func TestRun_MalformedOutputFallsBack(t *testing.T) {
	r := newTestRunner()
	r.lookPath = func(string) (string, error) { return "/usr/bin/eslint", nil }
	r.runTool = func(context.Context, string) ([]byte, error) {
		return []byte("Oops, not JSON"), nil
	}

	_, source := r.Run(context.Background(), "app.js", "var x\n")
	assert.Equal(t, models.LintSourceBuiltin, source)
}

func TestRun_NormalizesESLintOutput(t *testing.T) {
	r := newTestRunner()
	r.lookPath = func(string) (string, error) { return "/usr/bin/eslint", nil }
	r.runTool = func(context.Context, string) ([]byte, error) {
		return []byte(`[{"filePath":"app.js","messages":[
			{"ruleId":"no-unused-vars","severity":2,"message":"'x' is defined but never used.","line":3,"column":5}
		]}]`), nil
	}

	issues, source := r.Run(context.Background(), "app.js", "var x\n")
	assert.Equal(t, models.LintSourceESLint, source)
	assert.Len(t, issues, 1)
	assert.Equal(t, "eslint", issues[0].Type)
	assert.Equal(t, "no-unused-vars", issues[0].Rule)
	assert.Equal(t, 3, issues[0].Line)
}

func TestBuiltin_CustomPatterns(t *testing.T) {
	custom := &rules.Rules{DebugPatterns: []string{"fmt.Println", "debugger"}}
	r := NewRunner(custom, time.Second)

	issues := r.builtin("debugger;\nfmt.Println(1)\n")
	assert.Len(t, issues, 2)
}

func TestBuiltin_CleanText(t *testing.T) {
	r := newTestRunner()
	assert.Empty(t, r.builtin("function ok() { return 1 }\n"))
}
