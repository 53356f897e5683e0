package models

// DiffResult summarizes the line-level changes between two revisions of a
// file. Added and Removed count content lines only; hunk headers and file
// headers are never included. Patch is the full unified diff, empty when the
// two revisions are identical.
type DiffResult struct {
	Added   int    `json:"added"`
	Removed int    `json:"removed"`
	Patch   string `json:"patch"`
}

// SymbolTable holds the declared symbols extracted from a source file.
// Both slices are sorted and deduplicated so identical input always
// serializes identically.
type SymbolTable struct {
	Functions []string `json:"functions"`
	Classes   []string `json:"classes"`
}

// LintSource identifies which tier produced a set of issues.
type LintSource string

const (
	LintSourceESLint  LintSource = "eslint"
	LintSourceBuiltin LintSource = "builtin"
)

// Issue is a single lint-style finding.
type Issue struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Rule     string `json:"rule,omitempty"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	Severity int    `json:"severity,omitempty"`
}

// AnalysisResult is the static-analysis portion of a review. A non-empty
// Error means symbols and issues may be partial or absent.
type AnalysisResult struct {
	Path       string      `json:"path"`
	Issues     []Issue     `json:"issues"`
	Symbols    SymbolTable `json:"symbols"`
	LintSource LintSource  `json:"lint_source"`
	Error      string      `json:"error,omitempty"`
}

// EmbeddingSource identifies which tier produced an embedding.
type EmbeddingSource string

const (
	EmbeddingSourceOpenAI EmbeddingSource = "openai"
	EmbeddingSourceLocal  EmbeddingSource = "local"
)

// ReviewResult is one complete review of a file. Err is set when the target
// itself was unreadable; all other failures degrade into the fields instead.
type ReviewResult struct {
	Path            string          `json:"path"`
	Diff            DiffResult      `json:"diff"`
	Analysis        AnalysisResult  `json:"analysis"`
	EmbeddingLen    int             `json:"embedding_len"`
	EmbeddingSource EmbeddingSource `json:"embedding_source,omitempty"`
	Score           int             `json:"score"`
	Err             string          `json:"error,omitempty"`
}
