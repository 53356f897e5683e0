// Package symbols extracts declared function and class names from source
// text. Extraction is polymorphic over per-language strategies: Python gets
// a precise syntax-tree walk, the JS/TS family gets a lexical heuristic.
package symbols

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joescharf/connoisseur/internal/models"
)

// recognizedExts are the source extensions the pipeline operates on; tree
// review and indexing filter to these.
var recognizedExts = map[string]bool{
	".py":  true,
	".js":  true,
	".jsx": true,
	".ts":  true,
	".tsx": true,
}

// Recognized reports whether path has a supported source extension.
func Recognized(path string) bool {
	return recognizedExts[strings.ToLower(filepath.Ext(path))]
}

// Strategy extracts symbols from a text buffer. Precise strategies return a
// *ParseError on syntactically invalid input; heuristic strategies never
// fail and are approximate by contract.
type Strategy interface {
	Extract(text string) (models.SymbolTable, error)
}

// ParseError marks a precise-strategy syntax failure. Callers capture it
// into the analysis result instead of propagating; symbols are then empty,
// never partial.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse: %v", e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// Extractor dispatches to a strategy by file extension.
type Extractor struct {
	precise  map[string]Strategy
	fallback Strategy
}

// New returns an Extractor with the default strategy table: tree-sitter for
// Python, the heuristic scanner for everything else.
func New() *Extractor {
	return &Extractor{
		precise: map[string]Strategy{
			".py": NewPython(),
		},
		fallback: Heuristic{},
	}
}

// Extract picks a strategy from the pathHint's extension and runs it over
// text. Identical text always yields an identical, sorted table.
func (e *Extractor) Extract(pathHint, text string) (models.SymbolTable, error) {
	ext := strings.ToLower(filepath.Ext(pathHint))
	if s, ok := e.precise[ext]; ok {
		return s.Extract(text)
	}
	return e.fallback.Extract(text)
}

// sortedTable converts name sets into the canonical sorted, deduplicated
// table form.
func sortedTable(functions, classes map[string]struct{}) models.SymbolTable {
	return models.SymbolTable{
		Functions: sortedKeys(functions),
		Classes:   sortedKeys(classes),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
