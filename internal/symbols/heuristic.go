package symbols

import (
	"regexp"

	"github.com/joescharf/connoisseur/internal/models"
)

// Lexical patterns for the JS/TS family: a named function declaration or an
// arrow-function assignment, and a class declaration. Approximate, not
// authoritative: malformed text yields whatever superficially matches.
var (
	funcRe  = regexp.MustCompile(`(?:function\s+([\w$]+)\s*\(|([\w$]+)\s*=\s*\([^)]*\)\s*=>)`)
	classRe = regexp.MustCompile(`class\s+([\w$]+)`)
)

// Heuristic is the fallback strategy for languages without a precise
// parser. It never fails.
type Heuristic struct{}

// Extract scans text with the lexical patterns and returns the distinct
// matched names, sorted.
func (Heuristic) Extract(text string) (models.SymbolTable, error) {
	functions := make(map[string]struct{})
	classes := make(map[string]struct{})

	for _, m := range funcRe.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if name == "" {
			name = m[2]
		}
		if name != "" {
			functions[name] = struct{}{}
		}
	}
	for _, m := range classRe.FindAllStringSubmatch(text, -1) {
		classes[m[1]] = struct{}{}
	}

	return sortedTable(functions, classes), nil
}
