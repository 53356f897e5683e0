// Package rules loads optional per-repo review rules from a
// .connoisseur.yaml file at the root of the tree under review.
package rules

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the well-known per-repo rules file.
const FileName = ".connoisseur.yaml"

// Rules tunes the built-in checks and tree walks.
type Rules struct {
	// Ignore lists directory names skipped during tree review and indexing.
	Ignore []string `yaml:"ignore"`
	// DebugPatterns are substrings flagged by the built-in lint check.
	DebugPatterns []string `yaml:"debug_patterns"`
}

// Default returns the rules used when no rules file is present.
func Default() *Rules {
	return &Rules{
		Ignore:        []string{".git", "node_modules", "vendor"},
		DebugPatterns: []string{"console."},
	}
}

// Load reads the rules file under dir, merging it over the defaults. A
// missing file is not an error; a malformed file is.
func Load(dir string) (*Rules, error) {
	r := Default()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", FileName, err)
	}

	var loaded Rules
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileName, err)
	}

	if len(loaded.Ignore) > 0 {
		r.Ignore = loaded.Ignore
	}
	if len(loaded.DebugPatterns) > 0 {
		r.DebugPatterns = loaded.DebugPatterns
	}
	return r, nil
}

// Ignored reports whether a directory name is excluded from walks.
func (r *Rules) Ignored(name string) bool {
	for _, d := range r.Ignore {
		if d == name {
			return true
		}
	}
	return false
}
