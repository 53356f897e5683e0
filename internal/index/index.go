// Package index persists embedding metadata for a directory tree: one JSON
// record per indexed source file, keyed by the file's base name. Re-indexing
// overwrites entries in place; there is no versioning.
package index

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joescharf/connoisseur/internal/embedding"
	"github.com/joescharf/connoisseur/internal/models"
	"github.com/joescharf/connoisseur/internal/rules"
	"github.com/joescharf/connoisseur/internal/symbols"
)

// Store owns a directory of per-file IndexEntry records.
type Store struct {
	dir      string
	provider *embedding.Provider
	rules    *rules.Rules
}

// NewStore opens (or creates) the index directory.
func NewStore(dir string, provider *embedding.Provider, r *rules.Rules) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create index directory: %w", err)
	}
	if r == nil {
		r = rules.Default()
	}
	return &Store{dir: dir, provider: provider, rules: r}, nil
}

// IndexTree walks root, embeds every recognized source file, and persists
// one entry per file. A failure on one file is skipped so it never aborts
// the rest of the batch. Returns the number of files indexed.
func (s *Store) IndexTree(ctx context.Context, root string) (int, error) {
	count := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree: skip, keep walking
		}
		if d.IsDir() {
			if s.rules.Ignored(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !symbols.Recognized(path) {
			return nil
		}

		text, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		vec, _ := s.provider.Embed(ctx, string(text))
		entry := models.IndexEntry{Path: path, EmbeddingLen: len(vec)}
		if err := s.put(entry); err != nil {
			return nil
		}
		count++
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("walk %s: %w", root, err)
	}
	return count, nil
}

// put writes one entry under its filename-derived key via an atomic
// temp+rename replace, so a reader never sees a partial record.
func (s *Store) put(entry models.IndexEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}

	target := filepath.Join(s.dir, filepath.Base(entry.Path)+".json")
	tmp, err := os.CreateTemp(s.dir, ".entry-*")
	if err != nil {
		return fmt.Errorf("create temp entry: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close entry: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace entry: %w", err)
	}
	return nil
}

// List returns all persisted entries sorted by path. Undecodable entry
// files are skipped rather than failing the listing.
func (s *Store) List() ([]models.IndexEntry, error) {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read index directory: %w", err)
	}

	var entries []models.IndexEntry
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, f.Name()))
		if err != nil {
			continue
		}
		var e models.IndexEntry
		if err := json.Unmarshal(data, &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}
