package models

// IndexEntry is the persisted embedding metadata for one indexed source
// file. The entry is keyed by the file's base name; re-indexing overwrites
// the previous entry for the same key.
type IndexEntry struct {
	Path         string `json:"path"`
	EmbeddingLen int    `json:"embedding_len"`
}
