// Package feedback persists an append-only log of reviewer scores as a
// single JSON document and derives a running summary from it.
package feedback

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joescharf/connoisseur/internal/models"
)

// Store owns the persisted feedback document. Every append is a
// read-modify-write of the whole log.
type Store struct {
	path string
}

// NewStore opens the feedback log at path, creating it with an empty log
// exactly once if absent. Existing content is never clobbered on
// construction.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create feedback directory: %w", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		empty := models.FeedbackLog{Feedback: []models.FeedbackEntry{}}
		if err := writeLog(path, empty); err != nil {
			return nil, err
		}
	}
	return &Store{path: path}, nil
}

// Append adds one entry to the log. A corrupt persisted log fails loudly
// here rather than being silently reinitialized: reviewer data is user
// input and must not be clobbered.
func (s *Store) Append(reviewID string, score float64, comment string) error {
	log, err := s.load()
	if err != nil {
		return err
	}
	log.Feedback = append(log.Feedback, models.FeedbackEntry{
		ID:      reviewID,
		Score:   score,
		Comment: comment,
	})
	return writeLog(s.path, log)
}

// Summarize derives the running summary. An empty log yields Count 0 with
// no average at all.
func (s *Store) Summarize() (models.FeedbackSummary, error) {
	log, err := s.load()
	if err != nil {
		return models.FeedbackSummary{}, err
	}
	summary := models.FeedbackSummary{Count: len(log.Feedback)}
	if summary.Count == 0 {
		return summary, nil
	}
	var total float64
	for _, e := range log.Feedback {
		total += e.Score
	}
	avg := total / float64(summary.Count)
	summary.AvgScore = &avg
	return summary, nil
}

// Entries returns the full log in append order.
func (s *Store) Entries() ([]models.FeedbackEntry, error) {
	log, err := s.load()
	if err != nil {
		return nil, err
	}
	return log.Feedback, nil
}

func (s *Store) load() (models.FeedbackLog, error) {
	var log models.FeedbackLog
	data, err := os.ReadFile(s.path)
	if err != nil {
		return log, fmt.Errorf("read feedback log: %w", err)
	}
	if err := json.Unmarshal(data, &log); err != nil {
		return log, fmt.Errorf("decode feedback log %s: %w", s.path, err)
	}
	return log, nil
}

// writeLog replaces the document atomically so a crash mid-write never
// leaves a truncated log behind.
func writeLog(path string, log models.FeedbackLog) error {
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("encode feedback log: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".feedback-*")
	if err != nil {
		return fmt.Errorf("create temp log: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write feedback log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close feedback log: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace feedback log: %w", err)
	}
	return nil
}
