package models

import "time"

// ReviewRecord is the persisted history row for one completed review.
type ReviewRecord struct {
	ID              string
	Path            string
	Added           int
	Removed         int
	IssueCount      int
	FunctionCount   int
	ClassCount      int
	EmbeddingLen    int
	EmbeddingSource string
	LintSource      string
	Score           int
	CreatedAt       time.Time
}
