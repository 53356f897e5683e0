package models

// FeedbackEntry is one reviewer-submitted score tied to a review identifier.
type FeedbackEntry struct {
	ID      string  `json:"id"`
	Score   float64 `json:"score"`
	Comment string  `json:"comment,omitempty"`
}

// FeedbackLog is the full persisted feedback document.
type FeedbackLog struct {
	Feedback []FeedbackEntry `json:"feedback"`
}

// FeedbackSummary is the derived running summary of the feedback log.
// AvgScore is nil when the log is empty, and the key is then absent from the
// serialized form; callers must not assume its presence.
type FeedbackSummary struct {
	Count    int      `json:"count"`
	AvgScore *float64 `json:"avg_score,omitempty"`
}
