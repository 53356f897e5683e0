// Package health scores a completed review so large risky changes stand
// out in listings.
package health

import "github.com/joescharf/connoisseur/internal/models"

// Scorer computes a 0-100 review score from churn and findings.
type Scorer struct{}

// NewScorer returns a new Scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score starts from 100 and deducts for churn and lint findings. A review
// that failed analysis entirely bottoms out at 0.
func (s *Scorer) Score(r *models.ReviewResult) int {
	if r.Err != "" {
		return 0
	}

	score := 100

	// Churn: every 50 changed lines costs 10 points, capped at 40.
	churn := r.Diff.Added + r.Diff.Removed
	churnPenalty := churn / 50 * 10
	if churnPenalty > 40 {
		churnPenalty = 40
	}
	score -= churnPenalty

	// Findings: 5 points each, capped at 40.
	issuePenalty := len(r.Analysis.Issues) * 5
	if issuePenalty > 40 {
		issuePenalty = 40
	}
	score -= issuePenalty

	// A failed parse means the symbols are unknown.
	if r.Analysis.Error != "" {
		score -= 10
	}

	if score < 0 {
		score = 0
	}
	return score
}
