package store

import (
	"context"

	"github.com/joescharf/connoisseur/internal/models"
)

// Store defines the persistence interface for review history.
type Store interface {
	SaveReview(ctx context.Context, r *models.ReviewRecord) error
	GetReview(ctx context.Context, id string) (*models.ReviewRecord, error)
	ListReviews(ctx context.Context, limit int) ([]*models.ReviewRecord, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
