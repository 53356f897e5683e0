package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/joescharf/connoisseur/internal/models"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore implements Store using modernc.org/sqlite (pure Go, no CGO).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite only supports one concurrent writer. A single connection
	// serializes all access through Go's connection pool.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// newULID generates a new ULID string.
func newULID() string {
	entropy := rand.New(rand.NewSource(time.Now().UnixNano()))
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulid.Monotonic(entropy, 0)).String()
}

// Migrate runs all embedded SQL migration files in order.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		filename TEXT PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT (datetime('now'))
	)`)
	if err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()

		var count int
		err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations WHERE filename = ?", name).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", name, err)
		}
		if count > 0 {
			continue
		}

		data, err := migrationsFS.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := s.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		if _, err := s.db.ExecContext(ctx, "INSERT INTO schema_migrations (filename) VALUES (?)", name); err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveReview inserts one review history row, assigning an ID and timestamp
// when absent.
func (s *SQLiteStore) SaveReview(ctx context.Context, r *models.ReviewRecord) error {
	if r.ID == "" {
		r.ID = newULID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reviews (id, path, added, removed, issue_count, function_count, class_count, embedding_len, embedding_source, lint_source, score, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Path, r.Added, r.Removed, r.IssueCount, r.FunctionCount, r.ClassCount,
		r.EmbeddingLen, r.EmbeddingSource, r.LintSource, r.Score, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// GetReview fetches one review history row by ID.
func (s *SQLiteStore) GetReview(ctx context.Context, id string) (*models.ReviewRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, path, added, removed, issue_count, function_count, class_count, embedding_len, embedding_source, lint_source, score, created_at
		FROM reviews WHERE id = ?`, id)

	r, err := scanReview(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("review not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	return r, nil
}

// ListReviews returns the most recent reviews, newest first.
func (s *SQLiteStore) ListReviews(ctx context.Context, limit int) ([]*models.ReviewRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, path, added, removed, issue_count, function_count, class_count, embedding_len, embedding_source, lint_source, score, created_at
		FROM reviews ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*models.ReviewRecord
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReview(row scanner) (*models.ReviewRecord, error) {
	var r models.ReviewRecord
	err := row.Scan(&r.ID, &r.Path, &r.Added, &r.Removed, &r.IssueCount, &r.FunctionCount,
		&r.ClassCount, &r.EmbeddingLen, &r.EmbeddingSource, &r.LintSource, &r.Score, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
