// internal/adapter/storage/search_store.go

package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/Necklacesaura/Crazedo-AI-v20-sub000/internal/domain/trend"
)

// SearchStore persists analyzed topics. It is an optional dependency:
// the analysis response path never touches it, and the weekly listing
// merely prefers it when present.
type SearchStore struct {
	db *pgxpool.Pool
}

// NewSearchStore creates a search store over the given pool.
func NewSearchStore(db *pgxpool.Pool) *SearchStore {
	return &SearchStore{db: db}
}

// EnsureSchema creates the search-log table if it does not exist.
func (s *SearchStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS trend_searches (
			id          UUID PRIMARY KEY,
			topic       TEXT NOT NULL,
			status      TEXT NOT NULL,
			searched_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_trend_searches_searched_at ON trend_searches (searched_at);
	`
	if _, err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("error ensuring search schema: %w", err)
	}
	return nil
}

// Record inserts one search-log row.
func (s *SearchStore) Record(ctx context.Context, topic string, status trend.Status) error {
	query := `
		INSERT INTO trend_searches (id, topic, status, searched_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.Exec(ctx, query,
		uuid.NewString(),
		strings.ToLower(strings.TrimSpace(topic)),
		string(status),
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("error recording search: %w", err)
	}
	return nil
}

// TopSearch is one row of the search rollup.
type TopSearch struct {
	Topic      string
	Searches   int
	LastStatus string
}

// TopSince returns the most-searched topics since the given time, most
// popular first, with the status of each topic's latest analysis.
func (s *SearchStore) TopSince(ctx context.Context, since time.Time, limit int) ([]TopSearch, error) {
	query := `
		SELECT
			topic,
			COUNT(*) AS searches,
			(ARRAY_AGG(status ORDER BY searched_at DESC))[1] AS last_status
		FROM trend_searches
		WHERE searched_at >= $1
		GROUP BY topic
		ORDER BY searches DESC, topic
		LIMIT $2
	`
	rows, err := s.db.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying top searches: %w", err)
	}
	defer rows.Close()

	var top []TopSearch
	for rows.Next() {
		var ts TopSearch
		if err := rows.Scan(&ts.Topic, &ts.Searches, &ts.LastStatus); err != nil {
			return nil, fmt.Errorf("error scanning top search: %w", err)
		}
		top = append(top, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading top searches: %w", err)
	}
	return top, nil
}
