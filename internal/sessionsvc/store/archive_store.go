package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ArchiveStore appends one row per accepted state push, giving operators a
// draw history that outlives the 24-hour session records.
type ArchiveStore struct {
	db *pgxpool.Pool
}

func NewArchiveStore(db *pgxpool.Pool) *ArchiveStore {
	return &ArchiveStore{db: db}
}

func (s *ArchiveStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS draw_events (
			id             BIGSERIAL PRIMARY KEY,
			seed           TEXT NOT NULL,
			numbers_drawn  INT NOT NULL,
			current_number INT,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create draw_events table: %w", err)
	}
	return nil
}

func (s *ArchiveStore) InsertDrawEvent(ctx context.Context, seed string, numbersDrawn int, currentNumber *int) error {
	query := `
		INSERT INTO draw_events (seed, numbers_drawn, current_number)
		VALUES ($1, $2, $3)
	`
	if _, err := s.db.Exec(ctx, query, seed, numbersDrawn, currentNumber); err != nil {
		return fmt.Errorf("failed to insert draw event: %w", err)
	}
	return nil
}

func (s *ArchiveStore) EventCount(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRow(ctx, `SELECT count(*) FROM draw_events`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count draw events: %w", err)
	}
	return n, nil
}
