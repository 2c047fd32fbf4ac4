package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hotel-maintenance/internal/domain"
)

// PostgresSnapshotStore persists the snapshot in a single-row table.
// The row is upserted on every save, mirroring the write-through model
// of the other backends.
type PostgresSnapshotStore struct {
	pool *pgxpool.Pool
}

// NewPostgresSnapshotStore builds a store around an existing pool.
func NewPostgresSnapshotStore(pool *pgxpool.Pool) *PostgresSnapshotStore {
	return &PostgresSnapshotStore{pool: pool}
}

func (s *PostgresSnapshotStore) Load(ctx context.Context) ([]domain.Ticket, error) {
	const query = `SELECT payload FROM maintenance_snapshots WHERE id = 1`
	var payload []byte
	if err := s.pool.QueryRow(ctx, query).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("select snapshot: %w", err)
	}
	var tickets []domain.Ticket
	if err := json.Unmarshal(payload, &tickets); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err)
	}
	return tickets, nil
}

func (s *PostgresSnapshotStore) Save(ctx context.Context, tickets []domain.Ticket) error {
	payload, err := json.Marshal(tickets)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	const query = `
        INSERT INTO maintenance_snapshots (id, payload, updated_at)
        VALUES (1, $1, NOW())
        ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()`
	if _, err := s.pool.Exec(ctx, query, payload); err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

func (s *PostgresSnapshotStore) Clear(ctx context.Context) error {
	const query = `DELETE FROM maintenance_snapshots WHERE id = 1`
	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}
