// Package repository persists the ticket collection as a single snapshot
// under one well-known key. The whole collection is written through after
// every mutation; there is no partial write and no versioning. Sentinel
// errors let the service distinguish an absent snapshot from a corrupt
// one, since both recover by falling back to the seed dataset.
package repository

import (
	"context"
	"errors"

	"github.com/spec-kit/hotel-maintenance/internal/domain"
)

// ErrSnapshotNotFound is returned when no snapshot has been persisted yet.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ErrSnapshotCorrupt is returned when a persisted snapshot cannot be
// deserialized. Callers should fall back to seed data and surface a
// restore notice rather than fail.
var ErrSnapshotCorrupt = errors.New("snapshot corrupt")

// SnapshotStore abstracts the persistence backend for the ticket
// collection. Save must be durable before returning: a mutation is not
// complete until its snapshot write returns.
type SnapshotStore interface {
	Load(ctx context.Context) ([]domain.Ticket, error)
	Save(ctx context.Context, tickets []domain.Ticket) error
	Clear(ctx context.Context) error
}
