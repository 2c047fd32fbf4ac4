package repository

import (
	"context"
	"sync"

	"github.com/spec-kit/hotel-maintenance/internal/domain"
)

// MemorySnapshotStore keeps the snapshot in process memory. Used by
// tests and as a fallback when no durable backend is configured.
type MemorySnapshotStore struct {
	mu      sync.Mutex
	tickets []domain.Ticket
	stored  bool

	// SaveErr, when set, is returned by Save to exercise write-failure paths.
	SaveErr error
	// Saves counts successful writes.
	Saves int
}

// NewMemorySnapshotStore returns an empty in-memory store.
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{}
}

func (s *MemorySnapshotStore) Load(_ context.Context) ([]domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stored {
		return nil, ErrSnapshotNotFound
	}
	tickets := make([]domain.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		tickets = append(tickets, t.Clone())
	}
	return tickets, nil
}

func (s *MemorySnapshotStore) Save(_ context.Context, tickets []domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	copied := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		copied = append(copied, t.Clone())
	}
	s.tickets = copied
	s.stored = true
	s.Saves++
	return nil
}

func (s *MemorySnapshotStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets = nil
	s.stored = false
	return nil
}
