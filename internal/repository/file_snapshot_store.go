package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spec-kit/hotel-maintenance/internal/domain"
)

// FileSnapshotStore persists the snapshot as a JSON file. It is the
// zero-infrastructure default backend.
type FileSnapshotStore struct {
	path string
}

// NewFileSnapshotStore builds a store writing to the given path.
func NewFileSnapshotStore(path string) *FileSnapshotStore {
	return &FileSnapshotStore{path: path}
}

func (s *FileSnapshotStore) Load(_ context.Context) ([]domain.Ticket, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("read snapshot %s: %w", s.path, err)
	}
	var tickets []domain.Ticket
	if err := json.Unmarshal(payload, &tickets); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err)
	}
	return tickets, nil
}

func (s *FileSnapshotStore) Save(_ context.Context, tickets []domain.Ticket) error {
	payload, err := json.Marshal(tickets)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", s.path, err)
	}
	return nil
}

func (s *FileSnapshotStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove snapshot %s: %w", s.path, err)
	}
	return nil
}
