package fhd

import (
	"context"
	"sync"

	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/models"
)

// Runner triggers one full pipeline run. Satisfied by *pipeline.Pipeline.
type Runner interface {
	Run(ctx context.Context) (*models.Snapshot, error)
}

// SnapshotStore caches the latest pipeline snapshot. The first read
// computes lazily; Refresh recomputes and swaps. The service decides when
// to refresh, the store only guards the cached value.
type SnapshotStore struct {
	mu     sync.Mutex
	snap   *models.Snapshot
	runner Runner
}

// NewSnapshotStore creates a store over the given runner
func NewSnapshotStore(runner Runner) *SnapshotStore {
	return &SnapshotStore{runner: runner}
}

// Latest returns the cached snapshot, computing one on first access
func (s *SnapshotStore) Latest(ctx context.Context) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap != nil {
		return s.snap, nil
	}
	snap, err := s.runner.Run(ctx)
	if err != nil {
		return nil, err
	}
	s.snap = snap
	return snap, nil
}

// Refresh forces a fresh pipeline run and replaces the cached snapshot.
// Concurrent refreshes serialize on the store lock; the last writer wins.
func (s *SnapshotStore) Refresh(ctx context.Context) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.runner.Run(ctx)
	if err != nil {
		return nil, err
	}
	s.snap = snap
	return snap, nil
}
