package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/cbodonnell/worldlens/pkg/game/types"
)

type InMemorySnapshotStore struct {
	lock     sync.RWMutex
	snapshot *types.Snapshot
}

func NewInMemorySnapshotStore() *InMemorySnapshotStore {
	return &InMemorySnapshotStore{}
}

func (s *InMemorySnapshotStore) Get(ctx context.Context) (*types.Snapshot, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.snapshot.Copy(), nil
}

func (s *InMemorySnapshotStore) Set(ctx context.Context, snapshot *types.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot is nil")
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	s.snapshot = snapshot
	return nil
}
