package state

import (
	"context"

	"github.com/cbodonnell/worldlens/pkg/game/types"
)

// SnapshotStore provides shared access to the latest complete snapshot.
// Implementations must be thread-safe.
type SnapshotStore interface {
	// Get returns a copy of the latest snapshot, or nil if none was published yet.
	Get(ctx context.Context) (*types.Snapshot, error)
	// Set replaces the latest snapshot.
	Set(ctx context.Context, snapshot *types.Snapshot) error
}
