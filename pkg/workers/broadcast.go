package workers

import (
	"context"

	"github.com/cbodonnell/worldlens/pkg/game/types"
	"github.com/cbodonnell/worldlens/pkg/log"
	"github.com/cbodonnell/worldlens/pkg/queue"
)

// Broadcaster sends a snapshot to every connected overlay.
type Broadcaster interface {
	Broadcast(snapshot *types.Snapshot) error
}

type BroadcastWorker struct {
	broadcaster Broadcaster
	queue       queue.Queue[*types.Snapshot]
}

type NewBroadcastWorkerOptions struct {
	Broadcaster Broadcaster
	Queue       queue.Queue[*types.Snapshot]
}

func NewBroadcastWorker(opts NewBroadcastWorkerOptions) *BroadcastWorker {
	return &BroadcastWorker{
		broadcaster: opts.Broadcaster,
		queue:       opts.Queue,
	}
}

// Start broadcasts queued snapshots until ctx is done. When the worker falls
// behind, only the newest pending snapshot is sent.
func (w *BroadcastWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case snapshot := <-w.queue.C():
			if pending := w.queue.Drain(); len(pending) > 0 {
				log.Trace("Skipping %d stale snapshots", len(pending))
				snapshot = pending[len(pending)-1]
			}
			if err := w.broadcaster.Broadcast(snapshot); err != nil {
				log.Error("Failed to broadcast snapshot %d: %v", snapshot.Tick, err)
			}
		}
	}
}
