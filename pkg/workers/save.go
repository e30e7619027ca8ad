package workers

import (
	"context"
	"time"

	"github.com/cbodonnell/worldlens/pkg/log"
	"github.com/cbodonnell/worldlens/pkg/repositories"
	"github.com/cbodonnell/worldlens/pkg/state"
)

// finalSaveTimeout bounds the save made after the worker's context ends.
const finalSaveTimeout = 5 * time.Second

type SaveSnapshotWorker struct {
	repository repositories.Repository
	store      state.SnapshotStore
	interval   time.Duration

	session  string
	lastTick uint64
}

type NewSaveSnapshotWorkerOptions struct {
	Repository repositories.Repository
	Store      state.SnapshotStore
	Interval   time.Duration
}

// NewSaveSnapshotWorker creates a new SaveSnapshotWorker.
// The worker periodically saves the latest snapshot to the repository,
// skipping ticks that were already saved.
func NewSaveSnapshotWorker(opts NewSaveSnapshotWorkerOptions) *SaveSnapshotWorker {
	return &SaveSnapshotWorker{
		repository: opts.Repository,
		store:      opts.Store,
		interval:   opts.Interval,
	}
}

func (w *SaveSnapshotWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			saveCtx, cancel := context.WithTimeout(context.Background(), finalSaveTimeout)
			w.save(saveCtx)
			cancel()
			return
		case <-ticker.C:
			w.save(ctx)
		}
	}
}

func (w *SaveSnapshotWorker) save(ctx context.Context) {
	snapshot, err := w.store.Get(ctx)
	if err != nil {
		log.Error("Failed to get current snapshot: %v", err)
		return
	}
	if snapshot == nil {
		return
	}
	if snapshot.Session == w.session && snapshot.Tick == w.lastTick {
		return
	}

	if err := w.repository.SaveSnapshot(ctx, snapshot); err != nil {
		log.Error("Failed to save snapshot: %v", err)
		return
	}
	w.session, w.lastTick = snapshot.Session, snapshot.Tick
	log.Trace("Saved snapshot %d", snapshot.Tick)
}
