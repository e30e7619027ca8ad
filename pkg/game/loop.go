package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cbodonnell/worldlens/pkg/log"
)

// ErrSessionEnded is returned by Driver.Start when the session gave up on the target.
var ErrSessionEnded = errors.New("session ended")

// Driver polls a Game at a fixed interval.
type Driver struct {
	game           *Game
	interval       time.Duration
	maxFailures    int
	sessionTimeout time.Duration
}

// NewDriverOptions contains options for creating a new Driver.
type NewDriverOptions struct {
	Game     *Game
	Interval time.Duration
	// MaxFailures ends the session after this many consecutive failed cycles. Zero disables the limit.
	MaxFailures int
	// SessionTimeout ends the session when no cycle succeeded for this long. Zero disables the limit.
	SessionTimeout time.Duration
}

func NewDriver(opts NewDriverOptions) *Driver {
	return &Driver{
		game:           opts.Game,
		interval:       opts.Interval,
		maxFailures:    opts.MaxFailures,
		sessionTimeout: opts.SessionTimeout,
	}
}

// Start runs the read loop until ctx is done or the session ends.
func (d *Driver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	failures := 0
	lastSuccess := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-ticker.C:
			err := d.game.Read(ctx)
			if err == nil {
				if failures > 0 {
					log.Info("Read cycle recovered after %d failures", failures)
				}
				failures = 0
				lastSuccess = t
				continue
			}

			failures++
			log.Warn("Failed to run read cycle: %v", err)
			if d.maxFailures > 0 && failures >= d.maxFailures {
				return fmt.Errorf("%w: %d consecutive failures, last: %w", ErrSessionEnded, failures, err)
			}
			if d.sessionTimeout > 0 && t.Sub(lastSuccess) >= d.sessionTimeout {
				return fmt.Errorf("%w: no successful read for %s, last: %w", ErrSessionEnded, t.Sub(lastSuccess), err)
			}
		}
	}
}
