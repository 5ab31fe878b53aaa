package markvault

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/picobrowse/markvault/record"
)

// writer is the single background writer of a Store. All scheduled saves
// funnel through it, restoring the ordering guarantee that fire-and-forget
// persistence lacks: only one write sequence is ever in flight per store,
// and "latest wins" — intermediate snapshots scheduled during a burst are
// coalesced away.
type writer struct {
	store   *Store
	limiter *rate.Limiter

	// mu guards pending and stopped together: a schedule either lands
	// before stop and is flushed, or is refused. It is never set after the
	// final flush has already drained pending.
	mu      sync.Mutex
	pending *record.Library
	stopped bool

	kick   chan struct{}
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newWriter(s *Store, interval time.Duration) *writer {
	w := &writer{
		store: s,
		kick:  make(chan struct{}, 1),
	}
	if interval > 0 {
		w.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.wg.Add(1)
	go w.run(ctx)
	return w
}

// schedule replaces the pending snapshot and wakes the writer. It reports
// whether the snapshot was accepted; after stop it is refused.
func (w *writer) schedule(lib *record.Library) bool {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return false
	}
	w.pending = lib
	w.mu.Unlock()

	select {
	case w.kick <- struct{}{}:
	default:
	}
	return true
}

func (w *writer) take() *record.Library {
	w.mu.Lock()
	defer w.mu.Unlock()
	lib := w.pending
	w.pending = nil
	return lib
}

func (w *writer) run(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			w.flush()
			return
		case <-w.kick:
			if w.limiter != nil {
				if err := w.limiter.Wait(ctx); err != nil {
					// Shutting down; the final flush handles whatever is
					// still pending.
					continue
				}
			}
			if lib := w.take(); lib != nil {
				w.store.Save(context.Background(), lib)
			}
		}
	}
}

// flush writes the most recent pending snapshot, ignoring pacing. Called
// exactly once, on shutdown.
func (w *writer) flush() {
	if lib := w.take(); lib != nil {
		w.store.Save(context.Background(), lib)
	}
}

// stop refuses further schedules, shuts the writer down and blocks until
// the final flush completed. Ordering matters: stopped is set before the
// goroutine is cancelled, so every accepted snapshot reaches the flush.
func (w *writer) stop() {
	w.mu.Lock()
	w.stopped = true
	w.mu.Unlock()

	w.cancel()
	w.wg.Wait()
}
