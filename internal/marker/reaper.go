package marker

import (
	"sync"
	"time"

	"chatpolish/internal/logging"
)

// Reaper periodically evicts marks older than the retention window,
// bounding store growth when a turn's send hook never fires. The
// retention window must comfortably exceed normal request-to-send
// latency or the gate loses marks it still needs.
type Reaper struct {
	store     *Store
	retention time.Duration
	interval  time.Duration

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewReaper creates a reaper for the given store. It does not start
// sweeping until Start is called.
func NewReaper(store *Store, retention, interval time.Duration) *Reaper {
	return &Reaper{
		store:     store,
		retention: retention,
		interval:  interval,
	}
}

// Start launches the background sweep loop. Calling Start on a running
// reaper is a no-op.
func (r *Reaper) Start() {
	r.mu.Lock()
	if r.stop != nil {
		r.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	r.stop = stop
	r.done = done
	r.mu.Unlock()

	logging.MarksDebug("Reaper started: retention=%v interval=%v", r.retention, r.interval)
	go r.run(stop, done)
}

// Stop signals the loop to exit and waits briefly for it to finish.
// Safe to call on a reaper that was never started.
func (r *Reaper) Stop() {
	r.mu.Lock()
	stop := r.stop
	done := r.done
	r.stop = nil
	r.done = nil
	r.mu.Unlock()

	if stop != nil {
		close(stop)
	}
	if done != nil {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
	}
}

func (r *Reaper) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// Sweep runs one eviction pass. Exposed so tests can drive a sweep
// deterministically without waiting on the ticker.
func (r *Reaper) Sweep() int {
	evicted := r.store.EvictOlderThan(r.retention)
	if evicted > 0 {
		logging.Marks("Reclaimed %d expired marks (retention=%v, remaining=%d)",
			evicted, r.retention, r.store.Len())
	}
	return evicted
}
