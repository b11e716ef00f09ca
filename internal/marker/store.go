// Package marker tracks which in-flight conversation turns came through
// the conversational flow. The request-start hook inserts a mark; the
// decorating hook consumes it to decide whether the outgoing reply gets
// polished. Marks live only in process memory and are reclaimed by a
// background reaper when a send hook never fires.
package marker

import (
	"sync"
	"time"
)

// Store is a concurrency-safe map from turn identity to mark creation
// time. All operations take the store lock for the duration of a single
// map operation; nothing here blocks on I/O.
type Store struct {
	mu    sync.Mutex
	marks map[string]time.Time
	now   func() time.Time
}

// NewStore creates an empty store using the wall clock.
func NewStore() *Store {
	return NewStoreWithClock(time.Now)
}

// NewStoreWithClock creates an empty store with an injected clock.
// Tests use this to control mark ages without sleeping.
func NewStoreWithClock(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		marks: make(map[string]time.Time),
		now:   now,
	}
}

// Insert records a mark for the turn. A duplicate insert before the
// mark is consumed overwrites the timestamp; that is deliberate, not an
// error.
func (s *Store) Insert(turnID string) {
	s.mu.Lock()
	s.marks[turnID] = s.now()
	s.mu.Unlock()
}

// Consume atomically checks for a mark and removes it, reporting
// whether one was present. Two racing consumers for the same identity
// can never both observe true.
func (s *Store) Consume(turnID string) bool {
	s.mu.Lock()
	_, ok := s.marks[turnID]
	if ok {
		delete(s.marks, turnID)
	}
	s.mu.Unlock()
	return ok
}

// Discard removes a mark if present. Discarding an absent key is a
// no-op, so post-send cleanup can run unconditionally.
func (s *Store) Discard(turnID string) {
	s.mu.Lock()
	delete(s.marks, turnID)
	s.mu.Unlock()
}

// EvictOlderThan removes every mark created before now-maxAge and
// returns how many were removed. Cost is proportional to store size;
// only the reaper calls this, off the request path.
func (s *Store) EvictOlderThan(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxAge)
	evicted := 0
	for id, createdAt := range s.marks {
		if createdAt.Before(cutoff) {
			delete(s.marks, id)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of live marks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.marks)
}
