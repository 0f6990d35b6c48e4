package dashboard

import (
	"context"
	"log"
	"sync"

	"library-backend/internal/platform/clock"
	"library-backend/internal/platform/dates"
	"library-backend/internal/platform/db"
	"library-backend/internal/platform/events"
)

type Service struct {
	store *Store
	clock clock.Clock

	mu     sync.Mutex
	gen    uint64
	memo   Stats
	memoOK bool
}

func NewService(conn *db.DB, clk clock.Clock) *Service {
	return &Service{store: NewStore(conn), clock: clk}
}

// Stats returns the dashboard as of asOf (today when zero). The last result is
// kept until Invalidate is called.
// GET /api-dashboard
func (s *Service) Stats(ctx context.Context, asOf dates.Date) (Stats, error) {
	if asOf.IsZero() {
		asOf = s.clock.Today()
	}

	s.mu.Lock()
	if s.memoOK && s.memo.AsOf == asOf {
		st := s.memo
		s.mu.Unlock()
		return st, nil
	}
	gen := s.gen
	s.mu.Unlock()

	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return Stats{}, err
	}
	st := Compute(snap, asOf)

	s.mu.Lock()
	// a change that landed while we were reading makes this result stale
	if s.gen == gen {
		s.memo, s.memoOK = st, true
	}
	s.mu.Unlock()
	return st, nil
}

// Invalidate drops the memoized result. Subscribe it to the event bus.
func (s *Service) Invalidate(ev events.Event) {
	s.mu.Lock()
	s.gen++
	s.memoOK = false
	s.mu.Unlock()
	log.Printf("[INFO] dashboard cache cleared by %s.%s %s", ev.Topic, ev.Action, ev.EntityID)
}
