package datasets

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/on-the-ground/timeboard/lecture"
)

// flightStore wraps a sync.Map with the typed operations the cache needs.
type flightStore struct {
	sync.Map
}

func (s *flightStore) load(id ID) (*flight, bool) {
	v, ok := s.Map.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*flight), true
}

// insert publishes fl under id unless a flight is already there. It
// returns the winning flight and whether the caller lost the race.
func (s *flightStore) insert(id ID, fl *flight) (*flight, bool) {
	actual, loaded := s.Map.LoadOrStore(id, fl)
	return actual.(*flight), loaded
}

// clear removes id's marker only while it still maps to fl, so a fresh
// flight published by a later admit is never torn down by a stale one.
func (s *flightStore) clear(id ID, fl *flight) {
	s.Map.CompareAndDelete(id, fl)
}

// flight is the shared handle for one dataset id: a fetch in progress or
// resolved. done is closed exactly once, after records and err are final.
type flight struct {
	done    chan struct{}
	records []lecture.Lecture
	err     error
}

func newFlight() *flight {
	return &flight{done: make(chan struct{})}
}

func (fl *flight) run(ctx context.Context, c *Cache, id ID) {
	records, err := c.fetcher.FetchDataset(ctx, id)
	if err != nil {
		fl.err = err
		// clear the marker before waiters wake: whoever arrives after
		// the failure starts a fresh fetch instead of observing it
		c.flights.clear(id, fl)
		c.logger.Error("dataset fetch failed",
			zap.String("dataset", string(id)),
			zap.Error(err),
		)
		close(fl.done)
		return
	}
	fl.records = records
	c.logger.Debug("dataset resolved",
		zap.String("dataset", string(id)),
		zap.Int("records", len(records)),
	)
	close(fl.done)
}

// await blocks until the flight resolves or ctx is done. Cancellation
// abandons the wait only; the flight itself keeps running.
func (fl *flight) await(ctx context.Context) ([]lecture.Lecture, error) {
	select {
	case <-fl.done:
		return fl.records, fl.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
