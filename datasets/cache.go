// Package datasets caches fetches of immutable reference datasets.
//
// A Cache guarantees at most one underlying fetch per dataset id at a
// time: concurrent requests for a cold id join the one in-flight fetch,
// resolved ids are served without suspending, and a failed fetch clears
// its in-flight marker so the next request starts over instead of
// observing a poisoned entry. Resolved datasets are kept for the lifetime
// of the cache; there is no eviction and no refresh, by the same contract
// that makes the records safe to share unlocked: they never change.
package datasets

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/on-the-ground/timeboard/lecture"
)

// ID names one fetchable dataset, typically a category of course
// listings. It is opaque to the cache; the Fetcher defines its meaning.
type ID string

// Fetcher is the fetch capability the cache consumes. Implementations may
// be arbitrarily slow and may fail; see catalog for ready-made ones.
type Fetcher interface {
	FetchDataset(ctx context.Context, id ID) ([]lecture.Lecture, error)
}

// FetcherFunc adapts a plain function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, id ID) ([]lecture.Lecture, error)

func (f FetcherFunc) FetchDataset(ctx context.Context, id ID) ([]lecture.Lecture, error) {
	return f(ctx, id)
}

// DatasetError reports the failure of one dataset's fetch. Sibling
// datasets of the same batch are unaffected by it.
type DatasetError struct {
	ID  ID
	Err error
}

func (e *DatasetError) Error() string {
	return fmt.Sprintf("dataset %s: %v", e.ID, e.Err)
}

func (e *DatasetError) Unwrap() error {
	return e.Err
}

type Cache struct {
	fetcher Fetcher
	flights flightStore
	logger  *zap.Logger
}

func NewCache(fetcher Fetcher, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{fetcher: fetcher, logger: logger}
}

// FetchAll resolves every id and returns the record lists in input order.
// Cold ids are registered as in-flight before anything suspends, then
// fetched concurrently, so the wall-clock cost of a cold batch approaches
// a single fetch round-trip rather than their sum.
//
// A failing id leaves a nil slot in the result and contributes a
// *DatasetError to the combined error; successful siblings are returned
// regardless. Cancellation of ctx abandons the waits, not the fetches:
// an in-flight fetch keeps running so later callers can still join it.
func (c *Cache) FetchAll(ctx context.Context, ids []ID) ([][]lecture.Lecture, error) {
	flights := make([]*flight, len(ids))
	for i, id := range ids {
		flights[i] = c.admit(ctx, id)
	}

	results := make([][]lecture.Lecture, len(ids))
	var errs error
	for i, fl := range flights {
		records, err := fl.await(ctx)
		if err != nil {
			errs = multierr.Append(errs, &DatasetError{ID: ids[i], Err: err})
			continue
		}
		results[i] = records
	}
	return results, errs
}

// Fetch resolves a single id. Equivalent to a one-element FetchAll.
func (c *Cache) Fetch(ctx context.Context, id ID) ([]lecture.Lecture, error) {
	records, err := c.admit(ctx, id).await(ctx)
	if err != nil {
		return nil, &DatasetError{ID: id, Err: err}
	}
	return records, nil
}

// admit returns the flight for id, starting one if none exists. The new
// flight is published before its goroutine spawns, so a racing admit for
// the same id always joins instead of double-fetching.
func (c *Cache) admit(ctx context.Context, id ID) *flight {
	if fl, ok := c.flights.load(id); ok {
		return fl
	}
	fl := newFlight()
	actual, raced := c.flights.insert(id, fl)
	if raced {
		c.logger.Debug("joining in-flight dataset fetch",
			zap.String("dataset", string(id)),
		)
		return actual
	}

	// The fetch itself is detached from the admitting caller: its result
	// outlives any single request, so one caller's cancellation must not
	// starve the others.
	go fl.run(context.WithoutCancel(ctx), c, id)
	return fl
}
