package board

import (
	"time"

	"github.com/rickb777/date/v2/timespan"
)

// TimeSpan stamps when a write committed. Wall clocks are not exact, so
// events carry a narrow span around the commit instant rather than a
// single point.
type TimeSpan = timespan.TimeSpan

const epsilon = time.Millisecond

func committedNow() TimeSpan {
	now := time.Now()
	return timespan.BetweenTimes(now.Add(-1*epsilon), now.Add(epsilon))
}

// Op tags which kind of write produced an event.
type Op string

const (
	OpReplace Op = "replace"
	OpAppend  Op = "append"
	OpRemove  Op = "remove"
)

// Event is delivered to watchers of a partition after a write commits.
// Entries is the partition's new list, the same slice a Get after the
// write would return, so a consumer can render from the event without an
// extra read.
type Event[E any] struct {
	Key     string
	Op      Op
	Entries []E
	At      TimeSpan
}

// PartitionKey routes the event to its partition's worker.
func (ev Event[E]) PartitionKey() string {
	return ev.Key
}
