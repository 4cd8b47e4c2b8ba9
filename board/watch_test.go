package board_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/on-the-ground/timeboard/board"
	"github.com/on-the-ground/timeboard/lecture"
)

func nextEvent(t *testing.T, events <-chan board.Event[*lecture.Entry]) board.Event[*lecture.Entry] {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return board.Event[*lecture.Entry]{}
	}
}

func expectSilence(t *testing.T, events <-chan board.Event[*lecture.Entry]) {
	t.Helper()
	select {
	case ev := <-events:
		t.Fatalf("unexpected event: %s on %s", ev.Op, ev.Key)
	case <-time.After(80 * time.Millisecond):
	}
}

func TestWatch_DeliversCommittedWritesInOrder(t *testing.T) {
	store, stop := board.New[*lecture.Entry](context.Background(), board.NewConfig(16, 2), nil, zap.NewNop())
	defer stop()

	events, cancel := store.Watch("T1")
	defer cancel()

	begin := time.Now().Add(-time.Second)
	store.Append("T1", entry("A", "월", 1))
	store.Append("T1", entry("B", "화", 2))
	store.Remove("T1", func(e *lecture.Entry) bool { return e.Lecture.ID == "A" })

	first := nextEvent(t, events)
	second := nextEvent(t, events)
	third := nextEvent(t, events)

	assert.Equal(t, board.OpAppend, first.Op)
	assert.Equal(t, board.OpAppend, second.Op)
	assert.Equal(t, board.OpRemove, third.Op)
	assert.Len(t, first.Entries, 1)
	assert.Len(t, second.Entries, 2)
	assert.Len(t, third.Entries, 1)
	assert.Equal(t, "B", third.Entries[0].Lecture.ID)

	assert.True(t, first.At.Start().After(begin))
	assert.False(t, first.At.Start().After(time.Now()))
}

func TestWatch_EventCarriesTheCommittedList(t *testing.T) {
	store, stop := board.New[*lecture.Entry](context.Background(), board.NewConfig(4, 1), nil, zap.NewNop())
	defer stop()

	events, cancel := store.Watch("T1")
	defer cancel()

	store.Append("T1", entry("A", "월", 1))
	ev := nextEvent(t, events)

	assert.Same(t, backingArray(store.Get("T1")), backingArray(ev.Entries),
		"the event holds the same list a Get after the write returns")
}

func TestWatch_IgnoresOtherPartitions(t *testing.T) {
	store, stop := board.New[*lecture.Entry](context.Background(), board.NewConfig(4, 2), nil, zap.NewNop())
	defer stop()

	events, cancel := store.Watch("T1")
	defer cancel()

	store.Append("T2", entry("A", "월", 1))
	expectSilence(t, events)
}

func TestWatch_CancelStopsDelivery(t *testing.T) {
	store, stop := board.New[*lecture.Entry](context.Background(), board.NewConfig(4, 1), nil, zap.NewNop())
	defer stop()

	events, cancel := store.Watch("T1")
	cancel()
	cancel() // idempotent

	store.Append("T1", entry("A", "월", 1))
	expectSilence(t, events)
}

func TestWatch_StopEndsDelivery(t *testing.T) {
	store, stop := board.New[*lecture.Entry](context.Background(), board.NewConfig(1, 1), nil, zap.NewNop())

	events, cancel := store.Watch("T1")
	defer cancel()

	stop()
	store.Append("T1", entry("A", "월", 1)) // still commits, no panic
	assert.Len(t, store.Get("T1"), 1)
	expectSilence(t, events)
}

func TestWatch_BackpressureDropsInsteadOfBlocking(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	store, stop := board.New[*lecture.Entry](context.Background(), board.NewConfig(1, 1), nil, zap.New(core))
	defer stop()

	_, cancel := store.Watch("T1")
	defer cancel()

	// nobody consumes: queue and watcher buffers hold a couple of
	// events, the rest must be dropped with a warning
	for i := 0; i < 50; i++ {
		store.Append("T1", entry("A", "월", i))
	}

	assert.Len(t, store.Get("T1"), 50, "writes never block on slow watchers")
	require.Eventually(t, func() bool {
		return logs.Len() > 0
	}, time.Second, 10*time.Millisecond, "expected a dropped-event warning")
}
