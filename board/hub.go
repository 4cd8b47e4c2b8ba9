package board

import (
	"context"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// hub fans committed write events out to watchers. Events are queued to a
// fixed worker chosen by partition key hash, so one partition's events
// arrive in commit order while distinct partitions ride distinct workers.
type hub[E any] struct {
	queues   []chan Event[E]
	watchers sync.Map // key -> *watcherSet[E]
	buffer   int
	logger   *zap.Logger
}

// newHub starts the delivery workers. Every worker is running before
// newHub returns. The returned stop function tears them down, as does
// cancellation of ctx; queues are left unclosed so a late publish never
// panics, it just goes nowhere.
func newHub[E any](ctx context.Context, cfg Config, logger *zap.Logger) (*hub[E], func()) {
	ctx, cancel := context.WithCancel(ctx)
	h := &hub[E]{
		queues: make([]chan Event[E], cfg.NumWorkers),
		buffer: cfg.BufferSize,
		logger: logger,
	}
	ready := sync.WaitGroup{}
	for i := 0; i < cfg.NumWorkers; i++ {
		ready.Add(1)
		ch := make(chan Event[E], cfg.BufferSize)
		go func(ch chan Event[E]) {
			ready.Done()
			for {
				select {
				case ev := <-ch:
					h.deliver(ev)
				case <-ctx.Done():
					return
				}
			}
		}(ch)
		h.queues[i] = ch
	}
	ready.Wait()
	return h, cancel
}

// publish enqueues without blocking. When a worker's queue is full the
// event is dropped; the partition's current state stays readable via Get,
// so a lagging consumer loses notifications, not data.
func (h *hub[E]) publish(ev Event[E]) {
	select {
	case h.queues[indexByHash(ev.PartitionKey(), len(h.queues))] <- ev:
	default:
		h.logger.Warn("event queue full, dropping event",
			zap.String("partition", ev.Key),
			zap.String("op", string(ev.Op)),
		)
	}
}

func (h *hub[E]) deliver(ev Event[E]) {
	v, ok := h.watchers.Load(ev.Key)
	if !ok {
		return
	}
	for _, w := range v.(*watcherSet[E]).snapshot() {
		select {
		case <-w.gone:
		case w.ch <- ev:
		default:
			h.logger.Warn("watcher lagging, dropping event",
				zap.String("partition", ev.Key),
				zap.String("watcher", w.id),
			)
		}
	}
}

// watch registers a subscriber for key's events. The channel is never
// closed; the returned cancel unregisters, after which no further events
// are sent.
func (h *hub[E]) watch(key string) (<-chan Event[E], func()) {
	w := &watcher[E]{
		id:   uuid.NewString(),
		ch:   make(chan Event[E], h.buffer),
		gone: make(chan struct{}),
	}
	v, _ := h.watchers.LoadOrStore(key, &watcherSet[E]{})
	set := v.(*watcherSet[E])
	set.add(w)
	h.logger.Debug("watcher registered",
		zap.String("partition", key),
		zap.String("watcher", w.id),
	)

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(w.gone)
			set.remove(w.id)
			h.logger.Debug("watcher unregistered",
				zap.String("partition", key),
				zap.String("watcher", w.id),
			)
		})
	}
	return w.ch, cancel
}

type watcher[E any] struct {
	id   string
	ch   chan Event[E]
	gone chan struct{}
}

type watcherSet[E any] struct {
	mu sync.Mutex
	ws []*watcher[E]
}

func (s *watcherSet[E]) add(w *watcher[E]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ws = append(s.ws, w)
}

func (s *watcherSet[E]) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range s.ws {
		if w.id == id {
			s.ws = append(s.ws[:i], s.ws[i+1:]...)
			return
		}
	}
}

// snapshot copies the registration list so delivery never sends while
// holding the lock.
func (s *watcherSet[E]) snapshot() []*watcher[E] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*watcher[E](nil), s.ws...)
}

func indexByHash(key string, buckets int) int {
	switch buckets {
	case 0:
		panic("board: number of buckets cannot be 0")
	case 1:
		return 0
	default:
		return int(xxhash.Sum64String(key) % uint64(buckets))
	}
}
