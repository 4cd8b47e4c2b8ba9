package memo

import (
	"sync"
	"sync/atomic"
)

// Trie is a bounded multi-key table: keys address nested sync.Maps, one
// level per key. Capacity is enforced generationally. Once maxSize entries
// accumulate, writes move to a fresh generation and lookups fall back to
// the previous one, so eviction is O(1) and entries still in use get
// re-promoted by their next Store.
type Trie[O any] struct {
	generations [2]atomic.Pointer[sync.Map]
	head        atomic.Uint32
	size        atomic.Uint32
	maxSize     uint32
}

func NewTrie[O any](maxSize uint32) *Trie[O] {
	if maxSize == 0 {
		panic("memo: trie maxSize should be greater than 0")
	}
	t := &Trie[O]{maxSize: maxSize}
	t.generations[0].Store(&sync.Map{})
	t.generations[1].Store(&sync.Map{})
	return t
}

func (t *Trie[O]) Load(keys []ComparableOrString) (O, bool) {
	head := t.head.Load()
	if v, ok := lookup[O](t.generations[head].Load(), keys); ok {
		return v, true
	}
	return lookup[O](t.generations[1-head].Load(), keys)
}

func (t *Trie[O]) Store(keys []ComparableOrString, value O) {
	if t.size.CompareAndSwap(t.maxSize, 0) {
		// generation flip: clear the retiring map before readers are
		// sent to it as the new head
		head := t.head.Load()
		t.generations[1-head].Store(&sync.Map{})
		t.head.Store(1 - head)
	}
	m, last := descend(t.generations[t.head.Load()].Load(), keys)
	m.Store(last, value)
	t.size.Add(1)
}

func lookup[O any](gen *sync.Map, keys []ComparableOrString) (O, bool) {
	var zero O
	m, last, ok := walk(gen, keys)
	if !ok {
		return zero, false
	}
	v, ok := m.Load(last)
	if !ok {
		return zero, false
	}
	return v.(O), true
}

// walk follows the key path without creating intermediate maps.
func walk(gen *sync.Map, keys []ComparableOrString) (*sync.Map, ComparableOrString, bool) {
	length := len(keys)
	if length == 0 {
		panic("memo: empty keys")
	}
	m := gen
	for _, k := range keys[:length-1] {
		v, ok := m.Load(k)
		if !ok {
			return nil, nil, false
		}
		m = v.(*sync.Map)
	}
	return m, keys[length-1], true
}

// descend follows the key path, creating intermediate maps as needed.
func descend(gen *sync.Map, keys []ComparableOrString) (*sync.Map, ComparableOrString) {
	length := len(keys)
	if length == 0 {
		panic("memo: empty keys")
	}
	m := gen
	for _, k := range keys[:length-1] {
		v, _ := m.LoadOrStore(k, &sync.Map{})
		m = v.(*sync.Map)
	}
	return m, keys[length-1]
}
