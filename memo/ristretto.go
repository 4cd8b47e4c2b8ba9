package memo

import (
	"fmt"
	"strings"

	"github.com/dgraph-io/ristretto/v2"
)

// RistrettoTable backs a memo table with a ristretto cache, for callers
// that prefer frequency-based admission over the trie's generational
// eviction. Key sequences are flattened into a single string key.
type RistrettoTable[O any] struct {
	cache *ristretto.Cache[string, O]
}

func NewRistrettoTable[O any](maxEntries int64) (*RistrettoTable[O], error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, O]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &RistrettoTable[O]{cache: cache}, nil
}

func (r *RistrettoTable[O]) Load(keys []ComparableOrString) (O, bool) {
	return r.cache.Get(flatten(keys))
}

// Store waits for the admission buffers to drain so a Load right after a
// Store observes the entry. Memo tables trade a little write latency for
// deterministic hits.
func (r *RistrettoTable[O]) Store(keys []ComparableOrString, value O) {
	r.cache.Set(flatten(keys), value, 1)
	r.cache.Wait()
}

func (r *RistrettoTable[O]) Close() {
	r.cache.Close()
}

func flatten(keys []ComparableOrString) string {
	if len(keys) == 0 {
		panic("memo: empty keys")
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%v", k)
	}
	return strings.Join(parts, "\x1f")
}
