// Package memo turns pure functions into memoized ones backed by a
// bounded table. Derivations that are pure but not cheap, filtering a few
// thousand records against a query, get recomputation skipped whenever the
// same inputs come back.
package memo

import "fmt"

// ComparableOrStringer marks an argument type that can key a table: either
// comparable, or carrying a String() form that is. The constraint cannot
// be expressed in the type system, so incomparable non-Stringer arguments
// panic at first use.
type ComparableOrStringer any

// ComparableOrString is the normalized key form stored in tables.
type ComparableOrString any

// Table is a bounded key-sequence to value store. Implementations must be
// safe for concurrent use; eviction policy is theirs to choose.
type Table[O any] interface {
	Load(keys []ComparableOrString) (O, bool)
	Store(keys []ComparableOrString, value O)
}

func tableKey(i ComparableOrStringer) ComparableOrString {
	if stringer, ok := i.(fmt.Stringer); ok {
		return stringer.String()
	}
	return i
}
