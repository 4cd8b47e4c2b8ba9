package views

import (
	"sort"
	"strconv"
	"strings"
)

// QuerySpec is a value object describing one filter state. The zero value
// matches everything: empty set criteria are inactive, an empty Query
// matches every record, an empty Credits disables the credit criterion.
//
// Specs are plain data. Two field-wise equal specs (up to set order) render
// the same String(), so memo tables treat them as the same key.
type QuerySpec struct {
	Query   string   // case-insensitive substring of title or id
	Credits string   // prefix of Lecture.Credits, "" = inactive
	Grades  []int    // set membership on Lecture.Grade
	Majors  []string // set membership on Lecture.Major
	Days    []string // any parsed meeting day in this set
	Periods []int    // any parsed meeting period in this set
}

// String renders the canonical form of the spec: set criteria are sorted
// and deduplicated, so permutations of the same sets collapse to one key.
func (qs QuerySpec) String() string {
	var b strings.Builder
	b.WriteString("q=")
	b.WriteString(qs.Query)
	b.WriteString("|c=")
	b.WriteString(qs.Credits)
	b.WriteString("|g=")
	b.WriteString(joinInts(qs.Grades))
	b.WriteString("|m=")
	b.WriteString(joinStrings(qs.Majors))
	b.WriteString("|d=")
	b.WriteString(joinStrings(qs.Days))
	b.WriteString("|p=")
	b.WriteString(joinInts(qs.Periods))
	return b.String()
}

func joinInts(set []int) string {
	sorted := make([]int, len(set))
	copy(sorted, set)
	sort.Ints(sorted)
	parts := make([]string, 0, len(sorted))
	for i, n := range sorted {
		if i > 0 && n == sorted[i-1] {
			continue
		}
		parts = append(parts, strconv.Itoa(n))
	}
	return strings.Join(parts, ",")
}

func joinStrings(set []string) string {
	sorted := make([]string, len(set))
	copy(sorted, set)
	sort.Strings(sorted)
	parts := make([]string, 0, len(sorted))
	for i, s := range sorted {
		if i > 0 && s == sorted[i-1] {
			continue
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ",")
}
