// Package views derives visible lists from immutable lecture records:
// filtering, pagination and option extraction.
//
// Every function here is pure. Same inputs give element-wise equal
// outputs, nothing is cached internally and no call mutates its arguments,
// so results can be memoized externally (see memo) keyed on the inputs
// alone. RecordSet supplies an identity key for the record slice side of
// such keys; QuerySpec renders its own canonical key.
package views

import (
	"sort"
	"strings"

	"github.com/on-the-ground/timeboard/lecture"
)

// Filter returns the order-preserving subsequence of records that satisfy
// every active criterion of spec. Criteria combine as a conjunction;
// inactive criteria pass everything. The schedule descriptor of a record
// is parsed at most once per call, shared by the day and period checks.
func Filter(records []lecture.Lecture, spec QuerySpec) []lecture.Lecture {
	query := strings.ToLower(spec.Query)
	out := make([]lecture.Lecture, 0, len(records))
	for _, rec := range records {
		if !matchesText(rec, query) {
			continue
		}
		if len(spec.Grades) > 0 && !containsInt(spec.Grades, rec.Grade) {
			continue
		}
		if len(spec.Majors) > 0 && !containsString(spec.Majors, rec.Major) {
			continue
		}
		if spec.Credits != "" && !strings.HasPrefix(rec.Credits, spec.Credits) {
			continue
		}
		if !matchesSchedule(rec, spec) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matchesText(rec lecture.Lecture, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(rec.Title), query) ||
		strings.Contains(strings.ToLower(rec.ID), query)
}

// matchesSchedule applies the day and period criteria. The day criterion
// passes if any parsed meeting falls on a selected day; the period
// criterion passes if any parsed meeting touches a selected period. The
// two pass independently: they need not be satisfied by the same meeting.
// A record whose descriptor parses to nothing fails any active criterion.
func matchesSchedule(rec lecture.Lecture, spec QuerySpec) bool {
	if len(spec.Days) == 0 && len(spec.Periods) == 0 {
		return true
	}
	meetings := lecture.ParseSchedule(rec.Schedule)
	dayOK := len(spec.Days) == 0
	periodOK := len(spec.Periods) == 0
	for _, m := range meetings {
		if dayOK && periodOK {
			break
		}
		if !dayOK && containsString(spec.Days, m.Day) {
			dayOK = true
		}
		if !periodOK {
			for _, p := range spec.Periods {
				if m.Contains(p) {
					periodOK = true
					break
				}
			}
		}
	}
	return dayOK && periodOK
}

// Paginate returns the first page*pageSize records of filtered: pages are
// growing prefixes, so page 2 extends page 1 instead of replacing it.
// A page or pageSize of zero or less yields an empty list.
func Paginate(filtered []lecture.Lecture, page, pageSize int) []lecture.Lecture {
	if page <= 0 || pageSize <= 0 {
		return nil
	}
	n := page * pageSize
	if n > len(filtered) {
		n = len(filtered)
	}
	return filtered[:n:n]
}

// PageCount returns how many pages of pageSize cover filtered.
func PageCount(filtered []lecture.Lecture, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (len(filtered) + pageSize - 1) / pageSize
}

// DistinctMajors returns the unique major values across records, sorted so
// equal inputs yield equal outputs.
func DistinctMajors(records []lecture.Lecture) []string {
	seen := make(map[string]struct{}, len(records))
	majors := make([]string, 0, len(records))
	for _, rec := range records {
		if _, dup := seen[rec.Major]; dup {
			continue
		}
		seen[rec.Major] = struct{}{}
		majors = append(majors, rec.Major)
	}
	sort.Strings(majors)
	return majors
}

func containsInt(set []int, n int) bool {
	for _, m := range set {
		if m == n {
			return true
		}
	}
	return false
}

func containsString(set []string, s string) bool {
	for _, t := range set {
		if t == s {
			return true
		}
	}
	return false
}
