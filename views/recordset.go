package views

import (
	"github.com/google/uuid"

	"github.com/on-the-ground/timeboard/lecture"
)

// RecordSet tags an immutable lecture slice with an identity token so that
// derivations over it can be memoized by identity instead of content.
// Build one per fetched dataset (or concatenation of datasets) and reuse it
// for as long as those records stay current; a refetch gets a fresh set.
type RecordSet struct {
	id      string
	Records []lecture.Lecture
}

func NewRecordSet(records []lecture.Lecture) RecordSet {
	return RecordSet{id: uuid.NewString(), Records: records}
}

// String returns the identity token. Memo tables key record sets on it.
func (rs RecordSet) String() string {
	return rs.id
}
