package lecture

// Entry is one cell of a schedule board: a lecture placed at a concrete
// day and period run, optionally with a room. The referenced Lecture is
// shared and read-only; Day, Periods and Room belong to the entry and
// change when the user drags it elsewhere.
//
// A period run is an ordered sequence of primitive ints and is always
// compared element-wise, never by serialized form.
type Entry struct {
	Lecture *Lecture
	Day     string
	Periods []int
	Room    string
}

// NewEntry places lec at the given meeting. The meeting's period run is
// copied so later moves never write through to the parsed schedule.
func NewEntry(lec *Lecture, m Meeting, room string) *Entry {
	periods := make([]int, len(m.Periods))
	copy(periods, m.Periods)
	return &Entry{Lecture: lec, Day: m.Day, Periods: periods, Room: room}
}

// MoveTo reassigns the entry to a new day and period run.
func (e *Entry) MoveTo(day string, periods []int) {
	cp := make([]int, len(periods))
	copy(cp, periods)
	e.Day = day
	e.Periods = cp
}

// At reports whether the entry occupies exactly the given day and period
// run.
func (e *Entry) At(day string, periods []int) bool {
	if e.Day != day || len(e.Periods) != len(periods) {
		return false
	}
	for i, p := range e.Periods {
		if p != periods[i] {
			return false
		}
	}
	return true
}

// Overlaps reports whether two entries share a day and at least one period.
func (e *Entry) Overlaps(o *Entry) bool {
	if e.Day != o.Day {
		return false
	}
	for _, p := range e.Periods {
		for _, q := range o.Periods {
			if p == q {
				return true
			}
		}
	}
	return false
}
