// Package export renders schedule partitions into portable artifacts:
// iCalendar feeds and Excel workbooks.
package export

import (
	"time"

	"github.com/rickb777/date/v2"
)

// Term anchors a period grid in real time: when week 1 starts, how many
// weeks run, and how period numbers map to clock times.
type Term struct {
	Name        string
	Start       date.Date      // first day of week 1
	Weeks       int            // default: 16
	FirstPeriod int            // hour of day when period 1 begins, default: 9
	PeriodLen   time.Duration  // default: 1h
	Location    *time.Location // default: time.UTC
	DayOffsets  map[string]int // day label -> days after Start, default: Korean labels
}

var koreanDays = map[string]int{
	"월": 0, "화": 1, "수": 2, "목": 3, "금": 4, "토": 5, "일": 6,
}

func (t Term) normalized() Term {
	if t.Start == date.Zero {
		t.Start = date.Today()
	}
	if t.Weeks <= 0 {
		t.Weeks = 16
	}
	if t.FirstPeriod <= 0 {
		t.FirstPeriod = 9
	}
	if t.PeriodLen <= 0 {
		t.PeriodLen = time.Hour
	}
	if t.Location == nil {
		t.Location = time.UTC
	}
	if t.DayOffsets == nil {
		t.DayOffsets = koreanDays
	}
	return t
}

// slot maps a day label and period run to the concrete start and end of
// its week-1 occurrence. Unknown day labels and empty runs report !ok.
func (t Term) slot(day string, periods []int) (start, end time.Time, ok bool) {
	offset, known := t.DayOffsets[day]
	if !known || len(periods) == 0 {
		return time.Time{}, time.Time{}, false
	}
	d := t.Start.AddDate(0, 0, offset)
	dayStart := time.Date(d.Year(), d.Month(), d.Day(), t.FirstPeriod, 0, 0, 0, t.Location)
	start = dayStart.Add(time.Duration(periods[0]-1) * t.PeriodLen)
	end = start.Add(time.Duration(len(periods)) * t.PeriodLen)
	return start, end, true
}
