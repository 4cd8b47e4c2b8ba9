package export_test

import (
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/rickb777/date/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/timeboard/export"
	"github.com/on-the-ground/timeboard/lecture"
)

func testTerm() export.Term {
	return export.Term{
		Name:        "2026-1",
		Start:       date.New(2026, time.March, 2), // a Monday
		Weeks:       16,
		FirstPeriod: 9,
		PeriodLen:   time.Hour,
	}
}

func placed(id, title, day string, periods []int, room string) *lecture.Entry {
	return &lecture.Entry{
		Lecture: &lecture.Lecture{ID: id, Title: title, Major: "전산", Credits: "3"},
		Day:     day,
		Periods: periods,
		Room:    room,
	}
}

func TestICS_RendersWeeklyEvents(t *testing.T) {
	entries := []*lecture.Entry{
		placed("CS101", "자료구조", "월", []int{1, 2}, "E204"),
		placed("CS201", "운영체제", "수", []int{3, 4}, ""),
	}

	doc, err := export.ICS(entries, testTerm())
	require.NoError(t, err)

	cal, err := ics.ParseCalendar(strings.NewReader(doc))
	require.NoError(t, err, "the export must parse back as iCalendar")

	events := cal.Events()
	require.Len(t, events, 2)

	first := events[0]
	assert.Equal(t, "자료구조", first.GetProperty(ics.ComponentPropertySummary).Value)
	assert.Equal(t, "E204", first.GetProperty(ics.ComponentPropertyLocation).Value)
	assert.Equal(t, "FREQ=WEEKLY;COUNT=16", first.GetProperty(ics.ComponentPropertyRrule).Value)

	start, err := first.GetStartAt()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC), start.UTC(),
		"period 1 on 월 begins at 09:00 of the term's first Monday")

	end, err := first.GetEndAt()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 2, 11, 0, 0, 0, time.UTC), end.UTC(),
		"a two-period run spans two hours")

	second := events[1]
	start, err = second.GetStartAt()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 4, 11, 0, 0, 0, time.UTC), start.UTC())
}

func TestICS_SkipsUnplaceableEntries(t *testing.T) {
	entries := []*lecture.Entry{
		placed("CS101", "자료구조", "월", []int{1}, ""),
		placed("MA110", "Calculus I", "online", []int{1}, ""),
	}

	doc, err := export.ICS(entries, testTerm())
	require.NoError(t, err)

	cal, err := ics.ParseCalendar(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Len(t, cal.Events(), 1, "entries with unknown day labels are skipped")
}

func TestICS_NothingToExport(t *testing.T) {
	_, err := export.ICS(nil, testTerm())
	assert.ErrorIs(t, err, export.ErrNoEntries)

	onlyUnplaceable := []*lecture.Entry{
		placed("MA110", "Calculus I", "online", []int{1}, ""),
	}
	_, err = export.ICS(onlyUnplaceable, testTerm())
	assert.ErrorIs(t, err, export.ErrNoEntries)
}

func TestICS_CustomDayLabels(t *testing.T) {
	term := testTerm()
	term.DayOffsets = map[string]int{"Mon": 0, "Wed": 2}

	entries := []*lecture.Entry{
		placed("CS101", "Data Structures", "Wed", []int{2}, ""),
	}
	doc, err := export.ICS(entries, term)
	require.NoError(t, err)

	cal, err := ics.ParseCalendar(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, cal.Events(), 1)

	start, err := cal.Events()[0].GetStartAt()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC), start.UTC())
}
