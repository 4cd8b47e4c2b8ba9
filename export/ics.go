package export

import (
	"errors"
	"fmt"

	ics "github.com/arran4/golang-ical"

	"github.com/on-the-ground/timeboard/lecture"
)

// ErrNoEntries reports an export with nothing to render.
var ErrNoEntries = errors.New("no exportable entries")

// ICS renders one schedule partition as an iCalendar document: one weekly
// recurring event per entry, running for the term's week count. Entries
// whose day label the term cannot place are skipped.
func ICS(entries []*lecture.Entry, term Term) (string, error) {
	if len(entries) == 0 {
		return "", ErrNoEntries
	}
	term = term.normalized()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//timeboard//timetable export//KO")
	if term.Name != "" {
		cal.SetXWRCalName(term.Name)
	}

	exported := 0
	for i, e := range entries {
		start, end, ok := term.slot(e.Day, e.Periods)
		if !ok {
			continue
		}
		event := cal.AddEvent(fmt.Sprintf("%s-%d@timeboard", e.Lecture.ID, i))
		event.SetDtStampTime(start)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(e.Lecture.Title)
		if e.Room != "" {
			event.SetLocation(e.Room)
		}
		event.SetDescription(fmt.Sprintf("%s / %s credits", e.Lecture.Major, e.Lecture.Credits))
		event.SetProperty(ics.ComponentPropertyRrule, fmt.Sprintf("FREQ=WEEKLY;COUNT=%d", term.Weeks))
		exported++
	}
	if exported == 0 {
		return "", ErrNoEntries
	}
	return cal.Serialize(), nil
}
