package lecture

import (
	"strconv"
	"strings"
	"unicode"
)

// Meeting is one parsed (day, periods) pair of a schedule descriptor.
type Meeting struct {
	Day     string
	Periods []int
}

// Contains reports whether the meeting occupies the given period.
func (m Meeting) Contains(period int) bool {
	for _, p := range m.Periods {
		if p == period {
			return true
		}
	}
	return false
}

// ParseSchedule decodes a provider descriptor such as "월1,2/수3,4" into
// meetings. Segments are separated by '/'; each segment is a day label
// followed by comma-separated period numbers. Malformed segments contribute
// nothing: a descriptor that does not parse at all yields an empty meeting
// list, never an error, so such records simply match no day or period
// criterion.
func ParseSchedule(descriptor string) []Meeting {
	var meetings []Meeting
	segments := strings.FieldsFunc(descriptor, func(r rune) bool {
		return r == '/' || unicode.IsSpace(r)
	})
	for _, segment := range segments {
		day, rest := splitDay(segment)
		if day == "" || rest == "" {
			continue
		}
		periods, ok := parsePeriods(rest)
		if !ok {
			continue
		}
		meetings = append(meetings, Meeting{Day: day, Periods: periods})
	}
	return meetings
}

// splitDay cuts a segment at its first digit: "월1,2" -> ("월", "1,2").
func splitDay(segment string) (day, rest string) {
	for i, r := range segment {
		if unicode.IsDigit(r) {
			return segment[:i], segment[i:]
		}
	}
	return segment, ""
}

func parsePeriods(s string) ([]int, bool) {
	tokens := strings.Split(s, ",")
	periods := make([]int, 0, len(tokens))
	for _, token := range tokens {
		n, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil {
			return nil, false
		}
		periods = append(periods, n)
	}
	return periods, true
}
