package filter

import (
	"strings"
	"time"
)

var dayFirstDates = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02.01.2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	"02 January 2006",
}

var timeSuffixes = []string{
	"",
	" 15:04",
	" 15:04:05",
	" 3:04 PM",
	" 03:04 PM",
	" 3:04:05 PM",
}

// Year-first forms are unambiguous and are what the BSE API emits.
var isoLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05.00",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var layouts = buildLayouts()

func buildLayouts() []string {
	out := make([]string, 0, len(dayFirstDates)*len(timeSuffixes)+len(isoLayouts))
	for _, d := range dayFirstDates {
		for _, t := range timeSuffixes {
			out = append(out, d+t)
		}
	}
	return append(out, isoLayouts...)
}

// ParseDate reads a source date with day-first precedence and returns the
// calendar date at midnight UTC. ok is false when no layout matches.
func ParseDate(s string) (d time.Time, ok bool) {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return time.Time{}, false
	}
	upper := strings.ToUpper(s)

	for _, layout := range layouts {
		candidate := s
		if strings.HasSuffix(layout, "PM") {
			candidate = upper
		}
		if t, err := time.Parse(layout, candidate); err == nil {
			return Day(t), true
		}
	}
	return time.Time{}, false
}

// Day truncates t to its calendar date in UTC, keeping t's wall-clock date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
