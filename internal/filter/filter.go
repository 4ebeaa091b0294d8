/*
Package filter narrows normalized announcements by date range, relative window
or free-text search.
*/
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/shanehull/corpactions/internal/types"
)

// DateRange is an inclusive pair of calendar dates. A zero Start or End is
// open on that side; the zero DateRange is the unrestricted All.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// All matches every record, including those whose date cannot be parsed.
var All = DateRange{}

func (r DateRange) Bounded() bool {
	return !r.Start.IsZero() || !r.End.IsZero()
}

// Contains reports whether calendar day d lies within the range.
func (r DateRange) Contains(d time.Time) bool {
	d = Day(d)
	if !r.Start.IsZero() && d.Before(Day(r.Start)) {
		return false
	}
	if !r.End.IsZero() && d.After(Day(r.End)) {
		return false
	}
	return true
}

func (r DateRange) String() string {
	if !r.Bounded() {
		return "all"
	}
	f := func(t time.Time) string {
		if t.IsZero() {
			return "..."
		}
		return t.Format("02/01/2006")
	}
	return f(r.Start) + " - " + f(r.End)
}

// ParseRange builds a range from day-first strings; an empty string leaves
// that side open.
func ParseRange(from, to string) (DateRange, error) {
	var r DateRange
	if strings.TrimSpace(from) != "" {
		d, ok := ParseDate(from)
		if !ok {
			return r, fmt.Errorf("invalid start date %q (expected DD/MM/YYYY)", from)
		}
		r.Start = d
	}
	if strings.TrimSpace(to) != "" {
		d, ok := ParseDate(to)
		if !ok {
			return r, fmt.Errorf("invalid end date %q (expected DD/MM/YYYY)", to)
		}
		r.End = d
	}
	return r, nil
}

// ByRange keeps the records dated within r. Unparseable dates are dropped
// from bounded ranges and kept for All. A reversed range yields nothing.
func ByRange(records []types.Announcement, r DateRange) []types.Announcement {
	if !r.Bounded() {
		return records
	}
	out := make([]types.Announcement, 0, len(records))
	for _, rec := range records {
		d, ok := ParseDate(rec.Date)
		if !ok {
			continue
		}
		if r.Contains(d) {
			out = append(out, rec)
		}
	}
	return out
}

// Search keeps records whose description or details contain query, ignoring
// case. An empty query returns records unchanged.
func Search(records []types.Announcement, query string) []types.Announcement {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}
	out := make([]types.Announcement, 0, len(records))
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.Description), q) ||
			strings.Contains(strings.ToLower(rec.Details), q) {
			out = append(out, rec)
		}
	}
	return out
}
