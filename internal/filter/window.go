package filter

import (
	"fmt"
	"strings"
	"time"
)

// Window is a relative range ending today.
type Window int

const (
	WindowAll Window = 0
	Window1M  Window = 1
	Window3M  Window = 3
	Window6M  Window = 6
	Window12M Window = 12
)

var windowNames = map[string]Window{
	"all": WindowAll,
	"1m":  Window1M,
	"3m":  Window3M,
	"6m":  Window6M,
	"12m": Window12M,
	"1y":  Window12M,
}

func ParseWindow(s string) (Window, error) {
	w, ok := windowNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return WindowAll, fmt.Errorf("unknown window %q (want all, 1m, 3m, 6m or 12m)", s)
	}
	return w, nil
}

func (w Window) String() string {
	if w == WindowAll {
		return "all"
	}
	return fmt.Sprintf("%dm", int(w))
}

// Range resolves the window against now. The result changes as real time
// moves on; callers pass time.Now() at the moment of filtering.
func (w Window) Range(now time.Time) DateRange {
	if w == WindowAll {
		return All
	}
	today := Day(now)
	return DateRange{Start: monthsBefore(today, int(w)), End: today}
}

// monthsBefore steps back n calendar months, clamping to the last day of the
// target month instead of rolling over into the next one.
func monthsBefore(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m-time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}
