package rules

import (
	"fmt"
	"strings"
	"time"

	"github.com/roach88/gedcheck/internal/record"
)

// Date is a parsed date value. Partial dates are completed with day 1 and,
// when the month is missing, January.
type Date struct {
	time.Time
	Partial bool
}

var dateLayouts = []struct {
	layout  string
	partial bool
}{
	{"2 Jan 2006", false},
	{"Jan 2006", true},
	{"2006", true},
}

// ParseDate parses date text such as "1 JAN 1980", "JAN 1980" or "1980".
// Month names are matched case-insensitively.
func ParseDate(text string) (Date, error) {
	normalized := strings.Join(strings.Fields(text), " ")
	if normalized == "" {
		return Date{}, fmt.Errorf("empty date")
	}
	for _, l := range dateLayouts {
		t, err := time.Parse(l.layout, normalized)
		if err == nil {
			return Date{Time: t, Partial: l.partial}, nil
		}
	}
	return Date{}, fmt.Errorf("illegal date %q", text)
}

// FormatDate renders t the way dates appear in input files.
func FormatDate(t time.Time) string {
	return strings.ToUpper(t.Format("2 Jan 2006"))
}

// eventDate returns the parsed date of ev, if the event exists and carries a
// legal date.
func eventDate(ev record.Event) (time.Time, bool) {
	text, ok := ev.Date()
	if !ok {
		return time.Time{}, false
	}
	d, err := ParseDate(text)
	if err != nil {
		return time.Time{}, false
	}
	return d.Time, true
}

// yearsBetween returns the number of completed years from from to to.
func yearsBetween(from, to time.Time) int {
	years := to.Year() - from.Year()
	if to.Month() < from.Month() || (to.Month() == from.Month() && to.Day() < from.Day()) {
		years--
	}
	return years
}

// daysBetween returns the absolute number of whole days between a and b.
func daysBetween(a, b time.Time) int {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return int(d.Hours() / 24)
}
