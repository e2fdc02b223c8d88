package rules

import (
	"time"

	"github.com/roach88/gedcheck/internal/record"
)

// datedEvent names one event of one record, for rules that sweep every date.
type datedEvent struct {
	kind  string
	id    string
	label string
	event record.Event
}

func allEvents(s *record.Store) []datedEvent {
	var out []datedEvent
	for _, ind := range s.SortedIndividuals() {
		if ind.Birth != nil {
			out = append(out, datedEvent{KindIndividual, ind.ID, "birth", ind.Birth})
		}
		if ind.Death != nil {
			out = append(out, datedEvent{KindIndividual, ind.ID, "death", ind.Death})
		}
	}
	for _, fam := range s.SortedFamilies() {
		if fam.Marriage != nil {
			out = append(out, datedEvent{KindFamily, fam.ID, "marriage", fam.Marriage})
		}
		if fam.Divorce != nil {
			out = append(out, datedEvent{KindFamily, fam.ID, "divorce", fam.Divorce})
		}
	}
	return out
}

func (e emitter) on(ev datedEvent, format string, args ...any) {
	e.add(ev.kind, ev.id, format, args...)
}

var datesBeforeCurrentDate = check{
	code:  "US01",
	story: "Dates before current date",
	fn: func(c *Context, emit emitter) {
		now := c.Clock.Now()
		for _, ev := range allEvents(c.Store) {
			if d, ok := eventDate(ev.event); ok && d.After(now) {
				emit.on(ev, "%s date %s is after the current date %s", ev.label, FormatDate(d), FormatDate(now))
			}
		}
	},
}

var birthBeforeMarriage = check{
	code:  "US02",
	story: "Birth before marriage",
	fn: func(c *Context, emit emitter) {
		for _, fam := range c.Store.SortedFamilies() {
			marr, ok := eventDate(fam.Marriage)
			if !ok {
				continue
			}
			for _, spouse := range fam.Spouses() {
				if born, ok := c.birth(spouse); ok && !born.Before(marr) {
					emit.family(fam.ID, "spouse %s born %s, not before marriage %s", spouse, FormatDate(born), FormatDate(marr))
				}
			}
		}
	},
}

var birthBeforeDeath = check{
	code:  "US03",
	story: "Birth before death",
	fn: func(c *Context, emit emitter) {
		for _, ind := range c.Store.SortedIndividuals() {
			born, ok := eventDate(ind.Birth)
			if !ok {
				continue
			}
			if died, ok := eventDate(ind.Death); ok && died.Before(born) {
				emit.individual(ind.ID, "death %s before birth %s", FormatDate(died), FormatDate(born))
			}
		}
	},
}

var marriageBeforeDivorce = check{
	code:  "US04",
	story: "Marriage before divorce",
	fn: func(c *Context, emit emitter) {
		for _, fam := range c.Store.SortedFamilies() {
			if fam.Divorce == nil {
				continue
			}
			if fam.Marriage == nil {
				emit.family(fam.ID, "divorce recorded without a marriage")
				continue
			}
			marr, ok := eventDate(fam.Marriage)
			if !ok {
				continue
			}
			if div, ok := eventDate(fam.Divorce); ok && div.Before(marr) {
				emit.family(fam.ID, "divorce %s before marriage %s", FormatDate(div), FormatDate(marr))
			}
		}
	},
}

// beforeSpouseDeath reports spouses who died before the family event ev.
func beforeSpouseDeath(c *Context, emit emitter, fam *record.Family, ev record.Event, label string) {
	when, ok := eventDate(ev)
	if !ok {
		return
	}
	for _, spouse := range fam.Spouses() {
		if died, ok := c.death(spouse); ok && died.Before(when) {
			emit.family(fam.ID, "%s %s after death of spouse %s on %s", label, FormatDate(when), spouse, FormatDate(died))
		}
	}
}

var marriageBeforeDeath = check{
	code:  "US05",
	story: "Marriage before death",
	fn: func(c *Context, emit emitter) {
		for _, fam := range c.Store.SortedFamilies() {
			beforeSpouseDeath(c, emit, fam, fam.Marriage, "marriage")
		}
	},
}

var divorceBeforeDeath = check{
	code:  "US06",
	story: "Divorce before death",
	fn: func(c *Context, emit emitter) {
		for _, fam := range c.Store.SortedFamilies() {
			beforeSpouseDeath(c, emit, fam, fam.Divorce, "divorce")
		}
	},
}

var lessThan150YearsOld = check{
	code:  "US07",
	story: "Less than 150 years old",
	fn: func(c *Context, emit emitter) {
		limit := c.Thresholds.MaxAgeYears
		for _, ind := range c.Store.SortedIndividuals() {
			born, ok := eventDate(ind.Birth)
			if !ok {
				continue
			}
			end := c.Clock.Now()
			state := "alive at"
			if ind.Death != nil {
				died, ok := eventDate(ind.Death)
				if !ok {
					continue
				}
				end, state = died, "dead at"
			}
			if age := yearsBetween(born, end); age >= limit {
				emit.individual(ind.ID, "%s age %d, limit is below %d", state, age, limit)
			}
		}
	},
}

var rejectIllegalDates = check{
	code:  "US42",
	story: "Reject illegal dates",
	fn: func(c *Context, emit emitter) {
		for _, ev := range allEvents(c.Store) {
			text, ok := ev.event.Date()
			if !ok {
				continue
			}
			if _, err := ParseDate(text); err != nil {
				emit.on(ev, "%s date %q is not a legal date", ev.label, text)
			}
		}
	},
}

// ageAt returns the completed years of id at t.
func (c *Context) ageAt(id string, t time.Time) (int, bool) {
	born, ok := c.birth(id)
	if !ok {
		return 0, false
	}
	return yearsBetween(born, t), true
}
