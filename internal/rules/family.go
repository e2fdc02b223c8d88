package rules

import (
	"sort"
	"strings"
	"time"

	"github.com/roach88/gedcheck/internal/record"
)

var birthBeforeMarriageOfParents = check{
	code:  "US08",
	story: "Birth before marriage of parents",
	fn: func(c *Context, emit emitter) {
		for _, fam := range c.Store.SortedFamilies() {
			marr, hasMarr := eventDate(fam.Marriage)
			div, hasDiv := eventDate(fam.Divorce)
			for _, child := range fam.Children {
				born, ok := c.birth(child)
				if !ok {
					continue
				}
				if hasMarr && born.Before(marr) {
					emit.family(fam.ID, "child %s born %s before parents' marriage %s", child, FormatDate(born), FormatDate(marr))
				}
				if hasDiv && born.After(div.AddDate(0, 9, 0)) {
					emit.family(fam.ID, "child %s born %s more than 9 months after parents' divorce %s", child, FormatDate(born), FormatDate(div))
				}
			}
		}
	},
}

var birthBeforeDeathOfParents = check{
	code:  "US09",
	story: "Birth before death of parents",
	fn: func(c *Context, emit emitter) {
		for _, fam := range c.Store.SortedFamilies() {
			motherDied, hasMother := c.death(fam.Wife)
			fatherDied, hasFather := c.death(fam.Husband)
			for _, child := range fam.Children {
				born, ok := c.birth(child)
				if !ok {
					continue
				}
				if hasMother && born.After(motherDied) {
					emit.family(fam.ID, "child %s born %s after death of mother %s", child, FormatDate(born), FormatDate(motherDied))
				}
				if hasFather && born.After(fatherDied.AddDate(0, 9, 0)) {
					emit.family(fam.ID, "child %s born %s more than 9 months after death of father %s", child, FormatDate(born), FormatDate(fatherDied))
				}
			}
		}
	},
}

var marriageAfter14 = check{
	code:  "US10",
	story: "Marriage after 14",
	fn: func(c *Context, emit emitter) {
		limit := c.Thresholds.MinMarriageAge
		for _, fam := range c.Store.SortedFamilies() {
			marr, ok := eventDate(fam.Marriage)
			if !ok {
				continue
			}
			for _, role := range []struct{ label, id string }{{"husband", fam.Husband}, {"wife", fam.Wife}} {
				// A spouse born after the wedding is reported by US02.
				if age, ok := c.ageAt(role.id, marr); ok && age >= 0 && age < limit {
					emit.family(fam.ID, "%s %s was %d at marriage, minimum is %d", role.label, role.id, age, limit)
				}
			}
		}
	},
}

var parentsNotTooOld = check{
	code:  "US12",
	story: "Parents not too old",
	fn: func(c *Context, emit emitter) {
		for _, fam := range c.Store.SortedFamilies() {
			mother, hasMother := c.birth(fam.Wife)
			father, hasFather := c.birth(fam.Husband)
			for _, child := range fam.Children {
				born, ok := c.birth(child)
				if !ok {
					continue
				}
				if hasMother && born.After(mother.AddDate(c.Thresholds.MotherMaxAgeGap, 0, 0)) {
					emit.family(fam.ID, "mother %s is more than %d years older than child %s", fam.Wife, c.Thresholds.MotherMaxAgeGap, child)
				}
				if hasFather && born.After(father.AddDate(c.Thresholds.FatherMaxAgeGap, 0, 0)) {
					emit.family(fam.ID, "father %s is more than %d years older than child %s", fam.Husband, c.Thresholds.FatherMaxAgeGap, child)
				}
			}
		}
	},
}

// childBirths returns the distinct children of fam with a legal birth date,
// ordered by birth.
func (c *Context) childBirths(fam *record.Family) []datedChild {
	seen := map[string]bool{}
	var out []datedChild
	for _, id := range fam.Children {
		if seen[id] {
			continue
		}
		seen[id] = true
		if born, ok := c.birth(id); ok {
			out = append(out, datedChild{id: id, born: born})
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].born.Before(out[b].born) })
	return out
}

type datedChild struct {
	id   string
	born time.Time
}

var siblingSpacing = check{
	code:  "US13",
	story: "Siblings spacing",
	fn: func(c *Context, emit emitter) {
		for _, fam := range c.Store.SortedFamilies() {
			kids := c.childBirths(fam)
			for i := 0; i < len(kids); i++ {
				for j := i + 1; j < len(kids); j++ {
					a, b := kids[i], kids[j]
					if daysBetween(a.born, b.born) < 2 {
						continue // twins and multiples
					}
					if b.born.Before(a.born.AddDate(0, 8, 0)) {
						emit.family(fam.ID, "siblings %s and %s born %s and %s, less than 8 months apart",
							a.id, b.id, FormatDate(a.born), FormatDate(b.born))
					}
				}
			}
		}
	},
}

var multipleBirths = check{
	code:  "US14",
	story: "Multiple births <= 5",
	fn: func(c *Context, emit emitter) {
		limit := c.Thresholds.MaxMultipleBirths
		for _, fam := range c.Store.SortedFamilies() {
			kids := c.childBirths(fam)
			for i := range kids {
				n := 1
				for j := i + 1; j < len(kids) && daysBetween(kids[i].born, kids[j].born) <= 1; j++ {
					n++
				}
				if n > limit {
					emit.family(fam.ID, "%d siblings born around %s, limit is %d", n, FormatDate(kids[i].born), limit)
					break
				}
			}
		}
	},
}

var fewerThan15Siblings = check{
	code:  "US15",
	story: "Fewer than 15 siblings",
	fn: func(c *Context, emit emitter) {
		limit := c.Thresholds.MaxSiblings
		for _, fam := range c.Store.SortedFamilies() {
			if n := len(fam.Children); n >= limit {
				emit.family(fam.ID, "%d children, must be fewer than %d", n, limit)
			}
		}
	},
}

var maleLastNames = check{
	code:  "US16",
	story: "Male last names",
	fn: func(c *Context, emit emitter) {
		for _, fam := range c.Store.SortedFamilies() {
			members := append([]string{fam.Husband}, fam.Children...)
			surnames := map[string]bool{}
			var order []string
			for _, id := range members {
				ind := c.individual(id)
				if ind == nil || ind.Sex != record.SexMale {
					continue
				}
				key := foldName(ind.Surname())
				if !surnames[key] {
					surnames[key] = true
					order = append(order, ind.Surname())
				}
			}
			if len(order) > 1 {
				emit.family(fam.ID, "male members have different last names: %s", strings.Join(order, ", "))
			}
		}
	},
}

var correctGenderForRole = check{
	code:  "US21",
	story: "Correct gender for role",
	fn: func(c *Context, emit emitter) {
		for _, fam := range c.Store.SortedFamilies() {
			if h := c.individual(fam.Husband); h != nil && h.Sex != record.SexMale {
				emit.family(fam.ID, "husband %s should be male, recorded %s", h.ID, sexLabel(h.Sex))
			}
			if w := c.individual(fam.Wife); w != nil && w.Sex != record.SexFemale {
				emit.family(fam.ID, "wife %s should be female, recorded %s", w.ID, sexLabel(w.Sex))
			}
		}
	},
}

func sexLabel(s record.Sex) string {
	switch s {
	case record.SexMale:
		return "male"
	case record.SexFemale:
		return "female"
	default:
		return "unknown"
	}
}

var uniqueFirstNamesInFamilies = check{
	code:  "US25",
	story: "Unique first names in families",
	fn: func(c *Context, emit emitter) {
		for _, fam := range c.Store.SortedFamilies() {
			seen := map[string]string{}
			done := map[string]bool{}
			for _, id := range fam.Children {
				ind := c.individual(id)
				if ind == nil || done[id] {
					continue
				}
				done[id] = true
				born, _ := ind.Birth.Date()
				key := foldName(ind.GivenName()) + "\x00" + born
				if first, dup := seen[key]; dup {
					emit.family(fam.ID, "children %s and %s share first name %q and birth date %q", first, id, ind.GivenName(), born)
					continue
				}
				seen[key] = id
			}
		}
	},
}
