package rules

import "github.com/roach88/gedcheck/internal/record"

// relatedMarriages adapts a kinship query to a rule body.
func relatedMarriages(query func(c *Context) []*record.Family, format string) func(c *Context, emit emitter) {
	return func(c *Context, emit emitter) {
		seen := map[*record.Family]bool{}
		for _, fam := range query(c) {
			if seen[fam] {
				continue
			}
			seen[fam] = true
			emit.family(fam.ID, format, fam.Husband, fam.Wife)
		}
	}
}

var noMarriagesToDescendants = check{
	code:  "US17",
	story: "No marriages to descendants",
	fn: relatedMarriages(func(c *Context) []*record.Family { return c.Kin.ParentChildMarriages() },
		"spouses %s and %s are parent and child"),
}

var siblingsShouldNotMarry = check{
	code:  "US18",
	story: "Siblings should not marry",
	fn: relatedMarriages(func(c *Context) []*record.Family { return c.Kin.SiblingMarriages() },
		"spouses %s and %s are siblings"),
}

var firstCousinsShouldNotMarry = check{
	code:  "US19",
	story: "First cousins should not marry",
	fn: relatedMarriages(func(c *Context) []*record.Family { return c.Kin.FirstCousinMarriages() },
		"spouses %s and %s are first cousins"),
}

var auntsAndUncles = check{
	code:  "US20",
	story: "Aunts and uncles",
	fn: relatedMarriages(func(c *Context) []*record.Family { return c.Kin.AuntUncleMarriages() },
		"spouses %s and %s are aunt or uncle and niece or nephew"),
}

var auntsAndUnclesBirthYears = check{
	code:  "US47",
	story: "Aunts and uncles not born in the same year",
	fn: func(c *Context, emit emitter) {
		for _, fam := range c.Store.SortedFamilies() {
			var aunts, uncles []string
			for _, id := range c.Kin.AuntsAndUncles(fam.ID) {
				ind := c.individual(id)
				if ind == nil {
					continue
				}
				if ind.Sex == record.SexFemale {
					aunts = append(aunts, id)
				} else {
					uncles = append(uncles, id)
				}
			}
			for _, aunt := range aunts {
				auntBorn, ok := c.birth(aunt)
				if !ok {
					continue
				}
				for _, uncle := range uncles {
					if uncleBorn, ok := c.birth(uncle); ok && uncleBorn.Year() == auntBorn.Year() {
						emit.family(fam.ID, "aunt %s and uncle %s were both born in %d", aunt, uncle, auntBorn.Year())
					}
				}
			}
		}
	},
}
