package rules

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// foldName normalizes a name for equality checks: NFC, case folded,
// slashes dropped and whitespace collapsed. A Caser is stateful, so each
// call gets its own.
func foldName(name string) string {
	name = strings.ReplaceAll(name, "/", " ")
	name = strings.Join(strings.Fields(name), " ")
	return cases.Fold().String(norm.NFC.String(name))
}

var uniqueIDs = check{
	code:  "US22",
	story: "Unique IDs",
	fn: func(c *Context, emit emitter) {
		owner := map[string]string{}
		reported := map[string]bool{}
		note := func(kind, id string) {
			if prev, dup := owner[id]; dup {
				if !reported[id] {
					reported[id] = true
					if prev == kind {
						emit.add(kind, id, "%s identifier %s is used more than once", kind, id)
					} else {
						emit.add(kind, id, "identifier %s is shared by %s and %s records", id, prev, kind)
					}
				}
				return
			}
			owner[id] = kind
		}
		for _, ind := range c.Store.Individuals() {
			note(KindIndividual, ind.ID)
		}
		for _, fam := range c.Store.Families() {
			note(KindFamily, fam.ID)
		}
	},
}

var uniqueNameAndBirthDate = check{
	code:  "US23",
	story: "Unique name and birth date",
	fn: func(c *Context, emit emitter) {
		seen := map[string]string{}
		for _, ind := range c.Store.SortedIndividuals() {
			born, ok := ind.Birth.Date()
			if ind.Name == "" || !ok {
				continue
			}
			key := foldName(ind.Name) + "\x00" + strings.Join(strings.Fields(strings.ToUpper(born)), " ")
			if first, dup := seen[key]; dup {
				emit.individual(ind.ID, "same name %q and birth date %q as %s", ind.Name, born, first)
				continue
			}
			seen[key] = ind.ID
		}
	},
}

var uniqueFamiliesBySpouses = check{
	code:  "US24",
	story: "Unique families by spouses",
	fn: func(c *Context, emit emitter) {
		seen := map[string]string{}
		for _, fam := range c.Store.SortedFamilies() {
			marr, ok := fam.Marriage.Date()
			if !ok {
				continue
			}
			var names []string
			for _, id := range []string{fam.Husband, fam.Wife} {
				if ind := c.individual(id); ind != nil {
					names = append(names, foldName(ind.Name))
				} else {
					names = append(names, "")
				}
			}
			key := strings.Join(names, "\x00") + "\x00" + strings.ToUpper(marr)
			if first, dup := seen[key]; dup {
				emit.family(fam.ID, "same spouses and marriage date %q as %s", marr, first)
				continue
			}
			seen[key] = fam.ID
		}
	},
}

var correspondingEntries = check{
	code:  "US26",
	story: "Corresponding entries",
	fn: func(c *Context, emit emitter) {
		for _, ind := range c.Store.SortedIndividuals() {
			for _, famID := range ind.SpouseOf {
				fam, ok := c.Store.FindFamily(famID)
				switch {
				case !ok:
					emit.individual(ind.ID, "spouse family %s does not exist", famID)
				case fam.Husband != ind.ID && fam.Wife != ind.ID:
					emit.individual(ind.ID, "spouse family %s does not list %s as husband or wife", famID, ind.ID)
				}
			}
			for _, famID := range ind.ChildOf {
				fam, ok := c.Store.FindFamily(famID)
				switch {
				case !ok:
					emit.individual(ind.ID, "child family %s does not exist", famID)
				case !fam.HasChild(ind.ID):
					emit.individual(ind.ID, "child family %s does not list %s as a child", famID, ind.ID)
				}
			}
		}
		for _, fam := range c.Store.SortedFamilies() {
			for _, role := range []struct{ label, id string }{{"husband", fam.Husband}, {"wife", fam.Wife}} {
				if role.id == "" {
					continue
				}
				ind := c.individual(role.id)
				switch {
				case ind == nil:
					emit.family(fam.ID, "%s %s does not exist", role.label, role.id)
				case !contains(ind.SpouseOf, fam.ID):
					emit.family(fam.ID, "%s %s does not list %s as a spouse family", role.label, role.id, fam.ID)
				}
			}
			for _, child := range fam.Children {
				ind := c.individual(child)
				switch {
				case ind == nil:
					emit.family(fam.ID, "child %s does not exist", child)
				case !contains(ind.ChildOf, fam.ID):
					emit.family(fam.ID, "child %s does not list %s as a child family", child, fam.ID)
				}
			}
		}
	},
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
