package rules

import (
	"time"

	"github.com/roach88/gedcheck/internal/record"
)

// Listing is a named report over the store, not a violation.
type Listing struct {
	Code        string   `json:"code"`
	Title       string   `json:"title"`
	Individuals []string `json:"individuals,omitempty"`
	Families    []string `json:"families,omitempty"`
}

// ListDeceased returns every individual with a death event.
func ListDeceased(c *Context) []*record.Individual {
	var out []*record.Individual
	for _, ind := range c.Store.SortedIndividuals() {
		if !ind.Alive() {
			out = append(out, ind)
		}
	}
	return out
}

// marriedNow reports whether id is a spouse in a family with a marriage and
// no divorce.
func (c *Context) marriedNow(id string) bool {
	for _, fam := range c.Store.Families() {
		if fam.Marriage != nil && fam.Divorce == nil && (fam.Husband == id || fam.Wife == id) {
			return true
		}
	}
	return false
}

// ListLivingMarried returns living individuals in an undivorced marriage.
func ListLivingMarried(c *Context) []*record.Individual {
	var out []*record.Individual
	for _, ind := range c.Store.SortedIndividuals() {
		if ind.Alive() && c.marriedNow(ind.ID) {
			out = append(out, ind)
		}
	}
	return out
}

// ListLivingSingle returns living individuals over 30 who were never married.
func ListLivingSingle(c *Context) []*record.Individual {
	now := c.Clock.Now()
	var out []*record.Individual
	for _, ind := range c.Store.SortedIndividuals() {
		if !ind.Alive() {
			continue
		}
		born, ok := eventDate(ind.Birth)
		if !ok || yearsBetween(born, now) <= 30 {
			continue
		}
		married := false
		for _, fam := range c.Store.Families() {
			if fam.Marriage != nil && (fam.Husband == ind.ID || fam.Wife == ind.ID) {
				married = true
				break
			}
		}
		if !married {
			out = append(out, ind)
		}
	}
	return out
}

// recent reports whether t lies within the last RecentDays, today included.
func (c *Context) recent(t time.Time) bool {
	now := c.Clock.Now()
	return !t.After(now) && !t.Before(now.AddDate(0, 0, -c.Thresholds.RecentDays))
}

// ListRecentBirths returns individuals born within the recent window.
func ListRecentBirths(c *Context) []*record.Individual {
	var out []*record.Individual
	for _, ind := range c.Store.SortedIndividuals() {
		if born, ok := eventDate(ind.Birth); ok && c.recent(born) {
			out = append(out, ind)
		}
	}
	return out
}

// ListRecentDeaths returns individuals who died within the recent window.
func ListRecentDeaths(c *Context) []*record.Individual {
	var out []*record.Individual
	for _, ind := range c.Store.SortedIndividuals() {
		if died, ok := eventDate(ind.Death); ok && c.recent(died) {
			out = append(out, ind)
		}
	}
	return out
}

// ListUpcomingAnniversaries returns undivorced families with both spouses
// alive whose marriage anniversary falls within the next RecentDays.
func ListUpcomingAnniversaries(c *Context) []*record.Family {
	now := c.Clock.Now()
	horizon := now.AddDate(0, 0, c.Thresholds.RecentDays)
	var out []*record.Family
	for _, fam := range c.Store.SortedFamilies() {
		marr, ok := eventDate(fam.Marriage)
		if !ok || fam.Divorce != nil {
			continue
		}
		if h := c.individual(fam.Husband); h == nil || !h.Alive() {
			continue
		}
		if w := c.individual(fam.Wife); w == nil || !w.Alive() {
			continue
		}
		next := time.Date(now.Year(), marr.Month(), marr.Day(), 0, 0, 0, 0, time.UTC)
		if next.Before(now) {
			next = next.AddDate(1, 0, 0)
		}
		if !next.After(horizon) {
			out = append(out, fam)
		}
	}
	return out
}

// Listings runs every listing in code order.
func Listings(c *Context) []Listing {
	return []Listing{
		{Code: "US29", Title: "Deceased", Individuals: ids(ListDeceased(c))},
		{Code: "US30", Title: "Living married", Individuals: ids(ListLivingMarried(c))},
		{Code: "US31", Title: "Living single", Individuals: ids(ListLivingSingle(c))},
		{Code: "US35", Title: "Recent births", Individuals: ids(ListRecentBirths(c))},
		{Code: "US36", Title: "Recent deaths", Individuals: ids(ListRecentDeaths(c))},
		{Code: "US39", Title: "Upcoming anniversaries", Families: familyIDs(ListUpcomingAnniversaries(c))},
	}
}

func ids(inds []*record.Individual) []string {
	out := make([]string, 0, len(inds))
	for _, ind := range inds {
		out = append(out, ind.ID)
	}
	return out
}

func familyIDs(fams []*record.Family) []string {
	out := make([]string, 0, len(fams))
	for _, fam := range fams {
		out = append(out, fam.ID)
	}
	return out
}
