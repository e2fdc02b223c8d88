package record

import (
	"fmt"
	"sort"
)

// Store owns the individuals and families of one parsed document.
// It exposes no mutation and is safe for concurrent readers.
type Store struct {
	individuals []*Individual
	families    []*Family

	indiByID map[string]*Individual
	famByID  map[string]*Family

	sortedIndis []*Individual
	sortedFams  []*Family
}

// NewStore takes ownership of the given records, kept in the order passed.
// When an identifier repeats, lookups resolve to its first occurrence.
func NewStore(individuals []*Individual, families []*Family) *Store {
	s := &Store{
		individuals: individuals,
		families:    families,
		indiByID:    make(map[string]*Individual, len(individuals)),
		famByID:     make(map[string]*Family, len(families)),
	}
	for _, ind := range individuals {
		if _, dup := s.indiByID[ind.ID]; !dup {
			s.indiByID[ind.ID] = ind
		}
	}
	for _, fam := range families {
		if _, dup := s.famByID[fam.ID]; !dup {
			s.famByID[fam.ID] = fam
		}
	}

	s.sortedIndis = append([]*Individual(nil), individuals...)
	sort.SliceStable(s.sortedIndis, func(a, b int) bool {
		return s.sortedIndis[a].ID < s.sortedIndis[b].ID
	})
	s.sortedFams = append([]*Family(nil), families...)
	sort.SliceStable(s.sortedFams, func(a, b int) bool {
		return s.sortedFams[a].ID < s.sortedFams[b].ID
	})
	return s
}

// Individuals returns individuals in parse order.
// Callers must not modify the returned slice or its records.
func (s *Store) Individuals() []*Individual {
	return s.individuals
}

// Families returns families in parse order.
func (s *Store) Families() []*Family {
	return s.families
}

// SortedIndividuals returns individuals ordered by identifier.
func (s *Store) SortedIndividuals() []*Individual {
	return s.sortedIndis
}

// SortedFamilies returns families ordered by identifier.
func (s *Store) SortedFamilies() []*Family {
	return s.sortedFams
}

// FindIndividual looks up an individual by identifier.
func (s *Store) FindIndividual(id string) (*Individual, bool) {
	ind, ok := s.indiByID[id]
	return ind, ok
}

// FindFamily looks up a family by identifier.
func (s *Store) FindFamily(id string) (*Family, bool) {
	fam, ok := s.famByID[id]
	return fam, ok
}

// Fingerprint returns the content address of the store.
// Two stores built from the same records in the same order share a fingerprint.
func (s *Store) Fingerprint() (string, error) {
	indis := make([]any, len(s.individuals))
	for i, ind := range s.individuals {
		indis[i] = individualObject(ind)
	}
	fams := make([]any, len(s.families))
	for i, fam := range s.families {
		fams[i] = familyObject(fam)
	}

	canonical, err := MarshalCanonical(map[string]any{
		"individuals": indis,
		"families":    fams,
	})
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	return hashWithDomain(DomainStore, canonical), nil
}

func individualObject(ind *Individual) map[string]any {
	obj := map[string]any{
		"id":   ind.ID,
		"name": ind.Name,
		"sex":  string(ind.Sex),
		"famc": stringsToAny(ind.ChildOf),
		"fams": stringsToAny(ind.SpouseOf),
	}
	if ind.Birth != nil {
		obj["birt"] = eventObject(ind.Birth)
	}
	if ind.Death != nil {
		obj["deat"] = eventObject(ind.Death)
	}
	return obj
}

func familyObject(fam *Family) map[string]any {
	obj := map[string]any{
		"id":   fam.ID,
		"husb": fam.Husband,
		"wife": fam.Wife,
		"chil": stringsToAny(fam.Children),
	}
	if fam.Marriage != nil {
		obj["marr"] = eventObject(fam.Marriage)
	}
	if fam.Divorce != nil {
		obj["div"] = eventObject(fam.Divorce)
	}
	return obj
}

func eventObject(ev Event) map[string]any {
	obj := make(map[string]any, len(ev))
	for k, v := range ev {
		obj[k] = v
	}
	return obj
}

func stringsToAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
