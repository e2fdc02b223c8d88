package kinship

import (
	"github.com/roach88/gedcheck/internal/record"
)

// Engine holds a non-owning reference to a finished store.
type Engine struct {
	store *record.Store
}

// New creates an engine over store.
func New(store *record.Store) *Engine {
	return &Engine{store: store}
}

// Store returns the store the engine reads.
func (e *Engine) Store() *record.Store {
	return e.store
}

// FamilyOfChild returns the first family, in parse order, listing
// individualID among its children.
func (e *Engine) FamilyOfChild(individualID string) (*record.Family, bool) {
	if individualID == "" {
		return nil, false
	}
	for _, fam := range e.store.Families() {
		if fam.HasChild(individualID) {
			return fam, true
		}
	}
	return nil, false
}

// parentFamilyID is FamilyOfChild reduced to the family identifier.
func (e *Engine) parentFamilyID(individualID string) (string, bool) {
	fam, ok := e.FamilyOfChild(individualID)
	if !ok {
		return "", false
	}
	return fam.ID, true
}

// AreFoundersSiblings reports whether a founder (husband or wife) of a and
// a founder of b share a parent family. A family is never its own sibling
// founder; nil families are never related.
func (e *Engine) AreFoundersSiblings(a, b *record.Family) bool {
	if a == nil || b == nil || a.ID == b.ID {
		return false
	}

	var aParents, bParents []string
	for _, founder := range a.Spouses() {
		if id, ok := e.parentFamilyID(founder); ok {
			aParents = append(aParents, id)
		}
	}
	if len(aParents) == 0 {
		return false
	}
	for _, founder := range b.Spouses() {
		if id, ok := e.parentFamilyID(founder); ok {
			bParents = append(bParents, id)
		}
	}

	for _, pa := range aParents {
		for _, pb := range bParents {
			if pa == pb {
				return true
			}
		}
	}
	return false
}

// FirstCousinMarriages returns families whose husband and wife descend from
// sibling-founded families. Both spouses' parent families must resolve.
func (e *Engine) FirstCousinMarriages() []*record.Family {
	var out []*record.Family
	for _, fam := range e.store.Families() {
		husbParents, ok := e.FamilyOfChild(fam.Husband)
		if !ok {
			continue
		}
		wifeParents, ok := e.FamilyOfChild(fam.Wife)
		if !ok {
			continue
		}
		if e.AreFoundersSiblings(husbParents, wifeParents) {
			out = append(out, fam)
		}
	}
	return out
}

// AuntUncleMarriages returns families in which a spouse married a niece or
// nephew: the spouse's parent family and the family itself are founded by
// siblings.
func (e *Engine) AuntUncleMarriages() []*record.Family {
	var out []*record.Family
	for _, fam := range e.store.Families() {
		for _, spouse := range fam.Spouses() {
			parents, ok := e.FamilyOfChild(spouse)
			if !ok {
				continue
			}
			if e.AreFoundersSiblings(parents, fam) {
				out = append(out, fam)
				break
			}
		}
	}
	return out
}

// SiblingMarriages returns families whose husband and wife share a parent family.
func (e *Engine) SiblingMarriages() []*record.Family {
	var out []*record.Family
	for _, fam := range e.store.Families() {
		h, ok := e.parentFamilyID(fam.Husband)
		if !ok {
			continue
		}
		w, ok := e.parentFamilyID(fam.Wife)
		if ok && h == w {
			out = append(out, fam)
		}
	}
	return out
}

// ParentChildMarriages returns families in which one spouse is a child of a
// family the other spouse founded.
func (e *Engine) ParentChildMarriages() []*record.Family {
	var out []*record.Family
	for _, fam := range e.store.Families() {
		if fam.Husband == "" || fam.Wife == "" {
			continue
		}
		if e.isChildOfSpouse(fam.Husband, fam.Wife) || e.isChildOfSpouse(fam.Wife, fam.Husband) {
			out = append(out, fam)
		}
	}
	return out
}

// isChildOfSpouse reports whether child is listed in any family parent founded.
func (e *Engine) isChildOfSpouse(child, parent string) bool {
	for _, fam := range e.store.Families() {
		if (fam.Husband == parent || fam.Wife == parent) && fam.HasChild(child) {
			return true
		}
	}
	return false
}

// Parents returns the husband and wife of individualID's parent family.
func (e *Engine) Parents(individualID string) (husband, wife string, ok bool) {
	fam, ok := e.FamilyOfChild(individualID)
	if !ok {
		return "", "", false
	}
	return fam.Husband, fam.Wife, true
}

// Siblings returns the other children of individualID's parent family, in
// family order, without duplicates.
func (e *Engine) Siblings(individualID string) []string {
	fam, ok := e.FamilyOfChild(individualID)
	if !ok {
		return nil
	}
	seen := map[string]bool{individualID: true}
	var out []string
	for _, c := range fam.Children {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// AuntsAndUncles returns the siblings of the husband and wife of familyID,
// husband's side first. These are the aunts and uncles of the family's children.
func (e *Engine) AuntsAndUncles(familyID string) []string {
	fam, ok := e.store.FindFamily(familyID)
	if !ok {
		return nil
	}
	var out []string
	seen := map[string]bool{}
	for _, founder := range fam.Spouses() {
		for _, sib := range e.Siblings(founder) {
			if !seen[sib] {
				seen[sib] = true
				out = append(out, sib)
			}
		}
	}
	return out
}
