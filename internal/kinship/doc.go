// Package kinship answers parentage and sibling questions over a record.Store.
//
// All queries are pure reads of a finished store and may run concurrently.
// Incomplete ancestry never raises an error: an unresolvable parent family
// collapses to "not related", so a single bad record degrades one answer
// rather than the whole run.
//
// Known relaxation: FamilyOfChild takes the first family listing an
// individual as a child. Individuals listed as children of several
// families are not reported here.
package kinship
