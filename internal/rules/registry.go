package rules

import (
	"fmt"
	"sort"
)

// All returns every built-in rule ordered by code.
func All() []Rule {
	all := []Rule{
		datesBeforeCurrentDate,
		birthBeforeMarriage,
		birthBeforeDeath,
		marriageBeforeDivorce,
		marriageBeforeDeath,
		divorceBeforeDeath,
		lessThan150YearsOld,
		birthBeforeMarriageOfParents,
		birthBeforeDeathOfParents,
		marriageAfter14,
		parentsNotTooOld,
		siblingSpacing,
		multipleBirths,
		fewerThan15Siblings,
		maleLastNames,
		noMarriagesToDescendants,
		siblingsShouldNotMarry,
		firstCousinsShouldNotMarry,
		auntsAndUncles,
		correctGenderForRole,
		uniqueIDs,
		uniqueNameAndBirthDate,
		uniqueFamiliesBySpouses,
		uniqueFirstNamesInFamilies,
		correspondingEntries,
		rejectIllegalDates,
		auntsAndUnclesBirthYears,
	}
	sort.SliceStable(all, func(a, b int) bool { return all[a].Code() < all[b].Code() })
	return all
}

// Lookup returns the built-in rule with the given code.
func Lookup(code string) (Rule, bool) {
	for _, r := range All() {
		if r.Code() == code {
			return r, true
		}
	}
	return nil, false
}

// ValidateCodes returns an error naming the first code that matches no rule.
func ValidateCodes(codes []string) error {
	for _, code := range codes {
		if _, ok := Lookup(code); !ok {
			return fmt.Errorf("unknown rule code %q", code)
		}
	}
	return nil
}
