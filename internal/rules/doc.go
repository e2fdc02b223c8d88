// Package rules runs date and relationship validation over a parsed document.
//
// Each rule is identified by the user story code it enforces (US01, US02,
// ...). Rules only read the record.Store and the kinship.Engine; a Runner
// evaluates the enabled rules concurrently and merges their findings into a
// deterministic Report ordered by code, record and message.
//
// Date text is stored verbatim by the parser. This package is where it is
// interpreted: ParseDate accepts "D MON YYYY" and the partial forms
// "MON YYYY" and "YYYY". A date that cannot be parsed is reported once by
// US42 and every date-dependent rule skips the affected comparison.
package rules
