// Package harness provides conformance testing for gedcheck.
//
// A scenario is a small genealogy document together with what checking it
// must produce: the records built, the findings raised and the kinship
// answers given.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: first_cousins
//	description: "Cousins descending from two brothers marry"
//	reference_date: 1 JUN 2020
//	disabled: [US26]
//	ged: |
//	  0 F0 FAM
//	  1 CHIL A
//	  ...
//	expect:
//	  individuals: [I1, I2]
//	  families: [F0, F1, F2, F3]
//	  findings:
//	    - code: US19
//	      record: F3
//	  absent: [US18]
//	  relations:
//	    cousin_marriages: [F3]
//	    sibling_founders:
//	      - {a: F1, b: F2, related: true}
//
// # Expectations
//
//   - individuals, families: identifiers in parse order (exact)
//   - findings: each listed (code, record) pair must be reported
//   - absent: codes that must not be reported
//   - relations: kinship query results (exact, when present)
//
// # Deterministic Testing
//
// Every scenario runs with a fixed reference date, an in-memory SQLite
// archive and sequential run identifiers, so results and golden snapshots
// are identical across runs.
package harness
