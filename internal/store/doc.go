// Package store archives check runs in SQLite.
//
// Each run keeps a copy of the records it checked and the findings it
// produced, so earlier results can be listed, compared and reloaded
// without the original input file:
//   - Runs: source path, store fingerprint, reference date, rules evaluated
//   - Individuals and Families: one row per parsed record, in parse order
//   - Family children: one row per CHIL entry, in family order
//   - Findings: one row per violation, in report order
//
// # Ordering
//
// Runs are ordered by a logical sequence number assigned on save, never by
// wall time. Every query orders by seq or position, then id COLLATE BINARY.
//
// # Duplicates
//
// Record rows are keyed by (run_id, position), not by identifier, so a
// document that repeats an identifier round-trips unchanged.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
