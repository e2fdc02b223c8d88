package rules

import "time"

// Clock supplies "today" for rules that compare against the current date.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns today's date at midnight UTC.
func (SystemClock) Now() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FixedClock always reports the same instant.
// Used for reproducible reports and by configuration's reference_date.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.T
}
