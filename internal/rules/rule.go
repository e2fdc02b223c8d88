package rules

import (
	"fmt"
	"time"

	"github.com/roach88/gedcheck/internal/kinship"
	"github.com/roach88/gedcheck/internal/record"
)

// Thresholds holds the numeric limits rules compare against.
type Thresholds struct {
	MaxAgeYears       int `json:"max_age_years" yaml:"max_age_years"`
	MinMarriageAge    int `json:"min_marriage_age" yaml:"min_marriage_age"`
	MaxSiblings       int `json:"max_siblings" yaml:"max_siblings"`
	MaxMultipleBirths int `json:"max_multiple_births" yaml:"max_multiple_births"`
	MotherMaxAgeGap   int `json:"mother_max_age_gap" yaml:"mother_max_age_gap"`
	FatherMaxAgeGap   int `json:"father_max_age_gap" yaml:"father_max_age_gap"`
	RecentDays        int `json:"recent_days" yaml:"recent_days"`
}

// DefaultThresholds returns the limits of the original user stories.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxAgeYears:       150,
		MinMarriageAge:    14,
		MaxSiblings:       15,
		MaxMultipleBirths: 5,
		MotherMaxAgeGap:   60,
		FatherMaxAgeGap:   80,
		RecentDays:        30,
	}
}

// Context is the read-only input every rule receives.
type Context struct {
	Store      *record.Store
	Kin        *kinship.Engine
	Clock      Clock
	Thresholds Thresholds
}

// NewContext builds a context over store with default thresholds and the system clock.
func NewContext(store *record.Store) *Context {
	return &Context{
		Store:      store,
		Kin:        kinship.New(store),
		Clock:      SystemClock{},
		Thresholds: DefaultThresholds(),
	}
}

// Rule is one validation check.
type Rule interface {
	// Code is the user story identifier, e.g. "US01".
	Code() string
	// Story is a short human title.
	Story() string
	// Check returns the violations found in the context's store.
	Check(c *Context) []Finding
}

// check adapts a function to Rule.
type check struct {
	code  string
	story string
	fn    func(c *Context, emit emitter)
}

func (r check) Code() string  { return r.code }
func (r check) Story() string { return r.story }

func (r check) Check(c *Context) []Finding {
	var out []Finding
	r.fn(c, emitter{rule: r, out: &out})
	return out
}

// emitter appends findings stamped with the rule's code and story.
type emitter struct {
	rule check
	out  *[]Finding
}

func (e emitter) individual(id, format string, args ...any) {
	e.add(KindIndividual, id, format, args...)
}

func (e emitter) family(id, format string, args ...any) {
	e.add(KindFamily, id, format, args...)
}

func (e emitter) document(format string, args ...any) {
	e.add(KindDocument, "", format, args...)
}

func (e emitter) add(kind, id, format string, args ...any) {
	*e.out = append(*e.out, Finding{
		Code:     e.rule.code,
		Story:    e.rule.story,
		Kind:     kind,
		RecordID: id,
		Message:  fmt.Sprintf(format, args...),
	})
}

// individual resolves an identifier, nil when absent or dangling.
func (c *Context) individual(id string) *record.Individual {
	if id == "" {
		return nil
	}
	ind, ok := c.Store.FindIndividual(id)
	if !ok {
		return nil
	}
	return ind
}

// birth returns the parsed birth date of id.
func (c *Context) birth(id string) (time.Time, bool) {
	ind := c.individual(id)
	if ind == nil {
		return time.Time{}, false
	}
	return eventDate(ind.Birth)
}

// death returns the parsed death date of id.
func (c *Context) death(id string) (time.Time, bool) {
	ind := c.individual(id)
	if ind == nil {
		return time.Time{}, false
	}
	return eventDate(ind.Death)
}
