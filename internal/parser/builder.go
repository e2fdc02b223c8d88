package parser

import (
	"log/slog"
	"strings"

	"github.com/roach88/gedcheck/internal/record"
)

// Stats counts what the builder did with its input.
type Stats struct {
	Lines        int `json:"lines"`
	Unrecognized int `json:"unrecognized"`
	Structural   int `json:"structural"`
	Ignored      int `json:"ignored"` // recognized, but nothing to attach to
	Individuals  int `json:"individuals"`
	Families     int `json:"families"`
}

// ByKind returns line counts keyed by classification, for metrics.
func (s Stats) ByKind() map[string]int {
	return map[string]int{
		KindUnrecognized.String(): s.Unrecognized,
		KindStructural.String():   s.Structural,
		"ignored":                 s.Ignored,
		"applied":                 s.Lines - s.Unrecognized - s.Structural - s.Ignored,
	}
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger skipped lines are reported to at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// Builder incrementally constructs records from classified lines.
//
// State carried across lines:
//   - current: the open record, zero before the first record start
//   - openAttr: the event attribute level-2 lines attach to
//
// Records are appended to the output the moment their start line is seen.
type Builder struct {
	current  record.Record
	openAttr record.Attr

	individuals []*record.Individual
	families    []*record.Family

	stats  Stats
	logger *slog.Logger
}

// NewBuilder creates an empty builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Feed classifies raw and applies it.
func (b *Builder) Feed(raw string) {
	b.Apply(Classify(raw))
}

// Apply applies an already classified line.
func (b *Builder) Apply(line Line) {
	b.stats.Lines++

	switch line.Kind {
	case KindRecordStart:
		b.startRecord(line)
	case KindNoArgument:
		b.applyNoArgument(line)
	case KindArgument:
		b.applyArgument(line)
	case KindStructural:
		b.stats.Structural++
	default:
		b.stats.Unrecognized++
		b.logger.Debug("skipping unrecognized line", "line", b.stats.Lines, "raw", line.Raw)
	}
}

func (b *Builder) startRecord(line Line) {
	b.openAttr = record.AttrNone

	if line.Tag == "INDI" {
		ind := &record.Individual{ID: line.XRef}
		b.individuals = append(b.individuals, ind)
		b.current = record.NewIndividualRecord(ind)
		b.stats.Individuals++
		return
	}

	fam := &record.Family{ID: line.XRef}
	b.families = append(b.families, fam)
	b.current = record.NewFamilyRecord(fam)
	b.stats.Families++
}

func (b *Builder) applyNoArgument(line Line) {
	if line.Level != 1 {
		// level 0: HEAD, TRLR, NOTE without text
		b.stats.Structural++
		return
	}

	attr := record.AttrForTag(line.Tag)
	if !attr.IsEvent() {
		b.openAttr = record.AttrNone
		b.ignore(line, "not an event tag")
		return
	}
	if !b.current.OpenEvent(attr) {
		b.openAttr = record.AttrNone
		b.ignore(line, "no event of this kind on the open record")
		return
	}
	b.openAttr = attr
}

func (b *Builder) applyArgument(line Line) {
	switch line.Level {
	case 1:
		attr := record.AttrForTag(line.Tag)
		var ok bool
		if attr.Repeats() {
			ok = b.current.AppendRef(attr, line.Arg)
		} else {
			ok = b.current.SetScalar(attr, line.Arg)
		}
		if !ok {
			b.ignore(line, "attribute not held by the open record")
		}
	case 2:
		ev := b.current.Event(b.openAttr)
		if ev == nil {
			b.ignore(line, "no open event")
			return
		}
		ev[strings.ToLower(line.Tag)] = line.Arg
	default:
		b.ignore(line, "argument line at level 0")
	}
}

func (b *Builder) ignore(line Line, reason string) {
	b.stats.Ignored++
	b.logger.Debug("ignoring line",
		"line", b.stats.Lines,
		"record", b.current.ID(),
		"raw", line.Raw,
		"reason", reason)
}

// skipOverlong counts a line that was too long to classify.
func (b *Builder) skipOverlong() {
	b.stats.Lines++
	b.stats.Unrecognized++
	b.logger.Warn("skipping overlong line", "line", b.stats.Lines, "limit", maxLineSize)
}

// Stats returns counters for the lines fed so far.
func (b *Builder) Stats() Stats {
	return b.stats
}

// Store hands the records built so far to a new record.Store.
// The builder must not be fed after Store is called.
func (b *Builder) Store() *record.Store {
	return record.NewStore(b.individuals, b.families)
}
