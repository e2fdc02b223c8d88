package parser

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/gedcheck/internal/record"
)

// maxLineSize bounds a single input line. Longer lines are skipped as
// unrecognized without aborting the document.
const maxLineSize = 1 << 20

// Parse builds a store from already materialized lines.
func Parse(lines []string, opts ...Option) *record.Store {
	store, _ := ParseWithStats(lines, opts...)
	return store
}

// ParseWithStats is Parse that also reports builder counters.
func ParseWithStats(lines []string, opts ...Option) (*record.Store, Stats) {
	b := NewBuilder(opts...)
	for _, line := range lines {
		b.Feed(line)
	}
	return b.Store(), b.Stats()
}

// ParseReader builds a store from r, one line at a time.
// The only error source is reading r.
func ParseReader(r io.Reader, opts ...Option) (*record.Store, Stats, error) {
	b := NewBuilder(opts...)

	err := eachLine(r, maxLineSize, func(line string, overlong bool) {
		if overlong {
			b.skipOverlong()
			return
		}
		b.Feed(line)
	})
	if err != nil {
		return nil, b.Stats(), fmt.Errorf("read lines: %w", err)
	}

	b.logger.Debug("parsed document",
		"lines", b.stats.Lines,
		"individuals", b.stats.Individuals,
		"families", b.stats.Families,
	)
	return b.Store(), b.Stats(), nil
}

// eachLine calls fn for every line of r with its terminator ("\n" or
// "\r\n") removed. A line longer than limit bytes is drained and reported
// once with overlong set and an empty text.
func eachLine(r io.Reader, limit int, fn func(line string, overlong bool)) error {
	br := bufio.NewReaderSize(r, 64*1024)
	var (
		line     []byte
		overlong bool
	)
	for {
		chunk, err := br.ReadSlice('\n')
		if err != nil && !errors.Is(err, bufio.ErrBufferFull) && !errors.Is(err, io.EOF) {
			return err
		}
		if !overlong {
			if len(line)+len(chunk) > limit {
				overlong = true
				line = line[:0]
			} else {
				line = append(line, chunk...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}

		atEOF := errors.Is(err, io.EOF)
		if !atEOF || len(line) > 0 || overlong {
			text := bytes.TrimSuffix(line, []byte("\n"))
			text = bytes.TrimSuffix(text, []byte("\r"))
			fn(string(text), overlong)
		}
		if atEOF {
			return nil
		}
		line = line[:0]
		overlong = false
	}
}
