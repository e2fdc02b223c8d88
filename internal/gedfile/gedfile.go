package gedfile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/roach88/gedcheck/internal/parser"
	"github.com/roach88/gedcheck/internal/record"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// Error reports a file that could not be opened or read.
type Error struct {
	Path     string
	NotFound bool
	Err      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(path string, err error) error {
	return &Error{Path: path, NotFound: errors.Is(err, fs.ErrNotExist), Err: err}
}

// File is an open input file.
type File struct {
	io.Reader
	closer io.Closer
	Path   string
}

// Close releases the underlying file.
func (f *File) Close() error {
	return f.closer.Close()
}

// Open opens path for reading, decompressing it when it ends in ".xz".
func Open(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, wrap(path, err)
	}

	var r io.Reader = fh
	if strings.HasSuffix(strings.ToLower(path), ".xz") {
		xr, err := xz.NewReader(bufio.NewReader(fh))
		if err != nil {
			fh.Close()
			return nil, wrap(path, fmt.Errorf("open xz stream: %w", err))
		}
		r = xr
	}
	return &File{Reader: StripBOM(r), closer: fh, Path: path}, nil
}

// StripBOM returns a reader that skips a leading UTF-8 byte order mark.
func StripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(bom)); err == nil && bytes.Equal(head, bom) {
		_, _ = br.Discard(len(bom))
	}
	return br
}

// Load parses path into a store.
func Load(path string, logger *slog.Logger) (*record.Store, parser.Stats, error) {
	f, err := Open(path)
	if err != nil {
		return nil, parser.Stats{}, err
	}
	defer f.Close()

	if logger == nil {
		logger = slog.Default()
	}
	store, stats, err := parser.ParseReader(f, parser.WithLogger(logger))
	if err != nil {
		return nil, parser.Stats{}, wrap(path, err)
	}
	logger.Debug("file loaded",
		"path", path,
		"lines", stats.Lines,
		"individuals", stats.Individuals,
		"families", stats.Families)
	return store, stats, nil
}
