package sdf

import (
	"bufio"
	"io"
	"strings"

	"github.com/boskovicgroup/bottchercomplexity/pkg/errors"
)

// recordDelimiter separates molecules in a multi-record SDF stream.
const recordDelimiter = "$$$$"

// Reader yields molecules from a multi-record SDF stream one at a time.
// It is a sequential iterator, not safe for concurrent use.
type Reader struct {
	scanner *bufio.Scanner
	done    bool
}

// NewReader wraps an SDF stream.  Lines longer than bufio's default are
// accepted up to one megabyte, which covers property blocks with long values.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{scanner: sc}
}

// Next returns the next record, or io.EOF once the stream is exhausted.
// A parse failure is returned for the offending record; the reader stays
// usable and the following call moves on to the next record, so callers can
// skip bad entries in large files.
func (r *Reader) Next() (*Record, error) {
	if r.done {
		return nil, io.EOF
	}

	var lines []string
	sawContent := false
	for r.scanner.Scan() {
		line := r.scanner.Text()
		if strings.TrimSpace(line) == recordDelimiter {
			return parseLines(lines)
		}
		if strings.TrimSpace(line) != "" {
			sawContent = true
		}
		lines = append(lines, line)
	}
	r.done = true
	if err := r.scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeIO, "reading sdf stream")
	}
	// Trailing record without a closing delimiter.
	if sawContent {
		return parseLines(lines)
	}
	return nil, io.EOF
}
