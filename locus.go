// Package locus translates between source positions and byte offsets in
// UTF-8 text.
//
// Parsers and scanners describe locations as 1-based lines and 0-based
// code point columns; storage, editors, and wire protocols want byte
// offsets. Locus builds a per-line offset table over one immutable text
// buffer and resolves positions in either direction, handling "\n",
// "\r\n", bare "\r", U+2028, and U+2029 terminators and exclusive
// end-of-token positions at line or file boundaries.
//
// # Basic Usage
//
// Create a mapper for a text buffer and resolve positions:
//
//	m := locus.New(content)
//
//	off, err := m.Offset(locus.SourcePoint{Line: 3, Column: 0})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("line 3 starts at byte %d\n", off)
//
// # Resolving Spans
//
// A parser's start/end pair resolves to a full Location carrying both
// coordinate systems:
//
//	loc, err := m.Locate(locus.SourceSpan{
//	    Start: locus.SourcePoint{Line: 1, Column: 4},
//	    End:   locus.SourcePoint{Line: 1, Column: 7},
//	})
package locus

import (
	"fmt"
	"os"

	"github.com/praetorian-inc/locus/pkg/linetable"
	"github.com/praetorian-inc/locus/pkg/search"
	"github.com/praetorian-inc/locus/pkg/snippet"
	"github.com/praetorian-inc/locus/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/praetorian-inc/locus" without
// subpackages.
type (
	// SourcePoint is a 1-based line with a 0-based code point column.
	SourcePoint = types.SourcePoint

	// SourceSpan is a start/end pair of SourcePoints; End is exclusive.
	SourceSpan = types.SourceSpan

	// OffsetSpan is a half-open [Start, End) byte range.
	OffsetSpan = types.OffsetSpan

	// Location combines an OffsetSpan and a SourceSpan for one range.
	Location = types.Location

	// Snippet is located content with surrounding line context.
	Snippet = types.Snippet
)

// Mapper resolves positions against one immutable text buffer. It is
// safe for concurrent readers once constructed.
type Mapper struct {
	table  *linetable.Table
	config *mapperConfig
}

// mapperConfig holds mapper configuration.
type mapperConfig struct {
	contextLines int
}

// Option configures a Mapper.
type Option func(*mapperConfig)

// WithContextLines sets the number of context lines Context includes
// around a location. Default is 2 lines before and after.
func WithContextLines(lines int) Option {
	return func(c *mapperConfig) {
		c.contextLines = lines
	}
}

// New creates a Mapper over content. The buffer is assumed to be valid
// UTF-8 and must not be mutated for the mapper's lifetime; the line
// table is built once, here.
func New(content []byte, opts ...Option) *Mapper {
	config := &mapperConfig{
		contextLines: 2,
	}
	for _, opt := range opts {
		opt(config)
	}

	return &Mapper{
		table:  linetable.New(content),
		config: config,
	}
}

// NewFromFile reads a file and creates a Mapper over its content.
func NewFromFile(path string, opts ...Option) (*Mapper, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return New(content, opts...), nil
}

// Offset resolves a source position to the byte offset it denotes.
// Boundary positions (column at or past end of line, position at end of
// file) clamp; a line outside the text or a negative column is an error.
func (m *Mapper) Offset(p SourcePoint) (int, error) {
	return m.table.Offset(p)
}

// Point resolves a byte offset back to its source position.
func (m *Mapper) Point(offset int) SourcePoint {
	return m.table.Point(offset)
}

// Locate resolves a source span to a Location carrying both the byte
// range and the span itself.
func (m *Mapper) Locate(span SourceSpan) (Location, error) {
	offs, err := m.table.Span(span)
	if err != nil {
		return Location{}, err
	}
	return Location{Offset: offs, Source: span}, nil
}

// Context returns the location's content with the configured number of
// context lines on each side.
func (m *Mapper) Context(loc Location) Snippet {
	return snippet.Extract(m.table, loc.Offset, m.config.contextLines)
}

// Search runs a regex pattern over the content and returns every match
// with its full Location.
func (m *Mapper) Search(pattern string) ([]search.Result, error) {
	s, err := search.New(pattern)
	if err != nil {
		return nil, err
	}
	return s.Search(m.table)
}

// LineCount returns the number of logical lines; at least 1, even for
// empty content.
func (m *Mapper) LineCount() int {
	return m.table.LineCount()
}

// Line returns the content of the given 1-based line without its
// terminator.
func (m *Mapper) Line(line int) ([]byte, error) {
	return m.table.Line(line)
}

// Content returns the buffer the mapper was built from.
func (m *Mapper) Content() []byte {
	return m.table.Content()
}
