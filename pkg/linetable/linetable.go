// Package linetable translates between line:column source positions and
// byte offsets in UTF-8 text.
//
// A Table is built once per text buffer with a single scan that records
// where every logical line begins. Queries then resolve a SourcePoint
// (1-based line, 0-based code point column) to the exact byte offset it
// denotes, or a byte offset back to a SourcePoint. The table recognizes
// all five line terminator conventions: "\n", "\r\n" (one terminator, not
// two), bare "\r", U+2028 LINE SEPARATOR, and U+2029 PARAGRAPH SEPARATOR.
//
// Parsers routinely emit exclusive end-of-token positions whose column
// equals the code point length of the line, or which sit at end-of-file.
// Those are not errors: Offset clamps them to the end of the line's
// content or to the end of the text. Only a line outside the table or a
// negative column is reported as an error, since that means the position
// and the table were built from different texts.
package linetable

import (
	"fmt"
	"sort"

	"github.com/praetorian-inc/locus/pkg/types"
)

// Table is an immutable per-line byte offset index over one text buffer.
// It is safe for concurrent readers; queries keep no state between calls.
type Table struct {
	content []byte
	starts  []int // byte offset where each line begins; starts[0] == 0
}

// New builds a Table from content with a single left-to-right scan.
// Content is assumed to be valid UTF-8 and must not be mutated for the
// lifetime of the table. Any content, including empty, produces a valid
// table with at least one line.
func New(content []byte) *Table {
	starts := []int{0}
	for i := 0; i < len(content); {
		if w := TerminatorWidth(content, i); w > 0 {
			i += w
			starts = append(starts, i)
		} else {
			i++
		}
	}
	return &Table{content: content, starts: starts}
}

// Content returns the text buffer the table was built from.
func (t *Table) Content() []byte {
	return t.content
}

// LineCount returns the number of logical lines. At least 1, even for
// empty content.
func (t *Table) LineCount() int {
	return len(t.starts)
}

// LineStart returns the byte offset at which the given 1-based line
// begins. Line 1 always starts at offset 0.
func (t *Table) LineStart(line int) (int, error) {
	if line < 1 || line > len(t.starts) {
		return 0, fmt.Errorf("line %d out of range: table has %d lines", line, len(t.starts))
	}
	return t.starts[line-1], nil
}

// Line returns the content of the given 1-based line without its
// terminator.
func (t *Table) Line(line int) ([]byte, error) {
	start, err := t.LineStart(line)
	if err != nil {
		return nil, err
	}
	end := start
	for end < len(t.content) && TerminatorWidth(t.content, end) == 0 {
		end++
	}
	return t.content[start:end], nil
}

// Offset resolves a source position to the byte offset it denotes.
//
// The line is located in O(1); the column is resolved by walking forward
// from the line start one code point at a time, using only the byte width
// of each code point (1-4 bytes by the UTF-8 leading byte). A column at
// or past the end of the line resolves to the offset of the terminator's
// first byte; at or past the end of the text, to len(content). The result
// is always within [0, len(content)].
//
// An out-of-range line or a negative column returns an error: positions
// like that mean the caller's position and this table's text are out of
// sync, and a silently wrong offset would corrupt downstream tooling.
func (t *Table) Offset(p types.SourcePoint) (int, error) {
	if p.Line < 1 || p.Line > len(t.starts) {
		return 0, fmt.Errorf("line %d out of range: table has %d lines", p.Line, len(t.starts))
	}
	if p.Column < 0 {
		return 0, fmt.Errorf("negative column %d on line %d", p.Column, p.Line)
	}

	off := t.starts[p.Line-1]
	for col := 0; col < p.Column; col++ {
		if off >= len(t.content) || TerminatorWidth(t.content, off) > 0 {
			// Column at or past end of line or file: clamp.
			break
		}
		off += runeWidth(t.content[off])
		if off > len(t.content) {
			off = len(t.content)
		}
	}
	return off, nil
}

// Point is the inverse of Offset: it translates a byte offset into the
// source position it falls at. Offsets outside [0, len(content)] clamp to
// the nearest boundary. Offsets that land inside a multi-byte code point
// or a terminator are undefined under the valid-UTF-8 caller contract.
func (t *Table) Point(offset int) types.SourcePoint {
	if offset < 0 {
		offset = 0
	}
	if offset > len(t.content) {
		offset = len(t.content)
	}

	// First line start strictly past the offset; the offset's own line is
	// the one before it.
	line := sort.Search(len(t.starts), func(i int) bool {
		return t.starts[i] > offset
	})

	col := 0
	for i := t.starts[line-1]; i < offset; col++ {
		i += runeWidth(t.content[i])
	}
	return types.SourcePoint{Line: line, Column: col}
}

// Span resolves a start/end position pair to its half-open byte range.
func (t *Table) Span(s types.SourceSpan) (types.OffsetSpan, error) {
	start, err := t.Offset(s.Start)
	if err != nil {
		return types.OffsetSpan{}, fmt.Errorf("span start: %w", err)
	}
	end, err := t.Offset(s.End)
	if err != nil {
		return types.OffsetSpan{}, fmt.Errorf("span end: %w", err)
	}
	return types.OffsetSpan{Start: int64(start), End: int64(end)}, nil
}

// TerminatorWidth reports the byte width of the line terminator beginning
// at content[i], or 0 if content[i] does not begin one. "\r\n" must be
// checked before bare "\r" so it counts as a single two-byte terminator.
func TerminatorWidth(content []byte, i int) int {
	if i < 0 || i >= len(content) {
		return 0
	}
	switch content[i] {
	case '\n':
		return 1
	case '\r':
		if i+1 < len(content) && content[i+1] == '\n' {
			return 2
		}
		return 1
	case 0xe2:
		// U+2028 and U+2029 encode as E2 80 A8 and E2 80 A9.
		if i+2 < len(content) && content[i+1] == 0x80 && (content[i+2] == 0xa8 || content[i+2] == 0xa9) {
			return 3
		}
	}
	return 0
}

// runeWidth returns the byte width of the UTF-8 code point that starts
// with b. Only the leading byte pattern is inspected; the code point
// value itself is never decoded.
func runeWidth(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b&0xe0 == 0xc0:
		return 2
	case b&0xf0 == 0xe0:
		return 3
	case b&0xf8 == 0xf0:
		return 4
	default:
		// Continuation or invalid byte; malformed input is outside the
		// contract, advance by one to stay bounded.
		return 1
	}
}
