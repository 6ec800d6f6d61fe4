package types

import "fmt"

// OffsetSpan is byte range [Start, End) - half-open interval.
type OffsetSpan struct {
	Start int64 `json:"start" yaml:"start"`
	End   int64 `json:"end" yaml:"end"`
}

// Len returns the number of bytes covered by the span.
func (s OffsetSpan) Len() int64 {
	return s.End - s.Start
}

// SourcePoint is a line:column position. Line is 1-based; Column is a
// 0-based code point index within the line (LSP-style), not a byte index.
// Column may equal the code point length of its line: that is the
// exclusive end of a token that runs to end-of-line.
type SourcePoint struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

func (p SourcePoint) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p is textually ordered before q.
func (p SourcePoint) Before(q SourcePoint) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

// SourceSpan is a start-end line:column range. End is exclusive.
type SourceSpan struct {
	Start SourcePoint `json:"start" yaml:"start"`
	End   SourcePoint `json:"end" yaml:"end"`
}

func (s SourceSpan) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// Location combines byte offsets and source positions for the same range
// of one text buffer.
type Location struct {
	Offset OffsetSpan `json:"offset" yaml:"offset"`
	Source SourceSpan `json:"source" yaml:"source"`
}

// Snippet contains the text of a location with surrounding line context.
type Snippet struct {
	Before   []byte // complete lines before the location
	Matching []byte // the located content itself
	After    []byte // complete lines after the location
}
