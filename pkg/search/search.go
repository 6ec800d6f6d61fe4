// Package search finds regex matches in a text buffer and reports each
// one as a full Location: byte offsets plus line:column source points.
package search

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"github.com/praetorian-inc/locus/pkg/linetable"
	"github.com/praetorian-inc/locus/pkg/types"
)

// Result is one pattern match with its text and coordinates.
type Result struct {
	Text     string         `json:"text"`
	Location types.Location `json:"location"`
}

// Searcher holds one compiled pattern.
type Searcher struct {
	re *regexp2.Regexp
}

// New compiles a pattern. RE2 mode is tried first (no backtracking);
// patterns needing Perl features like lookarounds fall back to the
// default mode with a match timeout guarding against catastrophic
// backtracking.
func New(pattern string) (*Searcher, error) {
	re, err := regexp2.Compile(pattern, regexp2.RE2|regexp2.Multiline)
	if err != nil {
		re, err = regexp2.Compile(pattern, regexp2.Multiline)
		if err != nil {
			return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
		}
	}
	re.MatchTimeout = 5 * time.Second
	return &Searcher{re: re}, nil
}

// Search runs the pattern over the table's content and returns every
// match in document order. regexp2 reports match positions as rune
// indices; they are converted to byte offsets before the line table
// resolves the source points.
func (s *Searcher) Search(table *linetable.Table) ([]Result, error) {
	content := string(table.Content())

	var results []Result
	cur := cursor{s: content}

	m, err := s.re.FindStringMatch(content)
	if err != nil {
		return nil, fmt.Errorf("matching: %w", err)
	}
	for m != nil {
		start := cur.byteOffset(m.Index)
		end := cur.byteOffset(m.Index + m.Length)

		results = append(results, Result{
			Text: content[start:end],
			Location: types.Location{
				Offset: types.OffsetSpan{Start: int64(start), End: int64(end)},
				Source: types.SourceSpan{
					Start: table.Point(start),
					End:   table.Point(end),
				},
			},
		})

		m, err = s.re.FindNextMatch(m)
		if err != nil {
			return nil, fmt.Errorf("matching: %w", err)
		}
	}
	return results, nil
}

// cursor converts rune indices into byte offsets. Indices must be
// requested in non-decreasing order, which match iteration guarantees.
type cursor struct {
	s       string
	runeIdx int
	byteOff int
}

func (c *cursor) byteOffset(runeIdx int) int {
	for c.runeIdx < runeIdx && c.byteOff < len(c.s) {
		_, size := utf8.DecodeRuneInString(c.s[c.byteOff:])
		c.byteOff += size
		c.runeIdx++
	}
	return c.byteOff
}
