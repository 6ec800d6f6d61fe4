// Package scan is a minimal position-bearing token scanner.
//
// It is not a language front end: its job is to walk a whole document and
// emit, in document order, tokens whose start and end carry line:column
// source points under the same conventions the line table resolves
// (1-based lines, 0-based code point columns, exclusive ends). Tooling
// uses it to exercise position resolution against realistic whole-file
// location sets.
package scan

import (
	"unicode"
	"unicode/utf8"

	"github.com/praetorian-inc/locus/pkg/linetable"
	"github.com/praetorian-inc/locus/pkg/types"
)

// Kind classifies a scanned token.
type Kind string

const (
	Ident  Kind = "IDENT"
	Number Kind = "NUMBER"
	String Kind = "STRING"
	Punct  Kind = "PUNCT"
)

// Token is a lexeme with its source span. Span.End is exclusive and may
// sit at the code point length of its line or at end-of-file.
type Token struct {
	Kind    Kind
	Literal string
	Span    types.SourceSpan
}

// Scanner walks a document left to right, tracking the current source
// point as it goes.
type Scanner struct {
	content []byte
	off     int
	line    int // 1-based
	col     int // 0-based code point column
}

// New creates a Scanner over content, positioned at 1:0.
func New(content []byte) *Scanner {
	return &Scanner{content: content, line: 1}
}

// Next returns the next token. ok is false once the input is exhausted.
func (s *Scanner) Next() (tok Token, ok bool) {
	s.skipBlank()
	if s.off >= len(s.content) {
		return Token{}, false
	}

	start := s.point()
	startOff := s.off
	r := s.peek()

	var kind Kind
	switch {
	case r == '_' || unicode.IsLetter(r):
		kind = Ident
		for s.off < len(s.content) {
			r := s.peek()
			if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				break
			}
			s.step()
		}
	case r >= '0' && r <= '9':
		kind = Number
		for s.off < len(s.content) {
			r := s.peek()
			if r != '.' && (r < '0' || r > '9') {
				break
			}
			s.step()
		}
	case r == '"' || r == '\'':
		kind = String
		quote := r
		s.step()
		for s.off < len(s.content) && linetable.TerminatorWidth(s.content, s.off) == 0 {
			r := s.peek()
			s.step()
			if r == quote {
				break
			}
		}
	default:
		kind = Punct
		s.step()
	}

	return Token{
		Kind:    kind,
		Literal: string(s.content[startOff:s.off]),
		Span:    types.SourceSpan{Start: start, End: s.point()},
	}, true
}

// Tokens scans the whole document and returns every token in order.
func Tokens(content []byte) []Token {
	var toks []Token
	s := New(content)
	for {
		tok, ok := s.Next()
		if !ok {
			return toks
		}
		toks = append(toks, tok)
	}
}

// Locations returns the start and end points of every token of the
// document, in traversal order (start before end, token after token).
func Locations(content []byte) []types.SourcePoint {
	var points []types.SourcePoint
	for _, tok := range Tokens(content) {
		points = append(points, tok.Span.Start, tok.Span.End)
	}
	return points
}

func (s *Scanner) point() types.SourcePoint {
	return types.SourcePoint{Line: s.line, Column: s.col}
}

func (s *Scanner) peek() rune {
	r, _ := utf8.DecodeRune(s.content[s.off:])
	return r
}

// step consumes one code point and advances the column counter. It must
// not be called on a terminator; newline() handles those.
func (s *Scanner) step() {
	_, size := utf8.DecodeRune(s.content[s.off:])
	s.off += size
	s.col++
}

func (s *Scanner) newline(width int) {
	s.off += width
	s.line++
	s.col = 0
}

// skipBlank consumes whitespace, line terminators, and // comments.
func (s *Scanner) skipBlank() {
	for s.off < len(s.content) {
		if w := linetable.TerminatorWidth(s.content, s.off); w > 0 {
			s.newline(w)
			continue
		}
		r := s.peek()
		if r == ' ' || r == '\t' {
			s.step()
			continue
		}
		if r == '/' && s.off+1 < len(s.content) && s.content[s.off+1] == '/' {
			for s.off < len(s.content) && linetable.TerminatorWidth(s.content, s.off) == 0 {
				s.step()
			}
			continue
		}
		return
	}
}
