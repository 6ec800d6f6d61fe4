package scan

import (
	"testing"

	"github.com/praetorian-inc/locus/pkg/linetable"
	"github.com/praetorian-inc/locus/pkg/types"
)

func TestTokens(t *testing.T) {
	input := "ab cd\nx = 1;\n"

	want := []struct {
		kind    Kind
		literal string
		span    types.SourceSpan
	}{
		{Ident, "ab", span(1, 0, 1, 2)},
		{Ident, "cd", span(1, 3, 1, 5)},
		{Ident, "x", span(2, 0, 2, 1)},
		{Punct, "=", span(2, 2, 2, 3)},
		{Number, "1", span(2, 4, 2, 5)},
		{Punct, ";", span(2, 5, 2, 6)},
	}

	toks := Tokens([]byte(input))
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Kind != w.kind {
			t.Errorf("tokens[%d] kind = %s, want %s", i, toks[i].Kind, w.kind)
		}
		if toks[i].Literal != w.literal {
			t.Errorf("tokens[%d] literal = %q, want %q", i, toks[i].Literal, w.literal)
		}
		if toks[i].Span != w.span {
			t.Errorf("tokens[%d] span = %v, want %v", i, toks[i].Span, w.span)
		}
	}
}

func TestTokensCodePointColumns(t *testing.T) {
	// π is one code point but two bytes; columns must count code points.
	toks := Tokens([]byte("π = 3.14"))

	want := []types.SourceSpan{
		span(1, 0, 1, 1),
		span(1, 2, 1, 3),
		span(1, 4, 1, 8),
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i].Span != w {
			t.Errorf("tokens[%d] span = %v, want %v", i, toks[i].Span, w)
		}
	}
}

func TestTokensSkipComments(t *testing.T) {
	toks := Tokens([]byte("a\n// skip me\nb"))
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2: %+v", len(toks), toks)
	}
	if toks[1].Literal != "b" || toks[1].Span.Start.Line != 3 {
		t.Errorf("tokens[1] = %+v, want b at line 3", toks[1])
	}
}

func TestTokensString(t *testing.T) {
	toks := Tokens([]byte(`say "hi there" now`))
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3: %+v", len(toks), toks)
	}
	if toks[1].Kind != String || toks[1].Literal != `"hi there"` {
		t.Errorf("tokens[1] = %+v, want string literal", toks[1])
	}
}

// Every location harvested from a whole document must resolve without
// error, and resolved offsets must be non-decreasing in traversal order.
func TestFullDocumentLocationsResolve(t *testing.T) {
	input := "let five = 5;\r\nlet é = \"smile \U0001f600\";\n// note\nreturn five + é;\n"
	content := []byte(input)
	table := linetable.New(content)

	points := Locations(content)
	if len(points) == 0 {
		t.Fatal("no locations harvested")
	}

	prev := 0
	for i, p := range points {
		off, err := table.Offset(p)
		if err != nil {
			t.Fatalf("points[%d] %v: %v", i, p, err)
		}
		if off < prev {
			t.Errorf("points[%d] %v resolved to %d, before previous %d", i, p, off, prev)
		}
		prev = off
	}
}

// A token's resolved start/end offsets must frame exactly its literal.
func TestTokenOffsetsFrameLiterals(t *testing.T) {
	content := []byte("foo\r\nbär \U0001f600 baz end")
	table := linetable.New(content)

	for i, tok := range Tokens(content) {
		offs, err := table.Span(tok.Span)
		if err != nil {
			t.Fatalf("tokens[%d] %v: %v", i, tok.Span, err)
		}
		if got := string(content[offs.Start:offs.End]); got != tok.Literal {
			t.Errorf("tokens[%d] frames %q, want %q", i, got, tok.Literal)
		}
	}
}

func span(l1, c1, l2, c2 int) types.SourceSpan {
	return types.SourceSpan{
		Start: types.SourcePoint{Line: l1, Column: c1},
		End:   types.SourcePoint{Line: l2, Column: c2},
	}
}
