// Package snippet extracts line-oriented context around a byte span.
package snippet

import (
	"github.com/praetorian-inc/locus/pkg/linetable"
	"github.com/praetorian-inc/locus/pkg/types"
)

// Extract returns the content of a byte span together with up to lines
// complete lines of context on each side. Before runs from the start of
// the Nth line above the span to the span's first byte; After runs from
// the byte past the span to the end of the Nth line below it, terminators
// included. Line boundaries follow the table's terminator conventions,
// not just "\n".
//
// All three slices are independent copies, so holding a Snippet does not
// pin the full content buffer in memory. Spans outside [0, len(content)]
// or inverted spans produce an empty snippet.
func Extract(table *linetable.Table, span types.OffsetSpan, lines int) types.Snippet {
	content := table.Content()
	start := int(span.Start)
	end := int(span.End)

	if start < 0 || end > len(content) || start > end {
		return types.Snippet{}
	}

	var snip types.Snippet
	snip.Matching = append([]byte{}, content[start:end]...)
	if lines <= 0 {
		return snip
	}

	startLine := table.Point(start).Line
	endLine := table.Point(end).Line

	firstLine := startLine - lines
	if firstLine < 1 {
		firstLine = 1
	}
	beforeStart, _ := table.LineStart(firstLine)
	if beforeStart < start {
		snip.Before = append([]byte{}, content[beforeStart:start]...)
	}

	// End of line endLine+lines is the start of the line after it, or EOF
	// when the context window runs off the end of the text.
	afterEnd := len(content)
	if next := endLine + lines + 1; next <= table.LineCount() {
		afterEnd, _ = table.LineStart(next)
	}
	if end < afterEnd {
		snip.After = append([]byte{}, content[end:afterEnd]...)
	}

	return snip
}
