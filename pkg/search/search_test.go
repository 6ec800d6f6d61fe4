package search

import (
	"testing"

	"github.com/praetorian-inc/locus/pkg/linetable"
	"github.com/praetorian-inc/locus/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	table := linetable.New([]byte("foo bar\nbaz bar\n"))

	s, err := New(`bar`)
	require.NoError(t, err)

	results, err := s.Search(table)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "bar", results[0].Text)
	assert.Equal(t, int64(4), results[0].Location.Offset.Start)
	assert.Equal(t, int64(7), results[0].Location.Offset.End)
	assert.Equal(t, types.SourcePoint{Line: 1, Column: 4}, results[0].Location.Source.Start)

	assert.Equal(t, int64(12), results[1].Location.Offset.Start)
	assert.Equal(t, types.SourcePoint{Line: 2, Column: 4}, results[1].Location.Source.Start)
}

func TestSearchMultibytePrefix(t *testing.T) {
	// é is two bytes: byte offsets and columns diverge before the match.
	table := linetable.New([]byte("é bar"))

	s, err := New(`bar`)
	require.NoError(t, err)

	results, err := s.Search(table)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, int64(3), results[0].Location.Offset.Start)
	assert.Equal(t, types.SourcePoint{Line: 1, Column: 2}, results[0].Location.Source.Start)
}

func TestSearchMultiline(t *testing.T) {
	table := linetable.New([]byte("aa\nbb\ncc"))

	s, err := New(`^\w+`)
	require.NoError(t, err)

	results, err := s.Search(table)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, i+1, r.Location.Source.Start.Line)
		assert.Equal(t, 0, r.Location.Source.Start.Column)
	}
}

func TestSearchLookaheadFallback(t *testing.T) {
	// Lookahead is rejected by RE2 mode and must take the Perl fallback.
	table := linetable.New([]byte("foobar foobaz"))

	s, err := New(`foo(?=bar)`)
	require.NoError(t, err)

	results, err := s.Search(table)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(0), results[0].Location.Offset.Start)
	assert.Equal(t, "foo", results[0].Text)
}

func TestSearchNoMatches(t *testing.T) {
	table := linetable.New([]byte("nothing here"))

	s, err := New(`zzz`)
	require.NoError(t, err)

	results, err := s.Search(table)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestNewInvalidPattern(t *testing.T) {
	_, err := New(`(unclosed`)
	assert.Error(t, err)
}
