package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func resetResolveFlags() {
	resolvePos = nil
	resolveQueries = ""
	resolveFormat = "human"
	resolveColor = "never"
}

func TestRunResolveJSON(t *testing.T) {
	defer resetResolveFlags()
	resetResolveFlags()

	path := writeTempFile(t, "foo\n\nbar")
	resolvePos = []string{"3:0", "1:3"}
	resolveFormat = "json"

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	require.NoError(t, runResolve(cmd, []string{path}))

	var got []resolution
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, 5, got[0].Offset)
	assert.Equal(t, 3, got[0].Point.Line)
	assert.Equal(t, 3, got[1].Offset)
}

func TestRunResolveHuman(t *testing.T) {
	defer resetResolveFlags()
	resetResolveFlags()

	path := writeTempFile(t, "foo\nbar\n")
	resolvePos = []string{"2:1"}

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	require.NoError(t, runResolve(cmd, []string{path}))

	output := buf.String()
	assert.Contains(t, output, "2:1")
	assert.Contains(t, output, "offset 5")
	assert.Contains(t, output, "bar")
	assert.Contains(t, output, " ^")
}

func TestRunResolveQueriesFile(t *testing.T) {
	defer resetResolveFlags()
	resetResolveFlags()

	path := writeTempFile(t, "foo\n\nbar")
	queries := filepath.Join(t.TempDir(), "queries.yaml")
	require.NoError(t, os.WriteFile(queries, []byte("queries:\n  - offset: 5\n"), 0o644))
	resolveQueries = queries
	resolveFormat = "json"

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	require.NoError(t, runResolve(cmd, []string{path}))

	var got []resolution
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Point.Line)
	assert.Equal(t, 0, got[0].Point.Column)
}

func TestRunResolveErrors(t *testing.T) {
	defer resetResolveFlags()

	path := writeTempFile(t, "foo\nbar\n")

	tests := []struct {
		name  string
		setup func()
		arg   string
	}{
		{
			name:  "missing file",
			setup: func() { resolvePos = []string{"1:0"} },
			arg:   filepath.Join(t.TempDir(), "missing.txt"),
		},
		{
			name:  "no queries at all",
			setup: func() {},
			arg:   path,
		},
		{
			name:  "malformed position",
			setup: func() { resolvePos = []string{"12"} },
			arg:   path,
		},
		{
			name:  "non-numeric column",
			setup: func() { resolvePos = []string{"1:x"} },
			arg:   path,
		},
		{
			name:  "line out of range",
			setup: func() { resolvePos = []string{"99:0"} },
			arg:   path,
		},
		{
			name:  "unknown format",
			setup: func() { resolvePos = []string{"1:0"}; resolveFormat = "xml" },
			arg:   path,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetResolveFlags()
			tt.setup()

			cmd := &cobra.Command{}
			cmd.SetOut(&bytes.Buffer{})
			assert.Error(t, runResolve(cmd, []string{tt.arg}))
		})
	}
}
