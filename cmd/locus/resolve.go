package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/praetorian-inc/locus"
	"github.com/praetorian-inc/locus/pkg/query"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	resolvePos     []string
	resolveQueries string
	resolveFormat  string
	resolveColor   string
)

// styles holds color formatters for human output
type styles struct {
	heading  *color.Color
	position *color.Color
	offset   *color.Color
	match    *color.Color
	metadata *color.Color
}

// newStyles creates color formatters for human output
// enabled=false respects --color never and the NO_COLOR env var
func newStyles(enabled bool) *styles {
	s := &styles{
		heading:  color.New(color.Bold),
		position: color.New(color.FgHiBlue),
		offset:   color.New(color.FgHiGreen),
		match:    color.New(color.FgYellow),
		metadata: color.New(color.FgHiBlue),
	}

	if !enabled {
		s.heading.DisableColor()
		s.position.DisableColor()
		s.offset.DisableColor()
		s.match.DisableColor()
		s.metadata.DisableColor()
	}

	return s
}

// setupColor applies the --color flag to the global color state and
// returns the active styles.
func setupColor(choice string) *styles {
	switch choice {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default: // "auto"
		// Check if stdout is a TTY and NO_COLOR is not set
		if !term.IsTerminal(int(os.Stdout.Fd())) || os.Getenv("NO_COLOR") != "" {
			color.NoColor = true
		} else {
			color.NoColor = false
		}
	}
	return newStyles(!color.NoColor)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <file>",
	Short: "Resolve positions to byte offsets and back",
	Long: `Resolve line:column positions in a file to byte offsets, or byte offsets
to positions. Positions use 1-based lines and 0-based code point columns.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringArrayVar(&resolvePos, "pos", nil, "Position to resolve as line:column (repeatable)")
	resolveCmd.Flags().StringVar(&resolveQueries, "queries", "", "Path to YAML file of batch queries")
	resolveCmd.Flags().StringVar(&resolveFormat, "format", "human", "Output format: human, json")
	resolveCmd.Flags().StringVar(&resolveColor, "color", "auto", "Color output: auto, always, never")
}

// resolution is one resolved query in both coordinate systems.
type resolution struct {
	Point  locus.SourcePoint `json:"point"`
	Offset int               `json:"offset"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	target := args[0]

	m, err := locus.NewFromFile(target)
	if err != nil {
		return err
	}

	queries, err := collectQueries()
	if err != nil {
		return err
	}
	if len(queries) == 0 {
		return fmt.Errorf("nothing to resolve: pass --pos or --queries")
	}

	resolutions := make([]resolution, 0, len(queries))
	for _, q := range queries {
		switch {
		case q.Point != nil:
			off, err := m.Offset(*q.Point)
			if err != nil {
				return fmt.Errorf("resolving %s: %w", q.Point, err)
			}
			resolutions = append(resolutions, resolution{Point: *q.Point, Offset: off})
		case q.Offset != nil:
			off := int(*q.Offset)
			resolutions = append(resolutions, resolution{Point: m.Point(off), Offset: off})
		}
	}

	switch resolveFormat {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(resolutions)
	case "human":
		return outputResolutions(cmd, m, target, resolutions)
	default:
		return fmt.Errorf("unknown output format: %s", resolveFormat)
	}
}

// collectQueries merges --pos flags and the --queries file.
func collectQueries() ([]query.Query, error) {
	var queries []query.Query

	for _, spec := range resolvePos {
		p, err := parsePos(spec)
		if err != nil {
			return nil, err
		}
		queries = append(queries, query.Query{Point: &p})
	}

	if resolveQueries != "" {
		loaded, err := query.LoadFile(resolveQueries)
		if err != nil {
			return nil, fmt.Errorf("loading queries: %w", err)
		}
		queries = append(queries, loaded...)
	}

	return queries, nil
}

// parsePos parses a "line:column" flag value.
func parsePos(spec string) (locus.SourcePoint, error) {
	line, col, ok := strings.Cut(spec, ":")
	if !ok {
		return locus.SourcePoint{}, fmt.Errorf("invalid position %q: want line:column", spec)
	}
	l, err := strconv.Atoi(line)
	if err != nil {
		return locus.SourcePoint{}, fmt.Errorf("invalid line in %q: %w", spec, err)
	}
	c, err := strconv.Atoi(col)
	if err != nil {
		return locus.SourcePoint{}, fmt.Errorf("invalid column in %q: %w", spec, err)
	}
	return locus.SourcePoint{Line: l, Column: c}, nil
}

func outputResolutions(cmd *cobra.Command, m *locus.Mapper, target string, resolutions []resolution) error {
	out := cmd.OutOrStdout()
	s := setupColor(resolveColor)

	for _, r := range resolutions {
		fmt.Fprintf(out, "%s %s %s %s\n",
			s.metadata.Sprintf("%s:%s", target, r.Point),
			s.heading.Sprint("->"),
			s.heading.Sprint("offset"),
			s.offset.Sprintf("%d", r.Offset))

		if quiet {
			continue
		}

		// Show the line with a caret under the resolved column.
		line, err := m.Line(r.Point.Line)
		if err != nil {
			continue
		}
		col := r.Point.Column
		if n := utf8.RuneCount(line); col > n {
			col = n
		}
		fmt.Fprintf(out, "  %s\n", line)
		fmt.Fprintf(out, "  %s%s\n", strings.Repeat(" ", col), s.position.Sprint("^"))
	}

	return nil
}
