package main

import (
	"encoding/json"
	"fmt"

	"github.com/praetorian-inc/locus"
	"github.com/spf13/cobra"
)

var (
	findPattern      string
	findContextLines int
	findFormat       string
	findColor        string
)

var findCmd = &cobra.Command{
	Use:   "find <file>",
	Short: "Find regex matches in a file with full locations",
	Long: `Run a regex pattern over a file and print every match with its byte
range, line:column span, and surrounding lines of context.`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

func init() {
	findCmd.Flags().StringVarP(&findPattern, "pattern", "e", "", "Pattern to search for (required)")
	findCmd.Flags().IntVar(&findContextLines, "context-lines", 2, "Lines of context before/after matches (0 to disable)")
	findCmd.Flags().StringVar(&findFormat, "format", "human", "Output format: human, json")
	findCmd.Flags().StringVar(&findColor, "color", "auto", "Color output: auto, always, never")
	findCmd.MarkFlagRequired("pattern")
}

func runFind(cmd *cobra.Command, args []string) error {
	target := args[0]

	m, err := locus.NewFromFile(target, locus.WithContextLines(findContextLines))
	if err != nil {
		return err
	}

	results, err := m.Search(findPattern)
	if err != nil {
		return err
	}

	if findFormat == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	}
	if findFormat != "human" {
		return fmt.Errorf("unknown output format: %s", findFormat)
	}

	out := cmd.OutOrStdout()
	s := setupColor(findColor)

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(out, "No matches.\n")
		}
		return nil
	}

	for i, r := range results {
		fmt.Fprintf(out, "%s (%s %s)\n",
			s.heading.Sprintf("Match %d/%d", i+1, len(results)),
			s.position.Sprint(r.Location.Source),
			s.offset.Sprintf("[%d,%d)", r.Location.Offset.Start, r.Location.Offset.End))

		if verbose {
			fmt.Fprintf(out, "    %s %s\n", s.heading.Sprint("File:"), s.metadata.Sprint(target))
		}

		snip := m.Context(r.Location)
		fmt.Fprintf(out, "\n    %s%s%s\n\n",
			snip.Before, s.match.Sprint(string(snip.Matching)), snip.After)
	}

	return nil
}
