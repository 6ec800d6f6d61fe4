package main

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "locus",
	Short: "Locus - source position to byte offset resolver",
	Long: `Locus translates between source positions and byte offsets in UTF-8 text.
It resolves parser-style line:column positions (1-based lines, 0-based code
point columns) to exact byte offsets and back, handling LF, CRLF, bare CR,
U+2028, and U+2029 line terminators.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	// Add subcommands
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(spansCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
