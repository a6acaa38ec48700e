// Command domjson is a small CLI over the domjson library: validate JSON
// documents, reformat them canonically, or benchmark parsing against the
// default vs. monotonic-arena memory resource.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mcvoid/domjson/internal/diag"
)

func main() {
	cfg := NewConfig()

	rootCmd := &cobra.Command{
		Use:           "domjson",
		Short:         "Parse, validate and reformat JSON documents",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if cfg.Verbose {
				diag.UseStderr(zerolog.DebugLevel)
			}
		},
	}

	cfg.RegisterFlags(rootCmd.PersistentFlags())
	if err := cfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	rootCmd.AddCommand(
		newValidateCmd(cfg),
		newFormatCmd(cfg),
		newBenchCmd(cfg),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// readInput reads a single CLI argument, treating "-" as stdin.
func readInput(arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(arg)
}
