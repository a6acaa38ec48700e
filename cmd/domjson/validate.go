package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcvoid/domjson/internal/diag"
	"github.com/mcvoid/domjson/sax"
)

// newValidateCmd streams each file through a NopHandler, reporting the
// parse error and byte offset on failure, without ever materializing a
// value.Value tree.
func newValidateCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [files...]",
		Short: "Check that each file is syntactically valid JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ok := true
			for _, arg := range args {
				if err := validateOne(cfg, arg); err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", arg, err)
					ok = false
					continue
				}
				diag.Logger.Info().Str("file", arg).Msg("valid")
			}
			if !ok {
				os.Exit(1)
			}
			return nil
		},
	}
}

func validateOne(cfg *Config, arg string) error {
	data, err := readInput(arg)
	if err != nil {
		return err
	}
	p := sax.NewParser(sax.NopHandler{}, cfg.Options())
	return p.Finish(data)
}
