package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mcvoid/domjson"
	"github.com/mcvoid/domjson/internal/diag"
	"github.com/mcvoid/domjson/memres"
)

// newFormatCmd parses each file into a value.Value tree and re-serializes
// it canonically, writing to stdout or the -o destination.
func newFormatCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "format [files...]",
		Short: "Parse and re-emit each file as canonical JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			for _, arg := range args {
				if err := formatOne(cfg, arg); err != nil {
					return err
				}
				diag.Logger.Info().Str("file", arg).Msg("formatted")
			}
			return nil
		},
	}
}

func formatOne(cfg *Config, arg string) error {
	data, err := readInput(arg)
	if err != nil {
		return err
	}

	res := memres.Resource(memres.Default)
	if cfg.Arena {
		res = memres.NewMonotonic(len(data))
	}

	v, err := domjson.ParseOpts(res, cfg.Options(), data)
	if err != nil {
		return err
	}

	out, err := domjson.Serialize(v)
	if err != nil {
		return err
	}
	out += "\n"

	if cfg.Output == "" || cfg.Output == "-" {
		_, err = os.Stdout.WriteString(out)
		return err
	}
	return os.WriteFile(cfg.Output, []byte(out), 0o644)
}
