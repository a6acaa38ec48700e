package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcvoid/domjson"
	"github.com/mcvoid/domjson/internal/diag"
	"github.com/mcvoid/domjson/memres"
)

// newBenchCmd parses each file repeatedly against the default resource
// and, for comparison, a fresh monotonic arena per iteration, and prints
// the elapsed time for each.
func newBenchCmd(cfg *Config) *cobra.Command {
	iterations := 100

	cmd := &cobra.Command{
		Use:   "bench [files...]",
		Short: "Measure repeated-parse time against the default and monotonic resources",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			for _, arg := range args {
				if err := benchOne(cfg, arg, iterations); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&iterations, "iterations", iterations, "number of repeated parses per file")
	return cmd
}

func benchOne(cfg *Config, arg string, iterations int) error {
	data, err := readInput(arg)
	if err != nil {
		return err
	}

	defaultElapsed := timeParses(data, cfg, iterations, memres.Default)

	arenaElapsed := timeParses(data, cfg, iterations, nil)

	diag.Logger.Debug().Str("file", arg).
		Dur("default", defaultElapsed).Dur("arena", arenaElapsed).
		Msg("bench complete")

	fmt.Printf("%s: default=%s arena=%s (%d iterations, %d bytes)\n",
		arg, defaultElapsed, arenaElapsed, iterations, len(data))
	return nil
}

// timeParses runs iterations parses of data. A nil res means: build a
// fresh monotonic arena sized to data for every iteration, exercising the
// "throw the whole arena away between documents" usage pattern the
// monotonic resource is meant for.
func timeParses(data []byte, cfg *Config, iterations int, res memres.Resource) time.Duration {
	start := time.Now()
	for range iterations {
		r := res
		if r == nil {
			r = memres.NewMonotonic(len(data))
		}
		if _, err := domjson.ParseOpts(r, cfg.Options(), data); err != nil {
			diag.Logger.Debug().Err(err).Msg("bench parse failed")
		}
	}
	return time.Since(start)
}
