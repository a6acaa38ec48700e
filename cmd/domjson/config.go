package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mcvoid/domjson/sax"
)

// Flags holds CLI flag names, letting callers rename flags while keeping
// sensible defaults, mirroring MacroPower-x/magicschema.Flags.
type Flags struct {
	Comments       string
	TrailingCommas string
	Output         string
	Arena          string
	Verbose        string
}

// Config holds CLI flag values shared across domjson's subcommands.
//
// Create instances with NewConfig and register CLI flags with
// Config.RegisterFlags.
type Config struct {
	Flags Flags

	AllowComments       bool
	AllowTrailingCommas bool
	Output              string
	Arena               bool
	Verbose             bool
}

// NewConfig returns a Config with default flag names.
func NewConfig() *Config {
	return &Config{
		Flags: Flags{
			Comments:       "comments",
			TrailingCommas: "trailing-commas",
			Output:         "output",
			Arena:          "arena",
			Verbose:        "verbose",
		},
	}
}

// RegisterFlags adds domjson's flags to flags.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&c.AllowComments, c.Flags.Comments, false,
		"accept // and /* */ comments wherever whitespace is permitted")
	flags.BoolVar(&c.AllowTrailingCommas, c.Flags.TrailingCommas, false,
		"accept one trailing comma before ] or }")
	flags.StringVarP(&c.Output, c.Flags.Output, "o", "-",
		"output file path (- for stdout)")
	flags.BoolVar(&c.Arena, c.Flags.Arena, false,
		"parse into a monotonic arena instead of the default resource")
	flags.BoolVarP(&c.Verbose, c.Flags.Verbose, "v", false,
		"log parse/serialize diagnostics to stderr")
}

// RegisterCompletions registers shell completions for domjson's flags.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	for _, flag := range []string{c.Flags.Output} {
		if err := cmd.RegisterFlagCompletionFunc(flag, noFileComp); err != nil {
			return err
		}
	}
	return nil
}

// Options returns the sax.Options this Config describes.
func (c *Config) Options() sax.Options {
	return sax.Options{
		AllowComments:       c.AllowComments,
		AllowTrailingCommas: c.AllowTrailingCommas,
	}
}
