package main

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRegisterFlagsDefaults(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	fs := pflag.NewFlagSet("domjson", pflag.ContinueOnError)
	cfg.RegisterFlags(fs)

	assert.False(t, cfg.AllowComments)
	assert.False(t, cfg.AllowTrailingCommas)
	assert.Equal(t, "-", cfg.Output)
	assert.False(t, cfg.Arena)
}

func TestConfigRegisterFlagsParsesArgs(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	fs := pflag.NewFlagSet("domjson", pflag.ContinueOnError)
	cfg.RegisterFlags(fs)

	require.NoError(t, fs.Parse([]string{"--comments", "--trailing-commas", "-o", "out.json"}))

	assert.True(t, cfg.AllowComments)
	assert.True(t, cfg.AllowTrailingCommas)
	assert.Equal(t, "out.json", cfg.Output)

	opts := cfg.Options()
	assert.True(t, opts.AllowComments)
	assert.True(t, opts.AllowTrailingCommas)
}
