package main

import (
	"testing"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseArgs(t *testing.T, args ...string) *Options {
	t.Helper()
	opts := &Options{}
	_, err := flags.NewParser(opts, flags.None).ParseArgs(args)
	require.NoError(t, err)
	return opts
}

func TestDurationFlag(t *testing.T) {
	t.Run("bare number is seconds", func(t *testing.T) {
		opts := parseArgs(t, "--duration", "5")
		assert.Equal(t, 5*time.Second, time.Duration(opts.Run.Duration))
	})

	t.Run("fractional seconds", func(t *testing.T) {
		opts := parseArgs(t, "--duration", "2.5")
		assert.Equal(t, 2500*time.Millisecond, time.Duration(opts.Run.Duration))
	})

	t.Run("duration strings still work", func(t *testing.T) {
		opts := parseArgs(t, "--duration", "90s")
		assert.Equal(t, 90*time.Second, time.Duration(opts.Run.Duration))

		opts = parseArgs(t, "--duration", "2m")
		assert.Equal(t, 2*time.Minute, time.Duration(opts.Run.Duration))
	})

	t.Run("default means run until interrupted", func(t *testing.T) {
		opts := parseArgs(t)
		assert.Equal(t, time.Duration(0), time.Duration(opts.Run.Duration))
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		opts := &Options{}
		_, err := flags.NewParser(opts, flags.None).ParseArgs([]string{"--duration", "soon"})
		require.Error(t, err)
	})
}
