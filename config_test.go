package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	t.Run("default config is valid", func(t *testing.T) {
		require.NoError(t, DefaultConfig().Validate())
	})

	t.Run("negative rate is rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Rates["nginx"] = -1
		err := cfg.Validate()
		require.Error(t, err)
		var cerr *ConfigError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "rates.nginx", cerr.Field)
	})

	t.Run("rate for undeclared service is rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Rates["mainframe"] = 3
		var cerr *ConfigError
		require.ErrorAs(t, cfg.Validate(), &cerr)
		assert.Equal(t, "rates.mainframe", cerr.Field)
	})

	t.Run("zero rate is allowed", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Rates["nginx"] = 0
		require.NoError(t, cfg.Validate())
	})

	t.Run("attack intensity outside [0,1] is rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		p := cfg.Security.AttackPatterns["brute_force"]
		p.Intensity = 1.5
		cfg.Security.AttackPatterns["brute_force"] = p
		var cerr *ConfigError
		require.ErrorAs(t, cfg.Validate(), &cerr)
		assert.Contains(t, cerr.Field, "brute_force")
	})

	t.Run("failure probability outside [0,1] is rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Business.FailureScenarios["payment_gateway_outage"] = FailureConfig{Probability: -0.1}
		require.Error(t, cfg.Validate())
	})

	t.Run("negative peak multiplier is rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Business.PeakHours.Multiplier = -2
		var cerr *ConfigError
		require.ErrorAs(t, cfg.Validate(), &cerr)
		assert.Equal(t, "business.peak_hours.multiplier", cerr.Field)
	})

	t.Run("zero peak multiplier is allowed", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Business.PeakHours.Multiplier = 0
		require.NoError(t, cfg.Validate())
	})

	t.Run("malformed peak window is rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Business.PeakHours.Start = "9am"
		require.Error(t, cfg.Validate())
	})

	t.Run("empty host pool is rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Topology.Hosts = nil
		require.Error(t, cfg.Validate())
	})

	t.Run("zero rotation size is rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Output.Rotation.MaxSizeMB = 0
		require.Error(t, cfg.Validate())
	})
}

func TestReadConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, WriteConfig(DefaultConfig(), path))

	first := &Config{}
	require.NoError(t, ReadConfig(first, path))
	require.NoError(t, first.Validate())

	// loading the same document twice yields structurally identical configs
	second := &Config{}
	require.NoError(t, ReadConfig(second, path))
	assert.Equal(t, first, second)

	assert.Equal(t, DefaultConfig(), first)
}

func TestReadConfigMissingFile(t *testing.T) {
	cfg := &Config{}
	err := ReadConfig(cfg, filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}
