package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hhmm string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", "2026-03-10 "+hhmm)
	if err != nil {
		panic(err)
	}
	return t
}

func TestScenarioMultiplier(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Business.PeakHours = PeakHoursConfig{Start: "09:00", End: "17:00", Multiplier: 2.5}
	eng := NewScenarioEngine(cfg, NewRng("test"))

	assert.Equal(t, 1.0, eng.Multiplier(at("08:59")))
	assert.Equal(t, 2.5, eng.Multiplier(at("09:00")), "window start is inclusive")
	assert.Equal(t, 2.5, eng.Multiplier(at("12:30")))
	assert.Equal(t, 2.5, eng.Multiplier(at("17:00")), "window end is inclusive")
	assert.Equal(t, 1.0, eng.Multiplier(at("17:01")))
}

func TestScenarioMultiplierWrapsMidnight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Business.PeakHours = PeakHoursConfig{Start: "22:00", End: "02:00", Multiplier: 3}
	eng := NewScenarioEngine(cfg, NewRng("test"))

	assert.Equal(t, 3.0, eng.Multiplier(at("23:15")))
	assert.Equal(t, 3.0, eng.Multiplier(at("01:00")))
	assert.Equal(t, 1.0, eng.Multiplier(at("12:00")))
}

func TestScenarioInPeakWindow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Business.PeakHours = PeakHoursConfig{Start: "09:00", End: "17:00", Multiplier: 1.0}
	eng := NewScenarioEngine(cfg, NewRng("test"))

	// a multiplier of exactly 1 still counts as an active window
	assert.True(t, eng.InPeakWindow(at("12:30")))
	assert.Equal(t, 1.0, eng.Multiplier(at("12:30")))
	assert.False(t, eng.InPeakWindow(at("08:59")))
	assert.False(t, eng.InPeakWindow(at("17:01")))

	cfg.Business.PeakHours = PeakHoursConfig{}
	assert.False(t, NewScenarioEngine(cfg, NewRng("test")).InPeakWindow(at("12:30")))
}

func TestScenarioMultiplierNoWindow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Business.PeakHours = PeakHoursConfig{}
	eng := NewScenarioEngine(cfg, NewRng("test"))
	assert.Equal(t, 1.0, eng.Multiplier(at("12:00")))
}

func TestScenarioAttackSampling(t *testing.T) {
	t.Run("disabled pattern never fires", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Security.AttackPatterns["brute_force"] = AttackConfig{Enabled: false, Intensity: 1.0}
		eng := NewScenarioEngine(cfg, NewRng("test"))
		for i := 0; i < 100; i++ {
			require.False(t, eng.SampleAttack("brute_force"))
		}
	})

	t.Run("unknown pattern never fires", func(t *testing.T) {
		eng := NewScenarioEngine(DefaultConfig(), NewRng("test"))
		assert.False(t, eng.SampleAttack("teapot_takeover"))
	})

	t.Run("full intensity always fires", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Security.AttackPatterns["brute_force"] = AttackConfig{
			Enabled: true, Intensity: 1.0, SourceIPs: []string{"203.0.113.42"},
		}
		eng := NewScenarioEngine(cfg, NewRng("test"))
		for i := 0; i < 100; i++ {
			require.True(t, eng.SampleAttack("brute_force"))
		}
		attacks, _ := eng.Counts()
		assert.Equal(t, int64(100), attacks["brute_force"])
	})

	t.Run("attacker pools come from config", func(t *testing.T) {
		cfg := DefaultConfig()
		eng := NewScenarioEngine(cfg, NewRng("test"))
		pattern := cfg.Security.AttackPatterns["brute_force"]
		for i := 0; i < 50; i++ {
			assert.Contains(t, pattern.SourceIPs, eng.AttackSourceIP("brute_force"))
			assert.Contains(t, pattern.TargetUsers, eng.AttackUser("brute_force"))
		}
	})
}

func TestScenarioFailureSampling(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Business.FailureScenarios["payment_gateway_outage"] = FailureConfig{Probability: 1.0}
	cfg.Business.FailureScenarios["database_slowdown"] = FailureConfig{Probability: 0, SlowdownFactor: 10}
	eng := NewScenarioEngine(cfg, NewRng("test"))

	for i := 0; i < 50; i++ {
		require.True(t, eng.SampleFailure("payment_gateway_outage"))
		require.False(t, eng.SampleFailure("database_slowdown"))
	}
	assert.Equal(t, 10.0, eng.FailureFactor("database_slowdown"))
	assert.Equal(t, 1.0, eng.FailureFactor("payment_gateway_outage"))

	_, failures := eng.Counts()
	assert.Equal(t, int64(50), failures["payment_gateway_outage"])
}
