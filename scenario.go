package main

import (
	"sync"
	"time"
)

// ScenarioEngine answers the cross-cutting questions every generator
// asks: is it peak hours, is this event part of an attack, did a
// business failure fire. It is constructed once and passed to
// generators explicitly so tests can substitute a deterministic one.
// Sampling draws are serialized behind a mutex; reads of the parsed
// window are immutable after construction.
type ScenarioEngine struct {
	mut      sync.Mutex
	rng      Rng
	attacks  map[string]AttackConfig
	failures map[string]FailureConfig

	peakStart int // minutes after midnight
	peakEnd   int
	peakMult  float64
	hasPeak   bool

	attackCounts  map[string]int64
	failureCounts map[string]int64
}

func NewScenarioEngine(cfg *Config, rng Rng) *ScenarioEngine {
	e := &ScenarioEngine{
		rng:           rng,
		attacks:       cfg.Security.AttackPatterns,
		failures:      cfg.Business.FailureScenarios,
		peakMult:      1.0,
		attackCounts:  make(map[string]int64),
		failureCounts: make(map[string]int64),
	}
	ph := cfg.Business.PeakHours
	if ph.Start != "" && ph.End != "" {
		// Validate has already vetted these
		start, err1 := parseClock(ph.Start)
		end, err2 := parseClock(ph.End)
		if err1 == nil && err2 == nil {
			e.peakStart = start
			e.peakEnd = end
			e.peakMult = ph.Multiplier
			e.hasPeak = true
		}
	}
	return e
}

// InPeakWindow reports whether now falls inside the configured
// peak-hour window (inclusive of both endpoints). Windows that cross
// midnight are honored.
func (e *ScenarioEngine) InPeakWindow(now time.Time) bool {
	if !e.hasPeak {
		return false
	}
	minute := now.Hour()*60 + now.Minute()
	if e.peakStart <= e.peakEnd {
		return minute >= e.peakStart && minute <= e.peakEnd
	}
	return minute >= e.peakStart || minute <= e.peakEnd
}

// Multiplier returns the peak-hour traffic multiplier if now falls
// inside the configured window, else 1.
func (e *ScenarioEngine) Multiplier(now time.Time) float64 {
	if e.InPeakWindow(now) {
		return e.peakMult
	}
	return 1.0
}

// SampleAttack reports whether this event is part of the named attack
// pattern, firing with the configured intensity. Disabled or unknown
// patterns never fire.
func (e *ScenarioEngine) SampleAttack(name string) bool {
	e.mut.Lock()
	defer e.mut.Unlock()
	p, ok := e.attacks[name]
	if !ok || !p.Enabled || p.Intensity <= 0 {
		return false
	}
	if !e.rng.Bool(p.Intensity) {
		return false
	}
	e.attackCounts[name]++
	return true
}

// SampleFailure reports whether the named business failure fires for
// this event.
func (e *ScenarioEngine) SampleFailure(name string) bool {
	e.mut.Lock()
	defer e.mut.Unlock()
	f, ok := e.failures[name]
	if !ok || f.Probability <= 0 {
		return false
	}
	if !e.rng.Bool(f.Probability) {
		return false
	}
	e.failureCounts[name]++
	return true
}

// AttackSourceIP draws one of the pattern's configured attacker IPs.
func (e *ScenarioEngine) AttackSourceIP(name string) string {
	e.mut.Lock()
	defer e.mut.Unlock()
	p, ok := e.attacks[name]
	if !ok || len(p.SourceIPs) == 0 {
		return "203.0.113.1"
	}
	return e.rng.Choice(p.SourceIPs)
}

// AttackUser draws one of the pattern's target accounts.
func (e *ScenarioEngine) AttackUser(name string) string {
	e.mut.Lock()
	defer e.mut.Unlock()
	p, ok := e.attacks[name]
	if !ok || len(p.TargetUsers) == 0 {
		return "admin"
	}
	return e.rng.Choice(p.TargetUsers)
}

// AttackEndpoint draws one of the pattern's target endpoints.
func (e *ScenarioEngine) AttackEndpoint(name string) string {
	e.mut.Lock()
	defer e.mut.Unlock()
	p, ok := e.attacks[name]
	if !ok || len(p.TargetEndpoints) == 0 {
		return "/api/v1/auth/login"
	}
	return e.rng.Choice(p.TargetEndpoints)
}

// FailureFactor returns the named scenario's slowdown factor, or 1.
func (e *ScenarioEngine) FailureFactor(name string) float64 {
	f, ok := e.failures[name]
	if !ok || f.SlowdownFactor <= 0 {
		return 1.0
	}
	return f.SlowdownFactor
}

// Counts reports how many times each attack pattern and failure
// scenario has fired, for the shutdown summary.
func (e *ScenarioEngine) Counts() (attacks, failures map[string]int64) {
	e.mut.Lock()
	defer e.mut.Unlock()
	attacks = make(map[string]int64, len(e.attackCounts))
	for k, v := range e.attackCounts {
		attacks[k] = v
	}
	failures = make(map[string]int64, len(e.failureCounts))
	for k, v := range e.failureCounts {
		failures[k] = v
	}
	return attacks, failures
}
