package main

import "time"

// Clock supplies record timestamps. Production uses the wall clock;
// tests substitute a fixed or stepping clock so time-dependent
// behavior (peak windows, rotation, determinism) is testable.
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }
