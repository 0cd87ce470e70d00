package main

import (
	"strings"

	"github.com/dgryski/go-wyhash"
	"github.com/google/uuid"
	"pgregory.net/rand"
)

// Rng is a string-seeded random source. Every random draw in the
// process flows through an Rng so that a fixed seed reproduces the
// same stream of values. An Rng is not safe for concurrent use; each
// producer owns its own, and shared owners guard it with a mutex.
type Rng struct {
	rng *rand.Rand
}

func NewRng(seed string) Rng {
	return Rng{rand.New(wyhash.Hash([]byte(seed), 2467825690))}
}

// SubRng derives an independent Rng from this one's seed string, so
// that components seeded from the same run seed do not share state.
func SubRng(seed, name string) Rng {
	return NewRng(seed + "/" + name)
}

func (r Rng) Intn(n int) int {
	return r.rng.Intn(n)
}

// Int returns an int in the inclusive range [min, max].
func (r Rng) Int(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.rng.Intn(max-min+1)
}

func (r Rng) Float(min, max float64) float64 {
	return r.rng.Float64()*(max-min) + min
}

func (r Rng) Gaussian(mean, stddev float64) float64 {
	return r.rng.NormFloat64()*stddev + mean
}

// Bool returns true with probability p (0..1).
func (r Rng) Bool(p float64) bool {
	return r.rng.Float64() < p
}

func (r Rng) Choice(a []string) string {
	return a[r.rng.Intn(len(a))]
}

func (r Rng) ChoiceInt(a []int) int {
	return a[r.rng.Intn(len(a))]
}

func (r Rng) String(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte("abcdefghijklmnopqrstuvwxyz"[r.rng.Intn(26)])
	}
	return b.String()
}

func (r Rng) HexString(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte("0123456789abcdef"[r.rng.Intn(16)])
	}
	return b.String()
}

// UUID returns a v4 UUID drawn from this Rng rather than the global
// random source, keeping identifiers reproducible under a fixed seed.
func (r Rng) UUID() string {
	id, err := uuid.NewRandomFromReader(r.rng)
	if err != nil {
		// rand.Rand.Read cannot fail; this is unreachable
		return uuid.Nil.String()
	}
	return id.String()
}

// weightedPick chooses one of items with the matching relative weight.
// Weights need not sum to 1. Order matters for reproducibility, so
// callers pass parallel slices rather than a map.
func weightedPick[T any](r Rng, items []T, weights []float64) T {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	x := r.Float(0, total)
	for i, w := range weights {
		if x < w {
			return items[i]
		}
		x -= w
	}
	return items[0]
}
