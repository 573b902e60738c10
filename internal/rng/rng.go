// Package rng provides the two seedable random sources used by the engine:
// one for the main (non-realtime) thread, one for the audio (realtime) thread.
// Keeping them separate means a main-thread call (e.g. building a new note)
// never perturbs the sequence an audio-thread call (e.g. sample-slice
// tiebreaking) would otherwise see, so a recorded session replays identically
// regardless of how the two threads happen to interleave.
package rng

import "math/rand"

// Audio is the audio-thread RNG. Only ever touched from Process.
type Audio struct {
	r    *rand.Rand
	seed int64
}

// Main is the main-thread RNG. Only ever touched outside Process.
type Main struct {
	r    *rand.Rand
	seed int64
}

func NewAudio(seed int64) *Audio {
	return &Audio{r: rand.New(rand.NewSource(seed)), seed: seed}
}

func NewMain(seed int64) *Main {
	return &Main{r: rand.New(rand.NewSource(seed)), seed: seed}
}

func (a *Audio) Seed() int64 { return a.seed }

func (a *Audio) SetSeed(seed int64) {
	a.seed = seed
	a.r = rand.New(rand.NewSource(seed))
}

// Generate returns a uniform value in [0, 1).
func (a *Audio) Generate() float64 { return a.r.Float64() }

// GenerateRange returns a uniform integer in [min, max).
func (a *Audio) GenerateRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + a.r.Intn(max-min)
}

func (m *Main) Seed() int64 { return m.seed }

func (m *Main) SetSeed(seed int64) {
	m.seed = seed
	m.r = rand.New(rand.NewSource(seed))
}

func (m *Main) Generate() float64 { return m.r.Float64() }

func (m *Main) GenerateRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + m.r.Intn(max-min)
}
