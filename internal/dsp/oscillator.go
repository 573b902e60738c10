package dsp

import "math"

const twoPi = 2 * math.Pi

// Oscillator is a single band-limited phase accumulator. Shape selection and
// the pitch-to-increment conversion live in the caller (the voice dispatch
// table); Oscillator only advances phase and renders the current shape.
type Oscillator struct {
	phase     float64
	increment float64
	noiseLFSR uint16
}

func NewOscillator(seed uint16) Oscillator {
	if seed == 0 {
		seed = 0xACE1
	}
	return Oscillator{noiseLFSR: seed}
}

// SetIncrement sets the phase increment per sample (frequency * sample
// interval) without touching the current phase, so a reference-frequency or
// pitch-shift change never clicks.
func (o *Oscillator) SetIncrement(increment float64) { o.increment = increment }

func (o *Oscillator) Reset() { o.phase = 0 }

// polyBLEP reduces aliasing at waveform discontinuities (Saw/Square edges).
// t is phase position in [0,1), dt is the phase increment per sample.
func polyBLEP(t, dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	if t < dt {
		t /= dt
		return t + t - t*t - 1
	}
	if t > 1-dt {
		t = (t - 1) / dt
		return t*t + t + t + 1
	}
	return 0
}

// Next renders one sample for the given shape and advances phase.
func (o *Oscillator) Next(shape int) float64 {
	dt := o.increment
	phase := o.phase
	o.phase += dt
	if o.phase >= 1 {
		o.phase -= 1
	}
	switch shape {
	case int(oscillatorSine):
		return math.Sin(twoPi * phase)
	case int(oscillatorSaw):
		out := 2*phase - 1
		out -= polyBLEP(phase, dt)
		return -out
	case int(oscillatorSquare):
		out := -1.0
		if phase < 0.5 {
			out = 1
		}
		out += polyBLEP(phase, dt)
		out -= polyBLEP(math.Mod(phase+0.5, 1), dt)
		return out
	case int(oscillatorNoise):
		if phase < dt {
			bit := (o.noiseLFSR ^ (o.noiseLFSR >> 1)) & 1
			o.noiseLFSR = (o.noiseLFSR >> 1) | (bit << 15)
		}
		if o.noiseLFSR&1 == 1 {
			return 1
		}
		return -1
	default:
		return 0
	}
}

// Shape ordinals mirrored here (rather than importing internal/abi) to keep
// this leaf package dependency-free; internal/voice maps abi.OscillatorShape
// to these same ordinals when building its dispatch table.
const (
	oscillatorNone = iota
	oscillatorSine
	oscillatorSaw
	oscillatorSquare
	oscillatorNoise
)
