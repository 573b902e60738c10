package dsp

// ADSR holds the per-stage coefficients shared, read-only, by every voice of
// one instrument. Attack/Decay/Release are expressed as phase increments per
// sample (sample_interval / stage_seconds); a stage shorter than one sample
// period becomes instantaneous (the increment is clamped to 0, which
// Envelope.Next treats as an immediate fallthrough to the next stage).
type ADSR struct {
	sampleInterval   float64
	attackIncrement  float64
	decayIncrement   float64
	sustain          float64
	releaseIncrement float64
}

// NewADSR constructs an ADSR for an instrument running at sampleInterval =
// 1/sample_rate, with a fully-open sustain level until SetSustain is called.
func NewADSR(sampleInterval float64) ADSR {
	return ADSR{sampleInterval: sampleInterval, sustain: 1}
}

func (a *ADSR) SetAttack(seconds float64) { a.attackIncrement = a.stageIncrement(seconds) }

func (a *ADSR) SetDecay(seconds float64) { a.decayIncrement = a.stageIncrement(seconds) }

func (a *ADSR) SetSustain(level float64) {
	switch {
	case level < 0:
		level = 0
	case level > 1:
		level = 1
	}
	a.sustain = level
}

func (a *ADSR) SetRelease(seconds float64) { a.releaseIncrement = a.stageIncrement(seconds) }

func (a ADSR) Sustain() float64 { return a.sustain }

// stageIncrement converts a stage duration in seconds to a per-sample phase
// increment. Stages whose increment would exceed 1.0 (durations under one
// sample period) collapse to 0, which Envelope.Next reads as "already done".
func (a ADSR) stageIncrement(seconds float64) float64 {
	if seconds <= 0 {
		return 0
	}
	inc := a.sampleInterval / seconds
	if inc > 1.0 {
		return 0
	}
	return inc
}

type EnvelopeState int

const (
	EnvelopeIdle EnvelopeState = iota
	EnvelopeAttack
	EnvelopeDecay
	EnvelopeSustain
	EnvelopeRelease
)

// stageEndPhase is the phase at which a stage ends. It sits just below 1.0 so
// that rounding in the accumulated phase (ten additions of 0.1 sum to
// 0.9999999999999999) does not stretch a stage by one extra sample.
const stageEndPhase = 1.0 - 1e-9

// Envelope is the per-voice ADSR follower. adsr is shared across every voice
// of the owning instrument; Envelope itself owns only phase/output/state.
type Envelope struct {
	adsr          *ADSR
	state         EnvelopeState
	phase         float64
	output        float64
	releaseOutput float64
}

func NewEnvelope(adsr *ADSR) Envelope {
	return Envelope{adsr: adsr}
}

func (e *Envelope) IsActive() bool { return e.state != EnvelopeIdle }

// Reset forces the envelope back to Idle, discarding any in-progress stage.
func (e *Envelope) Reset() {
	e.state = EnvelopeIdle
	e.phase = 0
	e.output = 0
	e.releaseOutput = 0
}

// Start resets phase to zero and enters the first stage with a non-zero
// increment, in Attack -> Decay -> Sustain order.
func (e *Envelope) Start() {
	e.phase = 0
	switch {
	case e.adsr.attackIncrement > 0:
		e.state = EnvelopeAttack
	case e.adsr.decayIncrement > 0:
		e.state = EnvelopeDecay
		e.output = 1
	default:
		e.state = EnvelopeSustain
		e.output = e.adsr.sustain
	}
}

// Stop captures the current output as the release ramp's starting point and
// transitions to Release, unless the envelope is already idle or releasing.
// A release stage shorter than one sample period collapses to Idle
// directly, the same instantaneous-skip treatment Start gives a zero-length
// attack or decay.
func (e *Envelope) Stop() {
	if e.state == EnvelopeIdle || e.state == EnvelopeRelease {
		return
	}
	if e.adsr.releaseIncrement <= 0 {
		e.state = EnvelopeIdle
		e.phase = 0
		e.output = 0
		return
	}
	e.releaseOutput = e.output
	e.phase = 0
	e.state = EnvelopeRelease
}

// Next advances the envelope by one sample and returns the new output.
func (e *Envelope) Next() float64 {
	switch e.state {
	case EnvelopeAttack:
		e.output = e.phase
		e.phase += e.adsr.attackIncrement
		if e.adsr.attackIncrement <= 0 || e.phase >= stageEndPhase {
			e.phase = 0
			if e.adsr.decayIncrement > 0 {
				e.state = EnvelopeDecay
			} else {
				e.state = EnvelopeSustain
				e.output = e.adsr.sustain
			}
		}
	case EnvelopeDecay:
		e.output = 1.0 - e.phase*(1.0-e.adsr.sustain)
		e.phase += e.adsr.decayIncrement
		if e.adsr.decayIncrement <= 0 || e.phase >= stageEndPhase {
			e.phase = 0
			e.state = EnvelopeSustain
			e.output = e.adsr.sustain
		}
	case EnvelopeSustain:
		e.output = e.adsr.sustain
	case EnvelopeRelease:
		e.output = (1.0 - e.phase) * e.releaseOutput
		e.phase += e.adsr.releaseIncrement
		if e.adsr.releaseIncrement <= 0 || e.phase >= stageEndPhase {
			e.phase = 0
			e.output = 0
			e.state = EnvelopeIdle
		}
	default:
		e.output = 0
	}
	return e.output
}
