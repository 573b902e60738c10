// Package voice implements one polyphonic synthesis voice: envelope,
// oscillator phase, sample player and filter, wired together through a
// dispatch table selected whenever the instrument's oscillator shape or
// sample playback mode changes, so the per-sample hot loop never branches
// on those enums.
package voice

import (
	"github.com/cbegin/barelymusician-go/internal/abi"
	"github.com/cbegin/barelymusician-go/internal/dsp"
)

// mixFunc renders one sample of oscillator mixed with sample playback, for
// a fixed (oscillator shape, sample playback mode) pair.
type mixFunc func(v *Voice) float64

// mixTable is built once per process; index = shape*sampleModeCount+mode.
var mixTable = buildMixTable()

const sampleModeCount = 4 // abi.SamplePlaybackNone..SamplePlaybackLoop

func buildMixTable() []mixFunc {
	table := make([]mixFunc, 5*sampleModeCount)
	for shape := abi.OscillatorNone; shape <= abi.OscillatorNoise; shape++ {
		for mode := abi.SamplePlaybackNone; mode <= abi.SamplePlaybackLoop; mode++ {
			table[mixIndex(shape, mode)] = makeMixFunc(shape, mode)
		}
	}
	return table
}

func mixIndex(shape abi.OscillatorShape, mode abi.SamplePlaybackMode) int {
	return int(shape)*sampleModeCount + int(mode)
}

func makeMixFunc(shape abi.OscillatorShape, mode abi.SamplePlaybackMode) mixFunc {
	oscillates := shape != abi.OscillatorNone
	loops := mode == abi.SamplePlaybackLoop
	plays := mode != abi.SamplePlaybackNone
	return func(v *Voice) float64 {
		var out float64
		if oscillates {
			out += v.osc.Next(int(shape))
		}
		if plays && v.sample.IsActive() {
			out += v.sample.Next(loops)
			if !v.sample.IsActive() && v.pendingStop {
				v.pendingStop = false
				v.envelope.Stop()
			}
		}
		return out
	}
}

// Voice is one polyphonic voice. Pitch lives in the owning VoiceState, not
// here, since a stolen voice's pitch changes without resetting the voice's
// own phase/envelope bookkeeping until Start is called again.
type Voice struct {
	envelope dsp.Envelope
	osc      dsp.Oscillator
	sample   dsp.SamplePlayer
	filter   dsp.OnePoleFilter

	oscShape   abi.OscillatorShape
	sampleMode abi.SamplePlaybackMode
	filterType abi.FilterType

	mix         mixFunc
	pendingStop bool
	intensity   float64
}

func New(adsr *dsp.ADSR, sampleInterval float64, noiseSeed uint16) Voice {
	v := Voice{
		envelope: dsp.NewEnvelope(adsr),
		osc:      dsp.NewOscillator(noiseSeed),
		sample:   dsp.NewSamplePlayer(sampleInterval),
	}
	v.mix = mixTable[mixIndex(abi.OscillatorNone, abi.SamplePlaybackNone)]
	return v
}

func (v *Voice) IsActive() bool { return v.envelope.IsActive() }

// Reset discards any in-progress note without a release tail, used when a
// voice re-enters the active pool after a voice-count increase.
func (v *Voice) Reset() {
	v.envelope.Reset()
	v.filter.Reset()
	v.osc.Reset()
	v.sample.SetSlice(nil)
	v.pendingStop = false
}

func (v *Voice) SetOscillatorShape(shape abi.OscillatorShape) {
	v.oscShape = shape
	v.mix = mixTable[mixIndex(v.oscShape, v.sampleMode)]
}

func (v *Voice) SetSamplePlaybackMode(mode abi.SamplePlaybackMode) {
	v.sampleMode = mode
	v.mix = mixTable[mixIndex(v.oscShape, v.sampleMode)]
}

func (v *Voice) SetFilterType(t abi.FilterType) {
	v.filterType = t
	v.filter.SetHighPass(t == abi.FilterHighPass)
}

func (v *Voice) SetFilterCoefficient(c float64) { v.filter.SetCoefficient(c) }

func (v *Voice) SetOscillatorIncrement(inc float64) { v.osc.SetIncrement(inc) }

func (v *Voice) SetSampleSpeed(speed float64) { v.sample.SetSpeed(speed) }

func (v *Voice) SetSlice(slice *dsp.Slice) { v.sample.SetSlice(slice) }

func (v *Voice) Slice() *dsp.Slice { return v.sample.Slice() }

// Start begins a new note: resets filter state, oscillator phase, sample
// cursor, and starts the envelope. intensity (0..1, already linear) scales
// the mixed signal multiplicatively at Next time via envelope amplitude.
func (v *Voice) Start(intensity float64) {
	v.filter.Reset()
	v.osc.Reset()
	v.sample.Reset()
	v.pendingStop = false
	v.intensity = intensity
	v.envelope.Start()
}

// Stop releases the voice. In Once mode, if the sample is still playing the
// actual envelope release is deferred until sample playback completes.
func (v *Voice) Stop() {
	if v.sampleMode == abi.SamplePlaybackOnce && v.sample.IsActive() {
		v.pendingStop = true
		return
	}
	v.envelope.Stop()
}

// Next renders one output sample: oscillator+sample mix, scaled by the
// envelope and note intensity, then routed through the filter. The caller
// (InstrumentProcessor) only calls Next on voices observed active; a voice
// that goes idle mid-call still needs one last sample to complete its
// release tail, which this still produces correctly.
func (v *Voice) Next() float64 {
	env := v.envelope.Next()
	mixed := v.mix(v) * env * v.intensity
	if v.filterType == abi.FilterNone {
		return mixed
	}
	return v.filter.Next(mixed)
}
