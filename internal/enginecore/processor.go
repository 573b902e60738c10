package enginecore

import (
	"math"

	"github.com/cbegin/barelymusician-go/internal/abi"
	"github.com/cbegin/barelymusician-go/internal/dsp"
	"github.com/cbegin/barelymusician-go/internal/rng"
	"github.com/cbegin/barelymusician-go/internal/sampledata"
	"github.com/cbegin/barelymusician-go/internal/voice"
)

const maxVoiceCount = 32

// frequencyRatioFromPitch converts a pitch delta in octaves to a frequency
// multiplier.
func frequencyRatioFromPitch(pitch float64) float64 { return math.Exp2(pitch) }

func frequencyFromPitch(pitch, referenceFrequency float64) float64 {
	return referenceFrequency * frequencyRatioFromPitch(pitch)
}

// voiceState pairs one Voice with the bookkeeping needed for stealing and
// for recomputing its oscillator/sample-player rates when pitch-affecting
// controls change.
type voiceState struct {
	voice      voice.Voice
	pitch      float64
	pitchShift float64
	rootPitch  float64
	timestamp  int
}

// Processor is the audio-thread half of an instrument: it owns the voice
// pool, gain ramp, and sample-data view, and is mutated exclusively by
// messages drained from the instrument's MessageQueue.
type Processor struct {
	voiceStates [maxVoiceCount]voiceState
	voiceCount  int

	adsr  dsp.ADSR
	gain  GainProcessor
	audio *rng.Audio

	sampleData *sampledata.Data

	shouldRetrigger bool

	referenceFrequency float64
	pitchShift         float64

	sampleRate        int
	sampleInterval    float64
	filterCoefficient float64

	filterType         abi.FilterType
	oscillatorShape    abi.OscillatorShape
	samplePlaybackMode abi.SamplePlaybackMode
}

func NewProcessor(sampleRate int, referenceFrequency float64, audioRng *rng.Audio) *Processor {
	p := &Processor{
		voiceCount:         8,
		adsr:               dsp.NewADSR(1.0 / float64(sampleRate)),
		gain:               NewGainProcessor(sampleRate),
		audio:              audioRng,
		referenceFrequency: referenceFrequency,
		sampleRate:         sampleRate,
		sampleInterval:     1.0 / float64(sampleRate),
	}
	for i := range p.voiceStates {
		p.voiceStates[i].voice = voice.New(&p.adsr, p.sampleInterval, uint16(0xACE1+i*97))
	}
	return p
}

// Process mixes every active voice's next len(output) samples additively
// into output, then applies the gain ramp. Called only on contiguous
// sub-ranges between message-queue boundaries; no control state changes
// mid-call.
func (p *Processor) Process(output []float64) {
	for i := range output {
		output[i] = 0
	}
	for i := 0; i < p.voiceCount; i++ {
		vs := &p.voiceStates[i]
		if !vs.voice.IsActive() {
			continue
		}
		for j := range output {
			output[j] += vs.voice.Next()
			if !vs.voice.IsActive() {
				break
			}
		}
	}
	p.gain.Process(output)
}

func (p *Processor) SetControl(t abi.ControlType, value float64) {
	switch t {
	case abi.ControlGain:
		// value arrives already converted to amplitude by the controller.
		p.gain.SetGain(value)
	case abi.ControlVoiceCount:
		newCount := int(value)
		for i := p.voiceCount; i < newCount; i++ {
			p.voiceStates[i].voice.Reset()
		}
		p.voiceCount = newCount
	case abi.ControlOscillatorShape:
		p.oscillatorShape = abi.OscillatorShape(value)
		p.refreshVoiceDispatch()
	case abi.ControlSamplePlaybackMode:
		p.samplePlaybackMode = abi.SamplePlaybackMode(value)
		p.refreshVoiceDispatch()
	case abi.ControlAttack:
		p.adsr.SetAttack(value)
	case abi.ControlDecay:
		p.adsr.SetDecay(value)
	case abi.ControlSustain:
		p.adsr.SetSustain(value)
	case abi.ControlRelease:
		p.adsr.SetRelease(value)
	case abi.ControlPitchShift:
		p.pitchShift = value
		for i := 0; i < p.voiceCount; i++ {
			vs := &p.voiceStates[i]
			if vs.voice.IsActive() {
				p.retune(vs)
			}
		}
	case abi.ControlRetrigger:
		p.shouldRetrigger = value != 0
	case abi.ControlFilterType:
		p.filterType = abi.FilterType(value)
		p.refreshVoiceDispatch()
	case abi.ControlFilterFrequency:
		// value arrives already converted to a one-pole coefficient.
		p.filterCoefficient = value
		for i := range p.voiceStates {
			p.voiceStates[i].voice.SetFilterCoefficient(p.filterCoefficient)
		}
	}
}

func (p *Processor) refreshVoiceDispatch() {
	for i := range p.voiceStates {
		v := &p.voiceStates[i].voice
		v.SetOscillatorShape(p.oscillatorShape)
		v.SetSamplePlaybackMode(p.samplePlaybackMode)
		v.SetFilterType(p.filterType)
	}
}

// retune recomputes a voice's oscillator increment and sample-player speed
// from its pitch plus both instrument- and note-level pitch shift.
func (p *Processor) retune(vs *voiceState) {
	shiftedPitch := vs.pitch + p.pitchShift + vs.pitchShift
	vs.voice.SetOscillatorIncrement(frequencyFromPitch(shiftedPitch, p.referenceFrequency) * p.sampleInterval)
	vs.voice.SetSampleSpeed(frequencyRatioFromPitch(shiftedPitch - vs.rootPitch))
}

func (p *Processor) SetNoteControl(pitch float64, t abi.NoteControlType, value float64) {
	if t != abi.NoteControlPitchShift {
		return
	}
	for i := 0; i < p.voiceCount; i++ {
		vs := &p.voiceStates[i]
		if vs.pitch == pitch && vs.voice.IsActive() {
			vs.pitchShift = value
			p.retune(vs)
			return
		}
	}
}

func (p *Processor) SetNoteOff(pitch float64) {
	for i := 0; i < p.voiceCount; i++ {
		vs := &p.voiceStates[i]
		if vs.pitch == pitch && vs.voice.IsActive() {
			vs.voice.Stop()
		}
	}
}

func (p *Processor) SetNoteOn(pitch, intensity float64) {
	if p.voiceCount == 0 {
		return
	}
	vs := p.acquireVoice(pitch)
	vs.pitch = pitch
	vs.pitchShift = 0
	vs.timestamp = 0

	shiftedPitch := pitch + p.pitchShift
	vs.voice.SetOscillatorIncrement(frequencyFromPitch(shiftedPitch, p.referenceFrequency) * p.sampleInterval)
	if slice := p.sampleData.Select(pitch, p.audio); slice != nil {
		vs.rootPitch = slice.RootPitch
		vs.voice.SetSlice(slice)
		vs.voice.SetSampleSpeed(frequencyRatioFromPitch(shiftedPitch - slice.RootPitch))
	}
	vs.voice.Start(intensity)
}

func (p *Processor) SetReferenceFrequency(referenceFrequency float64) {
	p.referenceFrequency = referenceFrequency
	for i := 0; i < p.voiceCount; i++ {
		vs := &p.voiceStates[i]
		if vs.voice.IsActive() {
			p.retune(vs)
		}
	}
}

func (p *Processor) SetSampleData(data *sampledata.Data) {
	p.sampleData = data
	for i := 0; i < p.voiceCount; i++ {
		vs := &p.voiceStates[i]
		if !vs.voice.IsActive() {
			vs.voice.SetSlice(nil)
			continue
		}
		if slice := p.sampleData.Select(vs.pitch, p.audio); slice != nil {
			vs.rootPitch = slice.RootPitch
			vs.voice.SetSlice(slice)
			vs.voice.SetSampleSpeed(frequencyRatioFromPitch(vs.pitch + p.pitchShift - slice.RootPitch))
		}
	}
}

// acquireVoice implements retrigger / free-voice / steal-oldest-active
// selection. Exactly one of those three outcomes is returned.
func (p *Processor) acquireVoice(pitch float64) *voiceState {
	voiceIndex := -1
	oldestIndex := 0
	for i := 0; i < p.voiceCount; i++ {
		vs := &p.voiceStates[i]
		if p.shouldRetrigger && vs.pitch == pitch {
			voiceIndex = i
		}
		if vs.voice.IsActive() {
			vs.timestamp++
			if vs.timestamp > p.voiceStates[oldestIndex].timestamp {
				oldestIndex = i
			}
		} else if voiceIndex == -1 {
			voiceIndex = i
		}
	}
	if voiceIndex == -1 {
		voiceIndex = oldestIndex
	}
	return &p.voiceStates[voiceIndex]
}
