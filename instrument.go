package barelymusician

import (
	"github.com/cbegin/barelymusician-go/internal/abi"
	"github.com/cbegin/barelymusician-go/internal/dsp"
	"github.com/cbegin/barelymusician-go/internal/enginecore"
	"github.com/cbegin/barelymusician-go/internal/rng"
	"github.com/cbegin/barelymusician-go/internal/sampledata"
)

// NoteOnCallback fires synchronously on the main thread when a note is
// newly turned on (not on a deduplicated repeat SetNoteOn for a held pitch).
type NoteOnCallback func(pitch, intensity float64)

// NoteOffCallback fires synchronously on the main thread when a note is
// turned off.
type NoteOffCallback func(pitch float64)

// Instrument is a two-sided synthesizer: the Controller methods below run
// on the engine's main thread and only ever touch the controller's own
// state and the MessageQueue; Process runs on the audio thread and only
// ever touches the Processor's own state. The two sides never share memory
// except through the queue.
type Instrument struct {
	sampleRate int

	controls     []enginecore.Control
	noteControls map[float64][]enginecore.Control

	noteOnCallback  NoteOnCallback
	noteOffCallback NoteOffCallback

	updateSample int64

	queue     enginecore.MessageQueue
	processor *enginecore.Processor
}

func newInstrument(sampleRate int, referenceFrequency float64, audioRng *rng.Audio) *Instrument {
	return &Instrument{
		sampleRate:   sampleRate,
		controls:     enginecore.NewControlArray(),
		noteControls: make(map[float64][]enginecore.Control),
		processor:    enginecore.NewProcessor(sampleRate, referenceFrequency, audioRng),
	}
}

// GetControl returns a control's current clamped value, or ok=false if type
// is not a recognized ControlType.
func (i *Instrument) GetControl(t ControlType) (value float64, ok bool) {
	if int(t) < 0 || int(t) >= len(i.controls) {
		return 0, false
	}
	return i.controls[t].Value(), true
}

// SetControl clamps value and, if it changed, converts it to the
// processor's units (decibels to amplitude for Gain, cutoff frequency to a
// one-pole coefficient for FilterFrequency) before queueing it. Returns
// false only for an unrecognized ControlType or a full queue.
func (i *Instrument) SetControl(t ControlType, value float64) bool {
	if int(t) < 0 || int(t) >= len(i.controls) {
		return false
	}
	if !i.controls[t].SetValue(value) {
		return true
	}
	processed := i.controls[t].Value()
	switch t {
	case ControlGain:
		processed = enginecore.AmplitudeFromDecibels(processed)
	case ControlFilterFrequency:
		processed = dsp.FilterCoefficient(i.sampleRate, processed)
	}
	return i.queue.Add(i.updateSample, enginecore.Message{
		Type:        enginecore.MessageControl,
		ControlType: t,
		Value:       processed,
	})
}

// IsNoteOn reports whether pitch is currently held down.
func (i *Instrument) IsNoteOn(pitch float64) bool {
	_, ok := i.noteControls[pitch]
	return ok
}

// GetNoteControl returns a per-note control's value, or ok=false if the
// pitch is not on or the type is unrecognized.
func (i *Instrument) GetNoteControl(pitch float64, t NoteControlType) (value float64, ok bool) {
	nc, held := i.noteControls[pitch]
	if !held || int(t) < 0 || int(t) >= len(nc) {
		return 0, false
	}
	return nc[t].Value(), true
}

// SetNoteControl updates a per-note control. A pitch that is not on is a
// silent no-op success.
func (i *Instrument) SetNoteControl(pitch float64, t NoteControlType, value float64) bool {
	nc, held := i.noteControls[pitch]
	if !held {
		return true
	}
	if int(t) < 0 || int(t) >= len(nc) {
		return false
	}
	if !nc[t].SetValue(value) {
		return true
	}
	return i.queue.Add(i.updateSample, enginecore.Message{
		Type:            enginecore.MessageNoteControl,
		Pitch:           pitch,
		NoteControlType: t,
		Value:           nc[t].Value(),
	})
}

// SetNoteOn turns pitch on at the given linear intensity (0..1). A pitch
// that is already on is a no-op: retriggering a held note is the
// processor's Retrigger control's job, reached via an explicit
// SetNoteOff/SetNoteOn pair.
func (i *Instrument) SetNoteOn(pitch, intensity float64) bool {
	if _, held := i.noteControls[pitch]; held {
		return true
	}
	nc := enginecore.NewNoteControlArray()
	i.noteControls[pitch] = nc
	if i.noteOnCallback != nil {
		i.noteOnCallback(pitch, intensity)
	}
	ok := i.queue.Add(i.updateSample, enginecore.Message{
		Type:      enginecore.MessageNoteOn,
		Pitch:     pitch,
		Intensity: intensity,
	})
	for t, c := range nc {
		if !i.queue.Add(i.updateSample, enginecore.Message{
			Type:            enginecore.MessageNoteControl,
			Pitch:           pitch,
			NoteControlType: abi.NoteControlType(t),
			Value:           c.Value(),
		}) {
			ok = false
		}
	}
	return ok
}

// SetNoteOff turns pitch off. A pitch that is not on is a silent no-op
// success.
func (i *Instrument) SetNoteOff(pitch float64) bool {
	if _, held := i.noteControls[pitch]; !held {
		return true
	}
	delete(i.noteControls, pitch)
	if i.noteOffCallback != nil {
		i.noteOffCallback(pitch)
	}
	return i.queue.Add(i.updateSample, enginecore.Message{Type: enginecore.MessageNoteOff, Pitch: pitch})
}

// SetAllNotesOff turns every currently-held note off.
func (i *Instrument) SetAllNotesOff() {
	for pitch := range i.noteControls {
		i.SetNoteOff(pitch)
	}
}

func (i *Instrument) SetNoteOnEvent(callback NoteOnCallback)   { i.noteOnCallback = callback }
func (i *Instrument) SetNoteOffEvent(callback NoteOffCallback) { i.noteOffCallback = callback }

// SetSampleData installs a new immutable sample set. The previous set
// remains live on the audio thread until the processor dequeues this
// message.
func (i *Instrument) SetSampleData(slices []Slice) bool {
	converted := make([]dsp.Slice, len(slices))
	for idx, s := range slices {
		converted[idx] = dsp.Slice{RootPitch: s.RootPitch, FrameRate: s.FrameRate, Samples: s.Samples}
	}
	return i.queue.Add(i.updateSample, enginecore.Message{
		Type:       enginecore.MessageSampleData,
		SampleData: sampledata.New(converted),
	})
}

// update records the engine's current sample position. Only the controller
// side is touched; no audio-thread work happens here.
func (i *Instrument) update(sample int64) { i.updateSample = sample }

func (i *Instrument) setReferenceFrequency(frequency float64) {
	i.queue.Add(i.updateSample, enginecore.Message{
		Type:      enginecore.MessageReferenceFrequency,
		Frequency: frequency,
	})
}

// Process renders len(output) samples starting at processSample, draining
// every queued message whose sample index falls within the range and
// splitting processing at each boundary so control changes land on the
// exact sample they were scheduled for.
func (i *Instrument) Process(output []float64, processSample int64) bool {
	if len(output) == 0 {
		return false
	}
	endSample := processSample + int64(len(output))
	var offset int64
	for {
		sample, msg, ok := i.queue.GetNext(endSample)
		if !ok {
			break
		}
		rel := sample - processSample
		if rel < 0 {
			rel = 0
		}
		if rel > offset {
			i.processor.Process(output[offset:rel])
			offset = rel
		}
		i.applyMessage(msg)
	}
	if offset < int64(len(output)) {
		i.processor.Process(output[offset:])
	}
	return true
}

func (i *Instrument) applyMessage(msg enginecore.Message) {
	switch msg.Type {
	case enginecore.MessageControl:
		i.processor.SetControl(msg.ControlType, msg.Value)
	case enginecore.MessageNoteControl:
		i.processor.SetNoteControl(msg.Pitch, msg.NoteControlType, msg.Value)
	case enginecore.MessageNoteOn:
		i.processor.SetNoteOn(msg.Pitch, msg.Intensity)
	case enginecore.MessageNoteOff:
		i.processor.SetNoteOff(msg.Pitch)
	case enginecore.MessageReferenceFrequency:
		i.processor.SetReferenceFrequency(msg.Frequency)
	case enginecore.MessageSampleData:
		i.processor.SetSampleData(msg.SampleData)
	}
}

// close emits SetAllNotesOff, matching the controller's destruction
// contract: every held note is released and its callback fired before the
// instrument disappears from the engine.
func (i *Instrument) close() { i.SetAllNotesOff() }
