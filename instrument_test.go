package barelymusician

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetNoteOnIsNoOpWhileHeld(t *testing.T) {
	e := New(48000, 1)
	i := e.CreateInstrument()

	var onCount int
	i.SetNoteOnEvent(func(pitch, intensity float64) { onCount++ })

	i.SetNoteOn(1, 1.0)
	i.SetNoteOn(1, 0.2) // already held: should be a deduplicated no-op

	assert.Equal(t, 1, onCount)
	assert.True(t, i.IsNoteOn(1))
}

func TestSetAllNotesOffClearsEveryHeldPitch(t *testing.T) {
	e := New(48000, 1)
	i := e.CreateInstrument()

	i.SetNoteOn(1, 1.0)
	i.SetNoteOn(2, 1.0)
	i.SetNoteOn(3, 1.0)

	i.SetAllNotesOff()

	assert.False(t, i.IsNoteOn(1))
	assert.False(t, i.IsNoteOn(2))
	assert.False(t, i.IsNoteOn(3))
}

func TestNoteControlRoundTripsOnlyWhileHeld(t *testing.T) {
	e := New(48000, 1)
	i := e.CreateInstrument()

	_, ok := i.GetNoteControl(1, NoteControlPitchShift)
	assert.False(t, ok, "note control on a pitch that isn't on should report not found")

	i.SetNoteOn(1, 1.0)
	require.True(t, i.SetNoteControl(1, NoteControlPitchShift, 2.0))
	got, ok := i.GetNoteControl(1, NoteControlPitchShift)
	require.True(t, ok)
	assert.Equal(t, 2.0, got)

	i.SetNoteOff(1)
	_, ok = i.GetNoteControl(1, NoteControlPitchShift)
	assert.False(t, ok, "note control should be gone once the note is off")
}

func TestSetControlOnUnrecognizedTypeFails(t *testing.T) {
	e := New(48000, 1)
	i := e.CreateInstrument()
	assert.False(t, i.SetControl(ControlType(9999), 1))
	_, ok := i.GetControl(ControlType(9999))
	assert.False(t, ok)
}

// TestNoteOnWithoutSampleDataFallsBackToOscillatorOnly ensures the engine
// never panics when SetNoteOn fires before any SetSampleData call, and
// that with a sample playback mode set but no sample data, an oscillator
// shape still produces signal.
func TestNoteOnWithoutSampleDataFallsBackToOscillatorOnly(t *testing.T) {
	e := New(48000, 1)
	i := e.CreateInstrument()
	require.True(t, i.SetControl(ControlOscillatorShape, float64(OscillatorSine)))
	require.True(t, i.SetControl(ControlSamplePlaybackMode, float64(SamplePlaybackSustain)))
	require.True(t, i.SetControl(ControlAttack, 0))
	require.True(t, i.SetControl(ControlDecay, 0))
	require.True(t, i.SetControl(ControlSustain, 1))

	require.True(t, i.SetNoteOn(0, 1.0))
	out := make([]float64, 32)
	require.True(t, i.Process(out, 0))
	var nonZero bool
	for _, v := range out {
		if v != 0 {
			nonZero = true
		}
	}
	assert.True(t, nonZero, "oscillator should still produce signal with no sample data installed")
}

func TestProcessRejectsEmptyOutput(t *testing.T) {
	e := New(48000, 1)
	i := e.CreateInstrument()
	assert.False(t, i.Process(nil, 0))
}

func TestVoiceCountZeroSilencesNoteOn(t *testing.T) {
	e := New(48000, 1)
	i := e.CreateInstrument()
	require.True(t, i.SetControl(ControlVoiceCount, 0))
	require.True(t, i.SetControl(ControlOscillatorShape, float64(OscillatorSine)))

	require.True(t, i.SetNoteOn(0, 1.0))
	out := make([]float64, 16)
	require.True(t, i.Process(out, 0))
	for _, v := range out {
		assert.Zero(t, v)
	}
}
