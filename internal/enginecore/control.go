package enginecore

import "github.com/cbegin/barelymusician-go/internal/abi"

// Control is one clamped numeric parameter: a current value bounded by a
// fixed [min, max] range set at construction.
type Control struct {
	value float64
	min   float64
	max   float64
}

func NewControl(value, min, max float64) Control {
	c := Control{min: min, max: max}
	c.SetValue(value)
	return c
}

func (c Control) Value() float64 { return c.value }

// SetValue clamps value into [min, max] and reports whether it changed.
func (c *Control) SetValue(value float64) bool {
	switch {
	case value < c.min:
		value = c.min
	case value > c.max:
		value = c.max
	}
	if value == c.value {
		return false
	}
	c.value = value
	return true
}

// controlDefault describes one ControlType's default/min/max triple, in
// declaration order, building a dense ControlArray.
type controlDefault struct {
	value, min, max float64
}

var controlDefaults = [...]controlDefault{
	abi.ControlGain:               {0, -80, 24},
	abi.ControlVoiceCount:         {8, 0, 32},
	abi.ControlOscillatorShape:    {float64(abi.OscillatorNone), float64(abi.OscillatorNone), float64(abi.OscillatorNoise)},
	abi.ControlSamplePlaybackMode: {float64(abi.SamplePlaybackNone), float64(abi.SamplePlaybackNone), float64(abi.SamplePlaybackLoop)},
	abi.ControlAttack:             {0.05, 0, 60},
	abi.ControlDecay:              {0.1, 0, 60},
	abi.ControlSustain:            {1, 0, 1},
	abi.ControlRelease:            {0.1, 0, 60},
	abi.ControlPitchShift:         {0, -8, 8},
	abi.ControlRetrigger:          {0, 0, 1},
	abi.ControlFilterType:         {float64(abi.FilterNone), float64(abi.FilterNone), float64(abi.FilterHighPass)},
	abi.ControlFilterFrequency:    {20000, 0, 48000},
}

// NewControlArray builds the dense, default-valued control set for one
// instrument.
func NewControlArray() []Control {
	array := make([]Control, abi.ControlTypeCount())
	for t, d := range controlDefaults {
		array[t] = NewControl(d.value, d.min, d.max)
	}
	return array
}

var noteControlDefaults = [...]controlDefault{
	abi.NoteControlPitchShift: {0, -8, 8},
	abi.NoteControlGain:       {0, -80, 24},
}

func NewNoteControlArray() []Control {
	array := make([]Control, abi.NoteControlTypeCount())
	for t, d := range noteControlDefaults {
		array[t] = NewControl(d.value, d.min, d.max)
	}
	return array
}
