// Package abi holds the enum surface shared by the controller and the
// processor. Ordinal values are part of the public contract (see the
// enum comment in barelymusician's control.go) and must never be reordered.
package abi

type ControlType int

const (
	ControlGain ControlType = iota
	ControlVoiceCount
	ControlOscillatorShape
	ControlSamplePlaybackMode
	ControlAttack
	ControlDecay
	ControlSustain
	ControlRelease
	ControlPitchShift
	ControlRetrigger
	ControlFilterType
	ControlFilterFrequency
	controlTypeCount
)

type NoteControlType int

const (
	NoteControlPitchShift NoteControlType = iota
	NoteControlGain
	noteControlTypeCount
)

type OscillatorShape int

const (
	OscillatorNone OscillatorShape = iota
	OscillatorSine
	OscillatorSaw
	OscillatorSquare
	OscillatorNoise
)

type SamplePlaybackMode int

const (
	SamplePlaybackNone SamplePlaybackMode = iota
	SamplePlaybackOnce
	SamplePlaybackSustain
	SamplePlaybackLoop
)

type FilterType int

const (
	FilterNone FilterType = iota
	FilterLowPass
	FilterHighPass
)

type TaskState int

const (
	TaskBegin TaskState = iota
	TaskUpdate
	TaskEnd
)

// ControlTypeCount is the number of ControlType ordinals, used to size a
// dense ControlArray.
func ControlTypeCount() int { return int(controlTypeCount) }

// NoteControlTypeCount is the number of NoteControlType ordinals.
func NoteControlTypeCount() int { return int(noteControlTypeCount) }
