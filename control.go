package barelymusician

import "github.com/cbegin/barelymusician-go/internal/abi"

// ControlType, NoteControlType and the enumerated value types below mirror
// the ordinal layout of BarelyMusician's C ABI: the numeric value of each
// constant is part of the contract and must never be reordered.
type ControlType = abi.ControlType

const (
	ControlGain               = abi.ControlGain
	ControlVoiceCount         = abi.ControlVoiceCount
	ControlOscillatorShape    = abi.ControlOscillatorShape
	ControlSamplePlaybackMode = abi.ControlSamplePlaybackMode
	ControlAttack             = abi.ControlAttack
	ControlDecay              = abi.ControlDecay
	ControlSustain            = abi.ControlSustain
	ControlRelease            = abi.ControlRelease
	ControlPitchShift         = abi.ControlPitchShift
	ControlRetrigger          = abi.ControlRetrigger
	ControlFilterType         = abi.ControlFilterType
	ControlFilterFrequency    = abi.ControlFilterFrequency
)

type NoteControlType = abi.NoteControlType

const (
	NoteControlPitchShift = abi.NoteControlPitchShift
	NoteControlGain       = abi.NoteControlGain
)

type OscillatorShape = abi.OscillatorShape

const (
	OscillatorNone   = abi.OscillatorNone
	OscillatorSine   = abi.OscillatorSine
	OscillatorSaw    = abi.OscillatorSaw
	OscillatorSquare = abi.OscillatorSquare
	OscillatorNoise  = abi.OscillatorNoise
)

type SamplePlaybackMode = abi.SamplePlaybackMode

const (
	SamplePlaybackNone    = abi.SamplePlaybackNone
	SamplePlaybackOnce    = abi.SamplePlaybackOnce
	SamplePlaybackSustain = abi.SamplePlaybackSustain
	SamplePlaybackLoop    = abi.SamplePlaybackLoop
)

type FilterType = abi.FilterType

const (
	FilterNone     = abi.FilterNone
	FilterLowPass  = abi.FilterLowPass
	FilterHighPass = abi.FilterHighPass
)

type TaskState = abi.TaskState

const (
	TaskBegin  = abi.TaskBegin
	TaskUpdate = abi.TaskUpdate
	TaskEnd    = abi.TaskEnd
)

// Slice is one mono sample played at unit speed at RootPitch.
type Slice struct {
	RootPitch float64
	FrameRate int
	Samples   []float64
}
