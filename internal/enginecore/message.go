package enginecore

import (
	"github.com/cbegin/barelymusician-go/internal/abi"
	"github.com/cbegin/barelymusician-go/internal/sampledata"
)

type MessageType int

const (
	MessageControl MessageType = iota
	MessageNoteControl
	MessageNoteOn
	MessageNoteOff
	MessageReferenceFrequency
	MessageSampleData
)

// Message is a flat tagged union of every event the controller can publish
// to the processor. It is copied by value into the ring slot, so a Message
// never owns memory beyond the *sampledata.Data pointer it may carry (whose
// ownership transfers to the processor once dequeued).
type Message struct {
	Type            MessageType
	ControlType     abi.ControlType
	NoteControlType abi.NoteControlType
	Pitch           float64
	Value           float64
	Intensity       float64
	Frequency       float64
	SampleData      *sampledata.Data
}
