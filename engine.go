package barelymusician

import (
	"math"

	"github.com/cbegin/barelymusician-go/internal/rng"
)

// defaultReferenceFrequency is the frequency of pitch 0.0 (C4).
const defaultReferenceFrequency = 261.6255653005986

const defaultTempo = 120.0

// Engine owns every Instrument and Performer created from it, and is the
// sole authority on musical time: it converts beats to seconds and seconds
// to samples using its tempo and sample rate, and drives every performer's
// task lifecycle forward in Update.
type Engine struct {
	sampleRate         int
	referenceFrequency float64
	tempo              float64
	timestamp          float64

	instruments map[*Instrument]struct{}
	performers  map[*Performer]struct{}

	audioRng *rng.Audio
	mainRng  *rng.Main
}

// New constructs an Engine rendering at sampleRate frames per second, with
// the default reference frequency (C4) and tempo (120 bpm), matching the
// original's BarelyEngine defaults.
func New(sampleRate int, seed int64) *Engine {
	return &Engine{
		sampleRate:         sampleRate,
		referenceFrequency: defaultReferenceFrequency,
		tempo:              defaultTempo,
		instruments:        make(map[*Instrument]struct{}),
		performers:         make(map[*Performer]struct{}),
		audioRng:           rng.NewAudio(seed),
		mainRng:            rng.NewMain(seed),
	}
}

func (e *Engine) BeatsToSeconds(beats float64) float64 {
	if e.tempo <= 0 {
		return 0
	}
	return beats * (60.0 / e.tempo)
}

func (e *Engine) SecondsToBeats(seconds float64) float64 {
	return seconds * (e.tempo / 60.0)
}

func (e *Engine) SecondsToSamples(seconds float64) int64 {
	return int64(math.Floor(seconds * float64(e.sampleRate)))
}

// CreateInstrument allocates a new Instrument bound to this engine's sample
// rate, reference frequency, and audio-thread RNG.
func (e *Engine) CreateInstrument() *Instrument {
	i := newInstrument(e.sampleRate, e.referenceFrequency, e.audioRng)
	e.instruments[i] = struct{}{}
	return i
}

// DestroyInstrument releases an instrument, turning off every held note
// first so its NoteOffEvent callbacks fire.
func (e *Engine) DestroyInstrument(i *Instrument) {
	if _, ok := e.instruments[i]; !ok {
		return
	}
	i.close()
	delete(e.instruments, i)
}

// CreatePerformer allocates a new, stopped, non-looping Performer.
func (e *Engine) CreatePerformer() *Performer {
	p := newPerformer()
	e.performers[p] = struct{}{}
	return p
}

// DestroyPerformer stops and releases a performer, firing End on any tasks
// still active.
func (e *Engine) DestroyPerformer(p *Performer) {
	if _, ok := e.performers[p]; !ok {
		return
	}
	p.Stop()
	delete(e.performers, p)
}

func (e *Engine) GetReferenceFrequency() float64 { return e.referenceFrequency }

// SetReferenceFrequency updates the pitch-to-frequency reference (the
// frequency of pitch 0.0) and propagates it to every instrument.
func (e *Engine) SetReferenceFrequency(referenceFrequency float64) {
	if referenceFrequency < 0 || e.referenceFrequency == referenceFrequency {
		return
	}
	e.referenceFrequency = referenceFrequency
	for i := range e.instruments {
		i.setReferenceFrequency(referenceFrequency)
	}
}

func (e *Engine) GetTempo() float64 { return e.tempo }

// SetTempo clamps tempo to a non-negative value. A tempo of zero freezes
// every performer's musical-time advancement in Update.
func (e *Engine) SetTempo(tempo float64) {
	if tempo < 0 {
		tempo = 0
	}
	e.tempo = tempo
}

func (e *Engine) GetTimestamp() float64 { return e.timestamp }

// GenerateRandomNumber returns a uniform value in [0, 1) from the main-thread
// RNG. Main-thread only: never call this from an Instrument's Process.
func (e *Engine) GenerateRandomNumber() float64 { return e.mainRng.Generate() }

// GenerateRandomNumberRange returns a uniform integer in [min, max) from the
// main-thread RNG.
func (e *Engine) GenerateRandomNumberRange(min, max int) int {
	return e.mainRng.GenerateRange(min, max)
}

// SetSeed reseeds the main RNG. The audio RNG is unaffected: its seeding is
// fixed at construction, since reseeding it while Process is running would
// break reproducibility of whatever is already mid-flight on the audio thread.
func (e *Engine) SetSeed(seed int64) { e.mainRng.SetSeed(seed) }

// Update advances the engine's timestamp to the given absolute time,
// driving every performer forward in beats by the smallest step that will
// not skip over any performer's next task or beat boundary, then firing
// ProcessAllTasksAtPosition on every performer that reached one.
//
// This mirrors BarelyEngine::Update's reentrant loop: a callback fired
// partway through the loop (e.g. a task ending another task, or a note-on
// callback creating a new task) can change what the next boundary is, so
// the loop always re-queries GetNextDuration after every advance.
//
// At tempo zero the timestamp jumps straight to the target and only the
// instruments' update samples move; performers neither advance nor fire
// callbacks.
func (e *Engine) Update(timestamp float64) {
	for e.timestamp < timestamp {
		if e.tempo <= 0 {
			e.timestamp = timestamp
			updateSample := e.SecondsToSamples(e.timestamp)
			for i := range e.instruments {
				i.update(updateSample)
			}
			return
		}
		remainingSeconds := timestamp - e.timestamp
		durationBeats := e.SecondsToBeats(remainingSeconds)

		for p := range e.performers {
			if next, ok := p.GetNextDuration(); ok && next < durationBeats {
				durationBeats = next
			}
		}

		durationSeconds := remainingSeconds
		if e.tempo > 0 {
			durationSeconds = e.BeatsToSeconds(durationBeats)
		}
		if durationSeconds < 0 {
			durationSeconds = 0
		}

		e.timestamp += durationSeconds
		updateSample := e.SecondsToSamples(e.timestamp)
		for i := range e.instruments {
			i.update(updateSample)
		}

		for p := range e.performers {
			p.Update(durationBeats)
		}
		for p := range e.performers {
			p.ProcessAllTasksAtPosition()
		}
	}
}
