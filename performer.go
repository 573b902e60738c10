package barelymusician

import "math"

// BeatCallback fires once per integer beat while a Performer is playing.
type BeatCallback func()

// Performer is the musical-time clock: a position in beats that advances
// under Update, driving a beat callback and the begin/update/end lifecycle
// of its Tasks. Tasks are partitioned into two ordered sets: inactive ones
// keyed by position, active ones keyed by end position, so the next event
// (the next task boundary or beat) is always a cheap lookup away.
type Performer struct {
	isPlaying bool
	isLooping bool

	loopBeginPosition float64
	loopLength        float64
	position          float64

	lastBeatPosition    *float64
	hasLastBeatPosition bool
	beatCallback        BeatCallback

	inactive taskSet
	active   taskSet
	nextSeq  int
}

func newPerformer() *Performer {
	p := &Performer{loopLength: 1.0}
	p.inactive = newTaskSet(func(t *Task) float64 { return t.position })
	p.active = newTaskSet(func(t *Task) float64 { return t.endPosition() })
	return p
}

func (p *Performer) IsPlaying() bool { return p.isPlaying }
func (p *Performer) IsLooping() bool { return p.isLooping }
func (p *Performer) Position() float64 { return p.position }
func (p *Performer) LoopBeginPosition() float64 { return p.loopBeginPosition }
func (p *Performer) LoopLength() float64 { return p.loopLength }

func (p *Performer) loopEndPosition() float64 { return p.loopBeginPosition + p.loopLength }

func (p *Performer) SetBeatCallback(callback BeatCallback) { p.beatCallback = callback }

// CreateTask schedules a new task at position with the given duration,
// starting inactive until the performer's position enters its interval.
// duration must be positive; CreateTask is a no-op (returns nil) otherwise.
func (p *Performer) CreateTask(position, duration float64, callback TaskCallback) *Task {
	if duration <= 0 {
		return nil
	}
	t := &Task{performer: p, position: position, duration: duration, callback: callback, seq: p.nextSeq}
	p.nextSeq++
	p.inactive.insert(t)
	return t
}

// DestroyTask removes task from the performer. An active task fires End.
func (p *Performer) DestroyTask(t *Task) {
	if t.isActive {
		p.active.remove(t)
		t.isActive = false
		t.process(TaskEnd)
	} else {
		p.inactive.remove(t)
	}
}

// nextInactiveTask finds the next inactive task that will become relevant,
// accounting for loop wraparound and for out-of-position-order entries
// whose interval already spans the current position.
func (p *Performer) nextInactiveTask() (*Task, bool) {
	if !p.isPlaying {
		return nil, false
	}
	nextIdx := p.inactive.lowerBound(p.position)
	for idx := 0; idx < nextIdx; idx++ {
		if t := p.inactive.at(idx); t.endPosition() > p.position {
			return t, true
		}
	}
	if p.isLooping && (nextIdx == p.inactive.len() || p.inactive.at(nextIdx).position >= p.loopEndPosition()) {
		nextIdx = p.inactive.lowerBound(p.loopBeginPosition)
	}
	if nextIdx < p.inactive.len() {
		return p.inactive.at(nextIdx), true
	}
	return nil, false
}

// GetNextDuration returns the smallest positive delta until the next event
// (an inactive task entering its interval, an active task leaving its
// interval, or the next beat), or ok=false if nothing is scheduled. It
// returns 0 when an inactive task's interval already contains the current
// position, i.e. the task is due to begin now.
func (p *Performer) GetNextDuration() (duration float64, ok bool) {
	if !p.isPlaying {
		return 0, false
	}
	loopEnd := p.loopEndPosition()
	var next float64
	have := false

	if t, found := p.nextInactiveTask(); found {
		switch {
		case t.isInside(p.position):
			return 0, true
		case t.position < p.position:
			next, have = t.position+p.loopLength, true
		case !p.isLooping || t.position < loopEnd:
			next, have = t.position, true
		}
	}

	if p.active.len() > 0 {
		first, _ := p.active.first()
		candidate := first.endPosition()
		if p.isLooping && loopEnd < candidate {
			candidate = loopEnd
		}
		if !have || candidate < next {
			next, have = candidate, true
		}
	}

	if p.beatCallback != nil {
		var nextBeat float64
		if p.hasLastBeatPosition && *p.lastBeatPosition == p.position {
			nextBeat = math.Ceil(p.position + 1.0)
		} else {
			nextBeat = math.Ceil(p.position)
		}
		beatValid := true
		if p.isLooping && nextBeat > loopEnd {
			firstBeatOffset := math.Ceil(p.loopBeginPosition) - p.loopBeginPosition
			if p.loopLength > firstBeatOffset {
				nextBeat = firstBeatOffset + loopEnd
			} else {
				beatValid = false
			}
		}
		if beatValid && (!have || nextBeat < next) {
			next, have = nextBeat, true
		}
	}

	if have {
		return next - p.position, true
	}
	return 0, false
}

// ProcessAllTasksAtPosition fires the beat callback if the current position
// is an integer beat not already processed, then activates every inactive
// task whose interval now contains the position. Active tasks are
// deactivated only when the position leaves their interval, in SetPosition.
func (p *Performer) ProcessAllTasksAtPosition() {
	if !p.isPlaying {
		return
	}
	if (!p.hasLastBeatPosition || *p.lastBeatPosition != p.position) && math.Ceil(p.position) == p.position {
		bp := p.position
		p.lastBeatPosition, p.hasLastBeatPosition = &bp, true
		if p.beatCallback != nil {
			p.beatCallback()
		}
	}
	for {
		t, ok := p.nextInactiveTask()
		if !ok || !t.isInside(p.position) {
			break
		}
		p.setTaskActive(t, true)
	}
}

// setTaskActive moves t between the inactive and active sets and fires the
// matching Begin/End callback.
func (p *Performer) setTaskActive(t *Task, active bool) {
	if active {
		p.inactive.remove(t)
		t.isActive = true
		p.active.insert(t)
		t.process(TaskBegin)
	} else {
		p.active.remove(t)
		t.isActive = false
		p.inactive.insert(t)
		t.process(TaskEnd)
	}
}

func (p *Performer) loopAround(position float64) float64 {
	if p.loopLength <= 0 {
		return p.loopBeginPosition
	}
	return p.loopBeginPosition + math.Mod(position-p.loopBeginPosition, p.loopLength)
}

func (p *Performer) SetLoopBeginPosition(loopBeginPosition float64) {
	if p.loopBeginPosition == loopBeginPosition {
		return
	}
	p.loopBeginPosition = loopBeginPosition
	if p.isLooping && p.position >= p.loopEndPosition() {
		p.SetPosition(p.loopAround(p.position))
	}
}

func (p *Performer) SetLoopLength(loopLength float64) {
	if loopLength < 0 {
		loopLength = 0
	}
	if p.loopLength == loopLength {
		return
	}
	p.loopLength = loopLength
	if p.isLooping && p.position >= p.loopEndPosition() {
		p.SetPosition(p.loopAround(p.position))
	}
}

func (p *Performer) SetLooping(isLooping bool) {
	if p.isLooping == isLooping {
		return
	}
	p.isLooping = isLooping
	if p.isLooping && p.position >= p.loopEndPosition() {
		p.SetPosition(p.loopAround(p.position))
	}
}

// SetPosition moves the performer directly to position, firing Update on
// every active task still inside its interval and End on every one that
// isn't, or wrapping and deactivating every active task if the new position
// has looped past the loop end.
func (p *Performer) SetPosition(position float64) {
	p.lastBeatPosition, p.hasLastBeatPosition = nil, false
	if p.position == position {
		return
	}
	if p.isLooping && position >= p.loopEndPosition() {
		p.position = p.loopAround(position)
		for p.active.len() > 0 {
			first, _ := p.active.first()
			p.setTaskActive(first, false)
		}
		return
	}
	p.position = position
	for i := 0; i < p.active.len(); {
		t := p.active.at(i)
		if !t.isInside(p.position) {
			p.setTaskActive(t, false)
			// setTaskActive mutated the slice in place; re-scan from i.
			continue
		}
		t.process(TaskUpdate)
		i++
	}
}

// retaskDuration is called by Task.SetDuration after the task's duration
// field has already been updated.
func (p *Performer) retaskDuration(t *Task, oldDuration float64) {
	if !t.isActive {
		return
	}
	oldEnd := t.position + oldDuration
	if t.isInside(p.position) {
		p.active.remove(t)
		// Re-key: endPosition has already changed; remove finds the stale
		// slot by identity and insert places the task under the new key.
		_ = oldEnd
		p.active.insert(t)
	} else {
		p.setTaskActive(t, false)
	}
}

// retaskPosition is called by Task.SetPosition after the task's position
// field has already been updated.
func (p *Performer) retaskPosition(t *Task, oldPosition float64) {
	if t.isActive {
		if t.isInside(p.position) {
			p.active.remove(t)
			p.active.insert(t)
		} else {
			p.setTaskActive(t, false)
		}
		return
	}
	p.inactive.remove(t)
	p.inactive.insert(t)
}

// Start begins advancing the performer. If the current position already
// sits on an integer beat, that beat is marked as already processed so the
// first Update call doesn't fire a spurious beat callback for simply being
// at rest there; only beats actually crossed while playing fire.
func (p *Performer) Start() {
	p.isPlaying = true
	if math.Ceil(p.position) == p.position {
		bp := p.position
		p.lastBeatPosition, p.hasLastBeatPosition = &bp, true
	} else {
		p.lastBeatPosition, p.hasLastBeatPosition = nil, false
	}
}

// Stop halts the performer, deactivating (firing End on) every active task.
func (p *Performer) Stop() {
	p.isPlaying = false
	p.lastBeatPosition, p.hasLastBeatPosition = nil, false
	for p.active.len() > 0 {
		first, _ := p.active.first()
		p.setTaskActive(first, false)
	}
}

// Update advances the performer's position by duration. The engine is
// responsible for ensuring duration never exceeds GetNextDuration.
func (p *Performer) Update(duration float64) {
	if !p.isPlaying {
		return
	}
	p.SetPosition(p.position + duration)
}
