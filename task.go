package barelymusician

// TaskCallback fires as a task's position enters (Begin), moves within
// (Update), or leaves (End) its [position, position+duration) interval.
type TaskCallback func(state TaskState)

// Task is a scheduled interval on a Performer. It is owned by that
// Performer: destroying the Performer destroys every task it holds, firing
// End for any that are active.
type Task struct {
	performer *Performer
	position  float64
	duration  float64
	callback  TaskCallback
	isActive  bool
	seq       int
}

func (t *Task) Position() float64 { return t.position }
func (t *Task) Duration() float64 { return t.duration }
func (t *Task) IsActive() bool    { return t.isActive }
func (t *Task) endPosition() float64 { return t.position + t.duration }

// isInside reports whether pos falls within [position, position+duration).
func (t *Task) isInside(pos float64) bool {
	return t.position <= pos && pos < t.endPosition()
}

func (t *Task) process(state TaskState) {
	if t.callback != nil {
		t.callback(state)
	}
}

// SetPosition moves the task, reindexing it in whichever of the performer's
// two task sets currently holds it. If the task is active and the new
// interval no longer contains the performer's position, End fires and the
// task becomes inactive.
func (t *Task) SetPosition(position float64) {
	if position == t.position {
		return
	}
	old := t.position
	t.position = position
	t.performer.retaskPosition(t, old)
}

// SetDuration resizes the task. If the task is active and the new interval
// no longer contains the performer's position, End fires and the task
// becomes inactive.
func (t *Task) SetDuration(duration float64) {
	if duration <= 0 || duration == t.duration {
		return
	}
	old := t.duration
	t.duration = duration
	t.performer.retaskDuration(t, old)
}

// SetProcessCallback replaces the callback, firing End on the old one and
// Begin on the new one if the task is currently active.
func (t *Task) SetProcessCallback(callback TaskCallback) {
	if t.isActive {
		t.process(TaskEnd)
	}
	t.callback = callback
	if t.isActive {
		t.process(TaskBegin)
	}
}
