package dsp

// Slice is an immutable mono sample backed by its native frame rate and the
// pitch it plays at unit speed. Slices are never mutated after construction;
// SamplePlayer only reads from one.
type Slice struct {
	RootPitch float64
	FrameRate int
	Samples   []float64
}

func (s *Slice) Length() int {
	if s == nil {
		return 0
	}
	return len(s.Samples)
}

// SamplePlayer reads through a Slice at an arbitrary speed, looping or not.
type SamplePlayer struct {
	sampleInterval float64
	slice          *Slice
	speed          float64
	cursor         float64
	active         bool
}

func NewSamplePlayer(sampleInterval float64) SamplePlayer {
	return SamplePlayer{sampleInterval: sampleInterval, speed: 1}
}

func (p *SamplePlayer) IsActive() bool { return p.active && p.slice != nil }

func (p *SamplePlayer) Slice() *Slice { return p.slice }

func (p *SamplePlayer) SetSpeed(speed float64) { p.speed = speed }

func (p *SamplePlayer) Reset() { p.cursor = 0 }

// SetSlice installs a new slice and starts playback from the beginning. A
// nil slice disables sample playback without touching the oscillator.
func (p *SamplePlayer) SetSlice(slice *Slice) {
	p.slice = slice
	p.cursor = 0
	p.active = slice != nil && len(slice.Samples) > 0
}

// Next returns the current sample and advances the read cursor by
// speed * slice.frame_rate * sample_interval. loop controls wraparound
// behavior once the cursor reaches the slice length.
func (p *SamplePlayer) Next(loop bool) float64 {
	if !p.active || p.slice == nil {
		return 0
	}
	length := len(p.slice.Samples)
	sample := p.slice.Samples[int(p.cursor)]
	increment := p.speed * float64(p.slice.FrameRate) * p.sampleInterval
	p.cursor += increment
	if p.cursor >= float64(length) {
		if loop {
			for p.cursor >= float64(length) {
				p.cursor -= float64(length)
			}
		} else {
			p.active = false
		}
	}
	return sample
}
