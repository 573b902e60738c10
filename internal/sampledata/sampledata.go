// Package sampledata implements the immutable, sortable sample-slice
// collection and its nearest-root-pitch selection rule.
package sampledata

import (
	"sort"

	"github.com/cbegin/barelymusician-go/internal/dsp"
	"github.com/cbegin/barelymusician-go/internal/rng"
)

// group is one distinct root pitch and the slice indices that share it, in
// the caller's original insertion order.
type group struct {
	rootPitch float64
	indices   []int
}

// Data is an immutable view over a set of sample slices, grouped by root
// pitch for nearest-pitch selection. The zero value is the empty set
// (every Select call returns nil, i.e. oscillator-only playback).
type Data struct {
	slices []dsp.Slice
	groups []group
}

// New builds a Data from slices in whatever order the caller provides; the
// caller's order is preserved for reporting but selection is order
// independent (slices are regrouped and sorted by root pitch internally).
func New(slices []dsp.Slice) *Data {
	d := &Data{slices: slices}
	byPitch := make(map[float64][]int)
	var pitches []float64
	for i, s := range slices {
		if _, ok := byPitch[s.RootPitch]; !ok {
			pitches = append(pitches, s.RootPitch)
		}
		byPitch[s.RootPitch] = append(byPitch[s.RootPitch], i)
	}
	sort.Float64s(pitches)
	d.groups = make([]group, len(pitches))
	for i, p := range pitches {
		d.groups[i] = group{rootPitch: p, indices: byPitch[p]}
	}
	return d
}

func (d *Data) Empty() bool { return d == nil || len(d.groups) == 0 }

// Select finds the slice whose root pitch is nearest to pitch, breaking
// ties uniformly at random (via rng) among slices sharing the winning root
// pitch. Returns nil if there are no slices.
func (d *Data) Select(pitch float64, r *rng.Audio) *dsp.Slice {
	if d.Empty() {
		return nil
	}
	// Binary search for the first group whose root pitch is >= pitch.
	i := sort.Search(len(d.groups), func(i int) bool { return d.groups[i].rootPitch >= pitch })
	var best group
	switch {
	case i == 0:
		best = d.groups[0]
	case i == len(d.groups):
		best = d.groups[len(d.groups)-1]
	default:
		lower, upper := d.groups[i-1], d.groups[i]
		if pitch-lower.rootPitch <= upper.rootPitch-pitch {
			best = lower
		} else {
			best = upper
		}
	}
	idx := best.indices[0]
	if len(best.indices) > 1 {
		idx = best.indices[r.GenerateRange(0, len(best.indices))]
	}
	return &d.slices[idx]
}
