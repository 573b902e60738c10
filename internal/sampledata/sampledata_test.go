package sampledata

import (
	"testing"

	"github.com/cbegin/barelymusician-go/internal/dsp"
	"github.com/cbegin/barelymusician-go/internal/rng"
)

func TestEmptyDataSelectsNothing(t *testing.T) {
	var d *Data
	if !d.Empty() {
		t.Fatalf("nil Data should report empty")
	}
	if got := d.Select(0, rng.NewAudio(1)); got != nil {
		t.Fatalf("expected nil slice from empty data, got %+v", got)
	}
}

func TestSelectPicksNearestRootPitch(t *testing.T) {
	d := New([]dsp.Slice{
		{RootPitch: -2},
		{RootPitch: 0},
		{RootPitch: 3},
	})
	r := rng.NewAudio(1)
	if got := d.Select(-1.9, r); got.RootPitch != -2 {
		t.Fatalf("expected nearest root pitch -2, got %f", got.RootPitch)
	}
	if got := d.Select(1.6, r); got.RootPitch != 3 {
		t.Fatalf("expected nearest root pitch 3, got %f", got.RootPitch)
	}
	if got := d.Select(10, r); got.RootPitch != 3 {
		t.Fatalf("expected clamping to the highest root pitch 3, got %f", got.RootPitch)
	}
}

func TestSelectBreaksTiesUniformlyAtRandom(t *testing.T) {
	d := New([]dsp.Slice{
		{RootPitch: 0, FrameRate: 1},
		{RootPitch: 0, FrameRate: 2},
		{RootPitch: 0, FrameRate: 3},
	})
	r := rng.NewAudio(7)
	seen := make(map[int]int)
	for i := 0; i < 200; i++ {
		slice := d.Select(0, r)
		seen[slice.FrameRate]++
	}
	if len(seen) < 2 {
		t.Fatalf("expected tiebreak to vary across many draws, saw %d distinct outcomes", len(seen))
	}
}

func TestSelectIsOrderIndependent(t *testing.T) {
	forward := New([]dsp.Slice{{RootPitch: -1}, {RootPitch: 5}})
	backward := New([]dsp.Slice{{RootPitch: 5}, {RootPitch: -1}})
	r1, r2 := rng.NewAudio(1), rng.NewAudio(1)
	if forward.Select(1, r1).RootPitch != backward.Select(1, r2).RootPitch {
		t.Fatalf("selection should not depend on input slice order")
	}
}
