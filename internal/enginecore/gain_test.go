package enginecore

import (
	"math"
	"testing"
)

func TestAmplitudeFromDecibelsFloorsAtMinus80(t *testing.T) {
	if got := AmplitudeFromDecibels(-80); got != 0 {
		t.Fatalf("expected -80dB to floor to 0, got %f", got)
	}
	if got := AmplitudeFromDecibels(-100); got != 0 {
		t.Fatalf("expected below-floor dB to floor to 0, got %f", got)
	}
	if got := AmplitudeFromDecibels(0); math.Abs(got-1) > 1e-9 {
		t.Fatalf("expected 0dB to be unity amplitude, got %f", got)
	}
	if got := AmplitudeFromDecibels(20); math.Abs(got-10) > 1e-9 {
		t.Fatalf("expected 20dB to be 10x amplitude, got %f", got)
	}
}

func TestGainProcessorElidesMultiplyNearUnity(t *testing.T) {
	g := NewGainProcessor(48000)
	buf := []float64{0.5, 0.5, 0.5}
	g.Process(buf)
	for _, v := range buf {
		if v != 0.5 {
			t.Fatalf("unity gain should pass audio through unchanged, got %f", v)
		}
	}
}

func TestGainProcessorSilencesNearZero(t *testing.T) {
	g := NewGainProcessor(48000)
	g.SetGain(0)
	buf := make([]float64, 4000) // long enough to run past the ramp
	for i := range buf {
		buf[i] = 1
	}
	g.Process(buf)
	if buf[len(buf)-1] != 0 {
		t.Fatalf("expected output to reach silence after the ramp, got %f", buf[len(buf)-1])
	}
}

func TestGainProcessorRampsGraduallyThenHolds(t *testing.T) {
	g := NewGainProcessor(1000) // small rate so the ramp fits in a small buffer
	g.SetGain(2.0)
	buf := make([]float64, 200)
	for i := range buf {
		buf[i] = 1
	}
	g.Process(buf)
	if buf[0] >= buf[len(buf)-1] {
		t.Fatalf("expected gain to increase monotonically across the ramp, first=%f last=%f", buf[0], buf[len(buf)-1])
	}
	if math.Abs(buf[len(buf)-1]-2.0) > 1e-9 {
		t.Fatalf("expected output to settle at target gain 2.0, got %f", buf[len(buf)-1])
	}
}
