package dsp

import "testing"

func TestFilterCoefficientRange(t *testing.T) {
	for _, tc := range []struct {
		name      string
		cutoffHz  float64
		wantZero  bool
		wantUnity bool
	}{
		{"zero cutoff passes nothing", 0, false, true},
		{"high cutoff approaches zero", 48000, false, false},
		{"negative cutoff invalid", -10, true, false},
	} {
		c := FilterCoefficient(48000, tc.cutoffHz)
		if tc.wantZero && c != 0 {
			t.Errorf("%s: got %f, want 0", tc.name, c)
		}
		if tc.wantUnity && c != 1 {
			t.Errorf("%s: got %f, want 1", tc.name, c)
		}
		if c < 0 || c > 1 {
			t.Errorf("%s: coefficient %f out of [0,1]", tc.name, c)
		}
	}
}

func TestOnePoleFilterLowPassSmooths(t *testing.T) {
	var f OnePoleFilter
	f.SetCoefficient(FilterCoefficient(48000, 200))
	var last float64
	for i := 0; i < 1000; i++ {
		input := 1.0
		if i%2 == 0 {
			input = -1.0
		}
		last = f.Next(input)
	}
	if last > 0.5 || last < -0.5 {
		t.Fatalf("expected low-pass to attenuate alternating input, got %f", last)
	}
}

// TestOnePoleFilterImpulseResponseMatchesClosedForm checks the documented
// lowpass impulse response (1-c), (1-c)c, (1-c)c^2, ... and that highpass
// is the complementary impulse - lowpass at every sample.
func TestOnePoleFilterImpulseResponseMatchesClosedForm(t *testing.T) {
	const c = 0.6
	var low, high OnePoleFilter
	low.SetCoefficient(c)
	high.SetCoefficient(c)
	high.SetHighPass(true)

	impulse := []float64{1, 0, 0, 0, 0}
	want := 1 - c
	for i, x := range impulse {
		l := low.Next(x)
		h := high.Next(x)
		if diff := l - want; diff > 1e-12 || diff < -1e-12 {
			t.Fatalf("lowpass sample %d: got %f, want %f", i, l, want)
		}
		if diff := (l + h) - x; diff > 1e-12 || diff < -1e-12 {
			t.Fatalf("sample %d: lowpass+highpass should reconstruct the impulse, got %f want %f", i, l+h, x)
		}
		want *= c
	}
}

func TestOnePoleFilterHighPassComplementsLowPass(t *testing.T) {
	var low, high OnePoleFilter
	c := FilterCoefficient(48000, 500)
	low.SetCoefficient(c)
	high.SetCoefficient(c)
	high.SetHighPass(true)
	for i := 0; i < 64; i++ {
		x := 0.73
		l := low.Next(x)
		h := high.Next(x)
		if got, want := l+h, x; got < want-1e-9 || got > want+1e-9 {
			t.Fatalf("lowpass+highpass should reconstruct input, got %f want %f", got, want)
		}
	}
}
