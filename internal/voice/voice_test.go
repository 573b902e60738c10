package voice

import (
	"testing"

	"github.com/cbegin/barelymusician-go/internal/abi"
	"github.com/cbegin/barelymusician-go/internal/dsp"
)

func newTestVoice() (*dsp.ADSR, Voice) {
	adsr := dsp.NewADSR(1.0 / 1000.0)
	adsr.SetAttack(0.001)
	adsr.SetDecay(0.001)
	adsr.SetSustain(1)
	adsr.SetRelease(0.001)
	return &adsr, New(&adsr, 1.0/1000.0, 1)
}

func TestVoiceIsSilentUntilStarted(t *testing.T) {
	_, v := newTestVoice()
	if v.IsActive() {
		t.Fatalf("fresh voice should be inactive")
	}
	if got := v.Next(); got != 0 {
		t.Fatalf("inactive voice should render silence, got %f", got)
	}
}

func TestVoiceOscillatorProducesSignalOnceStarted(t *testing.T) {
	_, v := newTestVoice()
	v.SetOscillatorShape(abi.OscillatorSine)
	v.SetOscillatorIncrement(0.01)
	v.Start(1.0)
	if !v.IsActive() {
		t.Fatalf("started voice should be active")
	}
	var nonZero bool
	for i := 0; i < 64; i++ {
		if v.Next() != 0 {
			nonZero = true
		}
	}
	if !nonZero {
		t.Fatalf("expected non-zero oscillator output")
	}
}

func TestVoiceStopReleasesEnvelope(t *testing.T) {
	_, v := newTestVoice()
	v.SetOscillatorShape(abi.OscillatorSine)
	v.SetOscillatorIncrement(0.05)
	v.Start(1.0)
	v.Stop()
	for i := 0; i < 10; i++ {
		v.Next()
	}
	if v.IsActive() {
		t.Fatalf("voice should go idle once the release stage completes")
	}
}

func TestVoiceOnceModeDefersStopUntilSampleFinishes(t *testing.T) {
	_, v := newTestVoice()
	v.SetSamplePlaybackMode(abi.SamplePlaybackOnce)
	v.SetSlice(&dsp.Slice{RootPitch: 0, FrameRate: 1000, Samples: []float64{1, 1, 1, 1}})
	v.SetSampleSpeed(1)
	v.Start(1.0)
	v.Stop() // should defer: sample still has frames left
	if !v.IsActive() {
		t.Fatalf("voice should remain active until the one-shot sample finishes")
	}
	for i := 0; i < 8; i++ {
		v.Next()
	}
	if v.IsActive() {
		t.Fatalf("voice should go idle once the deferred stop's release completes")
	}
}

func TestVoiceResetClearsState(t *testing.T) {
	_, v := newTestVoice()
	v.SetOscillatorShape(abi.OscillatorSine)
	v.SetOscillatorIncrement(0.05)
	v.Start(1.0)
	v.Reset()
	if v.IsActive() {
		t.Fatalf("reset voice should be inactive")
	}
}
