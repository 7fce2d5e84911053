package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

const testRate = beep.SampleRate(8000)

// drain streams s to completion and returns every sample, failing if it
// never ends.
func drain(t *testing.T, s beep.Streamer, max int) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 256)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
		if len(out) > max {
			t.Fatalf("streamer did not finish within %d samples", max)
		}
	}
}

func TestOscillatorLengthAndRange(t *testing.T) {
	for _, wave := range []Wave{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		osc := NewOscillator(440, 100*time.Millisecond, wave, testRate)
		samples := drain(t, osc, 10000)

		if len(samples) != testRate.N(100*time.Millisecond) {
			t.Errorf("wave %d: len = %d, expected %d", wave, len(samples), testRate.N(100*time.Millisecond))
		}
		for i, s := range samples {
			if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
				t.Fatalf("wave %d: sample %d = %v out of range or not mono", wave, i, s)
			}
		}
		if osc.Err() != nil {
			t.Errorf("wave %d: Err() = %v", wave, osc.Err())
		}
	}
}

func TestSquareWaveLevels(t *testing.T) {
	samples := drain(t, NewOscillator(100, 50*time.Millisecond, WaveSquare, testRate), 10000)
	for i, s := range samples {
		if s[0] != 1 && s[0] != -1 {
			t.Fatalf("sample %d = %v, expected ±1", i, s[0])
		}
	}
}

func TestEnvelopeShape(t *testing.T) {
	d := 100 * time.Millisecond
	env := NewEnvelope(NewOscillator(100, d, WaveSquare, testRate), d, 10*time.Millisecond, 10*time.Millisecond, testRate)
	samples := drain(t, env, 10000)

	if len(samples) != testRate.N(d) {
		t.Fatalf("len = %d, expected %d", len(samples), testRate.N(d))
	}
	if samples[0][0] != 0 {
		t.Errorf("first sample = %v, expected silence at attack start", samples[0][0])
	}
	mid := samples[len(samples)/2][0]
	if math.Abs(mid) != 1 {
		t.Errorf("sustain sample = %v, expected full amplitude", mid)
	}
	last := samples[len(samples)-1][0]
	if math.Abs(last) > 0.05 {
		t.Errorf("last sample = %v, expected near silence", last)
	}
}

func TestSweepEnds(t *testing.T) {
	samples := drain(t, NewSweep(800, 200, 50*time.Millisecond, testRate), 10000)
	if len(samples) != testRate.N(50*time.Millisecond) {
		t.Errorf("len = %d, expected %d", len(samples), testRate.N(50*time.Millisecond))
	}
}

func TestWithVolume(t *testing.T) {
	loud := drain(t, withVolume(NewOscillator(100, 10*time.Millisecond, WaveSquare, testRate), 0.5), 1000)
	for i, s := range loud {
		if math.Abs(math.Abs(s[0])-0.5) > 1e-9 {
			t.Fatalf("sample %d = %v, expected ±0.5", i, s[0])
		}
	}

	silent := drain(t, withVolume(NewOscillator(100, 10*time.Millisecond, WaveSquare, testRate), 0), 1000)
	for i, s := range silent {
		if s[0] != 0 {
			t.Fatalf("sample %d = %v, expected silence", i, s[0])
		}
	}
}
