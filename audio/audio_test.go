package audio

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// TestSweepRange verifies every wave stays within [-1, 1] and drains at its duration
func TestSweepRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	duration := 20 * time.Millisecond

	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		s := NewSweep(220, 880, duration, wave, rate)
		samples := make([][2]float64, 100)
		total := 0
		for {
			n, ok := s.Stream(samples)
			for i := 0; i < n; i++ {
				if samples[i][0] < -1 || samples[i][0] > 1 || samples[i][0] != samples[i][1] {
					t.Fatalf("Wave %d sample %d out of range or unbalanced: %v", wave, i, samples[i])
				}
			}
			total += n
			if !ok {
				break
			}
		}
		if total != rate.N(duration) {
			t.Errorf("Wave %d: expected %d samples, got %d", wave, rate.N(duration), total)
		}
		if s.Err() != nil {
			t.Errorf("Expected no error, got %v", s.Err())
		}
	}
}

func TestSweepSquareStartsHigh(t *testing.T) {
	s := NewSweep(100, 100, 10*time.Millisecond, WaveSquare, beep.SampleRate(44100))
	samples := make([][2]float64, 10)
	s.Stream(samples)
	if samples[0][0] != 1 {
		t.Errorf("Expected first square sample 1, got %f", samples[0][0])
	}
}

// TestEnvelopeShape verifies silence at the start, full gain mid-way, fade at the end
func TestEnvelopeShape(t *testing.T) {
	rate := beep.SampleRate(1000)
	duration := 100 * time.Millisecond // 100 samples
	constant := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{1, 1}
		}
		return len(samples), true
	})

	env := NewEnvelope(constant, duration, 10*time.Millisecond, 20*time.Millisecond, rate)
	samples := make([][2]float64, 200)
	n, ok := env.Stream(samples)
	if n != 100 || !ok {
		t.Fatalf("Expected 100 samples and ok, got %d %v", n, ok)
	}

	if samples[0][0] != 0 {
		t.Errorf("Expected zero gain at start, got %f", samples[0][0])
	}
	if math.Abs(samples[5][0]-0.5) > 1e-9 {
		t.Errorf("Expected half gain mid-attack, got %f", samples[5][0])
	}
	if samples[50][0] != 1 {
		t.Errorf("Expected full gain in sustain, got %f", samples[50][0])
	}
	if samples[99][0] >= samples[85][0] {
		t.Errorf("Expected release to fade: %f >= %f", samples[99][0], samples[85][0])
	}

	if n, ok := env.Stream(samples); n != 0 || ok {
		t.Errorf("Expected drained envelope, got %d %v", n, ok)
	}
}

func TestCueLengths(t *testing.T) {
	cfg := DefaultConfig()
	rate := beep.SampleRate(cfg.SampleRate)

	if got := sampleCount(LaunchCue(cfg)); got != rate.N(LaunchDuration) {
		t.Errorf("Expected launch cue %d samples, got %d", rate.N(LaunchDuration), got)
	}
	if got := sampleCount(LandingCue(cfg)); got != rate.N(LandingDuration) {
		t.Errorf("Expected landing cue %d samples, got %d", rate.N(LandingDuration), got)
	}
}

func TestCueSilentAtZeroVolume(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Volume = 0

	samples := make([][2]float64, 512)
	s := LandingCue(cfg)
	for {
		n, ok := s.Stream(samples)
		for i := 0; i < n; i++ {
			if samples[i][0] != 0 || samples[i][1] != 0 {
				t.Fatalf("Expected silence, got %v", samples[i])
			}
		}
		if !ok {
			break
		}
	}
}

func TestNewConfig(t *testing.T) {
	t.Setenv(EnvSampleRate, "48000")
	cfg := NewConfig(true, 1.7)
	if !cfg.Enabled || cfg.Volume != 1 || cfg.SampleRate != 48000 {
		t.Errorf("Expected {true 1 48000}, got %+v", cfg)
	}

	t.Setenv(EnvSampleRate, "-5")
	cfg = NewConfig(false, -0.2)
	if cfg.Enabled || cfg.Volume != 0 || cfg.SampleRate != 44100 {
		t.Errorf("Expected {false 0 44100}, got %+v", cfg)
	}
}

// TestPlayerDisabled verifies a disabled player never touches the device
func TestPlayerDisabled(t *testing.T) {
	p := NewPlayer(DefaultConfig())
	if err := p.Initialize(); err != nil {
		t.Fatalf("Expected disabled Initialize to succeed, got %v", err)
	}
	if p.Enabled() {
		t.Error("Expected disabled player")
	}
	if _, err := p.Play(LaunchCue(p.cfg)); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}

	// Fire-and-forget helpers stay silent and return immediately
	start := time.Now()
	p.PlayLaunch()
	p.PlayLanding(time.Second)
	if time.Since(start) > 100*time.Millisecond {
		t.Error("Expected disabled cues to return immediately")
	}
	p.Close()
}
