package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Cue timings
const (
	LaunchDuration = 180 * time.Millisecond
	LaunchAttack   = 10 * time.Millisecond
	LaunchRelease  = 120 * time.Millisecond

	LandingDuration = 260 * time.Millisecond
	LandingAttack   = 2 * time.Millisecond
	LandingRelease  = 220 * time.Millisecond
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// sweep is an oscillator whose frequency glides linearly from start to end over its duration
type sweep struct {
	from, to float64
	phase    float64
	total    int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewSweep creates a gliding oscillator; from == to gives a steady tone
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		from:  from,
		to:    to,
		total: rate.N(duration),
		wave:  wave,
		rate:  rate,
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.total {
			return i, i > 0
		}

		var val float64
		switch s.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * s.phase)
		case WaveSquare:
			val = 1
			if s.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (s.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		progress := float64(s.position) / float64(s.total)
		freq := s.from + (s.to-s.from)*progress
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope applies a linear attack and release to a stream of known length
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		gain := 1.0
		if e.attack > 0 && e.position < e.attack {
			gain = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; e.release > 0 && remaining < e.release {
			gain = math.Min(gain, float64(remaining)/float64(e.release))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s at linear gain vol; math.Log2(0) is -Inf so zero maps to Silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// LaunchCue is a short rising square chirp
func LaunchCue(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	chirp := NewSweep(440, 1320, LaunchDuration, WaveSquare, rate)
	shaped := NewEnvelope(chirp, LaunchDuration, LaunchAttack, LaunchRelease, rate)
	return newVolume(shaped, 0.6*cfg.Volume)
}

// LandingCue is a low thud: a sine body under a burst of noise
func LandingCue(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	n := rate.N(LandingDuration)

	var body beep.Streamer
	if sine, err := generators.SineTone(rate, 90); err == nil {
		body = beep.Take(n, sine)
	} else {
		// SineTone rejects freq >= rate/2; only reachable with absurd sample rates
		body = NewSweep(90, 90, LandingDuration, WaveSine, rate)
	}
	body = NewEnvelope(body, LandingDuration, LandingAttack, LandingRelease, rate)

	noise := NewEnvelope(NewSweep(0, 0, LandingDuration/4, WaveNoise, rate), LandingDuration/4, 0, LandingDuration/4, rate)

	mixed := beep.Mix(
		newVolume(body, 0.8),
		newVolume(noise, 0.25),
	)
	// Mix never drains; bound it to the cue length
	return newVolume(beep.Take(n, mixed), cfg.Volume)
}

// sampleCount drains s and returns how many samples it produced
func sampleCount(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}
