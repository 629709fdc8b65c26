package audio

import (
	"errors"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// ErrNotInitialized is returned when playing before a successful Initialize
var ErrNotInitialized = errors.New("audio player not initialized")

// Player owns the speaker and plays cues through a shared mixer
type Player struct {
	mu          sync.Mutex
	cfg         *Config
	mixer       *beep.Mixer
	initialized bool
}

func NewPlayer(cfg *Config) *Player {
	return &Player{
		cfg:   cfg,
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the output device; a disabled config is a no-op
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Enabled reports whether cues will be audible
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Play queues s on the mixer; returns a channel closed once s drains
func (p *Player) Play(s beep.Streamer) (<-chan struct{}, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return nil, ErrNotInitialized
	}

	done := make(chan struct{})
	speaker.Lock()
	p.mixer.Add(beep.Seq(s, beep.Callback(func() { close(done) })))
	speaker.Unlock()
	return done, nil
}

// PlayLaunch and PlayLanding are fire-and-forget; silent when not initialized
func (p *Player) PlayLaunch() {
	_, _ = p.Play(LaunchCue(p.cfg))
}

// PlayLanding blocks until the cue finishes or wait elapses, so it is heard before exit
func (p *Player) PlayLanding(wait time.Duration) {
	done, err := p.Play(LandingCue(p.cfg))
	if err != nil {
		return
	}
	select {
	case <-done:
	case <-time.After(wait):
	}
}

// Close silences the mixer
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()
	p.initialized = false
}
