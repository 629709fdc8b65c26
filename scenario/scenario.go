package scenario

import (
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/raytracer/physics"
	"github.com/lixenwraith/raytracer/toml"
	"github.com/lixenwraith/raytracer/vmath"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid scenario")

// Launch describes the initial state of the projectile
type Launch struct {
	Position  [3]float64 `toml:"position"`
	Velocity  [3]float64 `toml:"velocity"`
	Normalize bool       `toml:"normalize"` // normalize Velocity before applying Speed
	Speed     float64    `toml:"speed"`
}

// World holds the per-tick accelerations
type World struct {
	Gravity [3]float64 `toml:"gravity"`
	Wind    [3]float64 `toml:"wind"`
}

// Run controls pacing and termination
type Run struct {
	TickDelayMs int `toml:"tick_delay_ms"`
	MaxTicks    int `toml:"max_ticks"` // 0 = unbounded
}

// Audio toggles launch and landing cues
type Audio struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // 0.0-1.0
}

// Scenario is a complete projectile run description
type Scenario struct {
	Launch Launch `toml:"launch"`
	World  World  `toml:"world"`
	Run    Run    `toml:"run"`
	Audio  Audio  `toml:"audio"`
}

// Default reproduces the classic lob: up-right at unit speed into light gravity and a head wind
func Default() *Scenario {
	return &Scenario{
		Launch: Launch{
			Position:  [3]float64{0, 1, 0},
			Velocity:  [3]float64{1, 1, 0},
			Normalize: true,
			Speed:     1,
		},
		World: World{
			Gravity: [3]float64{0, -0.1, 0},
			Wind:    [3]float64{-0.01, 0, 0},
		},
		Run: Run{
			TickDelayMs: 500,
			MaxTicks:    10000,
		},
		Audio: Audio{
			Enabled: false,
			Volume:  0.5,
		},
	}
}

// Parse overlays a TOML document on the defaults
func Parse(data []byte) (*Scenario, error) {
	s := Default()
	if err := toml.Unmarshal(data, s); err != nil {
		return nil, errors.Wrap(err, "parse scenario")
	}
	return s, nil
}

// Load reads and parses a scenario file
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read scenario %s", path)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return s, nil
}

// Marshal encodes the scenario as TOML
func (s *Scenario) Marshal() ([]byte, error) {
	data, err := toml.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "marshal scenario")
	}
	return data, nil
}

// Validate rejects values the simulation cannot run with
func (s *Scenario) Validate() error {
	// Checked in file order so the first offending field is reported
	vecs := []struct {
		name string
		v    [3]float64
	}{
		{"launch.position", s.Launch.Position},
		{"launch.velocity", s.Launch.Velocity},
		{"world.gravity", s.World.Gravity},
		{"world.wind", s.World.Wind},
	}
	for _, vec := range vecs {
		for _, c := range vec.v {
			if !vmath.IsFinite(c) {
				return errors.Wrapf(ErrInvalid, "%s has non-finite component %v", vec.name, vec.v)
			}
		}
	}

	switch {
	case !vmath.IsFinite(s.Launch.Speed) || s.Launch.Speed < 0:
		return errors.Wrapf(ErrInvalid, "launch.speed must be finite and >= 0, got %v", s.Launch.Speed)
	case s.Launch.Normalize && s.Launch.Velocity == [3]float64{}:
		return errors.Wrap(ErrInvalid, "launch.velocity cannot be normalized: zero vector")
	case s.Run.TickDelayMs < 0:
		return errors.Wrapf(ErrInvalid, "run.tick_delay_ms must be >= 0, got %d", s.Run.TickDelayMs)
	case s.Run.MaxTicks < 0:
		return errors.Wrapf(ErrInvalid, "run.max_ticks must be >= 0, got %d", s.Run.MaxTicks)
	case !vmath.IsFinite(s.Audio.Volume) || s.Audio.Volume < 0 || s.Audio.Volume > 1:
		return errors.Wrapf(ErrInvalid, "audio.volume must be within [0, 1], got %v", s.Audio.Volume)
	}
	return nil
}

// Projectile builds the starting state: velocity is normalized on request, then scaled by Speed
func (s *Scenario) Projectile() physics.Projectile {
	p := s.Launch.Position
	v := s.Launch.Velocity
	vel := vmath.Vector(v[0], v[1], v[2])
	if s.Launch.Normalize {
		vel = vel.Normalize()
	}
	return physics.Projectile{
		Position: vmath.Point(p[0], p[1], p[2]),
		Velocity: vel.Scale(s.Launch.Speed),
	}
}

func (s *Scenario) Environment() physics.Environment {
	g, w := s.World.Gravity, s.World.Wind
	return physics.Environment{
		Gravity: vmath.Vector(g[0], g[1], g[2]),
		Wind:    vmath.Vector(w[0], w[1], w[2]),
	}
}

func (s *Scenario) TickDelay() time.Duration {
	return time.Duration(s.Run.TickDelayMs) * time.Millisecond
}

// Simulator returns a simulator paced and bounded per the Run section
func (s *Scenario) Simulator() *physics.Simulator {
	sim := physics.NewSimulator(s.Environment())
	sim.MaxTicks = s.Run.MaxTicks
	sim.Interval = s.TickDelay()
	return sim
}
