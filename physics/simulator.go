package physics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/raytracer/vmath"
)

// Sentinel errors
var (
	ErrTickLimit = errors.New("tick limit reached while airborne")
	ErrNonFinite = errors.New("projectile state is not finite")
)

// Summary describes a finished flight
type Summary struct {
	Ticks    int
	Start    vmath.Tuple
	Landing  vmath.Tuple // position after the last tick
	Apex     vmath.Tuple // highest position seen, start included
	Distance float64     // ground distance start → landing
}

// Simulator runs fixed-step flights in a constant environment
type Simulator struct {
	Env Environment
	// MaxTicks bounds a flight; <= 0 is unbounded
	MaxTicks int
	// Interval paces ticks in real time; 0 runs as fast as possible
	Interval time.Duration
}

// NewSimulator creates an unbounded, unpaced simulator
func NewSimulator(env Environment) *Simulator {
	return &Simulator{Env: env}
}

// Run ticks start until it lands, calling observe after every tick
// The returned Summary reflects every tick taken, including on error
func (s *Simulator) Run(ctx context.Context, start Projectile, observe func(Step) error) (Summary, error) {
	sum := Summary{
		Start:   start.Position,
		Landing: start.Position,
		Apex:    start.Position,
	}

	var pace <-chan time.Time
	if s.Interval > 0 {
		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()
		pace = ticker.C
	}

	p := start
	for Airborne(p) {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if s.MaxTicks > 0 && sum.Ticks >= s.MaxTicks {
			return sum, fmt.Errorf("%w: %d ticks, position %v", ErrTickLimit, sum.Ticks, p.Position)
		}

		p = Tick(s.Env, p)
		sum.Ticks++
		sum.Landing = p.Position
		sum.Distance = GroundDistance(sum.Start, p.Position)
		if p.Position.Y > sum.Apex.Y {
			sum.Apex = p.Position
		}

		if !p.Position.IsFinite() || !p.Velocity.IsFinite() {
			return sum, fmt.Errorf("%w: tick %d, position %v, velocity %v", ErrNonFinite, sum.Ticks, p.Position, p.Velocity)
		}

		if observe != nil {
			if err := observe(Step{Tick: sum.Ticks, Projectile: p}); err != nil {
				return sum, err
			}
		}

		// Every tick is followed by a wait, the landing tick included
		if pace != nil {
			select {
			case <-ctx.Done():
				if !Airborne(p) {
					return sum, nil
				}
				return sum, ctx.Err()
			case <-pace:
			}
		}
	}

	return sum, nil
}

// Trajectory collects every step of an unpaced flight
func Trajectory(env Environment, start Projectile, maxTicks int) ([]Step, Summary, error) {
	sim := NewSimulator(env)
	sim.MaxTicks = maxTicks
	steps := make([]Step, 0, 64)
	sum, err := sim.Run(context.Background(), start, func(st Step) error {
		steps = append(steps, st)
		return nil
	})
	return steps, sum, err
}
