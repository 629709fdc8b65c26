package physics

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/raytracer/vmath"
)

func launchEnv() (Projectile, Environment) {
	p := Projectile{
		Position: vmath.Point(0, 1, 0),
		Velocity: vmath.Vector(1, 1, 0).Normalize(),
	}
	e := Environment{
		Gravity: vmath.Vector(0, -0.1, 0),
		Wind:    vmath.Vector(-0.01, 0, 0),
	}
	return p, e
}

func TestTick(t *testing.T) {
	p, e := launchEnv()
	next := Tick(e, p)

	r := 1 / math.Sqrt(2)
	require.True(t, next.Position.Equal(vmath.Point(r, 1+r, 0)), "got %v", next.Position)
	require.True(t, next.Velocity.Equal(vmath.Vector(r-0.01, r-0.1, 0)), "got %v", next.Velocity)
	require.True(t, next.Position.IsPoint())
	require.True(t, next.Velocity.IsVector())

	// Input is untouched
	require.True(t, p.Position.Equal(vmath.Point(0, 1, 0)))
}

func TestAirborne(t *testing.T) {
	require.True(t, Airborne(Projectile{Position: vmath.Point(0, 0.001, 0)}))
	require.False(t, Airborne(Projectile{Position: vmath.Point(0, 0, 0)}))
	require.False(t, Airborne(Projectile{Position: vmath.Point(0, -1, 0)}))
}

func TestGroundDistance(t *testing.T) {
	require.Equal(t, 5.0, GroundDistance(vmath.Point(0, 10, 0), vmath.Point(3, -2, 4)))
	require.Equal(t, 0.0, GroundDistance(vmath.Point(1, 0, 1), vmath.Point(1, 50, 1)))
}

func TestTrajectoryLandsAfterSeventeenTicks(t *testing.T) {
	p, e := launchEnv()
	steps, sum, err := Trajectory(e, p, 0)
	require.NoError(t, err)

	require.Equal(t, 17, sum.Ticks)
	require.Len(t, steps, 17)
	for i, st := range steps {
		require.Equal(t, i+1, st.Tick)
		if i < len(steps)-1 {
			require.True(t, Airborne(st.Projectile), "tick %d landed early", st.Tick)
		}
	}

	last := steps[len(steps)-1]
	require.False(t, Airborne(last.Projectile))
	require.Equal(t, last.Position, sum.Landing)
	require.InDelta(t, 10.660815280171308, sum.Landing.X, 1e-9)
	require.InDelta(t, -0.579184719828692, sum.Landing.Y, 1e-9)
	require.InDelta(t, 3.85685424949238, sum.Apex.Y, 1e-9)
	require.InDelta(t, sum.Landing.X, sum.Distance, 1e-12)
}

func TestRunAlreadyGrounded(t *testing.T) {
	_, e := launchEnv()
	start := Projectile{Position: vmath.Point(0, 0, 0), Velocity: vmath.Vector(1, 1, 0)}

	calls := 0
	sum, err := NewSimulator(e).Run(context.Background(), start, func(Step) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 0, sum.Ticks)
	require.Equal(t, 0, calls)
	require.Equal(t, start.Position, sum.Landing)
}

func TestRunTickLimit(t *testing.T) {
	// No gravity: never lands
	e := Environment{Gravity: vmath.Vector(0, 0, 0), Wind: vmath.Vector(0, 0, 0)}
	start := Projectile{Position: vmath.Point(0, 1, 0), Velocity: vmath.Vector(1, 0, 0)}

	sim := &Simulator{Env: e, MaxTicks: 25}
	sum, err := sim.Run(context.Background(), start, nil)
	require.ErrorIs(t, err, ErrTickLimit)
	require.Equal(t, 25, sum.Ticks)
	require.Equal(t, 25.0, sum.Landing.X)
}

func TestRunNonFinite(t *testing.T) {
	_, e := launchEnv()
	start := Projectile{
		Position: vmath.Point(0, 1, 0),
		Velocity: vmath.Vector(0, 0, 0).Normalize(),
	}

	// NaN velocity: position becomes NaN after one tick
	sum, err := NewSimulator(e).Run(context.Background(), start, nil)
	require.ErrorIs(t, err, ErrNonFinite)
	require.Equal(t, 1, sum.Ticks)
}

func TestRunObserverError(t *testing.T) {
	p, e := launchEnv()
	stop := errors.New("stop")

	sum, err := NewSimulator(e).Run(context.Background(), p, func(st Step) error {
		if st.Tick == 3 {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, 3, sum.Ticks)
}

func TestRunCancelled(t *testing.T) {
	p, e := launchEnv()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum, err := NewSimulator(e).Run(ctx, p, nil)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 0, sum.Ticks)
}

func TestRunPacedCancelDuringWait(t *testing.T) {
	p, e := launchEnv()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sim := &Simulator{Env: e, Interval: time.Hour}
	sum, err := sim.Run(ctx, p, func(st Step) error {
		cancel()
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, sum.Ticks)
}

func TestRunPaced(t *testing.T) {
	p, e := launchEnv()
	sim := &Simulator{Env: e, Interval: time.Millisecond}

	begin := time.Now()
	sum, err := sim.Run(context.Background(), p, nil)
	require.NoError(t, err)
	require.Equal(t, 17, sum.Ticks)
	// one wait after each of the 17 ticks
	require.GreaterOrEqual(t, time.Since(begin), 17*time.Millisecond)
}

func TestRunPacedWaitsAfterLanding(t *testing.T) {
	e := Environment{Gravity: vmath.Vector(0, -1, 0)}
	p := Projectile{Position: vmath.Point(0, 0.5, 0), Velocity: vmath.Vector(0, -1, 0)}
	sim := &Simulator{Env: e, Interval: 30 * time.Millisecond}

	begin := time.Now()
	sum, err := sim.Run(context.Background(), p, nil)
	require.NoError(t, err)
	require.Equal(t, 1, sum.Ticks)
	require.GreaterOrEqual(t, time.Since(begin), 30*time.Millisecond)
}

func TestRunCancelAfterLandingKeepsResult(t *testing.T) {
	e := Environment{Gravity: vmath.Vector(0, -1, 0)}
	p := Projectile{Position: vmath.Point(0, 0.5, 0), Velocity: vmath.Vector(0, -1, 0)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sim := &Simulator{Env: e, Interval: time.Hour}
	sum, err := sim.Run(ctx, p, func(st Step) error {
		cancel()
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, sum.Ticks)
	require.False(t, Airborne(Projectile{Position: sum.Landing}))
}
