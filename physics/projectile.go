package physics

import (
	"github.com/lixenwraith/raytracer/vmath"
)

// Projectile is a body in flight: Position is a point, Velocity a vector
type Projectile struct {
	Position vmath.Tuple
	Velocity vmath.Tuple
}

// Environment holds the constant per-tick accelerations, both vectors
type Environment struct {
	Gravity vmath.Tuple
	Wind    vmath.Tuple
}

// Step is the projectile state after Tick ticks
type Step struct {
	Tick int
	Projectile
}

// Tick advances one fixed step: p = p + v; v = v + gravity + wind
// Position integrates the velocity from before the update
func Tick(env Environment, p Projectile) Projectile {
	return Projectile{
		Position: p.Position.Add(p.Velocity),
		Velocity: p.Velocity.Add(env.Gravity).Add(env.Wind),
	}
}

// Airborne reports whether the projectile is above ground (Y > 0)
func Airborne(p Projectile) bool {
	return p.Position.Y > 0
}

// GroundDistance is the X/Z distance between two positions, ignoring height
func GroundDistance(from, to vmath.Tuple) float64 {
	d := to.Sub(from)
	return vmath.Vector(d.X, 0, d.Z).Magnitude()
}
