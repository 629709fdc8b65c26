package vmath

import (
	"fmt"
	"math"
)

// W components that classify a tuple
const (
	PointW  = 1.0
	VectorW = 0.0
)

// Tuple is a homogeneous 4-component value: W≈1 marks a point, W≈0 a vector
// Other W values are carried through arithmetic without meaning
type Tuple struct {
	X, Y, Z, W float64
}

// NewTuple assigns the four components as given
func NewTuple(x, y, z, w float64) Tuple {
	return Tuple{X: x, Y: y, Z: z, W: w}
}

// Point returns a position (W=1)
func Point(x, y, z float64) Tuple {
	return NewTuple(x, y, z, PointW)
}

// Vector returns a direction (W=0)
func Vector(x, y, z float64) Tuple {
	return NewTuple(x, y, z, VectorW)
}

func (t Tuple) IsPoint() bool {
	return ApproxEqual(t.W, PointW)
}

func (t Tuple) IsVector() bool {
	return ApproxEqual(t.W, VectorW)
}

// IsFinite reports whether every component is finite
func (t Tuple) IsFinite() bool {
	return IsFinite(t.X) && IsFinite(t.Y) && IsFinite(t.Z) && IsFinite(t.W)
}

// Equal compares component-wise under ApproxEqual
func (t Tuple) Equal(o Tuple) bool {
	return ApproxEqual(t.X, o.X) &&
		ApproxEqual(t.Y, o.Y) &&
		ApproxEqual(t.Z, o.Z) &&
		ApproxEqual(t.W, o.W)
}

// --- Arithmetic ---

// Add sums component-wise; point+point yields W=2 and is not rejected
func (t Tuple) Add(o Tuple) Tuple {
	return Tuple{t.X + o.X, t.Y + o.Y, t.Z + o.Z, t.W + o.W}
}

// Sub subtracts component-wise
// point-point gives a vector, point-vector a point, vector-vector a vector
func (t Tuple) Sub(o Tuple) Tuple {
	return Tuple{t.X - o.X, t.Y - o.Y, t.Z - o.Z, t.W - o.W}
}

func (t Tuple) Negate() Tuple {
	return t.Scale(-1.0)
}

func (t Tuple) Scale(s float64) Tuple {
	return Tuple{t.X * s, t.Y * s, t.Z * s, t.W * s}
}

// ScaleBy is Scale with the scalar on the left
func ScaleBy(s float64, t Tuple) Tuple {
	return t.Scale(s)
}

// Divide divides every component by s; s=0 yields Inf/NaN per IEEE-754
func (t Tuple) Divide(s float64) Tuple {
	return Tuple{t.X / s, t.Y / s, t.Z / s, t.W / s}
}

// --- Vector operations ---
// Meaningful for W≈0 but not enforced

// Magnitude is the Euclidean norm over all four components
func (t Tuple) Magnitude() float64 {
	return math.Sqrt(t.X*t.X + t.Y*t.Y + t.Z*t.Z + t.W*t.W)
}

// Normalize scales to unit magnitude
// A zero tuple produces NaN components; callers own the zero check
func (t Tuple) Normalize() Tuple {
	return t.Divide(t.Magnitude())
}

// Dot sums pairwise products over all four components
func (t Tuple) Dot(o Tuple) float64 {
	return t.X*o.X + t.Y*o.Y + t.Z*o.Z + t.W*o.W
}

// Cross is the 3D cross product of X,Y,Z; both W components are ignored and the result is a vector
func (t Tuple) Cross(o Tuple) Tuple {
	return Vector(
		t.Y*o.Z-t.Z*o.Y,
		t.Z*o.X-t.X*o.Z,
		t.X*o.Y-t.Y*o.X,
	)
}

func (t Tuple) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", t.X, t.Y, t.Z, t.W)
}
