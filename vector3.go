package renderer

import (
	"fmt"
	"math"
)

// Vector3 is an immutable 3D vector. Every function in this file takes and
// returns values and never touches its arguments.
type Vector3 struct {
	X float64
	Y float64
	Z float64
}

func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

func Magnitude(v Vector3) float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// NonZeroMagnitude is Magnitude, except that a zero vector reports 1 so it
// can be used as a divisor. Dividing the zero vector by it yields the zero
// vector instead of NaN.
func NonZeroMagnitude(v Vector3) float64 {
	m := Magnitude(v)
	if m == 0 {
		return 1
	}
	return m
}

func Dot(a, b Vector3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cos returns the cosine of the angle between a and b. The result is not
// clamped and can land slightly outside [-1, 1].
func Cos(a, b Vector3) float64 {
	return Dot(a, b) / (NonZeroMagnitude(a) * NonZeroMagnitude(b))
}

// Angle returns the angle between a and b in radians, in [0, pi].
func Angle(a, b Vector3) float64 {
	cosTheta := Cos(a, b)
	// Clamp to avoid NaN from floating point error on (anti)parallel vectors
	if cosTheta > 1 {
		cosTheta = 1
	} else if cosTheta < -1 {
		cosTheta = -1
	}
	return math.Acos(cosTheta)
}

// ScalarProjection is the signed length of the projection of a onto b.
func ScalarProjection(a, b Vector3) float64 {
	return Dot(a, b) / NonZeroMagnitude(b)
}

func Sum(a, b Vector3) Vector3 {
	return Vector3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Difference returns a - b.
func Difference(a, b Vector3) Vector3 {
	return Vector3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func Scaled(v Vector3, s float64) Vector3 {
	return Vector3{s * v.X, s * v.Y, s * v.Z}
}

// Cross returns the right-handed cross product a × b.
func Cross(a, b Vector3) Vector3 {
	return Vector3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Normal is the unit vector along a × b.
func Normal(a, b Vector3) Vector3 {
	return Unit(Cross(a, b))
}

// Unit scales v to length 1. The zero vector maps to itself.
func Unit(v Vector3) Vector3 {
	return Scaled(v, 1/NonZeroMagnitude(v))
}

// Projection is the vector projection of a onto b.
func Projection(a, b Vector3) Vector3 {
	m := NonZeroMagnitude(b)
	return Scaled(b, Dot(a, b)/(m*m))
}

// PlanarProjection is the part of a lying in the plane orthogonal to b.
func PlanarProjection(a, b Vector3) Vector3 {
	return Difference(a, Projection(a, b))
}

// Rotation rotates v about the unit vector axis by s radians, counter
// clockwise when looking down the axis.
//
// The angle is reduced modulo pi, so Rotation(v, axis, s+pi) equals
// Rotation(v, axis, s). Negative reduced angles are handled by flipping the
// perpendicular component and adding pi, which is exact. An angle of
// exactly pi/2 is special cased to sidestep tan(pi/2).
func Rotation(v, axis Vector3, s float64) Vector3 {
	s = math.Mod(s, math.Pi)

	proj := Projection(v, axis)
	perp := Difference(v, proj)

	if s < 0 {
		perp = Scaled(perp, -1)
		s += math.Pi
	}

	if s == math.Pi/2 {
		return Sum(Cross(axis, perp), proj)
	}

	tangent := Scaled(Cross(axis, perp), math.Tan(s))
	rotated := Scaled(Sum(perp, tangent), math.Cos(s))
	return Sum(rotated, proj)
}

func (v Vector3) Add(o Vector3) Vector3 { return Sum(v, o) }

func (v Vector3) Sub(o Vector3) Vector3 { return Difference(v, o) }

func (v Vector3) Mul(k float64) Vector3 { return Scaled(v, k) }

func (v Vector3) Dot(o Vector3) float64 { return Dot(v, o) }

func (v Vector3) Cross(o Vector3) Vector3 { return Cross(v, o) }

func (v Vector3) Len() float64 { return Magnitude(v) }

// IsFinite reports whether no component is NaN or infinite.
func (v Vector3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// DistanceTo
func (v Vector3) DistanceTo(other Vector3) float64 {
	return Magnitude(Difference(v, other))
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
