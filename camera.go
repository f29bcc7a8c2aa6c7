package renderer

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

type ProjectionMode int

const (
	Linear ProjectionMode = iota
	Spherical
	Orthographic
)

func (m ProjectionMode) String() string {
	switch m {
	case Linear:
		return "linear"
	case Spherical:
		return "spherical"
	case Orthographic:
		return "orthographic"
	}
	return fmt.Sprintf("ProjectionMode(%d)", int(m))
}

func ParseProjectionMode(name string) (ProjectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "linear":
		return Linear, nil
	case "spherical":
		return Spherical, nil
	case "orthographic":
		return Orthographic, nil
	}
	return Linear, fmt.Errorf("unknown projection mode %q", name)
}

// Canonical "do not render" coordinates returned by the linear and
// orthographic projections for points at or behind the camera plane.
var (
	OffScreenX = math.Inf(-1)
	OffScreenY = math.Inf(-1)
)

// IsOffScreen reports whether a projected pair must be skipped. Either
// coordinate being non-finite is enough, whatever its sign.
func IsOffScreen(x, y float64) bool {
	return !isFinite(x) || !isFinite(y)
}

var (
	ErrInvalidFieldOfView = errors.New("field of view must be in (0, pi)")
	ErrInvalidScale       = errors.New("scale must be positive")
	ErrDegenerateBasis    = errors.New("camera basis is degenerate")
)

const basisTolerance = 1e-9

// Pose is the initial placement of a camera.
type Pose struct {
	Position  Vector3
	Direction Vector3
	Up        Vector3
	GlobalUp  Vector3
}

// DefaultPose looks along +Y from five units back, with +Z up.
func DefaultPose() Pose {
	return Pose{
		Position:  NewVector3(0, -5, 0),
		Direction: NewVector3(0, 1, 0),
		Up:        NewVector3(0, 0, 1),
		GlobalUp:  NewVector3(0, 0, 1),
	}
}

// Camera is an observer with a position and a right-handed orthonormal
// basis. It is mutated once per frame by its owner and read by the
// projection functions afterwards; it is not safe for concurrent mutation.
type Camera struct {
	position  Vector3
	direction Vector3
	up        Vector3
	right     Vector3
	globalUp  Vector3

	fieldOfView float64
	scale       float64
	mode        ProjectionMode
}

// NewCamera builds a camera from a pose. Direction and up are normalized,
// up is made orthogonal to direction, and right is derived as
// direction × up.
func NewCamera(pose Pose, fieldOfView, scale float64) (*Camera, error) {
	if !(fieldOfView > 0 && fieldOfView < math.Pi) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidFieldOfView, fieldOfView)
	}
	if !(scale > 0) || math.IsInf(scale, 1) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidScale, scale)
	}
	if !pose.Position.IsFinite() {
		return nil, fmt.Errorf("%w: position %v is not finite", ErrDegenerateBasis, pose.Position)
	}

	direction := Unit(pose.Direction)
	up := Unit(PlanarProjection(pose.Up, direction))
	right := Normal(direction, up)
	globalUp := Unit(pose.GlobalUp)

	if Magnitude(direction) == 0 || Magnitude(up) == 0 || Magnitude(right) == 0 {
		return nil, fmt.Errorf("%w: direction %v, up %v", ErrDegenerateBasis, pose.Direction, pose.Up)
	}
	if Magnitude(globalUp) == 0 {
		return nil, fmt.Errorf("%w: global up is zero", ErrDegenerateBasis)
	}

	return &Camera{
		position:    pose.Position,
		direction:   direction,
		up:          up,
		right:       right,
		globalUp:    globalUp,
		fieldOfView: fieldOfView,
		scale:       scale,
		mode:        Linear,
	}, nil
}

func (c *Camera) Position() Vector3 { return c.position }

func (c *Camera) Direction() Vector3 { return c.direction }

func (c *Camera) Up() Vector3 { return c.up }

func (c *Camera) Right() Vector3 { return c.right }

func (c *Camera) GlobalUp() Vector3 { return c.globalUp }

func (c *Camera) FieldOfView() float64 { return c.fieldOfView }

func (c *Camera) Scale() float64 { return c.scale }

// Basis returns direction, up and right.
func (c *Camera) Basis() (direction, up, right Vector3) {
	return c.direction, c.up, c.right
}

func (c *Camera) ProjectionMode() ProjectionMode { return c.mode }

func (c *Camera) SetProjectionMode(m ProjectionMode) {
	switch m {
	case Linear, Spherical, Orthographic:
		c.mode = m
	}
}

// ScreenPosition projects a world point with the active projection mode.
func (c *Camera) ScreenPosition(point Vector3) (float64, float64) {
	switch c.mode {
	case Spherical:
		return c.SphericalPerspective(point)
	case Orthographic:
		return c.OrthographicPerspective(point)
	default:
		return c.LinearPerspective(point)
	}
}

// LinearPerspective is a pinhole projection. Points on or behind the
// camera plane map to the off-screen sentinel.
func (c *Camera) LinearPerspective(point Vector3) (float64, float64) {
	relative := Difference(point, c.position)

	depth := Dot(relative, c.direction)
	if depth <= 0 {
		return OffScreenX, OffScreenY
	}

	relative = Scaled(relative, 1/depth)
	fovScale := math.Tan(c.fieldOfView / 2)
	x := ScalarProjection(relative, c.right) / fovScale
	y := ScalarProjection(relative, c.up) / fovScale

	return x, y
}

// SphericalPerspective is an equidistant fisheye projection: the distance
// from the centre of the screen is proportional to the angle between the
// view direction and the point. Points behind the camera are not guarded
// and land at a radius approaching 2*pi/fov.
func (c *Camera) SphericalPerspective(point Vector3) (float64, float64) {
	relative := Difference(point, c.position)

	visualAngle := Angle(c.direction, relative) * 2
	screenRadius := visualAngle / c.fieldOfView

	planar := PlanarProjection(relative, c.direction)

	x := screenRadius * Cos(planar, c.right)
	y := screenRadius * Cos(planar, c.up)

	return x, y
}

// OrthographicPerspective is a parallel projection magnified by scale.
func (c *Camera) OrthographicPerspective(point Vector3) (float64, float64) {
	relative := Difference(point, c.position)

	if Dot(relative, c.direction) <= 0 {
		return OffScreenX, OffScreenY
	}

	x := c.scale * ScalarProjection(relative, c.right)
	y := c.scale * ScalarProjection(relative, c.up)

	return x, y
}

// RotateHorizontally turns the camera about the global up axis. Right is
// recomputed from the new direction and up rather than rotated.
func (c *Camera) RotateHorizontally(angle float64) {
	c.direction = Unit(Rotation(c.direction, c.globalUp, angle))
	c.up = c.orthogonalUp(Unit(Rotation(c.up, c.globalUp, angle)))
	c.right = Normal(c.direction, c.up)
}

// RotateVertically tilts the camera about its right axis, which stays put.
func (c *Camera) RotateVertically(angle float64) {
	c.direction = Unit(Rotation(c.direction, c.right, angle))
	c.up = c.orthogonalUp(Unit(Rotation(c.up, c.right, angle)))
}

// orthogonalUp removes whatever component of up drifted onto direction.
func (c *Camera) orthogonalUp(up Vector3) Vector3 {
	fixed := Unit(PlanarProjection(up, c.direction))
	if Magnitude(fixed) == 0 {
		return up
	}
	return fixed
}

// Move translates the camera along its current direction and right
// vectors and along the global up axis.
func (c *Camera) Move(forward, right, up float64) {
	c.position = Sum(c.position, Scaled(c.direction, forward))
	c.position = Sum(c.position, Scaled(c.right, right))
	c.position = Sum(c.position, Scaled(c.globalUp, up))
}

// Zoom multiplies the orthographic scale by factor. Factors that would
// make the scale non-positive or non-finite are ignored.
func (c *Camera) Zoom(factor float64) {
	if !(factor > 0) || !isFinite(factor) {
		return
	}
	next := c.scale * factor
	if !(next > 0) || !isFinite(next) {
		return
	}
	c.scale = next
}

func (c *Camera) String() string {
	return fmt.Sprintf("Camera{pos=%v dir=%v up=%v right=%v mode=%v}",
		c.position, c.direction, c.up, c.right, c.mode)
}
