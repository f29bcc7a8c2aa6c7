package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	defaultNear = 0.01
	defaultFar  = 1000.0
)

func (v Vector3) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func FromVec3(v mgl64.Vec3) Vector3 {
	return Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// ViewMatrix returns the world to camera transform. Camera space looks down
// -Z with +Y along the camera's up vector and +X along its right vector.
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	eye := c.position.Vec3()
	center := Sum(c.position, c.direction).Vec3()
	return mgl64.LookAtV(eye, center, c.up.Vec3())
}

// PerspectiveMatrix uses the camera's field of view as the vertical field
// of view.
func (c *Camera) PerspectiveMatrix(aspect, near, far float64) mgl64.Mat4 {
	return mgl64.Perspective(c.fieldOfView, aspect, near, far)
}

// MatrixPerspective projects point through the view and perspective
// matrices with a square aspect. For visible points it agrees with
// LinearPerspective; only the near and far planes differ, which the
// returned x and y do not depend on.
func (c *Camera) MatrixPerspective(point Vector3) (float64, float64) {
	m := c.PerspectiveMatrix(1, defaultNear, defaultFar).Mul4(c.ViewMatrix())
	clip := m.Mul4x1(point.Vec3().Vec4(1))
	if clip.W() <= 0 {
		return OffScreenX, OffScreenY
	}
	return clip.X() / clip.W(), clip.Y() / clip.W()
}

// NewCameraLookingAt places a camera at position facing target, with its
// up vector as close to globalUp as the view direction allows.
func NewCameraLookingAt(position, target, globalUp Vector3, fieldOfView, scale float64) (*Camera, error) {
	forward := Difference(target, position)
	if Magnitude(forward) == 0 {
		return nil, fmt.Errorf("%w: target equals position %v", ErrDegenerateBasis, position)
	}
	if Magnitude(Cross(forward, globalUp)) == 0 {
		return nil, fmt.Errorf("%w: view direction %v is parallel to global up %v", ErrDegenerateBasis, forward, globalUp)
	}

	view := mgl64.LookAtV(position.Vec3(), target.Vec3(), globalUp.Vec3())

	// rows of the rotation part are right, up and -forward
	up := FromVec3(view.Row(1).Vec3())
	back := FromVec3(view.Row(2).Vec3())

	return NewCamera(Pose{
		Position:  position,
		Direction: Scaled(back, -1),
		Up:        up,
		GlobalUp:  globalUp,
	}, fieldOfView, scale)
}
