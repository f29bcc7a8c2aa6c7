package renderer

import (
	"math"

	"go.uber.org/zap"
)

const (
	DefaultMovementSpeed = 0.03
	DefaultRotationSpeed = math.Pi / 180
)

// Controller applies one frame of input to a camera.
type Controller struct {
	Camera        *Camera
	MovementSpeed float64 // world units per frame
	RotationSpeed float64 // radians per frame

	log *zap.Logger
}

func NewController(cam *Camera, movementSpeed, rotationSpeed float64, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		Camera:        cam,
		MovementSpeed: movementSpeed,
		RotationSpeed: rotationSpeed,
		log:           logger,
	}
}

// Step moves the camera with the basis it had at the start of the frame,
// zooms the orthographic scale with the forward motion, then applies the
// rotations and finally any projection mode selection.
func (c *Controller) Step(in Input) {
	cam := c.Camera

	forward := Axis(in, Forward, Back) * c.MovementSpeed
	right := Axis(in, StrafeRight, StrafeLeft) * c.MovementSpeed
	up := Axis(in, Up, Down) * c.MovementSpeed

	cam.Move(forward, right, up)
	if forward != 0 {
		cam.Zoom(math.Exp(forward))
	}

	if yaw := Axis(in, YawLeft, YawRight) * c.RotationSpeed; yaw != 0 {
		cam.RotateHorizontally(yaw)
	}
	if pitch := Axis(in, PitchUp, PitchDown) * c.RotationSpeed; pitch != 0 {
		cam.RotateVertically(pitch)
	}

	if mode, ok := selectedMode(in); ok && mode != cam.ProjectionMode() {
		cam.SetProjectionMode(mode)
		c.log.Info("projection mode changed", zap.Stringer("mode", mode))
	}
}

func selectedMode(in Input) (ProjectionMode, bool) {
	switch {
	case in.Pressed(SelectLinear):
		return Linear, true
	case in.Pressed(SelectSpherical):
		return Spherical, true
	case in.Pressed(SelectOrthographic):
		return Orthographic, true
	}
	return Linear, false
}
