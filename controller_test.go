package renderer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestController(t *testing.T) (*Controller, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	return NewController(newDefaultCamera(t), DefaultMovementSpeed, DefaultRotationSpeed, zap.New(core)), logs
}

func TestControllerIdle(t *testing.T) {
	c, _ := newTestController(t)
	before := *c.Camera

	c.Step(NewKeyState())
	assert.Equal(t, before, *c.Camera)
}

func TestControllerMovement(t *testing.T) {
	testCases := []struct {
		name    string
		pressed []Action
		want    Vector3
	}{
		{"forward", []Action{Forward}, NewVector3(0, -5+DefaultMovementSpeed, 0)},
		{"back", []Action{Back}, NewVector3(0, -5-DefaultMovementSpeed, 0)},
		{"strafe right", []Action{StrafeRight}, NewVector3(DefaultMovementSpeed, -5, 0)},
		{"strafe left", []Action{StrafeLeft}, NewVector3(-DefaultMovementSpeed, -5, 0)},
		{"up", []Action{Up}, NewVector3(0, -5, DefaultMovementSpeed)},
		{"down", []Action{Down}, NewVector3(0, -5, -DefaultMovementSpeed)},
		{"opposing keys cancel", []Action{Up, Down, Forward, Back}, NewVector3(0, -5, 0)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestController(t)
			c.Step(NewKeyState(tc.pressed...))
			assertVectorInDelta(t, tc.want, c.Camera.Position())
		})
	}
}

func TestControllerMovesBeforeRotating(t *testing.T) {
	c, _ := newTestController(t)

	c.Step(NewKeyState(Forward, StrafeRight, YawLeft, PitchUp))

	// translation used the starting basis: +Y forward, +X right
	assertVectorInDelta(t, NewVector3(DefaultMovementSpeed, -5+DefaultMovementSpeed, 0), c.Camera.Position())
	assert.Less(t, c.Camera.Direction().X, 0.0)
	assert.Greater(t, c.Camera.Direction().Z, 0.0)
}

func TestControllerZoomFollowsForwardMotion(t *testing.T) {
	c, _ := newTestController(t)
	start := c.Camera.Scale()

	c.Step(NewKeyState(Forward))
	assert.InDelta(t, start*math.Exp(DefaultMovementSpeed), c.Camera.Scale(), 1e-12)

	c.Step(NewKeyState(Back))
	assert.InDelta(t, start, c.Camera.Scale(), 1e-12)

	c.Step(NewKeyState(StrafeLeft, Up))
	assert.InDelta(t, start, c.Camera.Scale(), 1e-12)
}

func TestControllerRotation(t *testing.T) {
	t.Run("yaw right turns towards +X", func(t *testing.T) {
		c, _ := newTestController(t)
		c.Step(NewKeyState(YawRight))
		d := c.Camera.Direction()
		assert.InDelta(t, math.Sin(DefaultRotationSpeed), d.X, 1e-12)
		assert.InDelta(t, math.Cos(DefaultRotationSpeed), d.Y, 1e-12)
	})

	t.Run("pitch down looks below the horizon", func(t *testing.T) {
		c, _ := newTestController(t)
		c.Step(NewKeyState(PitchDown))
		assert.InDelta(t, -math.Sin(DefaultRotationSpeed), c.Camera.Direction().Z, 1e-12)
		assert.Equal(t, NewVector3(1, 0, 0), c.Camera.Right())
	})

	t.Run("full turn in ticks", func(t *testing.T) {
		c, _ := newTestController(t)
		for i := 0; i < 360; i++ {
			c.Step(NewKeyState(YawLeft))
		}
		assertVectorInDelta(t, NewVector3(0, 1, 0), c.Camera.Direction())
		assertOrthonormal(t, c.Camera, 1e-9)
	})
}

func TestControllerModeSelect(t *testing.T) {
	c, logs := newTestController(t)

	c.Step(NewKeyState(SelectSpherical))
	assert.Equal(t, Spherical, c.Camera.ProjectionMode())

	c.Step(NewKeyState(SelectOrthographic))
	assert.Equal(t, Orthographic, c.Camera.ProjectionMode())

	// holding the key does not log again
	c.Step(NewKeyState(SelectOrthographic))
	c.Step(NewKeyState())
	assert.Equal(t, Orthographic, c.Camera.ProjectionMode())

	c.Step(NewKeyState(SelectOrthographic, SelectLinear))
	assert.Equal(t, Linear, c.Camera.ProjectionMode())

	entries := logs.FilterMessage("projection mode changed").All()
	require.Len(t, entries, 3)
	assert.Equal(t, "spherical", entries[0].ContextMap()["mode"])
	assert.Equal(t, "orthographic", entries[1].ContextMap()["mode"])
	assert.Equal(t, "linear", entries[2].ContextMap()["mode"])
}

func TestControllerRandomFlight(t *testing.T) {
	c, _ := newTestController(t)
	r := rand.New(rand.NewSource(12))

	for i := 0; i < 2000; i++ {
		keys := NewKeyState()
		for a := Forward; a <= PitchDown; a++ {
			keys.Set(a, r.Intn(3) == 0)
		}
		c.Step(keys)

		d, u, rt := c.Camera.Basis()
		require.InDelta(t, 0, Dot(d, u), 1e-9, "frame %d", i)
		require.InDelta(t, 0, Dot(d, rt), 1e-9, "frame %d", i)
		require.InDelta(t, 0, Dot(u, rt), 1e-9, "frame %d", i)
		require.InDelta(t, 1, Magnitude(d), 1e-9, "frame %d", i)
		require.InDelta(t, 1, Magnitude(u), 1e-9, "frame %d", i)
		require.InDelta(t, 1, Magnitude(rt), 1e-9, "frame %d", i)
		require.Greater(t, c.Camera.Scale(), 0.0)
	}
}

func TestNewControllerDefaultsLogger(t *testing.T) {
	c := NewController(newDefaultCamera(t), 1, 1, nil)
	assert.NotPanics(t, func() { c.Step(NewKeyState(SelectSpherical)) })
}
