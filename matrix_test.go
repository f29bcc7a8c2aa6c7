package renderer

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVec3Conversion(t *testing.T) {
	v := NewVector3(1.5, -2, 3)
	assert.Equal(t, mgl64.Vec3{1.5, -2, 3}, v.Vec3())
	assert.Equal(t, v, FromVec3(v.Vec3()))
}

func TestViewMatrix(t *testing.T) {
	cam := newDefaultCamera(t)
	view := cam.ViewMatrix()

	// the point straight ahead lands on the -Z axis of camera space
	p := view.Mul4x1(mgl64.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, p.X(), 1e-12)
	assert.InDelta(t, 0, p.Y(), 1e-12)
	assert.InDelta(t, -5, p.Z(), 1e-12)

	assertVectorInDelta(t, cam.Right(), FromVec3(view.Row(0).Vec3()))
	assertVectorInDelta(t, cam.Up(), FromVec3(view.Row(1).Vec3()))
	assertVectorInDelta(t, Scaled(cam.Direction(), -1), FromVec3(view.Row(2).Vec3()))
}

func TestMatrixPerspectiveMatchesLinear(t *testing.T) {
	cam := newDefaultCamera(t)
	r := rand.New(rand.NewSource(11))

	for i := 0; i < 50; i++ {
		cam.RotateHorizontally(r.Float64() - 0.5)
		cam.RotateVertically(r.Float64() - 0.5)
		cam.Move(r.Float64()-0.5, r.Float64()-0.5, r.Float64()-0.5)

		offset := Sum(Scaled(cam.Direction(), 1+r.Float64()*20),
			Sum(Scaled(cam.Right(), r.Float64()*4-2), Scaled(cam.Up(), r.Float64()*4-2)))
		p := Sum(cam.Position(), offset)

		wantX, wantY := cam.LinearPerspective(p)
		gotX, gotY := cam.MatrixPerspective(p)
		assert.InDelta(t, wantX, gotX, 1e-9)
		assert.InDelta(t, wantY, gotY, 1e-9)

		behind := Difference(cam.Position(), Scaled(cam.Direction(), 2))
		assert.True(t, IsOffScreen(cam.MatrixPerspective(behind)))
	}
}

func TestNewCameraLookingAt(t *testing.T) {
	cam, err := NewCameraLookingAt(NewVector3(0, -5, 0), Vector3{}, NewVector3(0, 0, 1), 1, 1)
	require.NoError(t, err)
	assertVectorInDelta(t, NewVector3(0, 1, 0), cam.Direction())
	assertVectorInDelta(t, NewVector3(0, 0, 1), cam.Up())
	assertVectorInDelta(t, NewVector3(1, 0, 0), cam.Right())

	cam, err = NewCameraLookingAt(NewVector3(3, -3, 2), Vector3{}, NewVector3(0, 0, 1), 1, 1)
	require.NoError(t, err)
	assertVectorInDelta(t, Unit(NewVector3(-3, 3, -2)), cam.Direction())
	assert.Greater(t, cam.Up().Z, 0.0)
	assertOrthonormal(t, cam, 1e-12)

	x, y := cam.LinearPerspective(Vector3{})
	assert.InDelta(t, 0, x, 1e-12)
	assert.InDelta(t, 0, y, 1e-12)

	_, err = NewCameraLookingAt(NewVector3(1, 1, 1), NewVector3(1, 1, 1), NewVector3(0, 0, 1), 1, 1)
	assert.ErrorIs(t, err, ErrDegenerateBasis)

	_, err = NewCameraLookingAt(Vector3{}, NewVector3(0, 0, 4), NewVector3(0, 0, 1), 1, 1)
	assert.ErrorIs(t, err, ErrDegenerateBasis)
}
