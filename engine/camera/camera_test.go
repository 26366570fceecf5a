package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVecNear(t *testing.T, want, got mgl32.Vec4) {
	t.Helper()
	for i := range 4 {
		assert.InDelta(t, want[i], got[i], 1e-5, "component %d", i)
	}
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()

	assert.Equal(t, mgl32.QuatIdent(), c.Rotation())
	assert.InDelta(t, math.Pi/4, c.Fov(), 1e-6)
	assert.Equal(t, float32(1), c.Aspect())
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(100), c.Far())
	assert.Equal(t, [16]float32(mgl32.Ident4()), c.ViewMatrix())

	fwd := c.Forward()
	assert.InDelta(t, -1, fwd.Z(), 1e-6)
}

func TestViewMatrixMovesCameraToOrigin(t *testing.T) {
	c := NewCamera(WithPosition(0, 1.6, 0), WithRotation(mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})))
	view := mgl32.Mat4(c.ViewMatrix())

	assertVecNear(t, mgl32.Vec4{0, 0, 0, 1}, view.Mul4x1(mgl32.Vec4{0, 1.6, 0, 1}))

	fwd := c.Forward()
	assert.InDelta(t, -1, fwd.X(), 1e-6)
	assert.InDelta(t, 0, fwd.Z(), 1e-6)
	assertVecNear(t, mgl32.Vec4{0, 0, -1, 0}, view.Mul4x1(fwd.Vec4(0)))
}

func TestSetRotationAppliesOnUpdate(t *testing.T) {
	c := NewCamera()
	before := c.ViewMatrix()

	q := mgl32.QuatRotate(0.5, mgl32.Vec3{1, 0, 0})
	c.SetRotation(q)
	assert.Equal(t, q, c.Rotation())
	assert.Equal(t, before, c.ViewMatrix())

	c.Update()
	assert.NotEqual(t, before, c.ViewMatrix())

	vp := mgl32.Mat4(c.ViewProjectionMatrix())
	want := mgl32.Mat4(c.ProjectionMatrix()).Mul4(mgl32.Mat4(c.ViewMatrix()))
	assert.True(t, vp.ApproxEqualThreshold(want, 1e-5))
}

func TestUnnormalizedRotationIsNormalized(t *testing.T) {
	c := NewCamera()
	c.SetRotation(mgl32.QuatIdent().Scale(3))
	c.Update()
	assert.Equal(t, [16]float32(mgl32.Ident4()), c.ViewMatrix())
}

func TestProjectionSetters(t *testing.T) {
	c := NewCamera()
	c.SetAspect(9.0 / 16.0)
	c.SetFov(1)
	c.SetNear(0.5)
	c.SetFar(50)

	p := c.ProjectionMatrix()
	f := float32(1 / math.Tan(0.5))
	assert.InDelta(t, f/(9.0/16.0), p[0], 1e-5)
	assert.InDelta(t, f, p[5], 1e-5)
	assert.InDelta(t, 50/(0.5-50), p[10], 1e-5)

	inv := mgl32.Mat4(c.InverseProjectionMatrix())
	assert.True(t, inv.Mul4(mgl32.Mat4(p)).ApproxEqualThreshold(mgl32.Ident4(), 1e-4))
}

func TestUniformEncoding(t *testing.T) {
	q := mgl32.QuatRotate(0.5, mgl32.Vec3{0, 1, 0})
	c := NewCamera(WithPosition(1, 2, 3), WithRotation(q), WithFov(1.2))
	u := c.Uniform()

	assert.Equal(t, c.ViewProjectionMatrix(), u.ViewProj)
	assert.Equal(t, [4]float32{q.V.X(), q.V.Y(), q.V.Z(), q.W}, u.Orientation)
	assert.Equal(t, [3]float32{1, 2, 3}, u.Position)
	assert.Equal(t, float32(1.2), u.FovY)

	buf := u.Bytes()
	require.Len(t, buf, PoseUniformSize)

	f32 := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])) }
	assert.Equal(t, u.ViewProj[5], f32(20))
	assert.Equal(t, q.W, f32(76))
	assert.Equal(t, float32(2), f32(84))
	assert.Equal(t, float32(1.2), f32(92))

	prefix := []byte{0xAA}
	assert.Equal(t, append([]byte{0xAA}, buf...), u.AppendTo(prefix))
}
