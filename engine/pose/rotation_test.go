package pose

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestPortraitCorrectionIsMinusQuarterTurnAboutX(t *testing.T) {
	assertQuatNear(t, mgl32.QuatRotate(deg(-90), xAxis), portraitCorrection)

	// The device normal ends up pointing along +Y.
	up := portraitCorrection.Rotate(mgl32.Vec3{0, 0, 1})
	assert.InDelta(t, 0, up.X(), 1e-6)
	assert.InDelta(t, 1, up.Y(), 1e-6)
	assert.InDelta(t, 0, up.Z(), 1e-6)
}

func TestDeviceRotationOrder(t *testing.T) {
	s := orientationSample{alpha: deg(30), beta: deg(20), gamma: deg(10)}
	screen := deg(90)

	want := mgl32.QuatRotate(s.alpha, yAxis).
		Mul(mgl32.QuatRotate(s.beta, xAxis)).
		Mul(mgl32.QuatRotate(-s.gamma, zAxis)).
		Mul(portraitCorrection).
		Mul(mgl32.QuatRotate(-screen, zAxis))

	assertQuatNear(t, want, deviceRotation(s, screen))
}

func TestDragRotationOrder(t *testing.T) {
	want := mgl32.QuatRotate(0.4, yAxis).Mul(mgl32.QuatRotate(-0.2, xAxis))
	assertQuatNear(t, want, dragRotation(0.4, -0.2))
}

func TestComposeRotation(t *testing.T) {
	assert.Equal(t, mgl32.QuatIdent(), composeRotation(nil, 0, 0, 0))

	s := &orientationSample{alpha: deg(90)}
	device := deviceRotation(*s, 0)
	drag := dragRotation(-0.3, 0.1)

	got := composeRotation(s, 0, -0.3, 0.1)
	assertQuatNear(t, device.Mul(drag), got)
	assert.InDelta(t, 1, got.Len(), 1e-6)

	// Without a sample only the drag applies, screen angle notwithstanding.
	assertQuatNear(t, drag, composeRotation(nil, deg(90), -0.3, 0.1))
}
