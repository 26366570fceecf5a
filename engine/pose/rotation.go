package pose

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// portraitCorrection rotates -90° about X so the sensor's screen-up rest pose looks
// down the application's forward axis.
var portraitCorrection = mgl32.Quat{
	W: float32(math.Sqrt(0.5)),
	V: mgl32.Vec3{-float32(math.Sqrt(0.5)), 0, 0},
}

var zAxis = mgl32.Vec3{0, 0, 1}

// orientationSample is the latest trusted sensor reading in radians.
type orientationSample struct {
	alpha float32
	beta  float32
	gamma float32
}

// deviceRotation converts a sensor sample into a camera rotation. The Euler angles are
// applied heading first (Y), tilt second (X), roll third (Z), then the portrait
// correction, then the screen-rotation compensation about the device normal.
func deviceRotation(s orientationSample, screenAngle float32) mgl32.Quat {
	q := mgl32.AnglesToQuat(s.alpha, s.beta, -s.gamma, mgl32.YXZ)
	q = q.Mul(portraitCorrection)
	q = q.Mul(mgl32.QuatRotate(-screenAngle, zAxis))
	return q
}

// dragRotation builds the manual override rotation in the same Y, X, Z order.
func dragRotation(yaw, pitch float32) mgl32.Quat {
	return mgl32.AnglesToQuat(yaw, pitch, 0, mgl32.YXZ)
}

// composeRotation layers the drag rotation on top of the device rotation. A nil
// sample yields the drag rotation alone.
func composeRotation(sample *orientationSample, screenAngle, yaw, pitch float32) mgl32.Quat {
	device := mgl32.QuatIdent()
	if sample != nil {
		device = deviceRotation(*sample, screenAngle)
	}
	return device.Mul(dragRotation(yaw, pitch)).Normalize()
}
