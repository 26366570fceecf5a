package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// PerspectiveZO returns a right-handed perspective projection whose depth maps to the
// WebGPU clip range [0, 1]. mgl32.Perspective targets the OpenGL range [-1, 1].
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func PerspectiveZO(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1 / float32(math.Tan(float64(fovY)/2))
	depth := 1 / (near - far)
	return mgl32.Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, far * depth, -1,
		0, 0, near * far * depth, 0,
	}
}

// RigidInverse returns the inverse of the rigid transform T(position) * R(rotation),
// which is R^T * T(-position). rotation must be a unit quaternion.
//
// Parameters:
//   - position: translation in world space
//   - rotation: unit orientation quaternion
//
// Returns:
//   - mgl32.Mat4: the inverse transform, e.g. a camera view matrix
func RigidInverse(position mgl32.Vec3, rotation mgl32.Quat) mgl32.Mat4 {
	return rotation.Mat4().Transpose().Mul4(mgl32.Translate3D(-position[0], -position[1], -position[2]))
}
