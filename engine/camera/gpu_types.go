package camera

import (
	"encoding/binary"
	"math"
)

// PoseUniformSize is the byte size of PoseUniform as laid out in WGSL.
const PoseUniformSize = 96

// PoseUniformSource is the WGSL struct matching PoseUniform.
const PoseUniformSource = `struct PoseUniform {
    view_proj: mat4x4<f32>,
    orientation: vec4<f32>,
    position: vec3<f32>,
    fov_y: f32,
};
`

// PoseUniform is the per-frame camera state handed to a GPU renderer. Orientation is
// the camera quaternion as (x, y, z, w) so shaders can rebuild view rays without
// decomposing the matrix; fov_y packs into the tail of the position vec3.
type PoseUniform struct {
	ViewProj    [16]float32
	Orientation [4]float32
	Position    [3]float32
	FovY        float32
}

// AppendTo appends the little-endian WGSL encoding of u to buf.
//
// Parameters:
//   - buf: destination slice (may be nil)
//
// Returns:
//   - []byte: buf extended by PoseUniformSize bytes
func (u PoseUniform) AppendTo(buf []byte) []byte {
	put := func(v float32) {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	for _, v := range u.ViewProj {
		put(v)
	}
	for _, v := range u.Orientation {
		put(v)
	}
	for _, v := range u.Position {
		put(v)
	}
	put(u.FovY)
	return buf
}

// Bytes returns the WGSL encoding of u.
func (u PoseUniform) Bytes() []byte {
	return u.AppendTo(make([]byte, 0, PoseUniformSize))
}
