package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-pose/engine/camera"
)

func TestUploadSkipsUnchangedPose(t *testing.T) {
	var writes [][]byte
	u := newPoseUploader(func(data []byte) {
		writes = append(writes, append([]byte(nil), data...))
	}, nil)

	cam := camera.NewCamera()
	assert.True(t, u.Upload(cam.Uniform()))
	assert.False(t, u.Upload(cam.Uniform()))

	cam.SetPosition(0, 1, 0)
	assert.True(t, u.Upload(cam.Uniform()))

	require.Len(t, writes, 2)
	assert.Len(t, writes[0], camera.PoseUniformSize)
	assert.Equal(t, cam.Uniform().Bytes(), writes[1])
	assert.Equal(t, 2, u.Uploads())
}

func TestReleaseStopsUploads(t *testing.T) {
	released := 0
	writes := 0
	u := newPoseUploader(func([]byte) { writes++ }, func() { released++ })

	u.Release()
	u.Release()
	assert.Equal(t, 1, released)
	assert.False(t, u.Upload(camera.NewCamera().Uniform()))
	assert.Zero(t, writes)
	assert.Nil(t, u.Buffer())
}

func TestNewPoseUploaderRejectsNilDescriptor(t *testing.T) {
	_, err := NewPoseUploader(nil)
	assert.Error(t, err)
}
