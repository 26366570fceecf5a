// Package gpu owns the WebGPU device that receives the camera pose each frame. It
// creates no pipelines and never draws; a renderer binds the uniform buffer it
// exposes.
package gpu

import (
	"bytes"
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-pose/engine/camera"
)

// PoseUploader keeps a GPU uniform buffer in sync with the camera pose.
type PoseUploader interface {
	// Upload writes the uniform to the GPU buffer when it differs from the last
	// upload.
	//
	// Parameters:
	//   - u: the camera uniform for this frame
	//
	// Returns:
	//   - bool: true if a write was issued
	Upload(u camera.PoseUniform) bool

	// Uploads returns how many writes have been issued.
	Uploads() int

	// Buffer returns the uniform buffer for bind-group creation, or nil when the
	// uploader was built without a device.
	Buffer() *wgpu.Buffer

	// Release frees every GPU object owned by the uploader.
	Release()
}

type poseUploaderImpl struct {
	mu *sync.Mutex

	write   func(data []byte)
	release func()
	buffer  *wgpu.Buffer

	last    []byte
	scratch []byte
	uploads int
}

var _ PoseUploader = &poseUploaderImpl{}

// NewPoseUploader creates a WebGPU instance, surface, adapter and device for the
// given surface and allocates the pose uniform buffer.
//
// Parameters:
//   - descriptor: the host surface descriptor (window.Window.SurfaceDescriptor)
//   - options: functional options to configure the uploader
//
// Returns:
//   - PoseUploader: the uploader
//   - error: error if no adapter or device is available or the buffer cannot be created
func NewPoseUploader(descriptor *wgpu.SurfaceDescriptor, options ...PoseUploaderOption) (PoseUploader, error) {
	if descriptor == nil {
		return nil, fmt.Errorf("gpu: surface descriptor is nil")
	}
	cfg := uploaderConfig{label: "Pose Uniform"}
	for _, opt := range options {
		opt(&cfg)
	}

	runtime.LockOSThread()
	instance := wgpu.CreateInstance(nil)
	surface := instance.CreateSurface(descriptor)

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: cfg.forceFallbackAdapter,
		CompatibleSurface:    surface,
	})
	if err != nil {
		surface.Release()
		instance.Release()
		return nil, fmt.Errorf("gpu: request adapter: %w", err)
	}

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: cfg.label + " Device"})
	if err != nil {
		adapter.Release()
		surface.Release()
		instance.Release()
		return nil, fmt.Errorf("gpu: request device: %w", err)
	}
	queue := device.GetQueue()

	buffer, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            cfg.label + " Buffer",
		Size:             camera.PoseUniformSize,
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		queue.Release()
		device.Release()
		adapter.Release()
		surface.Release()
		instance.Release()
		return nil, fmt.Errorf("gpu: create pose buffer: %w", err)
	}

	u := newPoseUploader(func(data []byte) {
		queue.WriteBuffer(buffer, 0, data)
	}, func() {
		buffer.Release()
		queue.Release()
		device.Release()
		adapter.Release()
		surface.Release()
		instance.Release()
	})
	u.buffer = buffer
	return u, nil
}

// newPoseUploader builds an uploader around a raw write function.
func newPoseUploader(write func(data []byte), release func()) *poseUploaderImpl {
	return &poseUploaderImpl{
		mu:      &sync.Mutex{},
		write:   write,
		release: release,
		scratch: make([]byte, 0, camera.PoseUniformSize),
	}
}

func (p *poseUploaderImpl) Upload(u camera.PoseUniform) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.write == nil {
		return false
	}

	p.scratch = u.AppendTo(p.scratch[:0])
	if bytes.Equal(p.scratch, p.last) {
		return false
	}
	p.write(p.scratch)
	p.last = append(p.last[:0], p.scratch...)
	p.uploads++
	return true
}

func (p *poseUploaderImpl) Uploads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.uploads
}

func (p *poseUploaderImpl) Buffer() *wgpu.Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buffer
}

// Release frees the GPU objects. Uploads after Release are ignored.
func (p *poseUploaderImpl) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.release != nil {
		p.release()
		p.release = nil
	}
	p.write = nil
	p.buffer = nil
}
