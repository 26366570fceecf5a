package engine

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-pose/engine/camera"
	"github.com/Carmen-Shannon/oxy-pose/engine/pose"
	"github.com/Carmen-Shannon/oxy-pose/engine/profiler"
)

// exitTimeout bounds the session teardown performed when the loop stops.
const exitTimeout = 2 * time.Second

// Host is the message loop the engine drives. window.Window satisfies it.
type Host interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the host surface is resized.
	SetResizeCallback(callback func(width, height int))

	// ProcessMessages runs the message loop until the host closes.
	ProcessMessages()

	// Close releases the host. Called from the loop goroutine.
	Close() error
}

// UniformSink receives the camera uniform once per frame. gpu.PoseUploader
// satisfies it.
type UniformSink interface {
	// Upload hands over this frame's uniform and reports whether it was written.
	Upload(u camera.PoseUniform) bool
}

// engine implements the Engine interface.
// Drives the per-frame pose query from the host's message loop.
type engine struct {
	host Host
	ctrl pose.Controller
	cam  camera.Camera

	quitRequested atomic.Bool
	quitOnce      sync.Once
	closed        bool

	profiler         *profiler.Profiler
	profilingEnabled bool

	uniformSink   UniformSink
	frameCallback func(deltaTime float32)
	frameLimit    time.Duration // minimum frame duration; 0 = uncapped
	lastFrame     time.Time
	now           func() time.Time
	sleep         func(time.Duration)
}

// Engine is the per-frame driver of the handheld pose controller.
// Each host loop iteration it queries the controller once, updates the camera
// matrices and invokes the frame callback.
type Engine interface {
	// Controller returns the pose controller.
	Controller() pose.Controller

	// Camera returns the camera the controller steers.
	Camera() camera.Camera

	// EnableProfiler enables pose-query cadence output to the log.
	EnableProfiler()

	// DisableProfiler disables profiling output.
	DisableProfiler()

	// SetFrameCallback registers the function called each frame after the camera update.
	// Use this to hand the camera to the external renderer.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetFrameCallback(callback func(deltaTime float32))

	// SetFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetFrameLimit(fps float64)

	// EnterHandheld starts a handheld session without blocking the message loop.
	// The returned channel is closed once the controller's Enter has settled.
	//
	// Parameters:
	//   - ctx: context bounding full-screen and permission negotiation
	//
	// Returns:
	//   - <-chan struct{}: closed when the session is fully entered
	EnterHandheld(ctx context.Context) <-chan struct{}

	// ExitHandheld ends the handheld session without blocking the message loop.
	// The returned channel is closed once the controller's Exit has returned.
	//
	// Parameters:
	//   - ctx: context bounding the exit full-screen request
	//
	// Returns:
	//   - <-chan struct{}: closed when the session is fully exited
	ExitHandheld(ctx context.Context) <-chan struct{}

	// Run drives the host loop (blocks until the host closes or Quit is called) and
	// ends any active session afterwards.
	Run()

	// Quit asks the loop to stop at the next frame.
	// Safe to call multiple times and from any goroutine.
	Quit()
}

// NewEngine creates an Engine around a host loop, a pose controller and its camera.
// All three are required and NewEngine panics if any of them is nil.
//
// Parameters:
//   - host: the message loop to drive
//   - ctrl: the pose controller queried once per frame
//   - cam: the camera steered by ctrl
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(host Host, ctrl pose.Controller, cam camera.Camera, options ...EngineBuilderOption) Engine {
	if host == nil {
		panic("engine: NewEngine requires a non-nil Host")
	}
	if ctrl == nil {
		panic("engine: NewEngine requires a non-nil Controller")
	}
	if cam == nil {
		panic("engine: NewEngine requires a non-nil Camera")
	}

	e := &engine{
		host:     host,
		ctrl:     ctrl,
		cam:      cam,
		profiler: profiler.NewProfiler(),
		now:      time.Now,
		sleep:    time.Sleep,
	}
	for _, opt := range options {
		opt(e)
	}

	host.SetResizeCallback(func(width, height int) {
		if height > 0 {
			e.cam.SetAspect(float32(width) / float32(height))
		}
	})
	host.SetUpdateCallback(e.frame)
	return e
}

func (e *engine) Controller() pose.Controller {
	return e.ctrl
}

func (e *engine) Camera() camera.Camera {
	return e.cam
}

// EnableProfiler enables pose-query cadence output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetFrameCallback(callback func(deltaTime float32)) {
	e.frameCallback = callback
}

func (e *engine) SetFrameLimit(fps float64) {
	if fps <= 0 {
		e.frameLimit = 0
		return
	}
	e.frameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) EnterHandheld(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		e.ctrl.Enter(ctx)
		log.Printf("[Engine] handheld session entered (permission: %s)", e.ctrl.Permission())
	}()
	return done
}

func (e *engine) ExitHandheld(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		e.ctrl.Exit(ctx)
		log.Printf("[Engine] handheld session exited")
	}()
	return done
}

func (e *engine) Run() {
	e.lastFrame = e.now()
	e.host.ProcessMessages()

	// The loop is gone, so platform calls that need it fail fast and the session
	// still restores its layout.
	ctx, cancel := context.WithTimeout(context.Background(), exitTimeout)
	defer cancel()
	e.ctrl.Exit(ctx)

	if !e.closed {
		e.closed = true
		if err := e.host.Close(); err != nil {
			log.Printf("[Engine] host close failed: %v", err)
		}
	}
}

// Quit asks the loop to stop at the next frame.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		e.quitRequested.Store(true)
	})
}

// frame is the host update callback: one pose query, one camera update and one
// frame callback per loop iteration.
func (e *engine) frame() {
	if e.quitRequested.Load() {
		if !e.closed {
			e.closed = true
			if err := e.host.Close(); err != nil {
				log.Printf("[Engine] host close failed: %v", err)
			}
		}
		return
	}

	start := e.now()
	dt := float32(start.Sub(e.lastFrame).Seconds())
	e.lastFrame = start

	e.ctrl.UpdateCamera()
	e.cam.Update()
	if e.uniformSink != nil {
		e.uniformSink.Upload(e.cam.Uniform())
	}

	if e.frameCallback != nil {
		e.frameCallback(dt)
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick(e.ctrl.Stats())
	}

	if e.frameLimit > 0 {
		if remaining := e.frameLimit - e.now().Sub(start); remaining > 0 {
			e.sleep(remaining)
		}
	}
}
