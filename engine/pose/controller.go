package pose

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/go-gl/mathgl/mgl32"
)

// Controller is the handheld fallback pose controller. It turns a handheld device
// into a substitute camera by fusing the device orientation sensor with a manual
// touch drag, and takes over the presentation surfaces for the session.
type Controller interface {
	// Enter starts a session. Styles are captured and replaced, listeners bound, and
	// full-screen plus orientation permission are negotiated concurrently. Enter
	// returns once both negotiations have settled, whatever their outcome.
	// Calling Enter while a session is active is a no-op.
	//
	// Parameters:
	//   - ctx: context bounding the full-screen and permission requests
	Enter(ctx context.Context)

	// Exit ends the session, unbinds listeners, restores every captured style in
	// reverse order, resets the rotation to identity and leaves full-screen if this
	// controller's surface holds it. Calling Exit while inactive is a no-op.
	//
	// Parameters:
	//   - ctx: context bounding the exit full-screen request
	Exit(ctx context.Context)

	// UpdateCamera composes the current rotation and pushes it to the sink.
	// Call once per rendered frame. No-op while inactive.
	UpdateCamera()

	// IsActive reports whether a session is in progress.
	IsActive() bool

	// Permission returns the negotiated orientation permission.
	Permission() PermissionState

	// Yaw returns the accumulated manual yaw in radians.
	Yaw() float32

	// Pitch returns the accumulated manual pitch in radians.
	Pitch() float32

	// Rotation returns the rotation produced by the last UpdateCamera call.
	Rotation() mgl32.Quat

	// Stats returns a snapshot of the controller counters.
	Stats() Stats
}

// Stats counts controller activity since construction.
type Stats struct {
	Active          bool
	Permission      PermissionState
	Sessions        uint64
	SamplesAccepted uint64
	SamplesDropped  uint64
	DragMoves       uint64
}

type pointerToken struct {
	id   int
	x, y float64
}

// controllerImpl is the single implementation of Controller. It registers itself as
// the Listener for every bound event so handler identity is stable across sessions.
type controllerImpl struct {
	mu *sync.Mutex

	// transition serialises Enter setup and Exit teardown. Surface and listener
	// calls run under it, never under mu, so they may query the controller.
	transition *sync.Mutex

	platform Platform
	sink     RotationSink
	surfaces Surfaces
	takeover map[SurfaceRole][]StyleProperty

	onLayoutChange    func()
	requestFullscreen bool

	sensitivity float32
	pitchLimit  float32

	active     bool
	session    uint64
	permission PermissionState

	sample      *orientationSample
	screenAngle float32

	yaw     float32
	pitch   float32
	pointer *pointerToken

	rotation mgl32.Quat
	styles   styleStack

	fullscreenTarget Surface

	stats Stats
}

// Compile-time interface compliance checks
var (
	_ Controller = &controllerImpl{}
	_ Listener   = &controllerImpl{}
)

// NewController creates a pose controller bound to a platform and a rotation sink.
// Both are required and NewController panics if either is nil.
//
// Parameters:
//   - platform: the host environment services
//   - sink: the camera receiving the composed rotation
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created, inactive controller
func NewController(platform Platform, sink RotationSink, options ...ControllerOption) Controller {
	if platform == nil {
		panic("pose: NewController requires a non-nil Platform")
	}
	if sink == nil {
		panic("pose: NewController requires a non-nil RotationSink")
	}

	c := &controllerImpl{
		mu:                &sync.Mutex{},
		transition:        &sync.Mutex{},
		platform:          platform,
		sink:              sink,
		takeover:          defaultTakeover(),
		requestFullscreen: true,
		sensitivity:       DefaultSensitivity,
		pitchLimit:        DefaultPitchLimit,
		rotation:          mgl32.QuatIdent(),
	}

	for _, option := range options {
		option(c)
	}
	return c
}

func (c *controllerImpl) Enter(ctx context.Context) {
	c.transition.Lock()
	c.mu.Lock()
	if c.active {
		c.mu.Unlock()
		c.transition.Unlock()
		return
	}
	c.active = true
	c.session++
	c.stats.Sessions++
	session := c.session
	surfaces := c.surfaces.ordered()
	takeover := c.takeover
	render := c.surfaces.Render

	var target Surface
	if c.requestFullscreen {
		target = c.surfaces.Root
		if target == nil {
			target = render
		}
	}
	c.fullscreenTarget = target
	c.mu.Unlock()

	var styles styleStack
	for _, rs := range surfaces {
		styles.apply(rs.surface, takeover[rs.role])
	}
	angle := c.readScreenAngle()
	c.bindListeners(render)

	c.mu.Lock()
	c.styles = styles
	c.screenAngle = angle
	c.mu.Unlock()
	c.transition.Unlock()

	c.notifyLayoutChange()

	permission, fullscreenErr := c.negotiate(ctx, target)

	c.mu.Lock()
	if !c.active || c.session != session {
		stale := !c.active
		c.mu.Unlock()
		// The session ended while the requests were pending; a late full-screen
		// grant must not outlive it.
		if stale && target != nil && fullscreenErr == nil && c.platform.FullscreenElement() == target {
			if err := c.platform.ExitFullscreen(ctx); err != nil {
				log.Printf("[Pose] releasing stale full-screen failed: %v", err)
			}
		}
		return
	}
	c.permission = permission
	c.mu.Unlock()

	c.notifyLayoutChange()
}

// negotiate runs the full-screen request and the permission request concurrently and
// waits for both to settle. Neither failure cancels the other. Each call gets its own
// pool so requests still pending from an ended session never delay a new one.
func (c *controllerImpl) negotiate(ctx context.Context, target Surface) (permission PermissionState, fullscreenErr error) {
	pool := worker.NewDynamicWorkerPool(2, 2, 1*time.Second)
	defer pool.Stop()

	var wg sync.WaitGroup
	wg.Add(2)
	pool.SubmitTask(worker.Task{
		ID: 0,
		Do: func() (any, error) {
			defer wg.Done()
			if target == nil {
				return nil, nil
			}
			if err := c.platform.RequestFullscreen(ctx, target); err != nil {
				log.Printf("[Pose] full-screen request failed, continuing with fixed overlay: %v", err)
				fullscreenErr = err
			}
			return nil, nil
		},
	})
	pool.SubmitTask(worker.Task{
		ID: 1,
		Do: func() (any, error) {
			defer wg.Done()
			permission = negotiatePermission(ctx, c.platform.OrientationSensor())
			return nil, nil
		},
	})
	wg.Wait()

	return permission, fullscreenErr
}

func (c *controllerImpl) Exit(ctx context.Context) {
	c.transition.Lock()
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		c.transition.Unlock()
		return
	}
	c.active = false
	styles := c.styles
	c.styles = styleStack{}
	c.sample = nil
	c.pointer = nil
	c.yaw = 0
	c.pitch = 0
	c.rotation = mgl32.QuatIdent()
	target := c.fullscreenTarget
	c.fullscreenTarget = nil
	render := c.surfaces.Render
	c.mu.Unlock()

	c.unbindListeners(render)
	styles.restore()
	c.transition.Unlock()

	c.sink.SetRotation(mgl32.QuatIdent())
	c.notifyLayoutChange()

	fs := c.platform.FullscreenElement()
	if fs == nil || (fs != target && fs != render) {
		return
	}
	if err := c.platform.ExitFullscreen(ctx); err != nil {
		log.Printf("[Pose] exit full-screen failed, inline layout already restored: %v", err)
	}
}

func (c *controllerImpl) UpdateCamera() {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return
	}
	sample := c.sample
	if c.permission == PermissionDenied {
		sample = nil
	}
	c.rotation = composeRotation(sample, c.screenAngle, c.yaw, c.pitch)
	q := c.rotation
	c.mu.Unlock()

	c.sink.SetRotation(q)
}

func (c *controllerImpl) IsActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

func (c *controllerImpl) Permission() PermissionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.permission
}

func (c *controllerImpl) Yaw() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.yaw
}

func (c *controllerImpl) Pitch() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pitch
}

func (c *controllerImpl) Rotation() mgl32.Quat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotation
}

func (c *controllerImpl) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Active = c.active
	s.Permission = c.permission
	return s
}

// --- internal helpers ---

// globalEvents are bound with a nil target.
var globalEvents = [...]EventKind{
	EventPointerMove,
	EventPointerUp,
	EventPointerCancel,
	EventDeviceOrientation,
	EventOrientationChange,
	EventFullscreenChange,
}

// bindListeners registers the controller for every session event.
// Caller must hold transition, not mu.
func (c *controllerImpl) bindListeners(render Surface) {
	c.platform.AddEventListener(EventPointerDown, render, c)
	for _, kind := range globalEvents {
		c.platform.AddEventListener(kind, nil, c)
	}
}

// unbindListeners removes every registration made by bindListeners.
// Caller must hold transition, not mu.
func (c *controllerImpl) unbindListeners(render Surface) {
	c.platform.RemoveEventListener(EventPointerDown, render, c)
	for _, kind := range globalEvents {
		c.platform.RemoveEventListener(kind, nil, c)
	}
}

// readScreenAngle returns the presentation rotation in radians, preferring the
// screen angle, then the legacy device orientation, then zero.
// Must not be called with mu held.
func (c *controllerImpl) readScreenAngle() float32 {
	deg, ok := c.platform.ScreenAngle()
	if !ok {
		deg, ok = c.platform.LegacyOrientation()
	}
	if !ok {
		deg = 0
	}
	return mgl32.DegToRad(float32(deg))
}

func (c *controllerImpl) notifyLayoutChange() {
	if c.onLayoutChange != nil {
		c.onLayoutChange()
	}
}
