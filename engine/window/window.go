package window

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-pose/engine/pose"
	"github.com/Carmen-Shannon/oxy-pose/engine/surface"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrNotFullscreen is returned by ExitFullscreen when the window is windowed.
	ErrNotFullscreen = errors.New("window: not in full-screen mode")

	// ErrClosed is returned by platform calls made after the message loop stopped.
	ErrClosed = errors.New("window: message loop stopped")
)

// Window is the desktop host for the handheld pose controller. It provides the
// platform services the controller needs (event binding, full-screen, orientation
// capability) on top of a GLFW window, and exposes in-memory presentation surfaces
// for the layout regions an overlay UI draws into.
type Window interface {
	pose.Platform

	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// Surfaces returns the presentation surfaces of this host in takeover roles.
	//
	// Returns:
	//   - pose.Surfaces: the root, content, toolbar, bars, canvas holder and render surfaces
	Surfaces() pose.Surfaces

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The external renderer consumes it; this package never renders.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop on the calling (main) goroutine.
	// Blocks until the window is closed. Calls the update callback each iteration and
	// runs GLFW calls queued by other goroutines (full-screen requests).
	ProcessMessages()

	// Width returns the current window client area width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current window client area height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, event listeners and surfaces.
type engineWindow struct {
	mu *sync.Mutex

	// title is the window title displayed in the title bar.
	title string

	// width is the current window client area width in pixels.
	width int

	// height is the current window client area height in pixels.
	height int

	// touchEmulation reports the left mouse button as a touch pointer so the pose
	// controller accepts mouse drags.
	touchEmulation bool

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// calls carries GLFW work submitted from other goroutines to the message loop.
	calls chan func()

	// loopDone is closed once the message loop has returned.
	loopDone chan struct{}
	loopOnce sync.Once

	// listeners holds every pose listener registration.
	listeners pose.Dispatcher

	root, content, toolbar, canvasHolder, render *surface.Surface
	bars                                         []*surface.Surface

	// fullscreenElement is the surface currently presented full-screen, or nil.
	fullscreenElement pose.Surface

	// onUpdate is called each iteration of the message loop (if set).
	onUpdate func()

	// onResize is called when the window is resized.
	onResize func(width, height int)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
func NewWindow(options ...WindowBuilderOption) Window {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

// newEngineWindow builds the platform-independent part of the window.
func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		mu:             &sync.Mutex{},
		title:          "Oxy Handheld Viewer",
		width:          720,
		height:         1280,
		touchEmulation: true,
		calls:          make(chan func(), 16),
		loopDone:       make(chan struct{}),
		root:           surface.New("root", nil),
		content:        surface.New("content", map[string]string{"max-width": "1200px", "margin": "0 auto"}),
		toolbar:        surface.New("toolbar", map[string]string{"display": "flex", "height": "48px"}),
		bars: []*surface.Surface{
			surface.New("status-bar", map[string]string{"display": "flex"}),
		},
		canvasHolder: surface.New("canvas-holder", map[string]string{"position": "relative"}),
		render:       surface.New("render", nil),
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) Surfaces() pose.Surfaces {
	bars := make([]pose.Surface, len(w.bars))
	for i, b := range w.bars {
		bars[i] = b
	}
	return pose.Surfaces{
		Root:         w.root,
		Content:      w.content,
		Toolbar:      w.toolbar,
		Bars:         bars,
		CanvasHolder: w.canvasHolder,
		Render:       w.render,
	}
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	defer w.loopOnce.Do(func() { close(w.loopDone) })
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}
		w.drainCalls()

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

func (w *engineWindow) Height() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.height
}

// --- pose.Platform implementation ---

func (w *engineWindow) AddEventListener(kind pose.EventKind, target pose.Surface, l pose.Listener) {
	w.listeners.Add(kind, target, l)
}

func (w *engineWindow) RemoveEventListener(kind pose.EventKind, target pose.Surface, l pose.Listener) {
	w.listeners.Remove(kind, target, l)
}

func (w *engineWindow) RequestFullscreen(ctx context.Context, s pose.Surface) error {
	if s == nil || (s != pose.Surface(w.root) && s != pose.Surface(w.render)) {
		return fmt.Errorf("window: surface cannot be presented full-screen")
	}
	err := w.invoke(ctx, func() error {
		if err := platformEnterFullscreen(w); err != nil {
			return err
		}
		w.mu.Lock()
		w.fullscreenElement = s
		w.mu.Unlock()
		return nil
	})
	if err != nil {
		return err
	}
	w.listeners.Dispatch(nil, pose.SignalEvent{Type: pose.EventFullscreenChange})
	return nil
}

func (w *engineWindow) ExitFullscreen(ctx context.Context) error {
	err := w.invoke(ctx, func() error {
		w.mu.Lock()
		fs := w.fullscreenElement
		w.mu.Unlock()
		if fs == nil {
			return ErrNotFullscreen
		}
		if err := platformExitFullscreen(w); err != nil {
			return err
		}
		w.mu.Lock()
		w.fullscreenElement = nil
		w.mu.Unlock()
		return nil
	})
	if err != nil {
		return err
	}
	w.listeners.Dispatch(nil, pose.SignalEvent{Type: pose.EventFullscreenChange})
	return nil
}

func (w *engineWindow) FullscreenElement() pose.Surface {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fullscreenElement
}

// OrientationSensor reports no orientation API: desktops have no device-orientation
// sensor, so the controller falls back to drag-only control.
func (w *engineWindow) OrientationSensor() pose.SensorAPI {
	return pose.SensorAPI{}
}

func (w *engineWindow) ScreenAngle() (float64, bool) {
	return 0, false
}

func (w *engineWindow) LegacyOrientation() (float64, bool) {
	return 0, false
}

// --- event forwarding from the platform layer ---

const mousePointerID = 1

func (w *engineWindow) pointerType() pose.PointerType {
	if w.touchEmulation {
		return pose.PointerTouch
	}
	return pose.PointerMouse
}

// pointerEvent forwards a primary-button pointer event. Pointer-down is targeted at
// the render surface; move/up/cancel are global.
func (w *engineWindow) pointerEvent(kind pose.EventKind, x, y float64) {
	var target pose.Surface
	if kind == pose.EventPointerDown {
		target = w.render
	}
	w.listeners.Dispatch(target, pose.PointerEvent{
		Type:        kind,
		ID:          mousePointerID,
		X:           x,
		Y:           y,
		PointerType: w.pointerType(),
	})
}

// resized records the new framebuffer size and emits an orientation-change signal
// when the window flips between portrait and landscape.
func (w *engineWindow) resized(width, height int) {
	w.mu.Lock()
	wasPortrait := w.height >= w.width
	w.width = width
	w.height = height
	isPortrait := height >= width
	w.mu.Unlock()

	if w.onResize != nil {
		w.onResize(width, height)
	}
	if wasPortrait != isPortrait {
		w.listeners.Dispatch(nil, pose.SignalEvent{Type: pose.EventOrientationChange})
	}
}

const (
	callPending int32 = iota
	callRunning
	callAbandoned
)

// invoke runs fn on the message loop goroutine and waits for its result. It must not
// be called from the message loop itself. A call abandoned because ctx ended or the
// loop stopped never runs; once fn has started, invoke waits for it so the caller
// always learns its outcome.
func (w *engineWindow) invoke(ctx context.Context, fn func() error) error {
	var state atomic.Int32
	done := make(chan error, 1)
	call := func() {
		if !state.CompareAndSwap(callPending, callRunning) {
			return
		}
		done <- fn()
	}

	select {
	case w.calls <- call:
	case <-w.loopDone:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	var err error
	select {
	case err = <-done:
		return err
	case <-w.loopDone:
		err = ErrClosed
	case <-ctx.Done():
		err = ctx.Err()
	}
	if state.CompareAndSwap(callPending, callAbandoned) {
		return err
	}
	return <-done
}

// drainCalls runs every queued GLFW call without blocking.
func (w *engineWindow) drainCalls() {
	for {
		select {
		case call := <-w.calls:
			call()
		default:
			return
		}
	}
}

func logf(format string, args ...any) {
	log.Printf("[Window] "+format, args...)
}
