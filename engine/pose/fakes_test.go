package pose

import (
	"context"
	"maps"
	"math"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

// testSurface is a map-backed Surface. onChange, when set, runs after every mutation.
type testSurface struct {
	name     string
	styles   map[string]string
	onChange func()
}

func newTestSurface(name string, initial map[string]string) *testSurface {
	s := &testSurface{name: name, styles: map[string]string{}}
	maps.Copy(s.styles, initial)
	return s
}

func (s *testSurface) Style(name string) (string, bool) {
	v, ok := s.styles[name]
	return v, ok
}

func (s *testSurface) SetStyle(name, value string) {
	s.styles[name] = value
	if s.onChange != nil {
		s.onChange()
	}
}

func (s *testSurface) RemoveStyle(name string) {
	delete(s.styles, name)
	if s.onChange != nil {
		s.onChange()
	}
}

func (s *testSurface) snapshot() map[string]string { return maps.Clone(s.styles) }

// fakeGate is a PermissionGate with a scripted answer. When release is non-nil the
// request blocks until it is closed.
type fakeGate struct {
	state   PermissionState
	err     error
	release chan struct{}

	mu    sync.Mutex
	calls int
}

func (g *fakeGate) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func (g *fakeGate) RequestPermission(ctx context.Context) (PermissionState, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	if g.release != nil {
		select {
		case <-g.release:
		case <-ctx.Done():
			return PermissionDenied, ctx.Err()
		}
	}
	return g.state, g.err
}

// fakePlatform is a scriptable Platform backed by a Dispatcher.
type fakePlatform struct {
	Dispatcher

	mu sync.Mutex

	sensor      SensorAPI
	screenAngle *float64
	legacyAngle *float64

	fullscreenErr     error
	exitFullscreenErr error
	fullscreenRelease chan struct{}
	fullscreenElement Surface

	fullscreenRequests int
	fullscreenExits    int

	// onCall, when set, runs at the start of listener, sensor and screen-angle calls.
	onCall func()
}

var _ Platform = &fakePlatform{}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{sensor: SensorAPI{Available: true}}
}

func (p *fakePlatform) hook() {
	if p.onCall != nil {
		p.onCall()
	}
}

func (p *fakePlatform) AddEventListener(kind EventKind, target Surface, l Listener) {
	p.hook()
	p.Dispatcher.Add(kind, target, l)
}

func (p *fakePlatform) RemoveEventListener(kind EventKind, target Surface, l Listener) {
	p.hook()
	p.Dispatcher.Remove(kind, target, l)
}

func (p *fakePlatform) RequestFullscreen(ctx context.Context, s Surface) error {
	p.mu.Lock()
	p.fullscreenRequests++
	release := p.fullscreenRelease
	p.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fullscreenErr != nil {
		return p.fullscreenErr
	}
	p.fullscreenElement = s
	return nil
}

func (p *fakePlatform) ExitFullscreen(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fullscreenExits++
	if p.exitFullscreenErr != nil {
		return p.exitFullscreenErr
	}
	p.fullscreenElement = nil
	return nil
}

func (p *fakePlatform) FullscreenElement() Surface {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fullscreenElement
}

func (p *fakePlatform) OrientationSensor() SensorAPI {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sensor
}

func (p *fakePlatform) setSensor(api SensorAPI) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sensor = api
}

func (p *fakePlatform) ScreenAngle() (float64, bool) {
	p.hook()
	if p.screenAngle == nil {
		return 0, false
	}
	return *p.screenAngle, true
}

func (p *fakePlatform) LegacyOrientation() (float64, bool) {
	if p.legacyAngle == nil {
		return 0, false
	}
	return *p.legacyAngle, true
}

func (p *fakePlatform) counts() (requests, exits int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fullscreenRequests, p.fullscreenExits
}

// recordingSink remembers the last rotation it received.
type recordingSink struct {
	mu    sync.Mutex
	last  mgl32.Quat
	calls int
}

func (s *recordingSink) SetRotation(q mgl32.Quat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = q
	s.calls++
}

func (s *recordingSink) rotation() mgl32.Quat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// testRig bundles a controller with its fakes and a full surface set.
type testRig struct {
	platform *fakePlatform
	sink     *recordingSink
	surfaces Surfaces
	all      []*testSurface
	before   []map[string]string
	layouts  int
	layoutMu sync.Mutex
	ctrl     *controllerImpl
}

func newTestRig(t *testing.T, options ...ControllerOption) *testRig {
	t.Helper()
	root := newTestSurface("root", map[string]string{"position": "relative", "z-index": "1"})
	content := newTestSurface("content", map[string]string{"max-width": "1200px", "margin": "0 auto"})
	toolbar := newTestSurface("toolbar", map[string]string{"display": "flex"})
	bar1 := newTestSurface("bar-1", nil)
	bar2 := newTestSurface("bar-2", map[string]string{"display": "grid"})
	holder := newTestSurface("holder", map[string]string{"border-radius": "12px", "width": "640px"})
	render := newTestSurface("render", map[string]string{"width": "640px", "height": "480px"})

	r := &testRig{
		platform: newFakePlatform(),
		sink:     &recordingSink{},
		surfaces: Surfaces{
			Root:         root,
			Content:      content,
			Toolbar:      toolbar,
			Bars:         []Surface{bar1, bar2},
			CanvasHolder: holder,
			Render:       render,
		},
		all: []*testSurface{root, content, toolbar, bar1, bar2, holder, render},
	}
	for _, s := range r.all {
		r.before = append(r.before, s.snapshot())
	}

	opts := append([]ControllerOption{
		WithSurfaces(r.surfaces),
		WithLayoutChangeCallback(func() {
			r.layoutMu.Lock()
			r.layouts++
			r.layoutMu.Unlock()
		}),
	}, options...)
	r.ctrl = NewController(r.platform, r.sink, opts...).(*controllerImpl)
	return r
}

func (r *testRig) layoutCount() int {
	r.layoutMu.Lock()
	defer r.layoutMu.Unlock()
	return r.layouts
}

func (r *testRig) render() Surface { return r.surfaces.Render }

func (r *testRig) touch(kind EventKind, id int, x, y float64) {
	var target Surface
	if kind == EventPointerDown {
		target = r.render()
	}
	r.platform.Dispatch(target, PointerEvent{Type: kind, ID: id, X: x, Y: y, PointerType: PointerTouch})
}

func (r *testRig) orient(alpha, beta, gamma float64) {
	r.platform.Dispatch(nil, NewOrientationEvent(alpha, beta, gamma))
}

func (r *testRig) assertRestored(t *testing.T) {
	t.Helper()
	for i, s := range r.all {
		assert.Equal(t, r.before[i], s.snapshot(), "surface %s not restored", s.name)
	}
	assert.Zero(t, r.ctrl.styles.depth())
}

func deg(v float64) float32 {
	return float32(v * math.Pi / 180)
}

// assertQuatNear compares rotations, treating q and -q as equal.
func assertQuatNear(t *testing.T, want, got mgl32.Quat, msgAndArgs ...any) {
	t.Helper()
	dot := want.Normalize().Dot(got.Normalize())
	assert.InDelta(t, 1, math.Abs(float64(dot)), 1e-5, msgAndArgs...)
}
