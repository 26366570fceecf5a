package pose

import (
	"context"

	"github.com/go-gl/mathgl/mgl32"
)

// Surface is a presentation surface whose inline styling the controller temporarily
// takes over. Implementations must be comparable (pointer types) because listener
// targets and full-screen membership are matched by identity.
type Surface interface {
	// Style returns the current value of a style property.
	//
	// Parameters:
	//   - name: the style property name (e.g. "position")
	//
	// Returns:
	//   - string: the property value
	//   - bool: false if the property is not set on the surface
	Style(name string) (string, bool)

	// SetStyle sets a style property.
	//
	// Parameters:
	//   - name: the style property name
	//   - value: the value to apply
	SetStyle(name, value string)

	// RemoveStyle clears a style property so it is no longer set on the surface.
	//
	// Parameters:
	//   - name: the style property name
	RemoveStyle(name string)
}

// RotationSink receives the composed camera rotation once per frame.
// The controller never reads the rotation back.
type RotationSink interface {
	// SetRotation replaces the sink's orientation.
	//
	// Parameters:
	//   - q: the unit rotation quaternion
	SetRotation(q mgl32.Quat)
}

// PermissionGate is an asynchronous permission prompt guarding orientation events.
type PermissionGate interface {
	// RequestPermission asks the user or platform for access to orientation data.
	// It blocks until the prompt settles or ctx is done.
	//
	// Parameters:
	//   - ctx: context bounding the request
	//
	// Returns:
	//   - PermissionState: PermissionGranted or PermissionDenied
	//   - error: non-nil if the request itself failed
	RequestPermission(ctx context.Context) (PermissionState, error)
}

// SensorAPI describes what the platform exposes for device orientation.
type SensorAPI struct {
	// Available is false when the platform has no orientation sensor API at all.
	Available bool

	// Gate is the permission prompt, or nil when the API is ungated.
	Gate PermissionGate
}

// Platform abstracts the host environment services the controller depends on.
// Every method except RequestFullscreen, ExitFullscreen and the gate's
// RequestPermission must return promptly.
type Platform interface {
	// AddEventListener registers l for events of kind on target. A nil target means
	// the global (window/document) scope. Adding the same (kind, target, l) twice
	// must not produce duplicate deliveries.
	//
	// Parameters:
	//   - kind: the event kind
	//   - target: the surface the listener is bound to, or nil for global scope
	//   - l: the listener
	AddEventListener(kind EventKind, target Surface, l Listener)

	// RemoveEventListener unregisters a listener previously added with the same
	// (kind, target, l). Removing an unknown registration is a no-op.
	//
	// Parameters:
	//   - kind: the event kind
	//   - target: the surface the listener was bound to, or nil for global scope
	//   - l: the listener
	RemoveEventListener(kind EventKind, target Surface, l Listener)

	// RequestFullscreen asks the platform to present s full-screen.
	//
	// Parameters:
	//   - ctx: context bounding the request
	//   - s: the surface to present
	//
	// Returns:
	//   - error: non-nil if full-screen is unsupported or was refused
	RequestFullscreen(ctx context.Context, s Surface) error

	// ExitFullscreen leaves full-screen mode.
	//
	// Parameters:
	//   - ctx: context bounding the request
	//
	// Returns:
	//   - error: non-nil if the platform refused or failed
	ExitFullscreen(ctx context.Context) error

	// FullscreenElement returns the surface currently presented full-screen, or nil.
	FullscreenElement() Surface

	// OrientationSensor describes the device-orientation API of the platform.
	OrientationSensor() SensorAPI

	// ScreenAngle returns the presentation surface rotation relative to the device
	// body in degrees.
	//
	// Returns:
	//   - float64: the angle in degrees
	//   - bool: false if the platform does not expose it
	ScreenAngle() (float64, bool)

	// LegacyOrientation returns the legacy whole-device orientation angle in degrees.
	//
	// Returns:
	//   - float64: the angle in degrees
	//   - bool: false if the platform does not expose it
	LegacyOrientation() (float64, bool)
}
