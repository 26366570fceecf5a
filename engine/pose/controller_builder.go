package pose

import "math"

const (
	// DefaultSensitivity is the drag-to-radians factor applied per pixel.
	DefaultSensitivity float32 = 0.003

	// DefaultPitchLimit bounds the manual pitch symmetrically, in radians.
	DefaultPitchLimit float32 = 1.35
)

// ControllerOption is a functional option for configuring a Controller.
type ControllerOption func(*controllerImpl)

// WithSensitivity sets the drag sensitivity. Non-positive and non-finite values are
// ignored.
//
// Parameters:
//   - k: radians per pixel of pointer movement
//
// Returns:
//   - ControllerOption: functional option to set the sensitivity
func WithSensitivity(k float32) ControllerOption {
	return func(c *controllerImpl) {
		if positiveFinite(k) {
			c.sensitivity = k
		}
	}
}

// WithPitchLimit sets the symmetric manual pitch bound. Non-positive and non-finite
// values are ignored.
//
// Parameters:
//   - limit: maximum absolute pitch in radians
//
// Returns:
//   - ControllerOption: functional option to set the pitch limit
func WithPitchLimit(limit float32) ControllerOption {
	return func(c *controllerImpl) {
		if positiveFinite(limit) {
			c.pitchLimit = limit
		}
	}
}

// WithSurfaces sets the presentation surfaces taken over during a session.
// Surfaces.Render is also the pointer-down binding target.
//
// Parameters:
//   - surfaces: the surfaces to restyle
//
// Returns:
//   - ControllerOption: functional option to set the surfaces
func WithSurfaces(surfaces Surfaces) ControllerOption {
	return func(c *controllerImpl) {
		c.surfaces = surfaces
	}
}

// WithLayoutChangeCallback sets the function invoked whenever the controller changes
// the presentation layout: on activation, after negotiation settles, and on exit.
//
// Parameters:
//   - callback: function to call (or nil to disable)
//
// Returns:
//   - ControllerOption: functional option to set the callback
func WithLayoutChangeCallback(callback func()) ControllerOption {
	return func(c *controllerImpl) {
		c.onLayoutChange = callback
	}
}

// WithFullscreen enables or disables the full-screen request made by Enter.
//
// Parameters:
//   - enabled: false to keep the fixed overlay without asking for full-screen
//
// Returns:
//   - ControllerOption: functional option to toggle full-screen
func WithFullscreen(enabled bool) ControllerOption {
	return func(c *controllerImpl) {
		c.requestFullscreen = enabled
	}
}

// WithTakeoverStyle replaces the styling applied to surfaces of the given role.
//
// Parameters:
//   - role: the surface role
//   - props: style assignments, applied in order
//
// Returns:
//   - ControllerOption: functional option to set the takeover style
func WithTakeoverStyle(role SurfaceRole, props []StyleProperty) ControllerOption {
	return func(c *controllerImpl) {
		c.takeover[role] = append([]StyleProperty(nil), props...)
	}
}

func positiveFinite(v float32) bool {
	return v > 0 && !math.IsInf(float64(v), 1)
}
