package pose

import "math"

// EventKind identifies the kind of a platform event.
type EventKind int

const (
	EventPointerDown EventKind = iota
	EventPointerMove
	EventPointerUp
	EventPointerCancel
	EventDeviceOrientation
	EventOrientationChange
	EventFullscreenChange
)

var eventKindNames = [...]string{
	EventPointerDown:       "pointerdown",
	EventPointerMove:       "pointermove",
	EventPointerUp:         "pointerup",
	EventPointerCancel:     "pointercancel",
	EventDeviceOrientation: "deviceorientation",
	EventOrientationChange: "orientationchange",
	EventFullscreenChange:  "fullscreenchange",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return "unknown"
	}
	return eventKindNames[k]
}

// PointerType is the input class that produced a pointer event.
type PointerType int

const (
	PointerMouse PointerType = iota
	PointerPen
	PointerTouch
)

// Event is any event delivered to a Listener.
type Event interface {
	// Kind returns the event kind.
	Kind() EventKind
}

// Listener receives platform events. Listeners are registered and removed by
// identity, so implementations should be pointer types.
type Listener interface {
	// HandleEvent processes one event.
	//
	// Parameters:
	//   - ev: the event
	HandleEvent(ev Event)
}

// PointerEvent is a pointer down/move/up/cancel event in client coordinates.
type PointerEvent struct {
	Type        EventKind
	ID          int
	X, Y        float64
	PointerType PointerType
}

func (e PointerEvent) Kind() EventKind { return e.Type }

// OrientationEvent is a device-orientation reading in degrees. A nil field means the
// platform delivered no value for that angle.
type OrientationEvent struct {
	Alpha *float64 // heading around the vertical axis
	Beta  *float64 // front-back tilt
	Gamma *float64 // left-right roll
}

func (e OrientationEvent) Kind() EventKind { return EventDeviceOrientation }

// Angles returns the three angles if all are finite numbers.
//
// Returns:
//   - alpha, beta, gamma: the angles in degrees
//   - ok: false if any angle is missing, NaN or infinite
func (e OrientationEvent) Angles() (alpha, beta, gamma float64, ok bool) {
	for _, v := range [...]*float64{e.Alpha, e.Beta, e.Gamma} {
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			return 0, 0, 0, false
		}
	}
	return *e.Alpha, *e.Beta, *e.Gamma, true
}

// NewOrientationEvent builds a well-formed orientation event from degrees.
func NewOrientationEvent(alpha, beta, gamma float64) OrientationEvent {
	return OrientationEvent{Alpha: &alpha, Beta: &beta, Gamma: &gamma}
}

// SignalEvent carries no payload; used for orientation-change and full-screen-change.
type SignalEvent struct {
	Type EventKind
}

func (e SignalEvent) Kind() EventKind { return e.Type }
