package pose

import (
	"github.com/Carmen-Shannon/oxy-pose/common"
	"github.com/go-gl/mathgl/mgl32"
)

// HandleEvent implements Listener. Every event is ignored while inactive.
func (c *controllerImpl) HandleEvent(ev Event) {
	var angle float32
	switch ev.(type) {
	case OrientationEvent, SignalEvent:
		angle = c.readScreenAngle()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return
	}

	switch e := ev.(type) {
	case PointerEvent:
		switch e.Type {
		case EventPointerDown:
			c.pointerDown(e)
		case EventPointerMove:
			c.pointerMove(e)
		case EventPointerUp, EventPointerCancel:
			c.pointerUp(e)
		}
	case OrientationEvent:
		c.deviceOrientation(e, angle)
	case SignalEvent:
		if e.Type == EventOrientationChange || e.Type == EventFullscreenChange {
			c.screenAngle = angle
		}
	}
}

// pointerDown takes the exclusivity token for a touch pointer if nobody holds it.
// Caller must hold the mutex.
func (c *controllerImpl) pointerDown(e PointerEvent) {
	if e.PointerType != PointerTouch || c.pointer != nil {
		return
	}
	c.pointer = &pointerToken{id: e.ID, x: e.X, y: e.Y}
}

// pointerMove integrates drag deltas for the token holder.
// Caller must hold the mutex.
func (c *controllerImpl) pointerMove(e PointerEvent) {
	if c.pointer == nil || c.pointer.id != e.ID {
		return
	}
	dx := float32(e.X - c.pointer.x)
	dy := float32(e.Y - c.pointer.y)
	c.yaw -= dx * c.sensitivity
	c.pitch = common.Clamp(c.pitch-dy*c.sensitivity, -c.pitchLimit, c.pitchLimit)
	c.pointer.x = e.X
	c.pointer.y = e.Y
	c.stats.DragMoves++
}

// pointerUp releases the token if e's pointer holds it.
// Caller must hold the mutex.
func (c *controllerImpl) pointerUp(e PointerEvent) {
	if c.pointer != nil && c.pointer.id == e.ID {
		c.pointer = nil
	}
}

// deviceOrientation stores a well-formed sample in radians along with the screen
// angle read for it. Malformed events leave all state untouched.
// Caller must hold the mutex.
func (c *controllerImpl) deviceOrientation(e OrientationEvent, screenAngle float32) {
	alpha, beta, gamma, ok := e.Angles()
	if !ok {
		c.stats.SamplesDropped++
		return
	}
	c.sample = &orientationSample{
		alpha: mgl32.DegToRad(float32(alpha)),
		beta:  mgl32.DegToRad(float32(beta)),
		gamma: mgl32.DegToRad(float32(gamma)),
	}
	c.screenAngle = screenAngle
	c.stats.SamplesAccepted++
}
