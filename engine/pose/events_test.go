package pose

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrientationEventAngles(t *testing.T) {
	a, b, g, ok := NewOrientationEvent(90, -45, 10).Angles()
	assert.True(t, ok)
	assert.Equal(t, []float64{90, -45, 10}, []float64{a, b, g})

	alpha := 1.0
	_, _, _, ok = OrientationEvent{Alpha: &alpha}.Angles()
	assert.False(t, ok)

	_, _, _, ok = NewOrientationEvent(0, math.NaN(), 0).Angles()
	assert.False(t, ok)

	_, _, _, ok = NewOrientationEvent(0, 0, math.Inf(-1)).Angles()
	assert.False(t, ok)
}

func TestEventKinds(t *testing.T) {
	assert.Equal(t, EventDeviceOrientation, OrientationEvent{}.Kind())
	assert.Equal(t, EventPointerCancel, PointerEvent{Type: EventPointerCancel}.Kind())
	assert.Equal(t, EventFullscreenChange, SignalEvent{Type: EventFullscreenChange}.Kind())

	assert.Equal(t, "deviceorientation", EventDeviceOrientation.String())
	assert.Equal(t, "unknown", EventKind(99).String())
}
