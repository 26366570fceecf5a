package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-pose/engine/pose"
)

func newTestProfiler() (*Profiler, *time.Time, *[]string) {
	clock := time.Unix(1000, 0)
	var lines []string
	p := NewProfiler()
	p.now = func() time.Time { return clock }
	p.output = func(line string) { lines = append(lines, line) }
	p.lastTime = clock
	return p, &clock, &lines
}

func TestTickWaitsForInterval(t *testing.T) {
	p, clock, lines := newTestProfiler()

	for range 29 {
		*clock = clock.Add(10 * time.Millisecond)
		assert.False(t, p.Tick(pose.Stats{}))
	}
	assert.Empty(t, *lines)

	*clock = clock.Add(710 * time.Millisecond)
	assert.True(t, p.Tick(pose.Stats{Active: true, Permission: pose.PermissionGranted}))
	require.Len(t, *lines, 1)
	assert.Contains(t, (*lines)[0], "FPS: 30.00")
	assert.Contains(t, (*lines)[0], "Session: active")
	assert.Contains(t, (*lines)[0], "Permission: granted")
}

func TestTickReportsDeltas(t *testing.T) {
	p, clock, lines := newTestProfiler()
	p.SetInterval(100 * time.Millisecond)

	*clock = clock.Add(100 * time.Millisecond)
	p.Tick(pose.Stats{SamplesAccepted: 10, SamplesDropped: 1, DragMoves: 4})

	*clock = clock.Add(100 * time.Millisecond)
	p.Tick(pose.Stats{SamplesAccepted: 15, SamplesDropped: 1, DragMoves: 9})

	require.Len(t, *lines, 2)
	assert.Contains(t, (*lines)[1], "Samples: +5 (dropped +0)")
	assert.Contains(t, (*lines)[1], "Drag moves: +5")
	assert.Contains(t, (*lines)[1], "Session: idle")
}

func TestSetIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler()
	p.SetInterval(0)
	assert.Equal(t, time.Second, p.updateInterval)
	p.SetInterval(-time.Second)
	assert.Equal(t, time.Second, p.updateInterval)
}
