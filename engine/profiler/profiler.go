package profiler

import (
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-pose/engine/pose"
)

// Profiler tracks pose-query cadence and controller activity.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastAccepted   uint64
	lastDropped    uint64
	lastMoves      uint64

	now    func() time.Time
	output func(line string)
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
		output:         func(line string) { log.Print(line) },
	}
	p.lastTime = p.now()
	return p
}

// SetInterval changes how often stats are logged.
//
// Parameters:
//   - interval: logging interval (ignored if <= 0)
func (p *Profiler) SetInterval(interval time.Duration) {
	if interval > 0 {
		p.updateInterval = interval
	}
}

// Tick should be called once per frame, after the pose query.
// Logs frame rate, heap usage, session state and per-interval sample/drag counts
// when the update interval has elapsed.
//
// Parameters:
//   - stats: the controller counters for this frame
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(stats pose.Stats) bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()
	runtime.ReadMemStats(&p.memStats)
	heapMB := float64(p.memStats.Alloc) / 1024 / 1024

	p.output(fmt.Sprintf("[Profiler] FPS: %.2f | Heap: %.2f MB | Session: %s | Permission: %s | Samples: +%d (dropped +%d) | Drag moves: +%d",
		fps, heapMB, sessionLabel(stats.Active), stats.Permission,
		stats.SamplesAccepted-p.lastAccepted, stats.SamplesDropped-p.lastDropped, stats.DragMoves-p.lastMoves))

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastAccepted = stats.SamplesAccepted
	p.lastDropped = stats.SamplesDropped
	p.lastMoves = stats.DragMoves
	return true
}

func sessionLabel(active bool) string {
	if active {
		return "active"
	}
	return "idle"
}
