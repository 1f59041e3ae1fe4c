// Package profiler reports render loop frame rate and memory statistics.
package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks frame rate, draw time and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	logger         *log.Logger
	now            func() time.Time
	updateInterval time.Duration

	frameCount     int
	drawTime       time.Duration
	maxDrawTime    time.Duration
	lastTime       time.Time
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	last Report
}

// Report is the summary of one reporting interval.
type Report struct {
	FPS         float64
	AvgDraw     time.Duration
	MaxDraw     time.Duration
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	SysMB       float64
}

// NewProfiler creates a new Profiler.
// Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		logger:         log.Default(),
		now:            time.Now,
		updateInterval: time.Second,
	}
	for _, option := range options {
		option(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame with the time spent drawing it.
// Logs performance statistics when the update interval has elapsed.
//
// Parameters:
//   - draw: wall time of the frame's draw call
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(draw time.Duration) bool {
	p.frameCount++
	p.drawTime += draw
	if draw > p.maxDrawTime {
		p.maxDrawTime = draw
	}

	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc

	p.last = Report{
		FPS:         float64(p.frameCount) / elapsed.Seconds(),
		AvgDraw:     p.drawTime / time.Duration(p.frameCount),
		MaxDraw:     p.maxDrawTime,
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(allocDelta) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:     p.memStats.NumGC,
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
	}
	p.logger.Printf("[Profiler] FPS: %.2f | Draw: %v avg, %v max | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d | Sys: %.2f MB",
		p.last.FPS, p.last.AvgDraw, p.last.MaxDraw, p.last.HeapMB, p.last.AllocRateMB, p.last.GCCount, p.last.SysMB)

	p.frameCount = 0
	p.drawTime = 0
	p.maxDrawTime = 0
	p.lastTime = currentTime
	p.lastGCCount = p.memStats.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the most recently logged report.
func (p *Profiler) Last() Report {
	return p.last
}
