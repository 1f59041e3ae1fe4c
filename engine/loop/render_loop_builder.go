package loop

import (
	"log"

	"github.com/Carmen-Shannon/oxy-pose/engine/profiler"
)

// RenderLoopBuilderOption is a functional option applied to a RenderLoop during construction.
type RenderLoopBuilderOption func(*RenderLoop)

// WithLogger sets the logger used to report draw failures.
//
// Parameters:
//   - logger: destination logger, ignored when nil
//
// Returns:
//   - RenderLoopBuilderOption: option function to apply
func WithLogger(logger *log.Logger) RenderLoopBuilderOption {
	return func(l *RenderLoop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithProfiler ticks p once per drawn frame with the draw duration.
//
// Parameters:
//   - p: the profiler, nil disables profiling
//
// Returns:
//   - RenderLoopBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) RenderLoopBuilderOption {
	return func(l *RenderLoop) {
		l.profiler = p
	}
}
