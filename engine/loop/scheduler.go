// Package loop drives per-frame rendering from a host-provided display cadence.
package loop

import (
	"context"
	"slices"
	"sync"
	"time"
)

// FrameID identifies a pending frame request.
type FrameID uint64

// FrameScheduler registers one-shot callbacks for the next display refresh.
type FrameScheduler interface {
	// RequestFrame schedules callback to run on the next refresh.
	//
	// Parameters:
	//   - callback: function receiving the refresh timestamp
	//
	// Returns:
	//   - FrameID: token that can be passed to CancelFrame
	RequestFrame(callback func(now time.Time)) FrameID

	// CancelFrame deregisters a pending request. Unknown or already-run IDs are ignored.
	//
	// Parameters:
	//   - id: the request to cancel
	CancelFrame(id FrameID)
}

// Scheduler is a FrameScheduler whose refreshes are driven by calls to Tick.
// Callbacks requested while a tick is running are deferred to the next tick.
type Scheduler struct {
	mu      *sync.Mutex
	next    FrameID
	pending map[FrameID]func(time.Time)
	running map[FrameID]func(time.Time)
}

var _ FrameScheduler = &Scheduler{}

// NewScheduler creates an idle scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		mu:      &sync.Mutex{},
		pending: make(map[FrameID]func(time.Time)),
		running: make(map[FrameID]func(time.Time)),
	}
}

func (s *Scheduler) RequestFrame(callback func(now time.Time)) FrameID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.pending[s.next] = callback
	return s.next
}

func (s *Scheduler) CancelFrame(id FrameID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, id)
	delete(s.running, id)
}

// Pending returns the number of callbacks waiting for the next tick.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Tick runs every callback that was pending when the tick began, in request
// order. A callback cancelled by an earlier callback in the same tick is skipped.
// No lock is held while a callback runs.
//
// Parameters:
//   - now: the refresh timestamp passed to each callback
//
// Returns:
//   - int: the number of callbacks that ran
func (s *Scheduler) Tick(now time.Time) int {
	s.mu.Lock()
	s.running, s.pending = s.pending, make(map[FrameID]func(time.Time))
	ids := make([]FrameID, 0, len(s.running))
	for id := range s.running {
		ids = append(ids, id)
	}
	s.mu.Unlock()
	slices.Sort(ids)

	ran := 0
	for _, id := range ids {
		s.mu.Lock()
		callback, ok := s.running[id]
		delete(s.running, id)
		s.mu.Unlock()
		if !ok {
			continue
		}
		callback(now)
		ran++
	}
	return ran
}

// Run ticks the scheduler at a fixed rate until the context is done.
//
// Parameters:
//   - ctx: stops the loop when cancelled
//   - s: the scheduler to drive
//   - fps: target refreshes per second, 60 when not positive
//
// Returns:
//   - error: the context's error once it is done
func Run(ctx context.Context, s *Scheduler, fps int) error {
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			s.Tick(now)
		}
	}
}
