package loop

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-pose/engine/camera"
	"github.com/Carmen-Shannon/oxy-pose/engine/profiler"
	"github.com/Carmen-Shannon/oxy-pose/engine/scene"
)

type recordingSurface struct {
	mu     sync.Mutex
	draws  int
	scenes []*scene.Scene
	err    error
	onDraw func()
}

func (s *recordingSurface) Size() (int, int) { return 64, 64 }

func (s *recordingSurface) Draw(sc *scene.Scene, _ camera.Camera) error {
	s.mu.Lock()
	s.draws++
	s.scenes = append(s.scenes, sc)
	onDraw := s.onDraw
	s.mu.Unlock()
	if onDraw != nil {
		onDraw()
	}
	return s.err
}

func newFixture(t *testing.T, options ...RenderLoopBuilderOption) (*Scheduler, *RenderLoop, camera.OrbitController, camera.Camera) {
	t.Helper()
	sched := NewScheduler()
	oc := camera.NewOrbitController()
	cam := camera.NewCamera(camera.WithController(oc))
	return sched, NewRenderLoop(sched, options...), oc, cam
}

func TestSchedulerRunsInRequestOrder(t *testing.T) {
	s := NewScheduler()
	var order []int
	for i := range 3 {
		s.RequestFrame(func(time.Time) { order = append(order, i) })
	}
	if n := s.Tick(time.Now()); n != 3 {
		t.Fatalf("Tick ran %d callbacks, want 3", n)
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("order = %v", order)
		}
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d after tick", s.Pending())
	}
}

func TestSchedulerDefersRequestsMadeDuringTick(t *testing.T) {
	s := NewScheduler()
	calls := 0
	var cb func(time.Time)
	cb = func(time.Time) {
		calls++
		s.RequestFrame(cb)
	}
	s.RequestFrame(cb)

	for i := 1; i <= 3; i++ {
		s.Tick(time.Now())
		if calls != i {
			t.Fatalf("after tick %d calls = %d", i, calls)
		}
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	ran := map[string]bool{}
	var second FrameID
	s.RequestFrame(func(time.Time) {
		ran["first"] = true
		s.CancelFrame(second)
	})
	second = s.RequestFrame(func(time.Time) { ran["second"] = true })
	third := s.RequestFrame(func(time.Time) { ran["third"] = true })
	s.CancelFrame(third)
	s.CancelFrame(third)
	s.CancelFrame(9999)

	if n := s.Tick(time.Now()); n != 1 {
		t.Errorf("Tick ran %d callbacks, want 1", n)
	}
	if !ran["first"] || ran["second"] || ran["third"] {
		t.Errorf("ran = %v", ran)
	}
}

func TestRenderLoopDrawsOncePerTick(t *testing.T) {
	sched, rl, oc, cam := newFixture(t)
	surface := &recordingSurface{}
	sc := scene.Build(scene.PoseSquat)

	h := rl.Start(func() *scene.Scene { return sc }, oc, cam, surface)
	if !h.Live() {
		t.Fatal("handle not live after Start")
	}
	if sched.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", sched.Pending())
	}

	for range 5 {
		sched.Tick(time.Now())
	}
	if surface.draws != 5 || h.Frames() != 5 {
		t.Errorf("draws = %d, frames = %d, want 5", surface.draws, h.Frames())
	}
	if sched.Pending() != 1 {
		t.Errorf("Pending() = %d, want exactly one rescheduled frame", sched.Pending())
	}
	for _, got := range surface.scenes {
		if got != sc {
			t.Fatal("drew a scene other than the source's")
		}
	}
}

func TestRenderLoopAdvancesController(t *testing.T) {
	sched, rl, oc, cam := newFixture(t)
	h := rl.Start(func() *scene.Scene { return scene.Build(scene.PoseStanding) }, oc, cam, &recordingSurface{})
	defer h.Cancel()

	oc.Rotate(100, 0)
	before := cam.Position()
	sched.Tick(time.Now())
	if cam.Position() == before {
		t.Error("camera did not move after a frame with pending rotation")
	}
}

func TestCancelIsIdempotentAndStopsFrames(t *testing.T) {
	sched, rl, oc, cam := newFixture(t)
	surface := &recordingSurface{}
	h := rl.Start(func() *scene.Scene { return nil }, oc, cam, surface)
	sched.Tick(time.Now())

	h.Cancel()
	h.Cancel()
	if h.Live() {
		t.Error("handle live after Cancel")
	}
	select {
	case <-h.Done():
	default:
		t.Error("Done not closed after Cancel")
	}
	if sched.Pending() != 0 {
		t.Errorf("Pending() = %d after Cancel", sched.Pending())
	}
	for range 3 {
		sched.Tick(time.Now())
	}
	if surface.draws != 1 {
		t.Errorf("draws = %d, want 1", surface.draws)
	}
}

func TestCancelDuringDrawDoesNotReschedule(t *testing.T) {
	sched, rl, oc, cam := newFixture(t)
	surface := &recordingSurface{}
	h := rl.Start(func() *scene.Scene { return nil }, oc, cam, surface)
	surface.onDraw = h.Cancel

	sched.Tick(time.Now())
	if surface.draws != 1 {
		t.Errorf("in-flight draw did not complete, draws = %d", surface.draws)
	}
	if sched.Pending() != 0 {
		t.Errorf("Pending() = %d, frame rescheduled after cancel", sched.Pending())
	}
}

func TestDrawErrorsAreLoggedAndLoopContinues(t *testing.T) {
	var buf bytes.Buffer
	sched, rl, oc, cam := newFixture(t, WithLogger(log.New(&buf, "", 0)))
	surface := &recordingSurface{err: errors.New("device lost")}
	h := rl.Start(func() *scene.Scene { return nil }, oc, cam, surface)
	defer h.Cancel()

	sched.Tick(time.Now())
	sched.Tick(time.Now())
	if surface.draws != 2 {
		t.Errorf("draws = %d, want 2", surface.draws)
	}
	if !strings.Contains(buf.String(), "[loop] draw failed: device lost") {
		t.Errorf("log = %q", buf.String())
	}
}

func TestProfilerTickedPerFrame(t *testing.T) {
	var buf bytes.Buffer
	p := profiler.NewProfiler(profiler.WithLogger(log.New(&buf, "", 0)), profiler.WithInterval(time.Nanosecond))
	sched, rl, oc, cam := newFixture(t, WithProfiler(p))
	h := rl.Start(func() *scene.Scene { return nil }, oc, cam, &recordingSurface{})
	defer h.Cancel()

	time.Sleep(time.Millisecond)
	sched.Tick(time.Now())
	if !strings.Contains(buf.String(), "[Profiler]") {
		t.Errorf("profiler did not report, log = %q", buf.String())
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	s := NewScheduler()
	ticks := make(chan struct{}, 1)
	var cb func(time.Time)
	cb = func(time.Time) {
		select {
		case ticks <- struct{}{}:
		default:
		}
		s.RequestFrame(cb)
	}
	s.RequestFrame(cb)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- Run(ctx, s, 1000) }()

	select {
	case <-ticks:
	case <-time.After(2 * time.Second):
		t.Fatal("Run never ticked the scheduler")
	}
	cancel()
	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
