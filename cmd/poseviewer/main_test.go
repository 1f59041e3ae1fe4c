package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-pose/engine/loop"
	"github.com/Carmen-Shannon/oxy-pose/internal/config"
	"golang.org/x/image/bmp"
)

func testConfig() config.Config {
	return config.Config{
		Width: 96, Height: 72, FPS: 60,
		Damping: 0.05, Distance: 5, MinDistance: 2, MaxDistance: 15,
	}
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand(testConfig(), &out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--quiet"))
	err := cmd.Execute()
	return out.String(), err
}

func decode(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var img image.Image
	switch filepath.Ext(path) {
	case ".png":
		img, err = png.Decode(f)
	case ".bmp":
		img, err = bmp.Decode(f)
	}
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}

// figurePixels counts pixels that differ from the top-left background pixel.
func figurePixels(img image.Image) int {
	bg := color.RGBAModel.Convert(img.At(0, 0))
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if color.RGBAModel.Convert(img.At(x, y)) != bg {
				n++
			}
		}
	}
	return n
}

func TestSnapshotWritesImage(t *testing.T) {
	for _, ext := range []string{".png", ".bmp"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "pose"+ext)
			out, err := runCommand(t, "snapshot", "--pose", "squat", "--frames", "3", "--out", path)
			if err != nil {
				t.Fatalf("snapshot: %v", err)
			}
			if !strings.Contains(out, "wrote "+path) {
				t.Errorf("output = %q", out)
			}

			img := decode(t, path)
			if b := img.Bounds(); b.Dx() != 96 || b.Dy() != 72 {
				t.Fatalf("image size = %dx%d, want 96x72", b.Dx(), b.Dy())
			}
			if figurePixels(img) == 0 {
				t.Error("image contains only background")
			}
		})
	}
}

func TestSnapshotOrbitChangesView(t *testing.T) {
	dir := t.TempDir()
	front, side := filepath.Join(dir, "front.png"), filepath.Join(dir, "side.png")
	if _, err := runCommand(t, "snapshot", "--out", front); err != nil {
		t.Fatal(err)
	}
	if _, err := runCommand(t, "snapshot", "--orbit", "90", "--out", side); err != nil {
		t.Fatal(err)
	}

	a, b := decode(t, front), decode(t, side)
	bounds := a.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if a.At(x, y) != b.At(x, y) {
				return
			}
		}
	}
	t.Error("orbiting 90 degrees produced an identical image")
}

func TestSnapshotRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unsupported extension", []string{"snapshot", "--out", filepath.Join(t.TempDir(), "pose.gif")}},
		{"zero width", []string{"snapshot", "--width", "0", "--out", filepath.Join(t.TempDir(), "pose.png")}},
		{"missing directory", []string{"snapshot", "--out", filepath.Join(t.TempDir(), "nope", "pose.png")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCommand(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFrameTickerCapsRate(t *testing.T) {
	sched := loop.NewScheduler()
	ticks := 0
	var cb func(time.Time)
	cb = func(time.Time) {
		ticks++
		sched.RequestFrame(cb)
	}
	sched.RequestFrame(cb)

	update := frameTicker(sched, 1)
	for range 100 {
		update()
	}
	if ticks != 1 {
		t.Errorf("ticks = %d, want 1 within one interval", ticks)
	}
}

func TestPoseListIsSorted(t *testing.T) {
	if got := poseList(); got != "squat, standing" {
		t.Errorf("poseList() = %q", got)
	}
}

func TestSnapshotWithoutFPS(t *testing.T) {
	cfg := testConfig()
	cfg.FPS = 0
	path := filepath.Join(t.TempDir(), "pose.png")

	cmd := newRootCommand(cfg, &bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"snapshot", "--frames", "2", "--out", path, "--quiet"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if figurePixels(decode(t, path)) == 0 {
		t.Error("image contains only background")
	}
}

func TestWindowOptions(t *testing.T) {
	flags := &viewerFlags{pose: "squat", width: 640, height: 480}
	if got := len(windowOptions(testConfig(), flags)); got != 3 {
		t.Errorf("windowOptions returned %d options, want title, size and minimum size", got)
	}
}
