package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPerspectiveDepthRange(t *testing.T) {
	near, far := float32(0.1), float32(1000)
	proj := Perspective(mgl32.DegToRad(75), 1.5, near, far)

	tests := []struct {
		name  string
		z     float32
		depth float32
	}{
		{"near plane", -near, 0},
		{"far plane", -far, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clip := proj.Mul4x1(mgl32.Vec4{0, 0, tt.z, 1})
			got := clip.Z() / clip.W()
			if math.Abs(float64(got-tt.depth)) > 1e-4 {
				t.Fatalf("depth = %v, want %v", got, tt.depth)
			}
		})
	}
}

func TestLookAtCoincidentEye(t *testing.T) {
	v := LookAt(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 1, 0})
	if v != mgl32.Ident4() {
		t.Fatalf("expected identity view for coincident eye/center, got %v", v)
	}
}

func TestSpherical(t *testing.T) {
	tests := []struct {
		name    string
		azimuth float32
		polar   float32
		want    mgl32.Vec3
	}{
		{"equator +Z", 0, math.Pi / 2, mgl32.Vec3{0, 0, 5}},
		{"equator +X", math.Pi / 2, math.Pi / 2, mgl32.Vec3{5, 0, 0}},
		{"pole", 0, 0, mgl32.Vec3{0, 5, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Spherical(5, tt.azimuth, tt.polar)
			if got.Sub(tt.want).Len() > 1e-5 {
				t.Fatalf("Spherical = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEulerXYZRotatesAboutZ(t *testing.T) {
	// A cylinder's axis lies along +Y; rotating by pi/2 about Z lays it along -X.
	axis := EulerXYZ(mgl32.Vec3{0, 0, math.Pi / 2}).Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3()
	if axis.Sub(mgl32.Vec3{-1, 0, 0}).Len() > 1e-6 {
		t.Fatalf("rotated axis = %v", axis)
	}
}

func TestHexColor(t *testing.T) {
	c := HexColor(0x2196f3)
	got := c.RGBA8()
	if got.R != 0x21 || got.G != 0x96 || got.B != 0xf3 || got.A != 0xff {
		t.Fatalf("RGBA8 = %#v", got)
	}
	if over := (Color{R: 2, G: -1, B: 0.5, A: 1}).RGBA8(); over.R != 255 || over.G != 0 || over.B != 128 {
		t.Fatalf("clamped RGBA8 = %#v", over)
	}
}
