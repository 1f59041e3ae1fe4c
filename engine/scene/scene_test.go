package scene

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/Carmen-Shannon/oxy-pose/engine/light"
	"github.com/go-gl/mathgl/mgl32"
)

func TestBuildUnknownKeysMatchStanding(t *testing.T) {
	standing := Build(PoseStanding)
	for _, key := range []PoseKey{"", "unknown", "Squat", " squat", "lunge", "deadlift"} {
		t.Run(string(key), func(t *testing.T) {
			if got := Build(key); !reflect.DeepEqual(got, standing) {
				t.Fatalf("Build(%q) differs from standing scene", key)
			}
		})
	}
}

func TestBuildLegLayouts(t *testing.T) {
	tests := []struct {
		name      string
		key       PoseKey
		leftX     float32
		rightX    float32
		legY      float32
		leftRotZ  float32
		rightRotZ float32
	}{
		{"squat", PoseSquat, -0.3, 0.3, -0.2, math.Pi / 6, -math.Pi / 6},
		{"standing", PoseStanding, -0.2, 0.2, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Build(tt.key)
			left, ok := s.Primitive(NameLeftLeg)
			if !ok {
				t.Fatal("left leg missing")
			}
			right, ok := s.Primitive(NameRightLeg)
			if !ok {
				t.Fatal("right leg missing")
			}
			if left.Position.X() != tt.leftX || right.Position.X() != tt.rightX {
				t.Fatalf("leg x = (%v, %v), want (%v, %v)", left.Position.X(), right.Position.X(), tt.leftX, tt.rightX)
			}
			if left.Position.Y() != tt.legY || right.Position.Y() != tt.legY {
				t.Fatalf("leg y = (%v, %v), want %v", left.Position.Y(), right.Position.Y(), tt.legY)
			}
			if left.Rotation.Z() != tt.leftRotZ || right.Rotation.Z() != tt.rightRotZ {
				t.Fatalf("leg rotation z = (%v, %v), want (%v, %v)", left.Rotation.Z(), right.Rotation.Z(), tt.leftRotZ, tt.rightRotZ)
			}
		})
	}
}

func TestBuildSharedSegments(t *testing.T) {
	squat, standing := Build(PoseSquat), Build(PoseStanding)
	if squat.Len() != 7 || standing.Len() != 7 {
		t.Fatalf("primitive counts = (%d, %d), want 7", squat.Len(), standing.Len())
	}

	wantOrder := []string{NameHead, NameTorso, NameLeftArm, NameRightArm, NameLeftLeg, NameRightLeg, NamePlatform}
	for i, p := range squat.Primitives {
		if p.Name != wantOrder[i] {
			t.Fatalf("primitive %d = %q, want %q", i, p.Name, wantOrder[i])
		}
		if p.Material != light.DefaultPhong {
			t.Errorf("%s material = %+v, want the default Phong finish", p.Name, p.Material)
		}
		if p.Name == NameLeftLeg || p.Name == NameRightLeg {
			continue
		}
		if !reflect.DeepEqual(p, standing.Primitives[i]) {
			t.Fatalf("%s differs between poses", p.Name)
		}
	}
}

func TestBuildReturnsFreshScene(t *testing.T) {
	a, b := Build(PoseSquat), Build(PoseSquat)
	if a == b {
		t.Fatal("Build returned a shared pointer")
	}
	a.Primitives[0].Position[1] = 99
	if b.Primitives[0].Position.Y() == 99 {
		t.Fatal("scenes share primitive storage")
	}
}

func TestParsePoseKey(t *testing.T) {
	tests := []struct {
		raw     string
		want    PoseKey
		wantErr bool
	}{
		{"squat", PoseSquat, false},
		{"standing", PoseStanding, false},
		{"unknown", PoseStanding, true},
		{"", PoseStanding, true},
		{"SQUAT", PoseStanding, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParsePoseKey(tt.raw)
			if got != tt.want {
				t.Fatalf("ParsePoseKey(%q) = %q, want %q", tt.raw, got, tt.want)
			}
			if tt.wantErr != (err != nil) {
				t.Fatalf("ParsePoseKey(%q) err = %v", tt.raw, err)
			}
			if err != nil && !errors.Is(err, ErrInvalidPoseKey) {
				t.Fatalf("error %v does not wrap ErrInvalidPoseKey", err)
			}
		})
	}
}

func TestPoseKeys(t *testing.T) {
	want := []PoseKey{PoseSquat, PoseStanding}
	if got := PoseKeys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("PoseKeys = %v, want %v", got, want)
	}
}

func TestModelMatrixPlacesArmHorizontally(t *testing.T) {
	arm, _ := Build(PoseStanding).Primitive(NameRightArm)
	m := arm.ModelMatrix()
	// The cylinder's +Y tip (0, 0.4, 0) ends up 0.4 along -X from the shoulder.
	tip := m.Mul4x1(mgl32.Vec4{0, 0.4, 0, 1})
	if math.Abs(float64(tip.X()-0.1)) > 1e-6 || math.Abs(float64(tip.Y()-0.8)) > 1e-6 {
		t.Fatalf("arm tip = %v", tip)
	}
}
