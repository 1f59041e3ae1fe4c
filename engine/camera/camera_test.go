package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	if math.Abs(float64(c.Fov()-mgl32.DegToRad(75))) > 1e-6 {
		t.Fatalf("fov = %v", c.Fov())
	}
	if c.Near() != 0.1 || c.Far() != 1000 || c.Aspect() != 1 {
		t.Fatalf("near/far/aspect = %v/%v/%v", c.Near(), c.Far(), c.Aspect())
	}
}

func TestCameraFollowsController(t *testing.T) {
	oc := NewOrbitController(WithDampingFactor(0), WithViewportHeight(100))
	c := NewCamera(WithController(oc))
	before := c.Position()

	oc.Rotate(-25, 0)
	oc.Advance()
	if c.Position() != before {
		t.Fatal("camera moved before Update")
	}
	c.Update()
	if c.Position().Sub(mgl32.Vec3{5, 0, 0}).Len() > 1e-4 {
		t.Fatalf("position = %v, want (5, 0, 0)", c.Position())
	}

	// The target projects to the center of the screen.
	clip := c.ViewProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if math.Abs(float64(clip.X()/clip.W())) > 1e-5 || math.Abs(float64(clip.Y()/clip.W())) > 1e-5 {
		t.Fatalf("target clip = %v", clip)
	}
}

func TestSetAspect(t *testing.T) {
	c := NewCamera()
	c.SetAspect(600.0 / 400.0)
	if c.Aspect() != 1.5 {
		t.Fatalf("aspect = %v", c.Aspect())
	}
	proj := c.ProjectionMatrix()
	if math.Abs(float64(proj[0]*1.5-proj[5])) > 1e-5 {
		t.Fatalf("projection not updated: %v", proj)
	}
	c.SetAspect(0)
	if c.Aspect() != 1.5 {
		t.Fatalf("non-positive aspect applied: %v", c.Aspect())
	}
}

func TestGPUCameraUniformMarshal(t *testing.T) {
	c := NewCamera(WithController(NewOrbitController()))
	u := NewGPUCameraUniform(c)
	buf := u.Marshal()
	if len(buf) != 80 {
		t.Fatalf("len = %d, want 80", len(buf))
	}
	z := math.Float32frombits(binary.LittleEndian.Uint32(buf[72:]))
	if math.Abs(float64(z-5)) > 1e-5 {
		t.Fatalf("camera z = %v, want 5", z)
	}
}
