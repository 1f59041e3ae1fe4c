package scene

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-pose/common"
	"github.com/Carmen-Shannon/oxy-pose/engine/light"
	"github.com/go-gl/mathgl/mgl32"
)

// ShapeKind identifies the geometric primitive a Shape describes.
type ShapeKind int

const (
	// ShapeSphere is a UV sphere centered on its local origin.
	ShapeSphere ShapeKind = iota

	// ShapeCylinder is a capped cylinder centered on its local origin with its axis along +Y.
	ShapeCylinder
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeSphere:
		return "sphere"
	case ShapeCylinder:
		return "cylinder"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// Shape holds the parameters of a procedural primitive. Only the fields
// relevant to Kind are set.
type Shape struct {
	Kind ShapeKind

	// Radius is the sphere radius.
	Radius float32

	// RadiusTop and RadiusBottom are the cylinder cap radii.
	RadiusTop    float32
	RadiusBottom float32

	// Height is the cylinder length along its axis.
	Height float32

	// Segments is the number of subdivisions around the Y axis.
	Segments int

	// Rings is the number of sphere subdivisions from pole to pole.
	Rings int
}

// Sphere describes a UV sphere.
//
// Parameters:
//   - radius: sphere radius
//   - segments: subdivisions around the Y axis
//   - rings: subdivisions from pole to pole
//
// Returns:
//   - Shape: the sphere description
func Sphere(radius float32, segments, rings int) Shape {
	return Shape{Kind: ShapeSphere, Radius: radius, Segments: segments, Rings: rings}
}

// Cylinder describes a capped cylinder along +Y.
//
// Parameters:
//   - radiusTop: radius of the +Y cap
//   - radiusBottom: radius of the -Y cap
//   - height: length along the axis
//   - segments: subdivisions around the axis
//
// Returns:
//   - Shape: the cylinder description
func Cylinder(radiusTop, radiusBottom, height float32, segments int) Shape {
	return Shape{
		Kind:         ShapeCylinder,
		RadiusTop:    radiusTop,
		RadiusBottom: radiusBottom,
		Height:       height,
		Segments:     segments,
	}
}

// Primitive is one positioned, colored segment of the figure or its platform.
type Primitive struct {
	// Name identifies the segment, e.g. "left_leg".
	Name string

	// Shape is the geometry to generate for this segment.
	Shape Shape

	// Color is the material base color.
	Color common.Color

	// Material is the specular response layered over the diffuse color.
	Material light.Phong

	// Position is the world-space offset of the shape's local origin.
	Position mgl32.Vec3

	// Rotation holds Euler angles in radians, applied X then Y then Z.
	Rotation mgl32.Vec3
}

// ModelMatrix returns the local-to-world transform (translate * rotate).
func (p Primitive) ModelMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z()).
		Mul4(common.EulerXYZ(p.Rotation))
}

// NormalMatrix returns the rotation applied to normals. Primitives carry no
// scale, so this is the rotational part of the model matrix.
func (p Primitive) NormalMatrix() mgl32.Mat3 {
	return common.EulerXYZ(p.Rotation).Mat3()
}
