package scene

import (
	"math"

	"github.com/Carmen-Shannon/oxy-pose/common"
	"github.com/Carmen-Shannon/oxy-pose/engine/light"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	backgroundColor = 0xf5f5f5
	figureColor     = 0x2196f3
	platformColor   = 0xeeeeee

	// segments is the radial subdivision count used for every primitive.
	segments = 32
)

// Builder produces a Scene for a pose. Build is the default implementation;
// the type exists so viewports can be handed an instrumented or extended builder.
type Builder func(key PoseKey) *Scene

var _ Builder = Build

// Build creates the scene for a pose. It is deterministic and has no side
// effects. Keys without a registered layout produce the DefaultPose scene.
//
// Parameters:
//   - key: the pose to build
//
// Returns:
//   - *Scene: a freshly allocated scene owned by the caller
func Build(key PoseKey) *Scene {
	key = key.Resolve()
	legs := legLayouts[key]
	figure := common.HexColor(figureColor)

	return &Scene{
		Pose:       key,
		Background: common.HexColor(backgroundColor),
		Primitives: []Primitive{
			{
				Name:     NameHead,
				Shape:    Sphere(0.25, segments, segments),
				Color:    figure,
				Material: light.DefaultPhong,
				Position: mgl32.Vec3{0, 1.5, 0},
			},
			{
				Name:     NameTorso,
				Shape:    Cylinder(0.2, 0.2, 1, segments),
				Color:    figure,
				Material: light.DefaultPhong,
				Position: mgl32.Vec3{0, 0.8, 0},
			},
			arm(NameLeftArm, -0.5, figure),
			arm(NameRightArm, 0.5, figure),
			leg(NameLeftLeg, legs.left, figure),
			leg(NameRightLeg, legs.right, figure),
			{
				Name:     NamePlatform,
				Shape:    Cylinder(2, 2, 0.1, segments),
				Color:    common.HexColor(platformColor),
				Material: light.DefaultPhong,
				Position: mgl32.Vec3{0, -1, 0},
			},
		},
		Ambient: light.NewLight(light.LightTypeAmbient,
			light.WithColor(0xffffff),
			light.WithIntensity(0.5),
		),
		Sun: light.NewLight(light.LightTypeDirectional,
			light.WithColor(0xffffff),
			light.WithIntensity(1),
			light.WithPosition(5, 5, 5),
		),
	}
}

// arm lays a thin cylinder horizontally at shoulder height.
func arm(name string, x float32, color common.Color) Primitive {
	return Primitive{
		Name:     name,
		Shape:    Cylinder(0.05, 0.05, 0.8, segments),
		Color:    color,
		Material: light.DefaultPhong,
		Position: mgl32.Vec3{x, 0.8, 0},
		Rotation: mgl32.Vec3{0, 0, math.Pi / 2},
	}
}

func leg(name string, p legPlacement, color common.Color) Primitive {
	return Primitive{
		Name:     name,
		Shape:    Cylinder(0.05, 0.05, 1, segments),
		Color:    color,
		Material: light.DefaultPhong,
		Position: p.position,
		Rotation: p.rotation,
	}
}
