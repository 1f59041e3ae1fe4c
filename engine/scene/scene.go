// Package scene builds the procedural reference figure shown in the pose viewer.
// A Scene is plain data: building the same PoseKey twice yields equal values.
package scene

import (
	"github.com/Carmen-Shannon/oxy-pose/common"
	"github.com/Carmen-Shannon/oxy-pose/engine/light"
)

// Primitive names, in the order they appear in Scene.Primitives.
const (
	NameHead     = "head"
	NameTorso    = "torso"
	NameLeftArm  = "left_arm"
	NameRightArm = "right_arm"
	NameLeftLeg  = "left_leg"
	NameRightLeg = "right_leg"
	NamePlatform = "platform"
)

// Scene is the full set of positioned primitives and lights for one pose.
type Scene struct {
	// Pose is the resolved key the scene was built from.
	Pose PoseKey

	// Background is the clear color behind the figure.
	Background common.Color

	// Primitives lists the figure segments followed by the platform.
	Primitives []Primitive

	// Ambient lights every surface uniformly.
	Ambient light.Light

	// Sun is the single directional light.
	Sun light.Light
}

// Primitive looks up a primitive by name.
//
// Parameters:
//   - name: the primitive name, e.g. NameLeftLeg
//
// Returns:
//   - Primitive: the matching primitive, zero value when absent
//   - bool: whether the primitive exists
func (s *Scene) Primitive(name string) (Primitive, bool) {
	for _, p := range s.Primitives {
		if p.Name == name {
			return p, true
		}
	}
	return Primitive{}, false
}

// Lights returns the scene's lights in evaluation order.
func (s *Scene) Lights() []light.Light {
	return []light.Light{s.Ambient, s.Sun}
}

// Len returns the number of primitives.
func (s *Scene) Len() int {
	return len(s.Primitives)
}
