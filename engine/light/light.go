package light

import (
	"github.com/Carmen-Shannon/oxy-pose/common"
	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient represents a light that reaches every surface equally,
	// regardless of orientation. Lifts the unlit side of the figure off black.
	LightTypeAmbient LightType = iota

	// LightTypeDirectional represents a distant light shining from a position toward the origin.
	// Contribution follows Lambert's cosine law with no distance attenuation.
	LightTypeDirectional
)

// String returns a readable name for the light type.
func (t LightType) String() string {
	switch t {
	case LightTypeAmbient:
		return "ambient"
	case LightTypeDirectional:
		return "directional"
	default:
		return "unknown"
	}
}

// Light is a scene-level light source. It is a plain value so that two
// scenes built from the same pose compare equal field by field.
type Light struct {
	// Type selects how the light contributes to a surface.
	Type LightType

	// Color is the RGB color of the light. Alpha is ignored.
	Color common.Color

	// Intensity is the scalar multiplier applied to Color.
	Intensity float32

	// Position is the world-space origin of a directional light. The light
	// travels from Position toward the world origin. Unused for ambient lights.
	Position mgl32.Vec3
}

// NewLight creates a Light of the given type with white color and unit intensity,
// then applies each option in order.
//
// Parameters:
//   - lightType: the kind of light to create
//   - options: functional options to configure the light
//
// Returns:
//   - Light: the configured light
func NewLight(lightType LightType, options ...LightBuilderOption) Light {
	l := Light{
		Type:      lightType,
		Color:     common.HexColor(0xffffff),
		Intensity: 1,
	}
	for _, option := range options {
		option(&l)
	}
	return l
}

// Radiance returns the light color scaled by its intensity.
func (l Light) Radiance() common.Color {
	return l.Color.Scale(l.Intensity)
}

// ToLight returns the normalized direction from a surface toward the light.
// Zero for ambient lights and for directional lights placed at the origin.
func (l Light) ToLight() mgl32.Vec3 {
	if l.Type != LightTypeDirectional || l.Position.Len() == 0 {
		return mgl32.Vec3{}
	}
	return l.Position.Normalize()
}

// Contribution computes the light reaching a surface with the given normal.
//
// Parameters:
//   - normal: unit world-space surface normal
//
// Returns:
//   - common.Color: the incident radiance (RGB, alpha 0)
func (l Light) Contribution(normal mgl32.Vec3) common.Color {
	switch l.Type {
	case LightTypeAmbient:
		return l.Radiance()
	case LightTypeDirectional:
		ndl := normal.Dot(l.ToLight())
		if ndl <= 0 {
			return common.Color{}
		}
		return l.Radiance().Scale(ndl)
	default:
		return common.Color{}
	}
}

// Shade combines every light's contribution for a surface and modulates the base color.
//
// Parameters:
//   - base: the material color
//   - normal: unit world-space surface normal
//   - lights: the lights illuminating the surface
//
// Returns:
//   - common.Color: the lit color, alpha taken from base
func Shade(base common.Color, normal mgl32.Vec3, lights ...Light) common.Color {
	var total common.Color
	for _, l := range lights {
		total = total.Add(l.Contribution(normal))
	}
	return base.Modulate(total)
}
