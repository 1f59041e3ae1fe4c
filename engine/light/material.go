package light

import (
	"math"

	"github.com/Carmen-Shannon/oxy-pose/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Phong is the specular response of a surface under the Blinn-Phong model.
// The zero value has no highlight, which reduces shading to Lambert.
type Phong struct {
	// Specular is the highlight color.
	Specular common.Color

	// Shininess is the highlight exponent; larger values give a tighter highlight.
	Shininess float32
}

// DefaultPhong is a dim, moderately tight highlight suited to painted plastic.
var DefaultPhong = Phong{Specular: common.HexColor(0x111111), Shininess: 30}

// Highlight computes the specular light a directional light reflects toward the viewer.
//
// Parameters:
//   - normal: unit world-space surface normal
//   - toView: unit direction from the surface toward the camera
//   - m: the surface's specular response
//
// Returns:
//   - common.Color: the reflected radiance; only RGB is meaningful
func (l Light) Highlight(normal, toView mgl32.Vec3, m Phong) common.Color {
	if l.Type != LightTypeDirectional || m.Shininess <= 0 {
		return common.Color{}
	}
	toLight := l.ToLight()
	if normal.Dot(toLight) <= 0 {
		return common.Color{}
	}
	half := toLight.Add(toView)
	if half.Len() == 0 {
		return common.Color{}
	}
	ndh := normal.Dot(half.Normalize())
	if ndh <= 0 {
		return common.Color{}
	}
	s := float32(math.Pow(float64(ndh), float64(m.Shininess)))
	return l.Radiance().Modulate(m.Specular).Scale(s)
}

// ShadePhong adds each light's specular highlight to the diffuse result of Shade.
//
// Parameters:
//   - base: the material color
//   - m: the material's specular response
//   - normal: unit world-space surface normal
//   - toView: unit direction from the surface toward the camera
//   - lights: the lights illuminating the surface
//
// Returns:
//   - common.Color: the lit color, alpha taken from base
func ShadePhong(base common.Color, m Phong, normal, toView mgl32.Vec3, lights ...Light) common.Color {
	lit := Shade(base, normal, lights...)
	for _, l := range lights {
		lit = lit.Add(l.Highlight(normal, toView, m))
	}
	return lit
}

// Array packs the specular color and shininess as a vec4 (rgb, exponent).
func (m Phong) Array() [4]float32 {
	return [4]float32{m.Specular.R, m.Specular.G, m.Specular.B, m.Shininess}
}
