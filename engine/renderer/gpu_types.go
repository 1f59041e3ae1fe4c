package renderer

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-pose/engine/camera"
	"github.com/Carmen-Shannon/oxy-pose/engine/light"
	"github.com/Carmen-Shannon/oxy-pose/engine/scene"
)

// PoseShaderSource is the WGSL module used to draw every scene primitive.
// Its Frame and Object structs match GPUFrameUniform and GPUObjectUniform.
//
//go:embed assets/pose.wgsl
var PoseShaderSource string

const (
	frameUniformSize  = 128
	objectUniformSize = 96
)

// GPUFrameUniform is the per-frame uniform bound at group 0.
// Size: 128 bytes (80 camera + 48 lights).
type GPUFrameUniform struct {
	Camera camera.GPUCameraUniform // offset  0
	Lights light.GPULightUniform   // offset 80
}

// NewGPUFrameUniform captures camera and scene lighting for one frame.
//
// Parameters:
//   - cam: the camera for this frame
//   - sc: the scene being drawn
//
// Returns:
//   - GPUFrameUniform: the packed uniform
func NewGPUFrameUniform(cam camera.Camera, sc *scene.Scene) GPUFrameUniform {
	return GPUFrameUniform{
		Camera: camera.NewGPUCameraUniform(cam),
		Lights: light.NewGPULightUniform(sc.Ambient, sc.Sun),
	}
}

// Marshal serializes the frame uniform for GPU upload.
//
// Returns:
//   - []byte: 128-byte buffer ready for GPU upload
func (g *GPUFrameUniform) Marshal() []byte {
	buf := make([]byte, 0, frameUniformSize)
	buf = append(buf, g.Camera.Marshal()...)
	buf = append(buf, g.Lights.Marshal()...)
	return buf
}

// GPUObjectUniform is the per-primitive uniform bound at group 1.
// Size: 96 bytes.
type GPUObjectUniform struct {
	Model    [16]float32 // offset  0: local-to-world transform (mat4x4<f32>)
	Color    [4]float32  // offset 64: material color (vec4<f32>)
	Specular [4]float32  // offset 80: highlight color (rgb) and shininess (w)
}

// NewGPUObjectUniform packs a primitive's transform and color.
//
// Parameters:
//   - p: the primitive
//
// Returns:
//   - GPUObjectUniform: the packed uniform
func NewGPUObjectUniform(p scene.Primitive) GPUObjectUniform {
	return GPUObjectUniform{
		Model:    p.ModelMatrix(),
		Color:    p.Color.Array(),
		Specular: p.Material.Array(),
	}
}

// Marshal serializes the object uniform for GPU upload.
//
// Returns:
//   - []byte: 96-byte buffer ready for GPU upload
func (g *GPUObjectUniform) Marshal() []byte {
	buf := make([]byte, objectUniformSize)
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Model[i]))
	}
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Color[i]))
		binary.LittleEndian.PutUint32(buf[80+i*4:], math.Float32bits(g.Specular[i]))
	}
	return buf
}
