package light

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPULightUniform is the GPU-aligned representation of the scene lighting.
// Matches the WGSL Lights struct in the pose shader.
// Size: 48 bytes (WGSL uniform aligned).
type GPULightUniform struct {
	Ambient   [4]float32 // offset  0: ambient radiance (rgb), w unused
	Direction [4]float32 // offset 16: normalized direction toward the light (xyz), w unused
	Color     [4]float32 // offset 32: directional radiance (rgb), w unused
}

// NewGPULightUniform packs an ambient and a directional light for upload.
//
// Parameters:
//   - ambient: the ambient light
//   - sun: the directional light
//
// Returns:
//   - GPULightUniform: the packed uniform
func NewGPULightUniform(ambient, sun Light) GPULightUniform {
	a := ambient.Radiance()
	d := sun.ToLight()
	c := sun.Radiance()
	return GPULightUniform{
		Ambient:   [4]float32{a.R, a.G, a.B, 0},
		Direction: [4]float32{d.X(), d.Y(), d.Z(), 0},
		Color:     [4]float32{c.R, c.G, c.B, 0},
	}
}

// Size returns the size of the GPULightUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (48)
func (g *GPULightUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULightUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload
func (g *GPULightUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Ambient[i]))
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.Direction[i]))
		binary.LittleEndian.PutUint32(buf[32+i*4:], math.Float32bits(g.Color[i]))
	}
	return buf
}
