// Package model generates the triangle meshes for scene primitives.
package model

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-pose/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is an indexed triangle list with counter-clockwise front faces.
type Mesh struct {
	Vertices []GPUVertex
	Indices  []uint32
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the three vertices of triangle i.
func (m *Mesh) Triangle(i int) (GPUVertex, GPUVertex, GPUVertex) {
	return m.Vertices[m.Indices[i*3]], m.Vertices[m.Indices[i*3+1]], m.Vertices[m.Indices[i*3+2]]
}

// FromShape generates the mesh for a primitive shape. Segment counts below the
// minimum that can enclose a volume are raised to it.
//
// Parameters:
//   - shape: the shape description
//
// Returns:
//   - *Mesh: the generated mesh, empty for an unknown shape kind
func FromShape(shape scene.Shape) *Mesh {
	switch shape.Kind {
	case scene.ShapeSphere:
		return NewSphere(shape.Radius, shape.Segments, shape.Rings)
	case scene.ShapeCylinder:
		return NewCylinder(shape.RadiusTop, shape.RadiusBottom, shape.Height, shape.Segments)
	default:
		return &Mesh{}
	}
}

// NewSphere generates a UV sphere centered on the origin.
//
// Parameters:
//   - radius: sphere radius
//   - segments: subdivisions around the Y axis (minimum 3)
//   - rings: subdivisions from pole to pole (minimum 2)
//
// Returns:
//   - *Mesh: the sphere mesh
func NewSphere(radius float32, segments, rings int) *Mesh {
	segments = max(segments, 3)
	rings = max(rings, 2)

	m := &Mesh{
		Vertices: make([]GPUVertex, 0, (segments+1)*(rings+1)),
		Indices:  make([]uint32, 0, segments*(rings-1)*6),
	}

	for iy := 0; iy <= rings; iy++ {
		v := float64(iy) / float64(rings)
		for ix := 0; ix <= segments; ix++ {
			u := float64(ix) / float64(segments)
			n := mgl32.Vec3{
				float32(-math.Cos(u*2*math.Pi) * math.Sin(v*math.Pi)),
				float32(math.Cos(v * math.Pi)),
				float32(math.Sin(u*2*math.Pi) * math.Sin(v*math.Pi)),
			}
			m.Vertices = append(m.Vertices, GPUVertex{
				Position: n.Mul(radius),
				Normal:   n,
			})
		}
	}

	row := uint32(segments + 1)
	for iy := range uint32(rings) {
		for ix := range uint32(segments) {
			a := iy*row + ix + 1
			b := iy*row + ix
			c := (iy+1)*row + ix
			d := (iy+1)*row + ix + 1
			// Pole rows collapse to a point, so each contributes one triangle per segment.
			if iy != 0 {
				m.Indices = append(m.Indices, a, b, d)
			}
			if iy != uint32(rings)-1 {
				m.Indices = append(m.Indices, b, c, d)
			}
		}
	}
	return m
}

// NewCylinder generates a capped cylinder centered on the origin with its axis along +Y.
//
// Parameters:
//   - radiusTop: radius of the +Y cap
//   - radiusBottom: radius of the -Y cap
//   - height: length along the axis
//   - segments: subdivisions around the axis (minimum 3)
//
// Returns:
//   - *Mesh: the cylinder mesh
func NewCylinder(radiusTop, radiusBottom, height float32, segments int) *Mesh {
	segments = max(segments, 3)
	half := height / 2
	slope := float32(0)
	if height != 0 {
		slope = (radiusBottom - radiusTop) / height
	}

	m := &Mesh{}

	// Side wall: a top ring and a bottom ring with a duplicated seam vertex.
	for _, ring := range []struct {
		y, r float32
	}{{half, radiusTop}, {-half, radiusBottom}} {
		for ix := 0; ix <= segments; ix++ {
			sin, cos := sincos(ix, segments)
			m.Vertices = append(m.Vertices, GPUVertex{
				Position: [3]float32{ring.r * sin, ring.y, ring.r * cos},
				Normal:   mgl32.Vec3{sin, slope, cos}.Normalize(),
			})
		}
	}
	row := uint32(segments + 1)
	for ix := range uint32(segments) {
		a := ix
		b := row + ix
		c := row + ix + 1
		d := ix + 1
		m.Indices = append(m.Indices, a, b, d, b, c, d)
	}

	m.addCap(radiusTop, half, segments, true)
	m.addCap(radiusBottom, -half, segments, false)
	return m
}

// addCap appends a triangle fan closing one end of a cylinder.
func (m *Mesh) addCap(radius, y float32, segments int, top bool) {
	if radius <= 0 {
		return
	}
	normalY := float32(-1)
	if top {
		normalY = 1
	}

	center := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, GPUVertex{
		Position: [3]float32{0, y, 0},
		Normal:   [3]float32{0, normalY, 0},
	})
	for ix := 0; ix <= segments; ix++ {
		sin, cos := sincos(ix, segments)
		m.Vertices = append(m.Vertices, GPUVertex{
			Position: [3]float32{radius * sin, y, radius * cos},
			Normal:   [3]float32{0, normalY, 0},
		})
	}
	for ix := range uint32(segments) {
		i := center + 1 + ix
		if top {
			m.Indices = append(m.Indices, i, i+1, center)
		} else {
			m.Indices = append(m.Indices, i+1, i, center)
		}
	}
}

func sincos(step, segments int) (float32, float32) {
	theta := float64(step) / float64(segments) * 2 * math.Pi
	return float32(math.Sin(theta)), float32(math.Cos(theta))
}

// Cache memoizes generated meshes by shape. Scenes rebuilt for a new pose
// reuse every mesh, since only placements change between poses.
type Cache struct {
	mu     *sync.Mutex
	meshes map[scene.Shape]*Mesh
}

// NewCache creates an empty mesh cache.
func NewCache() *Cache {
	return &Cache{
		mu:     &sync.Mutex{},
		meshes: make(map[scene.Shape]*Mesh),
	}
}

// Get returns the mesh for a shape, generating it on first use.
//
// Parameters:
//   - shape: the shape description
//
// Returns:
//   - *Mesh: the shared mesh; callers must not modify it
func (c *Cache) Get(shape scene.Shape) *Mesh {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.meshes[shape]; ok {
		return m
	}
	m := FromShape(shape)
	c.meshes[shape] = m
	return m
}

// Len returns the number of distinct meshes held.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.meshes)
}
