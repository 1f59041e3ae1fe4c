package software

import (
	"image/color"
	"math"

	"github.com/Carmen-Shannon/oxy-pose/common"
	"github.com/Carmen-Shannon/oxy-pose/engine/camera"
	"github.com/Carmen-Shannon/oxy-pose/engine/light"
	"github.com/Carmen-Shannon/oxy-pose/engine/model"
	"github.com/Carmen-Shannon/oxy-pose/engine/scene"
	"github.com/Carmen-Shannon/oxy-pose/engine/viewport"
	"github.com/go-gl/mathgl/mgl32"
)

// clipVertex is a vertex after the view-projection transform, with its
// Gouraud-lit Blinn-Phong color.
type clipVertex struct {
	pos   mgl32.Vec4
	color common.Color
}

// screenVertex is a vertex in pixel coordinates. invW is kept for
// perspective-correct color interpolation.
type screenVertex struct {
	x, y, z float32
	invW    float32
	color   common.Color
}

func (s *Surface) Draw(sc *scene.Scene, cam camera.Camera) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return viewport.ErrSurfaceReleased
	}
	if sc == nil || cam == nil {
		return nil
	}

	s.clear(sc.Background)
	s.stats = Stats{Frames: s.stats.Frames}

	viewProj := cam.ViewProjectionMatrix()
	eye := cam.Position()
	lights := sc.Lights()

	for _, p := range sc.Primitives {
		mesh := s.host.meshes.Get(p.Shape)
		modelMatrix := p.ModelMatrix()
		mvp := viewProj.Mul4(modelMatrix)
		normalMatrix := p.NormalMatrix()

		for i := range mesh.TriangleCount() {
			a, b, c := mesh.Triangle(i)
			var tri [3]clipVertex
			for j, v := range [3]model.GPUVertex{a, b, c} {
				local := mgl32.Vec3(v.Position).Vec4(1)
				n := normalMatrix.Mul3x1(v.Normal).Normalize()
				toView := eye.Sub(modelMatrix.Mul4x1(local).Vec3())
				if toView.Len() > 0 {
					toView = toView.Normalize()
				}
				tri[j] = clipVertex{
					pos:   mvp.Mul4x1(local),
					color: light.ShadePhong(p.Color, p.Material, n, toView, lights...),
				}
			}
			s.stats.Triangles++
			if !s.rasterize(tri) {
				s.stats.Culled++
			}
		}
	}

	s.stats.Frames++
	return nil
}

// clear fills the color buffer with the background and resets depth to the far plane.
func (s *Surface) clear(bg common.Color) {
	c := bg.RGBA8()
	pix := s.color.Pix
	if len(pix) == 0 {
		return
	}
	pix[0], pix[1], pix[2], pix[3] = c.R, c.G, c.B, c.A
	for i := 4; i < len(pix); i *= 2 {
		copy(pix[i:], pix[:i])
	}
	for i := range s.depth {
		s.depth[i] = 1
	}
}

// rasterize fills one triangle with depth testing.
// Reports false when the triangle was rejected without touching any pixel.
func (s *Surface) rasterize(tri [3]clipVertex) bool {
	var sv [3]screenVertex
	for i, v := range tri {
		// Triangles crossing the eye plane are dropped rather than clipped;
		// the orbit distance bounds keep the figure in front of the camera.
		if v.pos.W() <= 1e-6 {
			return false
		}
		invW := 1 / v.pos.W()
		ndcX, ndcY := v.pos.X()*invW, v.pos.Y()*invW
		sv[i] = screenVertex{
			x:     (ndcX + 1) * 0.5 * float32(s.width),
			y:     (1 - ndcY) * 0.5 * float32(s.height),
			z:     v.pos.Z() * invW,
			invW:  invW,
			color: v.color,
		}
	}

	// Screen space flips Y, so counter-clockwise front faces have negative area.
	area := edge(sv[0], sv[1], sv[2].x, sv[2].y)
	if area == 0 || (s.host.backfaceCulling && area > 0) {
		return false
	}

	minX := clampInt(int(math.Floor(float64(min(sv[0].x, sv[1].x, sv[2].x)))), 0, s.width-1)
	maxX := clampInt(int(math.Ceil(float64(max(sv[0].x, sv[1].x, sv[2].x)))), 0, s.width-1)
	minY := clampInt(int(math.Floor(float64(min(sv[0].y, sv[1].y, sv[2].y)))), 0, s.height-1)
	maxY := clampInt(int(math.Ceil(float64(max(sv[0].y, sv[1].y, sv[2].y)))), 0, s.height-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float32(x)+0.5, float32(y)+0.5
			w0 := edge(sv[1], sv[2], px, py) / area
			w1 := edge(sv[2], sv[0], px, py) / area
			w2 := edge(sv[0], sv[1], px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*sv[0].z + w1*sv[1].z + w2*sv[2].z
			idx := y*s.width + x
			if z < 0 || z > 1 || z >= s.depth[idx] {
				continue
			}
			s.depth[idx] = z

			// Perspective-correct interpolation: weight each attribute by 1/w.
			p0, p1, p2 := w0*sv[0].invW, w1*sv[1].invW, w2*sv[2].invW
			norm := 1 / (p0 + p1 + p2)
			lit := sv[0].color.Scale(p0 * norm).
				Add(sv[1].color.Scale(p1 * norm)).
				Add(sv[2].color.Scale(p2 * norm))
			c := lit.RGBA8()
			s.color.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
			s.stats.Fragments++
		}
	}
	return true
}

// edge is the signed doubled area of the triangle (a, b, p).
func edge(a, b screenVertex, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
