// Package scene merges generator output into per-material draw buffers.
package scene

import (
	gomath "math"

	"github.com/Faultbox/worldforge/internal/gen/mesh"
	"github.com/Faultbox/worldforge/internal/gen/vegetation"
)

const proxySides = 8

// Scene is the assembled world: one buffer per material, in first-seen
// order, plus aggregate counts and bounds for the exporter.
type Scene struct {
	Buffers       []*mesh.Mesh
	Bounds        mesh.Bounds
	VertexCount   int
	TriangleCount int
}

// Assemble merges terrain, path, and structure meshes and bakes
// vegetation instances into foliage proxy cones. Input order is
// preserved, so the same generator output always assembles into the
// same buffer layout.
func Assemble(terrain, paths, structures []*mesh.Mesh, veg []vegetation.Instance) *Scene {
	s := &Scene{Bounds: mesh.NewBounds()}
	index := make(map[mesh.Material]int)

	for _, group := range [][]*mesh.Mesh{terrain, paths, structures} {
		for _, m := range group {
			s.merge(index, m)
		}
	}
	if len(veg) > 0 {
		s.merge(index, foliageProxies(veg))
	}

	for _, b := range s.Buffers {
		s.VertexCount += len(b.Vertices)
		s.TriangleCount += b.TriangleCount()
		for _, v := range b.Vertices {
			s.Bounds.Expand(v.Position)
		}
	}
	return s
}

func (s *Scene) merge(index map[mesh.Material]int, m *mesh.Mesh) {
	if m == nil || len(m.Vertices) == 0 {
		return
	}
	i, ok := index[m.Material]
	if !ok {
		i = len(s.Buffers)
		index[m.Material] = i
		s.Buffers = append(s.Buffers, &mesh.Mesh{Material: m.Material})
	}
	buf := s.Buffers[i]
	offset := uint32(len(buf.Vertices))
	buf.Vertices = append(buf.Vertices, m.Vertices...)
	for _, idx := range m.Indices {
		buf.Indices = append(buf.Indices, offset+idx)
	}
}

// foliageProxies bakes every vegetation instance into one mesh of low-poly
// cones. The cone stands on the instance position with its radius derived
// from the plant height.
func foliageProxies(veg []vegetation.Instance) *mesh.Mesh {
	m := &mesh.Mesh{
		Vertices: make([]mesh.Vertex, 0, len(veg)*(proxySides+2)),
		Indices:  make([]uint32, 0, len(veg)*proxySides*6),
		Material: mesh.MatFoliage,
	}
	for _, inst := range veg {
		appendProxyCone(m, inst)
	}
	return m
}

func appendProxyCone(m *mesh.Mesh, inst vegetation.Instance) {
	radius := inst.Height * 0.35
	cx, cz := inst.Position.X, inst.Position.Z
	y0 := inst.Position.Y
	y1 := y0 + inst.Height

	slope := radius / inst.Height
	nY := float32(slope / gomath.Sqrt(1+slope*slope))
	nXZ := float32(1 / gomath.Sqrt(1+slope*slope))

	base := make([]uint32, proxySides+1)
	for s := 0; s <= proxySides; s++ {
		theta := inst.RotationY + 2*gomath.Pi*float64(s)/proxySides
		sinT, cosT := gomath.Sincos(theta)
		base[s] = uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices, mesh.Vertex{
			Position: [3]float32{float32(cx + radius*cosT), float32(y0), float32(cz + radius*sinT)},
			Normal:   [3]float32{nXZ * float32(cosT), nY, nXZ * float32(sinT)},
			UV:       [2]float32{float32(s) / proxySides, 0},
		})
	}
	apex := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, mesh.Vertex{
		Position: [3]float32{float32(cx), float32(y1), float32(cz)},
		Normal:   [3]float32{0, 1, 0},
		UV:       [2]float32{0.5, 1},
	})
	for s := 0; s < proxySides; s++ {
		m.Indices = append(m.Indices, base[s], apex, base[s+1])
	}
}
