// Package mesh defines the triangle mesh representation shared by every
// geometry-producing stage, plus normal smoothing and manifold checks.
package mesh

import (
	gomath "math"

	"github.com/Faultbox/worldforge/pkg/math"
)

// Material identifies the surface material of a mesh group. Each material
// maps to one exported texture.
type Material string

// Materials used by the generator.
const (
	MatTerrain  Material = "terrain" // grass/dirt ground
	MatRock     Material = "rock"
	MatSand     Material = "sand"
	MatSnow     Material = "snow"
	MatWater    Material = "water"
	MatAsphalt  Material = "asphalt"
	MatMetal    Material = "metal"
	MatConcrete Material = "concrete"
	MatFoliage  Material = "foliage"
)

// Vertex is one mesh vertex with position, normal and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// Mesh is an indexed triangle mesh with a single material.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Material Material
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// NewBounds returns an empty bounds ready for expansion.
func NewBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
}

// Expand grows b to include point p.
func (b *Bounds) Expand(p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Translate moves every vertex by offset.
func (m *Mesh) Translate(offset math.Vec3) {
	dx, dy, dz := float32(offset.X), float32(offset.Y), float32(offset.Z)
	for i := range m.Vertices {
		m.Vertices[i].Position[0] += dx
		m.Vertices[i].Position[1] += dy
		m.Vertices[i].Position[2] += dz
	}
}

// RotateY rotates every vertex and normal around the Y axis through the
// origin by angle radians.
func (m *Mesh) RotateY(angle float64) {
	sin := float32(gomath.Sin(angle))
	cos := float32(gomath.Cos(angle))
	rot := func(v *[3]float32) {
		x, z := v[0], v[2]
		v[0] = x*cos + z*sin
		v[2] = -x*sin + z*cos
	}
	for i := range m.Vertices {
		rot(&m.Vertices[i].Position)
		rot(&m.Vertices[i].Normal)
	}
}

// ScaleXYZ scales every vertex non-uniformly about the origin. Normals are
// left untouched; call ComputeNormals afterwards if the scale is
// non-uniform.
func (m *Mesh) ScaleXYZ(sx, sy, sz float64) {
	fx, fy, fz := float32(sx), float32(sy), float32(sz)
	for i := range m.Vertices {
		m.Vertices[i].Position[0] *= fx
		m.Vertices[i].Position[1] *= fy
		m.Vertices[i].Position[2] *= fz
	}
}

// ComputeNormals recomputes per-vertex normals as the average of adjacent
// face normals, weighted by face area (unnormalized cross products sum).
func ComputeNormals(m *Mesh) {
	for i := range m.Vertices {
		m.Vertices[i].Normal = [3]float32{}
	}
	for t := 0; t+2 < len(m.Indices); t += 3 {
		i0, i1, i2 := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		p0 := m.Vertices[i0].Position
		p1 := m.Vertices[i1].Position
		p2 := m.Vertices[i2].Position

		e1 := [3]float32{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
		e2 := [3]float32{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
		n := [3]float32{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}
		for _, idx := range []uint32{i0, i1, i2} {
			m.Vertices[idx].Normal[0] += n[0]
			m.Vertices[idx].Normal[1] += n[1]
			m.Vertices[idx].Normal[2] += n[2]
		}
	}
	for i := range m.Vertices {
		m.Vertices[i].Normal = normalize(m.Vertices[i].Normal)
	}
}

// SmoothNormals averages normals across vertices that share a quantized
// position, removing hard seams between separately built surfaces.
func SmoothNormals(m *Mesh) {
	const epsilon = 0.001

	posMap := make(map[[3]int32][]int)
	for i := range m.Vertices {
		posMap[quantize(m.Vertices[i].Position, epsilon)] = append(
			posMap[quantize(m.Vertices[i].Position, epsilon)], i)
	}

	for _, indices := range posMap {
		if len(indices) < 2 {
			continue
		}
		var sum [3]float32
		for _, idx := range indices {
			sum[0] += m.Vertices[idx].Normal[0]
			sum[1] += m.Vertices[idx].Normal[1]
			sum[2] += m.Vertices[idx].Normal[2]
		}
		avg := normalize(sum)
		for _, idx := range indices {
			m.Vertices[idx].Normal = avg
		}
	}
}

// BoundaryEdgeCount returns the number of edges bordering exactly one
// triangle. Vertices are matched by quantized position, so duplicated
// vertices along seams do not count as boundaries. A closed manifold mesh
// returns zero.
func BoundaryEdgeCount(m *Mesh) int {
	const epsilon = 0.001

	// Collapse duplicate positions to canonical ids.
	ids := make([]int, len(m.Vertices))
	canon := make(map[[3]int32]int)
	for i := range m.Vertices {
		key := quantize(m.Vertices[i].Position, epsilon)
		id, ok := canon[key]
		if !ok {
			id = len(canon)
			canon[key] = id
		}
		ids[i] = id
	}

	type edge struct{ a, b int }
	count := make(map[edge]int)
	for t := 0; t+2 < len(m.Indices); t += 3 {
		tri := [3]int{
			ids[m.Indices[t]],
			ids[m.Indices[t+1]],
			ids[m.Indices[t+2]],
		}
		for i := 0; i < 3; i++ {
			a, b := tri[i], tri[(i+1)%3]
			if a > b {
				a, b = b, a
			}
			count[edge{a, b}]++
		}
	}

	boundaries := 0
	for _, c := range count {
		if c == 1 {
			boundaries++
		}
	}
	return boundaries
}

func quantize(p [3]float32, epsilon float32) [3]int32 {
	return [3]int32{
		int32(p[0] / epsilon),
		int32(p[1] / epsilon),
		int32(p[2] / epsilon),
	}
}

func normalize(v [3]float32) [3]float32 {
	l := float32(gomath.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if l < 0.0001 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
