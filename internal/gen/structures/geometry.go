// Package structures places and builds parametric structure geometry:
// towers, spires, domes, and bridges. The kind set is closed; every
// geometry construction switches exhaustively over it.
package structures

import (
	gomath "math"

	"github.com/Faultbox/worldforge/internal/gen/mesh"
)

// Tessellation resolution for curved surfaces.
const (
	cylinderSides = 16
	domeSlices    = 20
	domeStacks    = 12
)

// Tower builds a stack of tapering closed cylinder segments capped with a
// cone roof. The mesh spans y in [0, height] with the footprint centered
// on the origin. Cylindrical UVs: u wraps the circumference, v runs up
// the height.
func Tower(height, baseRadius float64, segments int, taper float64) *mesh.Mesh {
	if segments < 1 {
		segments = 1
	}
	if taper <= 0 || taper > 1 {
		taper = 0.8
	}

	m := &mesh.Mesh{Material: mesh.MatMetal}

	bodyHeight := height * 0.85
	segHeight := bodyHeight / float64(segments)
	radius := baseRadius
	for i := 0; i < segments; i++ {
		y0 := segHeight * float64(i)
		appendCylinder(m, radius, y0, y0+segHeight, height)
		radius *= taper
	}

	// Roof cone sits on the last segment's radius.
	appendCone(m, radius/taper, bodyHeight, height, height)
	return m
}

// Spire builds a single elongated closed cone spanning y in [0, height].
func Spire(height, baseRadius float64) *mesh.Mesh {
	m := &mesh.Mesh{Material: mesh.MatMetal}
	appendCone(m, baseRadius, 0, height, height)
	return m
}

// Dome builds a latitude/longitude sphere approximation cut at a base
// plane and capped with a flat disk, so the result is watertight. cutRatio
// is the removed fraction of the sphere measured in latitude: 0.5 leaves a
// hemisphere, larger values leave a shallower cap. rimScale widens the base
// in X/Z without changing the apex, which stays at y=height with the rim at
// y=0. Spherical UVs.
func Dome(height, cutRatio, rimScale float64) *mesh.Mesh {
	if cutRatio <= 0 || cutRatio > 0.9 {
		cutRatio = 0.5
	}
	if rimScale <= 0 {
		rimScale = 1
	}
	m := &mesh.Mesh{Material: mesh.MatConcrete}

	phiCut := gomath.Pi * (1 - cutRatio)
	radius := height / (1 - gomath.Cos(phiCut))
	// Sphere center height above the cut plane.
	centerY := -radius * gomath.Cos(phiCut)

	// Stacks from the apex (phi=0) down to the cut latitude. The cut sits
	// exactly on a stack ring so the rim is a closed vertex loop.
	ring := func(phi float64) []uint32 {
		ids := make([]uint32, domeSlices+1)
		sinPhi, cosPhi := gomath.Sincos(phi)
		// Normals for the widened surface: divide the lateral components
		// by the scale and renormalize.
		nLen := gomath.Sqrt(sinPhi*sinPhi/(rimScale*rimScale) + cosPhi*cosPhi)
		for s := 0; s <= domeSlices; s++ {
			theta := 2 * gomath.Pi * float64(s) / domeSlices
			sinT, cosT := gomath.Sincos(theta)
			p := [3]float32{
				float32(radius * sinPhi * cosT * rimScale),
				float32(centerY + radius*cosPhi),
				float32(radius * sinPhi * sinT * rimScale),
			}
			n := [3]float32{
				float32(sinPhi * cosT / (rimScale * nLen)),
				float32(cosPhi / nLen),
				float32(sinPhi * sinT / (rimScale * nLen)),
			}
			ids[s] = uint32(len(m.Vertices))
			m.Vertices = append(m.Vertices, mesh.Vertex{
				Position: p,
				Normal:   n,
				UV:       [2]float32{float32(theta / (2 * gomath.Pi)), float32(phi / gomath.Pi)},
			})
		}
		return ids
	}

	var prev []uint32
	for st := 0; st <= domeStacks; st++ {
		phi := phiCut * float64(st) / domeStacks
		cur := ring(phi)
		if prev != nil {
			for s := 0; s < domeSlices; s++ {
				a, b := prev[s], prev[s+1]
				c, d := cur[s], cur[s+1]
				m.Indices = append(m.Indices, a, b, c, c, b, d)
			}
		}
		prev = cur
	}

	// Rim cap: flat disk fanned from a center vertex at the cut plane.
	center := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, mesh.Vertex{
		Position: [3]float32{0, 0, 0},
		Normal:   [3]float32{0, -1, 0},
		UV:       [2]float32{0.5, 1},
	})
	rim := prev
	for s := 0; s < domeSlices; s++ {
		m.Indices = append(m.Indices, center, rim[s], rim[s+1])
	}
	return m
}

// Bridge builds a deck spanning the X axis with periodic support pylons
// beneath. The deck runs from -span/2 to span/2 at deck height; pylons
// reach down to y=-2 so they embed in the terrain. Pylon spacing derives
// from the span.
func Bridge(span, deckHeight, width float64) *mesh.Mesh {
	m := &mesh.Mesh{Material: mesh.MatConcrete}
	thickness := gomath.Max(width*0.15, 0.8)

	appendBox(m,
		-span/2, span/2,
		deckHeight-thickness, deckHeight,
		-width/2, width/2)

	supports := int(span/15) + 1
	pylonW := width * 0.2
	for i := 1; i <= supports; i++ {
		x := -span/2 + span*float64(i)/float64(supports+1)
		appendBox(m,
			x-pylonW/2, x+pylonW/2,
			-2, deckHeight-thickness,
			-pylonW/2, pylonW/2)
	}
	return m
}

// appendCylinder adds a closed vertical cylinder (lateral surface plus
// both end caps). uvHeight scales v so stacked segments share one
// cylindrical projection.
func appendCylinder(m *mesh.Mesh, radius, y0, y1, uvHeight float64) {
	var bottom, top []uint32
	for s := 0; s <= cylinderSides; s++ {
		theta := 2 * gomath.Pi * float64(s) / cylinderSides
		sinT, cosT := gomath.Sincos(theta)
		x := float32(radius * cosT)
		z := float32(radius * sinT)
		n := [3]float32{float32(cosT), 0, float32(sinT)}
		u := float32(theta / (2 * gomath.Pi))

		bottom = append(bottom, uint32(len(m.Vertices)))
		m.Vertices = append(m.Vertices, mesh.Vertex{
			Position: [3]float32{x, float32(y0), z},
			Normal:   n,
			UV:       [2]float32{u, float32(y0 / uvHeight)},
		})
		top = append(top, uint32(len(m.Vertices)))
		m.Vertices = append(m.Vertices, mesh.Vertex{
			Position: [3]float32{x, float32(y1), z},
			Normal:   n,
			UV:       [2]float32{u, float32(y1 / uvHeight)},
		})
	}
	for s := 0; s < cylinderSides; s++ {
		b0, t0 := bottom[s], top[s]
		b1, t1 := bottom[s+1], top[s+1]
		m.Indices = append(m.Indices, b0, t0, b1, b1, t0, t1)
	}

	// End caps fan from center vertices.
	capFan(m, bottom, float32(y0), false, uvHeight)
	capFan(m, top, float32(y1), true, uvHeight)
}

// appendCone adds a closed cone: lateral fan to the apex plus a base cap.
func appendCone(m *mesh.Mesh, radius, y0, y1, uvHeight float64) {
	var base []uint32
	slope := radius / (y1 - y0)
	nY := float32(slope / gomath.Sqrt(1+slope*slope))
	nXZ := float32(1 / gomath.Sqrt(1+slope*slope))

	for s := 0; s <= cylinderSides; s++ {
		theta := 2 * gomath.Pi * float64(s) / cylinderSides
		sinT, cosT := gomath.Sincos(theta)
		base = append(base, uint32(len(m.Vertices)))
		m.Vertices = append(m.Vertices, mesh.Vertex{
			Position: [3]float32{float32(radius * cosT), float32(y0), float32(radius * sinT)},
			Normal:   [3]float32{nXZ * float32(cosT), nY, nXZ * float32(sinT)},
			UV:       [2]float32{float32(theta / (2 * gomath.Pi)), float32(y0 / uvHeight)},
		})
	}
	apex := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, mesh.Vertex{
		Position: [3]float32{0, float32(y1), 0},
		Normal:   [3]float32{0, 1, 0},
		UV:       [2]float32{0.5, float32(y1 / uvHeight)},
	})
	for s := 0; s < cylinderSides; s++ {
		m.Indices = append(m.Indices, base[s], apex, base[s+1])
	}
	capFan(m, base, float32(y0), false, uvHeight)
}

// capFan closes a ring with a triangle fan around a center vertex.
// up selects the facing direction: true caps the top of a solid.
func capFan(m *mesh.Mesh, ring []uint32, y float32, up bool, uvHeight float64) {
	normal := [3]float32{0, 1, 0}
	if !up {
		normal[1] = -1
	}
	center := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, mesh.Vertex{
		Position: [3]float32{0, y, 0},
		Normal:   normal,
		UV:       [2]float32{0.5, float32(float64(y) / uvHeight)},
	})
	for s := 0; s < len(ring)-1; s++ {
		if up {
			m.Indices = append(m.Indices, center, ring[s+1], ring[s])
		} else {
			m.Indices = append(m.Indices, center, ring[s], ring[s+1])
		}
	}
}

// appendBox adds a closed axis-aligned box.
func appendBox(m *mesh.Mesh, x0, x1, y0, y1, z0, z1 float64) {
	base := uint32(len(m.Vertices))
	corners := [8][3]float32{
		{float32(x0), float32(y0), float32(z0)},
		{float32(x1), float32(y0), float32(z0)},
		{float32(x1), float32(y0), float32(z1)},
		{float32(x0), float32(y0), float32(z1)},
		{float32(x0), float32(y1), float32(z0)},
		{float32(x1), float32(y1), float32(z0)},
		{float32(x1), float32(y1), float32(z1)},
		{float32(x0), float32(y1), float32(z1)},
	}
	for i, c := range corners {
		m.Vertices = append(m.Vertices, mesh.Vertex{
			Position: c,
			UV:       [2]float32{float32((i & 1) ^ (i >> 1 & 1)), float32(i >> 2)},
		})
	}
	// Quads: bottom, top, four sides. Outward winding.
	quads := [6][4]uint32{
		{0, 1, 2, 3}, // bottom (-Y)
		{4, 7, 6, 5}, // top (+Y)
		{0, 4, 5, 1}, // -Z
		{2, 6, 7, 3}, // +Z
		{0, 3, 7, 4}, // -X
		{1, 5, 6, 2}, // +X
	}
	for _, q := range quads {
		m.Indices = append(m.Indices,
			base+q[0], base+q[1], base+q[2],
			base+q[0], base+q[2], base+q[3])
	}
	mesh.ComputeNormals(m)
}
