package paths

import (
	gomath "math"

	"github.com/Faultbox/worldforge/internal/gen/grid"
	"github.com/Faultbox/worldforge/internal/gen/mesh"
	"github.com/Faultbox/worldforge/pkg/math"
	"github.com/Faultbox/worldforge/pkg/schema"
)

// Surface lift keeps ribbons from z-fighting with the terrain they sit on.
const roadLift = 0.08

// BuildMeshes produces one ribbon surface mesh per path: an asphalt strip
// for roads following the carved terrain, a water surface for rivers set
// slightly below the corridor edge. Call after Carve.
func (n *Network) BuildMeshes(h *grid.HeightField) []*mesh.Mesh {
	out := make([]*mesh.Mesh, 0, len(n.Paths))
	for i := range n.Paths {
		if m := ribbon(&n.Paths[i], h); m != nil {
			out = append(out, m)
		}
	}
	return out
}

func ribbon(p *Path, h *grid.HeightField) *mesh.Mesh {
	halfW := p.Spec.Width / 2

	mat := mesh.MatAsphalt
	if p.Spec.Kind == schema.PathRiver {
		mat = mesh.MatWater
	}
	if p.Spec.Material != "" {
		mat = mesh.Material(p.Spec.Material)
	}
	m := &mesh.Mesh{Material: mat}

	step := h.Step() / 2
	if step <= 0 {
		step = 1
	}

	rows := 0
	p.Spline.Walk(step, func(d float64, pos math.Vec2) {
		perp := p.Spline.Tangent(d).Perp()
		left := pos.Add(perp.Scale(halfW))
		right := pos.Sub(perp.Scale(halfW))

		var y float64
		if p.Spec.Kind == schema.PathRiver {
			// Water surface sits below the corridor edge, above the bed.
			edge := gomath.Min(h.Sample(left.X, left.Y), h.Sample(right.X, right.Y))
			y = edge - p.Spec.Depth*0.35
		} else {
			y = h.Sample(pos.X, pos.Y) + roadLift
		}

		u := float32(d / p.Spec.Width)
		m.Vertices = append(m.Vertices,
			mesh.Vertex{
				Position: [3]float32{float32(left.X), float32(y), float32(left.Y)},
				Normal:   [3]float32{0, 1, 0},
				UV:       [2]float32{u, 0},
			},
			mesh.Vertex{
				Position: [3]float32{float32(right.X), float32(y), float32(right.Y)},
				Normal:   [3]float32{0, 1, 0},
				UV:       [2]float32{u, 1},
			},
		)
		rows++
	})

	if rows < 2 {
		return nil
	}
	for r := 0; r < rows-1; r++ {
		l0 := uint32(r * 2)
		r0 := l0 + 1
		l1 := l0 + 2
		r1 := l0 + 3
		m.Indices = append(m.Indices, l0, l1, r0, r0, l1, r1)
	}
	return m
}
