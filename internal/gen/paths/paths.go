// Package paths computes road and river corridors over the height field:
// spline resampling, terrain flattening and carving, corridor occupancy
// marking, and the ribbon surface meshes.
//
// Overlap policy: paths apply their terrain operation in declaration
// order. Roads flatten with last-write semantics, rivers carve with
// min-height semantics, so a river crossing an earlier road cuts through
// it and a road declared after a river bridges over the lowered samples.
// Where a single path self-intersects, the later traversal segment wins
// because nearest-point ties resolve to the highest arc distance.
package paths

import (
	gomath "math"

	"github.com/Faultbox/worldforge/internal/gen/grid"
	"github.com/Faultbox/worldforge/internal/gen/spline"
	"github.com/Faultbox/worldforge/pkg/math"
	"github.com/Faultbox/worldforge/pkg/schema"
)

// Path is one resolved road or river.
type Path struct {
	Spec   schema.PathSpec
	Spline *spline.Spline
}

// Network is the resolved set of paths of one generation run.
type Network struct {
	Paths []Path
}

// Build resamples every path spec into a spline. Waypoint Y components are
// discarded; paths follow the terrain surface.
func Build(specs []schema.PathSpec) *Network {
	n := &Network{Paths: make([]Path, 0, len(specs))}
	for _, spec := range specs {
		pts := make([]math.Vec2, len(spec.Waypoints))
		for i, wp := range spec.Waypoints {
			pts[i] = math.Vec2{X: wp[0], Y: wp[2]}
		}
		n.Paths = append(n.Paths, Path{Spec: spec, Spline: spline.New(pts)})
	}
	return n
}

// walkPoint is one constant-speed sample along a path spline.
type walkPoint struct {
	d       float64 // arc distance
	pos     math.Vec2
	flatAvg float64 // running average of pre-path terrain along the corridor
	edgeMin float64 // lower of the two corridor-edge elevations (pre-path)
}

// Carve applies every path to the height field in declaration order and
// marks the corridors in the occupancy mask.
func (n *Network) Carve(h *grid.HeightField, mask *grid.OccupancyMask) {
	for i := range n.Paths {
		carveOne(&n.Paths[i], h, mask)
	}
}

func carveOne(p *Path, h *grid.HeightField, mask *grid.OccupancyMask) {
	halfW := p.Spec.Width / 2
	margin := halfW // falloff band beyond the corridor, roads only
	reach := halfW + margin

	// Snapshot the field as it stands before this path so the running
	// average and edge references are not affected by the carve itself.
	snap := h.Clone()

	step := h.Step() / 2
	if step > halfW {
		step = halfW
	}
	if step <= 0 {
		step = 1
	}

	var pts []walkPoint
	var sum float64
	p.Spline.Walk(step, func(d float64, pos math.Vec2) {
		perp := p.Spline.Tangent(d).Perp()
		left := pos.Add(perp.Scale(halfW))
		right := pos.Sub(perp.Scale(halfW))
		edgeMin := gomath.Min(snap.Sample(left.X, left.Y), snap.Sample(right.X, right.Y))

		sum += snap.Sample(pos.X, pos.Y)
		pts = append(pts, walkPoint{
			d:       d,
			pos:     pos,
			flatAvg: sum / float64(len(pts)+1),
			edgeMin: edgeMin,
		})
	})
	if len(pts) == 0 {
		return
	}

	// Bounding box of the corridor in sample indices.
	minX, minZ := gomath.Inf(1), gomath.Inf(1)
	maxX, maxZ := gomath.Inf(-1), gomath.Inf(-1)
	for _, wp := range pts {
		minX = gomath.Min(minX, wp.pos.X)
		maxX = gomath.Max(maxX, wp.pos.X)
		minZ = gomath.Min(minZ, wp.pos.Y)
		maxZ = gomath.Max(maxZ, wp.pos.Y)
	}
	res := h.Res()
	ix0 := clampIdx(int((minX-reach)/h.Step()), res)
	ix1 := clampIdx(int((maxX+reach)/h.Step())+1, res)
	iz0 := clampIdx(int((minZ-reach)/h.Step()), res)
	iz1 := clampIdx(int((maxZ+reach)/h.Step())+1, res)

	for iz := iz0; iz <= iz1; iz++ {
		for ix := ix0; ix <= ix1; ix++ {
			x, z := h.Pos(ix, iz)
			wp, dist := nearest(pts, math.Vec2{X: x, Y: z})
			if dist > reach {
				continue
			}

			switch p.Spec.Kind {
			case schema.PathRoad:
				// Blend toward the running average: full inside the
				// corridor, smooth falloff across the margin.
				w := 1.0
				if dist > halfW {
					w = 1 - math.Smoothstep((dist-halfW)/margin)
				}
				h.Set(ix, iz, math.Lerp(h.At(ix, iz), wp.flatAvg, w))
				if dist <= halfW {
					mask.Mark(ix, iz)
				}

			case schema.PathRiver:
				// Strictly-inside samples drop to at least depth below
				// the corridor edge, deepest at the centerline. Samples
				// on or past the edge are untouched, which is what
				// guarantees the minimum depth invariant.
				if dist >= halfW {
					continue
				}
				depth := p.Spec.Depth
				bed := wp.edgeMin - depth - depth*0.5*(1-dist/halfW)
				if bed < h.At(ix, iz) {
					h.Set(ix, iz, bed)
				}
				mask.Mark(ix, iz)
			}
		}
	}
}

// nearest returns the walk point closest to q. Ties pick the later arc
// distance, so self-intersecting corridors resolve to the later segment.
func nearest(pts []walkPoint, q math.Vec2) (walkPoint, float64) {
	best := 0
	bestD := gomath.Inf(1)
	for i, wp := range pts {
		if d := wp.pos.Distance(q); d <= bestD {
			best, bestD = i, d
		}
	}
	return pts[best], bestD
}

func clampIdx(i, res int) int {
	if i < 0 {
		return 0
	}
	if i > res-1 {
		return res - 1
	}
	return i
}
