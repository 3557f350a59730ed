// Package terrain synthesizes the ground height field and triangulates it
// into per-material mesh groups.
package terrain

import (
	"strings"
	"sync"

	"github.com/Faultbox/worldforge/internal/gen/grid"
	"github.com/Faultbox/worldforge/internal/gen/mesh"
	"github.com/Faultbox/worldforge/internal/gen/noise"
)

// Material classifier thresholds. Fixed; not schema-tunable.
const (
	sandMaxHeight = 3.0   // meters: below this the ground reads as sand
	snowMinHeight = 150.0 // meters: above this the ground reads as snow
	rockMinSlope  = 0.9   // rise over run: steeper cells read as rock
)

// AmplitudeScale returns the biome-dependent elevation multiplier applied
// on top of the schema's amplitude range.
func AmplitudeScale(biome, terrainType string) float64 {
	switch {
	case strings.Contains(terrainType, "mountain"):
		return 1.4
	case strings.Contains(terrainType, "mesa"), strings.Contains(terrainType, "canyon"):
		return 1.2
	case strings.Contains(terrainType, "hill"):
		return 1.0
	case strings.Contains(terrainType, "plain"), strings.Contains(terrainType, "flat"):
		return 0.5
	case strings.Contains(terrainType, "archipelago"), strings.Contains(terrainType, "island"):
		return 0.8
	}
	switch {
	case strings.Contains(biome, "desert"), strings.Contains(biome, "tundra"):
		return 0.8
	default:
		return 1.0
	}
}

// Synthesize samples the noise field into a height field for a world with
// the given cell count per side and edge length in meters. Rows are sampled
// in parallel across the given number of workers; each worker writes a
// disjoint row range, so the result is identical for any worker count.
func Synthesize(field *noise.Field, cells int, size, ampScale float64, workers int) *grid.HeightField {
	h := grid.NewHeightField(cells, size)
	res := h.Res()
	if workers < 1 {
		workers = 1
	}
	if workers > res {
		workers = res
	}

	var wg sync.WaitGroup
	rowsPer := (res + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * rowsPer
		hi := lo + rowsPer
		if hi > res {
			hi = res
		}
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for iz := lo; iz < hi; iz++ {
				for ix := 0; ix < res; ix++ {
					x, z := h.Pos(ix, iz)
					h.Set(ix, iz, field.Sample(x, z)*ampScale)
				}
			}
		}(lo, hi)
	}
	wg.Wait()
	return h
}

// Classify returns the ground material for a sample at the given elevation
// (meters) and slope (rise over run).
func Classify(height, slope float64) mesh.Material {
	switch {
	case slope > rockMinSlope:
		return mesh.MatRock
	case height > snowMinHeight:
		return mesh.MatSnow
	case height < sandMaxHeight:
		return mesh.MatSand
	default:
		return mesh.MatTerrain
	}
}

// BuildMeshes triangulates the height field into one mesh per ground
// material. Each cell contributes two triangles with consistent
// upward-facing winding; vertex normals are averaged face normals over the
// whole grid, so material seams stay smooth.
func BuildMeshes(h *grid.HeightField) []*mesh.Mesh {
	res := h.Res()
	size := h.Size()

	// Full vertex grid with planar UVs, normals computed over the complete
	// triangulation before splitting into material groups.
	full := &mesh.Mesh{
		Vertices: make([]mesh.Vertex, res*res),
		Indices:  make([]uint32, 0, (res-1)*(res-1)*6),
	}
	for iz := 0; iz < res; iz++ {
		for ix := 0; ix < res; ix++ {
			x, z := h.Pos(ix, iz)
			full.Vertices[iz*res+ix] = mesh.Vertex{
				Position: [3]float32{float32(x), float32(h.At(ix, iz)), float32(z)},
				UV:       [2]float32{float32(x / size * uvTiling), float32(z / size * uvTiling)},
			}
		}
	}
	for iz := 0; iz < res-1; iz++ {
		for ix := 0; ix < res-1; ix++ {
			a := uint32(iz*res + ix)
			b := a + 1
			c := a + uint32(res)
			d := c + 1
			full.Indices = append(full.Indices, a, c, b, b, c, d)
		}
	}
	mesh.ComputeNormals(full)

	// Assign each cell to a material by its center height and slope, then
	// split the index buffer per material, compacting vertices per group.
	type group struct {
		m     *mesh.Mesh
		remap map[uint32]uint32
	}
	groups := make(map[mesh.Material]*group)
	order := []mesh.Material{} // deterministic output ordering

	for iz := 0; iz < res-1; iz++ {
		for ix := 0; ix < res-1; ix++ {
			center := (h.At(ix, iz) + h.At(ix+1, iz) + h.At(ix, iz+1) + h.At(ix+1, iz+1)) / 4
			slope := h.Slope(ix, iz)
			mat := Classify(center, slope)

			g, ok := groups[mat]
			if !ok {
				g = &group{
					m:     &mesh.Mesh{Material: mat},
					remap: make(map[uint32]uint32),
				}
				groups[mat] = g
				order = append(order, mat)
			}

			a := uint32(iz*res + ix)
			b := a + 1
			c := a + uint32(res)
			d := c + 1
			for _, idx := range [6]uint32{a, c, b, b, c, d} {
				ri, ok := g.remap[idx]
				if !ok {
					ri = uint32(len(g.m.Vertices))
					g.m.Vertices = append(g.m.Vertices, full.Vertices[idx])
					g.remap[idx] = ri
				}
				g.m.Indices = append(g.m.Indices, ri)
			}
		}
	}

	out := make([]*mesh.Mesh, 0, len(order))
	for _, mat := range order {
		out = append(out, groups[mat].m)
	}
	return out
}

// uvTiling repeats the ground texture across the world so it does not
// stretch over kilometers.
const uvTiling = 64.0
