// Package vegetation scatters instanced plant proxies over the terrain.
// Placement is rejection sampling: each candidate draws its own random
// stream, so the accepted set for a seed never depends on how many
// candidates before it were rejected for terrain reasons.
package vegetation

import (
	"iter"
	gomath "math"

	"github.com/Faultbox/worldforge/internal/gen/grid"
	"github.com/Faultbox/worldforge/internal/rng"
	wmath "github.com/Faultbox/worldforge/pkg/math"
	"github.com/Faultbox/worldforge/pkg/schema"
)

const (
	// Hard cap on instances regardless of density, to bound output size.
	maxInstances = 50000

	// Candidates on slopes steeper than this are rejected.
	maxSlope = 0.7

	// Keep plants off the lowest ground, which reads as waterline.
	minHeight = 0.5

	edgeMargin = 4.0
)

// Instance is one placed plant proxy. ColorVariant is a unit value that
// perturbs the species base color downstream.
type Instance struct {
	Position     wmath.Vec3
	Species      string
	Height       float64
	RotationY    float64
	ColorVariant float64
}

// Result carries the placement outcome alongside the instances.
type Result struct {
	Requested int
	Placed    []Instance
}

// RequestedCount is the density target for a world of the given edge
// length, after the hard cap.
func RequestedCount(spec schema.VegetationSpec, size float64) int {
	if spec.DensityPerKm2 <= 0 {
		return 0
	}
	areaKm2 := (size / 1000) * (size / 1000)
	requested := int(gomath.Round(spec.DensityPerKm2 * areaKm2))
	if requested > maxInstances {
		requested = maxInstances
	}
	return requested
}

// Sequence yields accepted instances lazily. The sequence is finite
// (bounded by the density target) and restartable: iterating it again,
// or building a new one from the same inputs, yields the same instances
// because every candidate derives its draws from its own index.
func Sequence(spec schema.VegetationSpec, h *grid.HeightField, mask *grid.OccupancyMask, seed int64) iter.Seq[Instance] {
	requested := RequestedCount(spec, h.Size())
	size := h.Size()

	return func(yield func(Instance) bool) {
		for i := 0; i < requested; i++ {
			stream := rng.New(seed, "vegetation", i)
			x := stream.Range(edgeMargin, size-edgeMargin)
			z := stream.Range(edgeMargin, size-edgeMargin)
			species := pickSpecies(spec.Species, stream)
			height := stream.Range(spec.HeightRange[0], spec.HeightRange[1])
			yaw := stream.Angle()
			variant := stream.Float64()

			if mask.OccupiedAt(x, z) {
				continue
			}
			if h.SlopeAt(x, z) > maxSlope {
				continue
			}
			y := h.Sample(x, z)
			if y < minHeight {
				continue
			}

			inst := Instance{
				Position:     wmath.Vec3{X: x, Y: y, Z: z},
				Species:      species,
				Height:       height,
				RotationY:    yaw,
				ColorVariant: variant,
			}
			if !yield(inst) {
				return
			}
		}
	}
}

// Scatter collects the full sequence. Candidates that land on occupied
// cells, steep slopes, or low ground are dropped rather than retried, so
// sparse usable terrain yields proportionally fewer plants.
func Scatter(spec schema.VegetationSpec, h *grid.HeightField, mask *grid.OccupancyMask, seed int64) Result {
	res := Result{Requested: RequestedCount(spec, h.Size())}
	for inst := range Sequence(spec, h, mask, seed) {
		res.Placed = append(res.Placed, inst)
	}
	return res
}

// pickSpecies draws from the weighted mix. With no mix configured every
// plant is a generic tree.
func pickSpecies(mix []schema.SpeciesMix, stream *rng.Stream) string {
	if len(mix) == 0 {
		return "tree"
	}
	weights := make([]float64, len(mix))
	for i, m := range mix {
		weights[i] = m.Weight
	}
	return mix[stream.Weighted(weights)].Name
}
