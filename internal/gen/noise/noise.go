// Package noise implements the seeded multi-octave height function that
// drives terrain synthesis.
package noise

import (
	"fmt"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/Faultbox/worldforge/internal/rng"
	"github.com/Faultbox/worldforge/pkg/schema"
)

// Field is a deterministic 2D fractal noise field over the world extent.
// Each octave uses its own sub-seeded simplex generator, scaled by
// persistence^i in amplitude and lacunarity^i in frequency. A Field has no
// mutable state after construction and is safe for concurrent sampling.
type Field struct {
	params  schema.NoiseParams
	octaves []opensimplex.Noise
	size    float64 // world edge length in meters
	maxAmp  float64 // sum of octave amplitudes, for normalization
}

// New builds a Field for the given noise parameters and seed over a world
// of the given edge length in meters. Configuration bounds are rejected
// before any generation work happens.
func New(params schema.NoiseParams, seed int64, size float64) (*Field, error) {
	if params.Octaves < 1 {
		return nil, fmt.Errorf("noise: octaves must be at least 1, got %d", params.Octaves)
	}
	if params.Lacunarity <= 1 {
		return nil, fmt.Errorf("noise: lacunarity must be greater than 1, got %g", params.Lacunarity)
	}
	if size <= 0 {
		return nil, fmt.Errorf("noise: world size must be positive, got %g", size)
	}

	f := &Field{
		params:  params,
		octaves: make([]opensimplex.Noise, params.Octaves),
		size:    size,
	}
	amp := 1.0
	for i := range f.octaves {
		f.octaves[i] = opensimplex.New(rng.Sub(seed, "noise", i))
		f.maxAmp += amp
		amp *= params.Persistence
	}
	return f, nil
}

// Sample returns the elevation at world position (x, z) in meters, remapped
// into the configured amplitude range. Coordinates are clamped to the world
// extent, so sampling past an edge repeats the edge value; the field stays
// continuous at the boundary.
func (f *Field) Sample(x, z float64) float64 {
	x = clamp(x, 0, f.size)
	z = clamp(z, 0, f.size)

	// Normalized coordinates keep the feature size proportional to the
	// world, so frequency means the same thing at every scale.
	u := x / f.size * f.params.Frequency
	v := z / f.size * f.params.Frequency

	var sum float64
	amp := 1.0
	freq := 1.0
	for _, gen := range f.octaves {
		sum += gen.Eval2(u*freq, v*freq) * amp
		freq *= f.params.Lacunarity
		amp *= f.params.Persistence
	}

	// sum is in [-maxAmp, maxAmp]; normalize to [0,1] then remap.
	n := (sum/f.maxAmp + 1) * 0.5
	lo, hi := f.params.AmplitudeRange[0], f.params.AmplitudeRange[1]
	return lo + n*(hi-lo)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
