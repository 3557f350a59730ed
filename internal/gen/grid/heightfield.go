// Package grid holds the dense 2D buffers shared across generation stages:
// the terrain HeightField and the placement OccupancyMask.
package grid

import "math"

// HeightField is a dense grid of elevation samples over a square world.
// Samples sit on cell corners: a world with N cells per side has N+1
// samples per side. The field is mutated by the path network phase and is
// read-only for every stage after it.
type HeightField struct {
	res  int // samples per side
	size float64
	step float64
	data []float64
}

// NewHeightField allocates a zeroed field for a world with the given cell
// count per side and edge length in meters.
func NewHeightField(cells int, size float64) *HeightField {
	res := cells + 1
	return &HeightField{
		res:  res,
		size: size,
		step: size / float64(cells),
		data: make([]float64, res*res),
	}
}

// Res returns the number of samples per side.
func (h *HeightField) Res() int { return h.res }

// Size returns the world edge length in meters.
func (h *HeightField) Size() float64 { return h.size }

// Step returns the distance between adjacent samples in meters.
func (h *HeightField) Step() float64 { return h.step }

// At returns the elevation at sample (ix, iz).
func (h *HeightField) At(ix, iz int) float64 {
	return h.data[iz*h.res+ix]
}

// Set stores the elevation at sample (ix, iz).
func (h *HeightField) Set(ix, iz int, v float64) {
	h.data[iz*h.res+ix] = v
}

// Data exposes the raw sample buffer in row-major (z, then x) order.
// Callers must treat it as read-only outside the synthesis phase.
func (h *HeightField) Data() []float64 { return h.data }

// Pos returns the world position of sample (ix, iz).
func (h *HeightField) Pos(ix, iz int) (x, z float64) {
	return float64(ix) * h.step, float64(iz) * h.step
}

// Sample returns the bilinearly interpolated elevation at a world position.
// Positions outside the field clamp to the nearest edge sample.
func (h *HeightField) Sample(x, z float64) float64 {
	fx := clamp(x/h.step, 0, float64(h.res-1))
	fz := clamp(z/h.step, 0, float64(h.res-1))

	ix := int(fx)
	iz := int(fz)
	if ix >= h.res-1 {
		ix = h.res - 2
	}
	if iz >= h.res-1 {
		iz = h.res - 2
	}
	tx := fx - float64(ix)
	tz := fz - float64(iz)

	south := h.At(ix, iz)*(1-tx) + h.At(ix+1, iz)*tx
	north := h.At(ix, iz+1)*(1-tx) + h.At(ix+1, iz+1)*tx
	return south*(1-tz) + north*tz
}

// Slope returns the local gradient magnitude (rise over run) at sample
// (ix, iz), using central differences clamped at the edges.
func (h *HeightField) Slope(ix, iz int) float64 {
	x0, x1 := maxInt(ix-1, 0), minInt(ix+1, h.res-1)
	z0, z1 := maxInt(iz-1, 0), minInt(iz+1, h.res-1)

	dx := (h.At(x1, iz) - h.At(x0, iz)) / (float64(x1-x0) * h.step)
	dz := (h.At(ix, z1) - h.At(ix, z0)) / (float64(z1-z0) * h.step)
	return math.Sqrt(dx*dx + dz*dz)
}

// SlopeAt returns the gradient magnitude at a world position.
func (h *HeightField) SlopeAt(x, z float64) float64 {
	ix := int(clamp(x/h.step+0.5, 0, float64(h.res-1)))
	iz := int(clamp(z/h.step+0.5, 0, float64(h.res-1)))
	return h.Slope(ix, iz)
}

// MinMax returns the lowest and highest sample values.
func (h *HeightField) MinMax() (min, max float64) {
	min, max = h.data[0], h.data[0]
	for _, v := range h.data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Clone returns an independent copy of the field. The path network phase
// snapshots the pre-carve terrain this way.
func (h *HeightField) Clone() *HeightField {
	c := *h
	c.data = make([]float64, len(h.data))
	copy(c.data, h.data)
	return &c
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

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
