package grid

import (
	"math"
	"testing"
)

func TestHeightFieldSampleBilinear(t *testing.T) {
	h := NewHeightField(2, 100) // 3x3 samples, 50m step
	h.Set(0, 0, 0)
	h.Set(1, 0, 10)
	h.Set(0, 1, 20)
	h.Set(1, 1, 30)

	if got := h.Sample(0, 0); got != 0 {
		t.Errorf("Sample(0,0) = %v, want 0", got)
	}
	if got := h.Sample(25, 0); got != 5 {
		t.Errorf("Sample(25,0) = %v, want 5", got)
	}
	if got := h.Sample(25, 25); got != 15 {
		t.Errorf("Sample(25,25) = %v, want 15", got)
	}
}

func TestHeightFieldSampleClamps(t *testing.T) {
	h := NewHeightField(2, 100)
	h.Set(2, 2, 7)
	if got := h.Sample(500, 500); got != 7 {
		t.Errorf("Sample past edge = %v, want 7", got)
	}
	if got := h.Sample(-50, -50); got != h.At(0, 0) {
		t.Errorf("Sample before origin = %v, want %v", got, h.At(0, 0))
	}
}

func TestHeightFieldSlope(t *testing.T) {
	h := NewHeightField(4, 400) // 100m step
	for iz := 0; iz < h.Res(); iz++ {
		for ix := 0; ix < h.Res(); ix++ {
			h.Set(ix, iz, float64(ix)*100) // 45 degree ramp along X
		}
	}
	if got := h.Slope(2, 2); math.Abs(got-1) > 1e-9 {
		t.Errorf("Slope on 45 degree ramp = %v, want 1", got)
	}
}

func TestHeightFieldClone(t *testing.T) {
	h := NewHeightField(2, 100)
	h.Set(1, 1, 5)
	c := h.Clone()
	c.Set(1, 1, 99)
	if h.At(1, 1) != 5 {
		t.Errorf("Clone aliases original: At(1,1) = %v", h.At(1, 1))
	}
}

func TestMaskMarkCircle(t *testing.T) {
	m := NewOccupancyMask(10, 100) // 10m step
	m.MarkCircle(50, 50, 15)

	if !m.OccupiedAt(50, 50) {
		t.Error("center not marked")
	}
	if !m.OccupiedAt(60, 50) {
		t.Error("sample inside radius not marked")
	}
	if m.OccupiedAt(90, 90) {
		t.Error("far sample marked")
	}
}

func TestMaskOutOfRangeCountsOccupied(t *testing.T) {
	m := NewOccupancyMask(4, 100)
	if !m.Occupied(-1, 0) || !m.Occupied(0, 99) {
		t.Error("out-of-range samples should count as occupied")
	}
}

func TestMaskSealPanicsOnWrite(t *testing.T) {
	m := NewOccupancyMask(4, 100)
	m.Mark(1, 1)
	m.Seal()

	defer func() {
		if recover() == nil {
			t.Error("Mark after Seal did not panic")
		}
	}()
	m.Mark(2, 2)
}

func TestMaskOccupiedCircle(t *testing.T) {
	m := NewOccupancyMask(10, 100)
	m.Mark(5, 5) // world (50,50)
	if !m.OccupiedCircle(45, 45, 10) {
		t.Error("OccupiedCircle missed nearby marked sample")
	}
	if m.OccupiedCircle(10, 10, 5) {
		t.Error("OccupiedCircle false positive")
	}
}

func TestMaskCoarseGridFallsBackToNearestSample(t *testing.T) {
	m := NewOccupancyMask(4, 400) // 100m step

	// A footprint smaller than the step lands between samples; the
	// nearest sample must still record it.
	m.MarkCircle(150, 150, 3)
	if m.Count() != 1 {
		t.Fatalf("coarse mark flagged %d samples, want 1", m.Count())
	}

	// A second footprint near the first must see the conflict even
	// though its radius scan covers no sample either.
	if !m.OccupiedCircle(152, 152, 3) {
		t.Error("coarse check missed footprint marked between samples")
	}
	if m.OccupiedCircle(40, 40, 3) {
		t.Error("coarse check false positive far from the footprint")
	}
}
