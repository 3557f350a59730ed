package vegetation

import (
	"reflect"
	"testing"

	"github.com/Faultbox/worldforge/internal/gen/grid"
	"github.com/Faultbox/worldforge/pkg/schema"
)

// plateau returns a flat field raised well above the waterline cutoff.
func plateau(cells int, size, height float64) *grid.HeightField {
	h := grid.NewHeightField(cells, size)
	data := h.Data()
	for i := range data {
		data[i] = height
	}
	return h
}

func TestScatterZeroDensity(t *testing.T) {
	h := plateau(32, 1000, 10)
	mask := grid.NewOccupancyMask(32, 1000)

	res := Scatter(schema.VegetationSpec{DensityPerKm2: 0}, h, mask, 1)
	if res.Requested != 0 || len(res.Placed) != 0 {
		t.Errorf("zero density produced %d requested, %d placed", res.Requested, len(res.Placed))
	}
}

func TestScatterRequestedFromDensity(t *testing.T) {
	h := plateau(32, 2000, 10) // 4 km2
	mask := grid.NewOccupancyMask(32, 2000)

	spec := schema.VegetationSpec{
		DensityPerKm2: 150,
		HeightRange:   [2]float64{2, 8},
		Species:       []schema.SpeciesMix{{Name: "pine", Weight: 1}},
	}
	res := Scatter(spec, h, mask, 42)

	if res.Requested != 600 {
		t.Fatalf("requested = %d, want 600", res.Requested)
	}
	if len(res.Placed) == 0 || len(res.Placed) > 600 {
		t.Fatalf("placed = %d, want (0,600]", len(res.Placed))
	}
	for _, inst := range res.Placed {
		if inst.Species != "pine" {
			t.Fatalf("species = %q, want pine", inst.Species)
		}
		if inst.Height < 2 || inst.Height > 8 {
			t.Errorf("height %v outside [2,8]", inst.Height)
		}
		if inst.Position.X < 0 || inst.Position.X > 2000 || inst.Position.Z < 0 || inst.Position.Z > 2000 {
			t.Errorf("instance outside world: %+v", inst.Position)
		}
	}
}

func TestScatterDrawsColorVariant(t *testing.T) {
	h := plateau(32, 1000, 10)
	mask := grid.NewOccupancyMask(32, 1000)

	spec := schema.VegetationSpec{
		DensityPerKm2: 300,
		HeightRange:   [2]float64{2, 6},
	}
	res := Scatter(spec, h, mask, 13)
	if len(res.Placed) < 2 {
		t.Fatalf("placed = %d, want at least 2", len(res.Placed))
	}
	varied := false
	for _, inst := range res.Placed {
		if inst.ColorVariant < 0 || inst.ColorVariant >= 1 {
			t.Fatalf("color variant %v outside [0,1)", inst.ColorVariant)
		}
		if inst.ColorVariant != res.Placed[0].ColorVariant {
			varied = true
		}
	}
	if !varied {
		t.Error("all instances share one color variant")
	}
}

func TestScatterRespectsOccupancy(t *testing.T) {
	h := plateau(32, 1000, 10)
	mask := grid.NewOccupancyMask(32, 1000)
	mask.MarkCircle(500, 500, 2000)

	spec := schema.VegetationSpec{
		DensityPerKm2: 200,
		HeightRange:   [2]float64{2, 6},
	}
	res := Scatter(spec, h, mask, 5)
	if len(res.Placed) != 0 {
		t.Errorf("placed %d instances on fully occupied terrain", len(res.Placed))
	}
	if res.Requested == 0 {
		t.Error("requested should still reflect density")
	}
}

func TestScatterRejectsLowGround(t *testing.T) {
	h := plateau(32, 1000, 0) // everything at waterline
	mask := grid.NewOccupancyMask(32, 1000)

	spec := schema.VegetationSpec{
		DensityPerKm2: 100,
		HeightRange:   [2]float64{2, 6},
	}
	res := Scatter(spec, h, mask, 5)
	if len(res.Placed) != 0 {
		t.Errorf("placed %d instances below the waterline cutoff", len(res.Placed))
	}
}

func TestScatterCapsRequested(t *testing.T) {
	h := plateau(16, 10000, 10) // 100 km2
	mask := grid.NewOccupancyMask(16, 10000)

	spec := schema.VegetationSpec{
		DensityPerKm2: 1e6,
		HeightRange:   [2]float64{2, 6},
	}
	res := Scatter(spec, h, mask, 5)
	if res.Requested != maxInstances {
		t.Errorf("requested = %d, want cap %d", res.Requested, maxInstances)
	}
}

func TestSequenceRestartable(t *testing.T) {
	spec := schema.VegetationSpec{
		DensityPerKm2: 100,
		HeightRange:   [2]float64{2, 6},
	}
	h := plateau(32, 1000, 10)
	mask := grid.NewOccupancyMask(32, 1000)
	seq := Sequence(spec, h, mask, 9)

	// Take a prefix, then iterate again from the start; the prefix must
	// repeat exactly.
	var first []Instance
	for inst := range seq {
		first = append(first, inst)
		if len(first) == 5 {
			break
		}
	}
	if len(first) != 5 {
		t.Fatalf("prefix = %d instances, want 5", len(first))
	}

	var again []Instance
	for inst := range seq {
		again = append(again, inst)
		if len(again) == 5 {
			break
		}
	}
	if !reflect.DeepEqual(first, again) {
		t.Error("restarted sequence diverged from first iteration")
	}
}

func TestScatterDeterministic(t *testing.T) {
	spec := schema.VegetationSpec{
		DensityPerKm2: 120,
		HeightRange:   [2]float64{2, 8},
		Species: []schema.SpeciesMix{
			{Name: "pine", Weight: 3},
			{Name: "birch", Weight: 1},
		},
	}
	run := func() Result {
		h := plateau(32, 1000, 10)
		mask := grid.NewOccupancyMask(32, 1000)
		return Scatter(spec, h, mask, 77)
	}
	if a, b := run(), run(); !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different scatters")
	}
}
