package scene

import (
	"testing"

	"github.com/Faultbox/worldforge/internal/gen/mesh"
	"github.com/Faultbox/worldforge/internal/gen/vegetation"
	wmath "github.com/Faultbox/worldforge/pkg/math"
)

func quad(material mesh.Material, xOffset float32) *mesh.Mesh {
	return &mesh.Mesh{
		Vertices: []mesh.Vertex{
			{Position: [3]float32{xOffset, 0, 0}},
			{Position: [3]float32{xOffset + 1, 0, 0}},
			{Position: [3]float32{xOffset, 0, 1}},
			{Position: [3]float32{xOffset + 1, 0, 1}},
		},
		Indices:  []uint32{0, 2, 1, 1, 2, 3},
		Material: material,
	}
}

func TestAssembleMergesByMaterial(t *testing.T) {
	terrain := []*mesh.Mesh{quad(mesh.MatTerrain, 0), quad(mesh.MatRock, 10)}
	paths := []*mesh.Mesh{quad(mesh.MatAsphalt, 20)}
	structures := []*mesh.Mesh{quad(mesh.MatRock, 30)}

	s := Assemble(terrain, paths, structures, nil)

	if len(s.Buffers) != 3 {
		t.Fatalf("buffers = %d, want 3 (terrain, rock, asphalt)", len(s.Buffers))
	}
	if s.Buffers[0].Material != mesh.MatTerrain || s.Buffers[1].Material != mesh.MatRock || s.Buffers[2].Material != mesh.MatAsphalt {
		t.Errorf("buffer order = %v %v %v", s.Buffers[0].Material, s.Buffers[1].Material, s.Buffers[2].Material)
	}

	// Both rock quads land in one buffer with reindexed triangles.
	rock := s.Buffers[1]
	if len(rock.Vertices) != 8 || rock.TriangleCount() != 4 {
		t.Fatalf("rock buffer has %d vertices, %d triangles", len(rock.Vertices), rock.TriangleCount())
	}
	for _, idx := range rock.Indices {
		if int(idx) >= len(rock.Vertices) {
			t.Fatalf("index %d out of range after merge", idx)
		}
	}

	if s.VertexCount != 16 || s.TriangleCount != 8 {
		t.Errorf("totals = %d vertices, %d triangles; want 16, 8", s.VertexCount, s.TriangleCount)
	}
}

func TestAssembleSkipsEmptyMeshes(t *testing.T) {
	s := Assemble([]*mesh.Mesh{quad(mesh.MatTerrain, 0), {Material: mesh.MatSnow}}, nil, nil, nil)
	if len(s.Buffers) != 1 {
		t.Errorf("buffers = %d, want 1", len(s.Buffers))
	}
}

func TestAssembleBakesFoliage(t *testing.T) {
	veg := []vegetation.Instance{
		{Position: wmath.Vec3{X: 5, Y: 2, Z: 5}, Height: 4, Species: "pine"},
		{Position: wmath.Vec3{X: 9, Y: 1, Z: 3}, Height: 6, Species: "birch"},
	}
	s := Assemble([]*mesh.Mesh{quad(mesh.MatTerrain, 0)}, nil, nil, veg)

	if len(s.Buffers) != 2 {
		t.Fatalf("buffers = %d, want terrain + foliage", len(s.Buffers))
	}
	foliage := s.Buffers[1]
	if foliage.Material != mesh.MatFoliage {
		t.Fatalf("material = %q, want %q", foliage.Material, mesh.MatFoliage)
	}
	wantTris := 2 * proxySides
	if foliage.TriangleCount() != wantTris {
		t.Errorf("foliage triangles = %d, want %d", foliage.TriangleCount(), wantTris)
	}

	// Second cone's apex sits at base + height.
	if s.Bounds.Max[1] < 6.9 || s.Bounds.Max[1] > 7.1 {
		t.Errorf("scene max Y = %v, want 7", s.Bounds.Max[1])
	}
}

func TestAssembleBounds(t *testing.T) {
	s := Assemble([]*mesh.Mesh{quad(mesh.MatTerrain, 0)}, nil, nil, nil)
	if s.Bounds.Min != [3]float32{0, 0, 0} {
		t.Errorf("min = %v", s.Bounds.Min)
	}
	if s.Bounds.Max != [3]float32{1, 0, 1} {
		t.Errorf("max = %v", s.Bounds.Max)
	}
}
