package export

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/worldforge/internal/gen/grid"
	"github.com/Faultbox/worldforge/internal/gen/mesh"
	"github.com/Faultbox/worldforge/internal/gen/scene"
	"github.com/Faultbox/worldforge/internal/gen/vegetation"
	wmath "github.com/Faultbox/worldforge/pkg/math"
	"github.com/Faultbox/worldforge/pkg/schema"
)

func testWorld() *World {
	h := grid.NewHeightField(4, 100)
	for iz := 0; iz <= 4; iz++ {
		for ix := 0; ix <= 4; ix++ {
			h.Set(ix, iz, float64(ix+iz))
		}
	}

	terrain := &mesh.Mesh{
		Vertices: []mesh.Vertex{
			{Position: [3]float32{0, 0, 0}, Normal: [3]float32{0, 1, 0}},
			{Position: [3]float32{100, 0, 0}, Normal: [3]float32{0, 1, 0}},
			{Position: [3]float32{0, 0, 100}, Normal: [3]float32{0, 1, 0}},
			{Position: [3]float32{100, 0, 100}, Normal: [3]float32{0, 1, 0}},
		},
		Indices:  []uint32{0, 2, 1, 1, 2, 3},
		Material: mesh.MatTerrain,
	}

	return &World{
		Schema: &schema.WorldSchema{
			Biome:          "temperate",
			TerrainType:    "hill",
			ScaleKm:        0.1,
			GridResolution: 4,
		},
		Seed:   42,
		Scene:  scene.Assemble([]*mesh.Mesh{terrain}, nil, nil, nil),
		Height: h,
		Vegetation: []vegetation.Instance{
			{
				Position:     wmath.Vec3{X: 30, Y: 2, Z: 40},
				Species:      "pine",
				Height:       6.5,
				RotationY:    1.2,
				ColorVariant: 0.35,
			},
		},
		VegetationRequested: 1,
		Lighting: Lighting{
			Mood:             "neutral",
			SunDirection:     [3]float64{0.3, -0.8, 0.5},
			SunColor:         [3]float64{1, 0.96, 0.9},
			SunIntensity:     1,
			AmbientIntensity: 0.4,
			SkyColor:         [3]float64{0.55, 0.7, 0.9},
			FogDensity:       0.002,
		},
	}
}

func TestWriteProducesAllArtifacts(t *testing.T) {
	dir := t.TempDir()
	res, err := Write(dir, testWorld())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	for _, path := range []string{
		res.GeometryFile, res.MaterialFile, res.MetadataFile,
		res.PreviewImage, res.ImportScript, res.ViewerFile,
	} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing artifact: %v", err)
		}
	}
	if res.VertexCount != 4 || res.TriangleCount != 2 {
		t.Errorf("counts = %d vertices, %d triangles; want 4, 2", res.VertexCount, res.TriangleCount)
	}
}

func TestWriteOBJFormat(t *testing.T) {
	w := testWorld()
	var buf bytes.Buffer
	if err := writeOBJ(&buf, w.Scene.Buffers, mtlFileName); err != nil {
		t.Fatalf("writeOBJ: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "mtllib world.mtl\n") {
		t.Error("missing mtllib line")
	}
	if !strings.Contains(out, "usemtl terrain\n") {
		t.Error("missing usemtl line")
	}
	if got := strings.Count(out, "\nv "); got != 4 {
		t.Errorf("vertex lines = %d, want 4", got)
	}
	if got := strings.Count(out, "\nf "); got != 2 {
		t.Errorf("face lines = %d, want 2", got)
	}
	// Faces are 1-based.
	if strings.Contains(out, "f 0/") {
		t.Error("found 0-based face index")
	}
}

func TestWriteMTLCoversCoreSet(t *testing.T) {
	var buf bytes.Buffer
	if err := writeMTL(&buf, materialSet(nil)); err != nil {
		t.Fatalf("writeMTL: %v", err)
	}
	out := buf.String()
	for _, name := range coreMaterials {
		if !strings.Contains(out, "newmtl "+string(name)+"\n") {
			t.Errorf("core material %q missing from MTL", name)
		}
	}
}

func TestMaterialSetAddsSceneExtras(t *testing.T) {
	buffers := []*mesh.Mesh{{Material: mesh.MatSnow}, {Material: mesh.MatTerrain}}
	set := materialSet(buffers)

	found := false
	for _, m := range set {
		if m == mesh.MatSnow {
			found = true
		}
	}
	if !found {
		t.Error("snow used by scene but missing from material set")
	}
	if len(set) != len(coreMaterials)+1 {
		t.Errorf("set size = %d, want %d", len(set), len(coreMaterials)+1)
	}
}

func TestWriteTexturesDeterministic(t *testing.T) {
	dirA, dirB := t.TempDir(), t.TempDir()
	mats := []mesh.Material{mesh.MatTerrain, mesh.MatMetal}

	if err := writeTextures(dirA, mats, 7); err != nil {
		t.Fatalf("writeTextures: %v", err)
	}
	if err := writeTextures(dirB, mats, 7); err != nil {
		t.Fatalf("writeTextures: %v", err)
	}

	for _, m := range mats {
		a, err := os.ReadFile(filepath.Join(dirA, string(m)+".png"))
		if err != nil {
			t.Fatal(err)
		}
		b, err := os.ReadFile(filepath.Join(dirB, string(m)+".png"))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(a, b) {
			t.Errorf("texture %s differs between identical seeds", m)
		}
	}
}

func TestRenderPreviewSizeAndGradient(t *testing.T) {
	h := grid.NewHeightField(8, 100)
	for iz := 0; iz <= 8; iz++ {
		for ix := 0; ix <= 8; ix++ {
			h.Set(ix, iz, float64(ix))
		}
	}
	img := renderPreview(h)
	if img.Bounds().Dx() != previewSize || img.Bounds().Dy() != previewSize {
		t.Fatalf("preview bounds = %v", img.Bounds())
	}
	left := img.GrayAt(5, previewSize/2).Y
	right := img.GrayAt(previewSize-5, previewSize/2).Y
	if left >= right {
		t.Errorf("preview not brighter toward higher ground: left %d, right %d", left, right)
	}
}

func TestWriteMetadataRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, metadataName)
	w := testWorld()
	if err := writeMetadata(path, w); err != nil {
		t.Fatalf("writeMetadata: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var md metadata
	if err := json.Unmarshal(raw, &md); err != nil {
		t.Fatalf("metadata is not valid JSON: %v", err)
	}
	if md.Generator != "worldforge" || md.Seed != 42 {
		t.Errorf("generator/seed = %q/%d", md.Generator, md.Seed)
	}
	if md.Summary.Biome != "temperate" || md.Counts.Triangles != 2 {
		t.Errorf("summary/counts wrong: %+v %+v", md.Summary, md.Counts)
	}
	if md.ID == "" {
		t.Error("metadata missing id")
	}
	if len(md.Vegetation) != 1 {
		t.Fatalf("vegetation entries = %d, want 1", len(md.Vegetation))
	}
	if md.Vegetation[0].Species != "pine" || md.Vegetation[0].ColorVariant != 0.35 {
		t.Errorf("vegetation entry = %+v, want pine with color variant 0.35", md.Vegetation[0])
	}
	if md.Counts.VegetationPlaced != 1 {
		t.Errorf("vegetation placed count = %d, want 1", md.Counts.VegetationPlaced)
	}
}

func TestPreviewIsValidPNG(t *testing.T) {
	dir := t.TempDir()
	w := testWorld()
	if _, err := Write(dir, w); err != nil {
		t.Fatalf("Write: %v", err)
	}
	f, err := os.Open(filepath.Join(dir, previewName))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("preview does not decode: %v", err)
	}
}

func TestViewerAndUnityMentionArtifacts(t *testing.T) {
	dir := t.TempDir()
	w := testWorld()
	if _, err := Write(dir, w); err != nil {
		t.Fatalf("Write: %v", err)
	}

	viewer, err := os.ReadFile(filepath.Join(dir, viewerName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(viewer), "aframe") || !strings.Contains(string(viewer), objFileName) {
		t.Error("viewer missing A-Frame script or OBJ reference")
	}

	unity, err := os.ReadFile(filepath.Join(dir, unityScriptName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(unity), "MenuItem") || !strings.Contains(string(unity), objFileName) {
		t.Error("unity script missing import hook or OBJ reference")
	}
}
