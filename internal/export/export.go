// Package export serializes an assembled scene to disk: Wavefront
// OBJ+MTL with procedural textures, a grayscale heightmap preview,
// semantic world.json metadata, and viewer/import helpers. Export is
// pure serialization; any I/O failure is fatal and the run must not be
// reported as a success.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Faultbox/worldforge/internal/gen/grid"
	"github.com/Faultbox/worldforge/internal/gen/scene"
	"github.com/Faultbox/worldforge/internal/gen/structures"
	"github.com/Faultbox/worldforge/internal/gen/vegetation"
	"github.com/Faultbox/worldforge/pkg/schema"
)

// Export file names, fixed so downstream tooling can find them.
const (
	objFileName     = "world.obj"
	mtlFileName     = "world.mtl"
	metadataName    = "world.json"
	previewName     = "preview.png"
	unityScriptName = "unity_import.cs"
	viewerName      = "viewer.html"
	texturesDirName = "textures"
)

// World is everything the exporter serializes: the validated input, the
// assembled scene, and the per-stage outcomes.
type World struct {
	Schema *schema.WorldSchema
	Seed   int64

	Scene  *scene.Scene
	Height *grid.HeightField

	Structures []structures.Instance
	Reports    []schema.StructureReport

	Vegetation          []vegetation.Instance
	VegetationRequested int

	Lighting Lighting
}

// Write serializes the world into dir, creating it if needed, and
// returns the populated result. On error the directory may hold partial
// output; the caller must not report it as a usable export.
func Write(dir string, w *World) (*schema.WorldResult, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("export dir: %w", err)
	}

	objPath := filepath.Join(dir, objFileName)
	f, err := os.Create(objPath)
	if err != nil {
		return nil, fmt.Errorf("create obj: %w", err)
	}
	if err := writeOBJ(f, w.Scene.Buffers, mtlFileName); err != nil {
		f.Close()
		return nil, fmt.Errorf("write obj: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("write obj: %w", err)
	}

	materials := materialSet(w.Scene.Buffers)
	mtlPath := filepath.Join(dir, mtlFileName)
	f, err = os.Create(mtlPath)
	if err != nil {
		return nil, fmt.Errorf("create mtl: %w", err)
	}
	if err := writeMTL(f, materials); err != nil {
		f.Close()
		return nil, fmt.Errorf("write mtl: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("write mtl: %w", err)
	}

	if err := writeTextures(filepath.Join(dir, texturesDirName), materials, w.Seed); err != nil {
		return nil, fmt.Errorf("write textures: %w", err)
	}

	previewPath := filepath.Join(dir, previewName)
	if err := writePNG(previewPath, renderPreview(w.Height)); err != nil {
		return nil, fmt.Errorf("write preview: %w", err)
	}

	metadataPath := filepath.Join(dir, metadataName)
	if err := writeMetadata(metadataPath, w); err != nil {
		return nil, fmt.Errorf("write metadata: %w", err)
	}

	unityPath := filepath.Join(dir, unityScriptName)
	if err := writeUnityScript(unityPath, w); err != nil {
		return nil, fmt.Errorf("write unity script: %w", err)
	}

	viewerPath := filepath.Join(dir, viewerName)
	if err := writeViewer(viewerPath, w); err != nil {
		return nil, fmt.Errorf("write viewer: %w", err)
	}

	return &schema.WorldResult{
		OutputDir:           dir,
		GeometryFile:        objPath,
		MaterialFile:        mtlPath,
		MetadataFile:        metadataPath,
		PreviewImage:        previewPath,
		ImportScript:        unityPath,
		ViewerFile:          viewerPath,
		Structures:          w.Reports,
		VegetationRequested: w.VegetationRequested,
		VegetationPlaced:    len(w.Vegetation),
		VertexCount:         w.Scene.VertexCount,
		TriangleCount:       w.Scene.TriangleCount,
	}, nil
}
