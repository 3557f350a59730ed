package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/Faultbox/worldforge/pkg/schema"
)

// Lighting is the derived light rig recorded in metadata. It never
// affects geometry.
type Lighting struct {
	Mood             string     `json:"mood"`
	SunDirection     [3]float64 `json:"sun_direction"`
	SunColor         [3]float64 `json:"sun_color"`
	SunIntensity     float64    `json:"sun_intensity"`
	AmbientIntensity float64    `json:"ambient_intensity"`
	SkyColor         [3]float64 `json:"sky_color"`
	FogDensity       float64    `json:"fog_density"`
}

type summary struct {
	Biome       string  `json:"biome"`
	TerrainType string  `json:"terrain_type"`
	ScaleKm     float64 `json:"scale_km"`
	Mood        string  `json:"mood,omitempty"`
	TimeOfDay   string  `json:"time_of_day,omitempty"`
}

type structureEntry struct {
	Kind      schema.StructureKind `json:"kind"`
	Position  [3]float64           `json:"position"`
	RotationY float64              `json:"rotation_y"`
	Height    float64              `json:"height"`
	Scale     float64              `json:"scale"`
}

type vegetationEntry struct {
	Species      string     `json:"species"`
	Position     [3]float64 `json:"position"`
	Height       float64    `json:"height"`
	RotationY    float64    `json:"rotation_y"`
	ColorVariant float64    `json:"color_variant"`
}

type counts struct {
	Vertices            int `json:"vertices"`
	Triangles           int `json:"triangles"`
	StructuresPlaced    int `json:"structures_placed"`
	VegetationRequested int `json:"vegetation_requested"`
	VegetationPlaced    int `json:"vegetation_placed"`
}

type metadata struct {
	ID        string    `json:"id"`
	Generator string    `json:"generator"`
	CreatedAt time.Time `json:"created_at"`
	Seed      int64     `json:"seed"`

	Summary summary             `json:"summary"`
	Schema  *schema.WorldSchema `json:"schema"`

	BoundsMin [3]float64 `json:"bounds_min"`
	BoundsMax [3]float64 `json:"bounds_max"`

	Counts           counts                   `json:"counts"`
	Structures       []structureEntry         `json:"structures"`
	StructureReports []schema.StructureReport `json:"structure_reports"`
	Vegetation       []vegetationEntry        `json:"vegetation"`

	Lighting Lighting       `json:"lighting"`
	Sky      schema.SkySpec `json:"sky"`
}

func writeMetadata(path string, w *World) error {
	md := metadata{
		ID:        uuid.NewString(),
		Generator: "worldforge",
		CreatedAt: time.Now().UTC(),
		Seed:      w.Seed,
		Summary: summary{
			Biome:       w.Schema.Biome,
			TerrainType: w.Schema.TerrainType,
			ScaleKm:     w.Schema.ScaleKm,
			Mood:        w.Schema.Mood,
			TimeOfDay:   w.Schema.TimeOfDay,
		},
		Schema: w.Schema,
		Counts: counts{
			Vertices:            w.Scene.VertexCount,
			Triangles:           w.Scene.TriangleCount,
			StructuresPlaced:    len(w.Structures),
			VegetationRequested: w.VegetationRequested,
			VegetationPlaced:    len(w.Vegetation),
		},
		StructureReports: w.Reports,
		Lighting:         w.Lighting,
		Sky:              w.Schema.Sky,
	}
	for i := 0; i < 3; i++ {
		md.BoundsMin[i] = float64(w.Scene.Bounds.Min[i])
		md.BoundsMax[i] = float64(w.Scene.Bounds.Max[i])
	}
	md.Structures = make([]structureEntry, 0, len(w.Structures))
	for _, inst := range w.Structures {
		md.Structures = append(md.Structures, structureEntry{
			Kind:      inst.Kind,
			Position:  [3]float64{inst.Position.X, inst.Position.Y, inst.Position.Z},
			RotationY: inst.RotationY,
			Height:    inst.Height,
			Scale:     inst.Scale,
		})
	}

	md.Vegetation = make([]vegetationEntry, 0, len(w.Vegetation))
	for _, inst := range w.Vegetation {
		md.Vegetation = append(md.Vegetation, vegetationEntry{
			Species:      inst.Species,
			Position:     [3]float64{inst.Position.X, inst.Position.Y, inst.Position.Z},
			Height:       inst.Height,
			RotationY:    inst.RotationY,
			ColorVariant: inst.ColorVariant,
		})
	}

	raw, err := json.MarshalIndent(&md, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	return os.WriteFile(path, append(raw, '\n'), 0o644)
}
