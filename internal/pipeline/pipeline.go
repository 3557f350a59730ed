// Package pipeline runs one world generation end to end: validate the
// schema, synthesize the heightfield, carve paths, place structures,
// scatter vegetation, assemble the scene, and export it. A run is fully
// determined by the schema and seed; the worker count only changes how
// fast stages finish, never what they produce.
package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/worldforge/internal/export"
	"github.com/Faultbox/worldforge/internal/gen/grid"
	"github.com/Faultbox/worldforge/internal/gen/noise"
	"github.com/Faultbox/worldforge/internal/gen/paths"
	"github.com/Faultbox/worldforge/internal/gen/scene"
	"github.com/Faultbox/worldforge/internal/gen/structures"
	"github.com/Faultbox/worldforge/internal/gen/terrain"
	"github.com/Faultbox/worldforge/internal/gen/vegetation"
	"github.com/Faultbox/worldforge/internal/logger"
	"github.com/Faultbox/worldforge/pkg/schema"
)

// Options controls a single run.
type Options struct {
	// OutputDir receives the export artifacts.
	OutputDir string

	// Seed overrides the schema seed when non-zero.
	Seed int64

	// Workers bounds the parallel stages; values below 1 mean 1.
	Workers int
}

// Generate runs the full pipeline and exports into opts.OutputDir.
func Generate(ws *schema.WorldSchema, opts Options) (*schema.WorldResult, error) {
	if err := ws.Validate(); err != nil {
		return nil, fmt.Errorf("invalid world schema: %w", err)
	}

	seed := ws.Seed
	if opts.Seed != 0 {
		seed = opts.Seed
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	size := ws.SizeMeters()
	log := logger.Log.With(
		zap.String("biome", ws.Biome),
		zap.String("terrain", ws.TerrainType),
		zap.Int64("seed", seed),
	)
	log.Info("generating world",
		zap.Float64("size_m", size),
		zap.Int("grid_cells", ws.GridResolution),
		zap.Int("workers", workers),
	)

	field, err := noise.New(ws.Noise, seed, size)
	if err != nil {
		return nil, fmt.Errorf("noise field: %w", err)
	}

	ampScale := terrain.AmplitudeScale(ws.Biome, ws.TerrainType)
	h := terrain.Synthesize(field, ws.GridResolution, size, ampScale, workers)
	min, max := h.MinMax()
	log.Info("terrain synthesized", zap.Float64("min_m", min), zap.Float64("max_m", max))

	mask := grid.NewOccupancyMask(ws.GridResolution, size)
	network := paths.Build(ws.Paths)
	network.Carve(h, mask)

	terrainMeshes := terrain.BuildMeshes(h)
	pathMeshes := network.BuildMeshes(h)

	instances, reports := structures.Place(ws.Structures, h, mask, seed)
	for _, r := range reports {
		if r.Placed < r.Requested {
			log.Warn("structure placement exhausted",
				zap.String("kind", string(r.Kind)),
				zap.Int("requested", r.Requested),
				zap.Int("placed", r.Placed),
			)
		}
	}
	structureMeshes := structures.BuildGeometry(instances, workers)

	// Every mask writer has run; vegetation reads it lock-free from here.
	mask.Seal()
	veg := vegetation.Scatter(ws.Vegetation, h, mask, seed)
	log.Info("vegetation scattered",
		zap.Int("requested", veg.Requested),
		zap.Int("placed", len(veg.Placed)),
	)

	sc := scene.Assemble(terrainMeshes, pathMeshes, structureMeshes, veg.Placed)
	log.Info("scene assembled",
		zap.Int("buffers", len(sc.Buffers)),
		zap.Int("vertices", sc.VertexCount),
		zap.Int("triangles", sc.TriangleCount),
	)

	result, err := export.Write(opts.OutputDir, &export.World{
		Schema:              ws,
		Seed:                seed,
		Scene:               sc,
		Height:              h,
		Structures:          instances,
		Reports:             reports,
		Vegetation:          veg.Placed,
		VegetationRequested: veg.Requested,
		Lighting:            deriveLighting(ws),
	})
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	log.Info("world exported", zap.String("dir", result.OutputDir))
	return result, nil
}
