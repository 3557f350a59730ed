// worldforge is a CLI for generating procedural worlds from JSON schemas.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Faultbox/worldforge/internal/config"
	"github.com/Faultbox/worldforge/internal/logger"
	"github.com/Faultbox/worldforge/internal/pipeline"
	"github.com/Faultbox/worldforge/pkg/schema"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate", "gen":
		cmdGenerate(args)
	case "validate":
		cmdValidate(args)
	case "info":
		cmdInfo(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`worldforge - procedural world generator

Usage:
  worldforge <command> [options]

Commands:
  generate <schema.json>   Generate a world and export it
  validate <schema.json>   Check a schema without generating
  info <schema.json>       Summarize what a schema would produce

Examples:
  worldforge generate worlds/canyon.json
  worldforge generate worlds/canyon.json -seed 1337 -out ./exports
  worldforge validate worlds/canyon.json`)
}

func loadSchema(path string) (*schema.WorldSchema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema: %w", err)
	}
	return schema.Parse(raw)
}

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	out := fs.String("out", "", "Output directory (overrides config)")
	seed := fs.Int64("seed", 0, "Seed override (0 = use schema seed)")
	workers := fs.Int("workers", 0, "Parallel workers (0 = all CPUs)")
	cfgPath := fs.String("config", "", "Path to config file")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: worldforge generate <schema.json> [options]")
		os.Exit(1)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ws, err := loadSchema(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	outDir := cfg.Output.Dir
	if *out != "" {
		outDir = *out
	}
	if !cfg.Output.FlatDir {
		run := fmt.Sprintf("%s_%s_%s", ws.Biome, ws.TerrainType, uuid.NewString()[:8])
		outDir = filepath.Join(outDir, run)
	}

	opts := pipeline.Options{
		OutputDir: outDir,
		Seed:      *seed,
		Workers:   *workers,
	}
	if opts.Seed == 0 {
		opts.Seed = cfg.Generation.Seed
	}
	if opts.Workers == 0 {
		opts.Workers = cfg.EffectiveWorkers()
	}

	result, err := pipeline.Generate(ws, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("World exported to %s\n", result.OutputDir)
	fmt.Printf("  geometry:   %d vertices, %d triangles\n", result.VertexCount, result.TriangleCount)
	for _, r := range result.Structures {
		fmt.Printf("  %-10s %d/%d placed\n", r.Kind, r.Placed, r.Requested)
	}
	if result.VegetationRequested > 0 {
		fmt.Printf("  vegetation: %d/%d placed\n", result.VegetationPlaced, result.VegetationRequested)
	}
}

func cmdValidate(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: worldforge validate <schema.json>")
		os.Exit(1)
	}

	ws, err := loadSchema(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK: %s %s world, %.1f km, %d cells\n",
		ws.Biome, ws.TerrainType, ws.ScaleKm, ws.GridResolution)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: worldforge info <schema.json>")
		os.Exit(1)
	}

	ws, err := loadSchema(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Schema: %s\n", args[0])
	fmt.Printf("  biome:      %s (%s)\n", ws.Biome, ws.TerrainType)
	fmt.Printf("  size:       %.1f km, %d cells/side (%d terrain triangles)\n",
		ws.ScaleKm, ws.GridResolution, ws.GridResolution*ws.GridResolution*2)
	fmt.Printf("  elevation:  %.0f-%.0fm over %d octaves\n",
		ws.Noise.AmplitudeRange[0], ws.Noise.AmplitudeRange[1], ws.Noise.Octaves)
	fmt.Printf("  paths:      %d\n", len(ws.Paths))
	for _, p := range ws.Paths {
		fmt.Printf("    %-8s %-12s %d waypoints, %.0fm wide\n", p.Kind, p.Name, len(p.Waypoints), p.Width)
	}
	fmt.Printf("  structures: %d rules\n", len(ws.Structures))
	for _, r := range ws.Structures {
		fmt.Printf("    %-8s %d-%d\n", r.Kind, r.CountRange[0], r.CountRange[1])
	}
	if ws.Vegetation.DensityPerKm2 > 0 {
		fmt.Printf("  vegetation: %.0f per km2, %d species\n",
			ws.Vegetation.DensityPerKm2, len(ws.Vegetation.Species))
	}
	fmt.Printf("  seed:       %d\n", ws.Seed)
}
