package export

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/Faultbox/worldforge/internal/gen/mesh"
)

// materialDef is one MTL entry plus the base color its texture is shaded
// from.
type materialDef struct {
	Diffuse   [3]float64
	Specular  float64
	Shininess float64
	Alpha     float64
}

// palette covers every material the generators can emit. The core set is
// always written even when unused, so downstream tooling can rely on the
// library being complete.
var palette = map[mesh.Material]materialDef{
	mesh.MatTerrain:  {Diffuse: [3]float64{0.33, 0.49, 0.27}, Specular: 0.05, Shininess: 10, Alpha: 1},
	mesh.MatRock:     {Diffuse: [3]float64{0.45, 0.42, 0.40}, Specular: 0.10, Shininess: 20, Alpha: 1},
	mesh.MatSand:     {Diffuse: [3]float64{0.82, 0.72, 0.55}, Specular: 0.05, Shininess: 10, Alpha: 1},
	mesh.MatSnow:     {Diffuse: [3]float64{0.93, 0.94, 0.96}, Specular: 0.30, Shininess: 40, Alpha: 1},
	mesh.MatWater:    {Diffuse: [3]float64{0.15, 0.35, 0.55}, Specular: 0.80, Shininess: 120, Alpha: 0.82},
	mesh.MatAsphalt:  {Diffuse: [3]float64{0.18, 0.18, 0.19}, Specular: 0.15, Shininess: 15, Alpha: 1},
	mesh.MatMetal:    {Diffuse: [3]float64{0.62, 0.64, 0.68}, Specular: 0.90, Shininess: 200, Alpha: 1},
	mesh.MatConcrete: {Diffuse: [3]float64{0.58, 0.57, 0.55}, Specular: 0.10, Shininess: 20, Alpha: 1},
	mesh.MatFoliage:  {Diffuse: [3]float64{0.20, 0.42, 0.18}, Specular: 0.05, Shininess: 10, Alpha: 1},
}

// coreMaterials are written into every MTL regardless of scene content.
var coreMaterials = []mesh.Material{
	mesh.MatTerrain, mesh.MatMetal, mesh.MatConcrete,
	mesh.MatAsphalt, mesh.MatWater, mesh.MatFoliage,
}

// materialSet returns the materials to export: the core library plus any
// extra materials the scene actually uses, in a stable order.
func materialSet(buffers []*mesh.Mesh) []mesh.Material {
	seen := make(map[mesh.Material]bool, len(coreMaterials))
	out := make([]mesh.Material, 0, len(palette))
	for _, m := range coreMaterials {
		seen[m] = true
		out = append(out, m)
	}
	var extra []mesh.Material
	for _, buf := range buffers {
		if !seen[buf.Material] {
			seen[buf.Material] = true
			extra = append(extra, buf.Material)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

func writeMTL(w io.Writer, materials []mesh.Material) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# worldforge material library\n")
	for _, name := range materials {
		def, ok := palette[name]
		if !ok {
			def = palette[mesh.MatTerrain]
		}
		fmt.Fprintf(bw, "\nnewmtl %s\n", name)
		fmt.Fprintf(bw, "Kd %.4f %.4f %.4f\n", def.Diffuse[0], def.Diffuse[1], def.Diffuse[2])
		fmt.Fprintf(bw, "Ks %.4f %.4f %.4f\n", def.Specular, def.Specular, def.Specular)
		fmt.Fprintf(bw, "Ns %.1f\n", def.Shininess)
		fmt.Fprintf(bw, "d %.2f\n", def.Alpha)
		fmt.Fprintf(bw, "illum 2\n")
		fmt.Fprintf(bw, "map_Kd textures/%s.png\n", name)
	}
	return bw.Flush()
}
