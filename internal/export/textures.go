package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	gomath "math"
	"os"
	"path/filepath"

	"github.com/aquilax/go-perlin"

	"github.com/Faultbox/worldforge/internal/gen/mesh"
	"github.com/Faultbox/worldforge/internal/rng"
	wmath "github.com/Faultbox/worldforge/pkg/math"
)

const textureSize = 256

// writeTextures renders one noise-shaded tile per material into dir.
// Each texture modulates the material's base color with tileable-looking
// gradient noise; the per-material seed keeps reruns byte-identical.
func writeTextures(dir string, materials []mesh.Material, seed int64) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("textures dir: %w", err)
	}
	for i, name := range materials {
		def, ok := palette[name]
		if !ok {
			def = palette[mesh.MatTerrain]
		}
		img := renderTexture(def, rng.Sub(seed, "texture", i))
		path := filepath.Join(dir, string(name)+".png")
		if err := writePNG(path, img); err != nil {
			return fmt.Errorf("texture %s: %w", name, err)
		}
	}
	return nil
}

func renderTexture(def materialDef, seed int64) *image.NRGBA {
	p := perlin.NewPerlin(2, 2, 3, seed)
	img := image.NewNRGBA(image.Rect(0, 0, textureSize, textureSize))

	const freq = 9.0
	for y := 0; y < textureSize; y++ {
		for x := 0; x < textureSize; x++ {
			n := p.Noise2D(float64(x)/textureSize*freq, float64(y)/textureSize*freq)
			// Shift noise into a gentle brightness modulation around 1.
			shade := 1 + 0.22*wmath.Clamp(n*1.6, -1, 1)
			img.SetNRGBA(x, y, color.NRGBA{
				R: channel(def.Diffuse[0] * shade),
				G: channel(def.Diffuse[1] * shade),
				B: channel(def.Diffuse[2] * shade),
				A: channel(def.Alpha),
			})
		}
	}
	return img
}

func channel(v float64) uint8 {
	return uint8(gomath.Round(wmath.Clamp(v, 0, 1) * 255))
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
