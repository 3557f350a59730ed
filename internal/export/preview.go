package export

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"github.com/Faultbox/worldforge/internal/gen/grid"
)

const previewSize = 512

// renderPreview rasterizes the heightfield as a grayscale elevation map
// and upscales it to the preview resolution with bilinear filtering.
func renderPreview(h *grid.HeightField) *image.Gray {
	res := h.Res()
	src := image.NewGray(image.Rect(0, 0, res, res))

	min, max := h.MinMax()
	span := max - min
	if span <= 0 {
		span = 1
	}
	for iz := 0; iz < res; iz++ {
		for ix := 0; ix < res; ix++ {
			t := (h.At(ix, iz) - min) / span
			src.SetGray(ix, iz, color.Gray{Y: uint8(t * 255)})
		}
	}

	dst := image.NewGray(image.Rect(0, 0, previewSize, previewSize))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
