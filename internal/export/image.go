// Package export turns baked lightmaps into images: the raw atlas as a
// grayscale texture, and a texture-mapped preview of the scene.
package export

import (
	"image"

	"ao-lightmap-baker/internal/atlas"
)

// LightmapImage converts the lightmap to a grayscale NRGBA image, one pixel
// per atlas texel, values clamped to [0,1]. Stored linearly; the lightmap is
// data, not a display image.
func LightmapImage(lm *atlas.Lightmap) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, lm.Size, lm.Size))
	for y := 0; y < lm.Size; y++ {
		for x := 0; x < lm.Size; x++ {
			g := clamp255(lm.Texels[y*lm.Size+x] * 255)
			i := img.PixOffset(x, y)
			img.Pix[i] = g
			img.Pix[i+1] = g
			img.Pix[i+2] = g
			img.Pix[i+3] = 255
		}
	}
	return img
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
