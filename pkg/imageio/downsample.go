package imageio

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample reduces a supersampled render by an integer factor with
// CatmullRom filtering. Rendered images are opaque, so no alpha
// premultiplication is needed.
func Downsample(img *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 {
		return img
	}

	b := img.Bounds()
	width, height := b.Dx()/factor, b.Dy()/factor
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
