package renderer

import (
	"image/color"
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// toneMapGamma is the display exponent applied before 8-bit quantization
const toneMapGamma = 2.5

// ToneMap converts linear radiance to an opaque 8-bit color. Each channel
// becomes v^(1/2.5)*256 truncated; values at or above 1.0 saturate at 255
// and NaN or negative values become 0.
func ToneMap(c material.Color) color.RGBA {
	return color.RGBA{
		R: encodeChannel(c.R),
		G: encodeChannel(c.G),
		B: encodeChannel(c.B),
		A: 255,
	}
}

func encodeChannel(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	scaled := math.Pow(v, 1.0/toneMapGamma) * 256
	if scaled >= 255 {
		return 255
	}
	return uint8(scaled)
}
