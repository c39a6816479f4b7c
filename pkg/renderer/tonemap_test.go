package renderer

import (
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

func TestToneMap(t *testing.T) {
	tests := []struct {
		name     string
		input    material.Color
		expected color.RGBA
	}{
		{"black", material.Black, color.RGBA{0, 0, 0, 255}},
		{"unit saturates to max", material.Gray(1), color.RGBA{255, 255, 255, 255}},
		{"above unit does not wrap", material.NewColor(1.5, 40, math.Inf(1)), color.RGBA{255, 255, 255, 255}},
		{"negative clamps to zero", material.NewColor(-0.5, -1e9, 0), color.RGBA{0, 0, 0, 255}},
		{"NaN becomes zero", material.NewColor(math.NaN(), 1, 0), color.RGBA{0, 255, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToneMap(tt.input); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestToneMap_Curve(t *testing.T) {
	for _, v := range []float64{1e-6, 0.01, 0.1, 0.25, 0.5, 0.9, 0.99} {
		expected := uint8(math.Pow(v, 1/2.5) * 256)
		if got := ToneMap(material.Gray(v)).R; got != expected {
			t.Errorf("ToneMap(%g): expected %d, got %d", v, expected, got)
		}
	}

	// Monotonic over [0, 1]
	prev := uint8(0)
	for i := 0; i <= 1000; i++ {
		got := ToneMap(material.Gray(float64(i) / 1000)).G
		if got < prev {
			t.Fatalf("Tone curve decreased at %d: %d < %d", i, got, prev)
		}
		prev = got
	}
}
