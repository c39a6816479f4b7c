package integrator

import (
	"fmt"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// PixelSampler is a sampler that can jump to an independent stream. The
// renderer hands each worker its own PixelSampler.
type PixelSampler interface {
	core.Sampler
	Reset(stream uint64)
}

// Integrator defines the interface for light transport algorithms. An
// integrator turns one pixel of a scene into a linear color; tone mapping
// and buffer writes belong to the renderer.
type Integrator interface {
	PixelColor(sc *scene.Scene, x, y int, sampler PixelSampler) material.Color
	SamplesPerPixel() int
	Name() string
}

// SamplingConfig contains path tracing configuration
type SamplingConfig struct {
	SamplesPerPixel           int  // Number of jittered rays per pixel
	MaxBounces                int  // Maximum path segments per sample
	RussianRoulette           bool // Enable unbiased probabilistic termination
	RussianRouletteMinBounces int  // Bounces before Russian roulette can activate
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel:           100,
		MaxBounces:                10,
		RussianRoulette:           false,
		RussianRouletteMinBounces: 3,
	}
}

// New returns the integrator registered under name: "path" or "direct"
func New(name string, config SamplingConfig) (Integrator, error) {
	switch name {
	case "path", "":
		return NewPathTracingIntegrator(config), nil
	case "direct":
		return NewDirectShadingIntegrator(), nil
	default:
		return nil, fmt.Errorf("unknown integrator %q (available: path, direct)", name)
	}
}
