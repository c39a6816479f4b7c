package integrator

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

const (
	// throughputCutoff ends a path once every throughput channel falls to it.
	// This is a heuristic that drops a small amount of energy, unlike Russian roulette.
	throughputCutoff = 1e-4

	// surfaceOffset lifts bounce origins off the surface to avoid self-intersection
	surfaceOffset = 1e-4

	minSurvivalProbability = 0.05
)

// PathTracingIntegrator implements unidirectional path tracing with
// cosine-weighted diffuse bounces
type PathTracingIntegrator struct {
	config SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

func (pt *PathTracingIntegrator) Name() string         { return "path" }
func (pt *PathTracingIntegrator) SamplesPerPixel() int { return pt.config.SamplesPerPixel }

// PixelColor averages SamplesPerPixel paths through pixel (x, y). Sample s
// of pixel p draws from stream p*SamplesPerPixel+s, so the result depends
// only on the pixel, the scene and the sampler seed.
func (pt *PathTracingIntegrator) PixelColor(sc *scene.Scene, x, y int, sampler PixelSampler) material.Color {
	camera := sc.Camera
	samples := pt.config.SamplesPerPixel
	firstStream := uint64(y*camera.Width()+x) * uint64(samples)

	sum := material.Black
	for s := 0; s < samples; s++ {
		sampler.Reset(firstStream + uint64(s))

		jitter := sampler.Get2D()
		ray := camera.CreateRay(float64(x)+jitter.X, float64(y)+jitter.Y)
		sum = sum.Add(pt.RayColor(ray, sc, sampler))
	}

	return sum.Multiply(1.0 / float64(samples))
}

// RayColor follows a single path from ray and returns the light it gathers
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, sc *scene.Scene, sampler core.Sampler) material.Color {
	light := material.Black
	throughput := material.Gray(1)

	for bounce := 0; bounce < pt.config.MaxBounces; bounce++ {
		hit, isHit := sc.Collision(ray)
		if !isHit {
			break
		}

		switch hit.Material.Kind {
		case material.KindSolid:
			light = light.Add(throughput.MultiplyColor(hit.Material.Emission))
			throughput = throughput.MultiplyColor(hit.Material.Reflectance)
		default:
			return light
		}

		if throughput.AllAtMost(throughputCutoff) {
			break
		}

		shouldTerminate, compensation := pt.applyRussianRoulette(bounce, throughput, sampler)
		if shouldTerminate {
			break
		}
		throughput = throughput.Multiply(compensation)

		// The cosine-weighted density cancels the Lambertian cosine term, so
		// the throughput needs no pdf division
		direction := core.SampleCosineHemisphere(hit.Normal, sampler.Get2D())
		origin := ray.At(hit.Distance).Add(hit.Normal.Vec().Multiply(surfaceOffset))
		ray = core.NewRay(origin, direction)
	}

	return light
}

// applyRussianRoulette determines if a path should be terminated and returns the compensation factor
// Returns (shouldTerminate, compensationFactor)
func (pt *PathTracingIntegrator) applyRussianRoulette(bounce int, throughput material.Color, sampler core.Sampler) (bool, float64) {
	if !pt.config.RussianRoulette || bounce+1 < pt.config.RussianRouletteMinBounces {
		return false, 1.0
	}

	survivalProb := math.Min(1.0, math.Max(minSurvivalProbability, throughput.MaxComponent()))
	if sampler.Get1D() >= survivalProb {
		return true, 0.0
	}
	return false, 1.0 / survivalProb
}
