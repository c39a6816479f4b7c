package integrator

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// DirectShadingIntegrator shades the first hit by the cosine between the
// normal and the view ray. It is deterministic and isolates camera and
// intersection bugs from sampling noise.
type DirectShadingIntegrator struct {
	Background material.Color
}

// NewDirectShadingIntegrator creates a direct shading integrator with a white background
func NewDirectShadingIntegrator() *DirectShadingIntegrator {
	return &DirectShadingIntegrator{Background: material.Gray(1)}
}

func (d *DirectShadingIntegrator) Name() string         { return "direct" }
func (d *DirectShadingIntegrator) SamplesPerPixel() int { return 1 }

// PixelColor shoots one ray through the pixel center; the sampler is unused
func (d *DirectShadingIntegrator) PixelColor(sc *scene.Scene, x, y int, _ PixelSampler) material.Color {
	ray := sc.Camera.CreateRay(float64(x)+0.5, float64(y)+0.5)
	return d.RayColor(ray, sc)
}

// RayColor returns the shaded color of the first surface along ray
func (d *DirectShadingIntegrator) RayColor(ray core.Ray, sc *scene.Scene) material.Color {
	hit, isHit := sc.Collision(ray)
	if !isHit {
		return d.Background
	}

	cosine := math.Max(0, -hit.Normal.Vec().Dot(ray.Direction.Vec()))
	return hit.Material.Reflectance.Multiply(cosine)
}
