package geometry

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3f
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere. Radius must be positive.
func NewSphere(center core.Vec3f, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Collision intersects the ray with the sphere. The near root wins when it
// lies in front of the origin; otherwise the far root is tried, so a ray
// starting inside the sphere hits the far wall.
func (s *Sphere) Collision(ray core.Ray) (Hit, bool) {
	d := ray.Direction.Vec()
	c := s.Center.Subtract(ray.Origin)

	// Quadratic a·t² + 2·halfB·t + cTerm = 0
	a := d.LengthSquared()
	halfB := -d.Dot(c)
	cTerm := c.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*cTerm
	if discriminant < 0 {
		return Hit{}, false
	}
	sqrtD := math.Sqrt(discriminant)

	t := (-halfB - sqrtD) / a
	if !(t > 0) {
		t = (-halfB + sqrtD) / a
	}
	if !(t > 0) {
		return Hit{}, false
	}

	return Hit{
		Distance: t,
		Normal:   core.Normalize(ray.Origin.Add(d.Multiply(t)).Subtract(s.Center)),
		Material: s.Material,
	}, true
}
