package geometry

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// Hit describes where a ray first meets a surface
type Hit struct {
	Distance float64           // Parameter t along the ray, always > 0
	Normal   core.Norm3f       // Outward surface normal at the hit point
	Material material.Material // Material of the hit object
}

// Collider is anything a ray can hit
type Collider interface {
	Collision(ray core.Ray) (Hit, bool)
}
