package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// Scene contains all the elements needed for rendering. It is built once
// and only read while a render runs, so workers share it without locking.
type Scene struct {
	Name         string
	Camera       *geometry.Camera
	CameraConfig geometry.CameraConfig
	Objects      []geometry.Collider // Objects in the scene, scanned in order
}

// New creates an empty scene viewed through the given camera configuration
func New(name string, cameraConfig geometry.CameraConfig) *Scene {
	return &Scene{
		Name:         name,
		Camera:       geometry.NewCameraFromConfig(cameraConfig),
		CameraConfig: cameraConfig,
		Objects:      make([]geometry.Collider, 0),
	}
}

// AddSphere appends a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3f, radius float64, mat material.Material) *geometry.Sphere {
	sphere := geometry.NewSphere(center, radius, mat)
	s.Objects = append(s.Objects, sphere)
	return sphere
}

// Collision returns the nearest hit among all objects. Only a strictly
// closer hit replaces an earlier one, so ties go to the first object.
func (s *Scene) Collision(ray core.Ray) (geometry.Hit, bool) {
	var closest geometry.Hit
	hitAnything := false

	for _, object := range s.Objects {
		hit, isHit := object.Collision(ray)
		if !isHit {
			continue
		}
		if !hitAnything || hit.Distance < closest.Distance {
			closest = hit
			hitAnything = true
		}
	}

	return closest, hitAnything
}
