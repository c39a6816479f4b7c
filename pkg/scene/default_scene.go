package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// builtin describes a scene that is constructed in code
type builtin struct {
	build       func(width, height int) *Scene
	displayName string
	description string
}

// builders maps scene names to their constructors
var builders = map[string]builtin{
	"default":  {NewDefaultScene, "Default Scene", "Diffuse spheres on a ground sphere under a spherical light"},
	"emission": {NewEmissionScene, "Emission", "A single emissive sphere filling the view"},
	"direct":   {NewDirectScene, "Direct Shading", "Two spheres on a white background for the direct integrator"},
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName builds a built-in scene for the given resolution
func ByName(name string, width, height int) (*Scene, error) {
	b, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, Names())
	}
	return b.build(width, height), nil
}

// NewDefaultScene creates a small room of diffuse spheres lit by a bright
// emissive sphere overhead, sitting on a huge ground sphere
func NewDefaultScene(width, height int) *Scene {
	s := New("default", geometry.CameraConfig{
		Center:     core.NewVec3(0.0, 1.0, 4.5),
		LookAt:     core.NewVec3(0.0, 0.7, 0.0),
		Up:         core.NewVec3(0.0, 1.0, 0.0),
		Width:      width,
		Height:     height,
		FOVDegrees: 35,
	})

	ground := material.NewLambertian(material.NewColor(0.75, 0.75, 0.7))
	red := material.NewLambertian(material.NewColor(0.8, 0.2, 0.15))
	blue := material.NewLambertian(material.NewColor(0.15, 0.3, 0.8))
	white := material.NewLambertian(material.Gray(0.9))
	light := material.NewEmissive(material.NewColor(12.0, 11.0, 9.5))
	glow := material.NewSolid(material.Gray(0.5), material.NewColor(0.6, 0.3, 0.05))

	s.AddSphere(core.NewVec3(0.0, -1000.0, 0.0), 1000, ground)
	s.AddSphere(core.NewVec3(-1.1, 0.6, 0.0), 0.6, red)
	s.AddSphere(core.NewVec3(0.0, 0.5, -0.8), 0.5, white)
	s.AddSphere(core.NewVec3(1.1, 0.6, 0.0), 0.6, blue)
	s.AddSphere(core.NewVec3(0.35, 0.2, 0.9), 0.2, glow)
	s.AddSphere(core.NewVec3(0.0, 4.0, 1.0), 1.0, light)

	return s
}

// NewEmissionScene creates a single purely emissive sphere that fills the
// view, so every primary ray sees its emission directly
func NewEmissionScene(width, height int) *Scene {
	s := New("emission", geometry.CameraConfig{
		Center:     core.NewVec3(0.0, 0.0, 3.0),
		LookAt:     core.NewVec3(0.0, 0.0, 0.0),
		Up:         core.NewVec3(0.0, 1.0, 0.0),
		Width:      width,
		Height:     height,
		FOVDegrees: 20,
	})
	s.AddSphere(core.NewVec3(0.0, 0.0, 0.0), 2.0, material.NewEmissive(material.NewColor(0.9, 0.5, 0.25)))
	return s
}

// NewDirectScene creates a pair of spheres on a white background, meant for
// the direct shading integrator
func NewDirectScene(width, height int) *Scene {
	s := New("direct", geometry.CameraConfig{
		Center:     core.NewVec3(0.0, 0.0, 5.0),
		LookAt:     core.NewVec3(0.0, 0.0, 0.0),
		Up:         core.NewVec3(0.0, 1.0, 0.0),
		Width:      width,
		Height:     height,
		FOVDegrees: 30,
	})
	s.AddSphere(core.NewVec3(-0.8, 0.0, 0.0), 0.7, material.NewLambertian(material.NewColor(0.9, 0.1, 0.1)))
	s.AddSphere(core.NewVec3(0.8, 0.0, -0.5), 0.7, material.NewLambertian(material.NewColor(0.1, 0.9, 0.1)))
	return s
}
