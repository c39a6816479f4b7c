package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// ErrInvalidScene is wrapped by every validation error in a scene file
var ErrInvalidScene = errors.New("invalid scene")

// SceneFile is the JSON layout of a scene description
type SceneFile struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Group       string       `json:"group,omitempty"`
	Camera      CameraBlock  `json:"camera"`
	Spheres     []SphereItem `json:"spheres"`
}

// CameraBlock describes a look-at camera
type CameraBlock struct {
	Center     [3]float64 `json:"center"`
	LookAt     [3]float64 `json:"look_at"`
	Up         [3]float64 `json:"up"`
	FOVDegrees float64    `json:"fov_degrees"`
}

// SphereItem describes one sphere and its material
type SphereItem struct {
	Center      [3]float64 `json:"center"`
	Radius      float64    `json:"radius"`
	Reflectance [3]float64 `json:"reflectance"`
	Emission    [3]float64 `json:"emission"`
}

// ParseScene decodes a JSON scene description and builds it at the given
// resolution
func ParseScene(reader io.Reader, width, height int) (*scene.Scene, error) {
	var file SceneFile
	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}

	if err := file.Validate(); err != nil {
		return nil, err
	}

	return file.Build(width, height), nil
}

// LoadScene loads and builds a JSON scene file. Scenes without a name are
// named after the file.
func LoadScene(filename string, width, height int) (*scene.Scene, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".json") {
		return nil, fmt.Errorf("invalid file type %q: only .json scene files are allowed", filename)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	sc, err := ParseScene(file, width, height)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return sc, nil
}

// Validate checks radii, colors and the camera frame
func (f *SceneFile) Validate() error {
	cam := f.Camera
	forward := vec(cam.LookAt).Subtract(vec(cam.Center))
	if forward.LengthSquared() == 0 {
		return fmt.Errorf("%w: camera.look_at must differ from camera.center", ErrInvalidScene)
	}
	if forward.Cross(vec(cam.Up)).LengthSquared() == 0 {
		return fmt.Errorf("%w: camera.up must not be zero or parallel to the view direction", ErrInvalidScene)
	}
	if !(cam.FOVDegrees > 0 && cam.FOVDegrees < 90) {
		return fmt.Errorf("%w: camera.fov_degrees must be in (0, 90), got %g", ErrInvalidScene, cam.FOVDegrees)
	}

	for i, s := range f.Spheres {
		if !(s.Radius > 0) || math.IsInf(s.Radius, 1) {
			return fmt.Errorf("%w: spheres[%d].radius must be positive, got %g", ErrInvalidScene, i, s.Radius)
		}
		for c := 0; c < 3; c++ {
			if s.Reflectance[c] < 0 || s.Reflectance[c] > 1 {
				return fmt.Errorf("%w: spheres[%d].reflectance must be in [0, 1], got %v", ErrInvalidScene, i, s.Reflectance)
			}
			if s.Emission[c] < 0 {
				return fmt.Errorf("%w: spheres[%d].emission must not be negative, got %v", ErrInvalidScene, i, s.Emission)
			}
		}
	}
	return nil
}

// Build creates the scene at the given resolution without validating it
func (f *SceneFile) Build(width, height int) *scene.Scene {
	sc := scene.New(f.Name, geometry.CameraConfig{
		Center:     vec(f.Camera.Center),
		LookAt:     vec(f.Camera.LookAt),
		Up:         vec(f.Camera.Up),
		Width:      width,
		Height:     height,
		FOVDegrees: f.Camera.FOVDegrees,
	})

	for _, s := range f.Spheres {
		mat := material.NewSolid(color(s.Reflectance), color(s.Emission))
		sc.AddSphere(vec(s.Center), s.Radius, mat)
	}
	return sc
}

func vec(v [3]float64) core.Vec3f {
	return core.NewVec3(v[0], v[1], v[2])
}

func color(c [3]float64) material.Color {
	return material.NewColor(c[0], c[1], c[2])
}
