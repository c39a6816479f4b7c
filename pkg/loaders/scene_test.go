package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

const validScene = `{
	"name": "Test Scene",
	"camera": {
		"center": [0, 0, 5],
		"look_at": [0, 0, 0],
		"up": [0, 1, 0],
		"fov_degrees": 20
	},
	"spheres": [
		{"center": [0, 0, 0], "radius": 1, "reflectance": [0.5, 0.5, 0.5], "emission": [0, 0, 0]},
		{"center": [0, 5, 0], "radius": 0.5, "reflectance": [0, 0, 0], "emission": [4, 3, 2]}
	]
}`

func TestParseScene(t *testing.T) {
	sc, err := ParseScene(strings.NewReader(validScene), 40, 30)
	if err != nil {
		t.Fatalf("ParseScene failed: %v", err)
	}

	if sc.Name != "Test Scene" {
		t.Errorf("Expected name 'Test Scene', got %q", sc.Name)
	}
	if sc.Camera.Width() != 40 || sc.Camera.Height() != 30 {
		t.Errorf("Expected 40x30 camera, got %dx%d", sc.Camera.Width(), sc.Camera.Height())
	}
	if len(sc.Objects) != 2 {
		t.Fatalf("Expected 2 objects, got %d", len(sc.Objects))
	}

	// A ray straight down the view axis hits the first sphere at distance 4
	ray := core.NewRay(core.NewVec3(0.0, 0.0, 5.0), core.Normalize(core.NewVec3(0.0, 0.0, -1.0)))
	hit, ok := sc.Collision(ray)
	if !ok {
		t.Fatal("Expected center ray to hit")
	}
	if hit.Distance != 4 {
		t.Errorf("Expected distance 4, got %f", hit.Distance)
	}
	if hit.Material.Reflectance.R != 0.5 {
		t.Errorf("Expected reflectance 0.5, got %v", hit.Material.Reflectance)
	}

	// Upward ray from above the first sphere hits the emitter
	up := core.NewRay(core.NewVec3(0.0, 2.0, 0.0), core.Normalize(core.NewVec3(0.0, 1.0, 0.0)))
	hit, ok = sc.Collision(up)
	if !ok || hit.Material.Emission.G != 3 {
		t.Errorf("Expected to hit emitter with emission (4,3,2), got ok=%v hit=%+v", ok, hit)
	}
}

func TestParseScene_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{
			name:    "zero radius",
			content: `{"camera": {"center": [0,0,5], "look_at": [0,0,0], "up": [0,1,0], "fov_degrees": 20}, "spheres": [{"center": [0,0,0], "radius": 0}]}`,
			field:   "spheres[0].radius",
		},
		{
			name:    "negative radius",
			content: `{"camera": {"center": [0,0,5], "look_at": [0,0,0], "up": [0,1,0], "fov_degrees": 20}, "spheres": [{"center": [0,0,0], "radius": 1}, {"center": [0,0,0], "radius": -2}]}`,
			field:   "spheres[1].radius",
		},
		{
			name:    "reflectance above one",
			content: `{"camera": {"center": [0,0,5], "look_at": [0,0,0], "up": [0,1,0], "fov_degrees": 20}, "spheres": [{"center": [0,0,0], "radius": 1, "reflectance": [1.5, 0, 0]}]}`,
			field:   "spheres[0].reflectance",
		},
		{
			name:    "negative emission",
			content: `{"camera": {"center": [0,0,5], "look_at": [0,0,0], "up": [0,1,0], "fov_degrees": 20}, "spheres": [{"center": [0,0,0], "radius": 1, "emission": [0, -1, 0]}]}`,
			field:   "spheres[0].emission",
		},
		{
			name:    "camera looks at itself",
			content: `{"camera": {"center": [1,2,3], "look_at": [1,2,3], "up": [0,1,0], "fov_degrees": 20}}`,
			field:   "camera.look_at",
		},
		{
			name:    "up parallel to view",
			content: `{"camera": {"center": [0,5,0], "look_at": [0,0,0], "up": [0,1,0], "fov_degrees": 20}}`,
			field:   "camera.up",
		},
		{
			name:    "missing fov",
			content: `{"camera": {"center": [0,0,5], "look_at": [0,0,0], "up": [0,1,0]}}`,
			field:   "camera.fov_degrees",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScene(strings.NewReader(tt.content), 10, 10)
			if !errors.Is(err, ErrInvalidScene) {
				t.Fatalf("Expected ErrInvalidScene, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("Expected error to name %q, got %v", tt.field, err)
			}
		})
	}
}

func TestParseScene_Malformed(t *testing.T) {
	for _, content := range []string{`{"camera": `, `{"unknown_field": 1}`, `[]`} {
		if _, err := ParseScene(strings.NewReader(content), 10, 10); err == nil {
			t.Errorf("Expected error for %q", content)
		}
	}
}

func TestLoadScene(t *testing.T) {
	dir := t.TempDir()

	unnamed := strings.Replace(validScene, `"name": "Test Scene",`, "", 1)
	path := filepath.Join(dir, "my-room.json")
	if err := os.WriteFile(path, []byte(unnamed), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := LoadScene(path, 16, 16)
	if err != nil {
		t.Fatalf("LoadScene failed: %v", err)
	}
	if sc.Name != "my-room" {
		t.Errorf("Expected name from file, got %q", sc.Name)
	}

	if _, err := LoadScene(filepath.Join(dir, "missing.json"), 16, 16); err == nil {
		t.Error("Expected error for missing file")
	}
	if _, err := LoadScene(filepath.Join(dir, "scene.pbrt"), 16, 16); err == nil {
		t.Error("Expected error for non-JSON extension")
	}
}

func TestLoadScene_BundledScenes(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "scenes", "*.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Skip("no bundled scenes found")
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			sc, err := LoadScene(file, 32, 24)
			if err != nil {
				t.Fatalf("Bundled scene failed to load: %v", err)
			}
			if len(sc.Objects) == 0 {
				t.Error("Expected bundled scene to contain spheres")
			}
		})
	}
}
