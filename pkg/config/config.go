package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
)

// Config holds the scene selection and render settings
type Config struct {
	// Scene selection; SceneFile takes precedence over Scene
	Scene     string `json:"scene"`
	SceneFile string `json:"scene_file"`

	// Render settings
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	SamplesPerPixel int     `json:"samples_per_pixel"`
	MaxBounces      int     `json:"max_bounces"`
	RussianRoulette bool    `json:"russian_roulette"`
	Integrator      string  `json:"integrator"`
	Seed            *uint64 `json:"seed,omitempty"`
	Workers         int     `json:"workers"`
	Supersample     int     `json:"supersample"`

	// Output paths; the format follows each file extension
	Outputs []string `json:"outputs"`
}

// Flags holds CLI flag values that override config file settings.
// Zero values leave the config untouched.
type Flags struct {
	Scene           string
	SceneFile       string
	Width           int
	Height          int
	SamplesPerPixel int
	MaxBounces      int
	RussianRoulette bool
	Integrator      string
	Seed            *uint64
	Workers         int
	Supersample     int
	Outputs         []string
}

const (
	DefaultScene           = "default"
	DefaultWidth           = 320
	DefaultHeight          = 240
	DefaultSamplesPerPixel = 100
	DefaultMaxBounces      = 10
	DefaultIntegrator      = "path"
	DefaultSeed            = uint64(1)
	DefaultSupersample     = 1
	DefaultOutput          = "output/render.png"

	// MaxDimension bounds the supersampled render in each direction
	MaxDimension = 16384
)

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies flag overrides and fills the remaining empty fields with
// defaults. CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.SceneFile != "" {
		c.SceneFile = flags.SceneFile
		c.Scene = ""
	}
	if flags.Scene != "" {
		c.Scene = flags.Scene
		c.SceneFile = ""
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.SamplesPerPixel > 0 {
		c.SamplesPerPixel = flags.SamplesPerPixel
	}
	if flags.MaxBounces > 0 {
		c.MaxBounces = flags.MaxBounces
	}
	if flags.RussianRoulette {
		c.RussianRoulette = true
	}
	if flags.Integrator != "" {
		c.Integrator = flags.Integrator
	}
	if flags.Seed != nil {
		seed := *flags.Seed
		c.Seed = &seed
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if len(flags.Outputs) > 0 {
		c.Outputs = flags.Outputs
	}

	// Defaults
	if c.Scene == "" && c.SceneFile == "" {
		c.Scene = DefaultScene
	}
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.SamplesPerPixel <= 0 {
		c.SamplesPerPixel = DefaultSamplesPerPixel
	}
	if c.MaxBounces <= 0 {
		c.MaxBounces = DefaultMaxBounces
	}
	if c.Integrator == "" {
		c.Integrator = DefaultIntegrator
	}
	if c.Seed == nil {
		seed := DefaultSeed
		c.Seed = &seed
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Supersample <= 0 {
		c.Supersample = DefaultSupersample
	}
	if len(c.Outputs) == 0 {
		c.Outputs = []string{DefaultOutput}
	}
}

// Validate checks a resolved config
func (c *Config) Validate() error {
	var errs []error

	if c.Integrator != "path" && c.Integrator != "direct" {
		errs = append(errs, fmt.Errorf("integrator: must be path or direct, got %q", c.Integrator))
	}
	if c.Supersample < 1 || c.Supersample > 8 {
		errs = append(errs, fmt.Errorf("supersample: must be between 1 and 8, got %d", c.Supersample))
	}
	if c.Width*c.Supersample > MaxDimension || c.Height*c.Supersample > MaxDimension {
		errs = append(errs, fmt.Errorf("width/height: %dx%d at supersample %d exceeds %d pixels per side",
			c.Width, c.Height, c.Supersample, MaxDimension))
	}
	if c.Width < 2 {
		errs = append(errs, fmt.Errorf("width: must be at least 2, got %d", c.Width))
	}
	if c.Height < 1 {
		errs = append(errs, fmt.Errorf("height: must be positive, got %d", c.Height))
	}
	for i, out := range c.Outputs {
		if out == "" {
			errs = append(errs, fmt.Errorf("outputs[%d]: empty path", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// RenderWidth returns the width the scene is rendered at before downsampling
func (c *Config) RenderWidth() int { return c.Width * c.Supersample }

// RenderHeight returns the height the scene is rendered at before downsampling
func (c *Config) RenderHeight() int { return c.Height * c.Supersample }

// SamplingConfig returns the integrator settings of the config
func (c *Config) SamplingConfig() integrator.SamplingConfig {
	sampling := integrator.DefaultSamplingConfig()
	sampling.SamplesPerPixel = c.SamplesPerPixel
	sampling.MaxBounces = c.MaxBounces
	sampling.RussianRoulette = c.RussianRoulette
	return sampling
}
