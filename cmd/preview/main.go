package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/config"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/loaders"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

func main() {
	var flags config.Flags
	flag.StringVar(&flags.Scene, "scene", "", "Built-in scene to preview")
	flag.StringVar(&flags.SceneFile, "scene-file", "", "JSON scene file to preview")
	flag.IntVar(&flags.Width, "width", 0, "Image width")
	flag.IntVar(&flags.Height, "height", 0, "Image height")
	flag.IntVar(&flags.SamplesPerPixel, "samples", 16, "Samples per pixel")
	flag.IntVar(&flags.MaxBounces, "bounces", 0, "Maximum bounces per path")
	flag.BoolVar(&flags.RussianRoulette, "russian-roulette", false, "Terminate paths with unbiased Russian roulette")
	flag.StringVar(&flags.Integrator, "integrator", "", "Integrator: 'path' or 'direct'")
	flag.IntVar(&flags.Workers, "workers", 0, "Number of parallel workers")
	scale := flag.Int("scale", 2, "Window pixels per image pixel")
	flag.Parse()

	img, title, err := renderPreview(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := runWindow(img, title, *scale); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// renderPreview renders the selected scene and returns it with a window title
func renderPreview(flags config.Flags) (*image.RGBA, string, error) {
	var cfg config.Config
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	var sc *scene.Scene
	var err error
	if cfg.SceneFile != "" {
		sc, err = loaders.LoadScene(cfg.SceneFile, cfg.Width, cfg.Height)
	} else {
		sc, err = scene.ByName(cfg.Scene, cfg.Width, cfg.Height)
	}
	if err != nil {
		return nil, "", err
	}

	integ, err := integrator.New(cfg.Integrator, cfg.SamplingConfig())
	if err != nil {
		return nil, "", err
	}

	rt := renderer.NewRaytracer(sc, integ, renderer.RenderConfig{Workers: cfg.Workers, Seed: *cfg.Seed})
	img, stats := rt.RenderImage()

	name := integ.Name()
	if cfg.RussianRoulette && name == "path" {
		name += " + russian roulette"
	}
	title := fmt.Sprintf("%s (%s, %d spp, %v)", sc.Name, name, integ.SamplesPerPixel(), stats.Elapsed.Round(time.Millisecond))
	return img, title, nil
}
