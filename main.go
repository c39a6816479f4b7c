package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-sphere-pathtracer/pkg/config"
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/imageio"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/loaders"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	configPath string
	help       bool
	flags      config.Flags
}

func main() {
	opts, fs, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if opts.help {
		printHelp(fs)
		return
	}

	if err := run(opts, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, *flag.FlagSet, error) {
	var opts options
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)

	fs.StringVar(&opts.configPath, "config", "", "JSON config file; flags override its values")
	fs.StringVar(&opts.flags.Scene, "scene", "", "Built-in scene: "+strings.Join(scene.Names(), ", "))
	fs.StringVar(&opts.flags.SceneFile, "scene-file", "", "JSON scene file to render instead of a built-in scene")
	fs.IntVar(&opts.flags.Width, "width", 0, fmt.Sprintf("Image width (default %d)", config.DefaultWidth))
	fs.IntVar(&opts.flags.Height, "height", 0, fmt.Sprintf("Image height (default %d)", config.DefaultHeight))
	fs.IntVar(&opts.flags.SamplesPerPixel, "samples", 0, fmt.Sprintf("Samples per pixel (default %d)", config.DefaultSamplesPerPixel))
	fs.IntVar(&opts.flags.MaxBounces, "bounces", 0, fmt.Sprintf("Maximum bounces per path (default %d)", config.DefaultMaxBounces))
	fs.BoolVar(&opts.flags.RussianRoulette, "russian-roulette", false, "Terminate paths with unbiased Russian roulette")
	fs.StringVar(&opts.flags.Integrator, "integrator", "", "Integrator: 'path' or 'direct' (default path)")
	seed := fs.Uint64("seed", config.DefaultSeed, "Random seed; the same seed always gives the same image")
	fs.IntVar(&opts.flags.Workers, "workers", 0, "Number of parallel workers (default: number of CPUs)")
	fs.IntVar(&opts.flags.Supersample, "supersample", 0, "Render at N times the resolution and downsample (1-8)")
	output := fs.String("output", "", "Comma-separated output files; the extension picks png, webp, tga, bmp or tiff")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, fs, err
	}

	// Only an explicit -seed overrides the config file
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.flags.Seed = seed
		}
	})

	if *output != "" {
		for _, path := range strings.Split(*output, ",") {
			if path = strings.TrimSpace(path); path != "" {
				opts.flags.Outputs = append(opts.flags.Outputs, path)
			}
		}
	}

	return opts, fs, nil
}

func printHelp(fs *flag.FlagSet) {
	fmt.Println("Sphere Path Tracer")
	fmt.Println("Usage: pathtracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListBuiltinScenes() {
		fmt.Printf("  %-10s - %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Printf("Output is saved to %s unless -output is given\n", config.DefaultOutput)
}

// loadConfig reads the optional config file and applies flag overrides
func loadConfig(opts options) (config.Config, error) {
	var cfg config.Config
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	cfg.Resolve(opts.flags)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func run(opts options, logger core.Logger) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	img, err := render(cfg, logger)
	if err != nil {
		return err
	}

	if err := writeOutputs(img, cfg.Outputs); err != nil {
		return err
	}
	for _, path := range cfg.Outputs {
		logger.Printf("Render saved as %s\n", path)
	}
	return nil
}

// render builds the scene at the supersampled resolution, renders it and
// reduces it to the output size
func render(cfg config.Config, logger core.Logger) (*image.RGBA, error) {
	sc, err := createScene(cfg)
	if err != nil {
		return nil, err
	}

	integ, err := createIntegrator(cfg)
	if err != nil {
		return nil, err
	}

	rt := renderer.NewRaytracer(sc, integ, renderer.RenderConfig{
		Workers: cfg.Workers,
		Seed:    *cfg.Seed,
	})
	rt.SetLogger(logger)

	img, stats := rt.RenderImage()
	logger.Printf("Average luminance: %.4f\n", renderer.CalculateAverageLuminance(img))

	if cfg.Supersample > 1 {
		img = imageio.Downsample(img, cfg.Supersample)
		logger.Printf("Downsampled %dx%d to %dx%d\n", cfg.RenderWidth(), cfg.RenderHeight(), cfg.Width, cfg.Height)
	}
	logger.Printf("Throughput: %.0f samples/s\n", stats.SamplesPerSecond())

	return img, nil
}

// createScene creates a scene from a scene file or a built-in scene name
func createScene(cfg config.Config) (*scene.Scene, error) {
	if cfg.SceneFile != "" {
		return loaders.LoadScene(cfg.SceneFile, cfg.RenderWidth(), cfg.RenderHeight())
	}
	return scene.ByName(cfg.Scene, cfg.RenderWidth(), cfg.RenderHeight())
}

func createIntegrator(cfg config.Config) (integrator.Integrator, error) {
	return integrator.New(cfg.Integrator, cfg.SamplingConfig())
}

// writeOutputs encodes img to every path concurrently
func writeOutputs(img *image.RGBA, paths []string) error {
	// Reject unknown extensions before any file is written
	for _, path := range paths {
		if _, err := imageio.FormatFromPath(path); err != nil {
			return err
		}
	}

	var g errgroup.Group
	for _, path := range paths {
		g.Go(func() error {
			if err := imageio.WriteFile(path, img); err != nil {
				return fmt.Errorf("failed to save %s: %w", path, err)
			}
			return nil
		})
	}
	return g.Wait()
}
