package renderer

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// ErrBufferSize is returned when the output buffer does not hold exactly
// width*height RGBA8 pixels
var ErrBufferSize = errors.New("buffer size does not match resolution")

// RenderConfig contains rendering configuration. The resolution comes from
// the scene camera.
type RenderConfig struct {
	Workers int    // Number of parallel workers (0 = use CPU count)
	Seed    uint64 // Seed shared by every pixel stream
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Workers: 0,
		Seed:    1,
	}
}

// Raytracer renders a scene with an integrator into RGBA8 buffers
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     RenderConfig
	logger     core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(sc *scene.Scene, integ integrator.Integrator, config RenderConfig) *Raytracer {
	return &Raytracer{
		scene:      sc,
		integrator: integ,
		config:     config,
		logger:     NewDefaultLogger(),
	}
}

// SetLogger replaces the logger used for render progress
func (rt *Raytracer) SetLogger(logger core.Logger) {
	rt.logger = logger
}

// Width returns the output width in pixels
func (rt *Raytracer) Width() int { return rt.scene.Camera.Width() }

// Height returns the output height in pixels
func (rt *Raytracer) Height() int { return rt.scene.Camera.Height() }

// Render writes the tone-mapped image into buffer, row-major from the top
// row, four bytes per pixel. The buffer is only written, never read or
// resized. Rendering the same scene with the same seed always produces the
// same bytes, whatever the worker count.
func (rt *Raytracer) Render(buffer []byte) (RenderStats, error) {
	width, height := rt.Width(), rt.Height()
	if want := width * height * 4; len(buffer) != want {
		return RenderStats{}, fmt.Errorf("%w: got %d bytes, want %d for %dx%d", ErrBufferSize, len(buffer), want, width, height)
	}

	start := time.Now()
	pool := NewWorkerPool(rt.scene, rt.integrator, buffer, rt.config.Workers, rt.config.Seed)

	rt.logger.Printf("Rendering %s: %dx%d, %s integrator, %d samples per pixel, %d workers\n",
		rt.scene.Name, width, height, rt.integrator.Name(), rt.integrator.SamplesPerPixel(), pool.GetNumWorkers())

	pool.Start()
	for i := 0; i < width*height; i++ {
		pool.SubmitTask(PixelTask{Index: i})
	}
	pool.Stop()

	stats := RenderStats{
		TotalPixels:  width * height,
		TotalSamples: width * height * rt.integrator.SamplesPerPixel(),
		Workers:      pool.GetNumWorkers(),
		Elapsed:      time.Since(start),
	}
	rt.logger.Printf("Render completed: %v\n", stats)

	return stats, nil
}

// RenderImage allocates an image of the camera resolution and renders into it
func (rt *Raytracer) RenderImage() (*image.RGBA, RenderStats) {
	img := image.NewRGBA(image.Rect(0, 0, rt.Width(), rt.Height()))
	// Pix of a fresh RGBA is exactly width*height*4, so Render cannot fail
	stats, _ := rt.Render(img.Pix)
	return img, stats
}
