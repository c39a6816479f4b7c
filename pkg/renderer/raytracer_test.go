package renderer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// testLogger routes render progress into the test log
type testLogger struct {
	t *testing.T
}

func (l testLogger) Printf(format string, args ...interface{}) {
	l.t.Helper()
	l.t.Logf(format, args...)
}

func newTestRaytracer(t *testing.T, sc *scene.Scene, samples, workers int, seed uint64) *Raytracer {
	config := integrator.DefaultSamplingConfig()
	config.SamplesPerPixel = samples
	config.MaxBounces = 4

	rt := NewRaytracer(sc, integrator.NewPathTracingIntegrator(config), RenderConfig{Workers: workers, Seed: seed})
	rt.SetLogger(testLogger{t})
	return rt
}

func TestRaytracer_Deterministic(t *testing.T) {
	sc := scene.NewDefaultScene(24, 16)

	first := make([]byte, 24*16*4)
	second := make([]byte, 24*16*4)

	if _, err := newTestRaytracer(t, sc, 4, 3, 7).Render(first); err != nil {
		t.Fatalf("First render failed: %v", err)
	}
	if _, err := newTestRaytracer(t, sc, 4, 3, 7).Render(second); err != nil {
		t.Fatalf("Second render failed: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("Expected identical output for identical renders")
	}
}

func TestRaytracer_WorkerCountInvariant(t *testing.T) {
	sc := scene.NewDefaultScene(20, 12)

	single := make([]byte, 20*12*4)
	parallel := make([]byte, 20*12*4)

	if _, err := newTestRaytracer(t, sc, 3, 1, 11).Render(single); err != nil {
		t.Fatalf("Single worker render failed: %v", err)
	}
	stats, err := newTestRaytracer(t, sc, 3, 4, 11).Render(parallel)
	if err != nil {
		t.Fatalf("Parallel render failed: %v", err)
	}
	if stats.Workers != 4 {
		t.Errorf("Expected 4 workers, got %d", stats.Workers)
	}

	if !bytes.Equal(single, parallel) {
		t.Error("Expected worker count not to change the rendered bytes")
	}
}

func TestRaytracer_SeedChangesNoise(t *testing.T) {
	sc := scene.NewDefaultScene(16, 16)

	a := make([]byte, 16*16*4)
	b := make([]byte, 16*16*4)
	if _, err := newTestRaytracer(t, sc, 2, 2, 1).Render(a); err != nil {
		t.Fatal(err)
	}
	if _, err := newTestRaytracer(t, sc, 2, 2, 2).Render(b); err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(a, b) {
		t.Error("Expected different seeds to produce different noise")
	}
}

func TestRaytracer_BufferSize(t *testing.T) {
	sc := scene.NewEmissionScene(8, 6)
	rt := newTestRaytracer(t, sc, 1, 1, 1)

	for _, size := range []int{0, 8*6*4 - 1, 8*6*4 + 4, 8 * 6 * 3} {
		_, err := rt.Render(make([]byte, size))
		if !errors.Is(err, ErrBufferSize) {
			t.Errorf("Buffer of %d bytes: expected ErrBufferSize, got %v", size, err)
		}
	}
}

func TestRaytracer_EmissionScene(t *testing.T) {
	sc := scene.NewEmissionScene(16, 12)
	// Two samples of the same emission average exactly
	rt := newTestRaytracer(t, sc, 2, 2, 5)

	buffer := make([]byte, 16*12*4)
	stats, err := rt.Render(buffer)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if stats.TotalPixels != 16*12 {
		t.Errorf("Expected %d pixels, got %d", 16*12, stats.TotalPixels)
	}
	if stats.TotalSamples != 16*12*2 {
		t.Errorf("Expected %d samples, got %d", 16*12*2, stats.TotalSamples)
	}

	expected := ToneMap(material.NewColor(0.9, 0.5, 0.25))
	for i := 0; i < 16*12; i++ {
		got := buffer[i*4 : i*4+4]
		if got[0] != expected.R || got[1] != expected.G || got[2] != expected.B || got[3] != 255 {
			t.Fatalf("Pixel %d: expected %v, got %v", i, expected, got)
		}
	}
}

func TestRaytracer_DirectIntegrator(t *testing.T) {
	sc := scene.NewDirectScene(20, 20)
	rt := NewRaytracer(sc, integrator.NewDirectShadingIntegrator(), RenderConfig{Workers: 2, Seed: 1})
	rt.SetLogger(testLogger{t})

	img, stats := rt.RenderImage()
	if stats.TotalSamples != 20*20 {
		t.Errorf("Expected one sample per pixel, got %d samples", stats.TotalSamples)
	}

	// Corners miss both spheres and show the white background
	corner := img.RGBAAt(0, 0)
	if corner.R != 255 || corner.G != 255 || corner.B != 255 || corner.A != 255 {
		t.Errorf("Expected white corner, got %v", corner)
	}

	// The left sphere is red
	left := img.RGBAAt(5, 10)
	if left.R <= left.G || left.R <= left.B {
		t.Errorf("Expected red-dominant pixel on left sphere, got %v", left)
	}
}

func TestRaytracer_RenderImage(t *testing.T) {
	sc := scene.NewEmissionScene(13, 7)
	img, _ := newTestRaytracer(t, sc, 1, 0, 1).RenderImage()

	bounds := img.Bounds()
	if bounds.Dx() != 13 || bounds.Dy() != 7 {
		t.Errorf("Expected 13x7 image, got %dx%d", bounds.Dx(), bounds.Dy())
	}
	if lum := CalculateAverageLuminance(img); lum <= 0 {
		t.Errorf("Expected positive luminance, got %f", lum)
	}
}

func TestWorkerPool_RendersEveryPixel(t *testing.T) {
	sc := scene.NewEmissionScene(10, 10)
	integ := integrator.NewDirectShadingIntegrator()
	buffer := make([]byte, 10*10*4)

	pool := NewWorkerPool(sc, integ, buffer, 3, 1)
	pool.Start()
	for i := 0; i < 100; i++ {
		pool.SubmitTask(PixelTask{Index: i})
	}
	pool.Stop()

	total := 0
	for _, n := range pool.PixelsRendered() {
		total += n
	}
	if total != 100 {
		t.Errorf("Expected 100 pixels rendered, got %d", total)
	}

	for i := 0; i < 100; i++ {
		if buffer[i*4+3] != 255 {
			t.Fatalf("Pixel %d was not written", i)
		}
	}
}
