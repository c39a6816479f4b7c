package server

import (
	"bytes"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/imageio"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string         // Scene ID from /api/scenes
	Width           int            // Image width
	Height          int            // Image height
	Samples         int            // Samples per pixel
	Bounces         int            // Maximum bounces per path
	RussianRoulette bool           // Terminate paths with Russian roulette
	Integrator      string         // "path" or "direct"
	Seed            uint64         // Sampler seed
	Format          imageio.Format // Response image format
}

// handleRender renders the requested scene synchronously and responds with
// the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req.Scene, req.Width, req.Height)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	integ, err := integrator.New(req.Integrator, integrator.SamplingConfig{
		SamplesPerPixel:           req.Samples,
		MaxBounces:                req.Bounces,
		RussianRoulette:           req.RussianRoulette,
		RussianRouletteMinBounces: integrator.DefaultSamplingConfig().RussianRouletteMinBounces,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Per-render console logging, collected into the server console afterwards
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)

	raytracer := renderer.NewRaytracer(sceneObj, integ, renderer.RenderConfig{Workers: 0, Seed: req.Seed})
	raytracer.SetLogger(webLogger)

	img, stats := raytracer.RenderImage()

	var buf bytes.Buffer
	err = imageio.Encode(&buf, img, req.Format)
	if err != nil {
		webLogger.Printf("Encode failed: %v\n", err)
	}
	s.console.Collect(consoleChan)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Id", renderID)
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{
		Scene:      "default",
		Integrator: "path",
		Format:     imageio.FormatPNG,
	}

	if scene := query.Get("scene"); scene != "" {
		req.Scene = scene
	}
	if integ := query.Get("integrator"); integ != "" {
		req.Integrator = integ
	}
	if format := query.Get("format"); format != "" {
		parsed, err := imageio.ParseFormat(format)
		if err != nil {
			return nil, err
		}
		req.Format = parsed
	}
	if rr := query.Get("rr"); rr != "" {
		parsed, err := strconv.ParseBool(rr)
		if err != nil {
			return nil, fmt.Errorf("invalid rr: %s", rr)
		}
		req.RussianRoulette = parsed
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 320, 2, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 240, 1, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 16, 1, 10000); err != nil {
		return nil, err
	}
	if req.Bounces, err = parseIntParam(query, "bounces", 10, 1, 1000); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(query, "seed", 1, 0, math.MaxInt32)
	if err != nil {
		return nil, err
	}
	req.Seed = uint64(seed)

	return req, nil
}
