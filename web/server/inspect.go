package server

import (
	"fmt"
	"net/http"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool       `json:"hit"`
	MaterialType string     `json:"materialType,omitempty"`
	Point        [3]float64 `json:"point"`
	Normal       [3]float64 `json:"normal"`
	Distance     float64    `json:"distance"`
	Reflectance  [3]float64 `json:"reflectance"`
	Emission     [3]float64 `json:"emission"`
	Color        string     `json:"color,omitempty"` // Hex preview of the surface
	CameraPoint  [3]float64 `json:"cameraPoint"`     // Point relative to the camera position
	CameraNormal [3]float64 `json:"cameraNormal"`    // Normal as (right, bottom, forward) components
	Camera       CameraInfo `json:"camera"`
}

// CameraInfo reports the look-at parameters the scene was built with
type CameraInfo struct {
	Center     [3]float64 `json:"center"`
	LookAt     [3]float64 `json:"lookAt"`
	Up         [3]float64 `json:"up"`
	FOVDegrees float64    `json:"fovDegrees"`
}

func vec3Array(v core.Vec3f) [3]float64 {
	return [3]float64{v.X(), v.Y(), v.Z()}
}

func cameraInfo(sceneObj *scene.Scene) CameraInfo {
	cfg := sceneObj.CameraConfig
	return CameraInfo{
		Center:     vec3Array(cfg.Center),
		LookAt:     vec3Array(cfg.LookAt),
		Up:         vec3Array(cfg.Up),
		FOVDegrees: cfg.FOVDegrees,
	}
}

// InspectResult describes the first surface seen through a pixel
type InspectResult struct {
	Hit      bool
	Ray      core.Ray
	Distance float64
	Normal   core.Norm3f
	Material material.Material
}

// inspectPixel casts a ray through the center of the pixel and returns the
// first object hit
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResult {
	ray := sceneObj.Camera.CreateRay(float64(pixelX)+0.5, float64(pixelY)+0.5)

	hit, ok := sceneObj.Collision(ray)
	if !ok {
		return InspectResult{Hit: false, Ray: ray}
	}

	return InspectResult{
		Hit:      true,
		Ray:      ray,
		Distance: hit.Distance,
		Normal:   hit.Normal,
		Material: hit.Material,
	}
}

// surfaceColor returns a hex color for the material; emitters show their
// emission, everything else its reflectance
func surfaceColor(mat material.Material) string {
	c := mat.Reflectance
	if mat.Emission.MaxComponent() > 0 {
		c = mat.Emission
	}
	return fmt.Sprintf("#%02x%02x%02x", channel8(c.R), channel8(c.G), channel8(c.B))
}

func channel8(v float64) int {
	if v >= 1 {
		return 255
	}
	if !(v > 0) {
		return 0
	}
	return int(v * 255)
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := parseIntParam(r.URL.Query(), "x", -1, 0, req.Width-1)
	if err != nil || pixelX < 0 {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := parseIntParam(r.URL.Query(), "y", -1, 0, req.Height-1)
	if err != nil || pixelY < 0 {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.createScene(req.Scene, req.Width, req.Height)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, Camera: cameraInfo(sceneObj)})
		return
	}

	point := result.Ray.At(result.Distance)
	mat := result.Material

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: mat.Kind.String(),
		Point:        vec3Array(point),
		Normal:       vec3Array(result.Normal.Vec()),
		Distance:     result.Distance,
		Reflectance:  [3]float64{mat.Reflectance.R, mat.Reflectance.G, mat.Reflectance.B},
		Emission:     [3]float64{mat.Emission.R, mat.Emission.G, mat.Emission.B},
		Color:        surfaceColor(mat),
		CameraPoint:  vec3Array(sceneObj.Camera.TransformPosition(point)),
		CameraNormal: vec3Array(sceneObj.Camera.TransformDirection(result.Normal).Vec()),
		Camera:       cameraInfo(sceneObj),
	})
}
