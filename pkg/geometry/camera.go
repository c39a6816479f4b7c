package geometry

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Camera maps pixel coordinates to world-space rays. The frame is
// forward/bottom/right so that increasing y walks down the image.
type Camera struct {
	position core.Vec3f
	forward  core.Vec3f
	bottom   core.Vec3f
	right    core.Vec3f

	// Rows used by TransformDirection, from the adjugate of [right; bottom; forward]
	inverseX core.Vec3f
	inverseY core.Vec3f
	inverseZ core.Vec3f

	width, height int
	unitPerPixel  float64
}

// CameraConfig contains look-at camera parameters
type CameraConfig struct {
	Center     core.Vec3f // Camera position
	LookAt     core.Vec3f // Point the camera looks at
	Up         core.Vec3f // Up direction, must not be parallel to LookAt-Center
	Width      int        // Image width in pixels
	Height     int        // Image height in pixels
	FOVDegrees float64    // Horizontal half field of view in degrees
}

// NewCamera creates a camera from an explicit frame. forward, bottom and
// right must be mutually orthonormal; fov is the horizontal half field of
// view in radians.
func NewCamera(position core.Vec3f, forward, bottom, right core.Norm3f, width, height int, fov float64) *Camera {
	f, b, r := forward.Vec(), bottom.Vec(), right.Vec()

	det := math.Abs(r.X()*b.Y()*f.Z() +
		r.Y()*b.Z()*f.X() +
		r.Z()*b.X()*f.Y() -
		r.X()*b.Z()*f.Y() -
		r.Y()*b.X()*f.Z() -
		r.Z()*b.Y()*f.X())

	return &Camera{
		position:     position,
		forward:      f,
		bottom:       b,
		right:        r,
		inverseX:     b.Cross(f).Divide(det),
		inverseY:     f.Cross(r).Divide(det),
		inverseZ:     r.Cross(b).Divide(det),
		width:        width,
		height:       height,
		unitPerPixel: math.Sin(fov) / float64(width/2),
	}
}

// NewCameraFromConfig builds the orthonormal frame from a look-at description
func NewCameraFromConfig(config CameraConfig) *Camera {
	forward := core.Normalize(config.LookAt.Subtract(config.Center))
	right := core.Normalize(forward.Vec().Cross(config.Up))
	bottom := core.Normalize(forward.Vec().Cross(right.Vec()))
	fov := config.FOVDegrees * math.Pi / 180

	return NewCamera(config.Center, forward, bottom, right, config.Width, config.Height, fov)
}

// CreateRay returns the ray through pixel coordinate (x, y). Fractional
// coordinates address points inside a pixel, so [x, x+1) × [y, y+1) covers
// pixel (x, y).
func (c *Camera) CreateRay(x, y float64) core.Ray {
	cx := x - float64(c.width/2)
	cy := y - float64(c.height/2)

	direction := c.forward.
		Add(c.right.Multiply(cx * c.unitPerPixel)).
		Add(c.bottom.Multiply(cy * c.unitPerPixel))

	return core.NewRay(c.position, core.Normalize(direction))
}

// TransformDirection expresses a world direction in the camera frame as
// (right, bottom, forward) components
func (c *Camera) TransformDirection(direction core.Norm3f) core.Norm3f {
	d := direction.Vec()
	return core.Normalize(core.NewVec3(
		c.inverseX.Dot(d),
		c.inverseY.Dot(d),
		c.inverseZ.Dot(d),
	))
}

// TransformPosition returns p relative to the camera position
func (c *Camera) TransformPosition(p core.Vec3f) core.Vec3f {
	return p.Subtract(c.position)
}

// Position returns the camera position
func (c *Camera) Position() core.Vec3f { return c.position }

// Forward returns the viewing direction
func (c *Camera) Forward() core.Vec3f { return c.forward }

func (c *Camera) Width() int  { return c.width }
func (c *Camera) Height() int { return c.height }
