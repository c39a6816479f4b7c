package core

// Ray is a half-line from Origin along a unit Direction. Rays are values and
// are rebuilt for every sample and bounce rather than mutated.
type Ray struct {
	Origin    Vec3f
	Direction Norm3f
}

// NewRay creates a new ray
func NewRay(origin Vec3f, direction Norm3f) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3f {
	return r.Origin.Add(r.Direction.Vec().Multiply(t))
}
