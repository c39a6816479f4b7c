package core

import "math"

// Number is any Go numeric kind a Vec3 can hold
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Float is the subset of Number that supports normalization
type Float interface {
	~float32 | ~float64
}

// Vec3 represents a 3D vector over any numeric type.
// It carries no normalization invariant; see Normalized for unit vectors.
type Vec3[T Number] struct {
	x, y, z T
}

// Vec3f is the float64 vector used throughout the renderer
type Vec3f = Vec3[float64]

// Norm3f is the float64 unit vector used for ray directions and normals
type Norm3f = Normalized[float64]

// NewVec3 creates a new Vec3
func NewVec3[T Number](x, y, z T) Vec3[T] {
	return Vec3[T]{x: x, y: y, z: z}
}

func (v Vec3[T]) X() T { return v.x }
func (v Vec3[T]) Y() T { return v.y }
func (v Vec3[T]) Z() T { return v.z }

// Add returns the sum of two vectors
func (v Vec3[T]) Add(other Vec3[T]) Vec3[T] {
	return Vec3[T]{v.x + other.x, v.y + other.y, v.z + other.z}
}

// Subtract returns the difference of two vectors
func (v Vec3[T]) Subtract(other Vec3[T]) Vec3[T] {
	return Vec3[T]{v.x - other.x, v.y - other.y, v.z - other.z}
}

// Negate returns the negative of the vector
func (v Vec3[T]) Negate() Vec3[T] {
	return Vec3[T]{-v.x, -v.y, -v.z}
}

// Multiply returns the vector scaled by a scalar
func (v Vec3[T]) Multiply(scalar T) Vec3[T] {
	return Vec3[T]{v.x * scalar, v.y * scalar, v.z * scalar}
}

// Divide returns the vector with every component divided by a scalar.
// Integer vectors use truncating division.
func (v Vec3[T]) Divide(scalar T) Vec3[T] {
	return Vec3[T]{v.x / scalar, v.y / scalar, v.z / scalar}
}

// Dot returns the inner product of two vectors
func (v Vec3[T]) Dot(other Vec3[T]) T {
	return v.x*other.x + v.y*other.y + v.z*other.z
}

// Cross returns the right-handed cross product of two vectors
func (v Vec3[T]) Cross(other Vec3[T]) Vec3[T] {
	return Vec3[T]{
		x: v.y*other.z - v.z*other.y,
		y: v.z*other.x - v.x*other.z,
		z: v.x*other.y - v.y*other.x,
	}
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3[T]) LengthSquared() T {
	return v.Dot(v)
}

// Length returns the magnitude of a float vector
func Length[T Float](v Vec3[T]) T {
	return T(math.Sqrt(float64(v.LengthSquared())))
}

// Normalized is a vector of unit length. The only way to obtain one is
// Normalize, and it has no arithmetic of its own: convert with Vec first.
type Normalized[T Float] struct {
	x, y, z T
}

// Normalize divides v by its length. The zero vector yields NaN components;
// callers must not pass one.
func Normalize[T Float](v Vec3[T]) Normalized[T] {
	length := Length(v)
	return Normalized[T]{x: v.x / length, y: v.y / length, z: v.z / length}
}

// Vec converts back to a plain vector without loss
func (n Normalized[T]) Vec() Vec3[T] {
	return Vec3[T]{x: n.x, y: n.y, z: n.z}
}
