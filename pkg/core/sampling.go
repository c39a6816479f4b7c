package core

import (
	"math"
	"math/rand/v2"
)

// Vec2 holds a pair of uniform samples
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// StreamSampler draws from a PCG generator that can be re-seeded onto an
// independent stream per sample. It is owned by a single worker and must not
// be shared between goroutines.
type StreamSampler struct {
	seed   uint64
	source *rand.PCG
	random *rand.Rand
}

// NewStreamSampler creates a sampler positioned at stream 0 of seed
func NewStreamSampler(seed uint64) *StreamSampler {
	source := rand.NewPCG(seed, 0)
	return &StreamSampler{
		seed:   seed,
		source: source,
		random: rand.New(source),
	}
}

// Reset moves the sampler to the start of the given stream. Identical
// (seed, stream) pairs always replay the same sequence.
func (s *StreamSampler) Reset(stream uint64) {
	s.source.Seed(s.seed, mixStream(stream))
}

// mixStream scatters consecutive stream ids across the PCG state space (splitmix64 finalizer)
func mixStream(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Get1D returns a random float64 in [0, 1)
func (s *StreamSampler) Get1D() float64 {
	return s.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (s *StreamSampler) Get2D() Vec2 {
	return NewVec2(s.random.Float64(), s.random.Float64())
}

var (
	axisX = NewVec3(1.0, 0.0, 0.0)
	axisY = NewVec3(0.0, 1.0, 0.0)
)

// SampleCosineHemisphere maps a 2D sample to a cosine-weighted direction in
// the hemisphere around normal (Malley's method). sample.X picks the disk
// radius as sqrt(sample.X), sample.Y the angle.
func SampleCosineHemisphere(normal Norm3f, sample Vec2) Norm3f {
	n := normal.Vec()

	// Cross with the world axis the normal is least aligned with
	axis := axisY
	if math.Abs(n.Dot(axisX)) < math.Abs(n.Dot(axisY)) {
		axis = axisX
	}
	tangent := n.Cross(axis)
	bitangent := Normalize(tangent.Cross(n)).Vec()
	tangent = Normalize(tangent).Vec()

	r := math.Sqrt(sample.X)
	phi := 2.0 * math.Pi * sample.Y

	direction := tangent.Multiply(math.Cos(phi) * r).
		Add(bitangent.Multiply(math.Sin(phi) * r)).
		Add(n.Multiply(math.Sqrt(1.0 - r*r)))
	return Normalize(direction)
}
