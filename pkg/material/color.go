package material

// Color is a linear RGB radiance or reflectance triple. Channels are
// non-negative and unbounded until tone mapping.
type Color struct {
	R, G, B float64
}

// Black is the zero color
var Black = Color{}

// NewColor creates a new color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Gray returns a color with all channels set to v
func Gray(v float64) Color {
	return Color{R: v, G: v, B: v}
}

// Add returns the channel-wise sum
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// MultiplyColor returns the channel-wise product
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Multiply scales every channel
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// MaxComponent returns the largest channel
func (c Color) MaxComponent() float64 {
	return max(c.R, c.G, c.B)
}

// AllAtMost reports whether every channel is <= limit
func (c Color) AllAtMost(limit float64) bool {
	return c.R <= limit && c.G <= limit && c.B <= limit
}
