package material

// Kind tags the variant a Material holds
type Kind uint8

const (
	// KindSolid is a diffuse surface with a reflectance and an emission
	KindSolid Kind = iota
)

func (k Kind) String() string {
	switch k {
	case KindSolid:
		return "solid"
	default:
		return "unknown"
	}
}

// Material describes how a surface transports light. It is a closed
// variant selected by Kind; only the fields of that kind are meaningful.
type Material struct {
	Kind        Kind
	Reflectance Color // fraction of incoming light scattered diffusely
	Emission    Color // radiance emitted by the surface
}

// NewSolid creates a solid material
func NewSolid(reflectance, emission Color) Material {
	return Material{Kind: KindSolid, Reflectance: reflectance, Emission: emission}
}

// NewLambertian creates a solid material that reflects but does not emit
func NewLambertian(reflectance Color) Material {
	return NewSolid(reflectance, Black)
}

// NewEmissive creates a solid material that emits but does not reflect
func NewEmissive(emission Color) Material {
	return NewSolid(Black, emission)
}
