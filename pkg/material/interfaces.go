package material

import (
	"github.com/davidtemplin/mmlt/pkg/core"
)

// Material builds the scattering function of a surface point
type Material interface {
	ComputeBSDF(geometry core.Geometry) core.BSDF
}

// Texture provides spatially-varying colors for materials
type Texture interface {
	// Evaluate returns the color at a surface point
	Evaluate(geometry core.Geometry) core.Spectrum
}

// directionTolerance is how far a direction may drift from a specular lobe and still match it
const directionTolerance = 1e-3

func sameDirection(a, b core.Vec3) bool {
	return a.Normalize().Subtract(b.Normalize()).Length() < directionTolerance
}

func sameHemisphere(normal, a, b core.Vec3) bool {
	return normal.Dot(a)*normal.Dot(b) > 0
}
