package material

import (
	"github.com/davidtemplin/mmlt/pkg/core"
)

// Metal represents a perfect mirror
type Metal struct {
	Albedo core.Spectrum // Mirror color
}

// NewMetal creates a new mirror material
func NewMetal(albedo core.Spectrum) *Metal {
	return &Metal{Albedo: albedo}
}

// ComputeBSDF returns a specular reflection lobe around the surface normal
func (m *Metal) ComputeBSDF(geometry core.Geometry) core.BSDF {
	return &SpecularBSDF{Albedo: m.Albedo, Normal: geometry.Normal}
}

// SpecularBSDF is an ideal mirror
type SpecularBSDF struct {
	Albedo core.Spectrum
	Normal core.Vec3
}

// Reflectance returns ρ/|cos θi| on the mirror direction and black elsewhere
func (s *SpecularBSDF) Reflectance(wo, wi core.Vec3) core.Spectrum {
	if !sameDirection(wi, wo.Normalize().Reflect(s.Normal)) {
		return core.Black()
	}
	cosTheta := s.Normal.AbsDot(wi.Normalize())
	if cosTheta == 0 {
		return core.Black()
	}
	return s.Albedo.Scale(1.0 / cosTheta)
}

// PDF is a unit delta on the mirror direction
func (s *SpecularBSDF) PDF(wo, wi core.Vec3, side core.PathSide) core.Density {
	if !sameDirection(wi, wo.Normalize().Reflect(s.Normal)) {
		return core.Density{}
	}
	return core.Dirac(1)
}

// Sample reflects given about the normal
func (s *SpecularBSDF) Sample(given core.Vec3, side core.PathSide, sampler core.Sampler) (core.Vec3, bool) {
	// Consume the same number of values as every other lobe
	core.Sample2D(sampler)
	if s.Normal.Dot(given) == 0 {
		return core.Vec3{}, false
	}
	return given.Normalize().Reflect(s.Normal), true
}

// IsDelta is true
func (s *SpecularBSDF) IsDelta() bool {
	return true
}
