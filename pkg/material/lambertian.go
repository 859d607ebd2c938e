package material

import (
	"math"

	"github.com/davidtemplin/mmlt/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo Texture // Base color/reflectance (can be solid or textured)
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo Texture) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// ComputeBSDF evaluates the texture at the surface point
func (l *Lambertian) ComputeBSDF(geometry core.Geometry) core.BSDF {
	return &DiffuseBSDF{
		Albedo: l.Albedo.Evaluate(geometry),
		Normal: geometry.Normal,
	}
}

// DiffuseBSDF reflects albedo/π into the hemisphere the light arrives from.
// It scatters on both faces of the surface but never transmits.
type DiffuseBSDF struct {
	Albedo core.Spectrum
	Normal core.Vec3
}

// Reflectance returns albedo/π when wo and wi lie on the same side
func (d *DiffuseBSDF) Reflectance(wo, wi core.Vec3) core.Spectrum {
	if !sameHemisphere(d.Normal, wo, wi) {
		return core.Black()
	}
	return d.Albedo.Scale(1.0 / math.Pi)
}

// PDF returns the cosine-weighted density of the sampled direction
func (d *DiffuseBSDF) PDF(wo, wi core.Vec3, side core.PathSide) core.Density {
	if !sameHemisphere(d.Normal, wo, wi) {
		return core.Density{}
	}
	sampled := wi
	if side == core.LightSide {
		sampled = wo
	}
	return core.Continuous(d.Normal.AbsDot(sampled.Normalize()) / math.Pi)
}

// Sample draws a cosine-weighted direction on the side of given
func (d *DiffuseBSDF) Sample(given core.Vec3, side core.PathSide, sampler core.Sampler) (core.Vec3, bool) {
	u, v := core.Sample2D(sampler)
	cosTheta := d.Normal.Dot(given)
	if cosTheta == 0 {
		return core.Vec3{}, false
	}
	normal := d.Normal
	if cosTheta < 0 {
		normal = normal.Negate()
	}
	return core.SampleCosineHemisphere(normal, u, v), true
}

// IsDelta is false
func (d *DiffuseBSDF) IsDelta() bool {
	return false
}
