package material

import (
	"math"

	"github.com/davidtemplin/mmlt/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64       // Index of refraction (e.g., 1.5 for glass)
	Tint            core.Spectrum // Color applied to both lobes
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64, tint core.Spectrum) *Dielectric {
	if refractiveIndex <= 0 {
		panic("refractive index must be positive")
	}
	return &Dielectric{RefractiveIndex: refractiveIndex, Tint: tint}
}

// ComputeBSDF returns a Fresnel-weighted reflect/refract pair
func (d *Dielectric) ComputeBSDF(geometry core.Geometry) core.BSDF {
	return &DielectricBSDF{
		RefractiveIndex: d.RefractiveIndex,
		Tint:            d.Tint,
		Normal:          geometry.Normal,
	}
}

// DielectricBSDF picks reflection with the Fresnel probability and refraction otherwise.
// The outward normal points into the medium with index 1.
type DielectricBSDF struct {
	RefractiveIndex float64
	Tint            core.Spectrum
	Normal          core.Vec3
}

// Reflectance returns F/|cos θi| on the mirror direction and (1-F)/|cos θi| on the
// refracted direction
func (d *DielectricBSDF) Reflectance(wo, wi core.Vec3) core.Spectrum {
	wo, wi = wo.Normalize(), wi.Normalize()
	cosTheta := d.Normal.AbsDot(wi)
	if cosTheta == 0 {
		return core.Black()
	}
	fresnel := FresnelDielectric(d.Normal.Dot(wo), d.RefractiveIndex)

	if sameDirection(wi, wo.Reflect(d.Normal)) {
		return d.Tint.Scale(fresnel / cosTheta)
	}
	if refracted, ok := Refract(wo, d.Normal, d.RefractiveIndex); ok && sameDirection(wi, refracted) {
		return d.Tint.Scale((1 - fresnel) / cosTheta)
	}
	return core.Black()
}

// PDF returns the discrete probability of the lobe connecting wo and wi.
// Light-side transmission carries the cosine ratio between the two sides.
func (d *DielectricBSDF) PDF(wo, wi core.Vec3, side core.PathSide) core.Density {
	wo, wi = wo.Normalize(), wi.Normalize()
	fresnel := FresnelDielectric(d.Normal.Dot(wo), d.RefractiveIndex)

	if sameDirection(wi, wo.Reflect(d.Normal)) {
		return core.Dirac(fresnel)
	}
	refracted, ok := Refract(wo, d.Normal, d.RefractiveIndex)
	if !ok || !sameDirection(wi, refracted) {
		return core.Density{}
	}
	if side == core.LightSide {
		cosI := d.Normal.AbsDot(wi)
		if cosI == 0 {
			return core.Density{}
		}
		return core.Dirac((1 - fresnel) * d.Normal.AbsDot(wo) / cosI)
	}
	return core.Dirac(1 - fresnel)
}

// Sample reflects or refracts given, choosing reflection with the Fresnel probability
func (d *DielectricBSDF) Sample(given core.Vec3, side core.PathSide, sampler core.Sampler) (core.Vec3, bool) {
	u := sampler.Sample(0, 1)
	sampler.Sample(0, 1)

	given = given.Normalize()
	cosTheta := d.Normal.Dot(given)
	if cosTheta == 0 {
		return core.Vec3{}, false
	}
	if u < FresnelDielectric(cosTheta, d.RefractiveIndex) {
		return given.Reflect(d.Normal), true
	}
	return Refract(given, d.Normal, d.RefractiveIndex)
}

// IsDelta is true
func (d *DielectricBSDF) IsDelta() bool {
	return true
}

// FresnelDielectric returns the unpolarized Fresnel reflectance for a direction with
// cosine cosThetaI against the outward normal of an interface with relative index eta
func FresnelDielectric(cosThetaI, eta float64) float64 {
	cosThetaI = math.Max(-1, math.Min(1, cosThetaI))
	if cosThetaI < 0 {
		eta = 1 / eta
		cosThetaI = -cosThetaI
	}

	sin2ThetaI := 1 - cosThetaI*cosThetaI
	sin2ThetaT := sin2ThetaI / (eta * eta)
	if sin2ThetaT >= 1 {
		// Total internal reflection
		return 1
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)

	rParallel := (eta*cosThetaI - cosThetaT) / (eta*cosThetaI + cosThetaT)
	rPerpendicular := (cosThetaI - eta*cosThetaT) / (cosThetaI + eta*cosThetaT)
	return (rParallel*rParallel + rPerpendicular*rPerpendicular) / 2
}

// Refract bends w, which points away from the surface, through an interface with
// outward normal n and relative index eta. It fails on total internal reflection.
func Refract(w, n core.Vec3, eta float64) (core.Vec3, bool) {
	cosThetaI := n.Dot(w)
	if cosThetaI < 0 {
		eta = 1 / eta
		cosThetaI = -cosThetaI
		n = n.Negate()
	}

	sin2ThetaI := math.Max(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := sin2ThetaI / (eta * eta)
	if sin2ThetaT >= 1 {
		return core.Vec3{}, false
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)

	return w.Negate().Divide(eta).Add(n.Multiply(cosThetaI/eta - cosThetaT)).Normalize(), true
}
