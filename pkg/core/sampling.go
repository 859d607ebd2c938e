package core

import (
	"math"
)

// Sample2D draws two values in [0, 1) from the current stream
func Sample2D(sampler Sampler) (float64, float64) {
	u := sampler.Sample(0, 1)
	v := sampler.Sample(0, 1)
	return u, v
}

// SampleCosineHemisphere maps (u, v) to a cosine-weighted direction in the hemisphere around normal
func SampleCosineHemisphere(normal Vec3, u, v float64) Vec3 {
	a := 2.0 * math.Pi * u
	r := math.Sqrt(v)

	x := r * math.Cos(a)
	y := r * math.Sin(a)
	z := math.Sqrt(max(0, 1.0-v))

	tangent, bitangent := normal.Basis()
	return tangent.Multiply(x).Add(bitangent.Multiply(y)).Add(normal.Multiply(z))
}

// CosineHemispherePDF returns the solid angle density of SampleCosineHemisphere
func CosineHemispherePDF(normal, direction Vec3) float64 {
	cosTheta := normal.Dot(direction.Normalize())
	if cosTheta <= 0 {
		return 0
	}
	return cosTheta / math.Pi
}

// SampleOnUnitSphere maps (u, v) to a uniform direction on the unit sphere
func SampleOnUnitSphere(u, v float64) Vec3 {
	z := 1.0 - 2.0*u
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * v
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}
