package geometry

import (
	"math"

	"github.com/davidtemplin/mmlt/pkg/core"
)

// Parallelogram is a flat surface spanned by two edge vectors from an origin corner.
// Its outward normal is U × V.
type Parallelogram struct {
	Origin core.Vec3
	U      core.Vec3
	V      core.Vec3
	Normal core.Vec3
	d      float64   // Plane equation constant: normal · p = d
	w      core.Vec3 // Cached n / (n · (u × v)) for barycentric coordinates
	area   float64
}

// NewParallelogram creates a parallelogram from a corner and two edge vectors
func NewParallelogram(origin, u, v core.Vec3) *Parallelogram {
	cross := u.Cross(v)
	normal := cross.Normalize()

	return &Parallelogram{
		Origin: origin,
		U:      u,
		V:      v,
		Normal: normal,
		d:      normal.Dot(origin),
		w:      normal.Divide(normal.Dot(cross)),
		area:   cross.Length(),
	}
}

// Hit tests if a ray intersects with the parallelogram
func (p *Parallelogram) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Parallel to the plane
	if math.Abs(denominator) < 1e-12 {
		return nil, false
	}

	t := (p.d - ray.Origin.Dot(p.Normal)) / denominator
	if t < tMin || t > tMax {
		return nil, false
	}

	hitVector := ray.At(t).Subtract(p.Origin)
	alpha := p.w.Dot(hitVector.Cross(p.V))
	beta := p.w.Dot(p.U.Cross(hitVector))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return nil, false
	}

	return newHitRecord(ray, t, p.Normal), true
}

// Sample returns a uniformly distributed point on the parallelogram
func (p *Parallelogram) Sample(sampler core.Sampler) (core.Vec3, core.Vec3) {
	a, b := core.Sample2D(sampler)
	point := p.Origin.Add(p.U.Multiply(a)).Add(p.V.Multiply(b))
	return point, p.Normal
}

// Area returns |U × V|
func (p *Parallelogram) Area() float64 {
	return p.area
}

// BoundingBox returns the box around the four corners, padded so it never has zero thickness
func (p *Parallelogram) BoundingBox() AABB {
	box := NewAABBFromPoints(
		p.Origin,
		p.Origin.Add(p.U),
		p.Origin.Add(p.V),
		p.Origin.Add(p.U).Add(p.V),
	)
	return box.Expand(1e-4)
}
