package geometry

import (
	"math"

	"github.com/davidtemplin/mmlt/pkg/core"
)

// Triangle represents a single triangle defined by three vertices.
// Its outward normal follows the winding (V1-V0) × (V2-V0).
type Triangle struct {
	V0, V1, V2 core.Vec3
	normal     core.Vec3 // Cached normal vector
	area       float64
	bbox       AABB // Cached bounding box
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	cross := v1.Subtract(v0).Cross(v2.Subtract(v0))
	return &Triangle{
		V0:     v0,
		V1:     v1,
		V2:     v2,
		normal: cross.Normalize(),
		area:   cross.Length() / 2,
		bbox:   NewAABBFromPoints(v0, v1, v2).Expand(1e-4),
	}
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	const epsilon = 1e-12

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray lies in the plane of the triangle
	if math.Abs(a) < epsilon {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	tHit := f * edge2.Dot(q)
	if tHit < tMin || tHit > tMax {
		return nil, false
	}

	return newHitRecord(ray, tHit, t.normal), true
}

// Sample returns a uniformly distributed point on the triangle
func (t *Triangle) Sample(sampler core.Sampler) (core.Vec3, core.Vec3) {
	u, v := core.Sample2D(sampler)
	su := math.Sqrt(u)
	b0 := 1 - su
	b1 := v * su
	point := t.V0.Multiply(b0).Add(t.V1.Multiply(b1)).Add(t.V2.Multiply(1 - b0 - b1))
	return point, t.normal
}

// Area returns the triangle area
func (t *Triangle) Area() float64 {
	return t.area
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() AABB {
	return t.bbox
}

// Normal returns the triangle's outward normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}
