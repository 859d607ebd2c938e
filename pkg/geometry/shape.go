package geometry

import "github.com/davidtemplin/mmlt/pkg/core"

// HitRecord contains information about a ray-shape intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Outward surface normal at intersection
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether the ray arrived from the outward side
}

func newHitRecord(ray core.Ray, t float64, outwardNormal core.Vec3) *HitRecord {
	return &HitRecord{
		Point:     ray.At(t),
		Normal:    outwardNormal,
		T:         t,
		FrontFace: ray.Direction.Dot(outwardNormal) < 0,
	}
}

// Shape is a surface that can be hit by rays and sampled uniformly by area
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool)
	// Sample draws two values and returns a uniformly distributed point with its outward normal
	Sample(sampler core.Sampler) (point, normal core.Vec3)
	Area() float64
	BoundingBox() AABB
}
