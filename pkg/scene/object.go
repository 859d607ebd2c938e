package scene

import (
	"github.com/davidtemplin/mmlt/pkg/core"
	"github.com/davidtemplin/mmlt/pkg/geometry"
	"github.com/davidtemplin/mmlt/pkg/material"
)

// SurfaceObject is a shape with a material
type SurfaceObject struct {
	id       uint64
	shape    geometry.Shape
	material material.Material
}

// NewSurfaceObject creates a scene object
func NewSurfaceObject(id uint64, shape geometry.Shape, material material.Material) *SurfaceObject {
	return &SurfaceObject{id: id, shape: shape, material: material}
}

// ID returns the object identity
func (o *SurfaceObject) ID() uint64 {
	return o.id
}

// ComputeBSDF delegates to the material
func (o *SurfaceObject) ComputeBSDF(geometry core.Geometry) core.BSDF {
	return o.material.ComputeBSDF(geometry)
}

// Intersect reports the nearest hit on the underlying shape
func (o *SurfaceObject) Intersect(ray core.Ray, tMin, tMax float64) (*core.Interaction, bool) {
	hit, ok := o.shape.Hit(ray, tMin, tMax)
	if !ok {
		return nil, false
	}
	return core.NewObjectInteraction(o, core.Geometry{
		Point:     hit.Point,
		Normal:    hit.Normal,
		Direction: ray.Direction,
	}, hit.T), true
}

// BoundingBox returns the bounds of the shape
func (o *SurfaceObject) BoundingBox() geometry.AABB {
	return o.shape.BoundingBox()
}
