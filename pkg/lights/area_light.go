package lights

import (
	"math"

	"github.com/davidtemplin/mmlt/pkg/core"
	"github.com/davidtemplin/mmlt/pkg/geometry"
)

// DiffuseAreaLight emits constant radiance from the outward face of a shape
type DiffuseAreaLight struct {
	id          uint64
	shape       geometry.Shape
	radiance    core.Spectrum
	samplingPDF core.Density
}

// NewDiffuseAreaLight creates an area light. Until the scene assigns a selection
// probability the light is treated as the only one.
func NewDiffuseAreaLight(id uint64, shape geometry.Shape, radiance core.Spectrum) *DiffuseAreaLight {
	if shape.Area() <= 0 {
		panic("area light shape must have positive area")
	}
	return &DiffuseAreaLight{
		id:          id,
		shape:       shape,
		radiance:    radiance,
		samplingPDF: core.Continuous(1),
	}
}

// ID returns the light identity
func (l *DiffuseAreaLight) ID() uint64 {
	return l.id
}

// Shape returns the emitting surface
func (l *DiffuseAreaLight) Shape() geometry.Shape {
	return l.shape
}

// SetSamplingPDF records the probability of selecting this light
func (l *DiffuseAreaLight) SetSamplingPDF(probability float64) {
	l.samplingPDF = core.Continuous(probability)
}

// Power returns the total emitted flux, used to weight light selection
func (l *DiffuseAreaLight) Power() float64 {
	return l.radiance.Luminance() * l.shape.Area() * math.Pi
}

// Radiance is emitted only on the side the normal faces
func (l *DiffuseAreaLight) Radiance(point, normal, direction core.Vec3) core.Spectrum {
	if normal.Dot(direction) <= 0 {
		return core.Black()
	}
	return l.radiance
}

// SamplingPDF returns the probability of selecting this light
func (l *DiffuseAreaLight) SamplingPDF() core.Density {
	return l.samplingPDF
}

// PositionalPDF is uniform over the surface
func (l *DiffuseAreaLight) PositionalPDF(point core.Vec3) core.Density {
	return core.Continuous(1 / l.shape.Area())
}

// DirectionalPDF is the cosine-weighted emission density
func (l *DiffuseAreaLight) DirectionalPDF(normal, direction core.Vec3) core.Density {
	return core.Continuous(core.CosineHemispherePDF(normal, direction))
}

// SampleInteraction draws a point on the surface and a cosine-weighted emission direction
func (l *DiffuseAreaLight) SampleInteraction(sampler core.Sampler) *core.Interaction {
	point, normal := l.shape.Sample(sampler)
	u, v := core.Sample2D(sampler)
	direction := core.SampleCosineHemisphere(normal, u, v)

	interaction := core.NewLightInteraction(l, core.Geometry{
		Point:     point,
		Normal:    normal,
		Direction: direction,
	}, 0)
	interaction.Sampled = true
	return interaction
}

// Intersect hits either face of the shape; the back face emits nothing but still occludes
func (l *DiffuseAreaLight) Intersect(ray core.Ray, tMin, tMax float64) (*core.Interaction, bool) {
	hit, ok := l.shape.Hit(ray, tMin, tMax)
	if !ok {
		return nil, false
	}
	return core.NewLightInteraction(l, core.Geometry{
		Point:     hit.Point,
		Normal:    hit.Normal,
		Direction: ray.Direction,
	}, hit.T), true
}

// BoundingBox returns the bounds of the emitting shape
func (l *DiffuseAreaLight) BoundingBox() geometry.AABB {
	return l.shape.BoundingBox()
}
