package core

// Sampler produces uniform values from independent named streams
type Sampler interface {
	// StartStream resets the cursor of the given stream and makes it current
	StartStream(index int)
	// Sample draws the next value of the current stream scaled into [min, max)
	Sample(min, max float64) float64
}

// Sampler streams used while building a path
const (
	TechniqueStream = iota
	LightStream
	CameraStream
	StreamCount
)

// PathSide identifies which endpoint a subpath is traced from
type PathSide int

const (
	CameraSide PathSide = iota // Traced from the camera, carrying radiance
	LightSide                  // Traced from a light, carrying importance
)

// Intersectable can be hit by rays
type Intersectable interface {
	Intersect(ray Ray, tMin, tMax float64) (*Interaction, bool)
}

// Camera is the sensor at the root of every path
type Camera interface {
	Intersectable
	ID() uint64
	Importance(point, direction Vec3) Spectrum
	PositionalPDF(point Vec3) Density
	DirectionalPDF(direction Vec3) Density
	SampleInteraction(sampler Sampler) *Interaction
	RasterPosition(direction Vec3) (Pixel, bool)
	Resolution() (width, height int)
}

// Light is an emitter at the far end of every path
type Light interface {
	Intersectable
	ID() uint64
	Radiance(point, normal, direction Vec3) Spectrum
	SamplingPDF() Density
	PositionalPDF(point Vec3) Density
	DirectionalPDF(normal, direction Vec3) Density
	SampleInteraction(sampler Sampler) *Interaction
}

// Object is a scattering surface in the scene
type Object interface {
	Intersectable
	ID() uint64
	ComputeBSDF(geometry Geometry) BSDF
}

// BSDF describes scattering at a single surface point. wo points toward the
// camera side of the path and wi toward the light side; both point away from
// the surface.
type BSDF interface {
	Reflectance(wo, wi Vec3) Spectrum
	// PDF returns the density of sampling wi given wo on the camera side, or
	// wo given wi on the light side
	PDF(wo, wi Vec3, side PathSide) Density
	// Sample draws a direction given the direction toward the previous vertex
	Sample(given Vec3, side PathSide, sampler Sampler) (Vec3, bool)
	IsDelta() bool
}

// Scene answers ray queries and light sampling for path construction
type Scene interface {
	Intersect(ray Ray) (*Interaction, bool)
	SampleLight(sampler Sampler) Light
	Camera() Camera
}
