package geometry

import (
	"math"

	"github.com/davidtemplin/mmlt/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Eye    core.Vec3 // Camera position
	LookAt core.Vec3 // Point the camera looks at
	Up     core.Vec3 // Up direction
	VFov   float64   // Vertical field of view in degrees
	Width  int       // Image width in pixels
	Height int       // Image height in pixels
}

// PinholeCamera is an ideal point sensor with a rectangular film placed at unit
// distance along the viewing direction. Importance is normalized so that a
// pixel value is the average radiance arriving through that pixel.
type PinholeCamera struct {
	id     uint64
	config CameraConfig

	u, v, w    core.Vec3 // Right, up and forward axes
	halfWidth  float64   // Film half extents at unit distance
	halfHeight float64
	filmArea   float64
}

// NewPinholeCamera creates a pinhole camera
func NewPinholeCamera(id uint64, config CameraConfig) *PinholeCamera {
	w := config.LookAt.Subtract(config.Eye).Normalize()
	u := w.Cross(config.Up).Normalize()
	v := u.Cross(w)

	halfHeight := math.Tan(config.VFov * math.Pi / 360)
	halfWidth := halfHeight * float64(config.Width) / float64(config.Height)

	return &PinholeCamera{
		id:         id,
		config:     config,
		u:          u,
		v:          v,
		w:          w,
		halfWidth:  halfWidth,
		halfHeight: halfHeight,
		filmArea:   4 * halfWidth * halfHeight,
	}
}

// ID returns the camera identity
func (c *PinholeCamera) ID() uint64 {
	return c.id
}

// Resolution returns the image size in pixels
func (c *PinholeCamera) Resolution() (int, int) {
	return c.config.Width, c.config.Height
}

// Config returns the configuration the camera was built from
func (c *PinholeCamera) Config() CameraConfig {
	return c.config
}

// film projects a direction onto the film plane, returning film coordinates and cos θ
func (c *PinholeCamera) film(direction core.Vec3) (x, y, cosTheta float64, ok bool) {
	d := direction.Normalize()
	cosTheta = d.Dot(c.w)
	if cosTheta <= 0 {
		return 0, 0, 0, false
	}
	x = d.Dot(c.u) / cosTheta
	y = d.Dot(c.v) / cosTheta
	if math.Abs(x) > c.halfWidth || math.Abs(y) > c.halfHeight {
		return 0, 0, 0, false
	}
	return x, y, cosTheta, true
}

// RasterPosition maps a direction leaving the camera to the pixel it passes through
func (c *PinholeCamera) RasterPosition(direction core.Vec3) (core.Pixel, bool) {
	x, y, _, ok := c.film(direction)
	if !ok {
		return core.Pixel{}, false
	}
	px := int((x/c.halfWidth + 1) / 2 * float64(c.config.Width))
	py := int((1 - y/c.halfHeight) / 2 * float64(c.config.Height))
	return core.Pixel{
		X: min(max(px, 0), c.config.Width-1),
		Y: min(max(py, 0), c.config.Height-1),
	}, true
}

// Importance returns W = 1 / (A cos⁴θ) inside the field of view
func (c *PinholeCamera) Importance(point, direction core.Vec3) core.Spectrum {
	_, _, cosTheta, ok := c.film(direction)
	if !ok {
		return core.Black()
	}
	cos2 := cosTheta * cosTheta
	return core.Fill(1 / (c.filmArea * cos2 * cos2))
}

// PositionalPDF is a delta at the eye
func (c *PinholeCamera) PositionalPDF(point core.Vec3) core.Density {
	return core.Dirac(1)
}

// DirectionalPDF returns 1 / (A cos³θ), the solid angle density of a uniform film sample
func (c *PinholeCamera) DirectionalPDF(direction core.Vec3) core.Density {
	_, _, cosTheta, ok := c.film(direction)
	if !ok {
		return core.Density{}
	}
	return core.Continuous(1 / (c.filmArea * cosTheta * cosTheta * cosTheta))
}

// SampleInteraction draws a uniform point on the film and returns the eye with
// the direction through it
func (c *PinholeCamera) SampleInteraction(sampler core.Sampler) *core.Interaction {
	s, t := core.Sample2D(sampler)
	x := (2*s - 1) * c.halfWidth
	y := (1 - 2*t) * c.halfHeight
	direction := c.u.Multiply(x).Add(c.v.Multiply(y)).Add(c.w).Normalize()

	interaction := core.NewCameraInteraction(c, core.Geometry{
		Point:     c.config.Eye,
		Normal:    c.w,
		Direction: direction,
	}, 0)
	interaction.Sampled = true
	return interaction
}

// Intersect reports a hit only for rays aimed exactly at the eye from inside the field of view
func (c *PinholeCamera) Intersect(ray core.Ray, tMin, tMax float64) (*core.Interaction, bool) {
	toEye := c.config.Eye.Subtract(ray.Origin)
	t := toEye.Dot(ray.Direction)
	if t < tMin || t > tMax {
		return nil, false
	}
	miss := toEye.Subtract(ray.Direction.Multiply(t)).Length()
	if miss > 1e-7*math.Max(1, t) {
		return nil, false
	}
	if _, ok := c.RasterPosition(ray.Direction.Negate()); !ok {
		return nil, false
	}
	return core.NewCameraInteraction(c, core.Geometry{
		Point:     c.config.Eye,
		Normal:    c.w,
		Direction: ray.Direction,
	}, t), true
}
