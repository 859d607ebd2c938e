package material

import (
	"math"

	"github.com/davidtemplin/mmlt/pkg/core"
)

// SolidColor provides a uniform color
type SolidColor struct {
	Color core.Spectrum
}

// NewSolidColor creates a new solid color texture
func NewSolidColor(color core.Spectrum) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of position
func (s *SolidColor) Evaluate(geometry core.Geometry) core.Spectrum {
	return s.Color
}

// CheckerTexture is a procedural 3D checkerboard of cubes with the given edge length
type CheckerTexture struct {
	Even  core.Spectrum
	Odd   core.Spectrum
	Scale float64
}

// NewCheckerTexture creates a checkerboard texture
func NewCheckerTexture(even, odd core.Spectrum, scale float64) *CheckerTexture {
	if scale <= 0 {
		panic("checker texture scale must be positive")
	}
	return &CheckerTexture{Even: even, Odd: odd, Scale: scale}
}

// Evaluate picks a color from the parity of the cell containing the point
func (c *CheckerTexture) Evaluate(geometry core.Geometry) core.Spectrum {
	p := geometry.Point
	cell := math.Floor(p.X/c.Scale) + math.Floor(p.Y/c.Scale) + math.Floor(p.Z/c.Scale)
	if math.Mod(cell, 2) == 0 {
		return c.Even
	}
	return c.Odd
}
