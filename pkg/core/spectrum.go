package core

import "math"

// Spectrum is an RGB radiometric quantity
type Spectrum struct {
	R, G, B float64
}

// NewSpectrum creates a new Spectrum
func NewSpectrum(r, g, b float64) Spectrum {
	return Spectrum{R: r, G: g, B: b}
}

// Fill returns a spectrum with every channel set to value
func Fill(value float64) Spectrum {
	return Spectrum{value, value, value}
}

// Black returns the zero spectrum
func Black() Spectrum {
	return Spectrum{}
}

// Add returns the channel-wise sum
func (s Spectrum) Add(other Spectrum) Spectrum {
	return Spectrum{s.R + other.R, s.G + other.G, s.B + other.B}
}

// Mul returns the channel-wise product
func (s Spectrum) Mul(other Spectrum) Spectrum {
	return Spectrum{s.R * other.R, s.G * other.G, s.B * other.B}
}

// Scale returns the spectrum multiplied by a scalar
func (s Spectrum) Scale(factor float64) Spectrum {
	return Spectrum{s.R * factor, s.G * factor, s.B * factor}
}

// Luminance returns the Rec. 709 luminance
func (s Spectrum) Luminance() float64 {
	return 0.212671*s.R + 0.715160*s.G + 0.072169*s.B
}

// IsBlack reports whether every channel is zero
func (s Spectrum) IsBlack() bool {
	return s.R == 0 && s.G == 0 && s.B == 0
}

// IsValid reports whether every channel is finite
func (s Spectrum) IsValid() bool {
	return isFinite(s.R) && isFinite(s.G) && isFinite(s.B)
}

// Clamp returns a spectrum with channels clamped to [lo, hi]
func (s Spectrum) Clamp(lo, hi float64) Spectrum {
	return Spectrum{
		R: max(lo, min(hi, s.R)),
		G: max(lo, min(hi, s.G)),
		B: max(lo, min(hi, s.B)),
	}
}

// GammaCorrect applies gamma correction to each channel
func (s Spectrum) GammaCorrect(gamma float64) Spectrum {
	invGamma := 1.0 / gamma
	return Spectrum{
		R: math.Pow(max(0, s.R), invGamma),
		G: math.Pow(max(0, s.G), invGamma),
		B: math.Pow(max(0, s.B), invGamma),
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
