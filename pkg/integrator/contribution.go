package integrator

import (
	"math"

	"github.com/davidtemplin/mmlt/pkg/core"
)

// Contribution is the MIS-weighted value of one path, ready to deposit.
// The zero Contribution is empty and deposits nothing.
type Contribution struct {
	Scalar   float64       // Luminance of Spectrum; the target function of the chain
	Spectrum core.Spectrum // Weighted throughput divided by the path density
	Pixel    core.Pixel
}

// IsEmpty reports whether the contribution carries no energy
func (c Contribution) IsEmpty() bool {
	return c.Scalar == 0
}

// PDF returns the density of generating the path with its own technique:
// forward densities for camera-side vertices and reverse densities for
// light-side vertices. Delta densities contribute their discrete weight.
func (p *Path) PDF() float64 {
	pdf := 1.0
	for i, v := range p.Vertices {
		if i < p.Technique.CameraCount {
			pdf *= v.Forward.Value
		} else {
			pdf *= v.Reverse.Value
		}
	}
	return pdf
}

// Throughput returns the product of all vertex throughput factors
func (p *Path) Throughput() core.Spectrum {
	throughput := core.Fill(1)
	for _, v := range p.Vertices {
		throughput = throughput.Mul(v.Throughput)
	}
	return throughput
}

// Weight returns the balance-heuristic MIS weight of the path's technique
// against every other technique that could have produced the same vertices
func (p *Path) Weight() float64 {
	k := len(p.Vertices)
	c := p.Technique.CameraCount
	sum := 0.0

	// Move the connection toward the camera
	ratio := 1.0
	for i := c - 1; i >= 0; i-- {
		ratio *= p.Vertices[i].Reverse.Ratio(p.Vertices[i].Forward)
		if p.connectable(i) {
			sum += ratio
		}
	}

	// Move the connection toward the light
	ratio = 1.0
	for i := c; i < k; i++ {
		ratio *= p.Vertices[i].Forward.Ratio(p.Vertices[i].Reverse)
		if p.connectable(i + 1) {
			sum += ratio
		}
	}

	return 1 / (1 + sum)
}

// connectable reports whether the technique with the given camera count
// could have produced this path. Techniques that join two subpaths cannot
// connect through a specular scattering vertex.
func (p *Path) connectable(cameraCount int) bool {
	k := len(p.Vertices)
	switch cameraCount {
	case 0:
		return !p.Vertices[0].Specular
	case k:
		return !p.Vertices[k-1].Specular
	}
	joinable := func(i int) bool {
		return i == 0 || i == k-1 || !p.Vertices[i].Specular
	}
	return joinable(cameraCount-1) && joinable(cameraCount)
}

// Contribution evaluates the path, short-circuiting to an empty contribution
// as soon as any factor vanishes
func (p *Path) Contribution() Contribution {
	pdf := p.PDF()
	if pdf == 0 {
		return Contribution{}
	}
	throughput := p.Throughput()
	if throughput.IsBlack() {
		return Contribution{}
	}
	weight := p.Weight()
	if weight == 0 {
		return Contribution{}
	}

	spectrum := throughput.Scale(weight / pdf)
	if !spectrum.IsValid() {
		return Contribution{}
	}
	scalar := spectrum.Luminance()
	if scalar <= 0 || math.IsInf(scalar, 0) || math.IsNaN(scalar) {
		return Contribution{}
	}
	return Contribution{Scalar: scalar, Spectrum: spectrum, Pixel: p.Pixel}
}

// Acceptance returns the Metropolis acceptance probability of moving from
// current to proposal. An empty current state always moves.
func Acceptance(current, proposal Contribution) float64 {
	if current.Scalar <= 0 {
		return 1
	}
	return math.Max(0, math.Min(1, proposal.Scalar/current.Scalar))
}

// Contribute generates a path and evaluates it, returning an empty
// contribution when no path could be built
func Contribute(scene core.Scene, sampler core.Sampler, pathLength int) Contribution {
	path, ok := Generate(scene, sampler, pathLength)
	if !ok {
		return Contribution{}
	}
	return path.Contribution()
}
