package core

// Density is a sampling probability density in area (or solid angle) measure.
// Delta densities come from Dirac distributions: a pinhole camera position or a
// specular lobe. Their Value holds the discrete probability of the lobe,
// converted to area measure where a conversion applies. The zero Density means
// the point cannot be generated at all.
type Density struct {
	Value float64
	Delta bool
}

// Continuous returns an ordinary density
func Continuous(value float64) Density {
	return Density{Value: value}
}

// Dirac returns a delta density carrying the given discrete probability
func Dirac(probability float64) Density {
	return Density{Value: probability, Delta: true}
}

// Scale multiplies the density by a factor, keeping its kind
func (d Density) Scale(factor float64) Density {
	return Density{Value: d.Value * factor, Delta: d.Delta}
}

// Times returns the joint density of two independent choices
func (d Density) Times(other Density) Density {
	return Density{Value: d.Value * other.Value, Delta: d.Delta || other.Delta}
}

// IsZero reports whether the density cannot produce the point
func (d Density) IsZero() bool {
	return d.Value == 0
}

// Ratio returns d/other as used by MIS weights, where delta densities count as 1
func (d Density) Ratio(other Density) float64 {
	den := other.remap()
	if den == 0 {
		return 0
	}
	return d.remap() / den
}

func (d Density) remap() float64 {
	if d.Delta {
		return 1
	}
	return d.Value
}
