package core

import (
	"fmt"
	"strings"
)

// Distribution is a discrete distribution proportional to a set of non-negative weights
type Distribution struct {
	pdf []float64
	cdf []float64
}

// NewDistribution creates a distribution from weights, normalized to sum to 1.
// If every weight is zero the distribution has no support and Sample fails.
func NewDistribution(weights []float64) *Distribution {
	total := 0.0
	for _, weight := range weights {
		if weight < 0 {
			panic(fmt.Sprintf("distribution weight must be non-negative, got %g", weight))
		}
		total += weight
	}

	pdf := make([]float64, len(weights))
	cdf := make([]float64, len(weights))
	cumulative := 0.0
	for i, weight := range weights {
		if total > 0 {
			pdf[i] = weight / total
		}
		cumulative += pdf[i]
		cdf[i] = cumulative
	}

	return &Distribution{pdf: pdf, cdf: cdf}
}

// Len returns the number of outcomes
func (d *Distribution) Len() int {
	return len(d.pdf)
}

// Sample returns the outcome selected by u in [0, 1) and its probability
func (d *Distribution) Sample(u float64) (int, float64, bool) {
	last := -1
	for i, c := range d.cdf {
		if d.pdf[i] == 0 {
			continue
		}
		last = i
		if u < c {
			return i, d.pdf[i], true
		}
	}
	// Rounding can leave the final cdf entry slightly below 1
	if last < 0 {
		return -1, 0, false
	}
	return last, d.pdf[last], true
}

// PDF returns the probability of outcome i
func (d *Distribution) PDF(i int) float64 {
	if i < 0 || i >= len(d.pdf) {
		return 0
	}
	return d.pdf[i]
}

// String returns a string representation for debugging
func (d *Distribution) String() string {
	var b strings.Builder
	b.WriteString("Distribution{")
	for i, p := range d.pdf {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d: %.1f%%", i, p*100)
	}
	b.WriteString("}")
	return b.String()
}
