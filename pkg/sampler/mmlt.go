// Package sampler implements the primary sample space sampler that drives the
// Metropolis chains.
package sampler

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/davidtemplin/mmlt/pkg/core"
)

// Mutation is the kind of perturbation applied during an iteration
type Mutation int

const (
	SmallStep Mutation = iota // Local Gaussian perturbation
	LargeStep                 // Independent resample of every coordinate
)

func (m Mutation) String() string {
	if m == LargeStep {
		return "large"
	}
	return "small"
}

// Config controls the mutation strategy
type Config struct {
	StreamCount          int     // Number of interleaved streams
	Sigma                float64 // Standard deviation of a single small step
	LargeStepProbability float64 // Probability that Mutate picks a large step
}

// DefaultConfig returns the settings used by the integrator
func DefaultConfig() Config {
	return Config{
		StreamCount:          core.StreamCount,
		Sigma:                0.01,
		LargeStepProbability: 0.3,
	}
}

// sample is one coordinate of primary sample space together with the state
// needed to undo its latest mutation
type sample struct {
	value            float64
	backupValue      float64
	modifiedAt       int
	backupModifiedAt int
}

func (s *sample) backup() {
	s.backupValue = s.value
	s.backupModifiedAt = s.modifiedAt
}

func (s *sample) restore() {
	s.value = s.backupValue
	s.modifiedAt = s.backupModifiedAt
}

// MmltSampler is a replayable stream of uniform values whose coordinates can be
// mutated and rolled back. Coordinate i of stream s lives at index
// StreamCount*i + s. It is not safe for concurrent use.
type MmltSampler struct {
	config  Config
	random  *rand.Rand
	samples []sample

	stream int // Current stream
	cursor int // Next coordinate within the current stream

	iteration   int
	largeStepAt int
	mutation    Mutation
}

// NewMmltSampler creates a sampler at iteration 0. Until the first Mutate every
// coordinate is an independent uniform value.
func NewMmltSampler(config Config, random *rand.Rand) *MmltSampler {
	if config.StreamCount <= 0 {
		panic(fmt.Sprintf("sampler: stream count must be positive, got %d", config.StreamCount))
	}
	return &MmltSampler{
		config:   config,
		random:   random,
		mutation: SmallStep,
	}
}

// StartStream resets the cursor of the given stream and makes it current
func (s *MmltSampler) StartStream(index int) {
	if index < 0 || index >= s.config.StreamCount {
		panic(fmt.Sprintf("sampler: stream index %d out of range [0, %d)", index, s.config.StreamCount))
	}
	s.stream = index
	s.cursor = 0
}

// Sample draws the next coordinate of the current stream scaled into [min, max)
func (s *MmltSampler) Sample(min, max float64) float64 {
	index := s.config.StreamCount*s.cursor + s.stream
	s.cursor++

	for len(s.samples) <= index {
		s.samples = append(s.samples, sample{value: s.random.Float64(), modifiedAt: s.largeStepAt})
	}

	x := &s.samples[index]

	// Catch up with a large step this coordinate missed
	if x.modifiedAt < s.largeStepAt {
		x.value = s.random.Float64()
		x.modifiedAt = s.largeStepAt
	}

	x.backup()
	if s.mutation == LargeStep {
		x.value = s.random.Float64()
	} else {
		s.perturb(x)
	}
	x.modifiedAt = s.iteration

	return min + x.value*(max-min)
}

// perturb applies the small steps accumulated since the coordinate was last touched
func (s *MmltSampler) perturb(x *sample) {
	n := s.iteration - x.modifiedAt
	if n <= 0 {
		return
	}
	u := 2*s.random.Float64() - 1
	u = math.Max(-1+1e-12, math.Min(1-1e-12, u))
	normal := math.Sqrt2 * math.Erfinv(u)
	x.value += normal * s.config.Sigma * math.Sqrt(float64(n))
	x.value -= math.Floor(x.value)
	if x.value >= 1 {
		x.value = 0
	}
}

// Mutate starts a new iteration and picks its mutation kind
func (s *MmltSampler) Mutate() Mutation {
	s.iteration++
	if s.random.Float64() < s.config.LargeStepProbability {
		s.mutation = LargeStep
	} else {
		s.mutation = SmallStep
	}
	return s.mutation
}

// Accept commits the current iteration
func (s *MmltSampler) Accept() {
	if s.mutation == LargeStep {
		s.largeStepAt = s.iteration
	}
}

// Reject restores every coordinate touched in the current iteration and rolls
// the iteration counter back
func (s *MmltSampler) Reject() {
	for i := range s.samples {
		if s.samples[i].modifiedAt == s.iteration {
			s.samples[i].restore()
		}
	}
	s.iteration--
}

// Iteration returns the current iteration
func (s *MmltSampler) Iteration() int {
	return s.iteration
}

// Mutation returns the kind of the current iteration
func (s *MmltSampler) Mutation() Mutation {
	return s.mutation
}
