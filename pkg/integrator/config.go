package integrator

import (
	"fmt"

	"github.com/davidtemplin/mmlt/pkg/core"
	"github.com/davidtemplin/mmlt/pkg/sampler"
)

// Config holds the settings of the MMLT integrator
type Config struct {
	MaxPathLength          int     // Longest path length in vertices; chains run for 2..MaxPathLength
	InitialSampleCount     int     // Bootstrap samples per path length
	AverageSamplesPerPixel int     // Chain iterations per pixel
	LargeStepProbability   float64 // Probability of an independent resample
	Sigma                  float64 // Standard deviation of small-step perturbations
	Seed                   int64   // Seed of every random source
	BootstrapWorkers       int     // Parallel bootstrap workers; 0 uses every CPU
	ProgressInterval       float64 // Fraction of iterations between progress reports; 0 disables
}

// DefaultConfig returns the settings used when nothing is overridden
func DefaultConfig() Config {
	return Config{
		MaxPathLength:          20,
		InitialSampleCount:     100000,
		AverageSamplesPerPixel: 4096,
		LargeStepProbability:   0.3,
		Sigma:                  0.01,
		Seed:                   1,
		BootstrapWorkers:       0,
		ProgressInterval:       0.1,
	}
}

// Validate reports the first setting that cannot drive a render
func (c Config) Validate() error {
	switch {
	case c.MaxPathLength < 2:
		return fmt.Errorf("max path length must be at least 2, got %d", c.MaxPathLength)
	case c.InitialSampleCount < 1:
		return fmt.Errorf("initial sample count must be positive, got %d", c.InitialSampleCount)
	case c.AverageSamplesPerPixel < 1:
		return fmt.Errorf("average samples per pixel must be positive, got %d", c.AverageSamplesPerPixel)
	case c.LargeStepProbability < 0 || c.LargeStepProbability > 1:
		return fmt.Errorf("large step probability must be in [0, 1], got %g", c.LargeStepProbability)
	case c.Sigma <= 0:
		return fmt.Errorf("sigma must be positive, got %g", c.Sigma)
	case c.BootstrapWorkers < 0:
		return fmt.Errorf("bootstrap workers must not be negative, got %d", c.BootstrapWorkers)
	case c.ProgressInterval < 0 || c.ProgressInterval > 1:
		return fmt.Errorf("progress interval must be in [0, 1], got %g", c.ProgressInterval)
	}
	return nil
}

func (c Config) samplerConfig() sampler.Config {
	return sampler.Config{
		StreamCount:          core.StreamCount,
		Sigma:                c.Sigma,
		LargeStepProbability: c.LargeStepProbability,
	}
}
