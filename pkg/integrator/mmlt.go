package integrator

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/davidtemplin/mmlt/pkg/core"
	"github.com/davidtemplin/mmlt/pkg/log"
	"github.com/davidtemplin/mmlt/pkg/renderer"
	"github.com/davidtemplin/mmlt/pkg/sampler"
)

// Stats summarizes a finished render
type Stats struct {
	Iterations       int64
	Accepted         int64
	LargeSteps       int64
	EmptyProposals   int64
	BootstrapElapsed time.Duration
	Elapsed          time.Duration
}

// AcceptanceRate returns the fraction of accepted proposals
func (s Stats) AcceptanceRate() float64 {
	if s.Iterations == 0 {
		return 0
	}
	return float64(s.Accepted) / float64(s.Iterations)
}

// chain is the persistent Markov chain of one path length
type chain struct {
	pathLength int
	constant   float64 // b[k]
	pdf        float64 // Probability of selecting this chain per iteration
	sampler    *sampler.MmltSampler
	current    Contribution
}

// MmltIntegrator renders a scene with Multiplexed Metropolis Light Transport:
// one Metropolis chain per path length, each multiplexing over the techniques
// that split a path between the camera and the light
type MmltIntegrator struct {
	config        Config
	logger        log.Logger
	normalization *Normalization
	stats         Stats
}

// NewMmltIntegrator creates an integrator. A nil logger logs under "integrator".
func NewMmltIntegrator(config Config, logger log.Logger) *MmltIntegrator {
	if logger == nil {
		logger = log.New("integrator")
	}
	return &MmltIntegrator{config: config, logger: logger}
}

// Config returns the integrator settings
func (m *MmltIntegrator) Config() Config {
	return m.config
}

// Stats returns the statistics of the latest Integrate call
func (m *MmltIntegrator) Stats() Stats {
	return m.stats
}

// Normalization returns the constants of the latest bootstrap, or nil
func (m *MmltIntegrator) Normalization() *Normalization {
	return m.normalization
}

// Bootstrap estimates the normalization constant of every path length
func (m *MmltIntegrator) Bootstrap(ctx context.Context, scene core.Scene) (*Normalization, error) {
	if err := m.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid integrator config: %w", err)
	}

	start := time.Now()
	m.logger.Infof("bootstrapping %d path lengths with %d samples each", m.config.MaxPathLength-1, m.config.InitialSampleCount)
	normalization, err := bootstrap(ctx, scene, m.config)
	if err != nil {
		return nil, fmt.Errorf("bootstrap failed: %w", err)
	}
	m.stats.BootstrapElapsed = time.Since(start)
	m.normalization = normalization

	m.logger.Noticef("bootstrap completed in %s\n%s", m.stats.BootstrapElapsed, BootstrapTable(normalization))
	return normalization, nil
}

// Integrate renders the scene. The returned image holds radiance per pixel.
// When ctx is cancelled the image rendered so far is returned, normalized by
// the iterations actually run, together with the context error.
func (m *MmltIntegrator) Integrate(ctx context.Context, scene core.Scene) (*renderer.Image, error) {
	m.stats = Stats{}
	normalization, err := m.Bootstrap(ctx, scene)
	if err != nil {
		return nil, err
	}

	width, height := scene.Camera().Resolution()
	image := renderer.NewImage(width, height)
	if normalization.Total() == 0 {
		m.logger.Warning("no path length carries energy; returning a black image")
		return image, nil
	}

	start := time.Now()
	random := rand.New(rand.NewSource(m.config.Seed))
	chains := m.seedChains(scene, normalization, random)
	selection := normalization.Distribution()

	pixelCount := int64(width) * int64(height)
	total := int64(m.config.AverageSamplesPerPixel) * pixelCount
	pLarge := m.config.LargeStepProbability

	var progressStep int64
	if m.config.ProgressInterval > 0 {
		progressStep = max(1, int64(math.Ceil(m.config.ProgressInterval*float64(total))))
	}

	var iteration int64
	for iteration = 0; iteration < total; iteration++ {
		if iteration%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				m.finish(image, start, iteration, pixelCount)
				return image, err
			}
		}

		index, _, ok := selection.Sample(random.Float64())
		if !ok {
			break
		}
		c := chains[index]

		mutation := c.sampler.Mutate()
		proposal := Contribute(scene, c.sampler, c.pathLength)
		a := Acceptance(c.current, proposal)

		bonus := 0.0
		if mutation == sampler.LargeStep {
			bonus = 1
			m.stats.LargeSteps++
		}
		scale := float64(c.pathLength+1) / c.pdf

		if !proposal.IsEmpty() {
			weight := scale * (a + bonus) / (proposal.Scalar/c.constant + pLarge)
			image.Contribute(proposal.Spectrum.Scale(weight), proposal.Pixel)
		} else {
			m.stats.EmptyProposals++
		}
		if !c.current.IsEmpty() {
			weight := scale * (1 - a) / (c.current.Scalar/c.constant + pLarge)
			image.Contribute(c.current.Spectrum.Scale(weight), c.current.Pixel)
		}

		if random.Float64() <= a {
			c.sampler.Accept()
			c.current = proposal
			m.stats.Accepted++
		} else {
			c.sampler.Reject()
		}

		if progressStep > 0 && (iteration+1)%progressStep == 0 {
			m.logger.Infof("progress: %.0f%% (%d/%d iterations)", 100*float64(iteration+1)/float64(total), iteration+1, total)
		}
	}

	m.finish(image, start, iteration, pixelCount)
	m.logger.Noticef("render completed in %s\n%s", m.stats.Elapsed, SummaryTable(m.stats))
	return image, nil
}

// seedChains creates one chain per path length with a non-zero constant,
// indexed like the normalization estimates
func (m *MmltIntegrator) seedChains(scene core.Scene, normalization *Normalization, random *rand.Rand) []*chain {
	selection := normalization.Distribution()
	chains := make([]*chain, len(normalization.Estimates))
	for i, estimate := range normalization.Estimates {
		s := sampler.NewMmltSampler(m.config.samplerConfig(), rand.New(rand.NewSource(random.Int63())))
		c := &chain{
			pathLength: estimate.PathLength,
			constant:   estimate.Mean,
			pdf:        selection.PDF(i),
			sampler:    s,
		}
		if c.constant > 0 {
			c.current = Contribute(scene, s, c.pathLength)
		}
		chains[i] = c
	}
	return chains
}

// finish records elapsed time and scales the accumulated image so every
// pixel estimates radiance
func (m *MmltIntegrator) finish(image *renderer.Image, start time.Time, iterations, pixelCount int64) {
	m.stats.Iterations = iterations
	m.stats.Elapsed = time.Since(start)
	if iterations > 0 {
		image.Scale(float64(pixelCount) / float64(iterations))
	}
}
