package integrator

import (
	"context"
	"math/rand"
	"runtime"
	"sort"
	"sync"

	"github.com/davidtemplin/mmlt/pkg/core"
	"github.com/davidtemplin/mmlt/pkg/sampler"
)

// contextCheckInterval is how many samples run between cancellation checks
const contextCheckInterval = 1024

// LengthEstimate is the bootstrap result for one path length
type LengthEstimate struct {
	PathLength int
	Mean       float64 // Estimated normalization constant b[k]
	NonZero    int     // Samples with a non-empty contribution
	Samples    int
}

// Normalization holds the per-length normalization constants
type Normalization struct {
	Estimates []LengthEstimate // Ordered by path length, starting at 2
}

// Constant returns b[k] for the given path length, or 0 if it was not estimated
func (n *Normalization) Constant(pathLength int) float64 {
	for _, e := range n.Estimates {
		if e.PathLength == pathLength {
			return e.Mean
		}
	}
	return 0
}

// Total returns the sum of all normalization constants
func (n *Normalization) Total() float64 {
	total := 0.0
	for _, e := range n.Estimates {
		total += e.Mean
	}
	return total
}

// Distribution returns the path length selection distribution, proportional
// to the normalization constants and indexed like Estimates
func (n *Normalization) Distribution() *core.Distribution {
	weights := make([]float64, len(n.Estimates))
	for i, e := range n.Estimates {
		weights[i] = e.Mean
	}
	return core.NewDistribution(weights)
}

// bootstrapTask estimates one path length
type bootstrapTask struct {
	PathLength int
	Samples    int
	Seed       int64
}

// bootstrapResult contains the estimate for a task
type bootstrapResult struct {
	Estimate LengthEstimate
	Error    error
}

// bootstrapPool runs bootstrap tasks in parallel. Every task owns its random
// source so results do not depend on scheduling.
type bootstrapPool struct {
	taskQueue     chan bootstrapTask
	resultQueue   chan bootstrapResult
	numWorkers    int
	wg            sync.WaitGroup
	scene         core.Scene
	samplerConfig sampler.Config
}

// newBootstrapPool creates a pool able to buffer maxTasks tasks and results
func newBootstrapPool(scene core.Scene, samplerConfig sampler.Config, numWorkers, maxTasks int) *bootstrapPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &bootstrapPool{
		taskQueue:     make(chan bootstrapTask, maxTasks),
		resultQueue:   make(chan bootstrapResult, maxTasks),
		numWorkers:    numWorkers,
		scene:         scene,
		samplerConfig: samplerConfig,
	}
}

// Start begins all workers
func (p *bootstrapPool) Start(ctx context.Context) {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.run(ctx)
	}
}

// Stop closes the task queue and waits for the workers to drain it
func (p *bootstrapPool) Stop() {
	close(p.taskQueue)
	p.wg.Wait()
	close(p.resultQueue)
}

// SubmitTask queues a task
func (p *bootstrapPool) SubmitTask(task bootstrapTask) {
	p.taskQueue <- task
}

// GetResult retrieves a completed result
func (p *bootstrapPool) GetResult() (bootstrapResult, bool) {
	result, ok := <-p.resultQueue
	return result, ok
}

func (p *bootstrapPool) run(ctx context.Context) {
	defer p.wg.Done()

	for task := range p.taskQueue {
		estimate, err := estimateLength(ctx, p.scene, p.samplerConfig, task)
		p.resultQueue <- bootstrapResult{Estimate: estimate, Error: err}
	}
}

// estimateLength averages the scalar contribution of independent samples of
// one path length. Each sample uses a fresh sampler so every coordinate is
// drawn uniformly.
func estimateLength(ctx context.Context, scene core.Scene, samplerConfig sampler.Config, task bootstrapTask) (LengthEstimate, error) {
	random := rand.New(rand.NewSource(task.Seed))
	estimate := LengthEstimate{PathLength: task.PathLength, Samples: task.Samples}

	sum := 0.0
	for i := 0; i < task.Samples; i++ {
		if i%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return estimate, err
			}
		}
		s := sampler.NewMmltSampler(samplerConfig, random)
		contribution := Contribute(scene, s, task.PathLength)
		if !contribution.IsEmpty() {
			sum += contribution.Scalar
			estimate.NonZero++
		}
	}
	estimate.Mean = sum / float64(task.Samples)
	return estimate, nil
}

// bootstrap estimates b[k] for every path length from 2 to config.MaxPathLength
func bootstrap(ctx context.Context, scene core.Scene, config Config) (*Normalization, error) {
	lengths := config.MaxPathLength - 1
	pool := newBootstrapPool(scene, config.samplerConfig(), config.BootstrapWorkers, lengths)
	pool.Start(ctx)

	for k := 2; k <= config.MaxPathLength; k++ {
		pool.SubmitTask(bootstrapTask{
			PathLength: k,
			Samples:    config.InitialSampleCount,
			Seed:       config.Seed + int64(k),
		})
	}
	pool.Stop()

	normalization := &Normalization{}
	var firstErr error
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil && firstErr == nil {
			firstErr = result.Error
		}
		normalization.Estimates = append(normalization.Estimates, result.Estimate)
	}
	if firstErr != nil {
		return nil, firstErr
	}

	sort.Slice(normalization.Estimates, func(i, j int) bool {
		return normalization.Estimates[i].PathLength < normalization.Estimates[j].PathLength
	})
	return normalization, nil
}
