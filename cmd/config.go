package cmd

import (
	"fmt"

	"github.com/davidtemplin/mmlt/pkg/integrator"
	"github.com/davidtemplin/mmlt/pkg/scene"
	"github.com/urfave/cli"
)

// SceneFlags select the scene to render. Width and height only apply to
// built-in scenes; scene files carry their own resolution.
var SceneFlags = []cli.Flag{
	cli.StringFlag{
		Name:   "scene, s",
		Value:  "cornell",
		Usage:  "built-in scene name or path to a YAML scene file",
		EnvVar: "MMLT_SCENE",
	},
	cli.IntFlag{
		Name:   "width",
		Value:  256,
		Usage:  "image width for built-in scenes",
		EnvVar: "MMLT_WIDTH",
	},
	cli.IntFlag{
		Name:   "height",
		Value:  256,
		Usage:  "image height for built-in scenes",
		EnvVar: "MMLT_HEIGHT",
	},
}

// IntegratorFlags expose every integrator setting
var IntegratorFlags = integratorFlags(integrator.DefaultConfig())

func integratorFlags(defaults integrator.Config) []cli.Flag {
	return []cli.Flag{
		cli.IntFlag{
			Name:   "max-path-length",
			Value:  defaults.MaxPathLength,
			Usage:  "longest path length in vertices",
			EnvVar: "MMLT_MAX_PATH_LENGTH",
		},
		cli.IntFlag{
			Name:   "initial-sample-count",
			Value:  defaults.InitialSampleCount,
			Usage:  "bootstrap samples per path length",
			EnvVar: "MMLT_INITIAL_SAMPLE_COUNT",
		},
		cli.IntFlag{
			Name:   "average-samples-per-pixel, spp",
			Value:  defaults.AverageSamplesPerPixel,
			Usage:  "chain iterations per pixel",
			EnvVar: "MMLT_AVERAGE_SAMPLES_PER_PIXEL",
		},
		cli.Float64Flag{
			Name:   "large-step-probability",
			Value:  defaults.LargeStepProbability,
			Usage:  "probability of an independent resample",
			EnvVar: "MMLT_LARGE_STEP_PROBABILITY",
		},
		cli.Float64Flag{
			Name:   "sigma",
			Value:  defaults.Sigma,
			Usage:  "standard deviation of small-step perturbations",
			EnvVar: "MMLT_SIGMA",
		},
		cli.Int64Flag{
			Name:   "seed",
			Value:  defaults.Seed,
			Usage:  "random seed",
			EnvVar: "MMLT_SEED",
		},
		cli.IntFlag{
			Name:   "workers",
			Value:  defaults.BootstrapWorkers,
			Usage:  "bootstrap workers (0 = one per CPU)",
			EnvVar: "MMLT_WORKERS",
		},
	}
}

// integratorConfig builds a validated integrator config from the command flags
func integratorConfig(ctx *cli.Context) (integrator.Config, error) {
	config := integrator.DefaultConfig()
	config.MaxPathLength = ctx.Int("max-path-length")
	config.InitialSampleCount = ctx.Int("initial-sample-count")
	config.AverageSamplesPerPixel = ctx.Int("average-samples-per-pixel")
	config.LargeStepProbability = ctx.Float64("large-step-probability")
	config.Sigma = ctx.Float64("sigma")
	config.Seed = ctx.Int64("seed")
	config.BootstrapWorkers = ctx.Int("workers")

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// loadScene resolves the --scene flag
func loadScene(ctx *cli.Context) (*scene.Scene, error) {
	width, height := ctx.Int("width"), ctx.Int("height")
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid resolution %dx%d", width, height)
	}

	name := ctx.String("scene")
	s, err := scene.Resolve(name, width, height)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene %q: %w", name, err)
	}
	w, h := s.Camera().Resolution()
	logger.Infof("loaded scene %q (%dx%d, %d lights, %d objects)", name, w, h, len(s.Lights()), len(s.Objects()))
	return s, nil
}
