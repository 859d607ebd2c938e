package cmd

import (
	"context"

	"github.com/davidtemplin/mmlt/pkg/integrator"
	"github.com/davidtemplin/mmlt/pkg/log"
	"github.com/urfave/cli"
)

// BootstrapFlags are the flags of the bootstrap command
var BootstrapFlags = append(append([]cli.Flag{}, SceneFlags...), IntegratorFlags...)

// Bootstrap estimates the per-length normalization constants of a scene
// without rendering it.
func Bootstrap(ctx *cli.Context) error {
	setupLogging(ctx)

	config, err := integratorConfig(ctx)
	if err != nil {
		return err
	}
	s, err := loadScene(ctx)
	if err != nil {
		return err
	}

	mmlt := integrator.NewMmltIntegrator(config, log.New("integrator"))
	normalization, err := mmlt.Bootstrap(context.Background(), s)
	if err != nil {
		return err
	}
	if normalization.Total() == 0 {
		logger.Warning("no path length reaches a light; the image would be black")
	}
	return nil
}
