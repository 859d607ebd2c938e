package cmd

import (
	"context"
	"fmt"

	"github.com/davidtemplin/mmlt/pkg/integrator"
	"github.com/davidtemplin/mmlt/pkg/log"
	"github.com/davidtemplin/mmlt/pkg/renderer"
	"github.com/urfave/cli"
)

// RenderFlags are the flags of the render command
var RenderFlags = append(append(append([]cli.Flag{}, SceneFlags...), IntegratorFlags...),
	cli.StringFlag{
		Name:   "image, o",
		Value:  "image.pfm",
		Usage:  "output image path (.pfm, .png, .tif or .tiff)",
		EnvVar: "MMLT_IMAGE",
	},
)

// Render a scene to an image file.
func Render(ctx *cli.Context) error {
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
	img, err := mmlt.Integrate(context.Background(), s)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	path := ctx.String("image")
	if err := renderer.Write(img, path); err != nil {
		return err
	}
	logger.Noticef("wrote %dx%d image to %s", img.Width(), img.Height(), path)
	return nil
}
