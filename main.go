package main

import (
	"os"

	"github.com/davidtemplin/mmlt/cmd"
	"github.com/joho/godotenv"
	"github.com/urfave/cli"
)

func main() {
	// Defaults from a local .env file; real environment variables win
	_ = godotenv.Load()

	app := newApp()
	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "mmlt"
	app.Usage = "render scenes using multiplexed Metropolis light transport"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to an image file",
			Description: `
Estimate the normalization constant of every path length, then run one
Metropolis chain per path length until the requested average number of
samples per pixel is reached.

The image format follows the extension of --image: .pfm keeps linear
radiance, .png and .tif are gamma corrected and clamped.`,
			Flags:  cmd.RenderFlags,
			Action: cmd.Render,
		},
		{
			Name:   "bootstrap",
			Usage:  "estimate per-length normalization constants without rendering",
			Flags:  cmd.BootstrapFlags,
			Action: cmd.Bootstrap,
		},
		{
			Name:  "scenes",
			Usage: "list built-in scenes and scene files",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "dir, d",
					Value: "scenes",
					Usage: "directory to scan for YAML scene files",
				},
			},
			Action: cmd.ListScenes,
		},
	}
	app.ExitErrHandler = func(ctx *cli.Context, err error) {
		if err != nil {
			cmd.LogError(err)
		}
	}

	return app
}
