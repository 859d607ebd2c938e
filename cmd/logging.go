package cmd

import (
	"github.com/davidtemplin/mmlt/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("mmlt")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

// LogError reports a command failure
func LogError(err error) {
	logger.Error(err.Error())
}
