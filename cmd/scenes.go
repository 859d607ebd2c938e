package cmd

import (
	"bytes"

	"github.com/davidtemplin/mmlt/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListScenes prints the built-in scenes and the scene files of a directory.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	dir := ctx.String("dir")
	scenes, err := scene.ListScenes(dir)
	if err != nil {
		return err
	}
	logger.Noticef("available scenes\n%s", scenesTable(scenes))
	return nil
}

func scenesTable(scenes []scene.SceneInfo) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Name", "Type", "Description"})
	for _, info := range scenes {
		table.Append([]string{info.ID, info.Name, info.Type, info.Description})
	}

	table.Render()
	return buf.String()
}
