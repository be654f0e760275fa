package cmd

import (
	"bytes"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// SceneDirFlag selects the directory scanned for JSON scene files.
var SceneDirFlag = cli.StringFlag{
	Name:  "dir",
	Value: defaultSceneDir(),
	Usage: "directory containing JSON scene files",
}

// ListScenes prints the built-in scenes and the scene files found on disk.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	response, err := scene.ListAllScenes(ctx.String("dir"))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Name", "Group", "Description"})

	count := 0
	for _, group := range response.Groups {
		for _, info := range group.Scenes {
			table.Append([]string{info.ID, info.DisplayName, group.Name, info.Description})
			count++
		}
	}
	table.SetFooter([]string{"", "", "TOTAL", fmt.Sprintf("%d", count)})

	table.Render()
	logger.Noticef("available scenes\n%s", buf.String())
	return nil
}
