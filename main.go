package main

import (
	"os"

	"github.com/df07/go-pathtracer/cmd"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("pathtracer")

func newApp() *cli.App {
	// -v is the verbose flag below, so --version must not claim it
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-pathtracer"
	app.Usage = "render scenes using Monte Carlo path tracing"
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
			Usage: "render a scene to a PNG file",
			Description: `
Trace the selected scene with the given sampling settings and write the frame
as PNG. Unset sampling flags fall back to the scene's recommended values.

By default the frame is split into tiles rendered by a worker pool; the output
only depends on the seed, not on the number of workers. With --reference the
frame is rendered on one goroutine, column by column, from a single random
sequence.`,
			Flags:  cmd.RenderFlags,
			Action: cmd.RenderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes and JSON scene files",
			Flags:  []cli.Flag{cmd.SceneDirFlag},
			Action: cmd.ListScenes,
		},
		{
			Name:      "diff",
			Usage:     "compare two rendered frames",
			ArgsUsage: "a.png b.png",
			Flags:     cmd.DiffFlags,
			Action:    cmd.DiffImages,
		},
		{
			Name:   "serve",
			Usage:  "serve the render web API",
			Flags:  cmd.ServeFlags,
			Action: cmd.Serve,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
