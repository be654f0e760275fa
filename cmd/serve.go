package cmd

import (
	"github.com/df07/go-pathtracer/web/server"
	"github.com/urfave/cli"
)

// ServeFlags are the flags accepted by the serve command.
var ServeFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "port, p",
		Value: 8080,
		Usage: "port to serve on",
	},
	SceneDirFlag,
}

// Serve runs the render web server until it fails.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	port := ctx.Int("port")
	logger.Noticef("Visit http://localhost:%d/api/scenes to list scenes", port)

	return server.NewServer(port, ctx.String("dir")).Start()
}
