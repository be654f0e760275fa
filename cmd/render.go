package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// RenderFlags are the flags accepted by the render command.
var RenderFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "scene, s",
		Value: "cornell",
		Usage: "built-in scene to render (see the scenes command)",
	},
	cli.StringFlag{
		Name:  "scene-file",
		Usage: "render a JSON scene file instead of a built-in scene",
	},
	cli.IntFlag{
		Name:  "width",
		Usage: "frame width (default: scene recommendation)",
	},
	cli.IntFlag{
		Name:  "height",
		Usage: "frame height (default: scene recommendation)",
	},
	cli.IntFlag{
		Name:  "spp",
		Usage: "samples per pixel (default: scene recommendation)",
	},
	cli.IntFlag{
		Name:  "bounces",
		Usage: "maximum surface interactions per path (default: scene recommendation)",
	},
	cli.Float64Flag{
		Name:  "focal",
		Usage: "camera focal length (default: scene camera)",
	},
	cli.Int64Flag{
		Name:   "seed",
		Usage:  "random seed; a time based seed is used when unset",
		EnvVar: "PATHTRACER_SEED",
	},
	cli.IntFlag{
		Name:  "workers",
		Value: 0,
		Usage: "number of render workers (0 = one per CPU)",
	},
	cli.IntFlag{
		Name:  "tile-size",
		Value: renderer.DefaultProgressiveConfig().TileSize,
		Usage: "tile edge length in pixels",
	},
	cli.IntFlag{
		Name:  "passes",
		Value: 1,
		Usage: "number of progressive passes; intermediate passes are written to the output file",
	},
	cli.BoolFlag{
		Name:  "reference",
		Usage: "render single-threaded, column by column, with one random sequence",
	},
	cli.StringFlag{
		Name:  "out, o",
		Value: "output.png",
		Usage: "image filename for the rendered frame",
	},
}

// RenderFrame renders a still frame and writes it as PNG.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}

	sampling, err := samplingFromFlags(ctx, sc)
	if err != nil {
		return err
	}
	if ctx.IsSet("focal") {
		sc.CameraConfig.FocalLength = ctx.Float64("focal")
	}

	out := ctx.String("out")
	logger.Noticef("rendering scene %q at %dx%d, %d spp, %d bounces (seed %d)",
		sc.Name, sampling.Width, sampling.Height, sampling.SamplesPerPixel, sampling.MaxBounces, sampling.Seed)

	var frame *renderer.Frame
	var stats renderer.RenderStats
	var workers int
	if ctx.Bool("reference") {
		frame, stats, err = renderReference(sc, sampling)
		workers = 1
	} else {
		frame, stats, workers, err = renderParallel(ctx, sc, sampling, out)
	}
	if err != nil {
		return err
	}

	start := time.Now()
	if err := loaders.SavePNG(out, frame.Image); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s in %d ms", out, time.Since(start).Milliseconds())

	displayFrameStats(sc, sampling, stats, workers)
	return nil
}

// loadScene resolves the scene flags
func loadScene(ctx *cli.Context) (*scene.Scene, error) {
	if file := ctx.String("scene-file"); file != "" {
		return scene.NewSceneFromFile(file)
	}
	return scene.Create(ctx.String("scene"))
}

// samplingFromFlags applies flag overrides to the scene's recommended config
func samplingFromFlags(ctx *cli.Context, sc *scene.Scene) (renderer.SamplingConfig, error) {
	sampling := scene.MergeSamplingConfig(sc.GetSamplingConfig(), renderer.SamplingConfig{
		Width:           ctx.Int("width"),
		Height:          ctx.Int("height"),
		SamplesPerPixel: ctx.Int("spp"),
	})

	// Zero bounces is a valid request, so only an explicit flag overrides
	if ctx.IsSet("bounces") {
		sampling.MaxBounces = ctx.Int("bounces")
	}

	if ctx.IsSet("seed") {
		sampling.Seed = ctx.Int64("seed")
	} else {
		sampling.Seed = time.Now().UnixNano()
	}

	return sampling, sampling.Validate()
}

func renderReference(sc *scene.Scene, sampling renderer.SamplingConfig) (*renderer.Frame, renderer.RenderStats, error) {
	rt, err := renderer.NewRaytracer(sc, sampling)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}

	frame, stats := rt.RenderPass(func(column int) {
		logger.Debugf("column %d/%d done", column+1, sampling.Width)
	})
	return frame, stats, nil
}

func renderParallel(ctx *cli.Context, sc *scene.Scene, sampling renderer.SamplingConfig, out string) (*renderer.Frame, renderer.RenderStats, int, error) {
	config := renderer.DefaultProgressiveConfig()
	config.TileSize = ctx.Int("tile-size")
	config.MaxPasses = ctx.Int("passes")
	config.NumWorkers = ctx.Int("workers")

	pr, err := renderer.NewProgressiveRaytracer(sc, sampling, config)
	if err != nil {
		return nil, renderer.RenderStats{}, 0, err
	}

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	passChan, _, errChan := pr.RenderProgressive(renderCtx, renderer.RenderOptions{})

	var last renderer.PassResult
	for result := range passChan {
		last = result
		if !result.IsLast {
			// Keep a preview on disk while later passes run
			if err := loaders.SavePNG(out, result.Frame.Image); err != nil {
				logger.Warningf("could not write preview: %v", err)
			}
		}
	}
	if err := <-errChan; err != nil {
		return nil, renderer.RenderStats{}, 0, err
	}
	if !last.IsLast {
		return nil, renderer.RenderStats{}, 0, renderer.ErrInterrupted
	}

	last.Stats.RenderTime = time.Since(start)
	return last.Frame, last.Stats, pr.NumWorkers(), nil
}

func displayFrameStats(sc *scene.Scene, sampling renderer.SamplingConfig, stats renderer.RenderStats, workers int) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Primitives", "Resolution", "Bounces", "Samples/pixel", "Total samples", "Workers"})
	table.Append([]string{
		sc.Name,
		fmt.Sprintf("%d", sc.GetPrimitiveCount()),
		fmt.Sprintf("%dx%d", sampling.Width, sampling.Height),
		fmt.Sprintf("%d", sampling.MaxBounces),
		fmt.Sprintf("%.1f (%d - %d)", stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed),
		fmt.Sprintf("%d", stats.TotalSamples),
		fmt.Sprintf("%d", workers),
	})
	table.SetFooter([]string{"", "", "", "", "", "TOTAL", stats.RenderTime.String()})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}

// defaultSceneDir returns the scenes directory next to the working directory
func defaultSceneDir() string {
	return filepath.Join(".", "scenes")
}
