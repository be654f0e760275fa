package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

var errImagesDiffer = errors.New("images differ")

// DiffFlags are the flags accepted by the diff command.
var DiffFlags = []cli.Flag{
	cli.Float64Flag{
		Name:  "tolerance",
		Value: 0,
		Usage: "largest channel difference (0-1) still reported as a match",
	},
}

// DiffImages compares two rendered frames, e.g. a parallel render against a
// reference render with the same seed. It fails when the frames differ by
// more than the tolerance.
func DiffImages(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 2 {
		return errors.New("diff expects exactly two image files")
	}
	fileA, fileB := ctx.Args().Get(0), ctx.Args().Get(1)

	a, err := loaders.LoadImage(fileA)
	if err != nil {
		return err
	}
	b, err := loaders.LoadImage(fileB)
	if err != nil {
		return err
	}

	diff, err := loaders.CompareImages(a, b)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Resolution", "Differing pixels", "Max channel diff", "RMSE"})
	table.Append([]string{
		fmt.Sprintf("%dx%d", a.Width, a.Height),
		fmt.Sprintf("%d / %d", diff.DiffPixels, diff.Pixels),
		fmt.Sprintf("%.4f", diff.MaxDiff),
		fmt.Sprintf("%.6f", diff.RMSE),
	})
	table.Render()
	logger.Noticef("%s vs %s\n%s", fileA, fileB, buf.String())

	if diff.MaxDiff > ctx.Float64("tolerance") {
		return errImagesDiffer
	}
	return nil
}
