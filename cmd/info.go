package cmd

import (
	"errors"
	"fmt"

	"github.com/df07/go-sphere-raytracer/pkg/loaders"
	"github.com/urfave/cli"
)

// Display information about a rendered image.
func ShowImageInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing image file argument")
	}

	data, err := loaders.LoadImage(ctx.Args().First())
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(ctx.App.Writer, "format: %s\nsize: %dx%d\naverage luminance: %.4f\n",
		data.Format, data.Width, data.Height, data.AverageLuminance())
	return err
}
