package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/df07/go-sphere-raytracer/pkg/integrator"
	"github.com/df07/go-sphere-raytracer/pkg/loaders"
	"github.com/df07/go-sphere-raytracer/pkg/log"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
	"github.com/urfave/cli"
)

// Seed used for procedural scenes when none is given.
const defaultSeed = 42

// RenderFlags are the flags accepted by the render command.
var RenderFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "scene, s",
		Value: scene.DefaultSceneName,
		Usage: "built-in scene name or path to a YAML scene file",
	},
	cli.IntFlag{
		Name:  "width",
		Usage: "frame width (overrides the scene)",
	},
	cli.IntFlag{
		Name:  "height",
		Usage: "frame height (overrides the scene)",
	},
	cli.IntFlag{
		Name:  "spp",
		Usage: "samples per pixel (overrides the scene)",
	},
	cli.IntFlag{
		Name:  "depth",
		Usage: "maximum ray bounce depth (overrides the scene)",
	},
	cli.Int64Flag{
		Name:  "seed",
		Usage: "random seed for sampling and procedural scenes (overrides the scene)",
	},
	cli.IntFlag{
		Name:  "workers",
		Usage: "number of render workers (0 = one per CPU)",
	},
	cli.StringFlag{
		Name:  "shading",
		Value: "path",
		Usage: "shading mode: path or normals",
	},
	cli.StringFlag{
		Name:  "out, o",
		Value: "render.ppm",
		Usage: "output image (.ppm, .png, .jpg); - writes PPM to stdout",
	},
	cli.BoolFlag{
		Name:  "stats",
		Usage: "display per-worker render statistics",
	},
}

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	seed := int64(defaultSeed)
	if ctx.IsSet("seed") {
		seed = ctx.Int64("seed")
	}

	f, err := createSceneFile(ctx.String("scene"), seed)
	if err != nil {
		return err
	}
	applyOverrides(ctx, f)

	sc, err := f.Build()
	if err != nil {
		return fmt.Errorf("scene %s: %w", f.Name, err)
	}

	integ, ok := integrator.New(ctx.String("shading"), sc.SamplingConfig.MaxDepth)
	if !ok {
		return fmt.Errorf("unknown shading mode %q", ctx.String("shading"))
	}

	config := sc.SamplingConfig
	config.NumWorkers = ctx.Int("workers")

	logger.Noticef("rendering scene %q (%d spheres)", sc.Name, sc.GetPrimitiveCount())
	rt := renderer.NewRaytracer(sc.Camera(), sc.World, integ, config, logger)

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	img, stats, err := rt.Render(renderCtx)
	if err != nil {
		return err
	}

	out := ctx.String("out")
	if err := loaders.SaveImage(out, img); err != nil {
		return err
	}

	displayFrameStats(ctx.Bool("stats"), stats)
	if out != "-" {
		logger.Noticef("saved %s", out)
	}
	return nil
}

// createSceneFile resolves a built-in scene name or a YAML scene file path.
func createSceneFile(name string, seed int64) (*scene.File, error) {
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		return scene.LoadFile(name)
	}
	return scene.Lookup(name, seed)
}

// applyOverrides copies explicitly set command line flags onto the scene.
func applyOverrides(ctx *cli.Context, f *scene.File) {
	if ctx.IsSet("width") {
		f.Sampling.Width = scene.Ptr(ctx.Int("width"))
	}
	if ctx.IsSet("height") {
		f.Sampling.Height = scene.Ptr(ctx.Int("height"))
	}
	if ctx.IsSet("spp") {
		f.Sampling.SamplesPerPixel = scene.Ptr(ctx.Int("spp"))
	}
	if ctx.IsSet("depth") {
		f.Sampling.MaxDepth = scene.Ptr(ctx.Int("depth"))
	}
	if ctx.IsSet("seed") {
		f.Sampling.Seed = scene.Ptr(ctx.Int64("seed"))
	}
}

func displayFrameStats(show bool, stats renderer.RenderStats) {
	logger.Noticef("rendered %d rows, %d samples in %s (%.0f samples/s)",
		stats.TotalRows, stats.TotalSamples, stats.RenderTime, stats.SamplesPerSecond())

	if show {
		logger.Noticef("frame statistics\n%s", stats.FormatTable())
	} else if log.Enabled(log.Debug) {
		logger.Debugf("frame statistics\n%s", stats.FormatTable())
	}
}
