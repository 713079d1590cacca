package main

import (
	"fmt"
	"os"

	"github.com/df07/go-sphere-raytracer/cmd"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-sphere-raytracer"
	app.Usage = "render sphere scenes using stochastic ray tracing"
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
			Usage: "render a single frame",
			Description: `
Render a built-in scene or a YAML scene file. Every camera ray is traced
through up to --depth bounces against the scene's spheres and the averaged,
gamma corrected result is written as PPM, PNG or JPEG depending on the
output extension.

Rendering is deterministic for a given seed regardless of --workers.`,
			Flags:  cmd.RenderFlags,
			Action: cmd.RenderFrame,
		},
		{
			Name:  "scene",
			Usage: "inspect and export scenes",
			Subcommands: []cli.Command{
				{
					Name:  "list",
					Usage: "list built-in scenes and scene files",
					Flags: []cli.Flag{
						cli.StringFlag{
							Name:  "dir",
							Value: "scenes",
							Usage: "directory to scan for YAML scene files",
						},
					},
					Action: cmd.ListScenes,
				},
				{
					Name:        "export",
					Usage:       "write a built-in scene as a YAML scene file",
					Description: `The exported file can be edited and passed back to render --scene.`,
					ArgsUsage:   "scene_name",
					Flags: []cli.Flag{
						cli.Int64Flag{
							Name:  "seed",
							Value: 42,
							Usage: "seed for procedural scenes",
						},
						cli.StringFlag{
							Name:  "out, o",
							Value: "-",
							Usage: "output YAML file; - writes to stdout",
						},
					},
					Action: cmd.ExportScene,
				},
			},
		},
		{
			Name:      "info",
			Usage:     "display size and average luminance of a rendered image",
			ArgsUsage: "image_file",
			Action:    cmd.ShowImageInfo,
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
