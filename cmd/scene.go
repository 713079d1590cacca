package cmd

import (
	"bytes"
	"errors"

	"github.com/df07/go-sphere-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List built-in scenes and the scene files found in a directory.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	scenes, err := scene.ListAllScenes(ctx.String("dir"))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Name", "Type", "Description"})
	for _, info := range scenes {
		id := info.ID
		if info.Type == scene.TypeFile {
			id = info.FilePath
		}
		table.Append([]string{id, info.Name, info.Type, info.Description})
	}
	table.Render()

	_, err = ctx.App.Writer.Write(buf.Bytes())
	return err
}

// Export a built-in scene as a YAML scene file.
func ExportScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene name argument")
	}

	f, err := scene.Lookup(ctx.Args().First(), ctx.Int64("seed"))
	if err != nil {
		return err
	}

	out := ctx.String("out")
	if out == "-" {
		data, err := f.Marshal()
		if err != nil {
			return err
		}
		_, err = ctx.App.Writer.Write(data)
		return err
	}

	if err := f.SaveFile(out); err != nil {
		return err
	}
	logger.Noticef("exported scene %q (%d spheres, %d materials) to %s", f.Name, len(f.Spheres), len(f.Materials), out)
	return nil
}
