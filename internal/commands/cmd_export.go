package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/cuesync/internal/cuesync"
	"github.com/colonyops/cuesync/internal/printer"
)

type ExportCmd struct {
	flags *Flags
	app   *cuesync.App

	// flags
	format string
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags, app *cuesync.App) *ExportCmd {
	return &ExportCmd{flags: flags, app: app}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Export a track as SRT or JSON",
		UsageText: "cuesync export [--format srt|json] <track> [file]",
		Description: `Writes the track to file, or stdout when no file is given.

SRT output contains synced subtitles only; unsynced ones are reported and
skipped. JSON output is a full backup that 'cuesync restore' reads back.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (srt, json); detected from the file extension when unset",
				Destination: &cmd.format,
			},
		},
		ShellComplete: TrackNameCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	name := c.Args().Get(0)
	if name == "" {
		return fmt.Errorf("track name is required")
	}
	path := c.Args().Get(1)

	format := cmd.format
	if format == "" {
		format = cuesync.FormatSRT
		if filepath.Ext(path) == ".json" {
			format = cuesync.FormatJSON
		}
	}

	var w io.Writer = c.Root().Writer
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	skipped, err := cmd.app.Tracks.Export(ctx, name, format, w)
	if err != nil {
		return err
	}

	p := printer.Ctx(ctx)
	if skipped > 0 {
		p.Warnf("Skipped %d unsynced subtitle(s)", skipped)
	}
	if path != "" {
		p.Successf("Exported %q to %s", name, path)
	}
	return nil
}
