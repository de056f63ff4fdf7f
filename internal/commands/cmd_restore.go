package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/cuesync/internal/core/track"
	"github.com/colonyops/cuesync/internal/cuesync"
	"github.com/colonyops/cuesync/internal/printer"
	"github.com/colonyops/cuesync/pkg/iojson"
)

type RestoreCmd struct {
	flags  *Flags
	app    *cuesync.App
	reader iojson.FileReader[track.Track]

	// flags
	name string
}

// NewRestoreCmd creates a new restore command
func NewRestoreCmd(flags *Flags, app *cuesync.App) *RestoreCmd {
	return &RestoreCmd{flags: flags, app: app}
}

// Register adds the restore command to the application
func (cmd *RestoreCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "restore",
		Usage:     "Restore a track from a JSON export",
		UsageText: "cuesync export --format json pilot | cuesync restore [--name copy]",
		Description: `Reads a track written by 'cuesync export --format json' from --file or stdin
and stores it, replacing any track with the same name.`,
		Flags: []cli.Flag{
			cmd.reader.Flag(),
			&cli.StringFlag{
				Name:        "name",
				Aliases:     []string{"n"},
				Usage:       "store under this name instead of the exported one",
				Destination: &cmd.name,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RestoreCmd) run(ctx context.Context, _ *cli.Command) error {
	t, err := cmd.reader.Read()
	if err != nil {
		return fmt.Errorf("read track: %w", err)
	}
	if cmd.name != "" {
		t.Name = cmd.name
	}

	if err := cmd.app.Tracks.Restore(ctx, t); err != nil {
		return err
	}

	printer.Ctx(ctx).Successf("Restored %q (%d subtitles)", t.Name, len(t.Subtitles))
	return nil
}
