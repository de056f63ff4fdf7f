package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/cuesync/internal/cuesync"
	"github.com/colonyops/cuesync/internal/printer"
	"github.com/colonyops/cuesync/pkg/iojson"
)

type RmCmd struct {
	flags *Flags
	app   *cuesync.App

	// flags
	force bool
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags, app *cuesync.App) *RmCmd {
	return &RmCmd{flags: flags, app: app}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "rm",
		Usage:     "Delete tracks",
		UsageText: "cuesync rm [--force] <track...>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "force",
				Aliases:     []string{"f"},
				Usage:       "delete without asking",
				Destination: &cmd.force,
			},
		},
		ShellComplete: TrackNameCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	names := c.Args().Slice()
	if len(names) == 0 {
		return fmt.Errorf("at least one track name is required")
	}

	if !cmd.force {
		if !iojson.IsTerminal(os.Stdin) {
			return fmt.Errorf("refusing to delete without a terminal; use --force")
		}
		var confirm bool
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %d track(s)?", len(names))).
			Description("Subtitles and edit history are removed.").
			Value(&confirm).
			Run()
		if errors.Is(err, huh.ErrUserAborted) || (err == nil && !confirm) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	p := printer.Ctx(ctx)
	for _, name := range names {
		if err := cmd.app.Tracks.Delete(ctx, name); err != nil {
			return err
		}
		p.Successf("Deleted %q", name)
	}
	return nil
}
