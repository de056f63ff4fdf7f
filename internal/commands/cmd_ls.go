package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/cuesync/internal/core/srt"
	"github.com/colonyops/cuesync/internal/cuesync"
	"github.com/colonyops/cuesync/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *cuesync.App

	// flags
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *cuesync.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "ls",
		Usage:       "List imported tracks",
		UsageText:   "cuesync ls [--json]",
		Description: `Displays a table of all tracks with their sync progress, duration and media file.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	tracks, err := cmd.app.Tracks.List(ctx)
	if err != nil {
		return fmt.Errorf("list tracks: %w", err)
	}

	if len(tracks) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No tracks found. Run 'cuesync import' to add one\n")
		}
		return nil
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, t := range tracks {
			if err := iojson.WriteLine(out, t); err != nil {
				return fmt.Errorf("encode track: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tSYNCED\tDURATION\tMEDIA")
	for _, t := range tracks {
		duration := "-"
		if t.DurationMS > 0 {
			duration = srt.FormatTime(t.DurationMS)
		}
		_, _ = fmt.Fprintf(w, "%s\t%d/%d (%.0f%%)\t%s\t%s\n",
			t.Name, t.Synced, t.Total, t.Progress()*100, duration, t.MediaPath)
	}
	return w.Flush()
}
