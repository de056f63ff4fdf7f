package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/cuesync/internal/core/srt"
	"github.com/colonyops/cuesync/internal/cuesync"
	"github.com/colonyops/cuesync/pkg/iojson"
)

type HistoryCmd struct {
	flags *Flags
	app   *cuesync.App

	// flags
	limit      int
	jsonOutput bool
}

// NewHistoryCmd creates a new history command
func NewHistoryCmd(flags *Flags, app *cuesync.App) *HistoryCmd {
	return &HistoryCmd{flags: flags, app: app}
}

// Register adds the history command to the application
func (cmd *HistoryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "history",
		Usage:     "Show the timing journal of a track",
		UsageText: "cuesync history [--limit n] [--json] <track>",
		Description: `Lists the most recent timing changes applied in the editor, newest first.
Changes made by one drag share a change group.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "maximum number of entries",
				Value:       50,
				Destination: &cmd.limit,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		ShellComplete: TrackNameCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *HistoryCmd) run(ctx context.Context, c *cli.Command) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("track name is required")
	}

	entries, err := cmd.app.Tracks.History(ctx, name, cmd.limit)
	if err != nil {
		return err
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		for _, e := range entries {
			if err := iojson.WriteLine(out, e); err != nil {
				return fmt.Errorf("encode entry: %w", err)
			}
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TIME\tSOURCE\tGROUP\tSUBTITLE\tTIMING")
	for _, e := range entries {
		group := "-"
		if e.Grouped() {
			group = e.ChangeGroup
		}
		subID := e.SubtitleID
		if len(subID) > 8 {
			subID = subID[:8]
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s → %s\n",
			e.Timestamp.Format("2006-01-02 15:04:05"), e.Source, group, subID,
			timingLabel(e.StartTime), timingLabel(e.EndTime))
	}
	return w.Flush()
}

func timingLabel(ms int64) string {
	if ms < 0 {
		return "unsynced"
	}
	return srt.FormatTime(ms)
}
