package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/cuesync/internal/cuesync"
)

// TrackNameCompleter returns a ShellCompleteFunc that suggests stored track
// names as positional completions.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func TrackNameCompleter(app *cuesync.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		tracks, err := app.Tracks.List(ctx)
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, t := range tracks {
			_, _ = fmt.Fprintln(w, t.Name)
		}
	}
}
