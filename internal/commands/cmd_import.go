package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/cuesync/internal/cuesync"
	"github.com/colonyops/cuesync/internal/printer"
	"github.com/colonyops/cuesync/pkg/iojson"
)

type ImportCmd struct {
	flags *Flags
	app   *cuesync.App

	// flags
	name       string
	format     string
	media      string
	durationMS int64
	force      bool
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags, app *cuesync.App) *ImportCmd {
	return &ImportCmd{flags: flags, app: app}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Import SRT or plain text files as tracks",
		UsageText: "cuesync import [options] <glob...>",
		Description: `Imports every file matched by the given globs. SRT files keep their timings;
any other file is read as a plain text script where each paragraph becomes an
unsynced subtitle, ready to be synced live in the editor.

Globs support ** (e.g. 'season1/**/*.srt'). The track name defaults to the
file name without its extension.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "name",
				Aliases:     []string{"n"},
				Usage:       "track name (only with a single file)",
				Destination: &cmd.name,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "input format (srt, text); detected from the extension when unset",
				Destination: &cmd.format,
			},
			&cli.StringFlag{
				Name:        "media",
				Usage:       "media file to probe for the track duration",
				Destination: &cmd.media,
			},
			&cli.Int64Flag{
				Name:        "duration",
				Usage:       "track duration in milliseconds (overrides --media)",
				Destination: &cmd.durationMS,
			},
			&cli.BoolFlag{
				Name:        "force",
				Aliases:     []string{"f"},
				Usage:       "overwrite existing tracks without asking",
				Destination: &cmd.force,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("at least one file or glob is required")
	}

	files, err := expandGlobs(c.Args().Slice())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files matched %v", c.Args().Slice())
	}
	if cmd.name != "" && len(files) > 1 {
		return fmt.Errorf("--name can only be used with a single file, matched %d", len(files))
	}

	duration, err := resolveDuration(ctx, cmd.app, cmd.media, cmd.durationMS)
	if err != nil {
		return err
	}

	p := printer.Ctx(ctx)
	for _, file := range files {
		opts := cuesync.ImportOptions{
			Name:       cmd.name,
			Format:     cmd.format,
			MediaPath:  cmd.media,
			DurationMS: duration,
			Overwrite:  cmd.force,
		}
		if opts.Name == "" {
			opts.Name = cuesync.TrackName(file)
		}

		if !opts.Overwrite {
			overwrite, err := cmd.confirmOverwrite(ctx, opts.Name)
			if err != nil {
				return err
			}
			if !overwrite {
				p.Infof("Skipped %s", file)
				continue
			}
			opts.Overwrite = true
		}

		t, err := cmd.app.Tracks.Import(ctx, file, opts)
		if err != nil {
			return err
		}

		synced := 0
		for _, s := range t.Subtitles {
			if s.IsSynced() {
				synced++
			}
		}
		p.Successf("Imported %s as %q (%d subtitles, %d synced)", file, t.Name, len(t.Subtitles), synced)
	}

	return nil
}

// confirmOverwrite asks before replacing an existing track. Without a
// terminal the import is refused instead.
func (cmd *ImportCmd) confirmOverwrite(ctx context.Context, name string) (bool, error) {
	exists, err := cmd.app.Tracks.Exists(ctx, name)
	if err != nil || !exists {
		return true, err
	}
	if !iojson.IsTerminal(os.Stdin) {
		return false, fmt.Errorf("%w: %s (use --force to overwrite)", cuesync.ErrTrackExists, name)
	}

	var overwrite bool
	err = huh.NewConfirm().
		Title(fmt.Sprintf("Track %q already exists", name)).
		Description("Overwrite it? Its edit history is cleared.").
		Value(&overwrite).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return overwrite, err
}

// expandGlobs resolves each pattern with doublestar. Plain paths that exist
// are kept even when they contain glob metacharacters.
func expandGlobs(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		if info, err := os.Stat(pattern); err == nil && !info.IsDir() {
			files = append(files, pattern)
			continue
		}

		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		files = append(files, matches...)
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}
