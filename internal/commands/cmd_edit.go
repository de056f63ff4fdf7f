package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/cuesync/internal/core/kv"
	"github.com/colonyops/cuesync/internal/core/track"
	"github.com/colonyops/cuesync/internal/cuesync"
	"github.com/colonyops/cuesync/internal/profiler"
	"github.com/colonyops/cuesync/internal/tui"
	"github.com/colonyops/cuesync/pkg/iojson"
)

type EditCmd struct {
	flags *Flags
	app   *cuesync.App

	// flags
	media      string
	durationMS int64
}

// NewEditCmd creates a new edit command
func NewEditCmd(flags *Flags, app *cuesync.App) *EditCmd {
	return &EditCmd{flags: flags, app: app}
}

// Flags returns the editor flags. They are registered on the edit command
// and on the root command, where edit is the default action.
func (cmd *EditCmd) Flags() []cli.Flag {
	return []cli.Flag{
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
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("CUESYNC_PROFILER_PORT"),
			Destination: &cmd.flags.ProfilerPort,
		},
	}
}

// Register adds the edit command to the application
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Usage:     "Open the timing editor",
		UsageText: "cuesync edit [options] [track]",
		Description: `Opens a track in the timeline editor. Drag subtitle blocks to move them,
drag their edges to resize, press down/up to sync the next unsynced subtitle
to the playback position. Press ? inside the editor for every keybinding.

Without a track argument the track is picked interactively. The track needs a
duration: it is read from the track, probed from --media or set with
--duration.`,
		Flags:         cmd.Flags(),
		ShellComplete: TrackNameCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

// Run executes the editor. Exported for use as default command.
func (cmd *EditCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *EditCmd) run(ctx context.Context, c *cli.Command) error {
	name, err := cmd.resolveTrack(ctx, c.Args().First())
	if err != nil || name == "" {
		return err
	}

	t, err := cmd.app.Tracks.Load(ctx, name)
	if err != nil {
		return err
	}
	if err := cmd.applyMedia(ctx, &t); err != nil {
		return err
	}

	if cmd.flags.ProfilerPort > 0 {
		profServer := profiler.New(cmd.flags.ProfilerPort)
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		log.Info().
			Str("url", fmt.Sprintf("http://%s/debug/pprof/", profServer.Addr())).
			Msg("profiler endpoint available")
	}

	m, err := tui.New(cmd.app.Config, tui.Options{
		Track:      t,
		Tracks:     cmd.app.Tracks.Store(),
		Journal:    cmd.app.Tracks.Journal(),
		Views:      cmd.app.Views,
		ConfigPath: cmd.flags.ConfigPath,
	})
	if err != nil {
		return fmt.Errorf("create editor: %w", err)
	}

	_, runErr := tea.NewProgram(m, tea.WithContext(ctx)).Run()

	// Close saves pending edits even when the program failed.
	closeErr := m.Close(context.WithoutCancel(ctx))
	if err := cmd.app.State.Set(context.WithoutCancel(ctx), kv.KeyLastTrack, t.Name); err != nil {
		log.Warn().Err(err).Msg("failed to remember last track")
	}

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) && !errors.Is(runErr, tea.ErrInterrupted) {
		return errors.Join(fmt.Errorf("run editor: %w", runErr), closeErr)
	}
	return closeErr
}

// resolveTrack returns the track to open. Without an argument the user
// picks one; the last edited track is preselected.
func (cmd *EditCmd) resolveTrack(ctx context.Context, arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}

	tracks, err := cmd.app.Tracks.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list tracks: %w", err)
	}
	if len(tracks) == 0 {
		return "", fmt.Errorf("no tracks found; run 'cuesync import' first")
	}

	last, _ := cmd.app.State.GetOr(ctx, kv.KeyLastTrack, "")
	if len(tracks) == 1 {
		return tracks[0].Name, nil
	}
	if !iojson.IsTerminal(os.Stdin) {
		if last != "" {
			return last, nil
		}
		return "", fmt.Errorf("track name is required when stdin is not a terminal")
	}

	options := make([]huh.Option[string], 0, len(tracks))
	for _, t := range tracks {
		label := fmt.Sprintf("%s  (%d/%d synced)", t.Name, t.Synced, t.Total)
		options = append(options, huh.NewOption(label, t.Name).Selected(t.Name == last))
	}

	var name string
	err = huh.NewSelect[string]().
		Title("Open track").
		Options(options...).
		Value(&name).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return "", nil
	}
	return name, err
}

// applyMedia resolves the track duration from the flags, falling back to
// probing the media file stored with the track.
func (cmd *EditCmd) applyMedia(ctx context.Context, t *track.Track) error {
	if cmd.media != "" {
		t.MediaPath = cmd.media
	}

	media := ""
	if cmd.media != "" || t.DurationMS <= 0 {
		media = t.MediaPath
	}
	duration, err := resolveDuration(ctx, cmd.app, media, cmd.durationMS)
	if err != nil {
		return err
	}
	if duration > 0 {
		t.DurationMS = duration
	}

	if t.DurationMS <= 0 {
		return fmt.Errorf("track %q has no duration; pass --media or --duration", t.Name)
	}
	return nil
}

// resolveDuration returns durationMS when set, else the probed duration of
// media, else 0.
func resolveDuration(ctx context.Context, app *cuesync.App, media string, durationMS int64) (int64, error) {
	if durationMS > 0 {
		return durationMS, nil
	}
	if media == "" {
		return 0, nil
	}

	if !app.Prober.Available() {
		return 0, fmt.Errorf("cannot read duration of %s: ffprobe not found, pass --duration", media)
	}

	m, err := app.Prober.Probe(ctx, media)
	if err != nil {
		return 0, fmt.Errorf("read media duration: %w", err)
	}
	log.Debug().Str("media", media).Int64("duration_ms", m.DurationMS).Msg("probed media")
	return m.DurationMS, nil
}
