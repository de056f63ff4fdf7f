package cuesync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/cuesync/internal/core/history"
	"github.com/colonyops/cuesync/internal/core/srt"
	"github.com/colonyops/cuesync/internal/core/subtitle"
	"github.com/colonyops/cuesync/internal/core/track"
	"github.com/colonyops/cuesync/internal/core/validate"
	"github.com/colonyops/cuesync/pkg/iojson"
)

// ErrTrackExists is returned by Import when the target track already exists
// and overwriting was not requested.
var ErrTrackExists = errors.New("track already exists")

// Import formats.
const (
	FormatSRT  = "srt"
	FormatText = "text"
	FormatJSON = "json"
)

// ImportOptions configures Import.
type ImportOptions struct {
	Name       string // track name (defaults to the file name without extension)
	Format     string // srt or text (empty = by extension)
	MediaPath  string
	DurationMS int64
	Overwrite  bool
}

// TrackService orchestrates track import, export and inspection.
type TrackService struct {
	tracks  track.Store
	journal history.Store
	log     zerolog.Logger
}

// NewTrackService creates a TrackService.
func NewTrackService(tracks track.Store, journal history.Store, log zerolog.Logger) *TrackService {
	return &TrackService{tracks: tracks, journal: journal, log: log}
}

// TrackName derives a track name from a file path.
func TrackName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DetectFormat picks the import format for path from its extension.
func DetectFormat(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".srt") {
		return FormatSRT
	}
	return FormatText
}

// Exists reports whether a track called name is stored.
func (s *TrackService) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.tracks.Load(ctx, name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, track.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Import parses the subtitle file at path and stores it as a track.
// Overwriting a track clears its journal.
func (s *TrackService) Import(ctx context.Context, path string, opts ImportOptions) (track.Track, error) {
	if opts.Name == "" {
		opts.Name = TrackName(path)
	}
	if opts.Format == "" {
		opts.Format = DetectFormat(path)
	}
	if err := validate.TrackNameField("name", opts.Name); err != nil {
		return track.Track{}, fmt.Errorf("import %s: %w", path, err)
	}

	exists, err := s.Exists(ctx, opts.Name)
	if err != nil {
		return track.Track{}, err
	}
	if exists && !opts.Overwrite {
		return track.Track{}, fmt.Errorf("import %s: %w: %s", path, ErrTrackExists, opts.Name)
	}

	f, err := os.Open(path)
	if err != nil {
		return track.Track{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var subs []*subtitle.Subtitle
	switch opts.Format {
	case FormatSRT:
		subs, err = srt.Parse(f)
	case FormatText:
		subs, err = srt.ParseText(f)
	default:
		return track.Track{}, fmt.Errorf("unknown import format %q", opts.Format)
	}
	if err != nil {
		return track.Track{}, fmt.Errorf("parse %s: %w", path, err)
	}

	t := track.Track{
		Name:       opts.Name,
		MediaPath:  opts.MediaPath,
		DurationMS: opts.DurationMS,
		Subtitles:  subs,
	}
	if err := s.tracks.Save(ctx, t); err != nil {
		return track.Track{}, err
	}
	if exists {
		if err := s.journal.Clear(ctx, t.Name); err != nil {
			return track.Track{}, fmt.Errorf("clear journal: %w", err)
		}
	}

	s.log.Info().
		Str("track", t.Name).
		Str("format", opts.Format).
		Int("subtitles", len(subs)).
		Msg("imported track")
	return t, nil
}

// Export writes the track as SRT or JSON. Unsynced subtitles cannot be
// expressed in SRT; their count is returned.
func (s *TrackService) Export(ctx context.Context, name, format string, w io.Writer) (skipped int, err error) {
	t, err := s.tracks.Load(ctx, name)
	if err != nil {
		return 0, err
	}

	switch format {
	case "", FormatSRT:
		return srt.Write(w, t.Subtitles)
	case FormatJSON:
		return 0, iojson.WriteWith(w, io.Discard, t)
	default:
		return 0, fmt.Errorf("unknown export format %q", format)
	}
}

// Restore stores a track read from a JSON export. Subtitles without an ID
// get a fresh one; timings must be unsynced or a valid interval.
func (s *TrackService) Restore(ctx context.Context, t track.Track) error {
	if err := validate.TrackNameField("name", t.Name); err != nil {
		return fmt.Errorf("restore: %w", err)
	}

	for i, sub := range t.Subtitles {
		if sub == nil {
			return fmt.Errorf("restore: subtitle %d is null", i)
		}
		if sub.ID == "" {
			sub.ID = uuid.NewString()
		}
		if sub.EndTime == subtitle.Open {
			continue
		}
		if sub.StartTime < 0 || sub.EndTime <= sub.StartTime {
			return fmt.Errorf("restore: subtitle %d has invalid timing [%d, %d]", i, sub.StartTime, sub.EndTime)
		}
	}

	if err := s.tracks.Save(ctx, t); err != nil {
		return err
	}
	s.log.Info().Str("track", t.Name).Int("subtitles", len(t.Subtitles)).Msg("restored track")
	return nil
}

// Load returns the named track.
func (s *TrackService) Load(ctx context.Context, name string) (track.Track, error) {
	return s.tracks.Load(ctx, name)
}

// Save stores t.
func (s *TrackService) Save(ctx context.Context, t track.Track) error {
	return s.tracks.Save(ctx, t)
}

// List returns every stored track.
func (s *TrackService) List(ctx context.Context) ([]track.Summary, error) {
	return s.tracks.List(ctx)
}

// Delete removes the track. The store drops its journal with it.
func (s *TrackService) Delete(ctx context.Context, name string) error {
	if err := s.tracks.Delete(ctx, name); err != nil {
		return err
	}
	s.log.Info().Str("track", name).Msg("deleted track")
	return nil
}

// History returns the newest journal entries of the named track.
func (s *TrackService) History(ctx context.Context, name string, limit int) ([]history.Entry, error) {
	if _, err := s.tracks.Load(ctx, name); err != nil {
		return nil, err
	}
	return s.journal.List(ctx, name, limit)
}

// Journal exposes the journal store the editor records into.
func (s *TrackService) Journal() history.Store {
	return s.journal
}

// Store exposes the track store the editor saves through.
func (s *TrackService) Store() track.Store {
	return s.tracks
}
