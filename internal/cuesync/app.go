// Package cuesync wires the stores and services the CLI commands and the
// editor consume.
package cuesync

import (
	"github.com/colonyops/cuesync/internal/core/config"
	"github.com/colonyops/cuesync/internal/core/kv"
	"github.com/colonyops/cuesync/internal/core/logging"
	"github.com/colonyops/cuesync/internal/core/video"
	"github.com/colonyops/cuesync/internal/data/db"
	"github.com/colonyops/cuesync/internal/data/stores"
	"github.com/colonyops/cuesync/pkg/executil"
)

// App is the central entry point for all cuesync operations.
// Commands and the editor consume App instead of cherry-picking raw dependencies.
type App struct {
	Tracks *TrackService
	Doctor *DoctorService

	Journal *stores.JournalStore
	Views   *kv.TypedKV[kv.ViewState]
	State   *kv.TypedKV[string]
	Prober  *video.Prober
	Config  *config.Config
	DB      *db.DB
}

// NewApp constructs an App backed by database.
func NewApp(cfg *config.Config, database *db.DB, exec executil.Executor) *App {
	var (
		tracks  = stores.NewTrackStore(database)
		journal = stores.NewJournalStore(database)
		kvStore = stores.NewKVStore(database)
		prober  = video.NewProber(exec, cfg.Media.FFprobePath)
	)

	return &App{
		Tracks:  NewTrackService(tracks, journal, logging.Component("tracks")),
		Doctor:  NewDoctorService(cfg, database, tracks),
		Journal: journal,
		Views:   kv.Views(kvStore),
		State:   kv.App(kvStore),
		Prober:  prober,
		Config:  cfg,
		DB:      database,
	}
}
