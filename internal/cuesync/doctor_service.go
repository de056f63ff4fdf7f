package cuesync

import (
	"context"
	"path/filepath"

	"github.com/colonyops/cuesync/internal/core/config"
	"github.com/colonyops/cuesync/internal/core/doctor"
	"github.com/colonyops/cuesync/internal/core/track"
	"github.com/colonyops/cuesync/internal/data/db"
)

// DoctorService runs health checks on the cuesync setup.
type DoctorService struct {
	config *config.Config
	db     *db.DB
	tracks track.Store
}

// NewDoctorService creates a new DoctorService.
func NewDoctorService(cfg *config.Config, database *db.DB, tracks track.Store) *DoctorService {
	return &DoctorService{config: cfg, db: database, tracks: tracks}
}

// RunChecks executes all doctor checks and returns results.
func (d *DoctorService) RunChecks(ctx context.Context, configPath string, autofix bool) []doctor.Result {
	checks := []doctor.Check{
		doctor.NewConfigCheck(d.config, configPath),
		doctor.NewDatabaseCheck(filepath.Join(d.config.DataDir, db.FileName), d.schemaStatus()),
		doctor.NewToolsCheck(d.config.Media.FFprobePath),
		doctor.NewTracksCheck(d.tracks, d.config.MinDuration(), autofix),
	}
	return doctor.RunAll(ctx, checks)
}

func (d *DoctorService) schemaStatus() doctor.SchemaStatusFunc {
	if d.db == nil {
		return nil
	}
	return func(ctx context.Context) (int, int, error) {
		st, err := d.db.MigrationStatus(ctx)
		return st.Current, st.Latest, err
	}
}
