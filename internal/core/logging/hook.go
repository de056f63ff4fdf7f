package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts track_id and change_group from context and adds them to log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if trackID := GetTrackID(ctx); trackID != "" {
		e.Str("track_id", trackID)
	}

	if group := GetChangeGroup(ctx); group != "" {
		e.Str("change_group", group)
	}
}
