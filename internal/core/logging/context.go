package logging

import "context"

type contextKey string

const (
	trackIDKey     contextKey = "track_id"
	changeGroupKey contextKey = "change_group"
)

// WithTrackID adds a track ID to the context.
func WithTrackID(ctx context.Context, trackID string) context.Context {
	return context.WithValue(ctx, trackIDKey, trackID)
}

// WithChangeGroup adds an undo change group to the context.
func WithChangeGroup(ctx context.Context, group string) context.Context {
	return context.WithValue(ctx, changeGroupKey, group)
}

// GetTrackID retrieves the track ID from the context.
// Returns empty string if not present.
func GetTrackID(ctx context.Context) string {
	if id, ok := ctx.Value(trackIDKey).(string); ok {
		return id
	}
	return ""
}

// GetChangeGroup retrieves the change group from the context.
// Returns empty string if not present.
func GetChangeGroup(ctx context.Context) string {
	if g, ok := ctx.Value(changeGroupKey).(string); ok {
		return g
	}
	return ""
}
