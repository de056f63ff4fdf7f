package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHook_Run(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
		want map[string]string
	}{
		{
			name: "background context adds nothing",
			ctx:  context.Background(),
			want: map[string]string{},
		},
		{
			name: "track only",
			ctx:  WithTrackID(context.Background(), "t1"),
			want: map[string]string{"track_id": "t1"},
		},
		{
			name: "track and group",
			ctx:  WithChangeGroup(WithTrackID(context.Background(), "t1"), "g1"),
			want: map[string]string{"track_id": "t1", "change_group": "g1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf).Hook(ContextHook{})
			logger.Info().Ctx(tt.ctx).Msg("hello")

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

			for _, key := range []string{"track_id", "change_group"} {
				want, ok := tt.want[key]
				if !ok {
					assert.NotContains(t, entry, key)
					continue
				}
				assert.Equal(t, want, entry[key])
			}
		})
	}
}
