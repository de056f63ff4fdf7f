package drag

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/cuesync/internal/core/eventbus"
	"github.com/colonyops/cuesync/internal/core/subtitle"
	"github.com/colonyops/cuesync/internal/core/video"
)

// Defaults for Env fields left zero.
const (
	DefaultMovingDelay = 100 * time.Millisecond
)

// Env holds the collaborators sessions act on.
type Env struct {
	Seq       subtitle.Sequence
	Player    video.Player
	Bus       *eventbus.EventBus
	Markers   *Markers
	Selection *Selection
	Scheduler Scheduler
	Logger    zerolog.Logger

	MinDuration int64
	MovingDelay time.Duration
}

func (e *Env) withDefaults() *Env {
	out := *e
	if out.Bus == nil {
		out.Bus = eventbus.New()
	}
	if out.Markers == nil {
		out.Markers = NewMarkers(out.Bus)
	}
	if out.Selection == nil {
		out.Selection = NewSelection(out.Bus)
	}
	if out.Scheduler == nil {
		out.Scheduler = &ManualScheduler{}
	}
	if out.MinDuration <= 0 {
		out.MinDuration = subtitle.DefaultMinDuration
	}
	if out.MovingDelay <= 0 {
		out.MovingDelay = DefaultMovingDelay
	}
	return &out
}

func (e *Env) apply(changes []subtitle.Change, group, source string) {
	e.Seq.UpdateSubtitleTimes(changes, group)
	e.Bus.PublishTimingsChanged(eventbus.TimingsChangedPayload{
		Changes:     changes,
		ChangeGroup: group,
		Source:      source,
	})
}

func (e *Env) seek(t int64) {
	e.Player.Seek(t)
	e.Bus.PublishVideoSeeked(eventbus.VideoSeekedPayload{Time: t})
}
