// Package syncer assigns timings to unsynced subtitles from the playback
// position and snaps existing boundaries to it.
package syncer

import (
	"github.com/rs/zerolog"

	"github.com/colonyops/cuesync/internal/core/eventbus"
	"github.com/colonyops/cuesync/internal/core/subtitle"
)

// DefaultMaxAdjustment is how far, in milliseconds, AdjustClosestTiming
// reaches for a boundary.
const DefaultMaxAdjustment int64 = 1000

// Options configures an Engine. Zero values use the package defaults.
type Options struct {
	MinDuration     int64
	DefaultDuration int64
	MaxAdjustment   int64
	Logger          zerolog.Logger
}

// Engine runs sync operations against a sequence. It holds no state between
// calls other than its collaborators.
type Engine struct {
	seq  subtitle.Sequence
	bus  *eventbus.EventBus
	log  zerolog.Logger
	opts Options
}

// New creates an engine editing seq and publishing batches on bus.
func New(seq subtitle.Sequence, bus *eventbus.EventBus, opts Options) *Engine {
	if opts.MinDuration <= 0 {
		opts.MinDuration = subtitle.DefaultMinDuration
	}
	if opts.DefaultDuration <= 0 {
		opts.DefaultDuration = subtitle.DefaultDefaultDuration
	}
	if opts.MaxAdjustment <= 0 {
		opts.MaxAdjustment = DefaultMaxAdjustment
	}
	if bus == nil {
		bus = eventbus.New()
	}
	return &Engine{seq: seq, bus: bus, log: opts.Logger, opts: opts}
}

// SyncUnsyncedStart starts the first unsynced subtitle at now. When that
// subtitle was already started it is closed at now instead and the following
// subtitle starts where it ends. Returns whether anything changed.
func (e *Engine) SyncUnsyncedStart(now int64) bool {
	s := e.seq.FirstUnsynced()
	if s == nil {
		return false
	}

	var changes []subtitle.Change
	start := now
	if s.StartSynced() {
		start = max(now, s.StartTime+e.opts.MinDuration)
		changes = append(changes, subtitle.Change{Subtitle: s, StartTime: s.StartTime, EndTime: start})
		s = e.seq.Next(s)
	}
	if s != nil && !s.IsSynced() {
		changes = append(changes, subtitle.Change{Subtitle: s, StartTime: start, EndTime: subtitle.Open})
	}
	if len(changes) == 0 {
		return false
	}

	e.log.Debug().Int64("now", now).Int("changes", len(changes)).Msg("sync start")
	e.apply(changes, "")
	return true
}

// SyncUnsyncedEnd closes the started unsynced subtitle at now, keeping at
// least the minimum duration. Returns whether anything changed.
func (e *Engine) SyncUnsyncedEnd(now int64) bool {
	s := e.seq.FirstUnsynced()
	if s == nil || !s.StartSynced() {
		return false
	}
	end := max(now, s.StartTime+e.opts.MinDuration)

	e.log.Debug().Int64("now", now).Int64("end", end).Msg("sync end")
	e.seq.UpdateSubtitleTime(s, s.StartTime, end)
	e.publish([]subtitle.Change{{Subtitle: s, StartTime: s.StartTime, EndTime: end}}, "")
	return true
}

// UnsyncedShown reports whether the open unsynced subtitle is on screen at
// now, that is no synced subtitle is still running and one is waiting.
func (e *Engine) UnsyncedShown(now int64) bool {
	if e.seq.FirstUnsynced() == nil {
		return false
	}
	last := e.seq.LastSynced()
	return last == nil || last.EndTime < now
}

// UpcomingUnsynced returns the unsynced subtitle to present as next.
func (e *Engine) UpcomingUnsynced(now int64) *subtitle.Subtitle {
	if e.UnsyncedShown(now) {
		return e.seq.SecondUnsynced()
	}
	return e.seq.FirstUnsynced()
}

// DraftUnsynced returns the interval the open unsynced subtitle would get if
// it were synced at now. ok is false when every subtitle is synced.
func (e *Engine) DraftUnsynced(now int64) (start, end int64, ok bool) {
	s := e.seq.FirstUnsynced()
	if s == nil {
		return 0, 0, false
	}
	if !s.StartSynced() {
		return now, now + e.opts.DefaultDuration, true
	}
	return s.StartTime, max(now, s.StartTime+e.opts.MinDuration), true
}

func (e *Engine) apply(changes []subtitle.Change, group string) {
	e.seq.UpdateSubtitleTimes(changes, group)
	e.publish(changes, group)
}

func (e *Engine) publish(changes []subtitle.Change, group string) {
	e.bus.PublishTimingsChanged(eventbus.TimingsChangedPayload{
		Changes:     changes,
		ChangeGroup: group,
		Source:      "sync",
	})
}
