package tui

import (
	"context"
	"sync"

	"github.com/colonyops/cuesync/internal/core/eventbus"
	"github.com/colonyops/cuesync/internal/core/history"
	"github.com/colonyops/cuesync/internal/core/logging"
	"github.com/colonyops/cuesync/internal/core/notify"
	"github.com/colonyops/cuesync/internal/core/subtitle"
)

type journalBatch struct {
	group   string
	source  string
	changes []subtitle.Change
}

// Journaler writes applied timing batches to the history store on a
// background goroutine. Drag updates are held per change group and written
// once, with the final timings, when the drag ends.
type Journaler struct {
	store    history.Store
	track    string
	failures *NotificationBuffer

	held map[string][]subtitle.Change

	// pending is unbounded so a slow store never blocks the UI goroutine.
	mu      sync.Mutex
	pending []journalBatch
	closed  bool
	wake    chan struct{}
	wg      sync.WaitGroup
}

// NewJournaler creates a journaler for track. Write failures are pushed to
// failures.
func NewJournaler(store history.Store, track string, failures *NotificationBuffer) *Journaler {
	return &Journaler{
		store:    store,
		track:    track,
		failures: failures,
		held:     make(map[string][]subtitle.Change),
		wake:     make(chan struct{}, 1),
	}
}

// Subscribe hooks the journaler to timing and drag events on bus.
func (j *Journaler) Subscribe(bus *eventbus.EventBus) {
	bus.SubscribeTimingsChanged(func(p eventbus.TimingsChangedPayload) {
		changes := detach(p.Changes)
		if p.Source == "drag" && p.ChangeGroup != "" {
			j.held[p.ChangeGroup] = mergeChanges(j.held[p.ChangeGroup], changes)
			return
		}
		j.enqueue(journalBatch{group: p.ChangeGroup, source: p.Source, changes: changes})
	})
	bus.SubscribeDragEnded(func(p eventbus.DragEndedPayload) {
		j.release(p.ChangeGroup)
	})
}

// Start runs the writer until Close.
func (j *Journaler) Start(ctx context.Context) {
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		log := logging.Component("journal")
		for range j.wake {
			for {
				batches, closed := j.take()
				for _, batch := range batches {
					err := j.store.Record(ctx, j.track, batch.group, batch.source, batch.changes)
					if err != nil {
						log.Error().Err(err).Str("change_group", batch.group).Msg("journal write failed")
						if j.failures != nil {
							j.failures.Pushf(notify.LevelError, "journal: %v", err)
						}
					}
				}
				if len(batches) == 0 {
					if closed {
						return
					}
					break
				}
			}
		}
	}()
}

// take removes and returns every pending batch.
func (j *Journaler) take() ([]journalBatch, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	batches := j.pending
	j.pending = nil
	return batches, j.closed
}

// Held returns the number of drag groups waiting for their drag to end.
func (j *Journaler) Held() int {
	return len(j.held)
}

// Close writes held groups and waits for the writer to drain.
func (j *Journaler) Close() {
	for group := range j.held {
		j.release(group)
	}
	j.mu.Lock()
	j.closed = true
	j.mu.Unlock()
	j.signal()
	j.wg.Wait()
}

func (j *Journaler) release(group string) {
	changes, ok := j.held[group]
	if !ok {
		return
	}
	delete(j.held, group)
	j.enqueue(journalBatch{group: group, source: "drag", changes: changes})
}

func (j *Journaler) enqueue(b journalBatch) {
	if len(b.changes) == 0 {
		return
	}
	j.mu.Lock()
	j.pending = append(j.pending, b)
	j.mu.Unlock()
	j.signal()
}

func (j *Journaler) signal() {
	select {
	case j.wake <- struct{}{}:
	default:
	}
}

// detach copies changes so the writer goroutine never reads subtitles the
// UI goroutine is mutating.
func detach(changes []subtitle.Change) []subtitle.Change {
	out := make([]subtitle.Change, len(changes))
	for i, c := range changes {
		out[i] = subtitle.Change{
			Subtitle:  &subtitle.Subtitle{ID: c.Subtitle.ID},
			StartTime: c.StartTime,
			EndTime:   c.EndTime,
		}
	}
	return out
}

// mergeChanges keeps one change per subtitle, the latest winning.
func mergeChanges(held, changes []subtitle.Change) []subtitle.Change {
	for _, c := range changes {
		replaced := false
		for i := range held {
			if held[i].Subtitle.ID == c.Subtitle.ID {
				held[i] = c
				replaced = true
				break
			}
		}
		if !replaced {
			held = append(held, c)
		}
	}
	return held
}
