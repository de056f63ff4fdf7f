package doctor

import (
	"context"
	"fmt"

	"github.com/colonyops/cuesync/internal/core/subtitle"
	"github.com/colonyops/cuesync/internal/core/track"
)

// TracksCheck verifies the timing invariants of every stored track: synced
// subtitles are ordered, never overlap and last at least the minimum
// duration. Overlaps and short subtitles are fixable when trimming or
// extending stays within the neighbours.
type TracksCheck struct {
	store       track.Store
	minDuration int64
	autofix     bool
}

// NewTracksCheck creates a tracks check.
func NewTracksCheck(store track.Store, minDuration int64, autofix bool) *TracksCheck {
	return &TracksCheck{store: store, minDuration: minDuration, autofix: autofix}
}

func (c *TracksCheck) Name() string {
	return "Tracks"
}

type trackIssue struct {
	item CheckItem
	fix  func()
}

func (c *TracksCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	summaries, err := c.store.List(ctx)
	if err != nil {
		result.Items = append(result.Items, CheckItem{Label: "database", Status: StatusFail, Detail: err.Error()})
		return result
	}
	if len(summaries) == 0 {
		result.Items = append(result.Items, CheckItem{Label: "tracks", Status: StatusPass, Detail: "no tracks imported"})
		return result
	}

	for _, sum := range summaries {
		t, err := c.store.Load(ctx, sum.Name)
		if err != nil {
			result.Items = append(result.Items, CheckItem{Label: sum.Name, Status: StatusFail, Detail: err.Error()})
			continue
		}

		issues := c.inspect(t)
		if len(issues) == 0 {
			result.Items = append(result.Items, CheckItem{
				Label:  sum.Name,
				Status: StatusPass,
				Detail: fmt.Sprintf("%d/%d synced", sum.Synced, sum.Total),
			})
			continue
		}

		fixed := 0
		for _, is := range issues {
			if c.autofix && is.fix != nil {
				is.fix()
				fixed++
				is.item.Status = StatusPass
				is.item.Detail += " (fixed)"
				is.item.Fixable = false
			}
			result.Items = append(result.Items, is.item)
		}
		if fixed > 0 {
			if err := c.store.Save(ctx, t); err != nil {
				result.Items = append(result.Items, CheckItem{Label: sum.Name, Status: StatusFail, Detail: "save fixes: " + err.Error()})
			}
		}
	}

	return result
}

// inspect reports the invariant violations of t. Fixes mutate t in place.
func (c *TracksCheck) inspect(t track.Track) []trackIssue {
	var (
		issues []trackIssue
		synced []int
	)
	for i, s := range t.Subtitles {
		if s.IsSynced() {
			synced = append(synced, i)
		}
	}

	issue := func(status Status, idx int, format string, args ...any) *trackIssue {
		issues = append(issues, trackIssue{item: CheckItem{
			Label:  t.Name,
			Status: status,
			Detail: fmt.Sprintf("#%d ", idx+1) + fmt.Sprintf(format, args...),
		}})
		return &issues[len(issues)-1]
	}

	for n, i := range synced {
		s := t.Subtitles[i]
		var prev, next *subtitle.Subtitle
		if n > 0 {
			prev = t.Subtitles[synced[n-1]]
		}
		if n+1 < len(synced) {
			next = t.Subtitles[synced[n+1]]
		}

		if prev != nil && s.StartTime < prev.StartTime {
			issue(StatusFail, i, "starts before #%d", synced[n-1]+1)
			continue
		}

		if next != nil && s.EndTime > next.StartTime && next.StartTime >= s.StartTime {
			is := issue(StatusFail, i, "overlaps #%d by %dms", synced[n+1]+1, s.EndTime-next.StartTime)
			if next.StartTime-s.StartTime >= c.minDuration {
				end := next.StartTime
				is.item.Fixable = true
				is.fix = func() { s.EndTime = end }
			}
			continue
		}

		if s.Duration() < c.minDuration {
			is := issue(StatusWarn, i, "lasts %dms, below the %dms minimum", s.Duration(), c.minDuration)
			end := s.StartTime + c.minDuration
			if (next == nil || end <= next.StartTime) && (t.DurationMS <= 0 || end <= t.DurationMS) {
				is.item.Fixable = true
				is.fix = func() { s.EndTime = end }
			}
		}

		if t.DurationMS > 0 && s.EndTime > t.DurationMS {
			issue(StatusWarn, i, "ends after the media (%dms)", t.DurationMS)
		}
	}

	return issues
}
