package tui

import (
	"fmt"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/cuesync/internal/core/drag"
	"github.com/colonyops/cuesync/internal/core/srt"
	"github.com/colonyops/cuesync/internal/core/styles"
	"github.com/colonyops/cuesync/internal/core/subtitle"
	"github.com/colonyops/cuesync/internal/core/timeline"
	"github.com/colonyops/cuesync/pkg/kv"
)

// Screen rows.
const (
	rowHeader = 0
	rowLabels = 1
	rowRuler  = 2
	rowBlocks = 3
	blockRows = 2
	rowLines  = rowBlocks + blockRows + 1
	lineRows  = 5
)

// Zoom limits, in timeline pixels (cells) per 10ms.
const (
	minScale = 0.0125
	maxScale = 1.0
)

// tickSteps are the candidate ruler intervals in milliseconds.
var tickSteps = []int64{100, 250, 500, 1000, 2000, 5000, 10000, 15000, 30000, 60000, 120000, 300000}

// minTickGap is the fewest cells between two labelled ticks.
const minTickGap = 10

// timelineLayout maps screen columns to media time for one frame.
type timelineLayout struct {
	span  timeline.VisibleSpan
	width int
}

func newTimelineLayout(current int64, width int, scale float64, panDelta int64) timelineLayout {
	return timelineLayout{
		span:  timeline.NewVisibleSpan(current, width, scale, panDelta),
		width: width,
	}
}

// blockCols returns the first and last column of s. A block is always at
// least one cell wide.
func (l timelineLayout) blockCols(s *subtitle.Subtitle) (int, int) {
	x0 := l.span.X(s.StartTime)
	x1 := l.span.X(s.EndTime) - 1
	return x0, max(x1, x0)
}

// visible returns the synced subtitles drawn in this frame.
func (l timelineLayout) visible(list *subtitle.List) []*subtitle.Subtitle {
	return list.ForTime(l.span.StartTime, l.span.EndTime+1)
}

// hit classifies a press at (x, y). ok is false outside the timeline rows.
func (l timelineLayout) hit(list *subtitle.List, x, y int) (drag.Hit, bool) {
	if y < rowLabels || y >= rowBlocks+blockRows || x < 0 || x >= l.width {
		return drag.Hit{}, false
	}
	h := drag.Hit{Target: drag.TargetBlank, ClickTime: l.span.TimeAt(x)}
	if y < rowBlocks {
		return h, true
	}

	for _, s := range l.visible(list) {
		x0, x1 := l.blockCols(s)
		if x < x0 || x > x1 {
			continue
		}
		next := list.Next(s)
		touchesNext := next != nil && next.IsSynced() && next.StartTime == s.EndTime
		prev := list.Prev(s)
		touchesPrev := prev != nil && prev.IsSynced() && prev.EndTime == s.StartTime

		switch {
		case x1-x0 < 1:
			h.Target = drag.TargetBody
		case x == x1 && touchesNext:
			h.Target = drag.TargetDualHandle
		case x == x0 && touchesPrev:
			h.Target = drag.TargetDualHandle
			s = prev
		case x == x0:
			h.Target = drag.TargetStartHandle
		case x == x1:
			h.Target = drag.TargetEndHandle
		default:
			h.Target = drag.TargetBody
		}
		h.Subtitle = s
		return h, true
	}
	return h, true
}

// tickStep returns the smallest ruler interval leaving minTickGap cells
// between labels.
func tickStep(scale float64) int64 {
	for _, step := range tickSteps {
		if timeline.ToPixels(step, scale) >= minTickGap {
			return step
		}
	}
	return tickSteps[len(tickSteps)-1]
}

// formatClock renders ms as m:ss, with tenths when sub-second ticks are in use.
func formatClock(ms int64, tenths bool) string {
	neg := ms < 0
	if neg {
		ms = -ms
	}
	s := fmt.Sprintf("%d:%02d", ms/60000, ms/1000%60)
	if tenths {
		s += fmt.Sprintf(".%d", ms/100%10)
	}
	if neg {
		s = "-" + s
	}
	return s
}

// renderRuler returns the label and tick rows.
func (l timelineLayout) renderRuler(cursor int64) (string, string) {
	step := tickStep(l.span.Scale)
	labels := newGrid(l.width, " ", styles.RulerLabelStyle)
	ticks := newGrid(l.width, styles.GlyphRuler, styles.RulerStyle)
	cursorStyle := ticks.style(styles.CursorStyle)

	first := (l.span.StartTime/step + 1) * step
	if first < 0 {
		first = 0
	}
	for t := first; t <= l.span.EndTime; t += step {
		x := l.span.X(t)
		ticks.set(x, styles.GlyphTick, 0)
		label := formatClock(t, step < 1000)
		labels.write(x, ansi.StringWidth(label), label, 0)
	}
	ticks.set(l.span.X(cursor), styles.GlyphCursor, cursorStyle)
	return labels.String(), ticks.String()
}

// blockState picks the style of a subtitle block.
type blockState int

const (
	blockNormal blockState = iota
	blockSelected
	blockMoving
	blockAdjusting
	blockDraft
)

func (b blockState) style() lipgloss.Style {
	switch b {
	case blockSelected:
		return styles.SubtitleSelectedStyle
	case blockMoving:
		return styles.SubtitleMovingStyle
	case blockAdjusting:
		return styles.SubtitleAdjustingStyle
	case blockDraft:
		return styles.SubtitleDraftStyle
	default:
		return styles.SubtitleStyle
	}
}

// block is one subtitle interval to draw.
type block struct {
	id         string
	start, end int64
	content    string
	state      blockState
}

// renderBlocks draws blocks and the playback cursor into blockRows rows.
func (l timelineLayout) renderBlocks(blocks []block, cursor int64, labels *kv.Store[string, string]) []string {
	rows := make([]*grid, blockRows)
	for i := range rows {
		rows[i] = newGrid(l.width, " ", lipgloss.NewStyle())
	}

	for _, b := range blocks {
		x0 := l.span.X(b.start)
		x1 := max(l.span.X(b.end)-1, x0)
		sts := make([]int, len(rows))
		for i, row := range rows {
			sts[i] = row.style(b.state.style())
			row.fill(x0, x1+1, " ", sts[i])
			if x1 > x0 {
				row.set(x0, styles.GlyphHandle, sts[i])
				row.set(x1, styles.GlyphHandle, sts[i])
			}
		}
		inner := x1 - x0 - 1
		if inner > 0 {
			rows[0].write(x0+1, inner, blockLabel(labels, b.id, b.content, inner), sts[0])
			if inner > 8 {
				d := fmt.Sprintf("%.1fs", float64(b.end-b.start)/1000)
				rows[1].write(x0+1, inner, d, sts[1])
			}
		}
	}

	out := make([]string, len(rows))
	for i, row := range rows {
		row.set(l.span.X(cursor), styles.GlyphCursor, row.style(styles.CursorStyle))
		out[i] = row.String()
	}
	return out
}

// blockLabel returns the single-line content of a subtitle truncated to
// width cells. Results are cached per subtitle and width.
func blockLabel(cache *kv.Store[string, string], id, content string, width int) string {
	key := fmt.Sprintf("%s/%d", id, width)
	return cache.GetOrCompute(key, func() string {
		flat := strings.Join(strings.Fields(content), " ")
		return ansi.Truncate(flat, width, "…")
	})
}

// timeLabel formats a subtitle edge for the line pane.
func timeLabel(ms int64) string {
	if ms == subtitle.Open {
		return "--:--:--,---"
	}
	return srt.FormatTime(ms)
}
