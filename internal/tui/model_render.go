package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/cuesync/internal/core/config"
	"github.com/colonyops/cuesync/internal/core/drag"
	"github.com/colonyops/cuesync/internal/core/notify"
	"github.com/colonyops/cuesync/internal/core/styles"
	"github.com/colonyops/cuesync/internal/core/subtitle"
)

// View renders the editor.
func (m *Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	v := tea.NewView(m.content())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.ReportFocus = true
	return v
}

func (m *Model) content() string {
	out := m.render()
	if m.showHelp {
		out = m.overlayHelp(out)
	}
	return out
}

func (m *Model) render() string {
	l := m.layout()
	now := m.clock.CurrentTime()

	lines := []string{m.renderHeader()}
	labels, ticks := l.renderRuler(now)
	lines = append(lines, labels, ticks)
	lines = append(lines, l.renderBlocks(m.blocks(l), now, m.labels)...)
	lines = append(lines, "")
	lines = append(lines, m.renderLines()...)

	footer := []string{}
	if t := m.renderToasts(); t != "" {
		footer = append(footer, t)
	}
	footer = append(footer, m.renderStatus())

	body := strings.Join(lines, "\n")
	if m.height > 0 {
		pad := m.height - lipgloss.Height(body) - len(footer)
		if pad > 0 {
			body += strings.Repeat("\n", pad)
		}
	}
	return body + "\n" + strings.Join(footer, "\n")
}

func (m *Model) renderHeader() string {
	glyph := styles.GlyphPaused
	if m.clock.IsPlaying() {
		glyph = styles.GlyphPlaying
	}

	synced := 0
	for _, s := range m.list.Subtitles() {
		if s.IsSynced() {
			synced++
		}
	}

	name := m.track.Name
	if name == "" {
		name = "untitled"
	}
	if m.dirty {
		name += "*"
	}

	parts := []string{
		styles.CommandHeaderStyle.Render(glyph + " " + name),
		styles.StatusTimeStyle.Render(formatClock(m.clock.CurrentTime(), true)),
		styles.DividerStyle.Render("/ " + formatClock(m.clock.Duration(), true)),
		styles.CommandStyle.Render(fmt.Sprintf("%s %d/%d", styles.GlyphSynced, synced, m.list.Len())),
		styles.DividerStyle.Render(fmt.Sprintf("%dms/cell", max(int64(10/m.scale), 1))),
	}
	return ansi.Truncate(strings.Join(parts, " "), m.timelineWidth(), "…")
}

// blocks collects the synced subtitles in view plus the draft interval of
// the subtitle being synced.
func (m *Model) blocks(l timelineLayout) []block {
	env := m.factory.Env()
	var out []block
	for _, s := range l.visible(m.list) {
		b := block{id: s.ID, start: s.StartTime, end: s.EndTime, content: s.Content}
		switch {
		case env.Markers.Has(s, drag.MarkerMoving):
			b.state = blockMoving
		case env.Markers.Has(s, drag.MarkerAdjustingStart), env.Markers.Has(s, drag.MarkerAdjustingEnd):
			b.state = blockAdjusting
		case env.Selection.Contains(s):
			b.state = blockSelected
		}
		out = append(out, b)
	}

	now := m.clock.CurrentTime()
	if first := m.list.FirstUnsynced(); first != nil && (first.StartSynced() || m.syncer.UnsyncedShown(now)) {
		if start, end, ok := m.syncer.DraftUnsynced(now); ok {
			out = append(out, block{id: first.ID, start: start, end: end, content: first.Content, state: blockDraft})
		}
	}
	return out
}

// renderLines lists the subtitles around the playback position.
func (m *Model) renderLines() []string {
	now := m.clock.CurrentTime()
	active := m.list.At(now)
	anchor := active
	if anchor == nil {
		anchor = m.list.FirstAfter(now)
	}
	if anchor == nil {
		anchor = m.list.FirstUnsynced()
	}

	start := max(m.list.Index(anchor)-1, 0)
	width := m.timelineWidth()
	out := make([]string, 0, lineRows)
	for i := start; i < start+lineRows; i++ {
		s := m.list.Get(i)
		if s == nil {
			out = append(out, "")
			continue
		}
		out = append(out, m.renderLine(s, s == active, width))
	}
	return out
}

func (m *Model) renderLine(s *subtitle.Subtitle, active bool, width int) string {
	glyph := styles.GlyphUnsynced
	switch {
	case s.IsSynced():
		glyph = styles.GlyphSynced
	case s.StartSynced():
		glyph = styles.GlyphDraft
	}

	times := styles.LineTimeStyle.Render(fmt.Sprintf("%s → %s", timeLabel(s.StartTime), timeLabel(s.EndTime)))
	textWidth := max(width-lipgloss.Width(times)-4, 0)
	text := ansi.Truncate(strings.Join(strings.Fields(s.Content), " "), textWidth, "…")

	style := styles.LineStyle
	switch {
	case active:
		style = styles.LineCurrentStyle
	case !s.IsSynced():
		style = styles.LineUnsyncedStyle
	}
	return fmt.Sprintf("%s %s  %s", style.Render(glyph), times, style.Render(text))
}

func (m *Model) renderToasts() string {
	toasts := m.toasts.Toasts()
	if len(toasts) == 0 {
		return ""
	}
	t := toasts[len(toasts)-1]

	style := styles.NoticeInfoStyle
	switch t.notification.Level {
	case notify.LevelWarning:
		style = styles.NoticeWarnStyle
	case notify.LevelError:
		style = styles.NoticeErrorStyle
	}
	msg := t.notification.Message
	if t.count > 1 {
		msg = fmt.Sprintf("%s (x%d)", msg, t.count)
	}
	return ansi.Truncate(style.Render(msg), m.timelineWidth(), "…")
}

func (m *Model) renderStatus() string {
	ctx := config.ContextDefault
	mode := ""
	if s := m.ctrl.Active(); s != nil {
		mode = strings.ToUpper(string(s.Kind()))
		if m.ctrl.Keyboard() != nil {
			ctx = config.ContextEdit
		}
	}

	m.help.Styles.ShortKey = styles.HelpKeyStyle
	m.help.Styles.ShortDesc = styles.HelpDescStyle
	m.help.Styles.ShortSeparator = styles.DividerStyle
	helpLine := m.help.ShortHelpView(m.helpKeys.Short(ctx))

	if mode == "" {
		return helpLine
	}
	return styles.StatusModeStyle.Render(mode) + " " + helpLine
}

func (m *Model) overlayHelp(background string) string {
	m.help.Styles.FullKey = styles.HelpKeyStyle
	m.help.Styles.FullDesc = styles.HelpDescStyle
	m.help.Styles.FullSeparator = styles.DividerStyle

	modal := styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Keybindings"),
		"",
		m.help.FullHelpView(m.helpKeys.Full()),
		styles.ModalHelpStyle.Render("esc/? close"),
	))

	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	bgLayer := lipgloss.NewLayer(background)
	modalLayer := lipgloss.NewLayer(modal)
	x := max((w-lipgloss.Width(modal))/2, 0)
	y := max((h-lipgloss.Height(modal))/2, 0)
	modalLayer.X(x).Y(y).Z(1)

	return lipgloss.NewCompositor(bgLayer, modalLayer).Render()
}
