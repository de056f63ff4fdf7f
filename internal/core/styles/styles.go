// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
)

// Timeline glyphs.
const (
	GlyphPlaying   = "▶"
	GlyphPaused    = "⏸"
	GlyphCursor    = "│"
	GlyphHandle    = "▏"
	GlyphTick      = "┴"
	GlyphRuler     = "─"
	GlyphUnsynced  = "○"
	GlyphSynced    = "●"
	GlyphDraft     = "◐"
	GlyphSeparator = "·"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color

	// ColorDraft marks a subtitle being synced live.
	ColorDraft color.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	CommandStyle       lipgloss.Style
	DividerStyle       lipgloss.Style

	// Timeline styles.
	RulerStyle             lipgloss.Style
	RulerLabelStyle        lipgloss.Style
	CursorStyle            lipgloss.Style
	SubtitleStyle          lipgloss.Style
	SubtitleSelectedStyle  lipgloss.Style
	SubtitleMovingStyle    lipgloss.Style
	SubtitleAdjustingStyle lipgloss.Style
	SubtitleDraftStyle     lipgloss.Style

	// Text pane styles.
	LineStyle         lipgloss.Style
	LineCurrentStyle  lipgloss.Style
	LineUnsyncedStyle lipgloss.Style
	LineTimeStyle     lipgloss.Style

	// Status and notification styles.
	StatusBarStyle    lipgloss.Style
	StatusTimeStyle   lipgloss.Style
	StatusModeStyle   lipgloss.Style
	NoticeInfoStyle   lipgloss.Style
	NoticeWarnStyle   lipgloss.Style
	NoticeErrorStyle  lipgloss.Style
	HelpKeyStyle      lipgloss.Style
	HelpDescStyle     lipgloss.Style
	ModalStyle        lipgloss.Style
	ModalTitleStyle   lipgloss.Style
	ModalHelpStyle    lipgloss.Style
	ViewSelectedStyle lipgloss.Style
	ViewNormalStyle   lipgloss.Style
)

// ColorPool is used for deterministic color hashing of regions.
var ColorPool []color.Color

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error
	ColorDraft = Blend(p.Surface, p.Warning, 0.5)

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	CommandStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	RulerStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	RulerLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	CursorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)
	SubtitleStyle = lipgloss.NewStyle().
		Background(ColorSurface).
		Foreground(ColorForeground)
	SubtitleSelectedStyle = lipgloss.NewStyle().
		Background(ColorPrimary).
		Foreground(ColorBackground)
	SubtitleMovingStyle = lipgloss.NewStyle().
		Background(ColorWarning).
		Foreground(ColorBackground)
	SubtitleAdjustingStyle = lipgloss.NewStyle().
		Background(ColorSecondary).
		Foreground(ColorBackground)
	SubtitleDraftStyle = lipgloss.NewStyle().
		Background(ColorDraft).
		Foreground(ColorForeground).
		Italic(true)

	LineStyle = lipgloss.NewStyle().Foreground(ColorForeground)
	LineCurrentStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	LineUnsyncedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	LineTimeStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
		Background(ColorSurface).
		Foreground(ColorForeground).
		Padding(0, 1)
	StatusTimeStyle = lipgloss.NewStyle().
		Background(ColorSurface).
		Foreground(ColorPrimary).
		Bold(true)
	StatusModeStyle = lipgloss.NewStyle().
		Background(ColorWarning).
		Foreground(ColorBackground).
		Padding(0, 1)
	NoticeInfoStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	NoticeWarnStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	NoticeErrorStyle = lipgloss.NewStyle().Foreground(ColorError)
	HelpKeyStyle = lipgloss.NewStyle().Foreground(ColorSecondary)
	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)

	ViewSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	ViewNormalStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ColorPool = []color.Color{
		ColorPrimary,
		ColorSecondary,
		ColorSuccess,
		ColorWarning,
		ColorError,
		ColorMuted,
	}
}

// ColorForString returns a deterministic color for a given string.
// The same string always produces the same color.
func ColorForString(s string) color.Color {
	var hash uint32
	for _, c := range s {
		hash = hash*31 + uint32(c)
	}
	return ColorPool[hash%uint32(len(ColorPool))]
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
