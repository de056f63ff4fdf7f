// Package config handles configuration loading and validation for cuesync.
package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/cuesync/internal/core/styles"
)

// Keybinding contexts.
const (
	ContextDefault = "default"
	ContextEdit    = "edit"
)

// Built-in action names for keybindings.
const (
	ActionPlayPause     = "play-pause"
	ActionSeekBack      = "seek-back"
	ActionSeekForward   = "seek-forward"
	ActionSyncStart     = "sync-start"
	ActionSyncEnd       = "sync-end"
	ActionAdjustClosest = "adjust-closest"
	ActionUndo          = "undo"
	ActionRedo          = "redo"
	ActionZoomIn        = "zoom-in"
	ActionZoomOut       = "zoom-out"
	ActionSelectPrev    = "select-prev"
	ActionSelectNext    = "select-next"
	ActionEditMove      = "edit-move"
	ActionEditStart     = "edit-start"
	ActionEditEnd       = "edit-end"
	ActionEditLeft      = "edit-left"
	ActionEditRight     = "edit-right"
	ActionEditLeftFine  = "edit-left-fine"
	ActionEditRightFine = "edit-right-fine"
	ActionEditStop      = "edit-stop"
	ActionSave          = "save"
	ActionHelp          = "help"
	ActionQuit          = "quit"
)

var actions = []string{
	ActionPlayPause, ActionSeekBack, ActionSeekForward,
	ActionSyncStart, ActionSyncEnd, ActionAdjustClosest,
	ActionUndo, ActionRedo, ActionZoomIn, ActionZoomOut,
	ActionSelectPrev, ActionSelectNext,
	ActionEditMove, ActionEditStart, ActionEditEnd,
	ActionEditLeft, ActionEditRight, ActionEditLeftFine, ActionEditRightFine, ActionEditStop,
	ActionSave, ActionHelp, ActionQuit,
}

// Actions returns every built-in action name.
func Actions() []string {
	out := make([]string, len(actions))
	copy(out, actions)
	return out
}

// defaultKeybindings provides built-in keybindings that users can override.
var defaultKeybindings = map[string]map[string]Keybinding{
	ContextDefault: {
		"space":        {Action: ActionPlayPause, Help: "play/pause"},
		"left":         {Action: ActionSeekBack, Help: "seek back"},
		"right":        {Action: ActionSeekForward, Help: "seek forward"},
		"down":         {Action: ActionSyncStart, Help: "sync start"},
		"up":           {Action: ActionSyncEnd, Help: "sync end"},
		"a":            {Action: ActionAdjustClosest, Help: "adjust closest"},
		"ctrl z":       {Action: ActionUndo, Help: "undo"},
		"ctrl shift z": {Action: ActionRedo, Help: "redo"},
		"ctrl y":       {Action: ActionRedo, Help: "redo"},
		"+ | =":        {Action: ActionZoomIn, Help: "zoom in"},
		"-":            {Action: ActionZoomOut, Help: "zoom out"},
		"[":            {Action: ActionSelectPrev, Help: "previous"},
		"]":            {Action: ActionSelectNext, Help: "next"},
		"m":            {Action: ActionEditMove, Help: "move"},
		"b":            {Action: ActionEditStart, Help: "edit start"},
		"e":            {Action: ActionEditEnd, Help: "edit end"},
		"ctrl s":       {Action: ActionSave, Help: "save"},
		"?":            {Action: ActionHelp, Help: "help"},
		"q | ctrl c":   {Action: ActionQuit, Help: "quit"},
	},
	ContextEdit: {
		"left":        {Action: ActionEditLeft, Help: "-100ms"},
		"right":       {Action: ActionEditRight, Help: "+100ms"},
		"shift left":  {Action: ActionEditLeftFine, Help: "-10ms"},
		"shift right": {Action: ActionEditRightFine, Help: "+10ms"},
		"esc | enter": {Action: ActionEditStop, Help: "done"},
	},
}

// Config holds the application configuration.
type Config struct {
	Timeline    TimelineConfig                   `yaml:"timeline"`
	Keybindings map[string]map[string]Keybinding `yaml:"keybindings"`
	Database    DatabaseConfig                   `yaml:"database"`
	TUI         TUIConfig                        `yaml:"tui"`
	Media       MediaConfig                      `yaml:"media"`
	DataDir     string                           `yaml:"-"` // set by caller, not from config file
}

// TimelineConfig tunes the timing engine. Times are milliseconds. One
// terminal cell is one timeline pixel, so the default scale shows 100ms per
// cell.
type TimelineConfig struct {
	Scale             float64 `yaml:"scale"`
	MinDurationMS     int64   `yaml:"min_duration_ms"`
	DefaultDurationMS int64   `yaml:"default_duration_ms"`
	MaxAdjustmentMS   int64   `yaml:"max_adjustment_ms"`
	SnapTolerancePX   int     `yaml:"snap_tolerance_px"`
	StepMS            int64   `yaml:"step_ms"`
	FineStepMS        int64   `yaml:"fine_step_ms"`
	SeekStepMS        int64   `yaml:"seek_step_ms"`
	MovingDelayMS     int     `yaml:"moving_delay_ms"`
	TapThresholdMS    int     `yaml:"tap_threshold_ms"`
}

// DatabaseConfig holds SQLite connection settings.
type DatabaseConfig struct {
	MaxOpenConns  int `yaml:"max_open_conns"`
	MaxIdleConns  int `yaml:"max_idle_conns"`
	BusyTimeoutMS int `yaml:"busy_timeout_ms"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme     string `yaml:"theme"`
	RefreshMS int    `yaml:"refresh_ms"`
	Watch     bool   `yaml:"watch"` // reload config.yaml on change
}

// MediaConfig holds media probing settings.
type MediaConfig struct {
	FFprobePath string `yaml:"ffprobe_path"`
}

// Keybinding maps a key string to a built-in action.
type Keybinding struct {
	Action string `yaml:"action"` // built-in action name
	Help   string `yaml:"help"`   // help text shown in TUI
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeline: TimelineConfig{
			Scale:             0.1,
			MinDurationMS:     250,
			DefaultDurationMS: 2000,
			MaxAdjustmentMS:   1000,
			SnapTolerancePX:   2,
			StepMS:            100,
			FineStepMS:        10,
			SeekStepMS:        2000,
			MovingDelayMS:     100,
			TapThresholdMS:    250,
		},
		Database: DatabaseConfig{
			MaxOpenConns:  1,
			MaxIdleConns:  1,
			BusyTimeoutMS: 5000,
		},
		TUI: TUIConfig{
			Theme:     styles.DefaultTheme,
			RefreshMS: 50,
		},
		Media: MediaConfig{
			FFprobePath: "ffprobe",
		},
		Keybindings: map[string]map[string]Keybinding{},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	// Merge user keybindings into defaults (user config overrides defaults)
	cfg.Keybindings = mergeKeybindings(defaultKeybindings, cfg.Keybindings)

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	t, dt := &c.Timeline, defaults.Timeline
	if t.Scale == 0 {
		t.Scale = dt.Scale
	}
	if t.MinDurationMS == 0 {
		t.MinDurationMS = dt.MinDurationMS
	}
	if t.DefaultDurationMS == 0 {
		t.DefaultDurationMS = dt.DefaultDurationMS
	}
	if t.MaxAdjustmentMS == 0 {
		t.MaxAdjustmentMS = dt.MaxAdjustmentMS
	}
	if t.SnapTolerancePX == 0 {
		t.SnapTolerancePX = dt.SnapTolerancePX
	}
	if t.StepMS == 0 {
		t.StepMS = dt.StepMS
	}
	if t.FineStepMS == 0 {
		t.FineStepMS = dt.FineStepMS
	}
	if t.SeekStepMS == 0 {
		t.SeekStepMS = dt.SeekStepMS
	}
	if t.MovingDelayMS == 0 {
		t.MovingDelayMS = dt.MovingDelayMS
	}
	if t.TapThresholdMS == 0 {
		t.TapThresholdMS = dt.TapThresholdMS
	}

	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeoutMS == 0 {
		c.Database.BusyTimeoutMS = defaults.Database.BusyTimeoutMS
	}

	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.RefreshMS == 0 {
		c.TUI.RefreshMS = defaults.TUI.RefreshMS
	}
	if c.Media.FFprobePath == "" {
		c.Media.FFprobePath = defaults.Media.FFprobePath
	}
}

// mergeKeybindings merges user keybindings into defaults per context.
// User keybindings override defaults for the same key string.
func mergeKeybindings(defaults, user map[string]map[string]Keybinding) map[string]map[string]Keybinding {
	result := make(map[string]map[string]Keybinding, len(defaults)+len(user))

	for ctx, bindings := range defaults {
		result[ctx] = maps.Clone(bindings)
	}

	for ctx, bindings := range user {
		if result[ctx] == nil {
			result[ctx] = make(map[string]Keybinding, len(bindings))
		}
		maps.Copy(result[ctx], bindings)
	}

	return result
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	t := c.Timeline
	if t.Scale <= 0 {
		return fmt.Errorf("timeline.scale must be positive")
	}
	if t.MinDurationMS < 1 {
		return fmt.Errorf("timeline.min_duration_ms must be at least 1")
	}
	if t.DefaultDurationMS < t.MinDurationMS {
		return fmt.Errorf("timeline.default_duration_ms must be at least min_duration_ms")
	}
	if t.MaxAdjustmentMS < 1 {
		return fmt.Errorf("timeline.max_adjustment_ms must be at least 1")
	}
	if t.SnapTolerancePX < 0 {
		return fmt.Errorf("timeline.snap_tolerance_px cannot be negative")
	}
	if t.StepMS < 1 || t.FineStepMS < 1 || t.SeekStepMS < 1 {
		return fmt.Errorf("timeline steps must be at least 1ms")
	}

	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("database.max_open_conns must be at least 1")
	}

	if _, ok := styles.GetPalette(c.TUI.Theme); !ok {
		return fmt.Errorf("tui.theme %q is not a known theme", c.TUI.Theme)
	}

	for ctx, bindings := range c.Keybindings {
		for key, kb := range bindings {
			if kb.Action == "" {
				return fmt.Errorf("keybinding %q in %q must have an action", key, ctx)
			}
			if !isValidAction(kb.Action) {
				return fmt.Errorf("keybinding %q in %q has invalid action %q", key, ctx, kb.Action)
			}
		}
	}

	return nil
}

// MinDuration returns the minimum subtitle duration in milliseconds.
func (c *Config) MinDuration() int64 { return c.Timeline.MinDurationMS }

// MovingDelay returns the delay before a dragged subtitle shows as moving.
func (c *Config) MovingDelay() time.Duration {
	return time.Duration(c.Timeline.MovingDelayMS) * time.Millisecond
}

// TapThreshold returns the longest press still treated as a tap.
func (c *Config) TapThreshold() time.Duration {
	return time.Duration(c.Timeline.TapThresholdMS) * time.Millisecond
}

// RefreshInterval returns the TUI playback refresh interval.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.TUI.RefreshMS) * time.Millisecond
}

// DatabaseFile returns the path to the SQLite database.
func (c *Config) DatabaseFile() string {
	return filepath.Join(c.DataDir, "cuesync.db")
}

func isValidAction(action string) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}
