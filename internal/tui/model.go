// Package tui implements the interactive timing editor: a scrolling timeline
// of subtitle blocks driven by the mouse and the configured keybindings.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/cuesync/internal/core/config"
	"github.com/colonyops/cuesync/internal/core/drag"
	"github.com/colonyops/cuesync/internal/core/eventbus"
	"github.com/colonyops/cuesync/internal/core/history"
	"github.com/colonyops/cuesync/internal/core/keys"
	corekv "github.com/colonyops/cuesync/internal/core/kv"
	"github.com/colonyops/cuesync/internal/core/logging"
	"github.com/colonyops/cuesync/internal/core/notify"
	"github.com/colonyops/cuesync/internal/core/styles"
	"github.com/colonyops/cuesync/internal/core/subtitle"
	"github.com/colonyops/cuesync/internal/core/syncer"
	"github.com/colonyops/cuesync/internal/core/track"
	"github.com/colonyops/cuesync/internal/core/video"
	"github.com/colonyops/cuesync/pkg/kv"
)

const labelCacheSize = 2048

// Options configures the editor.
type Options struct {
	Track      track.Track
	Tracks     track.Store                       // nil disables saving
	Journal    history.Store                     // nil disables the timing journal
	Views      *corekv.TypedKV[corekv.ViewState] // nil disables view state restore
	ConfigPath string                            // watched when cfg.TUI.Watch is set
	Clock      *video.Clock                      // defaults to a clock over Track.DurationMS
	Now        func() time.Time
}

// trackSavedMsg reports the result of a save.
type trackSavedMsg struct {
	err error
}

// Model is the editor's Bubble Tea model. All editor state is owned by the
// Update goroutine; sessions, the sync engine and the bus run synchronously
// inside it.
type Model struct {
	cfg  *config.Config
	opts Options
	log  zerolog.Logger
	now  func() time.Time

	track   track.Track
	list    *subtitle.List
	clock   *video.Clock
	bus     *eventbus.EventBus
	sched   *TickScheduler
	factory *drag.Factory
	ctrl    *drag.Controller
	syncer  *syncer.Engine
	keys    *keys.Keys

	help     help.Model
	helpKeys HelpKeys
	toasts   *ToastController
	failures *NotificationBuffer
	journal  *Journaler
	watcher  *ConfigWatcher
	labels   *kv.Store[string, string]

	width    int
	height   int
	scale    float64
	panDelta int64
	showHelp bool
	dirty    bool
	quitting bool

	// cmds collects commands queued by key callbacks during one Update.
	cmds []tea.Cmd
}

var _ tea.Model = (*Model)(nil)

// New builds the editor for opts.Track.
func New(cfg *config.Config, opts Options) (*Model, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	clock := opts.Clock
	if clock == nil {
		clock = video.NewClock(opts.Track.DurationMS)
	}

	m := &Model{
		cfg:      cfg,
		opts:     opts,
		log:      logging.Component("tui"),
		now:      opts.Now,
		track:    opts.Track,
		list:     subtitle.NewList(opts.Track.Subtitles...),
		clock:    clock,
		bus:      eventbus.New(),
		sched:    NewTickScheduler(),
		keys:     keys.New(),
		help:     help.New(),
		toasts:   NewToastController(),
		failures: NewNotificationBuffer(),
		labels:   kv.NewBounded[string, string](labelCacheSize),
		scale:    cfg.Timeline.Scale,
	}

	eventbus.RegisterDebugLogger(m.bus, logging.Component("eventbus"))
	eventbus.NewNotificationRouter(m.bus).Register()

	m.factory = drag.NewFactory(drag.Env{
		Seq:         m.list,
		Player:      m.clock,
		Bus:         m.bus,
		Scheduler:   m.sched,
		Logger:      logging.Component("drag"),
		MinDuration: cfg.MinDuration(),
		MovingDelay: cfg.MovingDelay(),
	}, nil)
	m.ctrl = drag.NewController(m.factory, drag.ControllerOptions{
		Scale:        m.scale,
		TolerancePX:  cfg.Timeline.SnapTolerancePX,
		Step:         cfg.Timeline.StepMS,
		FineStep:     cfg.Timeline.FineStepMS,
		TapThreshold: cfg.TapThreshold(),
	})
	m.syncer = syncer.New(m.list, m.bus, syncer.Options{
		MinDuration:     cfg.MinDuration(),
		DefaultDuration: cfg.Timeline.DefaultDurationMS,
		MaxAdjustment:   cfg.Timeline.MaxAdjustmentMS,
		Logger:          logging.Component("syncer"),
	})

	m.subscribe()

	if err := m.applyKeybindings(cfg); err != nil {
		return nil, err
	}

	if opts.Journal != nil {
		m.journal = NewJournaler(opts.Journal, opts.Track.Name, m.failures)
		m.journal.Subscribe(m.bus)
		m.journal.Start(context.Background())
	}

	if cfg.TUI.Watch && opts.ConfigPath != "" {
		w, err := NewConfigWatcher(opts.ConfigPath, cfg.DataDir)
		if err != nil {
			m.log.Warn().Err(err).Str("path", opts.ConfigPath).Msg("config watcher disabled")
		} else {
			m.watcher = w
		}
	}

	m.restoreView()
	return m, nil
}

func (m *Model) subscribe() {
	m.bus.SubscribeTimingsChanged(func(eventbus.TimingsChangedPayload) {
		m.dirty = true
	})
	m.bus.SubscribeTimelineShifted(func(p eventbus.TimelineShiftedPayload) {
		m.panDelta = p.DeltaMS
	})
	m.bus.SubscribeDragStarted(func(p eventbus.DragStartedPayload) {
		if p.Keyboard {
			m.keys.EnableContext(config.ContextEdit)
		}
	})
	m.bus.SubscribeDragEnded(func(p eventbus.DragEndedPayload) {
		if p.Keyboard {
			m.keys.DisableContext(config.ContextEdit)
		}
	})
	m.bus.SubscribeNotificationPublished(func(p eventbus.NotificationPublishedPayload) {
		m.toasts.Push(notify.Notification{Level: p.Level, Message: p.Message, CreatedAt: m.now()})
	})
}

// applyKeybindings rebinds every context and rebuilds the help entries.
func (m *Model) applyKeybindings(cfg *config.Config) error {
	if err := bindKeys(m.keys, cfg.Keybindings, m.handlers()); err != nil {
		return err
	}
	m.helpKeys = newHelpKeys(cfg.Keybindings)
	return nil
}

// restoreView applies the stored zoom and position for the track.
func (m *Model) restoreView() {
	if m.opts.Views == nil || m.track.Name == "" {
		return
	}
	state, err := m.opts.Views.GetOr(context.Background(), m.track.Name, corekv.ViewState{})
	if err != nil {
		m.log.Warn().Err(err).Msg("view state not restored")
		return
	}
	if state.Scale > 0 {
		m.setScale(state.Scale)
	}
	if state.PositionMS > 0 {
		m.clock.Seek(state.PositionMS)
	}
	if state.SelectedID != "" {
		for _, s := range m.list.Subtitles() {
			if s.ID == state.SelectedID {
				m.factory.Env().Selection.Select(s)
				break
			}
		}
	}
}

// Init starts the playback clock and background watchers.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		schedulePlaybackTick(m.cfg.RefreshInterval()),
		m.failures.WaitForSignal(),
	}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.Next())
	}
	return tea.Batch(cmds...)
}

// Update handles one message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetWidth(msg.Width)
	case tea.KeyPressMsg:
		m.handleKey(msg)
	case tea.MouseClickMsg:
		m.handleMouseDown(msg.Mouse())
	case tea.MouseMotionMsg:
		m.ctrl.PointerMove(msg.Mouse().X)
	case tea.MouseReleaseMsg:
		m.ctrl.PointerUp(m.now())
	case tea.MouseWheelMsg:
		m.handleWheel(msg.Mouse())
	case tea.BlurMsg:
		m.ctrl.PointerLeave()
	case playbackTickMsg:
		m.clock.Tick()
		m.toasts.Tick(m.cfg.RefreshInterval())
		m.queue(schedulePlaybackTick(m.cfg.RefreshInterval()))
	case scheduledMsg:
		m.sched.Run(msg.id)
	case drainNotificationsMsg:
		for _, n := range m.failures.Drain() {
			m.toasts.Push(n)
		}
		m.queue(m.failures.WaitForSignal())
	case trackSavedMsg:
		m.handleSaved(msg)
	case configReloadedMsg:
		m.handleConfigReloaded(msg)
	}

	cmds := append(m.cmds, m.sched.Cmd())
	m.cmds = nil
	return m, tea.Batch(cmds...)
}

func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.cmds = append(m.cmds, cmd)
	}
}

func (m *Model) handleKey(msg tea.KeyPressMsg) {
	str := msg.String()

	if m.showHelp {
		if str == "esc" || str == "?" || str == "q" {
			m.showHelp = false
		}
		return
	}
	// esc abandons a mouse drag before any binding sees it.
	if str == "esc" && m.ctrl.Mouse() != nil {
		m.ctrl.PointerLeave()
		return
	}

	if !m.keys.Trigger(keys.FromCombo(str)) {
		m.log.Debug().Str("key", str).Msg("unbound key")
	}
}

func (m *Model) handleMouseDown(mouse tea.Mouse) {
	hit, ok := m.layout().hit(m.list, mouse.X, mouse.Y)
	if !ok {
		return
	}
	btn := drag.ButtonPrimary
	if mouse.Button != tea.MouseLeft {
		btn = drag.ButtonSecondary
	}
	if hit.Subtitle != nil && btn == drag.ButtonPrimary {
		m.factory.Env().Selection.Select(hit.Subtitle)
	}
	m.ctrl.PointerDown(hit, btn, mouse.X, m.now())
}

func (m *Model) handleWheel(mouse tea.Mouse) {
	if m.ctrl.Active() != nil {
		return
	}
	switch mouse.Button {
	case tea.MouseWheelUp:
		m.zoom(2)
	case tea.MouseWheelDown:
		m.zoom(0.5)
	}
}

func (m *Model) handleSaved(msg trackSavedMsg) {
	if msg.err != nil {
		m.notify(notify.LevelError, "save failed: %v", msg.err)
		return
	}
	m.notify(notify.LevelInfo, "saved %s", m.track.Name)
}

func (m *Model) handleConfigReloaded(msg configReloadedMsg) {
	if m.watcher != nil {
		m.queue(m.watcher.Next())
	}
	if msg.err != nil {
		m.notify(notify.LevelError, "config not reloaded: %v", msg.err)
		return
	}

	if p, ok := styles.GetPalette(msg.cfg.TUI.Theme); ok {
		styles.SetTheme(p)
		m.labels.Clear()
	}
	if err := m.applyKeybindings(msg.cfg); err != nil {
		m.notify(notify.LevelError, "keybindings not reloaded: %v", err)
		_ = m.applyKeybindings(m.cfg)
		return
	}
	m.cfg.Keybindings = msg.cfg.Keybindings
	m.cfg.TUI.Theme = msg.cfg.TUI.Theme
	m.notify(notify.LevelInfo, "config reloaded")
}

func (m *Model) notify(level notify.Level, format string, args ...any) {
	m.bus.PublishNotificationPublished(eventbus.NotificationPublishedPayload{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
}

func (m *Model) layout() timelineLayout {
	return newTimelineLayout(m.clock.CurrentTime(), m.timelineWidth(), m.scale, m.panDelta)
}

func (m *Model) timelineWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

func (m *Model) setScale(scale float64) {
	m.scale = min(max(scale, minScale), maxScale)
	m.ctrl.SetScale(m.scale)
}

func (m *Model) zoom(factor float64) {
	m.setScale(m.scale * factor)
	m.labels.Clear()
}

// snapshotTrack copies the current subtitles so a save can run off the
// Update goroutine.
func (m *Model) snapshotTrack() track.Track {
	t := m.track
	t.DurationMS = m.clock.Duration()
	subs := m.list.Subtitles()
	t.Subtitles = make([]*subtitle.Subtitle, len(subs))
	for i, s := range subs {
		c := *s
		t.Subtitles[i] = &c
	}
	return t
}

func (m *Model) saveCmd() tea.Cmd {
	if m.opts.Tracks == nil {
		return nil
	}
	t := m.snapshotTrack()
	m.dirty = false
	store := m.opts.Tracks
	return func() tea.Msg {
		return trackSavedMsg{err: store.Save(context.Background(), t)}
	}
}

// Dirty reports whether there are timing changes not yet saved.
func (m *Model) Dirty() bool {
	return m.dirty
}

// Track returns a copy of the track with its current timings.
func (m *Model) Track() track.Track {
	return m.snapshotTrack()
}

// Close ends live sessions, saves unsaved timings and the view state, and
// waits for the journal to drain. It is called after the program exits.
func (m *Model) Close(ctx context.Context) error {
	m.ctrl.PointerLeave()
	m.ctrl.CancelKeyboard()

	var errs []error
	if m.dirty && m.opts.Tracks != nil {
		if err := m.opts.Tracks.Save(ctx, m.snapshotTrack()); err != nil {
			errs = append(errs, fmt.Errorf("save track: %w", err))
		} else {
			m.dirty = false
		}
	}

	if m.opts.Views != nil && m.track.Name != "" {
		state := corekv.ViewState{Scale: m.scale, PositionMS: m.clock.CurrentTime()}
		if sel := m.factory.Env().Selection.Selected(); len(sel) > 0 {
			state.SelectedID = sel[0].ID
		}
		if err := m.opts.Views.Set(ctx, m.track.Name, state); err != nil {
			errs = append(errs, fmt.Errorf("save view state: %w", err))
		}
	}

	if m.journal != nil {
		m.journal.Close()
		m.journal = nil
	}
	if m.watcher != nil {
		_ = m.watcher.Close()
		m.watcher = nil
	}
	return errors.Join(errs...)
}
