package tui

import (
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/fsnotify/fsnotify"

	"github.com/colonyops/cuesync/internal/core/config"
)

// configReloadedMsg is sent when the config file changed on disk. Err is set
// when the new file does not load; the running config is kept in that case.
type configReloadedMsg struct {
	cfg *config.Config
	err error
}

// ConfigWatcher reloads the config file when it changes.
type ConfigWatcher struct {
	watcher     *fsnotify.Watcher
	path        string
	dataDir     string
	debounceDur time.Duration
}

// NewConfigWatcher watches the directory holding path. Editors commonly
// replace the file on save, which a watch on the file itself would lose.
func NewConfigWatcher(path, dataDir string) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return &ConfigWatcher{
		watcher:     watcher,
		path:        filepath.Clean(path),
		dataDir:     dataDir,
		debounceDur: 150 * time.Millisecond,
	}, nil
}

// Next returns a command that waits for the next change and reloads.
// The model re-issues it after every configReloadedMsg.
func (w *ConfigWatcher) Next() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != w.path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}

				// Debounce: wait for changes to settle
				time.Sleep(w.debounceDur)

				drained := false
				for !drained {
					select {
					case <-w.watcher.Events:
					default:
						drained = true
					}
				}

				cfg, err := config.Load(w.path, w.dataDir)
				return configReloadedMsg{cfg: cfg, err: err}

			case _, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
			}
		}
	}
}

// Close stops the watcher.
func (w *ConfigWatcher) Close() error {
	return w.watcher.Close()
}
