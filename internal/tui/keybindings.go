package tui

import (
	"fmt"
	"slices"
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/colonyops/cuesync/internal/core/config"
	"github.com/colonyops/cuesync/internal/core/keys"
)

// actionHelp is the help text used when a binding sets none.
var actionHelp = map[string]string{
	config.ActionPlayPause:     "play/pause",
	config.ActionSeekBack:      "seek back",
	config.ActionSeekForward:   "seek forward",
	config.ActionSyncStart:     "sync start",
	config.ActionSyncEnd:       "sync end",
	config.ActionAdjustClosest: "snap boundary",
	config.ActionUndo:          "undo",
	config.ActionRedo:          "redo",
	config.ActionZoomIn:        "zoom in",
	config.ActionZoomOut:       "zoom out",
	config.ActionSelectPrev:    "prev subtitle",
	config.ActionSelectNext:    "next subtitle",
	config.ActionEditMove:      "move",
	config.ActionEditStart:     "edit start",
	config.ActionEditEnd:       "edit end",
	config.ActionEditLeft:      "earlier",
	config.ActionEditRight:     "later",
	config.ActionEditLeftFine:  "earlier (fine)",
	config.ActionEditRightFine: "later (fine)",
	config.ActionEditStop:      "done",
	config.ActionSave:          "save",
	config.ActionHelp:          "help",
	config.ActionQuit:          "quit",
}

// shortHelpActions are shown in the status bar per context.
var shortHelpActions = map[string][]string{
	config.ContextDefault: {
		config.ActionPlayPause,
		config.ActionSyncStart,
		config.ActionSyncEnd,
		config.ActionUndo,
		config.ActionHelp,
		config.ActionQuit,
	},
	config.ContextEdit: {
		config.ActionEditLeft,
		config.ActionEditRight,
		config.ActionEditLeftFine,
		config.ActionEditStop,
	},
}

// bindKeys replaces the bindings of every configured context, resolving
// actions through handlers.
func bindKeys(k *keys.Keys, bindings map[string]map[string]config.Keybinding, handlers map[string]keys.Callback) error {
	for _, ctx := range sortedContexts(bindings) {
		cbs := make(map[string]keys.Callback, len(bindings[ctx]))
		for str, kb := range bindings[ctx] {
			cb, ok := handlers[kb.Action]
			if !ok {
				return fmt.Errorf("keybinding %q: no handler for action %q", str, kb.Action)
			}
			cbs[str] = cb
		}

		k.Unbind(ctx)
		if err := k.Bind(ctx, cbs); err != nil {
			return fmt.Errorf("bind %s keys: %w", ctx, err)
		}
	}
	return nil
}

// HelpKeys holds the bubbles help bindings derived from the config.
type HelpKeys struct {
	short map[string][]key.Binding
	full  [][]key.Binding
}

// newHelpKeys groups configured bindings by action in the canonical action
// order. Each context becomes one column of the full help.
func newHelpKeys(bindings map[string]map[string]config.Keybinding) HelpKeys {
	h := HelpKeys{short: make(map[string][]key.Binding)}

	for _, ctx := range sortedContexts(bindings) {
		byAction := make(map[string][]string)
		helpText := make(map[string]string)
		for str, kb := range bindings[ctx] {
			byAction[kb.Action] = append(byAction[kb.Action], displayKey(str))
			if kb.Help != "" {
				helpText[kb.Action] = kb.Help
			}
		}

		var column []key.Binding
		for _, action := range config.Actions() {
			strs, ok := byAction[action]
			if !ok {
				continue
			}
			slices.Sort(strs)
			desc := helpText[action]
			if desc == "" {
				desc = actionHelp[action]
			}
			b := key.NewBinding(key.WithKeys(strs...), key.WithHelp(strings.Join(strs, "/"), desc))
			column = append(column, b)
			if slices.Contains(shortHelpActions[ctx], action) {
				h.short[ctx] = append(h.short[ctx], b)
			}
		}
		h.full = append(h.full, column)
	}
	return h
}

// Short returns the status bar bindings for ctx.
func (h HelpKeys) Short(ctx string) []key.Binding {
	return h.short[ctx]
}

// Full returns every binding, one column per context.
func (h HelpKeys) Full() [][]key.Binding {
	return h.full
}

// displayKey turns "ctrl z | ctrl y" alternatives into "ctrl+z/ctrl+y".
func displayKey(str string) string {
	alts := strings.Split(str, "|")
	for i, alt := range alts {
		alts[i] = strings.Join(strings.Fields(alt), "+")
	}
	return strings.Join(alts, "/")
}

// sortedContexts returns default first, then the rest by name.
func sortedContexts(bindings map[string]map[string]config.Keybinding) []string {
	ctxs := make([]string, 0, len(bindings))
	for ctx := range bindings {
		ctxs = append(ctxs, ctx)
	}
	slices.SortFunc(ctxs, func(a, b string) int {
		switch {
		case a == b:
			return 0
		case a == config.ContextDefault:
			return -1
		case b == config.ContextDefault:
			return 1
		}
		return strings.Compare(a, b)
	})
	return ctxs
}
