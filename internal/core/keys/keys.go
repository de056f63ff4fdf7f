// Package keys dispatches key strings to callbacks bound per context.
//
// A binding is written as optional modifiers followed by one key, separated
// by spaces: "ctrl shift left". Modifiers may appear in any order and are
// normalised to ctrl, alt, shift. Alternatives are separated by "|":
// "left | h".
package keys

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// DefaultContext is always enabled and consulted last.
const DefaultContext = "default"

// ErrParse is returned for malformed key strings.
var ErrParse = errors.New("error parsing keybinding")

var modifierOrder = []string{"ctrl", "alt", "shift"}

// Callback handles a key. Returning true leaves the key unhandled so the
// caller may apply its default handling.
type Callback func() bool

// Keys maps key strings to callbacks per context.
type Keys struct {
	bindings map[string]map[string]Callback
	enabled  []string
	disabled bool
}

// New creates a dispatcher with only the default context enabled.
func New() *Keys {
	return &Keys{bindings: make(map[string]map[string]Callback)}
}

// Bind registers callbacks in context. Every key string is parsed before
// anything is registered, so a malformed string binds nothing.
func (k *Keys) Bind(context string, bindings map[string]Callback) error {
	parsed := make(map[string]Callback, len(bindings))
	for str, cb := range bindings {
		combos, err := parseAlternatives(str)
		if err != nil {
			return err
		}
		for _, combo := range combos {
			parsed[combo] = cb
		}
	}

	ctx, ok := k.bindings[context]
	if !ok {
		ctx = make(map[string]Callback, len(parsed))
		k.bindings[context] = ctx
	}
	for combo, cb := range parsed {
		ctx[combo] = cb
	}
	return nil
}

// Unbind removes every binding of context.
func (k *Keys) Unbind(context string) {
	delete(k.bindings, context)
}

// EnableContext makes context's bindings take precedence over the default
// context. Contexts enabled earlier win over ones enabled later.
func (k *Keys) EnableContext(context string) {
	if context == DefaultContext || slices.Contains(k.enabled, context) {
		return
	}
	k.enabled = append(k.enabled, context)
}

// DisableContext stops consulting context.
func (k *Keys) DisableContext(context string) {
	if idx := slices.Index(k.enabled, context); idx >= 0 {
		k.enabled = slices.Delete(k.enabled, idx, idx+1)
	}
}

// ContextEnabled reports whether context is consulted by Trigger.
func (k *Keys) ContextEnabled(context string) bool {
	return context == DefaultContext || slices.Contains(k.enabled, context)
}

// Enable turns dispatching back on.
func (k *Keys) Enable() { k.disabled = false }

// Disable stops all dispatching, e.g. while a text input has focus.
func (k *Keys) Disable() { k.disabled = true }

// Lookup returns the callback key would trigger and the context providing it.
func (k *Keys) Lookup(key string) (Callback, string, bool) {
	combo, err := Normalize(key)
	if err != nil {
		return nil, "", false
	}
	for _, ctx := range k.enabled {
		if cb, ok := k.bindings[ctx][combo]; ok {
			return cb, ctx, true
		}
	}
	if cb, ok := k.bindings[DefaultContext][combo]; ok {
		return cb, DefaultContext, true
	}
	return nil, "", false
}

// Trigger runs the callback bound to key in the first enabled context that
// binds it, falling back to the default context. Returns true when a
// callback ran and handled the key.
func (k *Keys) Trigger(key string) bool {
	if k.disabled {
		return false
	}
	cb, _, ok := k.Lookup(key)
	if !ok {
		return false
	}
	return !cb()
}

// Normalize parses a single key string and returns it with modifiers in
// canonical order.
func Normalize(str string) (string, error) {
	fields := strings.Fields(str)
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: %q", ErrParse, str)
	}

	var (
		mods = map[string]bool{}
		key  string
	)
	for _, f := range fields {
		if m := strings.ToLower(f); slices.Contains(modifierOrder, m) {
			if key != "" || mods[m] {
				return "", fmt.Errorf("%w: %s", ErrParse, str)
			}
			mods[m] = true
			continue
		}
		if key != "" {
			return "", fmt.Errorf("%w: %s", ErrParse, str)
		}
		key = f
	}
	if key == "" {
		return "", fmt.Errorf("%w: %s", ErrParse, str)
	}

	parts := make([]string, 0, len(fields))
	for _, m := range modifierOrder {
		if mods[m] {
			parts = append(parts, m)
		}
	}
	return strings.Join(append(parts, key), " "), nil
}

// Validate reports whether str, including alternatives, parses.
func Validate(str string) error {
	_, err := parseAlternatives(str)
	return err
}

// Alternatives returns the normalised forms of every alternative in str.
func Alternatives(str string) ([]string, error) {
	return parseAlternatives(str)
}

func parseAlternatives(str string) ([]string, error) {
	alts := strings.Split(str, "|")
	out := make([]string, 0, len(alts))
	for _, alt := range alts {
		combo, err := Normalize(alt)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrParse, str)
		}
		out = append(out, combo)
	}
	return out, nil
}

// FromCombo converts a "+"-joined key string such as "ctrl+shift+left" to
// the space separated form. A trailing "+" is the plus key.
func FromCombo(combo string) string {
	if combo == "+" {
		return combo
	}
	var parts []string
	if strings.HasSuffix(combo, "++") {
		parts = append(strings.Split(strings.TrimSuffix(combo, "++"), "+"), "+")
	} else {
		parts = strings.Split(combo, "+")
	}
	return strings.Join(parts, " ")
}
