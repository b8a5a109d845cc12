package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/jask/toggler/internal/config"
)

type Action string

type Binding struct {
	Action Action
	Keys   []string
	Help   string
	Scopes []string
}

type KeyRegistry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

const (
	scopeGlobal  = "global"
	scopeButtons = "buttons"
	scopePrompt  = "prompt"
)

const (
	actionQuit      Action = "quit"
	actionToggle    Action = "toggle"
	actionBanana    Action = "banana"
	actionFocusNext Action = "focus_next"
	actionFocusPrev Action = "focus_prev"
	actionPress     Action = "press"
	actionPrompt    Action = "prompt"
	actionConfirm   Action = "confirm"
	actionCancel    Action = "cancel"
)

// KeyOverride rebinds one action in one scope.
type KeyOverride struct {
	Scope  string
	Action string
	Keys   []string
}

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help, Scopes: []string{scope}})
	}

	// Global fallback only holds keys that are safe while typing.
	reg(scopeGlobal, actionQuit, []string{"ctrl+c"}, "quit")

	reg(scopeButtons, actionToggle, []string{"t"}, "toggle")
	reg(scopeButtons, actionBanana, []string{"b"}, "banana")
	reg(scopeButtons, actionFocusNext, []string{"tab", "right", "down", "j"}, "next")
	reg(scopeButtons, actionFocusPrev, []string{"shift+tab", "left", "up", "k"}, "prev")
	reg(scopeButtons, actionPress, []string{"enter", "space"}, "press")
	reg(scopeButtons, actionPrompt, []string{":"}, "command")
	reg(scopeButtons, actionQuit, []string{"q", "ctrl+c"}, "quit")

	reg(scopePrompt, actionConfirm, []string{"enter"}, "send")
	reg(scopePrompt, actionCancel, []string{"esc"}, "cancel")

	return r
}

// Register adds b to each of its scopes. A binding whose keys are already
// taken in a scope is skipped there.
func (r *KeyRegistry) Register(b Binding) {
	keys := normalizeKeyList(b.Keys)
	if len(keys) == 0 {
		return
	}
	for _, scope := range b.Scopes {
		if r.scopeHasAnyKey(scope, keys) {
			continue
		}
		bound := b
		bound.Keys = keys
		bound.Scopes = []string{scope}
		r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &bound)
		r.index(scope, &bound)
	}
}

func (r *KeyRegistry) index(scope string, b *Binding) {
	if r.indexByScope[scope] == nil {
		r.indexByScope[scope] = make(map[string]*Binding)
	}
	for _, k := range b.Keys {
		r.indexByScope[scope][k] = b
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []Binding {
	items := r.bindingsByScope[scope]
	out := make([]Binding, 0, len(items))
	for _, b := range items {
		out = append(out, *b)
	}
	return out
}

// Lookup resolves a key pressed in scope, falling back to the global scope.
func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	keyName = config.NormalizeKey(keyName)
	if keyName == "" {
		return nil
	}
	if b := r.indexByScope[scope][keyName]; b != nil {
		return b
	}
	return r.indexByScope[scopeGlobal][keyName]
}

func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	items := r.BindingsForScope(scope)
	out := make([]key.Binding, 0, len(items))
	for _, b := range items {
		if len(b.Keys) == 0 {
			continue
		}
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Help)))
	}
	return out
}

func (r *KeyRegistry) scopeHasAnyKey(scope string, keys []string) bool {
	lookup := r.indexByScope[scope]
	for _, k := range keys {
		if _, exists := lookup[k]; exists {
			return true
		}
	}
	return false
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := config.NormalizeKey(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// ApplyOverrides rebinds actions and rejects conflicting keys within a scope.
func (r *KeyRegistry) ApplyOverrides(overrides []KeyOverride) error {
	if len(overrides) == 0 {
		return nil
	}
	type pair struct {
		scope  string
		action Action
	}
	seenPair := make(map[pair]bool)
	for _, o := range overrides {
		scope := strings.TrimSpace(o.Scope)
		if scope == "" {
			return fmt.Errorf("key override: scope is required")
		}
		action := Action(strings.TrimSpace(o.Action))
		if action == "" {
			return fmt.Errorf("key override scope=%q: action is required", scope)
		}
		keys := normalizeKeyList(o.Keys)
		if len(keys) == 0 {
			return fmt.Errorf("key override scope=%q action=%q: keys are required", scope, action)
		}

		bindings := r.bindingsByScope[scope]
		if len(bindings) == 0 {
			return fmt.Errorf("key override scope=%q action=%q: unknown scope", scope, action)
		}
		var target *Binding
		for _, b := range bindings {
			if b.Action == action {
				target = b
				break
			}
		}
		if target == nil {
			return fmt.Errorf("key override scope=%q action=%q: unknown action in scope", scope, action)
		}
		p := pair{scope: scope, action: action}
		if seenPair[p] {
			return fmt.Errorf("key override scope=%q action=%q: duplicated override entry", scope, action)
		}
		seenPair[p] = true
		target.Keys = keys
	}

	r.rebuildIndex()
	scopes := make([]string, 0, len(r.bindingsByScope))
	for scope := range r.bindingsByScope {
		scopes = append(scopes, scope)
	}
	sort.Strings(scopes)
	for _, scope := range scopes {
		seen := make(map[string]Action)
		for _, b := range r.bindingsByScope[scope] {
			for _, k := range b.Keys {
				if prev, ok := seen[k]; ok {
					return fmt.Errorf("key override conflict in scope=%q: key %q used by both %q and %q", scope, k, prev, b.Action)
				}
				seen[k] = b.Action
			}
		}
	}
	return nil
}

func (r *KeyRegistry) rebuildIndex() {
	r.indexByScope = make(map[string]map[string]*Binding, len(r.bindingsByScope))
	for scope, bindings := range r.bindingsByScope {
		for _, b := range bindings {
			r.index(scope, b)
		}
	}
}
