package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/toggler/internal/config"
	"github.com/jask/toggler/internal/machine"
	"github.com/jask/toggler/widgets"
)

type button struct {
	label string
	event machine.Event
}

var buttons = []button{
	{label: "Send TOGGLE", event: machine.Toggle},
	{label: "Send BANANA", event: machine.Banana},
}

func buttonLabels() []string {
	out := make([]string, len(buttons))
	for i, b := range buttons {
		out[i] = b.label
	}
	return out
}

// stateChangedMsg is delivered through the machine subscription.
type stateChangedMsg struct {
	from machine.State
	to   machine.State
}

// Model is the toggler view. It owns one machine for its whole lifetime.
type Model struct {
	ctx     context.Context
	machine *machine.Machine
	keys    *KeyRegistry
	logger  *slog.Logger
	help    help.Model
	prompt  textinput.Model

	focus       int
	prompting   bool
	status      string
	hint        string
	statusErr   bool
	transitions int
	width       int
	height      int

	changesMu   sync.Mutex
	changes     chan stateChangedMsg
	closed      bool
	unsubscribe func()
}

type Option func(*Model)

func WithKeys(r *KeyRegistry) Option {
	return func(m *Model) {
		if r != nil {
			m.keys = r
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New mounts a view on mach and subscribes to its state changes.
func New(ctx context.Context, mach *machine.Machine, opts ...Option) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	inp := textinput.New()
	inp.Prompt = widgets.Prompt(": ")
	inp.Placeholder = "TOGGLE or BANANA"
	inp.CharLimit = 32

	h := help.New()
	h.Styles.ShortKey, h.Styles.ShortDesc = widgets.HelpStyles()

	m := &Model{
		ctx:     ctx,
		machine: mach,
		keys:    NewKeyRegistry(),
		logger:  slog.Default(),
		help:    h,
		prompt:  inp,
		changes: make(chan stateChangedMsg, 16),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.unsubscribe = mach.Subscribe(m.deliver)
	m.logger.Debug("view mounted", "instance", mach.ID(), "state", mach.State())
	return m
}

// Mount creates a fresh machine and mounts a view on it, applying the key
// bindings from cfg.
func Mount(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Model, error) {
	mach, err := machine.New(machine.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("start machine: %w", err)
	}
	keys := NewKeyRegistry()
	if err := keys.ApplyOverrides([]KeyOverride{
		{Scope: scopeButtons, Action: string(actionToggle), Keys: cfg.Keys.Toggle},
		{Scope: scopeButtons, Action: string(actionBanana), Keys: cfg.Keys.Banana},
	}); err != nil {
		return nil, fmt.Errorf("keys: %w", err)
	}
	return New(ctx, mach, WithKeys(keys), WithLogger(logger)), nil
}

// Unmount drops the machine subscription and releases any pending wait for
// a change. The model must not be reused.
func (m *Model) Unmount() {
	if m.unsubscribe == nil {
		return
	}
	m.unsubscribe()
	m.unsubscribe = nil

	m.changesMu.Lock()
	m.closed = true
	close(m.changes)
	m.changesMu.Unlock()
	m.logger.Debug("view unmounted", "instance", m.machine.ID())
}

// deliver forwards a change to the program without blocking the sender.
// Notifications already in flight when Unmount runs are dropped.
func (m *Model) deliver(from, to machine.State) {
	m.changesMu.Lock()
	defer m.changesMu.Unlock()
	if m.closed {
		return
	}
	select {
	case m.changes <- stateChangedMsg{from: from, to: to}:
	default:
	}
}

// Machine returns the mounted machine.
func (m *Model) Machine() *machine.Machine { return m.machine }

func (m *Model) Init() tea.Cmd {
	return waitForChange(m.changes)
}

func waitForChange(ch <-chan stateChangedMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.prompt.Width = max(0, msg.Width-8)
		return m, nil
	case stateChangedMsg:
		m.transitions++
		return m, waitForChange(m.changes)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	case tea.KeyMsg:
		if m.prompting {
			return m.updatePrompt(msg)
		}
		return m.updateButtons(msg)
	}
	return m, nil
}

func (m *Model) updateButtons(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := m.keys.Lookup(msg.String(), scopeButtons)
	if b == nil {
		return m, nil
	}
	switch b.Action {
	case actionQuit:
		return m, tea.Quit
	case actionToggle:
		m.press(0)
	case actionBanana:
		m.press(1)
	case actionFocusNext:
		m.focus = (m.focus + 1) % len(buttons)
	case actionFocusPrev:
		m.focus = (m.focus + len(buttons) - 1) % len(buttons)
	case actionPress:
		m.press(m.focus)
	case actionPrompt:
		m.prompting = true
		m.prompt.Reset()
		return m, m.prompt.Focus()
	}
	return m, nil
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if b := m.keys.Lookup(msg.String(), scopePrompt); b != nil {
		switch b.Action {
		case actionQuit:
			return m, tea.Quit
		case actionCancel:
			m.closePrompt()
			return m, nil
		case actionConfirm:
			input := m.prompt.Value()
			m.closePrompt()
			m.sendTyped(input)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.prompting || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	idx := widgets.ButtonAt(m.body(), buttonLabels(), msg.X, msg.Y)
	if idx < 0 {
		return m, nil
	}
	m.press(idx)
	return m, nil
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.prompt.Blur()
}

func (m *Model) press(idx int) {
	if idx < 0 || idx >= len(buttons) {
		return
	}
	m.focus = idx
	m.send(buttons[idx].event)
}

func (m *Model) sendTyped(input string) {
	ev, err := m.machine.Definition().ParseEventType(input)
	if err != nil {
		var uerr *machine.UnknownEventError
		if errors.As(err, &uerr) && uerr.Suggestion != "" {
			m.setStatus(fmt.Sprintf("unknown event %q", uerr.Input), true)
			m.hint = fmt.Sprintf("did you mean %s?", uerr.Suggestion)
			return
		}
		m.setStatus(err.Error(), true)
		return
	}
	for i, b := range buttons {
		if b.event.Type == ev {
			m.focus = i
		}
	}
	m.send(machine.Event{Type: ev})
}

func (m *Model) send(ev machine.Event) {
	from := m.machine.State()
	to, changed := m.machine.Send(m.ctx, ev)
	if !changed {
		m.setStatus(fmt.Sprintf("%s ignored while %s", ev.Type, from), false)
		return
	}
	m.setStatus(fmt.Sprintf("%s: %s → %s", ev.Type, from, to), false)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
	m.hint = ""
}
