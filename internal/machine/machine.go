package machine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
)

// Machine is a live instance of a Definition. A view mounts exactly one and
// drops it on unmount; nothing is shared between instances.
type Machine struct {
	id     string
	def    Definition
	fsm    *fsm.FSM
	logger *slog.Logger

	mu          sync.Mutex
	subscribers map[int]func(from, to State)
	nextSub     int
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger used for transition records.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithDefinition replaces the toggle table.
func WithDefinition(def Definition) Option {
	return func(m *Machine) {
		m.def = def
	}
}

// New starts a machine in the definition's initial state.
func New(opts ...Option) (*Machine, error) {
	m := &Machine{
		def:         ToggleDefinition(),
		logger:      slog.Default(),
		subscribers: make(map[int]func(from, to State)),
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.def.Validate(); err != nil {
		return nil, fmt.Errorf("definition %q: %w", m.def.ID, err)
	}

	m.id = uuid.NewString()
	m.logger = m.logger.With("machine", m.def.ID, "instance", m.id)
	m.fsm = fsm.NewFSM(string(m.def.Initial), m.def.fsmEvents(), fsm.Callbacks{})
	m.logger.Debug("machine started", "state", m.def.Initial)
	return m, nil
}

// ID returns the instance identifier.
func (m *Machine) ID() string { return m.id }

// Definition returns the table this machine runs.
func (m *Machine) Definition() Definition { return m.def }

// State returns the current state.
func (m *Machine) State() State {
	return State(m.fsm.Current())
}

// Send applies event and reports the resulting state and whether it
// changed. An event with no rule for the current state leaves it as is.
func (m *Machine) Send(ctx context.Context, event Event) (State, bool) {
	from := m.State()
	if err := m.fsm.Event(ctx, string(event.Type)); err != nil {
		if ignored(err) {
			m.logger.Debug("event ignored", "event", event.Type, "state", from)
		} else {
			m.logger.Warn("event not applied", "event", event.Type, "state", from, "error", err)
		}
		return from, false
	}

	to := m.State()
	m.logger.Info("transition", "event", event.Type, "from", from, "to", to)
	m.notify(from, to)
	return to, true
}

// Subscribe registers fn to run after every state change. Calls happen on
// the goroutine that called Send. The returned func removes fn.
func (m *Machine) Subscribe(fn func(from, to State)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	m.subscribers[id] = fn
	return func() {
		m.mu.Lock()
		delete(m.subscribers, id)
		m.mu.Unlock()
	}
}

func (m *Machine) notify(from, to State) {
	m.mu.Lock()
	fns := make([]func(from, to State), 0, len(m.subscribers))
	for id := 0; id < m.nextSub; id++ {
		if fn, ok := m.subscribers[id]; ok {
			fns = append(fns, fn)
		}
	}
	m.mu.Unlock()
	for _, fn := range fns {
		fn(from, to)
	}
}

// ignored reports whether err is looplab/fsm's way of saying the current
// state has no rule for the event.
func ignored(err error) bool {
	var invalid fsm.InvalidEventError
	var unknown fsm.UnknownEventError
	var none fsm.NoTransitionError
	return errors.As(err, &invalid) || errors.As(err, &unknown) || errors.As(err, &none)
}
