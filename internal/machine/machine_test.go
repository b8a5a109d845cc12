package machine

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionTable(t *testing.T) {
	if got := Transition(StateActive, Toggle); got != StateInactive {
		t.Fatalf("active+TOGGLE = %q, want %q", got, StateInactive)
	}
	if got := Transition(StateActive, Banana); got != StateActive {
		t.Fatalf("active+BANANA = %q, want %q", got, StateActive)
	}
	if got := Transition(StateInactive, Toggle); got != StateActive {
		t.Fatalf("inactive+TOGGLE = %q, want %q", got, StateActive)
	}
	if got := Transition(StateInactive, Banana); got != StateActive {
		t.Fatalf("inactive+BANANA = %q, want %q", got, StateActive)
	}
}

func TestTransitionIsTotal(t *testing.T) {
	if got := Transition(State("paused"), Toggle); got != State("paused") {
		t.Fatalf("unknown state should map to itself, got %q", got)
	}
	if got := Transition(StateInactive, Event{Type: "APPLE"}); got != StateInactive {
		t.Fatalf("unknown event should map to current state, got %q", got)
	}
}

func TestBananaWhileActiveIsIdempotent(t *testing.T) {
	state := StateActive
	for i := 0; i < 5; i++ {
		state = Transition(state, Banana)
		if state != StateActive {
			t.Fatalf("iteration %d: state = %q, want active", i, state)
		}
	}
}

func TestToggleRoundTrip(t *testing.T) {
	state := Transition(Transition(StateActive, Toggle), Toggle)
	if state != StateActive {
		t.Fatalf("TOGGLE,TOGGLE from active = %q, want active", state)
	}
}

func TestToggleDefinitionValid(t *testing.T) {
	def := ToggleDefinition()
	require.NoError(t, def.Validate())
	assert.Equal(t, "toggle", def.ID)
	assert.Equal(t, StateActive, def.Initial)
	assert.Equal(t, []State{StateActive, StateInactive}, def.StateIDs())
	assert.Equal(t, []EventType{EventBanana, EventToggle}, def.Events())
}

func TestDefinitionValidateRejectsBrokenTables(t *testing.T) {
	noInitial := ToggleDefinition()
	noInitial.Initial = ""
	require.Error(t, noInitial.Validate())

	missingInitial := ToggleDefinition()
	missingInitial.Initial = "paused"
	require.ErrorContains(t, missingInitial.Validate(), `initial state "paused" not defined`)

	badTarget := Definition{
		ID:      "broken",
		Initial: StateActive,
		States: map[State]StateNode{
			StateActive: {On: map[EventType]State{EventToggle: "nowhere"}},
		},
	}
	require.ErrorContains(t, badTarget.Validate(), `targets undefined state "nowhere"`)

	require.Error(t, Definition{Initial: StateActive}.Validate())
}

func TestNewStartsActive(t *testing.T) {
	m, err := New()
	require.NoError(t, err)
	assert.Equal(t, StateActive, m.State())
	assert.NotEmpty(t, m.ID())
}

func TestNewRejectsInvalidDefinition(t *testing.T) {
	_, err := New(WithDefinition(Definition{ID: "empty"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `definition "empty"`)
}

func TestInstancesAreIndependent(t *testing.T) {
	a, err := New()
	require.NoError(t, err)
	b, err := New()
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), b.ID())

	a.Send(context.Background(), Toggle)
	assert.Equal(t, StateInactive, a.State())
	assert.Equal(t, StateActive, b.State())
}

func TestSendMatchesTransition(t *testing.T) {
	ctx := context.Background()
	for _, start := range []State{StateActive, StateInactive} {
		for _, ev := range []Event{Toggle, Banana} {
			m, err := New()
			require.NoError(t, err)
			if start == StateInactive {
				m.Send(ctx, Toggle)
			}
			require.Equal(t, start, m.State())

			want := Transition(start, ev)
			got, changed := m.Send(ctx, ev)
			assert.Equal(t, want, got, "%s+%s", start, ev.Type)
			assert.Equal(t, want, m.State())
			assert.Equal(t, want != start, changed, "%s+%s changed", start, ev.Type)
		}
	}
}

func TestSendUnknownEventIsIgnored(t *testing.T) {
	m, err := New()
	require.NoError(t, err)
	got, changed := m.Send(context.Background(), Event{Type: "APPLE"})
	assert.False(t, changed)
	assert.Equal(t, StateActive, got)
}

func TestSendSelfLoopIsIgnored(t *testing.T) {
	def := ToggleDefinition()
	def.States[StateActive].On[EventBanana] = StateActive
	m, err := New(WithDefinition(def))
	require.NoError(t, err)

	got, changed := m.Send(context.Background(), Banana)
	assert.False(t, changed)
	assert.Equal(t, StateActive, got)
}

func TestSubscribeFiresOnlyOnChange(t *testing.T) {
	ctx := context.Background()
	m, err := New()
	require.NoError(t, err)

	type change struct{ from, to State }
	var seen []change
	unsubscribe := m.Subscribe(func(from, to State) {
		seen = append(seen, change{from, to})
	})

	m.Send(ctx, Banana)
	m.Send(ctx, Toggle)
	m.Send(ctx, Banana)
	require.Equal(t, []change{
		{StateActive, StateInactive},
		{StateInactive, StateActive},
	}, seen)

	unsubscribe()
	m.Send(ctx, Toggle)
	assert.Len(t, seen, 2)
}

func TestSubscribersRunInRegistrationOrder(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	var order []string
	m.Subscribe(func(_, _ State) { order = append(order, "first") })
	m.Subscribe(func(_, _ State) { order = append(order, "second") })
	m.Send(context.Background(), Toggle)

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestSendLogsTransition(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m, err := New(WithLogger(logger))
	require.NoError(t, err)

	m.Send(context.Background(), Banana)
	m.Send(context.Background(), Toggle)

	out := buf.String()
	assert.Contains(t, out, "event ignored")
	assert.Contains(t, out, "msg=transition")
	assert.Contains(t, out, "instance="+m.ID())
	assert.Equal(t, 1, strings.Count(out, "msg=transition"))
	assert.Equal(t, 1, strings.Count(out, "to=inactive"), "a change is logged once")
}

func TestParseEventType(t *testing.T) {
	got, err := ParseEventType(" toggle ")
	require.NoError(t, err)
	assert.Equal(t, EventToggle, got)

	got, err = ParseEventType("BANANA")
	require.NoError(t, err)
	assert.Equal(t, EventBanana, got)
}

func TestParseEventTypeSuggests(t *testing.T) {
	_, err := ParseEventType("banan")
	var uerr *UnknownEventError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, EventBanana, uerr.Suggestion)
	assert.Equal(t, `unknown event "banan", did you mean BANANA?`, err.Error())

	_, err = ParseEventType("togle")
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, EventToggle, uerr.Suggestion)
}

func TestParseEventTypeNoSuggestion(t *testing.T) {
	_, err := ParseEventType("refresh")
	var uerr *UnknownEventError
	require.True(t, errors.As(err, &uerr))
	assert.Empty(t, uerr.Suggestion)
	assert.Equal(t, `unknown event "refresh"`, err.Error())

	_, err = ParseEventType("   ")
	require.True(t, errors.As(err, &uerr))
	assert.Empty(t, uerr.Suggestion)
}
