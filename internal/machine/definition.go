package machine

import (
	"fmt"
	"sort"

	"github.com/looplab/fsm"
)

// StateNode lists the events a state reacts to and where each one leads.
type StateNode struct {
	On map[EventType]State
}

// Definition is a static transition table. It holds no guards, actions or
// context; a state either has a rule for an event or ignores it.
type Definition struct {
	ID      string
	Initial State
	States  map[State]StateNode
}

// ToggleDefinition returns the toggle machine table. BANANA has no rule in
// the active state and is ignored there.
func ToggleDefinition() Definition {
	return Definition{
		ID:      "toggle",
		Initial: StateActive,
		States: map[State]StateNode{
			StateInactive: {On: map[EventType]State{
				EventToggle: StateActive,
				EventBanana: StateActive,
			}},
			StateActive: {On: map[EventType]State{
				EventToggle: StateInactive,
			}},
		},
	}
}

var toggle = ToggleDefinition()

// Transition returns the toggle machine's successor of state for event.
func Transition(state State, event Event) State {
	return toggle.Transition(state, event)
}

// Transition looks up the rule for (state, event). Unknown states and
// events without a rule map to state itself.
func (d Definition) Transition(state State, event Event) State {
	node, ok := d.States[state]
	if !ok {
		return state
	}
	if next, ok := node.On[event.Type]; ok {
		return next
	}
	return state
}

// Validate checks that the initial state and every rule target are declared.
func (d Definition) Validate() error {
	if len(d.States) == 0 {
		return fmt.Errorf("no states defined")
	}
	if d.Initial == "" {
		return fmt.Errorf("no initial state defined")
	}
	if _, ok := d.States[d.Initial]; !ok {
		return fmt.Errorf("initial state %q not defined", d.Initial)
	}
	for _, id := range d.StateIDs() {
		for _, ev := range sortedEvents(d.States[id].On) {
			target := d.States[id].On[ev]
			if _, ok := d.States[target]; !ok {
				return fmt.Errorf("state %q event %q targets undefined state %q", id, ev, target)
			}
		}
	}
	return nil
}

// StateIDs returns the declared states in sorted order.
func (d Definition) StateIDs() []State {
	out := make([]State, 0, len(d.States))
	for id := range d.States {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Events returns every event type with at least one rule, sorted.
func (d Definition) Events() []EventType {
	seen := make(map[EventType]bool)
	for _, node := range d.States {
		for ev := range node.On {
			seen[ev] = true
		}
	}
	return sortedEvents(seen)
}

func (d Definition) fsmEvents() fsm.Events {
	var events fsm.Events
	for _, src := range d.StateIDs() {
		on := d.States[src].On
		for _, ev := range sortedEvents(on) {
			events = append(events, fsm.EventDesc{
				Name: string(ev),
				Src:  []string{string(src)},
				Dst:  string(on[ev]),
			})
		}
	}
	return events
}

func sortedEvents[V any](m map[EventType]V) []EventType {
	out := make([]EventType, 0, len(m))
	for ev := range m {
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
