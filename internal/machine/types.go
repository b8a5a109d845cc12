package machine

// State is a toggle machine state identifier.
type State string

const (
	StateInactive State = "inactive"
	StateActive   State = "active"
)

func (s State) String() string { return string(s) }

// EventType names an event the machine understands.
type EventType string

const (
	EventToggle EventType = "TOGGLE"
	EventBanana EventType = "BANANA"
)

func (e EventType) String() string { return string(e) }

// Event is a payload-free trigger sent to a Machine.
type Event struct {
	Type EventType
}

// Toggle and Banana are the two events a toggler view can send.
var (
	Toggle = Event{Type: EventToggle}
	Banana = Event{Type: EventBanana}
)
