package service

// EventType defines the type of event
type EventType string

const (
	EventSimulationCreated  EventType = "simulation_created"
	EventSimulationSaved    EventType = "simulation_saved"
	EventSimulationLoaded   EventType = "simulation_loaded"
	EventSimulationDeleted  EventType = "simulation_deleted"
	EventSimulationsChanged EventType = "simulations_changed"
	EventTemplatesChanged   EventType = "templates_changed"
	EventCircuitChanged     EventType = "circuit_changed"
	EventStateRewound       EventType = "state_rewound"
)

// Event represents an event that occurred in the system
type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// EventBus delivers events to subscribers synchronously, in the order they
// subscribed
type EventBus struct {
	subscribers []func(Event)
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make([]func(Event), 0),
	}
}

// Subscribe adds a subscriber and returns a function that removes it
func (eb *EventBus) Subscribe(fn func(Event)) func() {
	eb.subscribers = append(eb.subscribers, fn)
	idx := len(eb.subscribers) - 1
	return func() {
		eb.subscribers[idx] = nil
	}
}

// Publish sends an event to all subscribers
func (eb *EventBus) Publish(event Event) {
	for _, fn := range eb.subscribers {
		if fn != nil {
			fn(event)
		}
	}
}
