// Package event is a small synchronous event dispatcher used by scene nodes
// and geometries to announce hierarchy changes and disposal.
package event

const (
	ADDED EventType = iota
	REMOVED
	CHILD_ADDED
	CHILD_REMOVED
	DISPOSE
)

type EventType uint8

func (t EventType) String() string {
	switch t {
	case ADDED:
		return "added"
	case REMOVED:
		return "removed"
	case CHILD_ADDED:
		return "childadded"
	case CHILD_REMOVED:
		return "childremoved"
	case DISPOSE:
		return "dispose"
	}
	return "unknown"
}

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Hierarchy events. Target is the node the event is dispatched on.
type AddedEvent struct {
	Target any
}

func (e AddedEvent) Type() EventType { return ADDED }

type RemovedEvent struct {
	Target any
}

func (e RemovedEvent) Type() EventType { return REMOVED }

type ChildAddedEvent struct {
	Target any
	Child  any
}

func (e ChildAddedEvent) Type() EventType { return CHILD_ADDED }

type ChildRemovedEvent struct {
	Target any
	Child  any
}

func (e ChildRemovedEvent) Type() EventType { return CHILD_REMOVED }

// DisposeEvent asks external owners of derived resources to release them.
type DisposeEvent struct {
	Target any
}

func (e DisposeEvent) Type() EventType { return DISPOSE }

// Listener - callback for events
type Listener func(event Event)

// Events holds the listeners of a single emitter. The zero value is ready to use.
type Events struct {
	listeners map[EventType][]Listener
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener Listener) {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]Listener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// HasListeners reports whether anything listens to eventType.
func (e *Events) HasListeners(eventType EventType) bool {
	return len(e.listeners[eventType]) > 0
}

// Clear drops every listener.
func (e *Events) Clear() {
	clear(e.listeners)
}

// Dispatch calls the listeners of event's type in subscription order.
func (e *Events) Dispatch(event Event) {
	listeners, ok := e.listeners[event.Type()]
	if !ok {
		return
	}
	// listeners may subscribe while being called
	for _, listener := range append([]Listener(nil), listeners...) {
		listener(event)
	}
}
