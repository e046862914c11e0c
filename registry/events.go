package registry

// EventType names a registry lifecycle event.
type EventType string

const (
	EventCreated EventType = "created"
	EventRemoved EventType = "removed"
	EventRenamed EventType = "renamed"
	EventChanged EventType = "changed"
	EventError   EventType = "error"
)

// Event describes a completed or rejected registry operation.
type Event struct {
	Type      EventType
	Operation string
	// Name is the sequence the event is about: the new name for renames
	// and persistent operations.
	Name string
	// Source is the previous name of a renamed sequence or the sequence a
	// persistent result was derived from.
	Source string
	Err    error
}

// Listener receives events after the registry lock is released, so it may
// call back into the registry.
type Listener func(Event)
