package manager

// Event names published by the manager.
const (
	EventArtifactsLoaded  = "artifacts_loaded"
	EventLoadFailed       = "load_failed"
	EventReloadFailed     = "reload_failed"
	EventPredictionFailed = "prediction_failed"
)

// Event represents a manager lifecycle event.
// Minimal and stable: name + artifact version and optional fields.
type Event struct {
	Name    string
	Version string
	Fields  map[string]any
}

// EventPublisher receives events from the manager. Implementations should be
// lightweight and non-blocking; Publish must not panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
