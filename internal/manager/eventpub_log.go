package manager

import "github.com/rs/zerolog"

// LogPublisher writes events to a zerolog logger at debug level. Failures of
// the artifact set are warnings and prediction failures not caused by the
// request input are errors.
type LogPublisher struct {
	Logger zerolog.Logger
}

func (p LogPublisher) Publish(e Event) {
	ev := p.Logger.Debug()
	switch e.Name {
	case EventReloadFailed, EventLoadFailed:
		ev = p.Logger.Warn()
	case EventPredictionFailed:
		if input, _ := e.Fields["input"].(bool); !input {
			ev = p.Logger.Error()
		}
	}
	ev.Str("event", e.Name).Str("version", e.Version).Fields(e.Fields).Msg("manager event")
}
