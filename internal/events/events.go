// Package events is a fire-and-forget analytics hook. Emitters are called
// synchronously on the request path, so implementations must be fast and
// failures are always swallowed: gameplay never blocks on telemetry.
package events

import "log"

// Event is a single analytics fact
type Event struct {
	Name    string
	ActorID string
	Props   map[string]interface{}
}

// Emitter receives events. Implementations must not panic the caller.
type Emitter interface {
	Emit(e Event)
}

// Emit safely delivers an event to an emitter, swallowing nil emitters
// and panics alike.
func Emit(em Emitter, e Event) {
	if em == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[events] Emitter panic on %s: %v", e.Name, r)
		}
	}()
	em.Emit(e)
}

// LogEmitter writes events to the process log
type LogEmitter struct{}

// NewLogEmitter creates a log-backed emitter
func NewLogEmitter() *LogEmitter {
	return &LogEmitter{}
}

// Emit logs the event
func (l *LogEmitter) Emit(e Event) {
	if len(e.Props) > 0 {
		log.Printf("[events] %s actor=%s props=%v", e.Name, e.ActorID, e.Props)
		return
	}
	log.Printf("[events] %s actor=%s", e.Name, e.ActorID)
}
