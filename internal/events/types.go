// Package events is the in-process event bus that carries catalog changes to
// interested listeners such as the websocket change stream.
package events

import (
	"time"

	"github.com/mantonx/curator/internal/utils"
)

// EventType represents the type of event
type EventType string

const (
	EventSceneCreated     EventType = "catalog.scene.created"
	EventSceneUpdated     EventType = "catalog.scene.updated"
	EventPerformerCreated EventType = "catalog.performer.created"
	EventStudioCreated    EventType = "catalog.studio.created"
	EventTagCreated       EventType = "catalog.tag.created"
	EventImageAdded       EventType = "catalog.image.added"
	EventConfigReloaded   EventType = "system.config.reloaded"
)

// Event represents a system event
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Source    string                 `json:"source"`
	Target    string                 `json:"target,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// NewEvent creates an event with a fresh ID and timestamp.
func NewEvent(eventType EventType, source, target string, data map[string]interface{}) Event {
	return Event{
		ID:        utils.GenerateUUID(),
		Type:      eventType,
		Source:    source,
		Target:    target,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}
