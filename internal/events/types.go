// Package events provides the in-process bus that carries catalog change events.
package events

import (
	"time"
)

// EventType represents the type of event
type EventType string

// Catalog actions
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Catalog event types
const (
	EventDirectorCreated EventType = "catalog.director.created"
	EventDirectorUpdated EventType = "catalog.director.updated"
	EventDirectorDeleted EventType = "catalog.director.deleted"
	EventGenreCreated    EventType = "catalog.genre.created"
	EventGenreUpdated    EventType = "catalog.genre.updated"
	EventGenreDeleted    EventType = "catalog.genre.deleted"
	EventMovieCreated    EventType = "catalog.movie.created"
	EventMovieUpdated    EventType = "catalog.movie.updated"
	EventMovieDeleted    EventType = "catalog.movie.deleted"
)

// CatalogEventType builds the event type for an entity action, e.g. catalog.genre.deleted
func CatalogEventType(entity, action string) EventType {
	return EventType("catalog." + entity + "." + action)
}

// Event represents a change in the catalog
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Source    string                 `json:"source"`
	Entity    string                 `json:"entity"`
	EntityID  uint                   `json:"entity_id"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// NewCatalogEvent creates an event for a catalog entity action
func NewCatalogEvent(entity, action string, id uint) Event {
	return Event{
		Type:      CatalogEventType(entity, action),
		Source:    "catalog",
		Entity:    entity,
		EntityID:  id,
		Timestamp: time.Now().UTC(),
	}
}

// EventHandler receives dispatched events. Handlers run on the dispatcher
// goroutine and must not block.
type EventHandler func(Event)

// Subscription is a registered handler with an optional type filter
type Subscription struct {
	ID      string      `json:"id"`
	Types   []EventType `json:"types,omitempty"`
	Created time.Time   `json:"created"`

	handler EventHandler
}

// Matches reports whether the subscription wants the event.
// An empty type list matches everything.
func (s *Subscription) Matches(event Event) bool {
	if len(s.Types) == 0 {
		return true
	}
	for _, t := range s.Types {
		if t == event.Type {
			return true
		}
	}
	return false
}

// EventStats holds bus counters
type EventStats struct {
	Published           int64 `json:"published"`
	Dropped             int64 `json:"dropped"`
	ActiveSubscriptions int   `json:"active_subscriptions"`
}
