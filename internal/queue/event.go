// Package queue defines message payloads exchanged over the message broker.
package queue

// BootcampEventsQueue carries every bootcamp lifecycle event.
const BootcampEventsQueue = "bootcamp.events"

// Lifecycle event types.
const (
	EventBootcampCreated = "bootcamp.created"
	EventBootcampUpdated = "bootcamp.updated"
	EventBootcampDeleted = "bootcamp.deleted"
)

// BootcampEvent is published after a bootcamp write has been committed.  It
// carries enough to audit the change without querying the primary database.
type BootcampEvent struct {
	Type       string `json:"type"`
	BootcampID string `json:"bootcamp_id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	City       string `json:"city,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
