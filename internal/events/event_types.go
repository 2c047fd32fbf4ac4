package events

import (
	"time"

	"github.com/spec-kit/hotel-maintenance/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated   EventType = "ticket_created"
	EventTicketUpdated   EventType = "ticket_updated"
	EventTicketVerified  EventType = "ticket_verified"
	EventCollectionReset EventType = "collection_reset"
)

// AllEventTypes lists every event the service emits, for subscribers
// that bridge the full stream.
var AllEventTypes = []EventType{
	EventTicketCreated,
	EventTicketUpdated,
	EventTicketVerified,
	EventCollectionReset,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id,omitempty"`
	Actor     domain.Role `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	RoomNumber    string              `json:"room_number"`
	Asset         string              `json:"asset"`
	IssueType     string              `json:"issue_type"`
	Status        domain.TicketStatus `json:"status"`
	Urgency       domain.Urgency      `json:"urgency"`
	Impact        domain.Impact       `json:"impact"`
	PriorityScore int                 `json:"priority_score"`
}

// TicketUpdatedPayload payload.
type TicketUpdatedPayload struct {
	Action        string              `json:"action"`
	Status        domain.TicketStatus `json:"status"`
	PriorityScore int                 `json:"priority_score"`
}

// TicketVerifiedPayload payload.
type TicketVerifiedPayload struct {
	VerifiedBy string    `json:"verified_by"`
	ClosedAt   time.Time `json:"closed_at"`
}

// CollectionResetPayload payload.
type CollectionResetPayload struct {
	TicketCount int `json:"ticket_count"`
}
