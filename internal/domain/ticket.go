package domain

import "time"

// TicketStatus enumerates lifecycle states for maintenance tickets.
type TicketStatus string

const (
	TicketStatusOpen        TicketStatus = "OPEN"
	TicketStatusInProgress  TicketStatus = "IN_PROGRESS"
	TicketStatusWaitingPart TicketStatus = "WAITING_PART"
	TicketStatusVendor      TicketStatus = "VENDOR"
	TicketStatusResolved    TicketStatus = "RESOLVED"
	TicketStatusVerified    TicketStatus = "VERIFIED"
)

// IsTerminal reports whether no further transition is permitted.
func (s TicketStatus) IsTerminal() bool {
	return s == TicketStatusVerified
}

// Urgency enumerates how fast a ticket needs attention.
type Urgency string

const (
	UrgencyLow    Urgency = "LOW"
	UrgencyMedium Urgency = "MEDIUM"
	UrgencyHigh   Urgency = "HIGH"
)

// Impact enumerates how much the issue affects use of the room.
type Impact string

const (
	ImpactNone     Impact = "NONE"
	ImpactAnnoying Impact = "ANNOYING"
	ImpactBlocking Impact = "BLOCKING"
)

// Role identifies which hotel role is acting. It is a display label,
// not an authorization boundary.
type Role string

const (
	RoleManagement  Role = "MANAGEMENT"
	RoleCleaning    Role = "CLEANING"
	RoleReception   Role = "RECEPTION"
	RoleMaintenance Role = "MAINTENANCE"
)

// ParseRole validates a role label. Empty input defaults to management.
func ParseRole(value string) (Role, bool) {
	if value == "" {
		return RoleManagement, true
	}
	switch Role(value) {
	case RoleManagement, RoleCleaning, RoleReception, RoleMaintenance:
		return Role(value), true
	}
	return "", false
}

// AuditEvent is an immutable record of one ticket mutation. Events are
// append-only and render in insertion order.
type AuditEvent struct {
	Date   time.Time `json:"date"`
	Action string    `json:"action"`
	User   Role      `json:"user"`
}

// Ticket is the aggregate for one reported maintenance issue.
//
// PriorityScore is derived state: it is recomputed on load and after
// every mutation and is never trusted as persisted.
type Ticket struct {
	ID          string       `json:"id"`
	RoomNumber  string       `json:"room_number"`
	IsOccupied  bool         `json:"is_occupied"`
	Asset       string       `json:"asset"`
	IssueType   string       `json:"issue_type"`
	Description string       `json:"description"`
	Urgency     Urgency      `json:"urgency"`
	Impact      Impact       `json:"impact"`
	Status      TicketStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	CreatedBy   Role         `json:"created_by"`
	AssignedTo  string       `json:"assigned_to,omitempty"`
	Notes       []string     `json:"notes"`

	NeedsPart   bool       `json:"needs_part,omitempty"`
	PartName    string     `json:"part_name,omitempty"`
	NeedsVendor bool       `json:"needs_vendor,omitempty"`
	VendorType  string     `json:"vendor_type,omitempty"`
	VerifiedBy  string     `json:"verified_by,omitempty"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`

	History []AuditEvent `json:"history"`

	PriorityScore int `json:"priority_score"`
}

// Clone returns a deep copy so callers cannot mutate owned slices.
func (t Ticket) Clone() Ticket {
	clone := t
	clone.Notes = append([]string(nil), t.Notes...)
	clone.History = append([]AuditEvent(nil), t.History...)
	if t.ClosedAt != nil {
		closed := *t.ClosedAt
		clone.ClosedAt = &closed
	}
	return clone
}
