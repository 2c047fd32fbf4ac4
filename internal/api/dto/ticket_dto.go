package dto

import (
	"time"

	"github.com/spec-kit/hotel-maintenance/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	RoomNumber  string   `json:"room_number"`
	IsOccupied  bool     `json:"is_occupied"`
	Asset       string   `json:"asset"`
	IssueType   string   `json:"issue_type"`
	Description string   `json:"description"`
	Urgency     string   `json:"urgency"`
	Impact      string   `json:"impact"`
	AssignedTo  string   `json:"assigned_to"`
	Notes       []string `json:"notes"`
}

// UpdateTicketRequest carries a shallow partial update. Nil fields are
// left untouched. Action optionally overrides the audit label.
type UpdateTicketRequest struct {
	RoomNumber  *string   `json:"room_number"`
	IsOccupied  *bool     `json:"is_occupied"`
	Asset       *string   `json:"asset"`
	IssueType   *string   `json:"issue_type"`
	Description *string   `json:"description"`
	Urgency     *string   `json:"urgency"`
	Impact      *string   `json:"impact"`
	Status      *string   `json:"status"`
	AssignedTo  *string   `json:"assigned_to"`
	Notes       *[]string `json:"notes"`
	NeedsPart   *bool     `json:"needs_part"`
	PartName    *string   `json:"part_name"`
	NeedsVendor *bool     `json:"needs_vendor"`
	VendorType  *string   `json:"vendor_type"`
	Action      string    `json:"action"`
}

// StatusChangeRequest payload.
type StatusChangeRequest struct {
	Status string `json:"status"`
	Action string `json:"action"`
}

// VerifyRequest carries the closure checklist.
type VerifyRequest struct {
	AreaClean       bool `json:"area_clean"`
	AssetFunctional bool `json:"asset_functional"`
}

// NoteRequest payload.
type NoteRequest struct {
	Note string `json:"note"`
}

// AssignRequest payload.
type AssignRequest struct {
	Technician string `json:"technician"`
}

// PartRequest payload.
type PartRequest struct {
	PartName string `json:"part_name"`
}

// VendorRequest payload.
type VendorRequest struct {
	VendorType string `json:"vendor_type"`
}

// AuditEventResponse is one history entry.
type AuditEventResponse struct {
	Date   time.Time   `json:"date"`
	Action string      `json:"action"`
	User   domain.Role `json:"user"`
}

// TicketSummary response.
type TicketSummary struct {
	ID            string              `json:"id"`
	RoomNumber    string              `json:"room_number"`
	IsOccupied    bool                `json:"is_occupied"`
	Asset         string              `json:"asset"`
	IssueType     string              `json:"issue_type"`
	Status        domain.TicketStatus `json:"status"`
	Urgency       domain.Urgency      `json:"urgency"`
	Impact        domain.Impact       `json:"impact"`
	PriorityScore int                 `json:"priority_score"`
	AssignedTo    string              `json:"assigned_to,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

// TicketDetailResponse provides full ticket info.
type TicketDetailResponse struct {
	TicketSummary
	Description string               `json:"description"`
	CreatedBy   domain.Role          `json:"created_by"`
	Notes       []string             `json:"notes"`
	NeedsPart   bool                 `json:"needs_part"`
	PartName    string               `json:"part_name,omitempty"`
	NeedsVendor bool                 `json:"needs_vendor"`
	VendorType  string               `json:"vendor_type,omitempty"`
	VerifiedBy  string               `json:"verified_by,omitempty"`
	ClosedAt    *time.Time           `json:"closed_at,omitempty"`
	History     []AuditEventResponse `json:"history"`
}

// ScenarioResponse reports the ticket a scenario touched.
type ScenarioResponse struct {
	Scenario string `json:"scenario"`
	TicketID string `json:"ticket_id"`
}
