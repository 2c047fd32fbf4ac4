package repository

import (
	"time"

	"github.com/spec-kit/hotel-maintenance/internal/domain"
)

// Seed returns the fixed first-run dataset: nine illustrative tickets
// covering every lifecycle status, with ages expressed relative to the
// given time. Priority scores are stored as placeholder zero and must
// be recomputed by the caller before use.
func Seed(now time.Time) []domain.Ticket {
	daysAgo := func(days int) time.Time {
		return now.AddDate(0, 0, -days)
	}
	closed1008 := daysAgo(1)

	return []domain.Ticket{
		{
			ID:          "T-1001",
			RoomNumber:  "105",
			IsOccupied:  true,
			Asset:       "Air Conditioning",
			IssueType:   "Won't turn on",
			Description: "Guest reports the room is very hot, the remote is unresponsive.",
			Urgency:     domain.UrgencyHigh,
			Impact:      domain.ImpactBlocking,
			Status:      domain.TicketStatusOpen,
			CreatedAt:   daysAgo(0),
			CreatedBy:   domain.RoleReception,
			Notes:       []string{},
			History: []domain.AuditEvent{
				{Date: daysAgo(0), Action: "Ticket created", User: domain.RoleReception},
			},
		},
		{
			ID:          "T-1002",
			RoomNumber:  "112",
			IsOccupied:  false,
			Asset:       "Plumbing",
			IssueType:   "Leaking",
			Description: "Sink faucet drips constantly.",
			Urgency:     domain.UrgencyMedium,
			Impact:      domain.ImpactAnnoying,
			Status:      domain.TicketStatusInProgress,
			CreatedAt:   daysAgo(2),
			CreatedBy:   domain.RoleCleaning,
			AssignedTo:  "Carlos M.",
			Notes:       []string{"Washer needs replacing."},
			History: []domain.AuditEvent{
				{Date: daysAgo(2), Action: "Ticket created", User: domain.RoleCleaning},
				{Date: daysAgo(1), Action: "Assigned to Carlos M.", User: domain.RoleMaintenance},
			},
		},
		{
			ID:          "T-1003",
			RoomNumber:  "101",
			IsOccupied:  true,
			Asset:       "Electrical",
			IssueType:   "Broken/Damaged",
			Description: "Nightstand outlet is sparking.",
			Urgency:     domain.UrgencyHigh,
			Impact:      domain.ImpactBlocking,
			Status:      domain.TicketStatusWaitingPart,
			CreatedAt:   daysAgo(1),
			CreatedBy:   domain.RoleReception,
			Notes:       []string{"Circuit disconnected for safety.", "Replacement requested."},
			NeedsPart:   true,
			PartName:    "Universal Premium Outlet, White",
			History: []domain.AuditEvent{
				{Date: daysAgo(1), Action: "Ticket created", User: domain.RoleReception},
				{Date: daysAgo(0), Action: "Marked waiting for part", User: domain.RoleMaintenance},
			},
		},
		{
			ID:          "T-1004",
			RoomNumber:  "118",
			IsOccupied:  false,
			Asset:       "Furniture",
			IssueType:   "Broken/Damaged",
			Description: "Desk chair leg is wobbly.",
			Urgency:     domain.UrgencyLow,
			Impact:      domain.ImpactAnnoying,
			Status:      domain.TicketStatusResolved,
			CreatedAt:   daysAgo(5),
			CreatedBy:   domain.RoleCleaning,
			Notes:       []string{"Repaired with industrial adhesive."},
			History: []domain.AuditEvent{
				{Date: daysAgo(5), Action: "Ticket created", User: domain.RoleCleaning},
				{Date: daysAgo(2), Action: "Resolved", User: domain.RoleMaintenance},
			},
		},
		{
			ID:          "T-1005",
			RoomNumber:  "105",
			IsOccupied:  true,
			Asset:       "Air Conditioning",
			IssueType:   "Leaking",
			Description: "Condensation dripping onto the carpet (recurring).",
			Urgency:     domain.UrgencyHigh,
			Impact:      domain.ImpactAnnoying,
			Status:      domain.TicketStatusOpen,
			CreatedAt:   daysAgo(0),
			CreatedBy:   domain.RoleCleaning,
			Notes:       []string{},
			History: []domain.AuditEvent{
				{Date: daysAgo(0), Action: "Ticket created", User: domain.RoleCleaning},
			},
		},
		{
			ID:          "T-1006",
			RoomNumber:  "120",
			IsOccupied:  false,
			Asset:       "TV/WiFi",
			IssueType:   "No signal",
			Description: "TV will not connect to the entertainment system.",
			Urgency:     domain.UrgencyLow,
			Impact:      domain.ImpactAnnoying,
			Status:      domain.TicketStatusVendor,
			NeedsVendor: true,
			VendorType:  "External IT Support",
			CreatedAt:   daysAgo(3),
			CreatedBy:   domain.RoleMaintenance,
			Notes:       []string{"Restart did not help. Escalated to vendor."},
			History: []domain.AuditEvent{
				{Date: daysAgo(3), Action: "Ticket created and escalated", User: domain.RoleMaintenance},
			},
		},
		{
			ID:          "T-1007",
			RoomNumber:  "115",
			IsOccupied:  true,
			Asset:       "Plumbing",
			IssueType:   "Bad smell",
			Description: "Drain odor in the main bathroom.",
			Urgency:     domain.UrgencyHigh,
			Impact:      domain.ImpactAnnoying,
			Status:      domain.TicketStatusOpen,
			CreatedAt:   daysAgo(0),
			CreatedBy:   domain.RoleReception,
			Notes:       []string{},
			History: []domain.AuditEvent{
				{Date: daysAgo(0), Action: "Ticket created", User: domain.RoleReception},
			},
		},
		{
			ID:          "T-1008",
			RoomNumber:  "102",
			IsOccupied:  false,
			Asset:       "Locks",
			IssueType:   "Broken/Damaged",
			Description: "Electronic lock battery running low.",
			Urgency:     domain.UrgencyMedium,
			Impact:      domain.ImpactBlocking,
			Status:      domain.TicketStatusVerified,
			CreatedAt:   daysAgo(6),
			CreatedBy:   domain.RoleCleaning,
			VerifiedBy:  "Night Manager",
			ClosedAt:    &closed1008,
			Notes:       []string{"Batteries replaced."},
			History: []domain.AuditEvent{
				{Date: daysAgo(6), Action: "Ticket created", User: domain.RoleCleaning},
				{Date: daysAgo(2), Action: "Resolved", User: domain.RoleMaintenance},
				{Date: daysAgo(1), Action: "Verified", User: domain.RoleManagement},
			},
		},
		{
			ID:          "T-1009",
			RoomNumber:  "109",
			IsOccupied:  true,
			Asset:       "Electrical",
			IssueType:   "Won't turn on",
			Description: "Floor lamp bulb burned out.",
			Urgency:     domain.UrgencyLow,
			Impact:      domain.ImpactNone,
			Status:      domain.TicketStatusOpen,
			CreatedAt:   daysAgo(1),
			CreatedBy:   domain.RoleCleaning,
			Notes:       []string{},
			History: []domain.AuditEvent{
				{Date: daysAgo(1), Action: "Ticket created", User: domain.RoleCleaning},
			},
		},
	}
}
