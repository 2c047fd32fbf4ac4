package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/hotel-maintenance/internal/domain"
	apperrors "github.com/spec-kit/hotel-maintenance/pkg/util"
)

// Scenario names a canned workflow demonstration.
type Scenario string

const (
	ScenarioGuestComplaint Scenario = "GUEST_COMPLAINT"
	ScenarioCleaningReport Scenario = "CLEANING_REPORT"
	ScenarioBlockPart      Scenario = "BLOCK_PART"
	ScenarioBlockVendor    Scenario = "BLOCK_VENDOR"
)

// ParseScenario validates a scenario name.
func ParseScenario(name string) (Scenario, bool) {
	switch Scenario(name) {
	case ScenarioGuestComplaint, ScenarioCleaningReport, ScenarioBlockPart, ScenarioBlockVendor:
		return Scenario(name), true
	}
	return "", false
}

// ScenarioService synthesizes or mutates tickets to demonstrate canned
// workflows. Scenarios are deterministic and preserve the same
// invariants as organic mutations: fresh identifier, seeded audit
// entry, recomputed score.
type ScenarioService struct {
	tickets *TicketService
	logger  *zap.Logger
}

// NewScenarioService constructs the service.
func NewScenarioService(tickets *TicketService, logger *zap.Logger) *ScenarioService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScenarioService{tickets: tickets, logger: logger}
}

// Run executes a scenario and returns the identifier of the ticket it
// created or mutated.
func (s *ScenarioService) Run(ctx context.Context, scenario Scenario) (string, error) {
	switch scenario {
	case ScenarioGuestComplaint:
		return s.guestComplaint(ctx)
	case ScenarioCleaningReport:
		return s.cleaningReport(ctx)
	case ScenarioBlockPart:
		return s.blockByPart(ctx)
	case ScenarioBlockVendor:
		return s.blockByVendor(ctx)
	}
	return "", apperrors.NewValidationError("unknown scenario", map[string]any{"scenario": string(scenario)})
}

// guestComplaint deliberately targets room 105 and its air conditioning
// so the recurrence flag lights up against the seed dataset.
func (s *ScenarioService) guestComplaint(ctx context.Context) (string, error) {
	ticket, err := s.tickets.Create(ctx, CreateInput{
		RoomNumber:  "105",
		IsOccupied:  true,
		Asset:       "Air Conditioning",
		IssueType:   "Won't turn on",
		Description: "Demo scenario: guest reports the air conditioning is unresponsive and cannot rest.",
		Urgency:     domain.UrgencyHigh,
		Impact:      domain.ImpactBlocking,
	}, domain.RoleReception, "Ticket created by Reception (demo)")
	if err != nil {
		return "", err
	}
	return ticket.ID, nil
}

func (s *ScenarioService) cleaningReport(ctx context.Context) (string, error) {
	ticket, err := s.tickets.Create(ctx, CreateInput{
		RoomNumber:  "112",
		IsOccupied:  false,
		Asset:       "Plumbing",
		IssueType:   "Leaking",
		Description: "Demo scenario: cleaning staff finds a dripping sink while preparing the room.",
		Urgency:     domain.UrgencyMedium,
		Impact:      domain.ImpactAnnoying,
	}, domain.RoleCleaning, "Ticket created by Cleaning (demo)")
	if err != nil {
		return "", err
	}
	return ticket.ID, nil
}

// blockByPart prefers converting the highest-priority open or
// in-progress ticket into the waiting-for-part state; when none exists
// it synthesizes a new already-blocked ticket.
func (s *ScenarioService) blockByPart(ctx context.Context) (string, error) {
	if candidate, ok := s.pickBlockCandidate(); ok {
		status := domain.TicketStatusWaitingPart
		needsPart := true
		partName := "Demo part (gasket / capacitor / outlet)"
		ticket, err := s.tickets.Update(ctx, candidate.ID, UpdateInput{
			Status:    &status,
			NeedsPart: &needsPart,
			PartName:  &partName,
		}, domain.RoleMaintenance, "Marked waiting for part (demo)")
		if err != nil {
			return "", err
		}
		return ticket.ID, nil
	}

	ticket, err := s.tickets.Create(ctx, CreateInput{
		RoomNumber:  "101",
		IsOccupied:  true,
		Asset:       "Electrical",
		IssueType:   "Broken/Damaged",
		Description: "Demo scenario: a replacement part is required to finish the repair.",
		Urgency:     domain.UrgencyHigh,
		Impact:      domain.ImpactBlocking,
		Status:      domain.TicketStatusWaitingPart,
		Notes:       []string{"Demo scenario: component to replace identified."},
		NeedsPart:   true,
		PartName:    "Demo part",
	}, domain.RoleMaintenance, "Ticket created and marked waiting for part (demo)")
	if err != nil {
		return "", err
	}
	return ticket.ID, nil
}

func (s *ScenarioService) blockByVendor(ctx context.Context) (string, error) {
	if candidate, ok := s.pickBlockCandidate(); ok {
		status := domain.TicketStatusVendor
		needsVendor := true
		vendorType := "Demo vendor (IT / HVAC / locksmith)"
		ticket, err := s.tickets.Update(ctx, candidate.ID, UpdateInput{
			Status:      &status,
			NeedsVendor: &needsVendor,
			VendorType:  &vendorType,
		}, domain.RoleMaintenance, "Marked for vendor (demo)")
		if err != nil {
			return "", err
		}
		return ticket.ID, nil
	}

	ticket, err := s.tickets.Create(ctx, CreateInput{
		RoomNumber:  "120",
		IsOccupied:  false,
		Asset:       "TV/WiFi",
		IssueType:   "No signal",
		Description: "Demo scenario: case escalated to an external vendor.",
		Urgency:     domain.UrgencyLow,
		Impact:      domain.ImpactAnnoying,
		Status:      domain.TicketStatusVendor,
		Notes:       []string{"Demo scenario: restart does not help, visit scheduled."},
		NeedsVendor: true,
		VendorType:  "Demo vendor",
	}, domain.RoleMaintenance, "Ticket created and escalated to vendor (demo)")
	if err != nil {
		return "", err
	}
	return ticket.ID, nil
}

// pickBlockCandidate selects the highest-priority ticket whose status
// is open or in-progress. Ties keep the collection's display order.
func (s *ScenarioService) pickBlockCandidate() (domain.Ticket, bool) {
	var best domain.Ticket
	found := false
	for _, t := range s.tickets.List() {
		if t.Status != domain.TicketStatusOpen && t.Status != domain.TicketStatusInProgress {
			continue
		}
		if !found || t.PriorityScore > best.PriorityScore {
			best = t
			found = true
		}
	}
	return best, found
}
