package service

import (
	"context"
	"testing"

	"github.com/spec-kit/hotel-maintenance/internal/domain"
)

func TestParseScenario(t *testing.T) {
	for _, name := range []string{"GUEST_COMPLAINT", "CLEANING_REPORT", "BLOCK_PART", "BLOCK_VENDOR"} {
		if _, ok := ParseScenario(name); !ok {
			t.Errorf("ParseScenario(%q) rejected a valid scenario", name)
		}
	}
	if _, ok := ParseScenario("FIRE_DRILL"); ok {
		t.Error("unknown scenario accepted")
	}
}

func TestGuestComplaintScenario(t *testing.T) {
	tickets, _ := newSeededService(t)
	scenarios := NewScenarioService(tickets, nil)

	id, err := scenarios.Run(context.Background(), ScenarioGuestComplaint)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if id != "T-1010" {
		t.Fatalf("id = %s, want a fresh identifier above the seed range", id)
	}

	ticket, err := tickets.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ticket.Status != domain.TicketStatusOpen {
		t.Errorf("status = %s, want OPEN", ticket.Status)
	}
	if !ticket.IsOccupied {
		t.Error("guest complaint must target an occupied room")
	}
	if ticket.RoomNumber != "105" || ticket.Asset != "Air Conditioning" {
		t.Errorf("room/asset = %s/%s, want the recurring 105 air conditioning pairing", ticket.RoomNumber, ticket.Asset)
	}
	if ticket.CreatedBy != domain.RoleReception {
		t.Errorf("created by %s, want RECEPTION", ticket.CreatedBy)
	}
}

func TestCleaningReportScenario(t *testing.T) {
	tickets, _ := newSeededService(t)
	scenarios := NewScenarioService(tickets, nil)

	id, err := scenarios.Run(context.Background(), ScenarioCleaningReport)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	ticket, err := tickets.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ticket.CreatedBy != domain.RoleCleaning || ticket.Urgency != domain.UrgencyMedium {
		t.Fatalf("unexpected ticket: %+v", ticket)
	}
}

func TestBlockPartScenarioMutatesTopCandidate(t *testing.T) {
	tickets, _ := newSeededService(t)
	scenarios := NewScenarioService(tickets, nil)

	id, err := scenarios.Run(context.Background(), ScenarioBlockPart)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// T-1001 is the highest-priority open or in-progress ticket in the
	// seed; T-1003 outranks it but is already blocked.
	if id != "T-1001" {
		t.Fatalf("id = %s, want T-1001", id)
	}
	if len(tickets.List()) != 9 {
		t.Fatal("blocking an existing ticket must not grow the collection")
	}

	ticket, err := tickets.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ticket.Status != domain.TicketStatusWaitingPart {
		t.Errorf("status = %s, want WAITING_PART", ticket.Status)
	}
	if !ticket.NeedsPart || ticket.PartName == "" {
		t.Error("part fields must be filled in")
	}
	if len(ticket.History) != 2 {
		t.Fatalf("history has %d events, want creation plus one block", len(ticket.History))
	}
}

func TestBlockVendorScenarioMutatesTopCandidate(t *testing.T) {
	tickets, _ := newSeededService(t)
	scenarios := NewScenarioService(tickets, nil)

	id, err := scenarios.Run(context.Background(), ScenarioBlockVendor)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	ticket, err := tickets.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ticket.Status != domain.TicketStatusVendor || !ticket.NeedsVendor || ticket.VendorType == "" {
		t.Fatalf("unexpected ticket state: %+v", ticket)
	}
}

func TestBlockPartScenarioFallsBackToSynthesis(t *testing.T) {
	tickets, _ := newTestService(t)
	scenarios := NewScenarioService(tickets, nil)

	// Empty collection: no candidate to block, so the scenario must
	// synthesize an already-blocked ticket instead.
	id, err := scenarios.Run(context.Background(), ScenarioBlockPart)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	ticket, err := tickets.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ticket.Status != domain.TicketStatusWaitingPart || !ticket.NeedsPart {
		t.Fatalf("unexpected ticket state: %+v", ticket)
	}
	if len(ticket.History) != 1 {
		t.Fatalf("synthesized ticket history has %d events, want 1", len(ticket.History))
	}
}
