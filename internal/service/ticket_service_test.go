package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spec-kit/hotel-maintenance/internal/domain"
	"github.com/spec-kit/hotel-maintenance/internal/repository"
	apperrors "github.com/spec-kit/hotel-maintenance/pkg/util"
)

var testNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func newTestService(t *testing.T) (*TicketService, *repository.MemorySnapshotStore) {
	t.Helper()
	store := repository.NewMemorySnapshotStore()
	svc := NewTicketService(TicketDependencies{
		Snapshots: store,
		Clock:     fixedClock(testNow),
	})
	return svc, store
}

func newSeededService(t *testing.T) (*TicketService, *repository.MemorySnapshotStore) {
	t.Helper()
	svc, store := newTestService(t)
	restored, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !restored {
		t.Fatal("expected seed fallback on empty store")
	}
	return svc, store
}

func domainErrCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected *DomainError, got %T: %v", err, err)
	}
	return domainErr.Code
}

func TestLoadFallsBackToSeed(t *testing.T) {
	svc, store := newSeededService(t)

	tickets := svc.List()
	if len(tickets) != 9 {
		t.Fatalf("seed should yield 9 tickets, got %d", len(tickets))
	}
	for _, ticket := range tickets {
		if ticket.Status.IsTerminal() || ticket.Status == domain.TicketStatusResolved {
			if ticket.PriorityScore != 0 {
				t.Errorf("%s: closed ticket scored %d, want 0", ticket.ID, ticket.PriorityScore)
			}
		} else if ticket.PriorityScore == 0 {
			t.Errorf("%s: active ticket has zero score after load", ticket.ID)
		}
	}
	if store.Saves != 1 {
		t.Fatalf("seed fallback must persist once, got %d saves", store.Saves)
	}
}

func TestLoadUsesExistingSnapshot(t *testing.T) {
	store := repository.NewMemorySnapshotStore()
	stale := []domain.Ticket{{
		ID:            "T-2001",
		RoomNumber:    "103",
		Asset:         "Plumbing",
		Urgency:       domain.UrgencyHigh,
		Impact:        domain.ImpactBlocking,
		Status:        domain.TicketStatusOpen,
		CreatedAt:     testNow.Add(-24 * time.Hour),
		PriorityScore: 999, // stale stored value, must be recomputed
	}}
	if err := store.Save(context.Background(), stale); err != nil {
		t.Fatalf("Save: %v", err)
	}

	svc := NewTicketService(TicketDependencies{Snapshots: store, Clock: fixedClock(testNow)})
	restored, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if restored {
		t.Fatal("must not restore seed when a snapshot exists")
	}

	ticket, err := svc.Get("T-2001")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ticket.PriorityScore != 95 { // 50 + 40 + one day of age
		t.Fatalf("score = %d, want 95", ticket.PriorityScore)
	}
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	svc, store := newSeededService(t)
	savesBefore := store.Saves

	first, err := svc.Create(context.Background(), CreateInput{
		RoomNumber: "107",
		Asset:      "Locks",
		IssueType:  "Broken/Damaged",
		Urgency:    domain.UrgencyMedium,
		Impact:     domain.ImpactBlocking,
	}, domain.RoleReception, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.ID != "T-1010" {
		t.Fatalf("ID = %s, want T-1010 after the seed", first.ID)
	}
	if first.Status != domain.TicketStatusOpen {
		t.Fatalf("status = %s, want OPEN", first.Status)
	}
	if len(first.History) != 1 || first.History[0].Action != "Ticket created" {
		t.Fatalf("history = %+v, want single creation event", first.History)
	}
	if store.Saves != savesBefore+1 {
		t.Fatal("create must write through to the snapshot store")
	}

	second, err := svc.Create(context.Background(), CreateInput{RoomNumber: "108", Asset: "Furniture"}, domain.RoleCleaning, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if second.ID != "T-1011" {
		t.Fatalf("ID = %s, want T-1011", second.ID)
	}

	if list := svc.List(); list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatal("new tickets must be prepended, newest first")
	}
}

func TestCreateOnEmptyCollectionStartsAtFloor(t *testing.T) {
	svc, _ := newTestService(t)
	ticket, err := svc.Create(context.Background(), CreateInput{RoomNumber: "101", Asset: "Electrical"}, domain.RoleMaintenance, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ticket.ID != "T-1001" {
		t.Fatalf("ID = %s, want T-1001", ticket.ID)
	}
}

func TestUpdateUnknownTicket(t *testing.T) {
	svc, _ := newSeededService(t)
	desc := "changed"
	_, err := svc.Update(context.Background(), "T-9999", UpdateInput{Description: &desc}, domain.RoleManagement, "")
	if code := domainErrCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("code = %s, want NOT_FOUND", code)
	}
}

func TestUpdateRejectsDirectVerification(t *testing.T) {
	svc, _ := newSeededService(t)
	verified := domain.TicketStatusVerified
	// T-1004 is resolved, the only state adjacent to verified; the plain
	// update path must still refuse it.
	_, err := svc.Update(context.Background(), "T-1004", UpdateInput{Status: &verified}, domain.RoleManagement, "")
	if code := domainErrCode(t, err); code != "CONFLICT" {
		t.Fatalf("code = %s, want CONFLICT", code)
	}
}

func TestUpdateRejectsInvalidTransition(t *testing.T) {
	svc, _ := newSeededService(t)
	inProgress := domain.TicketStatusInProgress
	// T-1004 is resolved and may only advance to verified.
	_, err := svc.Update(context.Background(), "T-1004", UpdateInput{Status: &inProgress}, domain.RoleMaintenance, "")
	if code := domainErrCode(t, err); code != "CONFLICT" {
		t.Fatalf("code = %s, want CONFLICT", code)
	}
}

func TestUpdateAppendsOneAuditEvent(t *testing.T) {
	svc, _ := newSeededService(t)
	before, err := svc.Get("T-1001")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	status := domain.TicketStatusInProgress
	after, err := svc.Update(context.Background(), "T-1001", UpdateInput{Status: &status}, domain.RoleMaintenance, "")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(after.History) != len(before.History)+1 {
		t.Fatalf("history grew by %d events, want 1", len(after.History)-len(before.History))
	}
	last := after.History[len(after.History)-1]
	if last.Action != "Status changed to IN_PROGRESS" {
		t.Fatalf("action = %q", last.Action)
	}
	for i, event := range before.History {
		if after.History[i] != event {
			t.Fatal("existing audit events must never be rewritten")
		}
	}
}

func TestResolveZeroesScore(t *testing.T) {
	svc, _ := newSeededService(t)
	ticket, err := svc.Resolve(context.Background(), "T-1001", domain.RoleMaintenance)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if ticket.Status != domain.TicketStatusResolved {
		t.Fatalf("status = %s", ticket.Status)
	}
	if ticket.PriorityScore != 0 {
		t.Fatalf("score = %d, want 0 once resolved", ticket.PriorityScore)
	}
	last := ticket.History[len(ticket.History)-1]
	if !strings.Contains(last.Action, "Resolved") {
		t.Fatalf("action = %q", last.Action)
	}
}

func TestVerifyRequiresChecklist(t *testing.T) {
	svc, _ := newSeededService(t)

	cases := []struct {
		name                       string
		areaClean, assetFunctional bool
	}{
		{"neither", false, false},
		{"area only", true, false},
		{"asset only", false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Verify(context.Background(), "T-1004", domain.RoleManagement, tc.areaClean, tc.assetFunctional)
			if code := domainErrCode(t, err); code != "CONFLICT" {
				t.Fatalf("code = %s, want CONFLICT", code)
			}
		})
	}

	ticket, err := svc.Get("T-1004")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ticket.Status != domain.TicketStatusResolved {
		t.Fatal("rejected verification must not change the ticket")
	}
}

func TestVerifyClosesResolvedTicket(t *testing.T) {
	svc, _ := newSeededService(t)

	ticket, err := svc.Verify(context.Background(), "T-1004", domain.RoleManagement, true, true)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ticket.Status != domain.TicketStatusVerified {
		t.Fatalf("status = %s", ticket.Status)
	}
	if ticket.VerifiedBy != string(domain.RoleManagement) {
		t.Fatalf("verified_by = %q", ticket.VerifiedBy)
	}
	if ticket.ClosedAt == nil || !ticket.ClosedAt.Equal(testNow) {
		t.Fatalf("closed_at = %v, want %v", ticket.ClosedAt, testNow)
	}
	if ticket.PriorityScore != 0 {
		t.Fatalf("score = %d, want 0", ticket.PriorityScore)
	}
}

func TestVerifyRejectsActiveTicket(t *testing.T) {
	svc, _ := newSeededService(t)
	_, err := svc.Verify(context.Background(), "T-1001", domain.RoleManagement, true, true)
	if code := domainErrCode(t, err); code != "CONFLICT" {
		t.Fatalf("code = %s, want CONFLICT", code)
	}
}

func TestAddNoteAppends(t *testing.T) {
	svc, _ := newSeededService(t)
	ticket, err := svc.AddNote(context.Background(), "T-1002", "Replacement washer installed, monitoring for leaks.", domain.RoleMaintenance)
	if err != nil {
		t.Fatalf("AddNote: %v", err)
	}
	if len(ticket.Notes) != 2 {
		t.Fatalf("notes = %v, want existing note plus the new one", ticket.Notes)
	}
	last := ticket.History[len(ticket.History)-1]
	if !strings.HasPrefix(last.Action, "Note added: ") {
		t.Fatalf("action = %q", last.Action)
	}
}

func TestPersistFailureSurfacesError(t *testing.T) {
	svc, store := newSeededService(t)
	store.SaveErr = errors.New("disk full")

	_, err := svc.Create(context.Background(), CreateInput{RoomNumber: "110", Asset: "Plumbing"}, domain.RoleReception, "")
	if err == nil {
		t.Fatal("expected persist error")
	}
	if !strings.Contains(err.Error(), "persist snapshot") {
		t.Fatalf("err = %v", err)
	}

	// The mutation itself is not rolled back.
	if _, getErr := svc.Get("T-1010"); getErr != nil {
		t.Fatalf("ticket missing from memory after failed persist: %v", getErr)
	}
}

func TestResetRestoresSeed(t *testing.T) {
	svc, _ := newSeededService(t)
	if _, err := svc.Create(context.Background(), CreateInput{RoomNumber: "119", Asset: "TV/WiFi"}, domain.RoleReception, ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Reset(context.Background(), domain.RoleManagement); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	tickets := svc.List()
	if len(tickets) != 9 {
		t.Fatalf("reset should restore 9 seed tickets, got %d", len(tickets))
	}
	if _, err := svc.Get("T-1010"); err == nil {
		t.Fatal("created ticket must be gone after reset")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	svc, store := newSeededService(t)
	if _, err := svc.Resolve(context.Background(), "T-1001", domain.RoleMaintenance); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	reloaded := NewTicketService(TicketDependencies{Snapshots: store, Clock: fixedClock(testNow)})
	restored, err := reloaded.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if restored {
		t.Fatal("second service must read the stored snapshot, not the seed")
	}
	ticket, err := reloaded.Get("T-1001")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ticket.Status != domain.TicketStatusResolved {
		t.Fatalf("status after round trip = %s", ticket.Status)
	}
}

func TestResolveThenVerifyLifecycle(t *testing.T) {
	svc, _ := newSeededService(t)

	if _, err := svc.Resolve(context.Background(), "T-1001", domain.RoleMaintenance); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	ticket, err := svc.Verify(context.Background(), "T-1001", domain.RoleManagement, true, true)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if ticket.Status != domain.TicketStatusVerified || ticket.ClosedAt == nil || ticket.PriorityScore != 0 {
		t.Fatalf("unexpected final ticket state: %+v", ticket)
	}

	// Terminal really is terminal.
	inProgress := domain.TicketStatusInProgress
	if _, err := svc.Update(context.Background(), "T-1001", UpdateInput{Status: &inProgress}, domain.RoleMaintenance, ""); err == nil {
		t.Fatal("verified ticket must not reopen")
	}
}
