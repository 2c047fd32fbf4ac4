package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/hotel-maintenance/internal/domain"
	"github.com/spec-kit/hotel-maintenance/internal/events"
	"github.com/spec-kit/hotel-maintenance/internal/repository"
	apperrors "github.com/spec-kit/hotel-maintenance/pkg/util"
)

// Action label conventions shared with the audit trail.
const (
	actionCreated  = "Ticket created"
	actionResolved = "Marked Resolved — pending verification"
)

// TicketService owns the in-memory ticket collection. Every mutation
// appends exactly one audit event, recomputes the priority score and
// writes the full collection through to the snapshot store before the
// call returns. A single mutex serializes mutations so the merge-and-
// append update stays atomic across concurrent HTTP callers.
type TicketService struct {
	mu         sync.Mutex
	tickets    []domain.Ticket // newest-first display order
	snapshots  repository.SnapshotStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	Snapshots  repository.SnapshotStore
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Clock      func() time.Time
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		snapshots:  deps.Snapshots,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        clock,
	}
}

// CreateInput describes ticket creation payload. Status is optional and
// defaults to OPEN; scenario synthesis sets it to seed already-blocked
// tickets.
type CreateInput struct {
	RoomNumber  string
	IsOccupied  bool
	Asset       string
	IssueType   string
	Description string
	Urgency     domain.Urgency
	Impact      domain.Impact
	Status      domain.TicketStatus
	AssignedTo  string
	Notes       []string
	NeedsPart   bool
	PartName    string
	NeedsVendor bool
	VendorType  string
}

// UpdateInput is a shallow merge: nil fields are left untouched, set
// fields replace the existing value wholesale. In particular a new
// Notes list replaces the whole list; use AddNote for read-modify-write
// appends.
type UpdateInput struct {
	RoomNumber  *string
	IsOccupied  *bool
	Asset       *string
	IssueType   *string
	Description *string
	Urgency     *domain.Urgency
	Impact      *domain.Impact
	Status      *domain.TicketStatus
	AssignedTo  *string
	Notes       *[]string
	NeedsPart   *bool
	PartName    *string
	NeedsVendor *bool
	VendorType  *string
}

// Load restores the collection from the snapshot store, falling back to
// the seed dataset when no snapshot exists or the stored one cannot be
// read. The returned flag reports whether the fallback was taken, so
// callers can surface a "restored from seed" notice instead of failing
// silently. Scores are always recomputed; persisted scores are never
// trusted.
func (s *TicketService) Load(ctx context.Context) (restoredFromSeed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	tickets, loadErr := s.snapshots.Load(ctx)
	switch {
	case loadErr == nil:
	case errors.Is(loadErr, repository.ErrSnapshotNotFound):
		tickets = repository.Seed(now)
		restoredFromSeed = true
	case errors.Is(loadErr, repository.ErrSnapshotCorrupt):
		s.logger.Warn("snapshot corrupt, restoring seed dataset", zap.Error(loadErr))
		tickets = repository.Seed(now)
		restoredFromSeed = true
	default:
		return false, fmt.Errorf("load snapshot: %w", loadErr)
	}

	for i := range tickets {
		tickets[i].PriorityScore = domain.PriorityScore(&tickets[i], now)
	}
	s.tickets = tickets

	if restoredFromSeed {
		if err := s.persistLocked(ctx); err != nil {
			return true, err
		}
	}
	return restoredFromSeed, nil
}

// Create assigns a fresh identifier, stamps creation time, seeds the
// audit trail with one event and prepends the ticket to the collection.
func (s *TicketService) Create(ctx context.Context, input CreateInput, actor domain.Role, actionLabel string) (domain.Ticket, error) {
	s.mu.Lock()

	now := s.now()
	status := input.Status
	if status == "" {
		status = domain.TicketStatusOpen
	}
	if actionLabel == "" {
		actionLabel = actionCreated
	}
	notes := input.Notes
	if notes == nil {
		notes = []string{}
	}

	ticket := domain.Ticket{
		ID:          s.nextIDLocked(),
		RoomNumber:  input.RoomNumber,
		IsOccupied:  input.IsOccupied,
		Asset:       input.Asset,
		IssueType:   input.IssueType,
		Description: input.Description,
		Urgency:     input.Urgency,
		Impact:      input.Impact,
		Status:      status,
		CreatedAt:   now,
		CreatedBy:   actor,
		AssignedTo:  input.AssignedTo,
		Notes:       notes,
		NeedsPart:   input.NeedsPart,
		PartName:    input.PartName,
		NeedsVendor: input.NeedsVendor,
		VendorType:  input.VendorType,
		History: []domain.AuditEvent{
			{Date: now, Action: actionLabel, User: actor},
		},
	}
	ticket.PriorityScore = domain.PriorityScore(&ticket, now)

	s.tickets = append([]domain.Ticket{ticket}, s.tickets...)
	persistErr := s.persistLocked(ctx)
	result := ticket.Clone()
	s.mu.Unlock()

	if persistErr != nil {
		return result, persistErr
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: result.ID,
		Actor:    actor,
		Payload: events.TicketCreatedPayload{
			RoomNumber:    result.RoomNumber,
			Asset:         result.Asset,
			IssueType:     result.IssueType,
			Status:        result.Status,
			Urgency:       result.Urgency,
			Impact:        result.Impact,
			PriorityScore: result.PriorityScore,
		},
	})
	return result, nil
}

// Update merges the given changes over the existing ticket, appends one
// audit event and recomputes the score. Unknown identifiers yield a
// typed not-found error rather than a silent no-op. Status changes are
// validated against the lifecycle state machine; the terminal status
// cannot be reached here at all, only through Verify, which enforces
// the closure checklist.
func (s *TicketService) Update(ctx context.Context, id string, input UpdateInput, actor domain.Role, actionLabel string) (domain.Ticket, error) {
	s.mu.Lock()

	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return domain.Ticket{}, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	ticket := s.tickets[idx].Clone()

	if input.Status != nil && *input.Status != ticket.Status {
		if *input.Status == domain.TicketStatusVerified {
			s.mu.Unlock()
			return domain.Ticket{}, apperrors.NewConflict(
				"verification requires the closure checklist", map[string]any{"id": id})
		}
		if err := domain.ValidateTransition(ticket.Status, *input.Status); err != nil {
			s.mu.Unlock()
			return domain.Ticket{}, apperrors.NewConflict(err.Error(), map[string]any{
				"from": string(ticket.Status),
				"to":   string(*input.Status),
			})
		}
		if actionLabel == "" {
			actionLabel = defaultStatusLabel(*input.Status)
		}
	}
	if actionLabel == "" {
		actionLabel = "Ticket updated"
	}

	applyUpdate(&ticket, input)
	result, persistErr := s.commitLocked(ctx, idx, ticket, actor, actionLabel)
	s.mu.Unlock()

	if persistErr != nil {
		return result, persistErr
	}
	s.publishUpdated(ctx, result, actor, actionLabel)
	return result, nil
}

// SetStatus performs a validated status transition using the default
// label conventions when none is supplied.
func (s *TicketService) SetStatus(ctx context.Context, id string, status domain.TicketStatus, actor domain.Role, actionLabel string) (domain.Ticket, error) {
	return s.Update(ctx, id, UpdateInput{Status: &status}, actor, actionLabel)
}

// Resolve marks a ticket resolved, pending verification.
func (s *TicketService) Resolve(ctx context.Context, id string, actor domain.Role) (domain.Ticket, error) {
	return s.SetStatus(ctx, id, domain.TicketStatusResolved, actor, "")
}

// Verify closes a resolved ticket. Both checklist confirmations must be
// true; the gate lives here, not in the presentation layer, so no
// caller can reach the terminal status without it.
func (s *TicketService) Verify(ctx context.Context, id string, actor domain.Role, areaClean, assetFunctional bool) (domain.Ticket, error) {
	if !areaClean || !assetFunctional {
		return domain.Ticket{}, apperrors.NewConflict("verification checklist incomplete", map[string]any{
			"area_clean":       areaClean,
			"asset_functional": assetFunctional,
		})
	}

	s.mu.Lock()

	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return domain.Ticket{}, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	ticket := s.tickets[idx].Clone()

	if err := domain.ValidateTransition(ticket.Status, domain.TicketStatusVerified); err != nil {
		s.mu.Unlock()
		return domain.Ticket{}, apperrors.NewConflict(err.Error(), map[string]any{
			"from": string(ticket.Status),
			"to":   string(domain.TicketStatusVerified),
		})
	}

	now := s.now()
	ticket.Status = domain.TicketStatusVerified
	ticket.VerifiedBy = string(actor)
	ticket.ClosedAt = &now
	actionLabel := fmt.Sprintf("Verified and closed by %s", actor)

	result, persistErr := s.commitLocked(ctx, idx, ticket, actor, actionLabel)
	s.mu.Unlock()

	if persistErr != nil {
		return result, persistErr
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketVerified,
		TicketID: result.ID,
		Actor:    actor,
		Payload: events.TicketVerifiedPayload{
			VerifiedBy: result.VerifiedBy,
			ClosedAt:   *result.ClosedAt,
		},
	})
	return result, nil
}

// AddNote appends a free-text note. Notes are merged read-modify-write
// here because Update replaces the whole list.
func (s *TicketService) AddNote(ctx context.Context, id, note string, actor domain.Role) (domain.Ticket, error) {
	s.mu.Lock()

	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return domain.Ticket{}, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	ticket := s.tickets[idx].Clone()
	ticket.Notes = append(ticket.Notes, note)
	actionLabel := "Note added: " + preview(note, 28)

	result, persistErr := s.commitLocked(ctx, idx, ticket, actor, actionLabel)
	s.mu.Unlock()

	if persistErr != nil {
		return result, persistErr
	}
	s.publishUpdated(ctx, result, actor, actionLabel)
	return result, nil
}

// Assign sets the technician working the ticket.
func (s *TicketService) Assign(ctx context.Context, id, technician string, actor domain.Role) (domain.Ticket, error) {
	return s.Update(ctx, id, UpdateInput{AssignedTo: &technician}, actor, "Assigned to "+technician)
}

// Reset discards the persisted snapshot and restores the seed dataset
// with recomputed scores.
func (s *TicketService) Reset(ctx context.Context, actor domain.Role) error {
	s.mu.Lock()

	if err := s.snapshots.Clear(ctx); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("clear snapshot: %w", err)
	}

	now := s.now()
	tickets := repository.Seed(now)
	for i := range tickets {
		tickets[i].PriorityScore = domain.PriorityScore(&tickets[i], now)
	}
	s.tickets = tickets
	count := len(tickets)
	persistErr := s.persistLocked(ctx)
	s.mu.Unlock()

	if persistErr != nil {
		return persistErr
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventCollectionReset,
		Actor:   actor,
		Payload: events.CollectionResetPayload{TicketCount: count},
	})
	return nil
}

// List returns the collection in display order, newest first.
func (s *TicketService) List() []domain.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	tickets := make([]domain.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		tickets = append(tickets, t.Clone())
	}
	return tickets
}

// Get fetches one ticket by identifier.
func (s *TicketService) Get(id string) (domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return domain.Ticket{}, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	return s.tickets[idx].Clone(), nil
}

// commitLocked appends the audit event, recomputes the score, replaces
// the ticket in place and persists. Caller holds the mutex.
func (s *TicketService) commitLocked(ctx context.Context, idx int, ticket domain.Ticket, actor domain.Role, actionLabel string) (domain.Ticket, error) {
	now := s.now()
	ticket.History = append(ticket.History, domain.AuditEvent{
		Date:   now,
		Action: actionLabel,
		User:   actor,
	})
	ticket.PriorityScore = domain.PriorityScore(&ticket, now)
	s.tickets[idx] = ticket
	return ticket.Clone(), s.persistLocked(ctx)
}

// persistLocked writes the full collection through to the snapshot
// store. A failed write leaves the in-memory state updated; the error
// is returned so callers never see a false success.
func (s *TicketService) persistLocked(ctx context.Context) error {
	if err := s.snapshots.Save(ctx, s.tickets); err != nil {
		s.logger.Error("snapshot write failed", zap.Error(err))
		return fmt.Errorf("persist snapshot: %w", err)
	}
	return nil
}

func (s *TicketService) indexLocked(id string) int {
	for i := range s.tickets {
		if s.tickets[i].ID == id {
			return i
		}
	}
	return -1
}

// nextIDLocked assigns one greater than the maximum numeric suffix in
// use, with a floor of 1000. Identifiers are never reused.
func (s *TicketService) nextIDLocked() string {
	maxSuffix := 1000
	for i := range s.tickets {
		if n, ok := numericSuffix(s.tickets[i].ID); ok && n > maxSuffix {
			maxSuffix = n
		}
	}
	return "T-" + strconv.Itoa(maxSuffix+1)
}

func numericSuffix(id string) (int, bool) {
	digits := make([]rune, 0, len(id))
	for _, r := range id {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(string(digits))
	if err != nil {
		return 0, false
	}
	return n, true
}

func defaultStatusLabel(status domain.TicketStatus) string {
	if status == domain.TicketStatusResolved {
		return actionResolved
	}
	return "Status changed to " + string(status)
}

func preview(body string, max int) string {
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	return string(runes[:max]) + "…"
}

func (s *TicketService) publishUpdated(ctx context.Context, ticket domain.Ticket, actor domain.Role, actionLabel string) {
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: ticket.ID,
		Actor:    actor,
		Payload: events.TicketUpdatedPayload{
			Action:        actionLabel,
			Status:        ticket.Status,
			PriorityScore: ticket.PriorityScore,
		},
	})
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func applyUpdate(t *domain.Ticket, input UpdateInput) {
	if input.RoomNumber != nil {
		t.RoomNumber = *input.RoomNumber
	}
	if input.IsOccupied != nil {
		t.IsOccupied = *input.IsOccupied
	}
	if input.Asset != nil {
		t.Asset = *input.Asset
	}
	if input.IssueType != nil {
		t.IssueType = *input.IssueType
	}
	if input.Description != nil {
		t.Description = *input.Description
	}
	if input.Urgency != nil {
		t.Urgency = *input.Urgency
	}
	if input.Impact != nil {
		t.Impact = *input.Impact
	}
	if input.Status != nil {
		t.Status = *input.Status
	}
	if input.AssignedTo != nil {
		t.AssignedTo = *input.AssignedTo
	}
	if input.Notes != nil {
		t.Notes = append([]string(nil), (*input.Notes)...)
	}
	if input.NeedsPart != nil {
		t.NeedsPart = *input.NeedsPart
	}
	if input.PartName != nil {
		t.PartName = *input.PartName
	}
	if input.NeedsVendor != nil {
		t.NeedsVendor = *input.NeedsVendor
	}
	if input.VendorType != nil {
		t.VendorType = *input.VendorType
	}
}
