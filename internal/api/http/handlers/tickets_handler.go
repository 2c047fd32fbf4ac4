package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hotel-maintenance/internal/api/dto"
	"github.com/spec-kit/hotel-maintenance/internal/domain"
	"github.com/spec-kit/hotel-maintenance/internal/service"
	apperrors "github.com/spec-kit/hotel-maintenance/pkg/util"
)

// ActorRoleHeader names the header carrying the acting role. The role
// is a display label for audit trails, not an authorization mechanism.
const ActorRoleHeader = "X-Actor-Role"

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	actor, err := actorRole(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.RoomNumber == "" || req.Asset == "" || req.IssueType == "" {
		return apperrors.NewValidationError("room_number, asset, issue_type required", nil)
	}

	ticket, err := h.service.Create(c.Context(), service.CreateInput{
		RoomNumber:  req.RoomNumber,
		IsOccupied:  req.IsOccupied,
		Asset:       req.Asset,
		IssueType:   req.IssueType,
		Description: strings.TrimSpace(req.Description),
		Urgency:     domain.Urgency(req.Urgency),
		Impact:      domain.Impact(req.Impact),
		AssignedTo:  req.AssignedTo,
		Notes:       req.Notes,
	}, actor, "")
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	tickets := h.service.List()
	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketSummary(tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.service.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// UpdateTicket PATCH /tickets/:id.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	actor, err := actorRole(c)
	if err != nil {
		return err
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.UpdateInput{
		RoomNumber:  req.RoomNumber,
		IsOccupied:  req.IsOccupied,
		Asset:       req.Asset,
		IssueType:   req.IssueType,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Notes:       req.Notes,
		NeedsPart:   req.NeedsPart,
		PartName:    req.PartName,
		NeedsVendor: req.NeedsVendor,
		VendorType:  req.VendorType,
	}
	if req.Urgency != nil {
		urgency := domain.Urgency(*req.Urgency)
		input.Urgency = &urgency
	}
	if req.Impact != nil {
		impact := domain.Impact(*req.Impact)
		input.Impact = &impact
	}
	if req.Status != nil {
		status := domain.TicketStatus(*req.Status)
		input.Status = &status
	}

	ticket, err := h.service.Update(c.Context(), c.Params("id"), input, actor, req.Action)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// SetStatus POST /tickets/:id/status.
func (h *TicketsHandler) SetStatus(c *fiber.Ctx) error {
	actor, err := actorRole(c)
	if err != nil {
		return err
	}
	var req dto.StatusChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}
	ticket, err := h.service.SetStatus(c.Context(), c.Params("id"), domain.TicketStatus(req.Status), actor, req.Action)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// ResolveTicket POST /tickets/:id/resolve.
func (h *TicketsHandler) ResolveTicket(c *fiber.Ctx) error {
	actor, err := actorRole(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.Resolve(c.Context(), c.Params("id"), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// VerifyTicket POST /tickets/:id/verify.
func (h *TicketsHandler) VerifyTicket(c *fiber.Ctx) error {
	actor, err := actorRole(c)
	if err != nil {
		return err
	}
	var req dto.VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.Verify(c.Context(), c.Params("id"), actor, req.AreaClean, req.AssetFunctional)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// AddNote POST /tickets/:id/notes.
func (h *TicketsHandler) AddNote(c *fiber.Ctx) error {
	actor, err := actorRole(c)
	if err != nil {
		return err
	}
	var req dto.NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	note := strings.TrimSpace(req.Note)
	if note == "" {
		return apperrors.NewValidationError("note required", nil)
	}
	ticket, err := h.service.AddNote(c.Context(), c.Params("id"), note, actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// AssignTicket POST /tickets/:id/assign.
func (h *TicketsHandler) AssignTicket(c *fiber.Ctx) error {
	actor, err := actorRole(c)
	if err != nil {
		return err
	}
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Technician) == "" {
		return apperrors.NewValidationError("technician required", nil)
	}
	ticket, err := h.service.Assign(c.Context(), c.Params("id"), req.Technician, actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// MarkWaitingPart POST /tickets/:id/part.
func (h *TicketsHandler) MarkWaitingPart(c *fiber.Ctx) error {
	actor, err := actorRole(c)
	if err != nil {
		return err
	}
	var req dto.PartRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	partName := strings.TrimSpace(req.PartName)
	if partName == "" {
		return apperrors.NewValidationError("part_name required", nil)
	}

	status := domain.TicketStatusWaitingPart
	needsPart := true
	ticket, err := h.service.Update(c.Context(), c.Params("id"), service.UpdateInput{
		Status:    &status,
		NeedsPart: &needsPart,
		PartName:  &partName,
	}, actor, "Marked waiting for part: "+partName)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// MarkVendor POST /tickets/:id/vendor.
func (h *TicketsHandler) MarkVendor(c *fiber.Ctx) error {
	actor, err := actorRole(c)
	if err != nil {
		return err
	}
	var req dto.VendorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	vendorType := strings.TrimSpace(req.VendorType)
	if vendorType == "" {
		return apperrors.NewValidationError("vendor_type required", nil)
	}

	status := domain.TicketStatusVendor
	needsVendor := true
	ticket, err := h.service.Update(c.Context(), c.Params("id"), service.UpdateInput{
		Status:      &status,
		NeedsVendor: &needsVendor,
		VendorType:  &vendorType,
	}, actor, "Marked for vendor: "+vendorType)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// ResetTickets POST /tickets/reset.
func (h *TicketsHandler) ResetTickets(c *fiber.Ctx) error {
	actor, err := actorRole(c)
	if err != nil {
		return err
	}
	if err := h.service.Reset(c.Context(), actor); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"reset": true}})
}

func actorRole(c *fiber.Ctx) (domain.Role, error) {
	role, ok := domain.ParseRole(c.Get(ActorRoleHeader))
	if !ok {
		return "", apperrors.NewValidationError("unknown actor role", map[string]any{
			"header": ActorRoleHeader,
			"value":  c.Get(ActorRoleHeader),
		})
	}
	return role, nil
}

func ticketSummary(t domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:            t.ID,
		RoomNumber:    t.RoomNumber,
		IsOccupied:    t.IsOccupied,
		Asset:         t.Asset,
		IssueType:     t.IssueType,
		Status:        t.Status,
		Urgency:       t.Urgency,
		Impact:        t.Impact,
		PriorityScore: t.PriorityScore,
		AssignedTo:    t.AssignedTo,
		CreatedAt:     t.CreatedAt,
	}
}

func ticketDetail(t domain.Ticket) dto.TicketDetailResponse {
	history := make([]dto.AuditEventResponse, 0, len(t.History))
	for _, event := range t.History {
		history = append(history, dto.AuditEventResponse{
			Date:   event.Date,
			Action: event.Action,
			User:   event.User,
		})
	}
	return dto.TicketDetailResponse{
		TicketSummary: ticketSummary(t),
		Description:   t.Description,
		CreatedBy:     t.CreatedBy,
		Notes:         t.Notes,
		NeedsPart:     t.NeedsPart,
		PartName:      t.PartName,
		NeedsVendor:   t.NeedsVendor,
		VendorType:    t.VendorType,
		VerifiedBy:    t.VerifiedBy,
		ClosedAt:      t.ClosedAt,
		History:       history,
	}
}
