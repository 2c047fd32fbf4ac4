package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hotel-maintenance/internal/service"
)

// ExportHandler produces the CSV report download.
type ExportHandler struct {
	tickets *service.TicketService
}

// NewExportHandler constructs handler.
func NewExportHandler(ticketService *service.TicketService) *ExportHandler {
	return &ExportHandler{tickets: ticketService}
}

// CSV GET /export/csv.
func (h *ExportHandler) CSV(c *fiber.Ctx) error {
	payload := service.ExportCSV(h.tickets.List())
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+service.ExportFileName+`"`)
	return c.Send(payload)
}
