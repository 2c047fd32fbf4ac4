package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hotel-maintenance/internal/domain"
	"github.com/spec-kit/hotel-maintenance/internal/service"
)

// AnalyticsHandler serves derived dashboard state.
type AnalyticsHandler struct {
	service *service.AnalyticsService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: analyticsService}
}

// Dashboard GET /analytics/dashboard.
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.service.Dashboard()})
}

// Rooms GET /rooms returns the static room catalog plus reference lists.
func (h *AnalyticsHandler) Rooms(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{
		"rooms":       domain.Rooms(),
		"assets":      domain.Assets,
		"issue_types": domain.IssueTypes,
	}})
}
