package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hotel-maintenance/internal/api/dto"
	"github.com/spec-kit/hotel-maintenance/internal/service"
	apperrors "github.com/spec-kit/hotel-maintenance/pkg/util"
)

// ScenariosHandler runs canned demonstration workflows.
type ScenariosHandler struct {
	service *service.ScenarioService
}

// NewScenariosHandler constructs handler.
func NewScenariosHandler(scenarioService *service.ScenarioService) *ScenariosHandler {
	return &ScenariosHandler{service: scenarioService}
}

// Run POST /scenarios/:name.
func (h *ScenariosHandler) Run(c *fiber.Ctx) error {
	scenario, ok := service.ParseScenario(c.Params("name"))
	if !ok {
		return apperrors.NewValidationError("unknown scenario", map[string]any{"scenario": c.Params("name")})
	}
	ticketID, err := h.service.Run(c.Context(), scenario)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ScenarioResponse{
		Scenario: string(scenario),
		TicketID: ticketID,
	}})
}
