package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hotel-maintenance/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Tickets   *handlers.TicketsHandler
	Analytics *handlers.AnalyticsHandler
	Scenarios *handlers.ScenariosHandler
	Export    *handlers.ExportHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	tickets := app.Group("/tickets")
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/", cfg.Tickets.ListTickets)
	tickets.Post("/reset", cfg.Tickets.ResetTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Patch("/:id", cfg.Tickets.UpdateTicket)
	tickets.Post("/:id/status", cfg.Tickets.SetStatus)
	tickets.Post("/:id/resolve", cfg.Tickets.ResolveTicket)
	tickets.Post("/:id/verify", cfg.Tickets.VerifyTicket)
	tickets.Post("/:id/notes", cfg.Tickets.AddNote)
	tickets.Post("/:id/assign", cfg.Tickets.AssignTicket)
	tickets.Post("/:id/part", cfg.Tickets.MarkWaitingPart)
	tickets.Post("/:id/vendor", cfg.Tickets.MarkVendor)

	app.Get("/rooms", cfg.Analytics.Rooms)
	app.Get("/analytics/dashboard", cfg.Analytics.Dashboard)

	app.Post("/scenarios/:name", cfg.Scenarios.Run)

	app.Get("/export/csv", cfg.Export.CSV)
}
