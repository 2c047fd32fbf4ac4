package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/hotel-maintenance/internal/api/http/handlers"
	"github.com/spec-kit/hotel-maintenance/internal/config"
	"github.com/spec-kit/hotel-maintenance/internal/observability"
	"github.com/spec-kit/hotel-maintenance/internal/repository"
	"github.com/spec-kit/hotel-maintenance/internal/service"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	clock := func() time.Time {
		return time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	}
	ticketService := service.NewTicketService(service.TicketDependencies{
		Snapshots: repository.NewMemorySnapshotStore(),
		Clock:     clock,
	})
	if _, err := ticketService.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	analyticsService := service.NewAnalyticsService(ticketService, config.AnalyticsConfig{
		RecurrenceWindowDays: 30,
		HotspotWindowDays:    7,
		HotspotThreshold:     3,
		ClosedWindowDays:     7,
		TopPriorityLimit:     5,
	}, clock)
	scenarioService := service.NewScenarioService(ticketService, nil)

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:    handlers.NewHealthHandler("test", "test", nil),
		Tickets:   handlers.NewTicketsHandler(ticketService),
		Analytics: handlers.NewAnalyticsHandler(analyticsService),
		Scenarios: handlers.NewScenariosHandler(scenarioService),
		Export:    handlers.NewExportHandler(ticketService),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	decoded := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if len(raw) > 0 && strings.Contains(resp.Header.Get("Content-Type"), "json") {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode body %q: %v", raw, err)
		}
	}
	return resp, decoded
}

func TestCreateAndGetTicket(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, fiber.MethodPost, "/tickets", map[string]any{
		"room_number": "107",
		"asset":       "Plumbing",
		"issue_type":  "Leaking",
		"description": "Shower head drips.",
		"urgency":     "MEDIUM",
		"impact":      "ANNOYING",
	}, map[string]string{"X-Actor-Role": "RECEPTION"})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, body = %v", resp.StatusCode, body)
	}
	data := body["data"].(map[string]any)
	id := data["id"].(string)
	if id != "T-1010" {
		t.Fatalf("id = %s", id)
	}

	resp, body = doJSON(t, app, fiber.MethodGet, "/tickets/"+id, nil, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	data = body["data"].(map[string]any)
	if data["status"] != "OPEN" || data["created_by"] != "RECEPTION" {
		t.Fatalf("unexpected ticket: %v", data)
	}
}

func TestCreateTicketRejectsMissingFields(t *testing.T) {
	app := newTestApp(t)
	resp, _ := doJSON(t, app, fiber.MethodPost, "/tickets", map[string]any{"room_number": "107"}, nil)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestUnknownActorRoleRejected(t *testing.T) {
	app := newTestApp(t)
	resp, _ := doJSON(t, app, fiber.MethodPost, "/tickets", map[string]any{
		"room_number": "107",
		"asset":       "Plumbing",
		"issue_type":  "Leaking",
	}, map[string]string{"X-Actor-Role": "JANITOR"})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGetUnknownTicket(t *testing.T) {
	app := newTestApp(t)
	resp, body := doJSON(t, app, fiber.MethodGet, "/tickets/T-9999", nil, nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	errBody := body["error"].(map[string]any)
	if errBody["code"] != "NOT_FOUND" {
		t.Fatalf("code = %v", errBody["code"])
	}
}

func TestVerifyEndpointEnforcesChecklist(t *testing.T) {
	app := newTestApp(t)

	// T-1004 is the seeded resolved ticket.
	resp, _ := doJSON(t, app, fiber.MethodPost, "/tickets/T-1004/verify", map[string]any{
		"area_clean":       true,
		"asset_functional": false,
	}, nil)
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}

	resp, body := doJSON(t, app, fiber.MethodPost, "/tickets/T-1004/verify", map[string]any{
		"area_clean":       true,
		"asset_functional": true,
	}, map[string]string{"X-Actor-Role": "MANAGEMENT"})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, body = %v", resp.StatusCode, body)
	}
	data := body["data"].(map[string]any)
	if data["status"] != "VERIFIED" || data["verified_by"] != "MANAGEMENT" {
		t.Fatalf("unexpected ticket: %v", data)
	}
}

func TestDashboardEndpoint(t *testing.T) {
	app := newTestApp(t)
	resp, body := doJSON(t, app, fiber.MethodGet, "/analytics/dashboard", nil, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	data := body["data"].(map[string]any)
	kpis := data["kpis"].(map[string]any)
	if kpis["pending"].(float64) != 8 {
		t.Fatalf("pending = %v, want 8", kpis["pending"])
	}
	if rooms := data["rooms"].([]any); len(rooms) != 20 {
		t.Fatalf("rooms = %d, want 20", len(rooms))
	}
}

func TestScenarioEndpoint(t *testing.T) {
	app := newTestApp(t)
	resp, body := doJSON(t, app, fiber.MethodPost, "/scenarios/GUEST_COMPLAINT", nil, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	data := body["data"].(map[string]any)
	if data["ticket_id"] != "T-1010" {
		t.Fatalf("ticket_id = %v", data["ticket_id"])
	}

	resp, _ = doJSON(t, app, fiber.MethodPost, "/scenarios/NOPE", nil, nil)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestExportEndpoint(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest(fiber.MethodGet, "/export/csv", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type = %s", ct)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.HasPrefix(string(raw), `"ID","Room"`) {
		t.Fatalf("unexpected payload start: %.40s", raw)
	}
	if got := strings.Count(string(raw), "\n"); got != 10 {
		t.Fatalf("got %d lines, want header plus nine seed rows", got)
	}
}

func TestHealthLive(t *testing.T) {
	app := newTestApp(t)
	resp, body := doJSON(t, app, fiber.MethodGet, "/health/live", nil, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["status"] != "alive" {
		t.Fatalf("body = %v", body)
	}
}
