package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"pfd-editor/internal/routing/engine"
	"pfd-editor/internal/routing/grip"
	"pfd-editor/internal/routing/models"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Route Handler
// ============================================================

type RouteHandler struct {
	engine *engine.Engine
}

func NewRouteHandler(e *engine.Engine) *RouteHandler {
	return &RouteHandler{engine: e}
}

type routeRequest struct {
	Items       []models.CanvasItem `json:"items"`
	Connections []models.Connection `json:"connections"`
}

type routeResponse struct {
	Paths map[int]models.PathMetadata `json:"paths"`
}

type snapRequest struct {
	Items         []models.CanvasItem `json:"items"`
	Point         models.Point        `json:"point"`
	ExcludeItemID string              `json:"excludeItemId,omitempty"`
}

type previewRequest struct {
	Items           []models.CanvasItem `json:"items"`
	SourceItemID    string              `json:"sourceItemId"`
	SourceGripIndex int                 `json:"sourceGripIndex"`
	Cursor          models.Point        `json:"cursor"`
}

type previewResponse struct {
	Path   models.PathMetadata `json:"path"`
	Target *grip.Target        `json:"target,omitempty"`
}

// Route считает пути всех соединений диаграммы.
func (h *RouteHandler) Route(c fiber.Ctx) error {
	var req routeRequest
	if err := decode(c, &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	paths := h.engine.Compute(req.Items, req.Connections)
	log.Printf("[ROUTE] items=%d connections=%d routed=%d", len(req.Items), len(req.Connections), len(paths))

	return c.JSON(routeResponse{Paths: paths})
}

// Snap возвращает грип, к которому «прилипает» курсор.
func (h *RouteHandler) Snap(c fiber.Ctx) error {
	var req snapRequest
	if err := decode(c, &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	target, ok := h.engine.Snap(req.Items, req.Point, req.ExcludeItemID)
	if !ok {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "no grip in range"})
	}
	return c.JSON(target)
}

// Preview строит путь провода, который ещё не присоединён.
func (h *RouteHandler) Preview(c fiber.Ctx) error {
	var req previewRequest
	if err := decode(c, &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	path, target, ok := h.engine.Preview(req.Items, req.SourceItemID, req.SourceGripIndex, req.Cursor)
	if !ok {
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{"error": "source grip not found"})
	}
	return c.JSON(previewResponse{Path: path, Target: target})
}

// ============================================================
// Helpers
// ============================================================

// decode разбирает JSON тело запроса.
func decode(c fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return errors.New("body required")
	}
	if err := json.Unmarshal(c.Body(), v); err != nil {
		log.Printf("[ROUTE] Decode error: %v", err)
		return errors.New("invalid JSON payload")
	}
	return nil
}
