package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"pfd-editor/internal/diagrams/models"
	"pfd-editor/internal/diagrams/repository"
	routing "pfd-editor/internal/routing/models"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Diagram Handler
// ============================================================

type DiagramHandler struct {
	repo      *repository.Repository
	routerURL string
	client    *http.Client
}

func NewDiagramHandler(repo *repository.Repository, routerURL string) *DiagramHandler {
	return &DiagramHandler{
		repo:      repo,
		routerURL: routerURL,
		client:    http.DefaultClient,
	}
}

type diagramRequest struct {
	Name        string               `json:"name"`
	Items       []routing.CanvasItem `json:"items"`
	Connections []routing.Connection `json:"connections"`
}

// ListComponents отдаёт библиотеку компонентов.
func (h *DiagramHandler) ListComponents(c fiber.Ctx) error {
	comps, err := h.repo.ListComponents(context.Background())
	if err != nil {
		log.Printf("[DIAGRAMS] list components error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list components"})
	}
	return c.JSON(fiber.Map{"components": comps})
}

// GetComponent отдаёт компонент по имени.
func (h *DiagramHandler) GetComponent(c fiber.Ctx) error {
	comp, err := h.repo.GetComponent(context.Background(), c.Params("name"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "component not found"})
		}
		log.Printf("[DIAGRAMS] get component error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load component"})
	}
	return c.JSON(fiber.Map{"component": comp})
}

// SaveComponent создаёт или обновляет компонент.
func (h *DiagramHandler) SaveComponent(c fiber.Ctx) error {
	var comp models.Component
	if err := json.Unmarshal(c.Body(), &comp); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}
	if comp.Name == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "name required"})
	}
	for _, g := range comp.Grips {
		if g.X < 0 || g.X > 100 || g.Y < 0 || g.Y > 100 {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "grip coordinates must be within 0..100"})
		}
	}

	if err := h.repo.SaveComponent(context.Background(), comp); err != nil {
		log.Printf("[DIAGRAMS] save component error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save component"})
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"component": comp})
}

// CreateDiagram сохраняет новую диаграмму.
func (h *DiagramHandler) CreateDiagram(c fiber.Ctx) error {
	var req diagramRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	id, err := h.repo.CreateDiagram(context.Background(), models.Diagram{
		Name:        req.Name,
		Items:       req.Items,
		Connections: req.Connections,
	})
	if err != nil {
		log.Printf("[DIAGRAMS] create error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create diagram"})
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"id": id})
}

// GetDiagram отдаёт сохранённую диаграмму.
func (h *DiagramHandler) GetDiagram(c fiber.Ctx) error {
	d, err := h.loadDiagram(c.Params("id"))
	if err != nil {
		return h.diagramError(c, err)
	}
	return c.JSON(d)
}

// UpdateDiagram перезаписывает диаграмму.
func (h *DiagramHandler) UpdateDiagram(c fiber.Ctx) error {
	var req diagramRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	err := h.repo.UpdateDiagram(context.Background(), models.Diagram{
		ID:          c.Params("id"),
		Name:        req.Name,
		Items:       req.Items,
		Connections: req.Connections,
	})
	if err != nil {
		return h.diagramError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// GetRoutes считает пути соединений диаграммы через Router Service.
// Пути не сохраняются: они каждый раз выводятся из текущего состояния.
func (h *DiagramHandler) GetRoutes(c fiber.Ctx) error {
	d, err := h.loadDiagram(c.Params("id"))
	if err != nil {
		return h.diagramError(c, err)
	}

	items, err := h.withLibraryGrips(d.Items)
	if err != nil {
		log.Printf("[DIAGRAMS] component lookup error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load components"})
	}

	data, err := h.route(items, d.Connections)
	if err != nil {
		log.Printf("[DIAGRAMS] route error: %v", err)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "router failed"})
	}

	c.Set("Content-Type", "application/json")
	return c.Send(data)
}

// ============================================================
// Helpers
// ============================================================

func (h *DiagramHandler) loadDiagram(id string) (*models.Diagram, error) {
	if id == "" {
		return nil, repository.ErrNotFound
	}
	return h.repo.GetDiagram(context.Background(), id)
}

func (h *DiagramHandler) diagramError(c fiber.Ctx, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "diagram not found"})
	}
	log.Printf("[DIAGRAMS] storage error: %v", err)
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "storage failed"})
}

// withLibraryGrips подставляет грипы из библиотеки элементам без собственных.
// Неизвестный компонент не ошибка: элемент остаётся без грипов, и его
// соединения роутер пропустит.
func (h *DiagramHandler) withLibraryGrips(items []routing.CanvasItem) ([]routing.CanvasItem, error) {
	out := make([]routing.CanvasItem, len(items))
	cache := map[string][]routing.Grip{}

	for i, item := range items {
		out[i] = item
		if len(item.Grips) > 0 || item.Component == "" {
			continue
		}

		grips, ok := cache[item.Component]
		if !ok {
			comp, err := h.repo.GetComponent(context.Background(), item.Component)
			switch {
			case err == nil:
				grips = comp.Grips
			case errors.Is(err, repository.ErrNotFound):
				grips = nil
			default:
				return nil, err
			}
			cache[item.Component] = grips
		}
		out[i].Grips = grips
	}
	return out, nil
}

// route отправляет элементы и соединения в Router /route и возвращает тело ответа.
func (h *DiagramHandler) route(items []routing.CanvasItem, conns []routing.Connection) ([]byte, error) {
	if h.routerURL == "" {
		return nil, fmt.Errorf("router url is empty")
	}

	payload, err := json.Marshal(diagramRequest{Items: items, Connections: conns})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, h.routerURL+"/route", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("router status %d", resp.StatusCode)
	}

	return data, nil
}
