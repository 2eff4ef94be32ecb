package proxy

import (
	"bytes"
	"io"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Routes
// ============================================================

// Mount вешает на группу прокси-маршруты Router и Diagrams сервисов.
func Mount(api fiber.Router, routerURL, diagramsURL string) {
	// Router Service
	api.Post("/route", ProxyTo(routerURL+"/route"))
	api.Post("/snap", ProxyTo(routerURL+"/snap"))
	api.Post("/preview", ProxyTo(routerURL+"/preview"))

	// Diagrams Service
	api.Get("/components", ProxyTo(diagramsURL+"/components"))
	api.Post("/components", ProxyTo(diagramsURL+"/components"))
	api.Get("/components/:name", func(c fiber.Ctx) error {
		return Forward(c, diagramsURL+"/components/"+c.Params("name"))
	})
	api.Post("/diagrams", ProxyTo(diagramsURL+"/diagrams"))
	api.Get("/diagrams/:id", func(c fiber.Ctx) error {
		return Forward(c, diagramsURL+"/diagrams/"+c.Params("id"))
	})
	api.Put("/diagrams/:id", func(c fiber.Ctx) error {
		return Forward(c, diagramsURL+"/diagrams/"+c.Params("id"))
	})
	api.Get("/diagrams/:id/routes", func(c fiber.Ctx) error {
		return Forward(c, diagramsURL+"/diagrams/"+c.Params("id")+"/routes")
	})
}

// ============================================================
// Proxy Handler
// ============================================================

// ProxyTo прокси запрос к другому сервису
func ProxyTo(targetURL string) fiber.Handler {
	return func(c fiber.Ctx) error {
		return forwardRequest(c, targetURL)
	}
}

// Forward проксирует запрос по переданному URL (для динамических путей).
func Forward(c fiber.Ctx, targetURL string) error {
	return forwardRequest(c, targetURL)
}

// forwardRequest проксирует JSON тело и query string как есть.
func forwardRequest(c fiber.Ctx, targetURL string) error {
	if qs := c.Request().URI().QueryString(); len(qs) > 0 {
		targetURL += "?" + string(qs)
	}

	log.Printf("[PROXY] Request: %s %s -> %s (%d bytes)", c.Method(), c.Path(), targetURL, len(c.Body()))

	req, err := http.NewRequest(c.Method(), targetURL, bytes.NewReader(c.Body()))
	if err != nil {
		log.Printf("[PROXY] build request error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "proxy failed"})
	}

	if contentType := c.Get("Content-Type"); contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if auth := c.Get("Authorization"); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("[PROXY] Error: %v", err)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "failed to reach upstream service"})
	}
	defer resp.Body.Close()

	return copyResponse(c, resp)
}

func copyResponse(c fiber.Ctx, resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[PROXY] Read response error: %v", err)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "invalid upstream response"})
	}

	for key, values := range resp.Header {
		if len(values) > 0 {
			c.Set(key, values[0])
		}
	}

	c.Status(resp.StatusCode)
	return c.Send(data)
}
