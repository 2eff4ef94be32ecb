package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Health Check Handlers
// ============================================================

// LivenessProbe проверяет, что приложение работает
func LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// ReadinessProbe готов, когда все upstream-сервисы отвечают на /health/ready.
func ReadinessProbe(upstreams ...string) fiber.Handler {
	client := &http.Client{Timeout: 2 * time.Second}

	return func(c fiber.Ctx) error {
		down := []string{}
		for _, base := range upstreams {
			resp, err := client.Get(base + "/health/ready")
			if err != nil {
				log.Printf("[HEALTH] %s unreachable: %v", base, err)
				down = append(down, base)
				continue
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				down = append(down, base)
			}
		}

		if len(down) > 0 {
			return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "not ready",
				"down":   down,
			})
		}
		return c.JSON(fiber.Map{
			"status": "ready",
		})
	}
}

// StartupProbe проверяет, что приложение успешно запустилось
func StartupProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "started",
	})
}
