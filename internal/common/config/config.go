package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int
	Routing      Routing
}

// Routing задаёт размеры, которыми движок оперирует при построении путей.
type Routing struct {
	Standoff        float64 `yaml:"standoff"`
	BridgeHalfSize  float64 `yaml:"bridge_half_size"`
	BridgeArcHeight float64 `yaml:"bridge_arc_height"`
	ArrowOffset     float64 `yaml:"arrow_offset"`
	SnapRadius      float64 `yaml:"snap_radius"`
}

func DefaultRouting() Routing {
	return Routing{
		Standoff:        20,
		BridgeHalfSize:  6,
		BridgeArcHeight: 4,
		ArrowOffset:     4.5,
		SnapRadius:      20,
	}
}

// Load загружает конфигурацию из переменных окружения.
// Если задан ROUTING_CONFIG, сначала читается YAML, env перекрывает его.
func Load() (*Config, error) {
	routing := DefaultRouting()
	if path := os.Getenv("ROUTING_CONFIG"); path != "" {
		fromFile, err := LoadRoutingFile(path, routing)
		if err != nil {
			return nil, err
		}
		routing = fromFile
	}

	routing.Standoff = getEnvAsFloat("ROUTE_STANDOFF", routing.Standoff)
	routing.BridgeHalfSize = getEnvAsFloat("ROUTE_BRIDGE_HALF_SIZE", routing.BridgeHalfSize)
	routing.BridgeArcHeight = getEnvAsFloat("ROUTE_BRIDGE_ARC_HEIGHT", routing.BridgeArcHeight)
	routing.ArrowOffset = getEnvAsFloat("ROUTE_ARROW_OFFSET", routing.ArrowOffset)
	routing.SnapRadius = getEnvAsFloat("ROUTE_SNAP_RADIUS", routing.SnapRadius)

	return &Config{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
		Routing:      routing,
	}, nil
}

// LoadRoutingFile читает YAML поверх base: отсутствующие ключи остаются как в base.
func LoadRoutingFile(path string, base Routing) (Routing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read routing config: %w", err)
	}

	out := base
	if err := yaml.Unmarshal(data, &out); err != nil {
		return base, fmt.Errorf("parse routing config: %w", err)
	}
	return out, nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
