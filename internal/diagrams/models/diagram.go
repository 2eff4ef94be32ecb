package models

import (
	routing "pfd-editor/internal/routing/models"
)

// ============================================================
// Component Library
// ============================================================

// Component хранит запись библиотеки компонентов; грипы подставляются элементам,
// у которых своих грипов нет.
type Component struct {
	Name      string         `json:"name"`
	Legend    string         `json:"legend"`
	Suffix    string         `json:"suffix"`
	Grips     []routing.Grip `json:"grips"`
	CreatedAt string         `json:"created_at"`
}

// ============================================================
// Diagram
// ============================================================

type Diagram struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Items       []routing.CanvasItem `json:"items"`
	Connections []routing.Connection `json:"connections"`
	CreatedAt   string               `json:"created_at"`
	UpdatedAt   string               `json:"updated_at"`
}
