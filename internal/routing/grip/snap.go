package grip

import (
	"math"

	"pfd-editor/internal/routing/models"
)

// ============================================================
// Magnetic snapping
// ============================================================

// Target описывает найденный грип под курсором.
type Target struct {
	ItemID    string       `json:"itemId"`
	GripIndex int          `json:"gripIndex"`
	Side      models.Side  `json:"side"`
	Point     models.Point `json:"point"`
}

// Snap ищет первый грип (в порядке элементов), манхэттенское расстояние до
// которого меньше radius. Элемент excludeID пропускается.
func Snap(items []models.CanvasItem, cursor models.Point, radius float64, excludeID string) (Target, bool) {
	for _, item := range items {
		if item.ID == excludeID {
			continue
		}

		// грубая проверка по расширенному боксу
		if cursor.X < item.X-radius || cursor.X > item.X+item.Width+radius ||
			cursor.Y < item.Y-radius || cursor.Y > item.Y+item.Height+radius {
			continue
		}

		for idx := range item.Grips {
			p, side, ok := Resolve(item, idx)
			if !ok {
				continue
			}
			if math.Abs(cursor.X-p.X)+math.Abs(cursor.Y-p.Y) < radius {
				return Target{ItemID: item.ID, GripIndex: idx, Side: side, Point: p}, true
			}
		}
	}
	return Target{}, false
}
