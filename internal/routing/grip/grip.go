package grip

import (
	"math"

	"pfd-editor/internal/routing/models"
)

// ============================================================
// Aspect-fit
// ============================================================

// RenderRect вписывает натуральные пропорции элемента в его бокс (letterbox)
// и возвращает прямоугольник относительно левого верхнего угла бокса.
// Без натуральных размеров используется весь бокс.
func RenderRect(item models.CanvasItem) models.Rect {
	if item.NaturalWidth <= 0 || item.NaturalHeight <= 0 || item.Width <= 0 || item.Height <= 0 {
		return models.Rect{Width: item.Width, Height: item.Height}
	}

	scale := math.Min(item.Width/item.NaturalWidth, item.Height/item.NaturalHeight)
	w := item.NaturalWidth * scale
	h := item.NaturalHeight * scale

	return models.Rect{
		X:      (item.Width - w) / 2,
		Y:      (item.Height - h) / 2,
		Width:  w,
		Height: h,
	}
}

// AbsoluteRect возвращает RenderRect в координатах холста.
func AbsoluteRect(item models.CanvasItem) models.Rect {
	return RenderRect(item).Offset(item.X, item.Y)
}

// ============================================================
// Grip Resolver
// ============================================================

// Resolve возвращает абсолютную позицию грипа и его сторону.
// ok=false, если индекс вне диапазона или у элемента нет грипов.
func Resolve(item models.CanvasItem, index int) (models.Point, models.Side, bool) {
	if index < 0 || index >= len(item.Grips) {
		return models.Point{}, "", false
	}

	g := item.Grips[index]
	r := AbsoluteRect(item)

	p := models.Point{
		X: r.X + (g.X/100)*r.Width,
		Y: r.Y + ((100-g.Y)/100)*r.Height,
	}
	return p, NearestSide(g), true
}

// NearestSide выбирает ближайший край бокса. При равенстве порядок
// left -> right -> top -> bottom.
func NearestSide(g models.Grip) models.Side {
	side := models.SideLeft
	best := g.X

	if d := 100 - g.X; d < best {
		side, best = models.SideRight, d
	}
	if d := 100 - g.Y; d < best {
		side, best = models.SideTop, d
	}
	if d := g.Y; d < best {
		side = models.SideBottom
	}
	return side
}

// ============================================================
// Standoff
// ============================================================

// Standoff выносит точку грипа наружу от элемента на distance.
// Верх холста имеет меньший Y.
func Standoff(p models.Point, side models.Side, distance float64) models.Point {
	switch side {
	case models.SideLeft:
		return models.Point{X: p.X - distance, Y: p.Y}
	case models.SideRight:
		return models.Point{X: p.X + distance, Y: p.Y}
	case models.SideTop:
		return models.Point{X: p.X, Y: p.Y - distance}
	case models.SideBottom:
		return models.Point{X: p.X, Y: p.Y + distance}
	}
	return p
}

// ============================================================
// Obstacles
// ============================================================

// Obstacles строит набор препятствий заново на каждый проход.
func Obstacles(items []models.CanvasItem) []models.Rect {
	rects := make([]models.Rect, 0, len(items))
	for _, item := range items {
		rects = append(rects, AbsoluteRect(item))
	}
	return rects
}
