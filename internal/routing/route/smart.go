package route

import (
	"pfd-editor/internal/routing/models"
)

// ============================================================
// Candidates
// ============================================================

// Candidate строит промежуточные изломы ортогонального маршрута start -> end.
type Candidate func(start, end models.Point) []models.Point

// HorizontalFirst даёт один излом в (end.x, start.y).
func HorizontalFirst(start, end models.Point) []models.Point {
	return []models.Point{{X: end.X, Y: start.Y}}
}

// VerticalFirst даёт один излом в (start.x, end.y).
func VerticalFirst(start, end models.Point) []models.Point {
	return []models.Point{{X: start.X, Y: end.Y}}
}

// MidXDogleg даёт два излома на вертикали midX.
func MidXDogleg(start, end models.Point) []models.Point {
	midX := (start.X + end.X) / 2
	return []models.Point{{X: midX, Y: start.Y}, {X: midX, Y: end.Y}}
}

// MidYDogleg даёт два излома на горизонтали midY.
func MidYDogleg(start, end models.Point) []models.Point {
	midY := (start.Y + end.Y) / 2
	return []models.Point{{X: start.X, Y: midY}, {X: end.X, Y: midY}}
}

// DefaultCandidates возвращает кандидатов в порядке приоритета.
func DefaultCandidates() []Candidate {
	return []Candidate{HorizontalFirst, VerticalFirst, MidXDogleg, MidYDogleg}
}

// ============================================================
// Smart Route
// ============================================================

// SmartRoute возвращает изломы первого кандидата без коллизий с obstacles.
// Если заблокированы все, возвращается первый кандидат: маршрут есть всегда.
func SmartRoute(start, end models.Point, obstacles []models.Rect, candidates []Candidate) []models.Point {
	if len(candidates) == 0 {
		candidates = DefaultCandidates()
	}

	for _, candidate := range candidates {
		bends := candidate(start, end)
		if isClear(start, bends, end, obstacles) {
			return bends
		}
	}

	return candidates[0](start, end)
}

// isClear проверяет bounding box каждого отрезка маршрута против препятствий.
// Это приближение: у углов прямоугольников кандидат может быть отклонён лишний раз.
func isClear(start models.Point, bends []models.Point, end models.Point, obstacles []models.Rect) bool {
	prev := start
	for i := 0; i <= len(bends); i++ {
		next := end
		if i < len(bends) {
			next = bends[i]
		}

		box := models.Bounds(prev, next)
		for _, obstacle := range obstacles {
			if box.Overlaps(obstacle) {
				return false
			}
		}
		prev = next
	}
	return true
}
