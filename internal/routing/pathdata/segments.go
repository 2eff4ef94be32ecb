package pathdata

import (
	"math"
	"sort"

	"pfd-editor/internal/routing/models"
)

const (
	parallelTolerance = 1e-5  // при |R×S| ниже отрезки параллельны
	boundaryTolerance = 0.001 // касание концов не считается пересечением
	minSegmentLength  = 1e-9
)

// ============================================================
// Segments
// ============================================================

// Segments режет ломаную на отрезки, отбрасывая вырожденные.
func Segments(points []models.Point, lineID int) []models.LineSegment {
	var out []models.LineSegment
	for i := 0; i+1 < len(points); i++ {
		v := points[i+1].Sub(points[i])
		l := v.Length()
		if l < minSegmentLength {
			continue
		}
		out = append(out, models.LineSegment{
			P1:     points[i],
			P2:     points[i+1],
			LineID: lineID,
			Dir:    v.Normalize(),
			Len:    l,
		})
	}
	return out
}

// ============================================================
// Intersections
// ============================================================

// Crossing хранит точку пересечения и расстояние до неё от начала отрезка.
type Crossing struct {
	Point models.Point
	T     float64
}

// Intersect решает P + tR = Q + uS. Параллельные и коллинеарные отрезки
// не пересекаются; засчитываются только точки строго внутри обоих отрезков.
func Intersect(a, b models.LineSegment) (Crossing, bool) {
	r := a.P2.Sub(a.P1)
	s := b.P2.Sub(b.P1)

	denom := r.Cross(s)
	if math.Abs(denom) < parallelTolerance {
		return Crossing{}, false
	}

	qp := b.P1.Sub(a.P1)
	t := qp.Cross(s) / denom
	u := qp.Cross(r) / denom

	if t <= boundaryTolerance || t >= 1-boundaryTolerance ||
		u <= boundaryTolerance || u >= 1-boundaryTolerance {
		return Crossing{}, false
	}

	return Crossing{Point: a.P1.AddScaled(r, t), T: t * a.Len}, true
}

// FindCrossings для каждого отрезка пула собирает пересечения с отрезками
// соединений с меньшим id: уступает (получает мост) всегда больший id.
// Отрезки одного соединения не сравниваются. Результат упорядочен по T.
func FindCrossings(pool []models.LineSegment) [][]Crossing {
	out := make([][]Crossing, len(pool))
	for i, seg := range pool {
		for j, other := range pool {
			if i == j || other.LineID >= seg.LineID {
				continue
			}
			if c, ok := Intersect(seg, other); ok {
				out[i] = append(out[i], c)
			}
		}
		sort.SliceStable(out[i], func(a, b int) bool {
			return out[i][a].T < out[i][b].T
		})
	}
	return out
}
