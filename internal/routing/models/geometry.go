package models

import "math"

// Sub возвращает вектор из q в p.
func (p Point) Sub(q Point) Vector {
	return Vector{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// AddScaled сдвигает точку на v*s.
func (p Point) AddScaled(v Vector, s float64) Point {
	return p.Add(v.Scale(s))
}

func (p Point) Equal(q Point) bool {
	return p.X == q.X && p.Y == q.Y
}

func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s}
}

func (v Vector) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize возвращает единичный вектор (для нулевого нулевой).
func (v Vector) Normalize() Vector {
	l := v.Length()
	if l == 0 {
		return Vector{}
	}
	return Vector{X: v.X / l, Y: v.Y / l}
}

// Perp поворачивает вектор на четверть оборота против часовой стрелки
// на холсте с осью Y вниз: (1, 0) -> (0, -1).
func (v Vector) Perp() Vector {
	return Vector{X: v.Y, Y: -v.X}
}

// Cross возвращает z-компоненту векторного произведения.
func (v Vector) Cross(w Vector) float64 {
	return v.X*w.Y - v.Y*w.X
}

// ============================================================
// Rect helpers
// ============================================================

func (r Rect) MaxX() float64 { return r.X + r.Width }
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Offset сдвигает прямоугольник в абсолютные координаты.
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Bounds возвращает bounding box отрезка a-b (ширина или высота могут быть нулевыми).
func Bounds(a, b Point) Rect {
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Overlaps проверяет строгое пересечение bounding box'ов: касание краёв не считается.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.MaxX() && r.MaxX() > o.X &&
		r.Y < o.MaxY() && r.MaxY() > o.Y
}
