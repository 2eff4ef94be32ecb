package pathdata

import (
	"math"
	"strconv"
	"strings"

	"pfd-editor/internal/routing/models"
)

// ============================================================
// Bridges
// ============================================================

// BridgeOptions задаёт размеры «мостика» над чужим проводом.
type BridgeOptions struct {
	HalfSize  float64
	ArcHeight float64
}

// Bridge описывает дугу над пересечением; поля *T считаются вдоль отрезка.
type Bridge struct {
	StartT  float64
	CenterT float64
	EndT    float64
	Start   models.Point
	Control models.Point
	End     models.Point
}

// Bridges строит мосты по отсортированным пересечениям. Мост не может начаться
// раньше конца предыдущего; вырожденный интервал пропускается, и линия идёт
// прямо через эту точку.
func Bridges(seg models.LineSegment, crossings []Crossing, opts BridgeOptions) []Bridge {
	var out []Bridge
	cursor := 0.0

	for _, c := range crossings {
		startT := math.Max(c.T-opts.HalfSize, cursor)
		endT := math.Min(c.T+opts.HalfSize, seg.Len)
		if startT >= endT || startT >= c.T || endT <= c.T {
			continue
		}

		center := seg.P1.AddScaled(seg.Dir, c.T)
		out = append(out, Bridge{
			StartT:  startT,
			CenterT: c.T,
			EndT:    endT,
			Start:   seg.P1.AddScaled(seg.Dir, startT),
			Control: center.AddScaled(seg.Dir.Perp(), 2*opts.ArcHeight),
			End:     seg.P1.AddScaled(seg.Dir, endT),
		})
		cursor = endT
	}
	return out
}

// ============================================================
// Path Assembler
// ============================================================

// Build собирает строку пути из M/L/Q команд. crossings выровнен по segs.
func Build(start models.Point, segs []models.LineSegment, crossings [][]Crossing, opts BridgeOptions) string {
	var b strings.Builder
	b.WriteString("M ")
	b.WriteString(formatPoint(start))

	for i, seg := range segs {
		var cs []Crossing
		if i < len(crossings) {
			cs = crossings[i]
		}
		for _, br := range Bridges(seg, cs, opts) {
			b.WriteString(" L ")
			b.WriteString(formatPoint(br.Start))
			b.WriteString(" Q ")
			b.WriteString(formatPoint(br.Control))
			b.WriteString(" ")
			b.WriteString(formatPoint(br.End))
		}
		b.WriteString(" L ")
		b.WriteString(formatPoint(seg.P2))
	}

	return b.String()
}

// Arrow отводит острие стрелки назад вдоль последнего отрезка на offset
// и возвращает угол в градусах для треугольника, смотрящего вдоль провода.
func Arrow(tip models.Point, last models.LineSegment, offset float64) (models.Point, float64) {
	end := tip.AddScaled(last.Dir, -offset)
	angle := math.Atan2(last.Dir.Y, last.Dir.X)*180/math.Pi + 90
	return end, angle
}

// ============================================================
// Formatting helpers
// ============================================================

func formatFloat(val float64) string {
	if val == 0 {
		val = 0 // -0 -> 0
	}
	return strconv.FormatFloat(val, 'f', -1, 64)
}

func formatPoint(p models.Point) string {
	return formatFloat(p.X) + " " + formatFloat(p.Y)
}
