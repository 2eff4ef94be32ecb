package pathdata

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"pfd-editor/internal/routing/models"
)

// ============================================================
// Path Parser
// ============================================================

var commandRe = regexp.MustCompile(`([MmLlHhVvQqZz])([^MmLlHhVvQqZz]*)`)

// Command хранит одну команду пути с абсолютными координатами.
type Command struct {
	Op     byte
	Points []models.Point
}

// ParsePath разбирает M/L/H/V/Q/Z (абсолютные и относительные) и возвращает
// команды в абсолютных координатах. Для Q в Points лежат контрольная и конечная точки.
func ParsePath(d string) ([]Command, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, fmt.Errorf("empty path")
	}

	var cmds []Command
	var current, first models.Point

	for _, match := range commandRe.FindAllStringSubmatch(d, -1) {
		op := match[1][0]
		coords := parseCoords(match[2])
		relative := op >= 'a' && op <= 'z'

		at := func(x, y float64) models.Point {
			if relative {
				return models.Point{X: current.X + x, Y: current.Y + y}
			}
			return models.Point{X: x, Y: y}
		}

		switch op {
		case 'M', 'm':
			if len(coords) < 2 {
				return nil, fmt.Errorf("%c: want 2 coords, got %d", op, len(coords))
			}
			current = at(coords[0], coords[1])
			first = current
			cmds = append(cmds, Command{Op: 'M', Points: []models.Point{current}})

		case 'L', 'l':
			if len(coords) < 2 {
				return nil, fmt.Errorf("%c: want 2 coords, got %d", op, len(coords))
			}
			current = at(coords[0], coords[1])
			cmds = append(cmds, Command{Op: 'L', Points: []models.Point{current}})

		case 'H', 'h':
			if len(coords) < 1 {
				return nil, fmt.Errorf("%c: want 1 coord", op)
			}
			if relative {
				current.X += coords[0]
			} else {
				current.X = coords[0]
			}
			cmds = append(cmds, Command{Op: 'L', Points: []models.Point{current}})

		case 'V', 'v':
			if len(coords) < 1 {
				return nil, fmt.Errorf("%c: want 1 coord", op)
			}
			if relative {
				current.Y += coords[0]
			} else {
				current.Y = coords[0]
			}
			cmds = append(cmds, Command{Op: 'L', Points: []models.Point{current}})

		case 'Q', 'q':
			if len(coords) < 4 {
				return nil, fmt.Errorf("%c: want 4 coords, got %d", op, len(coords))
			}
			ctrl := at(coords[0], coords[1])
			end := at(coords[2], coords[3])
			current = end
			cmds = append(cmds, Command{Op: 'Q', Points: []models.Point{ctrl, end}})

		case 'Z', 'z':
			current = first
			cmds = append(cmds, Command{Op: 'Z'})
		}
	}

	return cmds, nil
}

// Vertices возвращает конечные точки команд по порядку (без контрольных).
func Vertices(cmds []Command) []models.Point {
	var out []models.Point
	for _, c := range cmds {
		if len(c.Points) > 0 {
			out = append(out, c.Points[len(c.Points)-1])
		}
	}
	return out
}

func parseCoords(s string) []float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	// Разделитель: запятая или пробел
	s = strings.ReplaceAll(s, ",", " ")

	var coords []float64
	for _, part := range strings.Fields(s) {
		if val, err := strconv.ParseFloat(part, 64); err == nil {
			coords = append(coords, val)
		}
	}
	return coords
}
