package route

import (
	"testing"

	"pfd-editor/internal/routing/models"

	"github.com/tdewolff/test"
)

var (
	start = models.Point{X: 0, Y: 0}
	end   = models.Point{X: 200, Y: 100}
)

func TestCandidates(t *testing.T) {
	test.T(t, HorizontalFirst(start, end), []models.Point{{X: 200, Y: 0}})
	test.T(t, VerticalFirst(start, end), []models.Point{{X: 0, Y: 100}})
	test.T(t, MidXDogleg(start, end), []models.Point{{X: 100, Y: 0}, {X: 100, Y: 100}})
	test.T(t, MidYDogleg(start, end), []models.Point{{X: 0, Y: 50}, {X: 200, Y: 50}})
	test.T(t, len(DefaultCandidates()), 4)
}

func TestSmartRouteNoObstacles(t *testing.T) {
	test.T(t, SmartRoute(start, end, nil, nil), []models.Point{{X: 200, Y: 0}})
	test.T(t, SmartRoute(end, start, nil, DefaultCandidates()), []models.Point{{X: 0, Y: 100}})
}

func TestSmartRoutePicksFirstClear(t *testing.T) {
	var tts = []struct {
		name      string
		obstacles []models.Rect
		want      []models.Point
	}{
		{
			name:      "obstacle off route",
			obstacles: []models.Rect{{X: 500, Y: 500, Width: 10, Height: 10}},
			want:      []models.Point{{X: 200, Y: 0}},
		},
		{
			name:      "horizontal first blocked",
			obstacles: []models.Rect{{X: 190, Y: 30, Width: 20, Height: 40}},
			want:      []models.Point{{X: 0, Y: 100}},
		},
		{
			name: "both L shapes blocked",
			obstacles: []models.Rect{
				{X: 190, Y: 30, Width: 20, Height: 40},
				{X: -10, Y: 30, Width: 20, Height: 40},
			},
			want: []models.Point{{X: 100, Y: 0}, {X: 100, Y: 100}},
		},
		{
			name: "only mid-y dogleg clear",
			obstacles: []models.Rect{
				{X: 150, Y: -10, Width: 20, Height: 20},
				{X: 30, Y: 90, Width: 20, Height: 20},
				{X: 90, Y: 70, Width: 20, Height: 20},
			},
			want: []models.Point{{X: 0, Y: 50}, {X: 200, Y: 50}},
		},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			test.T(t, SmartRoute(start, end, tt.obstacles, DefaultCandidates()), tt.want)
		})
	}
}

func TestSmartRouteFallback(t *testing.T) {
	everything := []models.Rect{{X: -1000, Y: -1000, Width: 3000, Height: 3000}}

	bends := SmartRoute(start, end, everything, DefaultCandidates())
	test.That(t, len(bends) > 0, "fallback must not be empty")
	test.T(t, bends, HorizontalFirst(start, end))
}

func TestSmartRouteCustomCandidates(t *testing.T) {
	detourBelow := func(s, e models.Point) []models.Point {
		return []models.Point{{X: s.X, Y: s.Y + 300}, {X: e.X, Y: s.Y + 300}}
	}
	blocker := []models.Rect{{X: 50, Y: 80, Width: 100, Height: 40}}
	left, right := models.Point{X: 0, Y: 100}, models.Point{X: 200, Y: 100}

	// первый кандидат заблокирован, следующий свободен
	bends := SmartRoute(left, right, blocker, []Candidate{HorizontalFirst, detourBelow})
	test.T(t, bends, []models.Point{{X: 0, Y: 400}, {X: 200, Y: 400}})

	bends = SmartRoute(start, end, blocker, []Candidate{VerticalFirst, detourBelow})
	test.T(t, bends, []models.Point{{X: 0, Y: 300}, {X: 200, Y: 300}})

	// всё заблокировано: первый кандидат из переданных
	bends = SmartRoute(left, right, []models.Rect{{X: -1000, Y: -1000, Width: 3000, Height: 3000}},
		[]Candidate{detourBelow, HorizontalFirst})
	test.T(t, bends, detourBelow(left, right))
}
