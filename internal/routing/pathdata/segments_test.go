package pathdata

import (
	"fmt"
	"testing"

	"pfd-editor/internal/routing/models"

	"github.com/tdewolff/test"
)

func seg(x1, y1, x2, y2 float64, id int) models.LineSegment {
	return Segments([]models.Point{{X: x1, Y: y1}, {X: x2, Y: y2}}, id)[0]
}

func TestSegmentsDropDegenerate(t *testing.T) {
	segs := Segments([]models.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5},
	}, 7)

	test.T(t, len(segs), 2)
	test.T(t, segs[0].Dir, models.Vector{X: 1, Y: 0})
	test.T(t, segs[0].Len, 10.0)
	test.T(t, segs[1].P1, models.Point{X: 10, Y: 0})
	test.T(t, segs[1].Dir, models.Vector{X: 0, Y: 1})
	test.T(t, segs[1].LineID, 7)

	test.T(t, len(Segments([]models.Point{{X: 1, Y: 1}}, 1)), 0)
	test.T(t, len(Segments([]models.Point{{X: 1, Y: 1}, {X: 1, Y: 1}}, 1)), 0)
}

func TestIntersect(t *testing.T) {
	var tts = []struct {
		name string
		a, b models.LineSegment
		ok   bool
		want Crossing
	}{
		{"cross", seg(0, 50, 100, 50, 2), seg(25, 0, 25, 100, 1), true, Crossing{Point: models.Point{X: 25, Y: 50}, T: 25}},
		{"cross reversed", seg(100, 50, 0, 50, 2), seg(25, 100, 25, 0, 1), true, Crossing{Point: models.Point{X: 25, Y: 50}, T: 75}},
		{"parallel", seg(0, 0, 100, 0, 2), seg(0, 10, 100, 10, 1), false, Crossing{}},
		{"collinear overlap", seg(0, 0, 100, 0, 2), seg(50, 0, 150, 0, 1), false, Crossing{}},
		{"t-junction", seg(0, 0, 100, 0, 2), seg(50, 0, 50, 100, 1), false, Crossing{}},
		{"shared endpoint", seg(0, 0, 100, 0, 2), seg(100, 0, 100, 100, 1), false, Crossing{}},
		{"miss", seg(0, 0, 10, 0, 2), seg(50, -10, 50, 10, 1), false, Crossing{}},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := Intersect(tt.a, tt.b)
			test.T(t, ok, tt.ok)
			test.T(t, c, tt.want)
		})
	}
}

func TestFindCrossingsHigherIDYields(t *testing.T) {
	pool := []models.LineSegment{
		seg(0, 50, 100, 50, 1),
		seg(30, 0, 30, 100, 2),
		seg(60, 0, 60, 100, 3),
	}

	cs := FindCrossings(pool)
	test.T(t, len(cs[0]), 0, "lowest id never bridges")
	test.T(t, cs[1], []Crossing{{Point: models.Point{X: 30, Y: 50}, T: 50}})
	test.T(t, cs[2], []Crossing{{Point: models.Point{X: 60, Y: 50}, T: 50}})
}

func TestFindCrossingsSortedAndSelfIgnored(t *testing.T) {
	pool := []models.LineSegment{
		seg(75, 0, 75, 100, 1),
		seg(25, 0, 25, 100, 1),
		seg(0, 50, 100, 50, 5),
		// петля самого соединения 5
		seg(50, 0, 50, 100, 5),
	}

	cs := FindCrossings(pool)
	test.T(t, len(cs[2]), 2)
	test.T(t, cs[2][0].T, 25.0)
	test.T(t, cs[2][1].T, 75.0)
	test.T(t, len(cs[3]), 0, "a wire does not bridge itself")
}

func TestFindCrossingsEqualIDs(t *testing.T) {
	pool := []models.LineSegment{seg(0, 50, 100, 50, 4), seg(50, 0, 50, 100, 4)}
	for i, c := range FindCrossings(pool) {
		test.T(t, len(c), 0, fmt.Sprint("segment ", i))
	}
}
