package engine

import (
	"math"
	"testing"

	"pfd-editor/internal/common/config"
	"pfd-editor/internal/routing/models"
	"pfd-editor/internal/routing/pathdata"
	"pfd-editor/internal/routing/route"

	"github.com/tdewolff/test"
)

func item(id string, x, y, w, h float64, grips ...models.Grip) models.CanvasItem {
	return models.CanvasItem{
		ID: id, X: x, Y: y, Width: w, Height: h,
		NaturalWidth: w, NaturalHeight: h,
		Grips: grips,
	}
}

func conn(id int, src string, srcGrip int, dst string, dstGrip int) models.Connection {
	return models.Connection{ID: id, SourceItemID: src, SourceGripIndex: srcGrip, TargetItemID: dst, TargetGripIndex: dstGrip}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// крест: A -> B горизонтально, C -> D вертикально через середину
func crossLayout() []models.CanvasItem {
	return []models.CanvasItem{
		item("A", 0, 100, 20, 20, models.Grip{X: 100, Y: 50}),
		item("B", 200, 100, 20, 20, models.Grip{X: 0, Y: 50}),
		item("C", 100, 0, 20, 20, models.Grip{X: 50, Y: 0}),
		item("D", 100, 200, 20, 20, models.Grip{X: 50, Y: 100}),
	}
}

const (
	horizontalPlain  = "M 20 110 L 40 110 L 180 110 L 200 110"
	horizontalBridge = "M 20 110 L 40 110 L 104 110 Q 110 102 116 110 L 180 110 L 200 110"
	verticalPlain    = "M 110 20 L 110 40 L 110 180 L 110 200"
	verticalBridge   = "M 110 20 L 110 40 L 110 104 Q 118 110 110 116 L 110 180 L 110 200"
)

func TestComputeHigherIDBridges(t *testing.T) {
	e := New(DefaultOptions())

	paths := e.Compute(crossLayout(), []models.Connection{conn(1, "A", 0, "B", 0), conn(2, "C", 0, "D", 0)})
	test.T(t, len(paths), 2)
	test.T(t, paths[1].PathData, horizontalPlain)
	test.T(t, paths[2].PathData, verticalBridge)

	test.T(t, *paths[2].EndPoint, models.Point{X: 110, Y: 195.5})
	test.That(t, near(*paths[2].ArrowAngle, 180), "angle", *paths[2].ArrowAngle)
	test.T(t, *paths[1].EndPoint, models.Point{X: 195.5, Y: 110})
	test.That(t, near(*paths[1].ArrowAngle, 90), "angle", *paths[1].ArrowAngle)

	paths = e.Compute(crossLayout(), []models.Connection{conn(2, "A", 0, "B", 0), conn(1, "C", 0, "D", 0)})
	test.T(t, paths[2].PathData, horizontalBridge)
	test.T(t, paths[1].PathData, verticalPlain)
}

func TestComputeOrderIndependent(t *testing.T) {
	e := New(DefaultOptions())
	conns := []models.Connection{conn(1, "A", 0, "B", 0), conn(2, "C", 0, "D", 0)}
	reversed := []models.Connection{conns[1], conns[0]}

	items := crossLayout()
	swapped := []models.CanvasItem{items[3], items[2], items[1], items[0]}

	want := e.Compute(items, conns)
	test.T(t, e.Compute(items, conns), want)
	test.T(t, e.Compute(items, reversed), want)
	test.T(t, e.Compute(swapped, reversed), want)
}

func TestComputeSkipsUnresolvable(t *testing.T) {
	e := New(DefaultOptions())
	paths := e.Compute(crossLayout(), []models.Connection{
		conn(1, "A", 0, "missing", 0),
		conn(2, "A", 3, "B", 0),
		conn(3, "A", 0, "B", -1),
		conn(4, "A", 0, "B", 0),
	})
	test.T(t, len(paths), 1)
	test.T(t, paths[4].PathData, horizontalPlain)

	test.T(t, len(e.Compute(nil, nil)), 0)
	test.T(t, len(e.Compute(crossLayout(), nil)), 0)
}

func TestComputeWaypointsOverride(t *testing.T) {
	e := New(DefaultOptions())
	c := conn(1, "A", 0, "B", 0)
	c.Waypoints = []models.Point{{X: 40, Y: 300}, {X: 180, Y: 300}}

	paths := e.Compute(crossLayout(), []models.Connection{c})
	test.T(t, paths[1].PathData, "M 20 110 L 40 110 L 40 300 L 180 300 L 180 110 L 200 110")
	test.T(t, paths[1].Waypoints, c.Waypoints)
	test.T(t, *paths[1].EndPoint, models.Point{X: 195.5, Y: 110})
}

func TestComputeDoglegAroundObstacles(t *testing.T) {
	items := []models.CanvasItem{
		item("A", 0, 0, 100, 100, models.Grip{X: 100, Y: 50}),
		item("B", 400, 200, 100, 100, models.Grip{X: 0, Y: 50}),
		item("C", 200, 0, 100, 100),
		item("D", 110, 180, 20, 20),
	}

	paths := New(DefaultOptions()).Compute(items, []models.Connection{conn(7, "A", 0, "B", 0)})
	meta := paths[7]
	test.T(t, meta.Waypoints, []models.Point{{X: 120, Y: 150}, {X: 380, Y: 150}})
	test.T(t, meta.PathData, "M 100 50 L 120 50 L 120 150 L 380 150 L 380 250 L 400 250")
	test.T(t, *meta.EndPoint, models.Point{X: 395.5, Y: 250})
	test.That(t, near(*meta.ArrowAngle, 90), "angle", *meta.ArrowAngle)

	cmds, err := pathdata.ParsePath(meta.PathData)
	test.Error(t, err)
	vs := pathdata.Vertices(cmds)
	test.T(t, vs[0], models.Point{X: 100, Y: 50})
	test.T(t, vs[len(vs)-1], models.Point{X: 400, Y: 250})
}

func TestComputeCustomOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.Standoff = 10
	opts.BridgeHalfSize = 10
	opts.BridgeArcHeight = 2
	opts.ArrowOffset = 0
	opts.Candidates = []route.Candidate{route.VerticalFirst}

	paths := New(opts).Compute(crossLayout(), []models.Connection{conn(1, "A", 0, "B", 0), conn(2, "C", 0, "D", 0)})
	test.T(t, paths[2].PathData, "M 110 20 L 110 30 L 110 100 Q 114 110 110 120 L 110 190 L 110 200")
	test.T(t, *paths[2].EndPoint, models.Point{X: 110, Y: 200})
}

func TestNewFillsCandidates(t *testing.T) {
	e := New(Options{Standoff: 20})
	test.T(t, len(e.Options().Candidates), 4)
}

func TestOptionsFrom(t *testing.T) {
	opts := OptionsFrom(config.Routing{
		Standoff:        30,
		BridgeHalfSize:  8,
		BridgeArcHeight: 5,
		ArrowOffset:     3,
		SnapRadius:      15,
	})
	test.T(t, opts.Standoff, 30.0)
	test.T(t, opts.BridgeHalfSize, 8.0)
	test.T(t, opts.BridgeArcHeight, 5.0)
	test.T(t, opts.ArrowOffset, 3.0)
	test.T(t, opts.SnapRadius, 15.0)
	test.T(t, len(opts.Candidates), 4)
}
