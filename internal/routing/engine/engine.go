package engine

import (
	"pfd-editor/internal/common/config"
	"pfd-editor/internal/routing/grip"
	"pfd-editor/internal/routing/models"
	"pfd-editor/internal/routing/pathdata"
	"pfd-editor/internal/routing/route"
)

// ============================================================
// Options
// ============================================================

const (
	DefaultStandoff        = 20.0
	DefaultBridgeHalfSize  = 6.0
	DefaultBridgeArcHeight = 4.0
	DefaultArrowOffset     = 4.5
	DefaultSnapRadius      = 20.0
)

type Options struct {
	Standoff        float64
	BridgeHalfSize  float64
	BridgeArcHeight float64
	ArrowOffset     float64
	SnapRadius      float64
	Candidates      []route.Candidate
}

func DefaultOptions() Options {
	return Options{
		Standoff:        DefaultStandoff,
		BridgeHalfSize:  DefaultBridgeHalfSize,
		BridgeArcHeight: DefaultBridgeArcHeight,
		ArrowOffset:     DefaultArrowOffset,
		SnapRadius:      DefaultSnapRadius,
		Candidates:      route.DefaultCandidates(),
	}
}

// OptionsFrom переносит размеры из конфигурации; кандидаты остаются по умолчанию.
func OptionsFrom(r config.Routing) Options {
	opts := DefaultOptions()
	opts.Standoff = r.Standoff
	opts.BridgeHalfSize = r.BridgeHalfSize
	opts.BridgeArcHeight = r.BridgeArcHeight
	opts.ArrowOffset = r.ArrowOffset
	opts.SnapRadius = r.SnapRadius
	return opts
}

// ============================================================
// Engine
// ============================================================

// Engine не хранит состояния между вызовами: результат зависит только от входа.
type Engine struct {
	opts Options
}

func New(opts Options) *Engine {
	if len(opts.Candidates) == 0 {
		opts.Candidates = route.DefaultCandidates()
	}
	return &Engine{opts: opts}
}

func (e *Engine) Options() Options {
	return e.opts
}

type wire struct {
	conn      models.Connection
	start     models.Point
	end       models.Point
	startSide models.Side
	endSide   models.Side
	bends     []models.Point
	first     int // индекс первого отрезка в пуле
	length    int
}

// Compute строит пути для всех соединений. Соединения с несуществующим
// элементом или неверным грипом пропускаются, остальные считаются как обычно.
func (e *Engine) Compute(items []models.CanvasItem, connections []models.Connection) map[int]models.PathMetadata {
	byID := make(map[string]models.CanvasItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	obstacles := grip.Obstacles(items)

	var wires []wire
	var pool []models.LineSegment

	for _, conn := range connections {
		w, ok := e.resolve(conn, byID, obstacles)
		if !ok {
			continue
		}

		segs := pathdata.Segments(w.points(e.opts.Standoff), conn.ID)
		w.first = len(pool)
		w.length = len(segs)
		pool = append(pool, segs...)
		wires = append(wires, w)
	}

	crossings := pathdata.FindCrossings(pool)
	bridge := pathdata.BridgeOptions{HalfSize: e.opts.BridgeHalfSize, ArcHeight: e.opts.BridgeArcHeight}

	out := make(map[int]models.PathMetadata, len(wires))
	for _, w := range wires {
		segs := pool[w.first : w.first+w.length]
		meta := models.PathMetadata{
			PathData:  pathdata.Build(w.start, segs, crossings[w.first:w.first+w.length], bridge),
			Waypoints: w.bends,
		}
		if len(segs) > 0 {
			end, angle := pathdata.Arrow(w.end, segs[len(segs)-1], e.opts.ArrowOffset)
			meta.EndPoint = &end
			meta.ArrowAngle = &angle
		}
		out[w.conn.ID] = meta
	}
	return out
}

// resolve находит грипы, стабы и изломы одного соединения.
func (e *Engine) resolve(conn models.Connection, byID map[string]models.CanvasItem, obstacles []models.Rect) (wire, bool) {
	src, ok := byID[conn.SourceItemID]
	if !ok {
		return wire{}, false
	}
	dst, ok := byID[conn.TargetItemID]
	if !ok {
		return wire{}, false
	}

	start, startSide, ok := grip.Resolve(src, conn.SourceGripIndex)
	if !ok {
		return wire{}, false
	}
	end, endSide, ok := grip.Resolve(dst, conn.TargetGripIndex)
	if !ok {
		return wire{}, false
	}

	var bends []models.Point
	if len(conn.Waypoints) > 0 {
		bends = append(bends, conn.Waypoints...)
	} else {
		bends = route.SmartRoute(
			grip.Standoff(start, startSide, e.opts.Standoff),
			grip.Standoff(end, endSide, e.opts.Standoff),
			obstacles,
			e.opts.Candidates,
		)
	}

	return wire{
		conn:      conn,
		start:     start,
		end:       end,
		startSide: startSide,
		endSide:   endSide,
		bends:     bends,
	}, true
}

// points: [грип, стаб, ...изломы, стаб, грип].
func (w wire) points(standoff float64) []models.Point {
	pts := make([]models.Point, 0, len(w.bends)+4)
	pts = append(pts, w.start, grip.Standoff(w.start, w.startSide, standoff))
	pts = append(pts, w.bends...)
	pts = append(pts, grip.Standoff(w.end, w.endSide, standoff), w.end)
	return pts
}
