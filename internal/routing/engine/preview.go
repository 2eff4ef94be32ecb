package engine

import (
	"pfd-editor/internal/routing/grip"
	"pfd-editor/internal/routing/models"
	"pfd-editor/internal/routing/pathdata"
	"pfd-editor/internal/routing/route"
)

// ============================================================
// Preview
// ============================================================

// Snap ищет грип под курсором в пределах SnapRadius.
func (e *Engine) Snap(items []models.CanvasItem, cursor models.Point, excludeID string) (grip.Target, bool) {
	return grip.Snap(items, cursor, e.opts.SnapRadius, excludeID)
}

// Preview строит путь провода, который пользователь ещё тянет от грипа.
// Если курсор прилип к чужому грипу, путь заканчивается в нём как у обычного
// соединения, иначе прямо в курсоре. Мосты в превью не рисуются.
func (e *Engine) Preview(items []models.CanvasItem, sourceItemID string, gripIndex int, cursor models.Point) (models.PathMetadata, *grip.Target, bool) {
	var src *models.CanvasItem
	for i := range items {
		if items[i].ID == sourceItemID {
			src = &items[i]
			break
		}
	}
	if src == nil {
		return models.PathMetadata{}, nil, false
	}

	start, side, ok := grip.Resolve(*src, gripIndex)
	if !ok {
		return models.PathMetadata{}, nil, false
	}
	startStub := grip.Standoff(start, side, e.opts.Standoff)

	end, endStub := cursor, cursor
	var snapped *grip.Target
	if target, ok := e.Snap(items, cursor, sourceItemID); ok {
		snapped = &target
		end = target.Point
		endStub = grip.Standoff(target.Point, target.Side, e.opts.Standoff)
	}

	bends := route.SmartRoute(startStub, endStub, grip.Obstacles(items), e.opts.Candidates)

	pts := make([]models.Point, 0, len(bends)+4)
	pts = append(pts, start, startStub)
	pts = append(pts, bends...)
	pts = append(pts, endStub, end)

	segs := pathdata.Segments(pts, 0)
	meta := models.PathMetadata{
		PathData:  pathdata.Build(start, segs, nil, pathdata.BridgeOptions{}),
		Waypoints: bends,
	}
	if len(segs) > 0 {
		tip, angle := pathdata.Arrow(end, segs[len(segs)-1], e.opts.ArrowOffset)
		meta.EndPoint = &tip
		meta.ArrowAngle = &angle
	}
	return meta, snapped, true
}
