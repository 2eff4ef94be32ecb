package models

// ============================================================
// Geometry primitives
// ============================================================

// Point задаёт координату на холсте.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vector хранит направление или смещение, не позицию.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ============================================================
// Canvas
// ============================================================

type Side string

const (
	SideLeft   Side = "left"
	SideRight  Side = "right"
	SideTop    Side = "top"
	SideBottom Side = "bottom"
)

// Grip задаёт точку привязки в процентах от отрисованного бокса элемента.
// Y=100 соответствует верхнему краю, Y=0 нижнему.
type Grip struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type CanvasItem struct {
	ID            string  `json:"id"`
	Component     string  `json:"component,omitempty"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	NaturalWidth  float64 `json:"naturalWidth"`
	NaturalHeight float64 `json:"naturalHeight"`
	Grips         []Grip  `json:"grips"`
}

// Connection связывает два грипа. Непустые Waypoints заменяют автоматический роутинг.
type Connection struct {
	ID              int     `json:"id"`
	SourceItemID    string  `json:"sourceItemId"`
	SourceGripIndex int     `json:"sourceGripIndex"`
	TargetItemID    string  `json:"targetItemId"`
	TargetGripIndex int     `json:"targetGripIndex"`
	Waypoints       []Point `json:"waypoints,omitempty"`
}

// ============================================================
// Routing output
// ============================================================

// LineSegment живёт только в рамках одного прохода роутинга.
type LineSegment struct {
	P1     Point
	P2     Point
	LineID int
	Dir    Vector
	Len    float64
}

// PathMetadata является единственным контрактом для рендереров.
type PathMetadata struct {
	PathData   string   `json:"pathData"`
	EndPoint   *Point   `json:"endPoint,omitempty"`
	ArrowAngle *float64 `json:"arrowAngle,omitempty"`
	Waypoints  []Point  `json:"waypoints,omitempty"`
}
