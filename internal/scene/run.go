package scene

import (
	"fmt"

	"stagehit/internal/mathutil"
	"stagehit/internal/renderer"
)

// Result is the answer to one query. Exactly one answer field is set unless
// Error is.
type Result struct {
	Name     string         `json:"name"`
	Op       string         `json:"op"`
	Touching *bool          `json:"touching,omitempty"`
	Picked   *int32         `json:"picked,omitempty"`
	Hull     []float64      `json:"hull,omitempty"`
	Bounds   *renderer.Rect `json:"bounds,omitempty"`
	Color    string         `json:"color,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// Run answers every query in order against r.
func (s *Scene) Run(r *renderer.Renderer) []Result {
	results := make([]Result, len(s.Queries))
	for i, q := range s.Queries {
		results[i] = runQuery(r, q)
		if results[i].Name == "" {
			results[i].Name = fmt.Sprintf("#%d", i)
		}
	}
	return results
}

func runQuery(r *renderer.Renderer, q Query) (res Result) {
	res = Result{Name: q.Name, Op: q.Op}

	// The renderer panics on unregistered drawables. Validate catches those
	// for loaded scenes; a hand-built scene gets an error result instead.
	defer func() {
		if p := recover(); p != nil {
			res = Result{Name: q.Name, Op: q.Op, Error: fmt.Sprint(p)}
			renderer.Logger().Warn("scene: query failed", "query", q.Name, "err", res.Error)
		}
	}()

	switch q.Op {
	case OpTouchingRect:
		rect, ok := queryRect(r, q)
		res.Touching = boolPtr(ok && r.DrawableTouchingRect(q.Drawable, rect))
	case OpTouchingDrawables:
		rect, ok := queryRect(r, q)
		res.Touching = boolPtr(ok && r.IsTouchingDrawables(q.Drawable, q.Candidates, rect))
	case OpTouchingColor:
		color, err := parseColor(q.Color)
		if err != nil {
			res.Error = err.Error()
			return res
		}
		rect, ok := queryRect(r, q)
		res.Touching = boolPtr(ok && r.IsTouchingColor(q.Drawable, q.Candidates, rect, color))
	case OpColorTouchingColor:
		color, err := parseColor(q.Color)
		if err != nil {
			res.Error = err.Error()
			return res
		}
		mask, err := parseColor(q.Mask)
		if err != nil {
			res.Error = err.Error()
			return res
		}
		rect, ok := queryRect(r, q)
		res.Touching = boolPtr(ok && r.ColorIsTouchingColor(q.Drawable, q.Candidates, rect, color, mask))
	case OpPick:
		if q.Rect == nil {
			res.Error = "pick needs a rect"
			return res
		}
		picked := r.Pick(q.Candidates, *q.Rect)
		res.Picked = &picked
	case OpHull:
		res.Hull = r.DrawableConvexHullPoints(q.Drawable)
		if res.Hull == nil {
			res.Hull = []float64{}
		}
	case OpBounds:
		b := r.Bounds(q.Drawable)
		res.Bounds = &b
	case OpBubbleBounds:
		slice := q.Slice
		if slice <= 0 {
			slice = DefaultBubbleSlice
		}
		b := r.BoundsForBubble(q.Drawable, slice)
		res.Bounds = &b
	case OpAABB:
		b := r.AABB(q.Drawable)
		res.Bounds = &b
	case OpStageColor:
		if q.Point == nil {
			res.Error = "stage_color needs a point"
			return res
		}
		c := r.StageColor(mathutil.Vec2{X: q.Point[0], Y: q.Point[1]}, q.Candidates)
		res.Color = formatColor(c)
	default:
		res.Error = fmt.Sprintf("unknown op %q", q.Op)
	}
	return res
}

// queryRect is the query's rectangle, or the drawable's tight bounds when it
// has none. ok is false when the drawable has no opaque pixels to bound.
func queryRect(r *renderer.Renderer, q Query) (renderer.Rect, bool) {
	if q.Rect != nil {
		return *q.Rect, true
	}
	b := r.Bounds(q.Drawable)
	return b, !b.Empty()
}

func boolPtr(v bool) *bool { return &v }
