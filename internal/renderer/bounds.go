package renderer

import (
	"math"

	"stagehit/internal/mathutil"
)

// stageHull projects the drawable's convex hull to stage space through its
// forward matrix.
func (r *Renderer) stageHull(id int32) ([]mathutil.Vec2, float64) {
	d := r.mustDrawable(id)
	points := r.convexHull(d)
	m := d.Matrix()

	out := make([]mathutil.Vec2, len(points))
	for i, p := range points {
		out[i] = m.TransformPoint(mathutil.Vec2{X: 0.5 - p.X, Y: p.Y - 0.5})
	}

	// Hull points sit on pixel centers; half a silhouette pixel in stage
	// units covers the rest of the edge pixels.
	var halfPixel float64
	if s := r.silhouetteOf(d); s.Width > 0 {
		halfPixel = math.Hypot(m[0], m[1]) / float64(2*s.Width)
	}
	return out, halfPixel
}

// Bounds returns the tight stage-space bounding box of the drawable's opaque
// pixels. A drawable with no opaque pixels has zero bounds.
func (r *Renderer) Bounds(id int32) Rect {
	points, halfPixel := r.stageHull(id)
	if len(points) == 0 {
		return Rect{}
	}
	b := rectFromPoints(points)
	b.Left -= halfPixel
	b.Right += halfPixel
	b.Bottom -= halfPixel
	b.Top += halfPixel
	return b
}

// BoundsForBubble returns the bounding box of the drawable's hull points that
// lie strictly within slice stage units of its highest point.
func (r *Renderer) BoundsForBubble(id int32, slice float64) Rect {
	points, _ := r.stageHull(id)
	if len(points) == 0 {
		return Rect{}
	}
	maxY := math.Inf(-1)
	for _, p := range points {
		maxY = math.Max(maxY, p.Y)
	}
	var top []mathutil.Vec2
	for _, p := range points {
		if p.Y > maxY-slice {
			top = append(top, p)
		}
	}
	return rectFromPoints(top)
}

// AABB returns the stage-space box around the drawable's whole quad,
// transparent pixels included.
func (r *Renderer) AABB(id int32) Rect {
	m := r.mustDrawable(id).Matrix()
	corners := []mathutil.Vec2{
		m.TransformPoint(mathutil.Vec2{X: -0.5, Y: -0.5}),
		m.TransformPoint(mathutil.Vec2{X: 0.5, Y: -0.5}),
		m.TransformPoint(mathutil.Vec2{X: 0.5, Y: 0.5}),
		m.TransformPoint(mathutil.Vec2{X: -0.5, Y: 0.5}),
	}
	return rectFromPoints(corners)
}
