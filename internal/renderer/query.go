package renderer

import (
	"stagehit/internal/hull"
	"stagehit/internal/mathutil"
	"stagehit/internal/silhouette"
)

// DrawableTouchingRect reports whether any opaque pixel of the drawable lies
// in rect.
func (r *Renderer) DrawableTouchingRect(id int32, rect Rect) bool {
	d := r.mustDrawable(id)
	s := r.silhouetteOf(d)
	return rect.each(func(p mathutil.Vec2) bool {
		return d.IsTouching(p, s)
	})
}

// IsTouchingDrawables reports whether the drawable and any candidate are both
// opaque at some pixel of rect.
func (r *Renderer) IsTouchingDrawables(id int32, candidates []int32, rect Rect) bool {
	d := r.mustDrawable(id)
	s := r.silhouetteOf(d)
	cands := r.resolve(candidates)
	return rect.each(func(p mathutil.Vec2) bool {
		if !d.IsTouching(p, s) {
			return false
		}
		for _, c := range cands {
			if c.d.IsTouching(p, c.s) {
				return true
			}
		}
		return false
	})
}

// IsTouchingColor reports whether the candidates composite to approximately
// color at some pixel of rect where the drawable is opaque.
func (r *Renderer) IsTouchingColor(id int32, candidates []int32, rect Rect, color [3]uint8) bool {
	d := r.mustDrawable(id)
	s := r.silhouetteOf(d)
	cands := r.resolve(candidates)
	return rect.each(func(p mathutil.Vec2) bool {
		return d.IsTouching(p, s) && colorMatches(color, composite(p, cands))
	})
}

// ColorIsTouchingColor is IsTouchingColor restricted to the pixels where the
// drawable's own color matches mask.
func (r *Renderer) ColorIsTouchingColor(id int32, candidates []int32, rect Rect, color, mask [3]uint8) bool {
	d := r.mustDrawable(id)
	s := r.silhouetteOf(d)
	cands := r.resolve(candidates)
	return rect.each(func(p mathutil.Vec2) bool {
		return maskMatches(d.SampleColor(p, s), mask) && colorMatches(color, composite(p, cands))
	})
}

// Pick returns the candidate covering the most pixels of rect, or IDNone.
// Each pixel is credited to the first candidate touching it, so earlier
// candidates occlude later ones. Ties go to the candidate credited first.
func (r *Renderer) Pick(candidates []int32, rect Rect) int32 {
	cands := r.resolve(candidates)
	hits := make(map[int32]int)
	var order []int32

	rect.each(func(p mathutil.Vec2) bool {
		for _, c := range cands {
			if c.d.IsTouching(p, c.s) {
				if hits[c.d.ID] == 0 {
					order = append(order, c.d.ID)
				}
				hits[c.d.ID]++
				break
			}
		}
		return false
	})

	best, bestHits := IDNone, 0
	for _, id := range order {
		if hits[id] > bestHits {
			best, bestHits = id, hits[id]
		}
	}
	return best
}

// DrawableConvexHullPoints returns the drawable's convex hull in texture
// space as x0, y0, x1, y1, ...
func (r *Renderer) DrawableConvexHullPoints(id int32) []float64 {
	return hull.Flatten(r.ConvexHull(id))
}

// ConvexHull returns the drawable's convex hull in texture space. The slice
// is shared with the cache and must not be modified.
func (r *Renderer) ConvexHull(id int32) []mathutil.Vec2 {
	return r.convexHull(r.mustDrawable(id))
}

// DrawableSilhouette returns the silhouette a drawable samples, the empty
// one if its reference dangles.
func (r *Renderer) DrawableSilhouette(id int32) *silhouette.Silhouette {
	return r.silhouetteOf(r.mustDrawable(id))
}

// StageColor returns the composited color of the candidates at a stage
// pixel over a white backdrop.
func (r *Renderer) StageColor(stage mathutil.Vec2, candidates []int32) [3]uint8 {
	return composite(stage, r.resolve(candidates))
}
