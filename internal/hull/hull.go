package hull

import (
	"stagehit/internal/drawable"
	"stagehit/internal/mathutil"
	"stagehit/internal/silhouette"
)

// determinant is the cross product of AB and AC. Positive means AC turns
// counter-clockwise from AB.
func determinant(a, b, c mathutil.Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// Compute returns the convex outline of a drawable's silhouette in texture
// space, clockwise, with +Y down.
//
// Each row contributes its leftmost and rightmost touching pixel center to a
// left and a right monotone chain. Touch is always tested nearest, with the
// drawable's distortion effects applied, but the undistorted pixel center is
// what gets recorded.
func Compute(d *drawable.Drawable, s *silhouette.Silhouette) []mathutil.Vec2 {
	if s.Empty() {
		return nil
	}

	w, h := float64(s.Width), float64(s.Height)
	touching := func(p mathutil.Vec2) bool {
		return s.IsTouchingNearest(d.TransformedPosition(p, s.NominalSize))
	}
	center := func(x, y int) mathutil.Vec2 {
		return mathutil.Vec2{X: (float64(x) + 0.5) / w, Y: (float64(y) + 0.5) / h}
	}

	var left, right []mathutil.Vec2
	for y := 0; y < s.Height; y++ {
		first := -1
		for x := 0; x < s.Width; x++ {
			if touching(center(x, y)) {
				first = x
				break
			}
		}
		if first < 0 {
			continue
		}

		p := center(first, y)
		for len(left) >= 2 && determinant(left[len(left)-1], left[len(left)-2], p) <= 0 {
			left = left[:len(left)-1]
		}
		left = append(left, p)

		// The right scan stops at the left hit, which is known to touch.
		last := first
		for x := s.Width - 1; x > first; x-- {
			if touching(center(x, y)) {
				last = x
				break
			}
		}

		p = center(last, y)
		for len(right) >= 2 && determinant(right[len(right)-1], right[len(right)-2], p) >= 0 {
			right = right[:len(right)-1]
		}
		right = append(right, p)
	}

	out := make([]mathutil.Vec2, 0, len(left)+len(right))
	out = append(out, left...)
	for i := len(right) - 1; i >= 0; i-- {
		out = append(out, right[i])
	}
	return out
}

// Flatten interleaves points as x0, y0, x1, y1, ...
func Flatten(points []mathutil.Vec2) []float64 {
	out := make([]float64, 0, len(points)*2)
	for _, p := range points {
		out = append(out, p.X, p.Y)
	}
	return out
}
