package renderer

import (
	"math"

	"stagehit/internal/mathutil"
)

// Rect is an axis-aligned stage rectangle, +Y up.
type Rect struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Top    float64 `json:"top"`
}

// maxSpan keeps rectangle corners inside int range.
const maxSpan = 1 << 30

// pixels returns the inclusive integer pixel range a query visits:
// x in [floor(Left), floor(Right)], y in [floor(Bottom)-1, floor(Top)-1].
// ok is false for rectangles with non-finite edges.
func (r Rect) pixels() (x0, x1, y0, y1 int, ok bool) {
	for _, v := range [4]float64{r.Left, r.Right, r.Bottom, r.Top} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, 0, 0, false
		}
	}
	x0 = clampInt(math.Floor(r.Left))
	x1 = clampInt(math.Floor(r.Right))
	y0 = clampInt(math.Floor(r.Bottom)) - 1
	y1 = clampInt(math.Floor(r.Top)) - 1
	return x0, x1, y0, y1, true
}

// each visits the rectangle's pixels row by row, bottom first, and stops as
// soon as fn returns true.
func (r Rect) each(fn func(stage mathutil.Vec2) bool) bool {
	x0, x1, y0, y1, ok := r.pixels()
	if !ok {
		return false
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if fn(mathutil.Vec2{X: float64(x), Y: float64(y)}) {
				return true
			}
		}
	}
	return false
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return !(r.Right > r.Left && r.Top > r.Bottom)
}

// Width is Right - Left.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height is Top - Bottom.
func (r Rect) Height() float64 { return r.Top - r.Bottom }

// rectFromPoints is the bounding box of points. It is the zero Rect when
// points is empty.
func rectFromPoints(points []mathutil.Vec2) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	out := Rect{
		Left:   math.Inf(1),
		Right:  math.Inf(-1),
		Bottom: math.Inf(1),
		Top:    math.Inf(-1),
	}
	for _, p := range points {
		out.Left = math.Min(out.Left, p.X)
		out.Right = math.Max(out.Right, p.X)
		out.Bottom = math.Min(out.Bottom, p.Y)
		out.Top = math.Max(out.Top, p.Y)
	}
	return out
}

func clampInt(v float64) int {
	if v < -maxSpan {
		return -maxSpan
	}
	if v > maxSpan {
		return maxSpan
	}
	return int(v)
}
