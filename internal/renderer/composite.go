package renderer

import (
	"stagehit/internal/drawable"
	"stagehit/internal/mathutil"
	"stagehit/internal/silhouette"
)

// candidate is a drawable resolved together with its silhouette.
type candidate struct {
	d *drawable.Drawable
	s *silhouette.Silhouette
}

// resolve looks up candidate drawables in the order given, front-most first.
func (r *Renderer) resolve(ids []int32) []candidate {
	out := make([]candidate, len(ids))
	for i, id := range ids {
		d := r.mustDrawable(id)
		out[i] = candidate{d: d, s: r.silhouetteOf(d)}
	}
	return out
}

// composite blends the candidates' premultiplied colors front to back over
// an opaque white backdrop.
func composite(stage mathutil.Vec2, candidates []candidate) [3]uint8 {
	var r, g, b float64
	remaining := 1.0

	for _, c := range candidates {
		col := c.d.SampleColor(stage, c.s)
		r += float64(col[0]) * remaining
		g += float64(col[1]) * remaining
		b += float64(col[2]) * remaining
		remaining *= 1 - float64(col[3])/255
		if remaining == 0 {
			break
		}
	}

	backdrop := remaining * 255
	return [3]uint8{
		clamp255(r + backdrop),
		clamp255(g + backdrop),
		clamp255(b + backdrop),
	}
}

// colorMatches compares the top 5 bits of red and green and the top 4 bits
// of blue.
func colorMatches(a, b [3]uint8) bool {
	return ((a[0]^b[0])&0b11111000)|
		((a[1]^b[1])&0b11111000)|
		((a[2]^b[2])&0b11110000) == 0
}

// maskMatches compares the top 6 bits of each channel of a non-transparent
// sample.
func maskMatches(a [4]uint8, mask [3]uint8) bool {
	return a[3] != 0 &&
		((a[0]^mask[0])&0b11111100)|
			((a[1]^mask[1])&0b11111100)|
			((a[2]^mask[2])&0b11111100) == 0
}

// clamp255 truncates toward zero and saturates.
func clamp255(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
