package silhouette

import (
	"errors"
	"fmt"
	"math"

	"stagehit/internal/mathutil"
)

// ErrBufferSize is returned when pixel data does not hold exactly w*h RGBA8
// pixels.
var ErrBufferSize = errors.New("silhouette: pixel buffer size mismatch")

// Silhouette is the CPU-side alpha mask and color data for one skin. Pixels
// are RGBA8, row-major, top-to-bottom, and always premultiplied.
type Silhouette struct {
	ID          int32
	Width       int
	Height      int
	NominalSize mathutil.Vec2

	data    []uint8
	version uint64
}

// New returns an empty 0×0 silhouette. It never reports a touch and always
// samples as transparent black.
func New(id int32) *Silhouette {
	return &Silhouette{ID: id}
}

// SetData replaces the pixel data. Non-premultiplied input is premultiplied
// in place; the silhouette takes ownership of data. On a size mismatch the
// silhouette is left unchanged.
func (s *Silhouette) SetData(w, h int, data []uint8, nominal mathutil.Vec2, premultiplied bool) error {
	if w < 0 || h < 0 || len(data) != w*h*4 {
		return fmt.Errorf("%w: %dx%d needs %d bytes, got %d", ErrBufferSize, w, h, w*h*4, len(data))
	}

	if !premultiplied {
		for i := 0; i < len(data); i += 4 {
			a := data[i+3]
			if a == 0 {
				data[i], data[i+1], data[i+2] = 0, 0, 0
				continue
			}
			alpha := float64(a) / 255
			data[i] = uint8(float64(data[i]) * alpha)
			data[i+1] = uint8(float64(data[i+1]) * alpha)
			data[i+2] = uint8(float64(data[i+2]) * alpha)
		}
	}

	s.Width = w
	s.Height = h
	s.NominalSize = nominal
	s.data = data
	s.version++
	return nil
}

// Pixels returns the premultiplied pixel buffer. Callers must not modify it.
func (s *Silhouette) Pixels() []uint8 { return s.data }

// Version increases every time the pixel data is replaced.
func (s *Silhouette) Version() uint64 { return s.version }

// Empty reports whether the silhouette has no pixels.
func (s *Silhouette) Empty() bool { return s.Width == 0 || s.Height == 0 }

// PointAt reports whether the pixel at (x, y) has non-zero alpha.
func (s *Silhouette) PointAt(x, y int) bool {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return false
	}
	return s.data[(y*s.Width+x)*4+3] != 0
}

// ColorAt returns the premultiplied pixel at (x, y), or transparent black
// outside the silhouette.
func (s *Silhouette) ColorAt(x, y int) [4]uint8 {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return [4]uint8{}
	}
	i := (y*s.Width + x) * 4
	return [4]uint8{s.data[i], s.data[i+1], s.data[i+2], s.data[i+3]}
}

// IsTouchingNearest tests the pixel under a texture coordinate.
func (s *Silhouette) IsTouchingNearest(tc mathutil.Vec2) bool {
	x, okX := texel(tc.X*float64(s.Width), s.Width)
	y, okY := texel(tc.Y*float64(s.Height), s.Height)
	if !okX || !okY {
		return false
	}
	return s.PointAt(x, y)
}

// ColorAtNearest samples the pixel under a texture coordinate.
func (s *Silhouette) ColorAtNearest(tc mathutil.Vec2) [4]uint8 {
	x, okX := texel(tc.X*float64(s.Width), s.Width)
	y, okY := texel(tc.Y*float64(s.Height), s.Height)
	if !okX || !okY {
		return [4]uint8{}
	}
	return s.ColorAt(x, y)
}

// IsTouchingLinear reports whether any of the four pixels a bilinear sample
// would read is opaque. This is an OR over the footprint, not a weighted
// blend, and over-reports near the edges of shapes.
func (s *Silhouette) IsTouchingLinear(tc mathutil.Vec2) bool {
	// The footprint may start one pixel before the image.
	x, okX := texel(tc.X*float64(s.Width)-0.5, s.Width+1)
	y, okY := texel(tc.Y*float64(s.Height)-0.5, s.Height+1)
	if !okX || !okY {
		return false
	}
	return s.PointAt(x, y) ||
		s.PointAt(x+1, y) ||
		s.PointAt(x, y+1) ||
		s.PointAt(x+1, y+1)
}

// texel floors a pixel-space coordinate. It reports false for non-finite
// values and for anything that cannot land in [-1, limit), so the int
// conversion never overflows.
func texel(v float64, limit int) (int, bool) {
	f := math.Floor(v)
	if !(f >= -1 && f < float64(limit)) {
		return 0, false
	}
	return int(f), true
}
