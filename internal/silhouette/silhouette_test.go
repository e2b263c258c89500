package silhouette

import (
	"errors"
	"math"
	"testing"

	"stagehit/internal/mathutil"
)

// checker builds a w×h premultiplied buffer whose opaque pixels are listed.
func checker(w, h int, opaque ...[2]int) []uint8 {
	data := make([]uint8, w*h*4)
	for _, p := range opaque {
		i := (p[1]*w + p[0]) * 4
		data[i], data[i+1], data[i+2], data[i+3] = 10, 20, 30, 255
	}
	return data
}

func mustSilhouette(t *testing.T, w, h int, data []uint8) *Silhouette {
	t.Helper()
	s := New(1)
	if err := s.SetData(w, h, data, mathutil.Vec2{X: float64(w), Y: float64(h)}, true); err != nil {
		t.Fatalf("SetData: %v", err)
	}
	return s
}

func TestSetDataRejectsMismatchedBuffer(t *testing.T) {
	s := mustSilhouette(t, 2, 2, checker(2, 2, [2]int{0, 0}))
	before := s.Version()

	err := s.SetData(3, 2, make([]uint8, 3*2*4-1), mathutil.Vec2{}, true)
	if !errors.Is(err, ErrBufferSize) {
		t.Fatalf("SetData error = %v, want ErrBufferSize", err)
	}
	if s.Width != 2 || s.Height != 2 || s.Version() != before {
		t.Errorf("rejected update changed silhouette: %dx%d v%d", s.Width, s.Height, s.Version())
	}
	if !s.PointAt(0, 0) {
		t.Error("rejected update lost existing data")
	}
}

func TestSetDataPremultiplies(t *testing.T) {
	s := New(1)
	data := []uint8{255, 0, 0, 128, 200, 100, 50, 0}
	if err := s.SetData(2, 1, data, mathutil.Vec2{X: 2, Y: 1}, false); err != nil {
		t.Fatal(err)
	}
	got := s.ColorAt(0, 0)
	if got[0] < 127 || got[0] > 128 || got[1] != 0 || got[2] != 0 || got[3] != 128 {
		t.Errorf("premultiplied (255,0,0,128) = %v, want ~(127,0,0,128)", got)
	}
	// Straight-alpha RGB under alpha 0 must not leak into compositing.
	if got := s.ColorAt(1, 0); got != [4]uint8{} {
		t.Errorf("alpha-zero pixel = %v, want transparent black", got)
	}
}

func TestSetDataKeepsPremultipliedInput(t *testing.T) {
	s := New(1)
	data := []uint8{100, 50, 25, 128}
	if err := s.SetData(1, 1, data, mathutil.Vec2{X: 1, Y: 1}, true); err != nil {
		t.Fatal(err)
	}
	if got := s.ColorAt(0, 0); got != [4]uint8{100, 50, 25, 128} {
		t.Errorf("ColorAt = %v", got)
	}
}

func TestEmptySilhouette(t *testing.T) {
	s := New(-1)
	if !s.Empty() {
		t.Error("new silhouette should be empty")
	}
	for _, tc := range []mathutil.Vec2{{X: 0, Y: 0}, {X: 0.5, Y: 0.5}, {X: 0.99, Y: 0.99}} {
		if s.IsTouchingNearest(tc) || s.IsTouchingLinear(tc) {
			t.Errorf("empty silhouette touching at %v", tc)
		}
		if got := s.ColorAtNearest(tc); got != ([4]uint8{}) {
			t.Errorf("empty silhouette color at %v = %v", tc, got)
		}
	}
}

func TestPointAtBounds(t *testing.T) {
	s := mustSilhouette(t, 2, 2, checker(2, 2, [2]int{0, 0}, [2]int{1, 1}))
	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{1, 0, false},
		{1, 1, true},
		{-1, 0, false},
		{0, -1, false},
		{2, 1, false},
		{1, 2, false},
	}
	for _, tt := range tests {
		if got := s.PointAt(tt.x, tt.y); got != tt.want {
			t.Errorf("PointAt(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if got := s.ColorAt(5, 5); got != ([4]uint8{}) {
		t.Errorf("ColorAt out of bounds = %v", got)
	}
	if got := s.ColorAt(1, 1); got != [4]uint8{10, 20, 30, 255} {
		t.Errorf("ColorAt(1,1) = %v", got)
	}
}

func TestIsTouchingNearest(t *testing.T) {
	s := mustSilhouette(t, 4, 2, checker(4, 2, [2]int{2, 1}))
	tests := []struct {
		tc   mathutil.Vec2
		want bool
	}{
		{mathutil.Vec2{X: 0.5, Y: 0.5}, true},
		{mathutil.Vec2{X: 0.74, Y: 0.99}, true},
		{mathutil.Vec2{X: 0.75, Y: 0.5}, false},
		{mathutil.Vec2{X: 0.49, Y: 0.5}, false},
		{mathutil.Vec2{X: 0.5, Y: 0.49}, false},
		{mathutil.Vec2{X: -0.1, Y: 0.5}, false},
		{mathutil.Vec2{X: math.NaN(), Y: 0.5}, false},
		{mathutil.Vec2{X: 0.5, Y: math.Inf(1)}, false},
	}
	for _, tt := range tests {
		if got := s.IsTouchingNearest(tt.tc); got != tt.want {
			t.Errorf("IsTouchingNearest(%v) = %v, want %v", tt.tc, got, tt.want)
		}
	}
	if got := s.ColorAtNearest(mathutil.Vec2{X: 0.6, Y: 0.6}); got != [4]uint8{10, 20, 30, 255} {
		t.Errorf("ColorAtNearest = %v", got)
	}
}

func TestIsTouchingLinearFootprint(t *testing.T) {
	// Single opaque pixel at (1,1) in a 4×4 image.
	s := mustSilhouette(t, 4, 4, checker(4, 4, [2]int{1, 1}))
	tests := []struct {
		name string
		tc   mathutil.Vec2
		want bool
	}{
		// floor(0.375*4-0.5) = 1: footprint (1..2, 1..2).
		{"center of pixel", mathutil.Vec2{X: 0.375, Y: 0.375}, true},
		// floor(0.55*4-0.5) = 1: footprint still includes (1,1).
		{"right neighbour pixel", mathutil.Vec2{X: 0.55, Y: 0.375}, true},
		// floor(0.2*4-0.5) = 0: footprint (0..1, 0..1).
		{"upper-left pixel", mathutil.Vec2{X: 0.2, Y: 0.2}, true},
		// floor(0.7*4-0.5) = 2: footprint (2..3), misses column 1.
		{"two pixels away", mathutil.Vec2{X: 0.7, Y: 0.375}, false},
		// Nearest would say no here, the OR footprint says yes.
		{"over-reports near edge", mathutil.Vec2{X: 0.51, Y: 0.51}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.IsTouchingLinear(tt.tc); got != tt.want {
				t.Errorf("IsTouchingLinear(%v) = %v, want %v", tt.tc, got, tt.want)
			}
		})
	}
	if s.IsTouchingNearest(mathutil.Vec2{X: 0.51, Y: 0.51}) {
		t.Error("nearest should miss (2,2)")
	}
}

func TestIsTouchingLinearLeadingEdge(t *testing.T) {
	s := mustSilhouette(t, 2, 2, checker(2, 2, [2]int{0, 0}))
	// 0.1*2-0.5 floors to -1: footprint (-1..0) still reaches pixel 0.
	if !s.IsTouchingLinear(mathutil.Vec2{X: 0.1, Y: 0.1}) {
		t.Error("footprint starting before the image should reach pixel 0")
	}
}
