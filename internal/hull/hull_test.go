package hull

import (
	"math"
	"testing"

	"stagehit/internal/drawable"
	"stagehit/internal/effect"
	"stagehit/internal/mathutil"
	"stagehit/internal/silhouette"
)

// mask builds a silhouette from rows of '#' (opaque) and '.' (transparent).
func mask(t *testing.T, rows ...string) *silhouette.Silhouette {
	t.Helper()
	h := len(rows)
	w := len(rows[0])
	data := make([]uint8, w*h*4)
	for y, row := range rows {
		for x := 0; x < w; x++ {
			if row[x] == '#' {
				data[(y*w+x)*4+3] = 255
			}
		}
	}
	s := silhouette.New(1)
	if err := s.SetData(w, h, data, mathutil.Vec2{X: float64(w), Y: float64(h)}, true); err != nil {
		t.Fatal(err)
	}
	return s
}

func assertPoints(t *testing.T, got, want []mathutil.Vec2) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d points %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if math.Abs(got[i].X-want[i].X) > 1e-9 || math.Abs(got[i].Y-want[i].Y) > 1e-9 {
			t.Errorf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestComputeFilledRectangle(t *testing.T) {
	s := mask(t, "####", "####")
	got := Compute(drawable.New(1, 1), s)
	assertPoints(t, got, []mathutil.Vec2{
		{X: 0.125, Y: 0.25},
		{X: 0.125, Y: 0.75},
		{X: 0.875, Y: 0.75},
		{X: 0.875, Y: 0.25},
	})
}

func TestComputeDropsCollinearPoints(t *testing.T) {
	s := mask(t, "####", "####", "####")
	got := Compute(drawable.New(1, 1), s)
	assertPoints(t, got, []mathutil.Vec2{
		{X: 0.125, Y: 1.0 / 6},
		{X: 0.125, Y: 5.0 / 6},
		{X: 0.875, Y: 5.0 / 6},
		{X: 0.875, Y: 1.0 / 6},
	})
}

func TestComputeConcaveShape(t *testing.T) {
	// An L: the inner corner is popped from the right chain.
	s := mask(t,
		"#..",
		"#..",
		"###",
	)
	got := Compute(drawable.New(1, 1), s)
	assertPoints(t, got, []mathutil.Vec2{
		{X: 1.0 / 6, Y: 1.0 / 6},
		{X: 1.0 / 6, Y: 5.0 / 6},
		{X: 5.0 / 6, Y: 5.0 / 6},
		{X: 1.0 / 6, Y: 1.0 / 6},
	})
}

func TestComputeSkipsEmptyRows(t *testing.T) {
	s := mask(t, "....", ".##.", "....")
	got := Compute(drawable.New(1, 1), s)
	assertPoints(t, got, []mathutil.Vec2{
		{X: 0.375, Y: 0.5},
		{X: 0.625, Y: 0.5},
	})
}

func TestComputeEmpty(t *testing.T) {
	d := drawable.New(1, -1)
	if got := Compute(d, silhouette.New(-1)); len(got) != 0 {
		t.Errorf("empty silhouette hull = %v", got)
	}
	if got := Compute(d, mask(t, "...", "...")); len(got) != 0 {
		t.Errorf("transparent silhouette hull = %v", got)
	}
}

func TestComputeAppliesDistortion(t *testing.T) {
	s := mask(t, "#.")
	d := drawable.New(1, 1)
	assertPoints(t, Compute(d, s), []mathutil.Vec2{
		{X: 0.25, Y: 0.5},
		{X: 0.25, Y: 0.5},
	})

	// Mosaic 3 samples the right pixel center from the opaque left pixel,
	// and the undistorted center is recorded.
	d.Bits = effect.Mosaic
	d.Effects.Mosaic = 3
	assertPoints(t, Compute(d, s), []mathutil.Vec2{
		{X: 0.75, Y: 0.5},
		{X: 0.75, Y: 0.5},
	})
}

func TestDeterminant(t *testing.T) {
	a := mathutil.Vec2{}
	b := mathutil.Vec2{X: 1}
	if got := determinant(a, b, mathutil.Vec2{Y: 1}); got != 1 {
		t.Errorf("ccw determinant = %v, want 1", got)
	}
	if got := determinant(a, b, mathutil.Vec2{Y: -1}); got != -1 {
		t.Errorf("cw determinant = %v, want -1", got)
	}
	if got := determinant(a, b, mathutil.Vec2{X: 2}); got != 0 {
		t.Errorf("collinear determinant = %v, want 0", got)
	}
}

func TestFlatten(t *testing.T) {
	got := Flatten([]mathutil.Vec2{{X: 1, Y: 2}, {X: 3, Y: 4}})
	want := []float64{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("Flatten = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Flatten[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if got := Flatten(nil); len(got) != 0 {
		t.Errorf("Flatten(nil) = %v", got)
	}
}
