package overlay

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/webp"

	"stagehit/internal/mathutil"
	"stagehit/internal/silhouette"
)

func blueSquare(t *testing.T) *silhouette.Silhouette {
	t.Helper()
	data := make([]uint8, 2*2*4)
	for i := 0; i < len(data); i += 4 {
		data[i+2], data[i+3] = 255, 255
	}
	s := silhouette.New(3)
	if err := s.SetData(2, 2, data, mathutil.Vec2{X: 2, Y: 2}, true); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRender(t *testing.T) {
	s := blueSquare(t)
	hull := []mathutil.Vec2{{X: 0.25, Y: 0.25}, {X: 0.25, Y: 0.75}, {X: 0.75, Y: 0.75}, {X: 0.75, Y: 0.25}}
	img, err := Render(s, hull, 16)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Fatalf("bounds = %v, want 32x32", b)
	}

	// The corner is far from the hull and keeps the silhouette color.
	if c := img.RGBAAt(0, 0); c.B < 250 || c.R > 5 || c.A != 255 {
		t.Errorf("corner = %v, want opaque blue", c)
	}
	// Hull vertices are marked in red.
	if c := img.RGBAAt(8, 8); c.R < 200 || c.B > 60 {
		t.Errorf("vertex = %v, want red", c)
	}
}

func TestRenderWithoutHull(t *testing.T) {
	data := []uint8{0, 0, 0, 0}
	s := silhouette.New(1)
	if err := s.SetData(1, 1, data, mathutil.Vec2{X: 1, Y: 1}, true); err != nil {
		t.Fatal(err)
	}
	img, err := Render(s, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if c := img.RGBAAt(0, 0); c != Background {
		t.Errorf("transparent pixel = %v, want background", c)
	}

	if _, err := Render(silhouette.New(-1), nil, 4); err == nil {
		t.Error("empty silhouette should fail")
	}
}

func TestWriteWebP(t *testing.T) {
	img, err := Render(blueSquare(t), nil, 3)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "hull", "3.webp")
	if err := WriteWebP(path, img); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := webp.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 6 || b.Dy() != 6 {
		t.Errorf("decoded bounds = %v, want 6x6", b)
	}
	_, _, b, a := decoded.At(1, 1).RGBA()
	if b>>8 < 250 || a>>8 != 255 {
		t.Errorf("decoded pixel b=%d a=%d, want opaque blue", b>>8, a>>8)
	}
}
