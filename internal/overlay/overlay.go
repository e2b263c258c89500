package overlay

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"stagehit/internal/mathutil"
	"stagehit/internal/silhouette"
)

// Background is painted under transparent silhouette pixels.
var Background = color.RGBA{R: 224, G: 224, B: 224, A: 255}

// Render draws a silhouette upscaled by scale with its convex hull on top.
// hull is in texture space, as returned by hull.Compute.
func Render(s *silhouette.Silhouette, hull []mathutil.Vec2, scale int) (*image.RGBA, error) {
	if scale < 1 {
		scale = 1
	}
	if s.Empty() {
		return nil, fmt.Errorf("overlay: silhouette %d is empty", s.ID)
	}

	w, h := s.Width*scale, s.Height*scale
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	src := &image.RGBA{Pix: s.Pixels(), Stride: s.Width * 4, Rect: image.Rect(0, 0, s.Width, s.Height)}
	draw.NearestNeighbor.Scale(canvas, canvas.Bounds(), src, src.Bounds(), draw.Over, nil)

	if len(hull) == 0 {
		return canvas, nil
	}

	dc := gg.NewContextForImage(canvas)
	defer dc.Close()

	toCanvas := func(p mathutil.Vec2) (float64, float64) {
		return p.X * float64(w), p.Y * float64(h)
	}

	dc.SetRGBA(1, 0, 0, 0.8)
	dc.SetLineWidth(math.Max(1, float64(scale)/4))
	for i, p := range hull {
		x, y := toCanvas(p)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
	if err := dc.Stroke(); err != nil {
		return nil, fmt.Errorf("overlay: stroke hull: %w", err)
	}

	dc.SetRGBA(1, 0, 0, 1)
	r := math.Max(1.5, float64(scale)/3)
	for _, p := range hull {
		x, y := toCanvas(p)
		dc.DrawCircle(x, y, r)
	}
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("overlay: fill hull points: %w", err)
	}

	img := dc.Image()
	out, ok := img.(*image.RGBA)
	if !ok {
		return nil, fmt.Errorf("overlay: unexpected canvas type %T", img)
	}
	return out, nil
}

// WriteWebP encodes img as lossless WebP at path, creating parent
// directories.
func WriteWebP(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("overlay: create dir for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("overlay: create %s: %w", path, err)
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		return fmt.Errorf("overlay: encode %s: %w", path, err)
	}
	return f.Close()
}
