package skin

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Resample scales a skin to w×h with Catmull-Rom filtering. x/image/draw
// filters in premultiplied space, so the result is always premultiplied and
// transparent edges do not pick up dark halos. Non-positive or unchanged
// sizes return s itself.
func Resample(s *Skin, w, h int) *Skin {
	if w <= 0 || h <= 0 || (w == s.Width && h == s.Height) {
		return s
	}
	src := s.Image()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return &Skin{
		Name:          s.Name,
		Width:         w,
		Height:        h,
		Pix:           dst.Pix,
		Premultiplied: true,
	}
}

// ResampleTo scales a skin so that each of nominal's units holds resolution
// pixels. A resolution of zero keeps the decoded size.
func ResampleTo(s *Skin, nominalW, nominalH, resolution float64) *Skin {
	if resolution <= 0 {
		return s
	}
	w := int(math.Max(1, math.Round(nominalW*resolution)))
	h := int(math.Max(1, math.Round(nominalH*resolution)))
	return Resample(s, w, h)
}
