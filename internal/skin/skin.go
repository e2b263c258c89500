package skin

import (
	"image"

	"golang.org/x/image/draw"

	"stagehit/internal/mathutil"
)

// Skin is a decoded costume image as tightly packed RGBA8 rows, top to
// bottom, ready to hand to a silhouette.
type Skin struct {
	Name          string
	Width         int
	Height        int
	Pix           []uint8
	Premultiplied bool
}

// Size returns the pixel size as a vector.
func (s *Skin) Size() mathutil.Vec2 {
	return mathutil.Vec2{X: float64(s.Width), Y: float64(s.Height)}
}

// Image returns a view of the pixels without copying: *image.RGBA when
// premultiplied, *image.NRGBA otherwise.
func (s *Skin) Image() draw.Image {
	r := image.Rect(0, 0, s.Width, s.Height)
	if s.Premultiplied {
		return &image.RGBA{Pix: s.Pix, Stride: s.Width * 4, Rect: r}
	}
	return &image.NRGBA{Pix: s.Pix, Stride: s.Width * 4, Rect: r}
}

// FromImage copies a decoded image into a skin. *image.RGBA keeps its
// premultiplied pixels; anything else is converted to straight alpha.
func FromImage(name string, img image.Image) *Skin {
	b := img.Bounds()
	s := &Skin{Name: name, Width: b.Dx(), Height: b.Dy()}

	switch src := img.(type) {
	case *image.RGBA:
		s.Pix = pack(src.Pix, src.Stride, src.PixOffset(b.Min.X, b.Min.Y), s.Width, s.Height)
		s.Premultiplied = true
	default:
		n := toNRGBA(img)
		s.Pix = pack(n.Pix, n.Stride, n.PixOffset(b.Min.X, b.Min.Y), s.Width, s.Height)
	}
	return s
}

// toNRGBA converts any image to NRGBA. Opaque sources such as JPEG's YCbCr
// come out with alpha 255.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}

// pack copies w×h pixels starting at off into a buffer with no row padding.
func pack(pix []uint8, stride, off, w, h int) []uint8 {
	out := make([]uint8, w*h*4)
	row := w * 4
	for y := 0; y < h; y++ {
		copy(out[y*row:(y+1)*row], pix[off+y*stride:off+y*stride+row])
	}
	return out
}
