package drawable

import (
	"stagehit/internal/effect"
	"stagehit/internal/mathutil"
	"stagehit/internal/silhouette"
)

// SampleMode selects how a drawable's silhouette is sampled for touch tests.
type SampleMode uint8

const (
	// Linear tests the 4-pixel bilinear footprint (approximate, see
	// silhouette.IsTouchingLinear).
	Linear SampleMode = iota
	Nearest
)

func (m SampleMode) String() string {
	if m == Nearest {
		return "nearest"
	}
	return "linear"
}

// Drawable is the CPU-side copy of one sprite instance: its transform, its
// effects and the id of the silhouette it draws.
type Drawable struct {
	ID         int32
	Silhouette int32
	Effects    effect.Effects
	Bits       effect.Bits
	Mode       SampleMode

	matrix  mathutil.Mat4
	inverse mathutil.Mat4
}

// New returns a drawable with a zero matrix and default effects.
func New(id, silhouetteID int32) *Drawable {
	return &Drawable{ID: id, Silhouette: silhouetteID}
}

// SetMatrix stores the forward model matrix and recomputes the cached
// inverse. A singular matrix is stored as is; its inverse is meaningless.
func (d *Drawable) SetMatrix(m mathutil.Mat4) {
	d.matrix = m
	d.inverse = m.Inverse()
}

// Matrix returns the forward model matrix.
func (d *Drawable) Matrix() mathutil.Mat4 { return d.matrix }

// InverseMatrix returns the cached stage-to-local matrix.
func (d *Drawable) InverseMatrix() mathutil.Mat4 { return d.inverse }

// LocalPosition converts a stage pixel to a texture coordinate. The pixel is
// sampled at its center, and the X axis is flipped to match the host's quad,
// whose texture runs right-to-left.
func (d *Drawable) LocalPosition(stage mathutil.Vec2) mathutil.Vec2 {
	v0 := stage.X + 0.5
	v1 := stage.Y + 0.5
	m := &d.inverse
	w := v0*m[3] + v1*m[7] + m[15]
	return mathutil.Vec2{
		X: 0.5 - (v0*m[0]+v1*m[4]+m[12])/w,
		Y: (v0*m[1]+v1*m[5]+m[13])/w + 0.5,
	}
}

// TransformedPosition applies the enabled distortion effects to a texture
// coordinate.
func (d *Drawable) TransformedPosition(local, nominal mathutil.Vec2) mathutil.Vec2 {
	if !d.Bits.Any(effect.DistortionGroup) {
		return local
	}
	return effect.TransformPoint(local, d.Effects, d.Bits, nominal)
}

// IsTouching reports whether the stage pixel lands on an opaque silhouette
// pixel.
func (d *Drawable) IsTouching(stage mathutil.Vec2, s *silhouette.Silhouette) bool {
	local := d.LocalPosition(stage)
	if !inUnitSquare(local) {
		return false
	}
	local = d.TransformedPosition(local, s.NominalSize)

	if d.Mode == Nearest {
		return s.IsTouchingNearest(local)
	}
	return s.IsTouchingLinear(local)
}

// SampleColor returns the premultiplied color this drawable contributes at a
// stage pixel, with color effects applied. Both sample modes read the nearest
// pixel; there is no linear color sampling yet.
func (d *Drawable) SampleColor(stage mathutil.Vec2, s *silhouette.Silhouette) [4]uint8 {
	local := d.LocalPosition(stage)
	if !inUnitSquare(local) {
		return [4]uint8{}
	}
	local = d.TransformedPosition(local, s.NominalSize)

	c := s.ColorAtNearest(local)
	if !d.Bits.Any(effect.ColorGroup) {
		return c
	}
	return effect.TransformColor(c, d.Effects, d.Bits)
}

// inUnitSquare reports whether p lies in [0,1)×[0,1). NaN fails every
// comparison and is rejected.
func inUnitSquare(p mathutil.Vec2) bool {
	return p.X >= 0 && p.X < 1 && p.Y >= 0 && p.Y < 1
}
