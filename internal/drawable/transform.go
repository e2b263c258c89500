package drawable

import (
	"math"

	"stagehit/internal/mathutil"
)

// Transform is the host's sprite placement: position on stage, percentage
// scale, direction in degrees (90 = facing right) and the skin's rotation
// center and size in skin units.
type Transform struct {
	Position       mathutil.Vec2
	Scale          mathutil.Vec2 // percent, 100 = natural size
	Direction      float64
	RotationCenter mathutil.Vec2
	SkinSize       mathutil.Vec2
}

// DefaultTransform is a sprite at the stage origin, natural size, facing
// right.
func DefaultTransform(skinSize, rotationCenter mathutil.Vec2) Transform {
	return Transform{
		Scale:          mathutil.Vec2{X: 100, Y: 100},
		Direction:      90,
		RotationCenter: rotationCenter,
		SkinSize:       skinSize,
	}
}

// Matrix builds the model matrix that maps the unit quad to the stage:
// scale to the skin's scaled size, offset by the rotation center, rotate,
// then translate.
func (t Transform) Matrix() mathutil.Mat4 {
	rotation := mathutil.Deg2Rad(270 - t.Direction)
	sin, cos := math.Sincos(rotation)

	// Rotation center relative to the skin's middle, Y flipped to stage
	// coordinates.
	adjX := (t.RotationCenter.X - t.SkinSize.X/2) * t.Scale.X / 100
	adjY := -(t.RotationCenter.Y - t.SkinSize.Y/2) * t.Scale.Y / 100

	scaleX := t.SkinSize.X * t.Scale.X / 100
	scaleY := t.SkinSize.Y * t.Scale.Y / 100

	m := mathutil.Mat4Identity()
	m[0] = scaleX * cos
	m[1] = scaleX * sin
	m[4] = scaleY * -sin
	m[5] = scaleY * cos
	m[12] = cos*adjX + -sin*adjY + t.Position.X
	m[13] = sin*adjX + cos*adjY + t.Position.Y
	return m
}
