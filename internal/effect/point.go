package effect

import (
	"math"

	"stagehit/internal/mathutil"
)

var center = mathutil.Vec2{X: 0.5, Y: 0.5}

// whirlRadius is the texture-space radius the whirl falls off over.
const whirlRadius = 0.5

// TransformPoint maps a texture coordinate to the one the distortion shader
// would sample. Mosaic, pixelate, whirl and fisheye are applied in that order,
// each only if enabled. nominal is the skin's nominal size, used by pixelate.
func TransformPoint(p mathutil.Vec2, fx Effects, bits Bits, nominal mathutil.Vec2) mathutil.Vec2 {
	out := p

	if bits.Has(Mosaic) {
		out = mathutil.Vec2{
			X: fract(fx.Mosaic * out.X),
			Y: fract(fx.Mosaic * out.Y),
		}
	}

	if bits.Has(Pixelate) {
		texelX := nominal.X / fx.Pixelate
		texelY := nominal.Y / fx.Pixelate
		out = mathutil.Vec2{
			X: (math.Floor(out.X*texelX) + center.X) / texelX,
			Y: (math.Floor(out.Y*texelY) + center.Y) / texelY,
		}
	}

	if bits.Has(Whirl) {
		offset := out.Sub(center)
		factor := math.Max(1-offset.Len()/whirlRadius, 0)
		sin, cos := math.Sincos(fx.Whirl * factor * factor)
		out = mathutil.Vec2{
			X: cos*offset.X + sin*offset.Y + center.X,
			Y: cos*offset.Y - sin*offset.X + center.Y,
		}
	}

	if bits.Has(Fisheye) {
		v := out.Sub(center).Div(center)
		l := v.Len()
		if l == 0 {
			// Limit of the formula at the center; the direct form is 0/0.
			out = center
		} else {
			r := math.Pow(math.Min(l, 1), fx.Fisheye) * math.Max(1, l)
			unit := v.Scale(1 / l)
			out = center.Add(unit.Scale(r).Mul(center))
		}
	}

	return out
}

// fract matches the shader's fract: x - floor(x), always in [0, 1).
func fract(x float64) float64 {
	return x - math.Floor(x)
}
