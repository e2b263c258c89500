package effect

import "math"

// Shader constants. The epsilon is float32 machine epsilon so that the
// un-premultiply step divides exactly as the GPU path does.
const (
	colorEpsilon  = 1.1920929e-07
	minLightness  = 0.11 / 2
	minSaturation = 0.09
)

// TransformColor applies the enabled color effects to a premultiplied RGBA8
// color and returns the premultiplied result.
func TransformColor(c [4]uint8, fx Effects, bits Bits) [4]uint8 {
	if !bits.Any(ColorGroup) {
		return c
	}

	// Divide rather than multiply by 1/255: the reciprocal form does not
	// round-trip every byte value.
	rgba := [4]float64{
		float64(c[0]) / 255,
		float64(c[1]) / 255,
		float64(c[2]) / 255,
		float64(c[3]) / 255,
	}

	enableColor := bits.Has(Color)
	enableBrightness := bits.Has(Brightness)

	if enableColor || enableBrightness {
		alpha := rgba[3] + colorEpsilon
		rgba[0] /= alpha
		rgba[1] /= alpha
		rgba[2] /= alpha

		if enableColor {
			h, s, v := rgbToHSV(rgba[0], rgba[1], rgba[2])

			// Force near-gray and near-black pixels to carry some saturation
			// so a hue shift stays visible.
			if v < minLightness {
				h, s, v = 0, 1, minLightness
			} else if s < minSaturation {
				s = minSaturation
			}

			h = fract(h + fx.Color)
			rgba[0], rgba[1], rgba[2] = hsvToRGB(h, s, v)
		}

		if enableBrightness {
			rgba[0] = clamp(rgba[0]+fx.Brightness, 0, 1)
			rgba[1] = clamp(rgba[1]+fx.Brightness, 0, 1)
			rgba[2] = clamp(rgba[2]+fx.Brightness, 0, 1)
		}

		rgba[0] *= alpha
		rgba[1] *= alpha
		rgba[2] *= alpha
	}

	if bits.Has(Ghost) {
		rgba[0] *= fx.Ghost
		rgba[1] *= fx.Ghost
		rgba[2] *= fx.Ghost
		rgba[3] *= fx.Ghost
	}

	return [4]uint8{
		toByte(rgba[0] * 255),
		toByte(rgba[1] * 255),
		toByte(rgba[2] * 255),
		toByte(rgba[3] * 255),
	}
}

// toByte truncates toward zero and saturates to [0, 255].
func toByte(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// rgbToHSV converts RGB in [0,1] to HSV in [0,1] using the branch-light
// formulation the shader uses.
func rgbToHSV(r, g, b float64) (h, s, v float64) {
	k := 0.0
	if g < b {
		g, b = b, g
		k = -1
	}
	if r < g {
		r, g = g, r
		k = -2.0/6.0 - k
	}

	chroma := r - math.Min(g, b)
	h = math.Abs(k + (g-b)/(6*chroma+colorEpsilon))
	s = chroma / (r + colorEpsilon)
	v = r
	return h, s, v
}

// hsvToRGB converts HSV in [0,1] to RGB in [0,1].
func hsvToRGB(h, s, v float64) (r, g, b float64) {
	if s < 1e-18 {
		return v, v, v
	}

	i := math.Floor(h * 6)
	f := h*6 - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	switch int(i) {
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	case 5:
		return v, p, q
	default:
		return v, t, p
	}
}
