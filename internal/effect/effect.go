package effect

import (
	"math"

	"stagehit/internal/mathutil"
)

// Bits is the set of enabled effects. Bit positions match the host's shader
// effect indices.
type Bits uint32

const (
	Color Bits = 1 << iota
	Fisheye
	Whirl
	Pixelate
	Mosaic
	Brightness
	Ghost
)

const (
	// ColorGroup effects change sampled colors.
	ColorGroup = Color | Brightness | Ghost
	// DistortionGroup effects move texture coordinates and so change shape.
	DistortionGroup = Fisheye | Whirl | Pixelate | Mosaic
)

// Has reports whether every bit in e is set.
func (b Bits) Has(e Bits) bool { return b&e == e }

// Any reports whether at least one bit in group is set.
func (b Bits) Any(group Bits) bool { return b&group != 0 }

// ChangesShape reports whether a distortion effect is enabled.
func (b Bits) ChangesShape() bool { return b.Any(DistortionGroup) }

// Effects holds the shader uniform values for the seven effects.
type Effects struct {
	Color      float64 `json:"color"`
	Fisheye    float64 `json:"fisheye"`
	Whirl      float64 `json:"whirl"`
	Pixelate   float64 `json:"pixelate"`
	Mosaic     float64 `json:"mosaic"`
	Brightness float64 `json:"brightness"`
	Ghost      float64 `json:"ghost"`
}

// Params are effect values in user units, as the host's effect blocks expose
// them (e.g. ghost 0..100, whirl in degrees).
type Params struct {
	Color      float64 `json:"color"`
	Fisheye    float64 `json:"fisheye"`
	Whirl      float64 `json:"whirl"`
	Pixelate   float64 `json:"pixelate"`
	Mosaic     float64 `json:"mosaic"`
	Brightness float64 `json:"brightness"`
	Ghost      float64 `json:"ghost"`
}

// FromParams converts user values to uniform values and reports which
// effects are enabled. An effect is enabled iff its user value is non-zero.
func FromParams(p Params) (Effects, Bits) {
	fx := Effects{
		Color:      math.Mod(p.Color/200, 1),
		Fisheye:    math.Max(0, (p.Fisheye+100)/100),
		Whirl:      -mathutil.Deg2Rad(p.Whirl),
		Pixelate:   math.Abs(p.Pixelate) / 10,
		Mosaic:     clamp(jsRound((math.Abs(p.Mosaic)+10)/10), 1, 512),
		Brightness: clamp(p.Brightness, -100, 100) / 100,
		Ghost:      1 - clamp(p.Ghost, 0, 100)/100,
	}

	var bits Bits
	for _, e := range []struct {
		v   float64
		bit Bits
	}{
		{p.Color, Color},
		{p.Fisheye, Fisheye},
		{p.Whirl, Whirl},
		{p.Pixelate, Pixelate},
		{p.Mosaic, Mosaic},
		{p.Brightness, Brightness},
		{p.Ghost, Ghost},
	} {
		if e.v != 0 {
			bits |= e.bit
		}
	}
	return fx, bits
}

// jsRound rounds half up, the way the host's Math.round does.
func jsRound(x float64) float64 {
	return math.Floor(x + 0.5)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
