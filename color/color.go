// Package color models CSS colors as absolute values tagged with their
// color space, converts them between spaces through CIE XYZ, gamut-maps
// them into the canvas output spaces and packs them into premultiplied
// ARGB32 pixels.
package color

import "math"

// Space identifies the color space an AbsoluteColor's components live in.
type Space uint8

const (
	// LegacyRGB holds 8-bit sRGB channels in [0,255], as produced by hex,
	// named, rgb(), hsl() and hwb() colors.
	LegacyRGB Space = iota
	Lab
	LCH
	Oklab
	Oklch
	SRGB
	SRGBLinear
	DisplayP3
	A98RGB
	ProPhotoRGB
	Rec2020
	XYZD50
	XYZD65
)

var spaceNames = [...]string{
	LegacyRGB:   "rgb",
	Lab:         "lab",
	LCH:         "lch",
	Oklab:       "oklab",
	Oklch:       "oklch",
	SRGB:        "srgb",
	SRGBLinear:  "srgb-linear",
	DisplayP3:   "display-p3",
	A98RGB:      "a98-rgb",
	ProPhotoRGB: "prophoto-rgb",
	Rec2020:     "rec2020",
	XYZD50:      "xyz-d50",
	XYZD65:      "xyz-d65",
}

func (s Space) String() string {
	if int(s) < len(spaceNames) {
		return spaceNames[s]
	}
	return "unknown"
}

// isRGB reports whether the space has red, green and blue components.
func (s Space) isRGB() bool {
	switch s {
	case LegacyRGB, SRGB, SRGBLinear, DisplayP3, A98RGB, ProPhotoRGB, Rec2020:
		return true
	}
	return false
}

// PredefinedSpace is a color space a canvas can render into.
type PredefinedSpace uint8

const (
	PredefinedSRGB PredefinedSpace = iota
	PredefinedDisplayP3
)

func (p PredefinedSpace) String() string {
	if p == PredefinedDisplayP3 {
		return "display-p3"
	}
	return "srgb"
}

// Space returns the absolute color space matching p.
func (p PredefinedSpace) Space() Space {
	if p == PredefinedDisplayP3 {
		return DisplayP3
	}
	return SRGB
}

// ParsePredefinedSpace parses the PredefinedColorSpace IDL enumeration.
func ParsePredefinedSpace(s string) (PredefinedSpace, bool) {
	switch s {
	case "srgb":
		return PredefinedSRGB, true
	case "display-p3":
		return PredefinedDisplayP3, true
	}
	return PredefinedSRGB, false
}

// AbsoluteColor is a color value in exactly one color space. The meaning of
// C0, C1 and C2 depends on Space (r/g/b, L/a/b, L/C/h or x/y/z). Hues are in
// degrees.
type AbsoluteColor struct {
	Space      Space
	C0, C1, C2 float32
	Alpha      float32
}

// RGBA returns an opaque-or-translucent legacy sRGB color from 8-bit channels.
func RGBA(r, g, b, a uint8) AbsoluteColor {
	return AbsoluteColor{Space: LegacyRGB, C0: float32(r), C1: float32(g), C2: float32(b), Alpha: float32(a) / 255}
}

// Transparent is transparent black.
var Transparent = AbsoluteColor{Space: LegacyRGB}

// Black is opaque black.
var Black = AbsoluteColor{Space: LegacyRGB, Alpha: 1}

// Computed is a parsed color that may still refer to currentColor.
type Computed struct {
	Color   AbsoluteColor
	Current bool
}

// Resolve maps currentColor to opaque black and passes absolute colors through.
func Resolve(c Computed) AbsoluteColor {
	if c.Current {
		return Black
	}
	return c.Color
}

// IsTransparent reports whether the color has zero alpha.
func (c AbsoluteColor) IsTransparent() bool { return c.Alpha <= 0 }

// WithAlpha returns c with its alpha multiplied by a.
func (c AbsoluteColor) WithAlpha(a float32) AbsoluteColor {
	c.Alpha *= a
	return c
}

func (c AbsoluteColor) components() [3]float64 {
	return [3]float64{float64(c.C0), float64(c.C1), float64(c.C2)}
}

func fromComponents(s Space, v [3]float64, alpha float32) AbsoluteColor {
	return AbsoluteColor{Space: s, C0: float32(v[0]), C1: float32(v[1]), C2: float32(v[2]), Alpha: alpha}
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
