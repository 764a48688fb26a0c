package color

import (
	"math"
	"strings"

	"github.com/gogpu/canvas/internal/css"
	tcss "github.com/tdewolff/parse/v2/css"
)

// Parse parses a CSS <color> value. Failures are *css.SyntaxError values.
func Parse(src string) (Computed, error) {
	c := css.NewCursor(src, css.KindColor)
	col, err := ParseCursor(c)
	if err != nil {
		return Computed{}, err
	}
	if err := c.ExpectDone(); err != nil {
		return Computed{}, err
	}
	return col, nil
}

// ParseCursor parses one color from the cursor, leaving any trailing
// tokens unconsumed.
func ParseCursor(c *css.Cursor) (Computed, error) {
	t := c.Peek()
	switch t.Type {
	case css.Ident:
		name := strings.ToLower(t.Data)
		switch name {
		case "currentcolor":
			c.Next()
			return Computed{Current: true}, nil
		case "transparent":
			c.Next()
			return Computed{Color: Transparent}, nil
		}
		if v, ok := namedColors[name]; ok {
			c.Next()
			return Computed{Color: RGBA(uint8(v>>16), uint8(v>>8), uint8(v), 255)}, nil
		}
		return Computed{}, c.Errorf("color keyword")
	case css.Hash:
		col, ok := parseHex(t.Data[1:])
		if !ok {
			return Computed{}, c.Errorf("hex color")
		}
		c.Next()
		return Computed{Color: col}, nil
	case css.Function:
		name := t.FunctionName()
		start := c.Save()
		c.Next()
		args, err := c.Block()
		if err != nil {
			return Computed{}, err
		}
		var col AbsoluteColor
		switch name {
		case "rgb", "rgba":
			col, err = parseRGB(args)
		case "hsl", "hsla":
			col, err = parseHSL(args)
		case "hwb":
			col, err = parseHWB(args)
		case "lab":
			col, err = parseLabLike(args, Lab, 100, 125)
		case "oklab":
			col, err = parseLabLike(args, Oklab, 1, 0.4)
		case "lch":
			col, err = parseLCHLike(args, LCH, 100, 150)
		case "oklch":
			col, err = parseLCHLike(args, Oklch, 1, 0.4)
		case "color":
			col, err = parseColorFunction(args)
		default:
			c.Restore(start)
			return Computed{}, c.Errorf("color function")
		}
		if err != nil {
			return Computed{}, err
		}
		return Computed{Color: col}, nil
	}
	return Computed{}, c.Errorf("color")
}

func hexNibble(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

func parseHex(s string) (AbsoluteColor, bool) {
	var n [8]uint8
	for i := 0; i < len(s); i++ {
		if i >= len(n) {
			return AbsoluteColor{}, false
		}
		v, ok := hexNibble(s[i])
		if !ok {
			return AbsoluteColor{}, false
		}
		n[i] = v
	}
	switch len(s) {
	case 3:
		return RGBA(n[0]*17, n[1]*17, n[2]*17, 255), true
	case 4:
		return RGBA(n[0]*17, n[1]*17, n[2]*17, n[3]*17), true
	case 6:
		return RGBA(n[0]<<4|n[1], n[2]<<4|n[3], n[4]<<4|n[5], 255), true
	case 8:
		return RGBA(n[0]<<4|n[1], n[2]<<4|n[3], n[4]<<4|n[5], n[6]<<4|n[7]), true
	}
	return AbsoluteColor{}, false
}

// arg is one color function argument.
type arg struct {
	v    float64
	typ  css.TokenType
	unit string
	none bool
}

func (a arg) isPercent() bool { return a.typ == css.Percentage }

type colorArgs struct {
	c      [3]arg
	alpha  arg
	legacy bool
}

func readArg(b *css.Cursor) (arg, error) {
	t := b.Peek()
	if t.Is("none") {
		b.Next()
		return arg{none: true, typ: css.Ident}, nil
	}
	v, unit, ok := t.Numeric()
	if !ok {
		return arg{}, b.Errorf("number, percentage or none")
	}
	b.Next()
	return arg{v: v, typ: t.Type, unit: unit}, nil
}

func readArgs(b *css.Cursor, allowLegacy bool) (colorArgs, error) {
	var out colorArgs
	out.alpha = arg{v: 1, typ: css.Number}
	var err error
	if out.c[0], err = readArg(b); err != nil {
		return out, err
	}
	out.legacy = b.SkipComma()
	if out.legacy && !allowLegacy {
		return out, b.Errorf("space-separated arguments")
	}
	for i := 1; i < 3; i++ {
		if i == 2 && out.legacy && !b.SkipComma() {
			return out, b.Errorf("','")
		}
		if out.c[i], err = readArg(b); err != nil {
			return out, err
		}
	}
	hasAlpha := false
	if out.legacy {
		hasAlpha = b.SkipComma()
	} else {
		hasAlpha = b.SkipDelim("/")
	}
	if hasAlpha {
		if out.alpha, err = readArg(b); err != nil {
			return out, err
		}
		if out.alpha.typ == css.Dimension {
			return out, b.Errorf("alpha value")
		}
	}
	if err := b.ExpectDone(); err != nil {
		return out, err
	}
	if out.legacy {
		for _, a := range append(out.c[:], out.alpha) {
			if a.none {
				return out, b.Errorf("number or percentage")
			}
		}
	}
	return out, nil
}

func alphaValue(a arg) float32 {
	if a.none {
		return 0
	}
	v := a.v
	if a.isPercent() {
		v /= 100
	}
	return float32(clamp01(v))
}

// percentOrNumber resolves a number or percentage where 100% equals full.
func percentOrNumber(b *css.Cursor, a arg, full float64) (float64, error) {
	switch {
	case a.none:
		return 0, nil
	case a.typ == css.Number:
		return a.v, nil
	case a.isPercent():
		return a.v / 100 * full, nil
	}
	return 0, b.Errorf("number or percentage")
}

func hueValue(b *css.Cursor, a arg) (float64, error) {
	if a.none {
		return 0, nil
	}
	var deg float64
	switch {
	case a.typ == css.Number:
		deg = a.v
	case a.typ == css.Dimension && a.unit == "deg":
		deg = a.v
	case a.typ == css.Dimension && a.unit == "rad":
		deg = a.v * 180 / math.Pi
	case a.typ == css.Dimension && a.unit == "grad":
		deg = a.v * 0.9
	case a.typ == css.Dimension && a.unit == "turn":
		deg = a.v * 360
	default:
		return 0, b.Errorf("hue")
	}
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg, nil
}

func channel8(v float64) float32 {
	return float32(math.Round(math.Max(0, math.Min(255, v))))
}

func parseRGB(b *css.Cursor) (AbsoluteColor, error) {
	a, err := readArgs(b, true)
	if err != nil {
		return AbsoluteColor{}, err
	}
	if a.legacy {
		pct := a.c[0].isPercent()
		for _, v := range a.c[1:] {
			if v.isPercent() != pct {
				return AbsoluteColor{}, b.Errorf("consistent rgb() argument types")
			}
		}
	}
	var ch [3]float32
	for i, v := range a.c {
		f, err := percentOrNumber(b, v, 255)
		if err != nil {
			return AbsoluteColor{}, err
		}
		ch[i] = channel8(f)
	}
	return AbsoluteColor{Space: LegacyRGB, C0: ch[0], C1: ch[1], C2: ch[2], Alpha: alphaValue(a.alpha)}, nil
}

func hslToLegacy(h, s, l float64, alpha float32) AbsoluteColor {
	r, g, bl := tcss.HSL2RGB(h/360, clamp01(s), clamp01(l))
	return AbsoluteColor{Space: LegacyRGB, C0: channel8(r * 255), C1: channel8(g * 255), C2: channel8(bl * 255), Alpha: alpha}
}

func parseHSL(b *css.Cursor) (AbsoluteColor, error) {
	a, err := readArgs(b, true)
	if err != nil {
		return AbsoluteColor{}, err
	}
	h, err := hueValue(b, a.c[0])
	if err != nil {
		return AbsoluteColor{}, err
	}
	if a.legacy && (!a.c[1].isPercent() || !a.c[2].isPercent()) {
		return AbsoluteColor{}, b.Errorf("percentage")
	}
	s, err := percentOrNumber(b, a.c[1], 100)
	if err != nil {
		return AbsoluteColor{}, err
	}
	l, err := percentOrNumber(b, a.c[2], 100)
	if err != nil {
		return AbsoluteColor{}, err
	}
	return hslToLegacy(h, s/100, l/100, alphaValue(a.alpha)), nil
}

func parseHWB(b *css.Cursor) (AbsoluteColor, error) {
	a, err := readArgs(b, false)
	if err != nil {
		return AbsoluteColor{}, err
	}
	h, err := hueValue(b, a.c[0])
	if err != nil {
		return AbsoluteColor{}, err
	}
	w, err := percentOrNumber(b, a.c[1], 100)
	if err != nil {
		return AbsoluteColor{}, err
	}
	bk, err := percentOrNumber(b, a.c[2], 100)
	if err != nil {
		return AbsoluteColor{}, err
	}
	w, bk = clamp01(w/100), clamp01(bk/100)
	alpha := alphaValue(a.alpha)
	if w+bk >= 1 {
		g := channel8(w / (w + bk) * 255)
		return AbsoluteColor{Space: LegacyRGB, C0: g, C1: g, C2: g, Alpha: alpha}, nil
	}
	pure := hslToLegacy(h, 1, 0.5, alpha)
	scale := func(v float32) float32 {
		return channel8((float64(v)/255*(1-w-bk) + w) * 255)
	}
	pure.C0, pure.C1, pure.C2 = scale(pure.C0), scale(pure.C1), scale(pure.C2)
	return pure, nil
}

func parseLabLike(b *css.Cursor, s Space, lightFull, abFull float64) (AbsoluteColor, error) {
	a, err := readArgs(b, false)
	if err != nil {
		return AbsoluteColor{}, err
	}
	var v [3]float64
	if v[0], err = percentOrNumber(b, a.c[0], lightFull); err != nil {
		return AbsoluteColor{}, err
	}
	v[0] = math.Max(0, math.Min(lightFull, v[0]))
	for i := 1; i < 3; i++ {
		if v[i], err = percentOrNumber(b, a.c[i], abFull); err != nil {
			return AbsoluteColor{}, err
		}
	}
	return fromComponents(s, v, alphaValue(a.alpha)), nil
}

func parseLCHLike(b *css.Cursor, s Space, lightFull, chromaFull float64) (AbsoluteColor, error) {
	a, err := readArgs(b, false)
	if err != nil {
		return AbsoluteColor{}, err
	}
	var v [3]float64
	if v[0], err = percentOrNumber(b, a.c[0], lightFull); err != nil {
		return AbsoluteColor{}, err
	}
	v[0] = math.Max(0, math.Min(lightFull, v[0]))
	if v[1], err = percentOrNumber(b, a.c[1], chromaFull); err != nil {
		return AbsoluteColor{}, err
	}
	v[1] = math.Max(0, v[1])
	if v[2], err = hueValue(b, a.c[2]); err != nil {
		return AbsoluteColor{}, err
	}
	return fromComponents(s, v, alphaValue(a.alpha)), nil
}

var predefinedByName = map[string]Space{
	"srgb":         SRGB,
	"srgb-linear":  SRGBLinear,
	"display-p3":   DisplayP3,
	"a98-rgb":      A98RGB,
	"prophoto-rgb": ProPhotoRGB,
	"rec2020":      Rec2020,
	"xyz":          XYZD65,
	"xyz-d50":      XYZD50,
	"xyz-d65":      XYZD65,
}

func parseColorFunction(b *css.Cursor) (AbsoluteColor, error) {
	t := b.Peek()
	s, ok := predefinedByName[strings.ToLower(t.Data)]
	if t.Type != css.Ident || !ok {
		return AbsoluteColor{}, b.Errorf("predefined color space")
	}
	b.Next()
	a, err := readArgs(b, false)
	if err != nil {
		return AbsoluteColor{}, err
	}
	var v [3]float64
	for i := range v {
		if v[i], err = percentOrNumber(b, a.c[i], 1); err != nil {
			return AbsoluteColor{}, err
		}
	}
	return fromComponents(s, v, alphaValue(a.alpha)), nil
}
