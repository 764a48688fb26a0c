package text

import (
	"fmt"
	"strings"

	"github.com/gogpu/canvas/internal/css"
)

// FontStyle is the font-style part of a font shorthand.
type FontStyle uint8

const (
	StyleNormal FontStyle = iota
	StyleItalic
	StyleOblique
)

// FontVariant is the CSS 2.1 font-variant part of a font shorthand.
type FontVariant uint8

const (
	VariantNormal FontVariant = iota
	VariantSmallCaps
)

// FontStretch is the font-stretch part of a font shorthand.
type FontStretch uint8

const (
	StretchUltraCondensed FontStretch = iota
	StretchExtraCondensed
	StretchCondensed
	StretchSemiCondensed
	StretchNormal
	StretchSemiExpanded
	StretchExpanded
	StretchExtraExpanded
	StretchUltraExpanded
)

var stretchNames = [...]string{
	"ultra-condensed", "extra-condensed", "condensed", "semi-condensed", "normal",
	"semi-expanded", "expanded", "extra-expanded", "ultra-expanded",
}

func (s FontStretch) String() string { return enumName(stretchNames[:], int(s)) }

// Font is a parsed CSS font shorthand.
type Font struct {
	Style   FontStyle
	Variant FontVariant
	Weight  int
	Stretch FontStretch
	// Size is the computed size in CSS pixels.
	Size     float64
	Families []string
}

// DefaultFont is the initial canvas font, "10px sans-serif".
func DefaultFont() Font {
	return Font{Weight: 400, Stretch: StretchNormal, Size: defaultFontSize, Families: []string{"sans-serif"}}
}

// defaultFontSize is the size relative font sizes are computed against.
const defaultFontSize = 10

// mediumFontSize is the size of the "medium" absolute-size keyword.
const mediumFontSize = 16

var absoluteSizes = map[string]float64{
	"xx-small":  mediumFontSize * 3 / 5,
	"x-small":   mediumFontSize * 3 / 4,
	"small":     mediumFontSize * 8 / 9,
	"medium":    mediumFontSize,
	"large":     mediumFontSize * 6 / 5,
	"x-large":   mediumFontSize * 3 / 2,
	"xx-large":  mediumFontSize * 2,
	"xxx-large": mediumFontSize * 3,
}

var genericFamilies = map[string]bool{
	"serif": true, "sans-serif": true, "monospace": true, "cursive": true, "fantasy": true,
	"system-ui": true, "ui-serif": true, "ui-sans-serif": true, "ui-monospace": true,
	"ui-rounded": true, "math": true, "emoji": true, "fangsong": true,
}

// ParseFont parses a CSS font shorthand such as
// "italic small-caps bold condensed 16px/2 Arial, sans-serif". Line heights
// are accepted and discarded. Errors are *css.SyntaxError.
func ParseFont(src string) (Font, error) {
	c := css.NewCursor(src, css.KindFont)
	f := Font{Weight: 400, Stretch: StretchNormal}
	var hasStyle, hasVariant, hasWeight, hasStretch bool
prefix:
	for n := 0; n < 4; n++ {
		t := c.Peek()
		if t.Type == css.Number {
			v, _, _ := t.Numeric()
			if hasWeight || v < 1 || v > 1000 {
				return Font{}, c.Errorf("font weight between 1 and 1000")
			}
			f.Weight, hasWeight = int(v), true
			c.Next()
			continue
		}
		if t.Type != css.Ident {
			break prefix
		}
		kw := strings.ToLower(t.Data)
		switch kw {
		case "normal":
		case "italic", "oblique":
			if hasStyle {
				return Font{}, c.Errorf("font size")
			}
			f.Style, hasStyle = StyleItalic, true
			if kw == "oblique" {
				f.Style = StyleOblique
			}
		case "small-caps":
			if hasVariant {
				return Font{}, c.Errorf("font size")
			}
			f.Variant, hasVariant = VariantSmallCaps, true
		case "bold", "bolder", "lighter":
			if hasWeight {
				return Font{}, c.Errorf("font size")
			}
			f.Weight, hasWeight = map[string]int{"bold": 700, "bolder": 700, "lighter": 100}[kw], true
		default:
			i, ok := enumValue(stretchNames[:], kw)
			if !ok {
				break prefix
			}
			if hasStretch {
				return Font{}, c.Errorf("font size")
			}
			f.Stretch, hasStretch = FontStretch(i), true
		}
		c.Next()
	}

	size, err := parseFontSize(c)
	if err != nil {
		return Font{}, err
	}
	f.Size = size

	if c.SkipDelim("/") {
		t := c.Next()
		switch {
		case t.Is("normal"):
		case t.Type == css.Number || t.Type == css.Percentage || t.Type == css.Dimension:
			if v, _, ok := t.Numeric(); !ok || v < 0 {
				return Font{}, c.Errorf("line height")
			}
		default:
			return Font{}, c.Errorf("line height")
		}
	}

	f.Families, err = parseFamilies(c)
	if err != nil {
		return Font{}, err
	}
	return f, nil
}

func parseFontSize(c *css.Cursor) (float64, error) {
	t := c.Peek()
	var size float64
	switch t.Type {
	case css.Ident:
		kw := strings.ToLower(t.Data)
		switch kw {
		case "larger":
			size = defaultFontSize * 1.2
		case "smaller":
			size = defaultFontSize / 1.2
		default:
			v, ok := absoluteSizes[kw]
			if !ok {
				return 0, c.Errorf("font size")
			}
			size = v
		}
	case css.Percentage:
		v, _, ok := t.Numeric()
		if !ok {
			return 0, c.Errorf("font size")
		}
		size = v / 100 * defaultFontSize
	case css.Dimension:
		v, unit, ok := t.Numeric()
		if !ok {
			return 0, c.Errorf("font size")
		}
		switch unit {
		case "em", "rem":
			size = v * defaultFontSize
		case "ex":
			size = v * defaultFontSize / 2
		default:
			px, ok := css.AbsoluteLength(v, unit)
			if !ok {
				return 0, c.Errorf("font size")
			}
			size = px
		}
	case css.Number:
		if v, _, _ := t.Numeric(); v != 0 {
			return 0, c.Errorf("font size unit")
		}
	default:
		return 0, c.Errorf("font size")
	}
	if size < 0 {
		return 0, c.Errorf("non-negative font size")
	}
	c.Next()
	return size, nil
}

func parseFamilies(c *css.Cursor) ([]string, error) {
	var out []string
	for {
		t := c.Peek()
		switch t.Type {
		case css.String:
			c.Next()
			out = append(out, t.Data)
		case css.Ident:
			var words []string
			for c.Peek().Type == css.Ident {
				words = append(words, c.Next().Data)
			}
			name := strings.Join(words, " ")
			lower := strings.ToLower(name)
			switch {
			case len(words) == 1 && genericFamilies[lower]:
				name = lower
			case len(words) == 1 && (lower == "inherit" || lower == "initial" || lower == "unset" || lower == "default"):
				return nil, c.Errorf("font family")
			}
			out = append(out, name)
		default:
			return nil, c.Errorf("font family")
		}
		if c.Done() {
			return out, nil
		}
		if !c.SkipComma() {
			return nil, c.Errorf("','")
		}
	}
}

// String serializes f the way the canvas font getter reports it.
func (f Font) String() string {
	var parts []string
	switch f.Style {
	case StyleItalic:
		parts = append(parts, "italic")
	case StyleOblique:
		parts = append(parts, "oblique")
	}
	if f.Variant == VariantSmallCaps {
		parts = append(parts, "small-caps")
	}
	switch f.Weight {
	case 400, 0:
	case 700:
		parts = append(parts, "bold")
	default:
		parts = append(parts, fmt.Sprint(f.Weight))
	}
	if f.Stretch != StretchNormal {
		parts = append(parts, f.Stretch.String())
	}
	parts = append(parts, fmt.Sprintf("%gpx", f.Size))
	fams := make([]string, len(f.Families))
	for i, name := range f.Families {
		fams[i] = quoteFamily(name)
	}
	return strings.Join(parts, " ") + " " + strings.Join(fams, ", ")
}

func quoteFamily(name string) string {
	if genericFamilies[name] {
		return name
	}
	for _, r := range name {
		if !(r == '-' || r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r > 0x7f) {
			return `"` + strings.ReplaceAll(name, `"`, `\"`) + `"`
		}
	}
	if name == "" || name[0] >= '0' && name[0] <= '9' {
		return `"` + name + `"`
	}
	return name
}
