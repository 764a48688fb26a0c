package text

// Direction is the canvas direction attribute.
type Direction uint8

const (
	DirectionInherit Direction = iota
	DirectionLTR
	DirectionRTL
)

var directionNames = [...]string{"inherit", "ltr", "rtl"}

func (d Direction) String() string { return enumName(directionNames[:], int(d)) }

// Resolve returns LTR or RTL. With no element to inherit from, inherit
// resolves to LTR.
func (d Direction) Resolve() Direction {
	if d == DirectionRTL {
		return DirectionRTL
	}
	return DirectionLTR
}

// ParseDirection parses a direction keyword. Values are matched exactly, as
// the canvas API does for its enumerated attributes.
func ParseDirection(s string) (Direction, bool) {
	i, ok := enumValue(directionNames[:], s)
	return Direction(i), ok
}

// TextAlign is the canvas textAlign attribute.
type TextAlign uint8

const (
	AlignStart TextAlign = iota
	AlignEnd
	AlignLeft
	AlignRight
	AlignCenter
)

var alignNames = [...]string{"start", "end", "left", "right", "center"}

func (a TextAlign) String() string { return enumName(alignNames[:], int(a)) }

// ParseTextAlign parses a textAlign keyword.
func ParseTextAlign(s string) (TextAlign, bool) {
	i, ok := enumValue(alignNames[:], s)
	return TextAlign(i), ok
}

// Physical maps start and end onto left or right for direction d.
func (a TextAlign) Physical(d Direction) TextAlign {
	rtl := d.Resolve() == DirectionRTL
	switch a {
	case AlignStart:
		if rtl {
			return AlignRight
		}
		return AlignLeft
	case AlignEnd:
		if rtl {
			return AlignLeft
		}
		return AlignRight
	}
	return a
}

// TextBaseline is the canvas textBaseline attribute.
type TextBaseline uint8

const (
	BaselineAlphabetic TextBaseline = iota
	BaselineTop
	BaselineHanging
	BaselineMiddle
	BaselineIdeographic
	BaselineBottom
)

var baselineNames = [...]string{"alphabetic", "top", "hanging", "middle", "ideographic", "bottom"}

func (b TextBaseline) String() string { return enumName(baselineNames[:], int(b)) }

// ParseTextBaseline parses a textBaseline keyword.
func ParseTextBaseline(s string) (TextBaseline, bool) {
	i, ok := enumValue(baselineNames[:], s)
	return TextBaseline(i), ok
}

// Kerning is the canvas fontKerning attribute.
type Kerning uint8

const (
	KerningAuto Kerning = iota
	KerningNormal
	KerningNone
)

var kerningNames = [...]string{"auto", "normal", "none"}

func (k Kerning) String() string { return enumName(kerningNames[:], int(k)) }

// ParseKerning parses a fontKerning keyword.
func ParseKerning(s string) (Kerning, bool) {
	i, ok := enumValue(kerningNames[:], s)
	return Kerning(i), ok
}

// Style is the text-related part of the canvas drawing state.
type Style struct {
	Font      Font
	Align     TextAlign
	Baseline  TextBaseline
	Direction Direction
	Kerning   Kerning
	// Spacing in CSS pixels.
	LetterSpacing float64
	WordSpacing   float64
}

// features returns the OpenType feature settings implied by s.
func (s *Style) features() []Feature {
	var fs []Feature
	if s.Kerning == KerningNone {
		fs = append(fs, Feature{Tag: "kern", Value: 0})
	}
	if s.Font.Variant == VariantSmallCaps {
		fs = append(fs, Feature{Tag: "smcp", Value: 1})
	}
	return fs
}

func enumName(names []string, i int) string {
	if i >= 0 && i < len(names) {
		return names[i]
	}
	return "invalid"
}

func enumValue(names []string, s string) (int, bool) {
	for i, n := range names {
		if n == s {
			return i, true
		}
	}
	return 0, false
}
