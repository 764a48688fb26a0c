package color

import (
	"fmt"
	"strconv"
	"strings"
)

func formatNumber(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}

// String serializes the color the way canvas style getters report it:
// opaque legacy colors as #rrggbb, translucent ones as rgba(), and every
// other space in its CSS functional notation.
func (c AbsoluteColor) String() string {
	switch c.Space {
	case LegacyRGB:
		r, g, b := uint8(channel8(float64(c.C0))), uint8(channel8(float64(c.C1))), uint8(channel8(float64(c.C2)))
		if c.Alpha >= 1 {
			return fmt.Sprintf("#%02x%02x%02x", r, g, b)
		}
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, formatNumber(c.Alpha))
	case Lab, LCH, Oklab, Oklch:
		return c.functional(c.Space.String() + "(")
	}
	return c.functional("color(" + c.Space.String() + " ")
}

func (c AbsoluteColor) functional(prefix string) string {
	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteString(formatNumber(c.C0))
	sb.WriteByte(' ')
	sb.WriteString(formatNumber(c.C1))
	sb.WriteByte(' ')
	sb.WriteString(formatNumber(c.C2))
	if c.Alpha < 1 {
		sb.WriteString(" / ")
		sb.WriteString(formatNumber(c.Alpha))
	}
	sb.WriteByte(')')
	return sb.String()
}

// String serializes currentColor as its keyword.
func (c Computed) String() string {
	if c.Current {
		return "currentcolor"
	}
	return c.Color.String()
}
