package filter

import (
	"fmt"
	"strings"

	"github.com/gogpu/canvas/color"
	"github.com/gogpu/canvas/internal/css"
)

// Kind identifies a CSS filter function.
type Kind uint8

const (
	Blur Kind = iota
	Brightness
	Contrast
	DropShadow
	Grayscale
	HueRotate
	Invert
	Opacity
	Saturate
	Sepia
)

var kindNames = [...]string{
	Blur:       "blur",
	Brightness: "brightness",
	Contrast:   "contrast",
	DropShadow: "drop-shadow",
	Grayscale:  "grayscale",
	HueRotate:  "hue-rotate",
	Invert:     "invert",
	Opacity:    "opacity",
	Saturate:   "saturate",
	Sepia:      "sepia",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Function is one parsed filter function.
type Function struct {
	Kind Kind
	// Amount is the numeric argument: a factor for the color functions,
	// degrees for hue-rotate and the standard deviation in pixels for blur.
	Amount float64
	// Drop shadow parameters. Blur is the blur radius; the Gaussian
	// standard deviation is half of it.
	Color  color.Computed
	DX, DY float64
	Blur   float64
}

// Parse parses a CSS filter value. "none" yields an empty list.
func Parse(src string) ([]Function, error) {
	c := css.NewCursor(src, css.KindFilter)
	if t := c.Peek(); t.Is("none") {
		c.Next()
		if err := c.ExpectDone(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if c.Done() {
		return nil, c.Errorf("filter function")
	}
	var out []Function
	for !c.Done() {
		t := c.Peek()
		if t.Type != css.Function {
			return nil, c.Errorf("filter function")
		}
		kind, ok := lookupKind(t.FunctionName())
		if !ok {
			return nil, c.Errorf("filter function")
		}
		c.Next()
		args, err := c.Block()
		if err != nil {
			return nil, err
		}
		f, err := parseArgs(kind, args)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func lookupKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

func parseArgs(kind Kind, c *css.Cursor) (Function, error) {
	f := Function{Kind: kind, Amount: 1}
	switch kind {
	case Blur:
		f.Amount = 0
		if !c.Done() {
			v, err := c.Length()
			if err != nil {
				return f, err
			}
			if v < 0 {
				return f, c.Errorf("non-negative length")
			}
			f.Amount = v
		}
	case HueRotate:
		f.Amount = 0
		if !c.Done() {
			v, err := c.Angle(false)
			if err != nil {
				return f, err
			}
			f.Amount = v
		}
	case DropShadow:
		return parseDropShadow(c)
	default:
		if !c.Done() {
			start := c.Save()
			v, _, err := c.NumberOrPercentage()
			if err != nil {
				return f, err
			}
			if v < 0 {
				c.Restore(start)
				return f, c.Errorf("non-negative amount")
			}
			f.Amount = v
		}
		switch kind {
		case Grayscale, Invert, Opacity, Sepia:
			f.Amount = min(f.Amount, 1)
		}
	}
	return f, c.ExpectDone()
}

// parseDropShadow parses "<color>? <dx> <dy> <blur>?" with the color
// allowed before or after the lengths.
func parseDropShadow(c *css.Cursor) (Function, error) {
	f := Function{Kind: DropShadow, Color: color.Computed{Current: true}}
	hasColor := false
	tryColor := func() error {
		if hasColor || c.Done() {
			return nil
		}
		t := c.Peek()
		if t.Type == css.Number || t.Type == css.Dimension {
			return nil
		}
		col, err := color.ParseCursor(c)
		if err != nil {
			return err
		}
		f.Color = col
		hasColor = true
		return nil
	}
	if err := tryColor(); err != nil {
		return f, err
	}
	var lengths []float64
	for len(lengths) < 3 && !c.Done() {
		t := c.Peek()
		if t.Type != css.Number && t.Type != css.Dimension {
			break
		}
		v, err := c.Length()
		if err != nil {
			return f, err
		}
		lengths = append(lengths, v)
	}
	if len(lengths) < 2 {
		return f, c.Errorf("shadow offset")
	}
	f.DX, f.DY = lengths[0], lengths[1]
	if len(lengths) == 3 {
		if lengths[2] < 0 {
			return f, c.Errorf("non-negative blur radius")
		}
		f.Blur = lengths[2]
	}
	if err := tryColor(); err != nil {
		return f, err
	}
	return f, c.ExpectDone()
}

// String serializes f in CSS syntax.
func (f Function) String() string {
	switch f.Kind {
	case Blur:
		return fmt.Sprintf("blur(%gpx)", f.Amount)
	case HueRotate:
		return fmt.Sprintf("hue-rotate(%gdeg)", f.Amount)
	case DropShadow:
		return fmt.Sprintf("drop-shadow(%s %gpx %gpx %gpx)", f.Color, f.DX, f.DY, f.Blur)
	}
	return fmt.Sprintf("%s(%g)", f.Kind, f.Amount)
}

// Format serializes a function list, "none" when empty.
func Format(funcs []Function) string {
	if len(funcs) == 0 {
		return "none"
	}
	parts := make([]string, len(funcs))
	for i, f := range funcs {
		parts[i] = f.String()
	}
	return strings.Join(parts, " ")
}
