package canvas

import (
	"fmt"

	"github.com/gogpu/canvas/internal/css"
	"github.com/gogpu/canvas/raster"
)

// CompositeOperation is a globalCompositeOperation value.
type CompositeOperation uint8

const (
	SourceOver CompositeOperation = iota
	SourceIn
	SourceOut
	SourceAtop
	DestinationOver
	DestinationIn
	DestinationOut
	DestinationAtop
	Lighter
	Copy
	Xor
	Multiply
	Screen
	Overlay
	Darken
	Lighten
	ColorDodge
	ColorBurn
	HardLight
	SoftLight
	Difference
	Exclusion
	Hue
	Saturation
	Color
	Luminosity
	Clear
	PlusLighter
	PlusDarker
	Normal
)

// compositeEntry maps an operation onto blend primitives. The opaque mode
// is the algebraic simplification of the alpha mode for a destination
// whose alpha is always one.
type compositeEntry struct {
	name          string
	alpha, opaque raster.BlendMode
}

var composites = [...]compositeEntry{
	SourceOver:      {"source-over", raster.SrcOver, raster.SrcOver},
	SourceIn:        {"source-in", raster.SrcIn, raster.Src},
	SourceOut:       {"source-out", raster.SrcOut, raster.Clear},
	SourceAtop:      {"source-atop", raster.SrcAtop, raster.SrcOver},
	DestinationOver: {"destination-over", raster.DstOver, raster.Dst},
	DestinationIn:   {"destination-in", raster.DstIn, raster.DstIn},
	DestinationOut:  {"destination-out", raster.DstOut, raster.DstOut},
	DestinationAtop: {"destination-atop", raster.DstAtop, raster.DstIn},
	Lighter:         {"lighter", raster.Plus, raster.Plus},
	Copy:            {"copy", raster.Src, raster.Src},
	Xor:             {"xor", raster.Xor, raster.DstOut},
	Multiply:        {"multiply", raster.Multiply, raster.Multiply},
	Screen:          {"screen", raster.Screen, raster.Screen},
	Overlay:         {"overlay", raster.Overlay, raster.Overlay},
	Darken:          {"darken", raster.Darken, raster.Darken},
	Lighten:         {"lighten", raster.Lighten, raster.Lighten},
	ColorDodge:      {"color-dodge", raster.ColorDodge, raster.ColorDodge},
	ColorBurn:       {"color-burn", raster.ColorBurn, raster.ColorBurn},
	HardLight:       {"hard-light", raster.HardLight, raster.HardLight},
	SoftLight:       {"soft-light", raster.SoftLight, raster.SoftLight},
	Difference:      {"difference", raster.Difference, raster.Difference},
	Exclusion:       {"exclusion", raster.Exclusion, raster.Exclusion},
	Hue:             {"hue", raster.Hue, raster.Hue},
	Saturation:      {"saturation", raster.Saturation, raster.Saturation},
	Color:           {"color", raster.Color, raster.Color},
	Luminosity:      {"luminosity", raster.Luminosity, raster.Luminosity},
	Clear:           {"clear", raster.Clear, raster.Clear},
	PlusLighter:     {"plus-lighter", raster.Plus, raster.Plus},
	PlusDarker:      {"plus-darker", 0, 0},
	Normal:          {"normal", raster.SrcOver, raster.SrcOver},
}

// NumCompositeOperations is the number of CompositeOperation values.
const NumCompositeOperations = len(composites)

func (op CompositeOperation) String() string {
	if int(op) < len(composites) {
		return composites[op].name
	}
	return fmt.Sprintf("CompositeOperation(%d)", op)
}

// ParseCompositeOperation parses a globalCompositeOperation keyword. Keywords
// are case-sensitive.
func ParseCompositeOperation(s string) (CompositeOperation, error) {
	for i, e := range composites {
		if e.name == s {
			return CompositeOperation(i), nil
		}
	}
	return 0, &SyntaxError{Source: s, Kind: css.KindComposite, Line: 1, Column: 1, Expected: "a composite operation keyword"}
}

// BlendMode returns the rasterizer blend mode implementing op on a canvas
// with or without an alpha channel. It panics for PlusDarker, which has no
// implementation.
func (op CompositeOperation) BlendMode(alpha bool) raster.BlendMode {
	if op == PlusDarker {
		panic("canvas: plus-darker composite operation is unimplemented")
	}
	e := composites[op]
	if alpha {
		return e.alpha
	}
	return e.opaque
}
