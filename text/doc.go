// Package text lays out canvas text: it resolves fonts from a FontFaceSet,
// splits text into bidirectional runs of a single font, shapes each run and
// turns the positioned glyph outlines into a geom.Path with TextMetrics.
//
// Shaping and glyph outlines are delegated to a Shaper. The default Shaper
// is backed by go-text/typesetting, a Go port of HarfBuzz:
//
//	face := text.NewFontFace("Go", goregular.TTF)
//	if err := face.Load(); err != nil {
//	    log.Fatal(err)
//	}
//	set := text.NewFontFaceSet()
//	set.Add(face)
//
//	font, _ := text.ParseFont("16px Go")
//	path, metrics := text.PrepareText(set, text.Style{Font: font}, "Hello", math.Inf(1))
//
// The path is in CSS pixels with the anchor point selected by the style's
// alignment and baseline at the origin, y growing downwards.
package text
