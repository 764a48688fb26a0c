// Package canvas is a Pure Go implementation of the HTML canvas 2D
// rendering model.
//
// # Overview
//
// A Canvas owns a premultiplied ARGB32 pixel buffer and the drawing state
// machine of the web API: transforms, a current path, fill and stroke
// styles, shadows, filters, compositing and text. Paths are flattened and
// filled by a scanline rasterizer; paints are solid colors, gradients and
// image patterns; colors are parsed from CSS and gamut mapped into the
// canvas color space (sRGB or Display P3).
//
// # Quick Start
//
//	import "github.com/gogpu/canvas"
//
//	c, err := canvas.New(256, 256)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	c.SetFillStyleString("oklch(70% 0.15 30)")
//	c.FillRect(16, 16, 224, 224)
//
//	_ = c.SetFilter("blur(4px)")
//	c.BeginPath()
//	_ = c.Arc(128, 128, 64, 0, 2*math.Pi, false)
//	c.Fill(raster.NonZero)
//
//	f, _ := os.Create("out.png")
//	defer f.Close()
//	_ = c.EncodePNG(f)
//
// # Errors
//
// Operations that the web API reports with exceptions return errors here:
// *RangeError for arguments outside their domain, *SyntaxError for CSS
// strings that do not parse, *StateError and *FormatError for resources.
// Attribute setters that the web API silently ignores keep the previous
// value; the string-taking ones also return the parse error.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Canvas, Gradient, Pattern, ImageData
//   - color: CSS color parsing, conversion and gamut mapping
//   - geom: paths, transforms and flattening
//   - text: font faces, shaping and text layout
//   - bitmap, codec: image bitmaps and image encoding
//   - Internal: raster (scanline and compositing), blend, filter, css
//
// # Coordinate System
//
// Uses canvas coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians, 0 is right, increases clockwise
package canvas

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
