package canvas

import (
	"math"

	"github.com/gogpu/canvas/bitmap"
	"github.com/gogpu/canvas/color"
	"github.com/gogpu/canvas/geom"
	swraster "github.com/gogpu/canvas/internal/raster"
	"github.com/gogpu/canvas/raster"
	"github.com/gogpu/canvas/text"
)

// Canvas is a 2D drawing surface: a premultiplied ARGB32 buffer together
// with the drawing state machine that paints into it.
//
// A Canvas is not safe for concurrent use.
type Canvas struct {
	width, height int
	alpha         bool
	space         color.PredefinedSpace

	backend raster.Backend
	target  *raster.Target
	fonts   *text.FontFaceSet
	shaper  text.Shaper
	// parallel enables band splitting in filter blur passes.
	parallel bool

	state DrawingState
	stack []DrawingState
	// path is the current default path in device space.
	path *geom.Path
}

// New creates a canvas of the given size. The pixel count must fit in a
// signed 32-bit integer; larger sizes are a RangeError and nothing is
// allocated.
//
//	c, err := canvas.New(800, 600)
//	if err != nil {
//	    return err
//	}
//	c.SetFillStyleString("rebeccapurple")
//	c.FillRect(10, 10, 100, 100)
func New(width, height int, opts ...Option) (*Canvas, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := bitmap.CheckSize(width, height); err != nil {
		return nil, &RangeError{Op: "new", Reason: err.Error()}
	}
	c := &Canvas{
		alpha:   o.alpha,
		space:   o.space,
		backend: o.backend,
		fonts:   o.fonts,
		shaper:  o.shaper,

		parallel: o.parallelFilters,
	}
	if c.backend == nil {
		c.backend = swraster.New()
	}
	if c.fonts == nil {
		c.fonts = text.NewFontFaceSet()
	}
	if c.shaper == nil {
		c.shaper = text.DefaultShaper()
	}
	c.allocate(width, height)
	return c, nil
}

func (c *Canvas) allocate(width, height int) {
	c.width, c.height = width, height
	c.target = raster.NewTarget(width, height)
	c.target.Opaque = !c.alpha
	c.clearBuffer()
	c.state = defaultState()
	c.stack = nil
	c.path = geom.NewPath()
}

func (c *Canvas) clearBuffer() {
	var v uint32
	if !c.alpha {
		v = 0xff000000
	}
	for i := range c.target.Pix {
		c.target.Pix[i] = v
	}
}

// Width returns the width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the height in pixels.
func (c *Canvas) Height() int { return c.height }

// Alpha reports whether the buffer may hold transparency.
func (c *Canvas) Alpha() bool { return c.alpha }

// ColorSpace returns the color space the buffer is encoded in.
func (c *Canvas) ColorSpace() color.PredefinedSpace { return c.space }

// Fonts returns the font faces text is drawn with.
func (c *Canvas) Fonts() *text.FontFaceSet { return c.fonts }

// Resize reallocates the buffer and resets all state, like assigning the
// width or height of an HTML canvas.
func (c *Canvas) Resize(width, height int) error {
	if err := bitmap.CheckSize(width, height); err != nil {
		return &RangeError{Op: "resize", Reason: err.Error()}
	}
	c.allocate(width, height)
	return nil
}

// Reset clears the buffer, the state stack, the clip and the current path.
func (c *Canvas) Reset() {
	for range c.state.clipDepth {
		c.backend.PopClip(c.target)
	}
	c.clearBuffer()
	c.state = defaultState()
	c.stack = nil
	c.path.Reset()
}

// Save pushes a copy of the drawing state.
func (c *Canvas) Save() {
	c.stack = append(c.stack, c.state.clone())
}

// Restore pops the most recently saved drawing state, removing the clips
// pushed since it was saved. It does nothing when the stack is empty.
func (c *Canvas) Restore() {
	n := len(c.stack)
	if n == 0 {
		return
	}
	prev := c.stack[n-1]
	c.stack = c.stack[:n-1]
	for i := prev.clipDepth; i < c.state.clipDepth; i++ {
		c.backend.PopClip(c.target)
	}
	c.state = prev
}

// SaveDepth returns the number of saved states.
func (c *Canvas) SaveDepth() int { return len(c.stack) }

// ClipDepth returns the number of clips in effect.
func (c *Canvas) ClipDepth() int { return c.state.clipDepth }

func (c *Canvas) setTransform(m geom.Matrix, op string) {
	if !m.IsFinite() {
		Logger().Warn("canvas: ignoring non-finite transform", "op", op)
		return
	}
	c.state.transform = m
}

// Scale scales the current transform.
func (c *Canvas) Scale(x, y float64) {
	c.setTransform(c.state.transform.Mul(geom.Scale(x, y)), "scale")
}

// Rotate rotates the current transform by angle radians, clockwise on
// screen.
func (c *Canvas) Rotate(angle float64) {
	if !finite(angle) {
		return
	}
	c.setTransform(c.state.transform.Mul(geom.Rotate(angle)), "rotate")
}

// Translate translates the current transform.
func (c *Canvas) Translate(x, y float64) {
	c.setTransform(c.state.transform.Mul(geom.Translate(x, y)), "translate")
}

// Transform multiplies the current transform by the matrix
// [a c e; b d f].
func (c *Canvas) Transform(a, b, cc, d, e, f float64) {
	if !finite(a, b, cc, d, e, f) {
		Logger().Warn("canvas: ignoring non-finite transform", "op", "transform")
		return
	}
	c.setTransform(c.state.transform.Mul(geom.Matrix{A: a, B: b, C: cc, D: d, E: e, F: f}), "transform")
}

// SetTransform replaces the current transform.
func (c *Canvas) SetTransform(m geom.Matrix) {
	c.setTransform(m, "setTransform")
}

// ResetTransform sets the current transform to the identity.
func (c *Canvas) ResetTransform() { c.state.transform = geom.Identity() }

// GetTransform returns the current transform.
func (c *Canvas) GetTransform() geom.Matrix { return c.state.transform }

// AddFontFace loads a font face from data with the canvas shaper and adds
// it to the canvas font set. Faces whose data cannot be used are a
// StateError wrapping a *text.LoadError.
func (c *Canvas) AddFontFace(family string, data []byte, opts ...text.FaceOption) (*text.FontFace, error) {
	opts = append([]text.FaceOption{text.WithFaceShaper(c.shaper)}, opts...)
	f := text.NewFontFace(family, data, opts...)
	if err := f.Load(); err != nil {
		return nil, &StateError{Op: "load font face " + family, Err: err}
	}
	c.fonts.Add(f)
	return f, nil
}

// tolerance returns the user-space flattening tolerance matching the
// device tolerance under the current transform.
func (c *Canvas) tolerance() float64 {
	s := c.state.transform.ScaleFactor()
	if !(s > 1e-9) || math.IsInf(s, 0) {
		return geom.DefaultTolerance
	}
	return geom.DefaultTolerance / s
}
