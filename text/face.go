package text

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gogpu/canvas/internal/css"
	"github.com/gogpu/canvas/internal/logging"
)

// faceIDs numbers faces across the whole process.
var faceIDs atomic.Uint64

// FaceStatus is the load state of a FontFace.
type FaceStatus uint8

const (
	StatusUnloaded FaceStatus = iota
	StatusLoaded
	StatusError
)

func (s FaceStatus) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusError:
		return "error"
	}
	return "unloaded"
}

// UnicodeRange is an inclusive code point range.
type UnicodeRange struct {
	First, Last rune
}

// Contains reports whether r lies in the range.
func (u UnicodeRange) Contains(r rune) bool { return r >= u.First && r <= u.Last }

// AllRunes covers every code point.
var AllRunes = UnicodeRange{0, 0x10FFFF}

// ParseUnicodeRange parses a CSS unicode-range descriptor such as
// "U+0000-00FF, U+4??".
func ParseUnicodeRange(src string) ([]UnicodeRange, error) {
	c := css.NewCursor(src, css.KindKeyword)
	var out []UnicodeRange
	for {
		t := c.Peek()
		if t.Type != css.UnicodeRange {
			return nil, c.Errorf("unicode range")
		}
		r, ok := parseRangeToken(t.Data[2:])
		if !ok {
			return nil, c.Errorf("unicode range within U+0-10FFFF")
		}
		c.Next()
		out = append(out, r)
		if c.Done() {
			return out, nil
		}
		if !c.SkipComma() {
			return nil, c.Errorf("','")
		}
	}
}

func parseRangeToken(s string) (UnicodeRange, bool) {
	var lo, hi string
	if i := strings.IndexByte(s, '-'); i >= 0 {
		lo, hi = s[:i], s[i+1:]
	} else if strings.ContainsRune(s, '?') {
		lo, hi = strings.ReplaceAll(s, "?", "0"), strings.ReplaceAll(s, "?", "F")
	} else {
		lo, hi = s, s
	}
	a, err1 := strconv.ParseUint(lo, 16, 32)
	b, err2 := strconv.ParseUint(hi, 16, 32)
	if err1 != nil || err2 != nil || a > b || b > 0x10FFFF {
		return UnicodeRange{}, false
	}
	return UnicodeRange{rune(a), rune(b)}, true
}

// FaceOption configures a FontFace.
type FaceOption func(*faceConfig)

type faceConfig struct {
	ranges []UnicodeRange
	url    string
	local  string
	shaper Shaper
}

// WithUnicodeRange restricts the face to the given ranges.
func WithUnicodeRange(ranges ...UnicodeRange) FaceOption {
	return func(c *faceConfig) { c.ranges = append(c.ranges, ranges...) }
}

// WithSourceURL records that the face data was fetched from url. Decode
// failures of such faces are reported as network errors.
func WithSourceURL(url string) FaceOption {
	return func(c *faceConfig) { c.url = url }
}

// WithLocalSource marks the face as a local() font reference.
func WithLocalSource(name string) FaceOption {
	return func(c *faceConfig) { c.local = name }
}

// WithFaceShaper sets the Shaper used to decode the face. The default is
// DefaultShaper.
func WithFaceShaper(s Shaper) FaceOption {
	return func(c *faceConfig) { c.shaper = s }
}

// FontFace is a registered font face. It is decoded lazily by Load.
type FontFace struct {
	id     uint64
	family string
	data   []byte
	config faceConfig

	mu     sync.Mutex
	status FaceStatus
	font   ShapingFont
	err    error
}

// NewFontFace creates an unloaded face for family from font data.
func NewFontFace(family string, data []byte, opts ...FaceOption) *FontFace {
	f := &FontFace{
		id:     faceIDs.Add(1),
		family: family,
		data:   data,
	}
	for _, opt := range opts {
		opt(&f.config)
	}
	if len(f.config.ranges) == 0 {
		f.config.ranges = []UnicodeRange{AllRunes}
	}
	if f.config.shaper == nil {
		f.config.shaper = DefaultShaper()
	}
	return f
}

// ID returns the process-wide unique face id. Later faces have larger ids.
func (f *FontFace) ID() uint64 { return f.id }

// Family returns the family name the face was registered under.
func (f *FontFace) Family() string { return f.family }

// UnicodeRanges returns the ranges the face applies to.
func (f *FontFace) UnicodeRanges() []UnicodeRange { return f.config.ranges }

// Status returns the load state.
func (f *FontFace) Status() FaceStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Font returns the decoded font, or nil before a successful Load.
func (f *FontFace) Font() ShapingFont {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.font
}

// Load decodes the face. It is idempotent: later calls return the result
// of the first one. Failures are *LoadError.
func (f *FontFace) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.status {
	case StatusLoaded:
		return nil
	case StatusError:
		return f.err
	}

	fail := func(kind LoadErrorKind, err error) error {
		f.status = StatusError
		f.err = &LoadError{Family: f.family, Kind: kind, Err: err}
		logging.Logger().Debug("text: font face failed to load", "family", f.family, "id", f.id, "err", err)
		return f.err
	}
	if f.config.local != "" {
		return fail(LoadUnsupported, ErrLocalFontUnsupported)
	}
	kind := LoadSyntax
	if f.config.url != "" {
		kind = LoadNetwork
	}
	if len(f.data) == 0 {
		return fail(kind, ErrEmptyFontData)
	}
	font, err := f.config.shaper.Parse(f.data)
	if err != nil {
		return fail(kind, err)
	}
	f.font = font
	f.status = StatusLoaded
	logging.Logger().Debug("text: font face loaded", "family", f.family, "id", f.id)
	return nil
}

// Covers reports whether r lies in one of the face's unicode ranges.
func (f *FontFace) Covers(r rune) bool {
	for _, u := range f.config.ranges {
		if u.Contains(r) {
			return true
		}
	}
	return false
}
