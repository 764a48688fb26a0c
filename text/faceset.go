package text

import (
	"iter"
	"slices"
	"strings"

	"github.com/gogpu/canvas/internal/logging"
)

// FontFaceSet is an insertion-ordered set of font faces, the registry
// PrepareText selects fonts from.
type FontFaceSet struct {
	faces    []*FontFace
	fallback *FontFace
}

// NewFontFaceSet returns an empty set.
func NewFontFaceSet() *FontFaceSet { return &FontFaceSet{} }

// Add appends f unless it is already present.
func (s *FontFaceSet) Add(f *FontFace) {
	if f == nil || s.Has(f) {
		return
	}
	s.faces = append(s.faces, f)
}

// Delete removes f and reports whether it was present.
func (s *FontFaceSet) Delete(f *FontFace) bool {
	i := slices.Index(s.faces, f)
	if i < 0 {
		return false
	}
	s.faces = slices.Delete(s.faces, i, i+1)
	return true
}

// Has reports whether f is in the set.
func (s *FontFaceSet) Has(f *FontFace) bool { return slices.Contains(s.faces, f) }

// Clear removes every face. The fallback is kept.
func (s *FontFaceSet) Clear() { s.faces = nil }

// Len returns the number of faces.
func (s *FontFaceSet) Len() int { return len(s.faces) }

// All iterates over the faces in insertion order.
func (s *FontFaceSet) All() iter.Seq[*FontFace] { return slices.Values(s.faces) }

// SetFallback sets the face used when no family in a font list matches.
func (s *FontFaceSet) SetFallback(f *FontFace) { s.fallback = f }

// Fallback returns the fallback face, nil if none was set.
func (s *FontFaceSet) Fallback() *FontFace { return s.fallback }

// loadOnDemand loads an unloaded face found while matching. A failure
// leaves f in the error state and the matcher moves on to the next face.
func loadOnDemand(f *FontFace) {
	if f.Status() != StatusUnloaded {
		return
	}
	if err := f.Load(); err != nil {
		logging.Logger().Debug("text: skipping font face during matching",
			"family", f.family, "id", f.id, "err", err)
	}
}

// usable loads f when needed and reports whether it can render r.
func usable(f *FontFace, r rune) bool {
	if !f.Covers(r) {
		return false
	}
	loadOnDemand(f)
	font := f.Font()
	return font != nil && font.HasGlyph(r)
}

// Match returns the face that renders r for the family list: the first
// family with a matching face wins and, within a family, the most recently
// added face. A face matches when its unicode ranges cover r and, once
// loaded, it has a glyph for r. Unloaded faces are loaded on demand. When
// no family matches, the fallback face is tried. Match returns nil when
// nothing can render r.
func (s *FontFaceSet) Match(families []string, r rune) *FontFace {
	for _, fam := range families {
		for i := len(s.faces) - 1; i >= 0; i-- {
			f := s.faces[i]
			if strings.EqualFold(f.family, fam) && usable(f, r) {
				return f
			}
		}
	}
	if s.fallback != nil && usable(s.fallback, r) {
		return s.fallback
	}
	return nil
}

// primary returns the face used for font-wide metrics and for characters
// no face can render: the most recent loadable face of the first family
// that has one, else the fallback.
func (s *FontFaceSet) primary(families []string) *FontFace {
	loadable := func(f *FontFace) bool {
		loadOnDemand(f)
		return f.Font() != nil
	}
	for _, fam := range families {
		for i := len(s.faces) - 1; i >= 0; i-- {
			if f := s.faces[i]; strings.EqualFold(f.family, fam) && loadable(f) {
				return f
			}
		}
	}
	if s.fallback != nil && loadable(s.fallback) {
		return s.fallback
	}
	return nil
}
