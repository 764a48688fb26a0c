package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when a face has no data to load.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrLocalFontUnsupported is returned when loading a face whose source
	// is a local() font name. The module performs no system font lookup.
	ErrLocalFontUnsupported = errors.New("text: local font sources are not supported")
)

// LoadErrorKind classifies a failed face load.
type LoadErrorKind uint8

const (
	// LoadSyntax means the font data could not be decoded.
	LoadSyntax LoadErrorKind = iota
	// LoadNetwork means the data came from a URL and could not be decoded,
	// which browsers report as a network failure.
	LoadNetwork
	// LoadUnsupported means the source kind cannot be loaded at all.
	LoadUnsupported
)

func (k LoadErrorKind) String() string {
	switch k {
	case LoadNetwork:
		return "network"
	case LoadUnsupported:
		return "unsupported"
	}
	return "syntax"
}

// LoadError is returned by FontFace.Load.
type LoadError struct {
	Family string
	Kind   LoadErrorKind
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("text: loading font face %q: %s error: %v", e.Family, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
