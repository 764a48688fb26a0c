package canvas

import (
	"errors"
	"fmt"

	"github.com/gogpu/canvas/codec"
	"github.com/gogpu/canvas/internal/css"
)

// Sentinel errors.
var (
	// ErrIndexSize is wrapped by RangeErrors for offsets, sizes and radii
	// outside their valid domain.
	ErrIndexSize = errors.New("canvas: index or size out of range")

	// ErrUnsupportedMIME is wrapped by FormatErrors for image types no
	// codec handles.
	ErrUnsupportedMIME = codec.ErrUnsupportedMIME

	// ErrNoPixels is returned when encoding a canvas with no area.
	ErrNoPixels = errors.New("canvas: canvas has no pixels")
)

// SyntaxError reports a CSS value that could not be parsed. It carries the
// source text, the value kind and a line/column location.
type SyntaxError = css.SyntaxError

// RangeError reports a numeric argument outside its valid domain.
type RangeError struct {
	Op     string
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("canvas: %s: %s", e.Op, e.Reason)
}

// Unwrap returns ErrIndexSize.
func (e *RangeError) Unwrap() error { return ErrIndexSize }

func rangeErrorf(op, format string, args ...any) *RangeError {
	return &RangeError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// StateError reports an operation that cannot run in the object's current
// state, such as loading a font face whose data cannot be used.
type StateError struct {
	Op  string
	Err error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("canvas: %s: %v", e.Op, e.Err)
}

func (e *StateError) Unwrap() error { return e.Err }

// FormatError reports an image that could not be decoded or encoded.
type FormatError struct {
	Op   string
	MIME string
	Err  error
}

func (e *FormatError) Error() string {
	if e.MIME == "" {
		return fmt.Sprintf("canvas: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("canvas: %s %s: %v", e.Op, e.MIME, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
