package codec

import (
	"errors"
	"fmt"
)

// Kind classifies a decode failure. IO failures come from the file
// collaborator, format failures from header parsing or dimension
// disagreement, library failures from the wrapped decompression engine.
type Kind int

const (
	KindIO Kind = iota
	KindFormat
	KindLibrary
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindFormat:
		return "format"
	case KindLibrary:
		return "library"
	}
	return "unknown"
}

// Dimensions is a width/height pair as reported by the engine or expected
// by a caller.
type Dimensions struct {
	Width  int32
	Height int32
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Error is the structured failure result returned by every probe/decode
// entry point. Expected/Actual are only populated for dimension mismatches.
type Error struct {
	Kind     Kind
	Message  string
	Expected Dimensions
	Actual   Dimensions
}

func (e *Error) Error() string {
	return e.Message
}

func newIOError(format string, args ...any) *Error {
	return &Error{Kind: KindIO, Message: fmt.Sprintf(format, args...)}
}

func newFormatError(format string, args ...any) *Error {
	return &Error{Kind: KindFormat, Message: fmt.Sprintf(format, args...)}
}

func newLibraryError(format string, args ...any) *Error {
	return &Error{Kind: KindLibrary, Message: fmt.Sprintf(format, args...)}
}

func newDimensionMismatchError(expected Dimensions, actual Dimensions) *Error {
	return &Error{
		Kind: KindFormat,
		Message: fmt.Sprintf("dimensional mismatch reading JPEG, expected %s, got %s",
			expected, actual),
		Expected: expected,
		Actual:   actual,
	}
}

// IsKind reports whether err is (or wraps) a codec Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ce *Error
	if !errors.As(err, &ce) {
		return false
	}
	return ce.Kind == kind
}
