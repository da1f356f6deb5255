package segment

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned when an index addresses no node or a slice is inverted.
var ErrOutOfBounds = errors.New("index out of bounds")

// ErrNilSegment is returned when an operation is given a nil segment.
var ErrNilSegment = errors.New("nil segment")

// ErrInvalidAddress is returned when a builder address has the wrong shape.
var ErrInvalidAddress = errors.New("invalid segment address")

// ErrUnknownType is returned when a type name cannot be resolved.
var ErrUnknownType = errors.New("unknown segment type")

// ErrInvalidLayout is returned when a composite's wrappers and order disagree
// with its children.
var ErrInvalidLayout = errors.New("invalid composite layout")

func outOfBounds(i int) error {
	return fmt.Errorf("%w: %d", ErrOutOfBounds, i)
}

// FatalParseError aborts a diagnostic render. Path is the position of the
// segment being written when the sink failed.
type FatalParseError struct {
	Path Path
	Err  error
}

func (e *FatalParseError) Error() string {
	return fmt.Sprintf("fatal parse error at %s: %v", e.Path, e.Err)
}

func (e *FatalParseError) Unwrap() error {
	return e.Err
}
