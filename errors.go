package repeated

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is matched by every *BoundsError.
	ErrOutOfBounds = errors.New("repeated: index out of bounds")
	// ErrConversion is matched by every *ConversionError.
	ErrConversion = errors.New("repeated: value not representable")

	ErrInvalidField   = errors.New("repeated: invalid field handle")
	ErrKindMismatch   = errors.New("repeated: element kind mismatch")
	ErrBorrowConflict = errors.New("repeated: field already borrowed")
	ErrScopeMismatch  = errors.New("repeated: borrow belongs to another field")
	ErrReleased       = errors.New("repeated: borrow already released")
)

// BoundsError reports an index outside [0, Len).
type BoundsError struct {
	Index int
	Len   int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("repeated: index %d out of range [0, %d)", e.Index, e.Len)
}

func (e *BoundsError) Is(target error) bool { return target == ErrOutOfBounds }

// ConversionError reports a value that has no encoding in the field's
// element kind.
type ConversionError struct {
	Value any
	Kind  Kind
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("repeated: cannot represent %v as %s", e.Value, e.Kind)
}

func (e *ConversionError) Is(target error) bool { return target == ErrConversion }
