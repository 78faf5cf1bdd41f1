package repeated

import (
	"fmt"

	"github.com/rawbytedev/repeated/internal/common"
	"github.com/rawbytedev/repeated/internal/rawfield"
)

// RawField is the opaque handle to one repeated field's native storage. It
// carries no element type; Wrap pairs it with one. The zero value is invalid.
//
// The functions in this file that change a field's length are for the
// owning message. Callers must hold the field's exclusive borrow, or
// otherwise know no View or Mut of the field is live.
type RawField struct {
	h rawfield.Handle
}

// NewRawField allocates empty storage for elements of kind k.
func NewRawField(k Kind) (RawField, error) {
	h := rawfield.New(k)
	if h == nil {
		return RawField{}, fmt.Errorf("%w: kind %s", ErrInvalidField, k)
	}
	return RawField{h: h}, nil
}

func (r RawField) IsValid() bool { return r.h != nil }

func (r RawField) Kind() Kind { return rawfield.Kind(r.h) }

// Len returns the field's logical length.
func (r RawField) Len() int { return rawfield.Len(r.h) }

// Append adds vs at the end of the field.
func Append[T Scalar](r RawField, vs ...T) error {
	if err := checkKind[T](r); err != nil {
		return err
	}
	size := common.FixedSize(r.Kind())
	for _, v := range vs {
		rawfield.Append(r.h, toRaw(v, size))
	}
	return nil
}

// Truncate shortens the field to n elements. n greater than the current
// length is a bounds violation.
func Truncate(r RawField, n int) error {
	if !r.IsValid() {
		return ErrInvalidField
	}
	if l := r.Len(); n < 0 || n > l {
		return &BoundsError{Index: n, Len: l + 1}
	}
	rawfield.Truncate(r.h, n)
	return nil
}

// Clear drops every element.
func Clear(r RawField) {
	if r.IsValid() {
		rawfield.Truncate(r.h, 0)
	}
}

func checkKind[T Scalar](r RawField) error {
	if !r.IsValid() {
		return ErrInvalidField
	}
	if want := KindFor[T](); r.Kind() != want {
		return fmt.Errorf("%w: field holds %s, accessor wants %s", ErrKindMismatch, r.Kind(), want)
	}
	return nil
}
