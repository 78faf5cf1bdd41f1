package repeated

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// Mut reads and overwrites elements of a repeated field under an exclusive
// borrow. It never changes the field's length; appending and truncating are
// operations of the owning message.
//
// There is deliberately no way to assign one repeated field from another
// here: whether that should append, overwrite or truncate is a decision for
// a separately named operation.
//
// A Mut is only valid while the Exclusive it was built from is live. After
// Release, Get reports absence and Set and SetValue fail with ErrReleased.
// As with View, the check assumes the Release happens before the call.
type Mut[T Scalar] struct {
	e   *Exclusive
	tbl *VTable[T]
}

func (m Mut[T]) field() (RawField, bool) {
	if m.e == nil || !m.e.live() {
		return RawField{}, false
	}
	return m.e.raw, true
}

// Get returns the element at i, false when i is outside [0, Len()) or the
// borrow has been released.
func (m Mut[T]) Get(i int) (T, bool) {
	r, ok := m.field()
	if !ok || m.tbl == nil {
		var zero T
		return zero, false
	}
	return m.tbl.GetAt(r, i)
}

// Len returns the field's current length, zero once the borrow is released.
func (m Mut[T]) Len() int {
	r, _ := m.field()
	return r.Len()
}

// Set overwrites the element at i. An index outside [0, Len()) yields a
// *BoundsError and leaves the field untouched.
func (m Mut[T]) Set(i int, v T) error {
	if m.tbl == nil {
		return &BoundsError{Index: i}
	}
	r, ok := m.field()
	if !ok {
		return ErrReleased
	}
	return m.tbl.SetAt(r, i, v)
}

// SetValue converts v to the field's element kind and overwrites the element
// at i. Conversion happens before the index check: a value with no encoding
// yields a *ConversionError whatever the index; otherwise the bounds rule of
// Set applies. A released Mut fails with ErrReleased before either.
func (m Mut[T]) SetValue(i int, v Settable) error {
	if m.tbl == nil {
		return &BoundsError{Index: i}
	}
	r, ok := m.field()
	if !ok {
		return ErrReleased
	}
	if v == nil {
		return &ConversionError{Kind: m.tbl.Kind()}
	}
	raw, err := v.Convert(m.tbl.Kind())
	if err != nil {
		return err
	}
	return m.tbl.setRawAt(r, i, raw)
}

// Format prints a placeholder for every verb. Elements are never read.
func (m Mut[T]) Format(f fmt.State, _ rune) { io.WriteString(f, "RepeatedMut") }

func (m Mut[T]) String() string { return "RepeatedMut" }

// MarshalZerologObject logs the accessor type and element kind only.
func (m Mut[T]) MarshalZerologObject(e *zerolog.Event) {
	e.Str("accessor", "RepeatedMut").Stringer("kind", kindOf(m.tbl))
}
