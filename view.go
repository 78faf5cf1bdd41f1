package repeated

import (
	"fmt"
	"io"
	"iter"

	"github.com/rs/zerolog"
)

// View reads elements of a repeated field under a shared borrow. Any number
// of Views, on any goroutine, may read the same field at once.
//
// A View is only valid while the Shared it was built from is live. Once the
// borrow is released every Get reports absence and Len reports zero. That
// check is only reliable when the Release happens before the call; a View
// used concurrently with its own token's Release is a caller bug.
type View[T Scalar] struct {
	s   *Shared
	tbl *VTable[T]
}

func (v View[T]) field() (RawField, bool) {
	if v.s == nil || !v.s.live() {
		return RawField{}, false
	}
	return v.s.raw, true
}

// Get returns the element at i. The second result is false when i is outside
// [0, Len()) or the borrow has been released; the storage is not touched in
// either case.
func (v View[T]) Get(i int) (T, bool) {
	r, ok := v.field()
	if !ok || v.tbl == nil {
		var zero T
		return zero, false
	}
	return v.tbl.GetAt(r, i)
}

// Len returns the field's current length, zero once the borrow is released.
func (v View[T]) Len() int {
	r, _ := v.field()
	return r.Len()
}

// All iterates the elements in index order.
func (v View[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; ; i++ {
			e, ok := v.Get(i)
			if !ok || !yield(i, e) {
				return
			}
		}
	}
}

// Format prints a placeholder for every verb. Elements are never read.
func (v View[T]) Format(f fmt.State, _ rune) { io.WriteString(f, "RepeatedView") }

func (v View[T]) String() string { return "RepeatedView" }

// MarshalZerologObject logs the accessor type and element kind only.
func (v View[T]) MarshalZerologObject(e *zerolog.Event) {
	e.Str("accessor", "RepeatedView").Stringer("kind", kindOf(v.tbl))
}

func kindOf[T Scalar](t *VTable[T]) Kind {
	if t == nil {
		return KindInvalid
	}
	return t.Kind()
}
