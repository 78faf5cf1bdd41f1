package repeated

import (
	"sync/atomic"

	"github.com/rawbytedev/repeated/internal/rawfield"
)

// FieldRef is a RawField scoped to a live borrow. It can only be obtained
// from a *Shared or *Exclusive token and must not be used after that token
// is released.
//
// FieldRef is copied freely and may be handed to other goroutines. That is an
// unchecked assertion: the storage behind it has no lock, and concurrent
// reads are only sound because borrow discipline rules out a concurrent
// writer. Callers that bypass the tokens (for instance by mutating the
// RawField directly while views are live) break that assertion.
type FieldRef struct {
	raw       RawField
	exclusive bool
}

// Raw returns the handle the reference was derived from.
func (f FieldRef) Raw() RawField { return f.raw }

// Exclusive reports whether the reference came from an exclusive borrow.
func (f FieldRef) Exclusive() bool { return f.exclusive }

// Shared is a shared borrow of one field. Any number may be live at once,
// but none while an *Exclusive for the same field is live.
type Shared struct {
	raw      RawField
	released atomic.Bool
}

// BorrowShared starts a shared borrow of r.
func BorrowShared(r RawField) (*Shared, error) {
	if !r.IsValid() {
		return nil, ErrInvalidField
	}
	if !rawfield.AcquireShared(r.h) {
		return nil, ErrBorrowConflict
	}
	return &Shared{raw: r}, nil
}

// Ref returns the scoped reference for this borrow.
func (s *Shared) Ref() FieldRef { return FieldRef{raw: s.raw} }

// Release ends the borrow. Extra calls, and calls on a Shared not obtained
// from BorrowShared, are no-ops.
func (s *Shared) Release() {
	if !s.raw.IsValid() {
		return
	}
	if s.released.CompareAndSwap(false, true) {
		rawfield.ReleaseShared(s.raw.h)
	}
}

func (s *Shared) live() bool { return s.raw.IsValid() && !s.released.Load() }

// noCopy lets go vet's copylocks check flag copies of the enclosing struct.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Exclusive is the sole borrow of one field. While it is live no other
// Shared or Exclusive for the field can be obtained. It must not be copied.
type Exclusive struct {
	_        noCopy
	raw      RawField
	released atomic.Bool
}

// BorrowExclusive starts an exclusive borrow of r.
func BorrowExclusive(r RawField) (*Exclusive, error) {
	if !r.IsValid() {
		return nil, ErrInvalidField
	}
	if !rawfield.AcquireExclusive(r.h) {
		return nil, ErrBorrowConflict
	}
	return &Exclusive{raw: r}, nil
}

// Ref returns the scoped reference for this borrow.
func (e *Exclusive) Ref() FieldRef { return FieldRef{raw: e.raw, exclusive: true} }

// Release ends the borrow. Extra calls, and calls on an Exclusive not
// obtained from BorrowExclusive, are no-ops.
func (e *Exclusive) Release() {
	if !e.raw.IsValid() {
		return
	}
	if e.released.CompareAndSwap(false, true) {
		rawfield.ReleaseExclusive(e.raw.h)
	}
}

func (e *Exclusive) live() bool { return e.raw.IsValid() && !e.released.Load() }
