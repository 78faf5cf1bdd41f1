package repeated

// Repeated is the typed container for one repeated field. It holds no data;
// it fixes the element type so that View and Mut resolve to T's VTable.
// Containers for the same field are interchangeable.
type Repeated[T Scalar] struct {
	raw RawField
	tbl *VTable[T]
}

// Wrap pairs r with element type T. It fails if r's storage was allocated for
// a different kind.
func Wrap[T Scalar](r RawField) (Repeated[T], error) {
	if err := checkKind[T](r); err != nil {
		return Repeated[T]{}, err
	}
	return Repeated[T]{raw: r, tbl: TableFor[T]()}, nil
}

// Raw returns the wrapped handle.
func (c Repeated[T]) Raw() RawField { return c.raw }

// View returns a read-only accessor scoped to s.
func (c Repeated[T]) View(s *Shared) (View[T], error) {
	if s == nil || !c.raw.IsValid() || s.raw != c.raw {
		return View[T]{}, ErrScopeMismatch
	}
	if !s.live() {
		return View[T]{}, ErrReleased
	}
	return View[T]{s: s, tbl: c.tbl}, nil
}

// Mut returns a write-capable accessor scoped to e. Because e is exclusive,
// no View or other Mut of the field can be live alongside the result.
func (c Repeated[T]) Mut(e *Exclusive) (Mut[T], error) {
	if e == nil || !c.raw.IsValid() || e.raw != c.raw {
		return Mut[T]{}, ErrScopeMismatch
	}
	if !e.live() {
		return Mut[T]{}, ErrReleased
	}
	return Mut[T]{e: e, tbl: c.tbl}, nil
}
