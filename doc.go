// Package repeated provides typed, borrow-scoped access to the elements of a
// repeated field owned by a message, on top of an untyped native storage
// handle.
//
// A message owns one RawField per repeated field. Before touching elements a
// caller obtains a lifetime token from the field: any number of *Shared
// tokens, or a single *Exclusive token that excludes every other borrow. A
// Repeated[T] container, built once per field with Wrap, turns a *Shared
// token into a View[T] and an *Exclusive token into a Mut[T].
//
// Every indexed access goes through the element type's VTable, which checks
// the index against the field's current length before the native storage is
// touched. Out-of-range reads report absence and out-of-range writes report a
// *BoundsError; neither panics nor clamps.
//
//	ids, _ := repeated.Wrap[uint64](raw)
//	s, _ := repeated.BorrowShared(raw)
//	defer s.Release()
//	v, _ := ids.View(s)
//	if id, ok := v.Get(1); ok {
//		...
//	}
package repeated
