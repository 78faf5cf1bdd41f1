// Package rawfield is the native storage behind a repeated field: a growable
// buffer of fixed-width little-endian slots addressed through an untyped
// handle. Nothing here checks indices. Reading or writing at an index outside
// [0, Len) touches memory the field does not own, so every caller must bound
// the index first.
package rawfield

import (
	"sync/atomic"
	"unsafe"

	"github.com/rawbytedev/repeated/internal/common"
)

// Handle is an untyped reference to one repeated field's storage.
type Handle unsafe.Pointer

type field struct {
	kind   common.Kind
	size   int
	length int
	data   []byte
	// borrow is the number of live shared borrows, or -1 while an
	// exclusive borrow is live.
	borrow atomic.Int32
}

// New allocates empty storage for elements of kind k. It returns nil for an
// unstorable kind.
func New(k common.Kind) Handle {
	size := common.FixedSize(k)
	if size < 0 {
		return nil
	}
	return Handle(&field{kind: k, size: size})
}

func get(h Handle) *field { return (*field)(h) }

// Kind returns the element kind h was allocated with.
func Kind(h Handle) common.Kind {
	if h == nil {
		return common.KindInvalid
	}
	return get(h).kind
}

// Len returns the logical number of elements.
func Len(h Handle) int {
	if h == nil {
		return 0
	}
	return get(h).length
}

// LoadUnchecked returns the raw slot at index i.
func LoadUnchecked(h Handle, i int) uint64 {
	f := get(h)
	base := unsafe.Pointer(unsafe.SliceData(f.data))
	return common.Load(unsafe.Add(base, i*f.size), f.size)
}

// StoreUnchecked overwrites the raw slot at index i.
func StoreUnchecked(h Handle, i int, raw uint64) {
	f := get(h)
	base := unsafe.Pointer(unsafe.SliceData(f.data))
	common.Store(unsafe.Add(base, i*f.size), f.size, raw)
}

// Append adds raw slots at the end of the field.
func Append(h Handle, raws ...uint64) {
	f := get(h)
	for _, raw := range raws {
		f.data = common.AppendFixed(f.data, f.size, raw)
	}
	f.length += len(raws)
}

// Truncate shortens the field to n elements. Capacity is kept.
func Truncate(h Handle, n int) {
	f := get(h)
	if n < 0 || n >= f.length {
		return
	}
	f.data = f.data[:n*f.size]
	f.length = n
}

// AcquireShared records a shared borrow. It fails while an exclusive borrow
// is live.
func AcquireShared(h Handle) bool {
	f := get(h)
	for {
		cur := f.borrow.Load()
		if cur < 0 {
			return false
		}
		if f.borrow.CompareAndSwap(cur, cur+1) {
			return true
		}
	}
}

// ReleaseShared drops one shared borrow.
func ReleaseShared(h Handle) {
	get(h).borrow.Add(-1)
}

// AcquireExclusive records an exclusive borrow. It fails while any borrow is
// live.
func AcquireExclusive(h Handle) bool {
	return get(h).borrow.CompareAndSwap(0, -1)
}

// ReleaseExclusive drops the exclusive borrow.
func ReleaseExclusive(h Handle) {
	get(h).borrow.CompareAndSwap(-1, 0)
}

// Borrows reports the live shared borrow count and whether an exclusive
// borrow is held.
func Borrows(h Handle) (shared int, exclusive bool) {
	n := get(h).borrow.Load()
	if n < 0 {
		return 0, true
	}
	return int(n), false
}
