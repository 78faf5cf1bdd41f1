package repeated

import (
	"reflect"
	"sync"

	"github.com/rawbytedev/repeated/internal/common"
	"github.com/rawbytedev/repeated/internal/rawfield"
)

// rawTable is the kind-level dispatch for indexed access. Both entries bound
// the index against the field's current length before the unchecked native
// load or store; nothing else in the package calls those directly.
type rawTable struct {
	kind  Kind
	size  int
	getAt func(h rawfield.Handle, i int) (uint64, bool)
	setAt func(h rawfield.Handle, i int, raw uint64) error
}

var rawTables [common.KindCount]*rawTable

func init() {
	for k := KindBool; k < common.KindCount; k++ {
		rawTables[k] = &rawTable{
			kind:  k,
			size:  common.FixedSize(k),
			getAt: getAt,
			setAt: setAt,
		}
	}
}

func getAt(h rawfield.Handle, i int) (uint64, bool) {
	// A negative i wraps to a huge uint and fails the same comparison.
	if uint(i) >= uint(rawfield.Len(h)) {
		return 0, false
	}
	return rawfield.LoadUnchecked(h, i), true
}

func setAt(h rawfield.Handle, i int, raw uint64) error {
	n := rawfield.Len(h)
	if uint(i) >= uint(n) {
		return &BoundsError{Index: i, Len: n}
	}
	rawfield.StoreUnchecked(h, i, raw)
	return nil
}

// VTable is the element-indexed dispatch table for element type T. There is
// one per T, shared read-only by every View and Mut of that type.
type VTable[T Scalar] struct {
	raw *rawTable
}

// Kind returns the element kind the table dispatches to.
func (t *VTable[T]) Kind() Kind { return t.raw.kind }

// GetAt returns the element at i, or false when i is outside [0, r.Len()).
func (t *VTable[T]) GetAt(r RawField, i int) (T, bool) {
	raw, ok := t.raw.getAt(r.h, i)
	if !ok {
		var zero T
		return zero, false
	}
	return fromRaw[T](raw, t.raw.size), true
}

// SetAt overwrites the element at i, or returns a *BoundsError when i is
// outside [0, r.Len()).
func (t *VTable[T]) SetAt(r RawField, i int, v T) error {
	return t.raw.setAt(r.h, i, toRaw(v, t.raw.size))
}

func (t *VTable[T]) setRawAt(r RawField, i int, raw uint64) error {
	return t.raw.setAt(r.h, i, raw)
}

var tables = struct {
	mu sync.RWMutex
	m  map[reflect.Type]any
}{m: make(map[reflect.Type]any)}

// TableFor returns the dispatch table for T, building it on first use.
func TableFor[T Scalar]() *VTable[T] {
	typ := reflect.TypeFor[T]()
	tables.mu.RLock()
	if t, ok := tables.m[typ]; ok {
		tables.mu.RUnlock()
		return t.(*VTable[T])
	}
	tables.mu.RUnlock()

	tables.mu.Lock()
	defer tables.mu.Unlock()

	// Double-check
	if t, ok := tables.m[typ]; ok {
		return t.(*VTable[T])
	}
	t := &VTable[T]{raw: rawTables[KindFor[T]()]}
	tables.m[typ] = t
	return t
}
