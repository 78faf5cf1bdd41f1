package repeated

import (
	"reflect"
	"unsafe"

	"github.com/rawbytedev/repeated/internal/common"
)

// Kind is the native element encoding of a repeated field.
type Kind = common.Kind

const (
	KindInvalid = common.KindInvalid
	KindBool    = common.KindBool
	KindInt32   = common.KindInt32
	KindUint32  = common.KindUint32
	KindInt64   = common.KindInt64
	KindUint64  = common.KindUint64
	KindFloat32 = common.KindFloat32
	KindFloat64 = common.KindFloat64
)

// Scalar is the set of element types a repeated field can hold. Named types
// such as enums (type Status int32) use the slot layout of their underlying
// type.
type Scalar interface {
	~bool | ~int32 | ~uint32 | ~int64 | ~uint64 | ~float32 | ~float64
}

// KindFor returns the element kind backing T.
func KindFor[T Scalar]() Kind {
	return common.KindOf(reflect.TypeFor[T]().Kind())
}

// toRaw reinterprets v as its slot bits. size is the slot width of T's kind,
// which always equals unsafe.Sizeof(v).
func toRaw[T Scalar](v T, size int) uint64 {
	p := unsafe.Pointer(&v)
	switch size {
	case 1:
		return uint64(*(*uint8)(p))
	case 4:
		return uint64(*(*uint32)(p))
	default:
		return *(*uint64)(p)
	}
}

func fromRaw[T Scalar](raw uint64, size int) T {
	var v T
	p := unsafe.Pointer(&v)
	switch size {
	case 1:
		*(*uint8)(p) = uint8(raw)
	case 4:
		*(*uint32)(p) = uint32(raw)
	default:
		*(*uint64)(p) = raw
	}
	return v
}
