package common

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"unsafe"
)

// Kind identifies the native encoding of a repeated field's elements.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt32
	KindUint32
	KindInt64
	KindUint64
	KindFloat32
	KindFloat64

	KindCount
)

var kindNames = [KindCount]string{
	KindInvalid: "invalid",
	KindBool:    "bool",
	KindInt32:   "int32",
	KindUint32:  "uint32",
	KindInt64:   "int64",
	KindUint64:  "uint64",
	KindFloat32: "float32",
	KindFloat64: "float64",
}

func (k Kind) String() string {
	if k >= KindCount {
		return "invalid"
	}
	return kindNames[k]
}

// IsValid reports whether k names a storable element kind.
func (k Kind) IsValid() bool {
	return k > KindInvalid && k < KindCount
}

// ParseKind returns the kind named s.
func ParseKind(s string) (Kind, error) {
	for k := KindBool; k < KindCount; k++ {
		if kindNames[k] == s {
			return k, nil
		}
	}
	return KindInvalid, fmt.Errorf("unknown element kind %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("unknown element kind %d", k)
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// KindOf maps a reflect.Kind onto the element kind, KindInvalid if unsupported.
func KindOf(k reflect.Kind) Kind {
	switch k {
	case reflect.Bool:
		return KindBool
	case reflect.Int32:
		return KindInt32
	case reflect.Uint32:
		return KindUint32
	case reflect.Int64:
		return KindInt64
	case reflect.Uint64:
		return KindUint64
	case reflect.Float32:
		return KindFloat32
	case reflect.Float64:
		return KindFloat64
	default:
		return KindInvalid
	}
}

// FixedSize returns the slot width in bytes for k, -1 if k is not storable.
func FixedSize(k Kind) int {
	switch k {
	case KindBool:
		return 1
	case KindInt32, KindUint32, KindFloat32:
		return 4
	case KindInt64, KindUint64, KindFloat64:
		return 8
	default:
		return -1
	}
}

// Load reads a little-endian slot of the given width starting at p.
// p must address at least size readable bytes.
func Load(p unsafe.Pointer, size int) uint64 {
	b := unsafe.Slice((*byte)(p), size)
	switch size {
	case 1:
		return uint64(b[0])
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	default:
		return binary.LittleEndian.Uint64(b)
	}
}

// Store writes raw as a little-endian slot of the given width starting at p.
// p must address at least size writable bytes.
func Store(p unsafe.Pointer, size int, raw uint64) {
	b := unsafe.Slice((*byte)(p), size)
	switch size {
	case 1:
		b[0] = byte(raw)
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(raw))
	default:
		binary.LittleEndian.PutUint64(b, raw)
	}
}

// AppendFixed appends raw as a little-endian slot of the given width to buf.
func AppendFixed(buf []byte, size int, raw uint64) []byte {
	switch size {
	case 1:
		return append(buf, byte(raw))
	case 4:
		return binary.LittleEndian.AppendUint32(buf, uint32(raw))
	default:
		return binary.LittleEndian.AppendUint64(buf, raw)
	}
}
