package repeated

import "math"

// Settable is a value that can be stored into a field of some element kind.
// Convert returns the slot bits for kind k, or a *ConversionError when the
// value has no exact encoding in k.
type Settable interface {
	Convert(k Kind) (uint64, error)
}

// Int is a signed integer source for Mut.SetValue. Float kinds accept it
// only when the conversion is exact.
type Int int64

// Uint is an unsigned integer source for Mut.SetValue.
type Uint uint64

// Float is a floating-point source for Mut.SetValue. Integer kinds accept
// only finite, integral values in range. float32 accepts any value that does
// not round to infinity.
type Float float64

// Bool is a boolean source for Mut.SetValue. It only converts to KindBool.
type Bool bool

const (
	twoTo63 = 1 << 63
	twoTo64 = 1 << 64
	// Finite values at or beyond this magnitude round to infinity in float32.
	float32Overflow = 1<<128 - 1<<103
)

func (v Int) Convert(k Kind) (uint64, error) {
	switch k {
	case KindInt32:
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			return uint64(uint32(int32(v))), nil
		}
	case KindInt64:
		return uint64(v), nil
	case KindUint32:
		if v >= 0 && v <= math.MaxUint32 {
			return uint64(v), nil
		}
	case KindUint64:
		if v >= 0 {
			return uint64(v), nil
		}
	case KindFloat32:
		if f := float32(v); float64(f) < twoTo63 && int64(f) == int64(v) {
			return uint64(math.Float32bits(f)), nil
		}
	case KindFloat64:
		if f := float64(v); f < twoTo63 && int64(f) == int64(v) {
			return math.Float64bits(f), nil
		}
	case KindBool:
		if v == 0 || v == 1 {
			return uint64(v), nil
		}
	}
	return 0, &ConversionError{Value: int64(v), Kind: k}
}

func (v Uint) Convert(k Kind) (uint64, error) {
	switch k {
	case KindInt32:
		if v <= math.MaxInt32 {
			return uint64(v), nil
		}
	case KindInt64:
		if v <= math.MaxInt64 {
			return uint64(v), nil
		}
	case KindUint32:
		if v <= math.MaxUint32 {
			return uint64(v), nil
		}
	case KindUint64:
		return uint64(v), nil
	case KindFloat32:
		if f := float32(v); float64(f) < twoTo64 && uint64(f) == uint64(v) {
			return uint64(math.Float32bits(f)), nil
		}
	case KindFloat64:
		if f := float64(v); f < twoTo64 && uint64(f) == uint64(v) {
			return math.Float64bits(f), nil
		}
	case KindBool:
		if v <= 1 {
			return uint64(v), nil
		}
	}
	return 0, &ConversionError{Value: uint64(v), Kind: k}
}

func (v Float) Convert(k Kind) (uint64, error) {
	f := float64(v)
	integral := !math.IsNaN(f) && !math.IsInf(f, 0) && math.Trunc(f) == f
	switch k {
	case KindInt32:
		if integral && f >= math.MinInt32 && f <= math.MaxInt32 {
			return uint64(uint32(int32(f))), nil
		}
	case KindInt64:
		// 2^63 itself is representable as a float64 but not as an int64.
		if integral && f >= -twoTo63 && f < twoTo63 {
			return uint64(int64(f)), nil
		}
	case KindUint32:
		if integral && f >= 0 && f <= math.MaxUint32 {
			return uint64(uint32(f)), nil
		}
	case KindUint64:
		if integral && f >= 0 && f < twoTo64 {
			return uint64(f), nil
		}
	case KindFloat32:
		if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) < float32Overflow {
			return uint64(math.Float32bits(float32(f))), nil
		}
	case KindFloat64:
		return math.Float64bits(f), nil
	}
	return 0, &ConversionError{Value: f, Kind: k}
}

func (v Bool) Convert(k Kind) (uint64, error) {
	if k != KindBool {
		return 0, &ConversionError{Value: bool(v), Kind: k}
	}
	if v {
		return 1, nil
	}
	return 0, nil
}
