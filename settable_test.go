package repeated

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettableConversions(t *testing.T) {
	cases := []struct {
		name string
		v    Settable
		kind Kind
		want uint64
		ok   bool
	}{
		{"int to int32", Int(-1), KindInt32, 0xffffffff, true},
		{"int over int32", Int(math.MaxInt32 + 1), KindInt32, 0, false},
		{"int under int32", Int(math.MinInt32 - 1), KindInt32, 0, false},
		{"int to int64", Int(math.MinInt64), KindInt64, 1 << 63, true},
		{"negative int to uint32", Int(-1), KindUint32, 0, false},
		{"int to uint32 max", Int(math.MaxUint32), KindUint32, math.MaxUint32, true},
		{"int over uint32", Int(math.MaxUint32 + 1), KindUint32, 0, false},
		{"negative int to uint64", Int(-3), KindUint64, 0, false},
		{"int to float32 exact", Int(1 << 24), KindFloat32, uint64(math.Float32bits(1 << 24)), true},
		{"int to float32 inexact", Int(1<<24 + 1), KindFloat32, 0, false},
		{"int to float64 exact", Int(-(1 << 53)), KindFloat64, math.Float64bits(-(1 << 53)), true},
		{"int to float64 inexact", Int(1<<53 + 1), KindFloat64, 0, false},
		{"large power of two to float32", Int(1 << 30), KindFloat32, uint64(math.Float32bits(1 << 30)), true},
		{"negative power of two to float32", Int(-(1 << 40)), KindFloat32, uint64(math.Float32bits(-(1 << 40))), true},
		{"min int64 to float32", Int(math.MinInt64), KindFloat32, uint64(math.Float32bits(-(1 << 63))), true},
		{"max int64 to float32", Int(math.MaxInt64), KindFloat32, 0, false},
		{"min int64 to float64", Int(math.MinInt64), KindFloat64, math.Float64bits(-(1 << 63)), true},
		{"max int64 to float64", Int(math.MaxInt64), KindFloat64, 0, false},
		{"sparse int to float64", Int(1<<60 + 1<<10), KindFloat64, math.Float64bits(1<<60 + 1<<10), true},
		{"int one to bool", Int(1), KindBool, 1, true},
		{"int two to bool", Int(2), KindBool, 0, false},

		{"uint to int32", Uint(math.MaxInt32), KindInt32, math.MaxInt32, true},
		{"uint over int32", Uint(math.MaxInt32 + 1), KindInt32, 0, false},
		{"uint over int64", Uint(math.MaxUint64), KindInt64, 0, false},
		{"uint over uint32", Uint(math.MaxUint32 + 1), KindUint32, 0, false},
		{"uint to uint64", Uint(math.MaxUint64), KindUint64, math.MaxUint64, true},
		{"uint to float32 inexact", Uint(1<<24 + 1), KindFloat32, 0, false},
		{"uint to float64", Uint(1 << 53), KindFloat64, math.Float64bits(1 << 53), true},
		{"uint 2^63 to float64", Uint(1 << 63), KindFloat64, math.Float64bits(1 << 63), true},
		{"uint 2^63 to float32", Uint(1 << 63), KindFloat32, uint64(math.Float32bits(1 << 63)), true},
		{"max uint64 to float64", Uint(math.MaxUint64), KindFloat64, 0, false},
		{"max uint64 to float32", Uint(math.MaxUint64), KindFloat32, 0, false},
		{"uint zero to bool", Uint(0), KindBool, 0, true},

		{"float to int32", Float(-7), KindInt32, uint64(uint32(0xfffffff9)), true},
		{"fractional float to int32", Float(1.5), KindInt32, 0, false},
		{"nan to int64", Float(math.NaN()), KindInt64, 0, false},
		{"inf to uint64", Float(math.Inf(1)), KindUint64, 0, false},
		{"2^63 to int64", Float(1 << 63), KindInt64, 0, false},
		{"2^64 to uint64", Float(1 << 64), KindUint64, 0, false},
		{"negative float to uint32", Float(-1), KindUint32, 0, false},
		{"float to uint32", Float(4294967295), KindUint32, math.MaxUint32, true},
		{"float to float32", Float(0.5), KindFloat32, uint64(math.Float32bits(0.5)), true},
		{"printed max float32", Float(3.4028235e38), KindFloat32, uint64(math.Float32bits(math.MaxFloat32)), true},
		{"max float32", Float(math.MaxFloat32), KindFloat32, uint64(math.Float32bits(math.MaxFloat32)), true},
		{"negative max float32", Float(-math.MaxFloat32), KindFloat32, uint64(math.Float32bits(-math.MaxFloat32)), true},
		{"float rounds to float32 inf", Float(1<<128 - 1<<103), KindFloat32, 0, false},
		{"float just below float32 inf", Float(1<<128 - 1<<103 - 1<<75), KindFloat32, uint64(math.Float32bits(math.MaxFloat32)), true},
		{"float overflows float32", Float(math.MaxFloat64), KindFloat32, 0, false},
		{"inf to float32", Float(math.Inf(-1)), KindFloat32, uint64(math.Float32bits(float32(math.Inf(-1)))), true},
		{"float to float64", Float(math.MaxFloat64), KindFloat64, math.Float64bits(math.MaxFloat64), true},
		{"float to bool", Float(1), KindBool, 0, false},

		{"bool to bool", Bool(true), KindBool, 1, true},
		{"false to bool", Bool(false), KindBool, 0, true},
		{"bool to int32", Bool(true), KindInt32, 0, false},

		{"int to invalid", Int(0), KindInvalid, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.v.Convert(tc.kind)
			if !tc.ok {
				require.ErrorIs(t, err, ErrConversion)
				var ce *ConversionError
				require.ErrorAs(t, err, &ce)
				assert.Equal(t, tc.kind, ce.Kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSetValueMatchesSet(t *testing.T) {
	_, c := newField(t, float32(0), float32(0))
	m, release := mutOf(t, c)
	defer release()

	require.NoError(t, m.Set(0, 3))
	require.NoError(t, m.SetValue(1, Int(3)))
	a, _ := m.Get(0)
	b, _ := m.Get(1)
	assert.Equal(t, a, b)

	require.NoError(t, m.SetValue(1, Float(-0.25)))
	b, _ = m.Get(1)
	assert.Equal(t, float32(-0.25), b)
}

func TestSetValueBool(t *testing.T) {
	_, c := newField(t, false, false)
	m, release := mutOf(t, c)
	defer release()

	require.NoError(t, m.SetValue(1, Bool(true)))
	got, ok := m.Get(1)
	require.True(t, ok)
	assert.True(t, got)
	require.ErrorIs(t, m.SetValue(0, Float(1)), ErrConversion)
	got, _ = m.Get(0)
	assert.False(t, got)
}
