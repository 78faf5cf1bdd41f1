package common

import (
	"reflect"
	"testing"
	"testing/quick"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedSize(t *testing.T) {
	assert.Equal(t, 1, FixedSize(KindBool))
	assert.Equal(t, 4, FixedSize(KindInt32))
	assert.Equal(t, 4, FixedSize(KindUint32))
	assert.Equal(t, 4, FixedSize(KindFloat32))
	assert.Equal(t, 8, FixedSize(KindInt64))
	assert.Equal(t, 8, FixedSize(KindUint64))
	assert.Equal(t, 8, FixedSize(KindFloat64))
	assert.Equal(t, -1, FixedSize(KindInvalid))
	assert.Equal(t, -1, FixedSize(KindCount))
}

func TestKindOf(t *testing.T) {
	type status int32
	assert.Equal(t, KindInt32, KindOf(reflect.TypeOf(status(0)).Kind()))
	assert.Equal(t, KindFloat64, KindOf(reflect.Float64))
	assert.Equal(t, KindInvalid, KindOf(reflect.Int))
	assert.Equal(t, KindInvalid, KindOf(reflect.String))
	assert.Equal(t, "uint64", KindUint64.String())
	assert.Equal(t, "invalid", Kind(200).String())
	assert.False(t, KindInvalid.IsValid())
	assert.True(t, KindBool.IsValid())
}

func TestLoadStore(t *testing.T) {
	for _, size := range []int{1, 4, 8} {
		condition := func(raw uint64) bool {
			want := raw
			switch size {
			case 1:
				want = uint64(uint8(raw))
			case 4:
				want = uint64(uint32(raw))
			}
			buf := make([]byte, size)
			Store(unsafe.Pointer(&buf[0]), size, raw)
			return Load(unsafe.Pointer(&buf[0]), size) == want
		}
		require.NoError(t, quick.Check(condition, &quick.Config{}))
	}
}

func TestAppendFixedMatchesStore(t *testing.T) {
	buf := AppendFixed(nil, 4, 0x11223344)
	buf = AppendFixed(buf, 1, 0x1ff)
	buf = AppendFixed(buf, 8, 0x0102030405060708)
	require.Len(t, buf, 13)
	assert.Equal(t, []byte{0x44, 0x33, 0x22, 0x11}, buf[:4])
	assert.Equal(t, byte(0xff), buf[4])
	assert.Equal(t, uint64(0x0102030405060708), Load(unsafe.Pointer(&buf[5]), 8))
}

func TestKindText(t *testing.T) {
	for k := KindBool; k < KindCount; k++ {
		b, err := k.MarshalText()
		require.NoError(t, err)
		var back Kind
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, k, back)
	}
	_, err := KindInvalid.MarshalText()
	require.Error(t, err)
	var k Kind
	require.Error(t, k.UnmarshalText([]byte("string")))
	require.Error(t, k.UnmarshalText([]byte("invalid")))
}
