package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func convert(t *testing.T, src *RawTensor, dst DataType) []byte {
	t.Helper()
	out := make([]byte, src.NumElements()*dst.Size())
	in := src.Data()
	for i := 0; i < src.NumElements(); i++ {
		ConvertElement(out[i*dst.Size():], dst, in[i*src.ItemSize():], src.DType())
	}
	return out
}

func TestConvertElement(t *testing.T) {
	t.Run("float to int truncates", func(t *testing.T) {
		src, err := FromSlice([]float32{1.9, -2.5, 0}, Shape{3}, CPU)
		require.NoError(t, err)
		dst, err := WrapRaw(convert(t, src, Int16), Shape{3}, Int16, CPU)
		require.NoError(t, err)
		got, err := ToSlice[int16](dst)
		require.NoError(t, err)
		assert.Equal(t, []int16{1, -2, 0}, got)
	})

	t.Run("int64 survives integer casts", func(t *testing.T) {
		big := int64(math.MaxInt64 - 1)
		src, err := FromSlice([]int64{big, -1}, Shape{2}, CPU)
		require.NoError(t, err)
		dst, err := WrapRaw(convert(t, src, Uint64), Shape{2}, Uint64, CPU)
		require.NoError(t, err)
		got, err := ToSlice[uint64](dst)
		require.NoError(t, err)
		assert.Equal(t, []uint64{uint64(big), math.MaxUint64}, got)
	})

	t.Run("to bool", func(t *testing.T) {
		src, err := FromSlice([]float64{0, 0.5, math.NaN()}, Shape{3}, CPU)
		require.NoError(t, err)
		dst, err := WrapRaw(convert(t, src, Bool), Shape{3}, Bool, CPU)
		require.NoError(t, err)
		got, err := ToSlice[bool](dst)
		require.NoError(t, err)
		assert.Equal(t, []bool{false, true, true}, got)
	})

	t.Run("bool to float16", func(t *testing.T) {
		src, err := FromSlice([]bool{true, false}, Shape{2}, CPU)
		require.NoError(t, err)
		dst, err := WrapRaw(convert(t, src, Float16), Shape{2}, Float16, CPU)
		require.NoError(t, err)
		got, err := ToSlice[float16.Float16](dst)
		require.NoError(t, err)
		assert.Equal(t, float32(1), got[0].Float32())
		assert.Equal(t, float32(0), got[1].Float32())
	})

	t.Run("uint8 to int8 wraps", func(t *testing.T) {
		src, err := FromSlice([]uint8{200}, Shape{1}, CPU)
		require.NoError(t, err)
		dst, err := WrapRaw(convert(t, src, Int8), Shape{1}, Int8, CPU)
		require.NoError(t, err)
		got, err := ToSlice[int8](dst)
		require.NoError(t, err)
		assert.Equal(t, []int8{-56}, got)
	})
}

func TestTruthy(t *testing.T) {
	negZero := math.Copysign(0, -1)
	src, err := FromSlice([]float64{0, negZero, 1, math.NaN()}, Shape{4}, CPU)
	require.NoError(t, err)

	var got []bool
	for i := 0; i < 4; i++ {
		got = append(got, Truthy(Float64, src.Data()[i*8:]))
	}
	assert.Equal(t, []bool{false, false, true, true}, got)

	half, err := FromSlice([]float16.Float16{float16.Fromfloat32(0), float16.Fromfloat32(-2)}, Shape{2}, CPU)
	require.NoError(t, err)
	assert.False(t, Truthy(Float16, half.Data()[0:]))
	assert.True(t, Truthy(Float16, half.Data()[2:]))
}

func TestIndexValue(t *testing.T) {
	raw, err := FromSlice([]uint64{7, math.MaxUint64}, Shape{2}, CPU)
	require.NoError(t, err)

	v, ok := IndexValue(Uint64, raw.Data()[0:])
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok = IndexValue(Uint64, raw.Data()[8:])
	assert.False(t, ok)

	neg, err := FromSlice([]int8{-3}, Shape{1}, CPU)
	require.NoError(t, err)
	v, ok = IndexValue(Int8, neg.Data())
	assert.True(t, ok)
	assert.Equal(t, -3, v)

	_, ok = IndexValue(Float32, make([]byte, 4))
	assert.False(t, ok)
}

func TestArange(t *testing.T) {
	raw, err := Arange(4, Float16, CPU)
	require.NoError(t, err)

	got, err := ToSlice[float16.Float16](raw)
	require.NoError(t, err)
	for i, v := range got {
		assert.Equal(t, float32(i), v.Float32())
	}

	_, err = Arange(-1, Int32, CPU)
	assert.ErrorIs(t, err, ErrDimension)
}
