package tensor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RawTensor Tests

func TestNewRawLayout(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3}, Int32, CPU)
	require.NoError(t, err)

	assertEqualShape(t, Shape{2, 3}, raw.Shape(), "NewRaw")
	assert.Equal(t, []int{12, 4}, raw.Strides())
	assert.Equal(t, 0, raw.Offset())
	assert.Equal(t, 24, len(raw.Buffer()))
	assert.True(t, raw.IsContiguous())
	assert.Equal(t, "native:0", raw.Device().String())
}

func TestNewRawZeroSized(t *testing.T) {
	raw, err := NewRaw(Shape{0, 3}, Float32, CPU)
	require.NoError(t, err)
	assert.Equal(t, 0, raw.NumElements())
	assert.Nil(t, raw.Data())
}

func TestFromSliceInvalidLength(t *testing.T) {
	// Element count must match the shape exactly.
	tests := []struct {
		shape Shape
		n     int
	}{
		{Shape{}, 0},
		{Shape{}, 2},
		{Shape{1}, 0},
		{Shape{1}, 2},
		{Shape{0}, 1},
		{Shape{3, 2}, 5},
		{Shape{3, 2}, 7},
	}

	for _, tt := range tests {
		_, err := FromSlice(make([]int8, tt.n), tt.shape, CPU)
		assert.ErrorIs(t, err, ErrDimension, "shape %v with %d elements", tt.shape, tt.n)
	}
}

func TestFromSliceToSlice(t *testing.T) {
	raw, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, CPU)
	require.NoError(t, err)

	got, err := ToSlice[float32](raw)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, got)

	_, err = ToSlice[int32](raw)
	assert.ErrorIs(t, err, ErrDType)
}

func TestWrapRawShares(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	raw, err := WrapRaw(data, Shape{4}, Uint8, CPU)
	require.NoError(t, err)

	// Mutating the host slice is visible through the array.
	data[2] = 42
	got, err := ToSlice[uint8](raw)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 2, 42, 4}, got)

	_, err = WrapRaw(data, Shape{5}, Uint8, CPU)
	assert.ErrorIs(t, err, ErrDimension)
}

func TestViewSharesBuffer(t *testing.T) {
	base, err := Arange(6, Int32, CPU)
	require.NoError(t, err)

	// Reverse view: base[::-1]
	view, err := base.View(Shape{6}, []int{-4}, 20)
	require.NoError(t, err)
	assert.True(t, view.SharesBuffer(base))
	assert.False(t, view.IsContiguous())

	got, err := ToSlice[int32](view)
	require.NoError(t, err)
	assert.Equal(t, []int32{5, 4, 3, 2, 1, 0}, got)

	// Writes through the base are visible through the view.
	base.Data()[0] = 9
	got, err = ToSlice[int32](view)
	require.NoError(t, err)
	assert.Equal(t, int32(9), got[5])
}

func TestViewOutlivesSource(t *testing.T) {
	base, err := Arange(4, Int64, CPU)
	require.NoError(t, err)

	view, err := base.View(Shape{2}, []int{16}, 8)
	require.NoError(t, err)

	base.Release()
	assert.True(t, view.IsUnique())

	got, err := ToSlice[int64](view)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, got)
}

func TestViewRejectsInvalidLayout(t *testing.T) {
	base, err := Arange(6, Int32, CPU)
	require.NoError(t, err)

	_, err = base.View(Shape{7}, []int{4}, 0)
	assert.ErrorIs(t, err, ErrValue)

	_, err = base.View(Shape{2}, []int{-4}, 0)
	assert.ErrorIs(t, err, ErrValue)

	_, err = base.View(Shape{2}, []int{4, 4}, 0)
	assert.ErrorIs(t, err, ErrDimension)

	// Size-zero views are exempt from bounds checks.
	empty, err := base.View(Shape{0}, []int{4}, 24)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.NumElements())
}

func TestRawTensorRelease(t *testing.T) {
	raw, err := NewRaw(Shape{2, 2}, Float32, CPU)
	require.NoError(t, err)

	clone := raw.Clone()
	assert.False(t, raw.IsUnique())

	clone.Release()
	assert.True(t, raw.IsUnique())
}

func TestIsContiguous(t *testing.T) {
	base, err := Arange(12, Float64, CPU)
	require.NoError(t, err)

	tests := []struct {
		name    string
		shape   Shape
		strides []int
		offset  int
		want    bool
	}{
		{"row-major", Shape{3, 4}, []int{32, 8}, 0, true},
		{"transposed", Shape{4, 3}, []int{8, 32}, 0, false},
		{"unit axis", Shape{1, 4}, []int{999, 8}, 8, true},
		{"strided", Shape{6}, []int{16}, 0, false},
		{"scalar", Shape{}, []int{}, 40, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := base.View(tt.shape, tt.strides, tt.offset)
			require.NoError(t, err)
			assert.Equal(t, tt.want, view.IsContiguous())
		})
	}
}

func TestDataPanicsOnStridedView(t *testing.T) {
	base, err := Arange(4, Int32, CPU)
	require.NoError(t, err)
	view, err := base.View(Shape{2}, []int{8}, 0)
	require.NoError(t, err)

	assert.Panics(t, func() { _ = view.Data() })
}

func TestStridedIterSeek(t *testing.T) {
	shape := Shape{2, 3}
	strides := []int{12, 4}
	it := NewStridedIter(shape, []int{100}, strides)

	var walked []int
	for i := 0; i < shape.NumElements(); i++ {
		walked = append(walked, it.Offsets()[0])
		it.Next()
	}
	assert.Equal(t, []int{100, 104, 108, 112, 116, 120}, walked)

	for pos, want := range walked {
		it.Seek(pos)
		assert.Equal(t, want, it.Offsets()[0], "Seek(%d)", pos)
	}
}

func TestStridedIterBroadcastAndNegative(t *testing.T) {
	// Operand 0 broadcasts along axis 0, operand 1 is reversed on axis 1.
	it := NewStridedIter(Shape{2, 2}, []int{0, 4}, []int{0, 4}, []int{8, -4})

	var got [][2]int
	for i := 0; i < 4; i++ {
		got = append(got, [2]int{it.Offsets()[0], it.Offsets()[1]})
		it.Next()
	}
	assert.Equal(t, [][2]int{{0, 4}, {4, 0}, {0, 12}, {4, 8}}, got)
}

func TestErrorTaxonomy(t *testing.T) {
	assert.True(t, errors.Is(ErrShapeMismatch, ErrDimension))
	assert.True(t, errors.Is(ErrDType, ErrValue))
	assert.False(t, errors.Is(ErrIndexOutOfBounds, ErrDimension))
}
