package index

import (
	"testing"

	"github.com/born-ml/ndview/internal/tensor"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// arange returns a float32 array of the given shape holding 0, 1, 2, ...
func arange(t *testing.T, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	flat, err := tensor.Arange(shape.NumElements(), tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	out, err := flat.View(shape, shape.ByteStrides(4), 0)
	require.NoError(t, err)
	return out
}

func values(t *testing.T, x *tensor.RawTensor) []float32 {
	t.Helper()
	got, err := tensor.ToSlice[float32](x)
	require.NoError(t, err)
	return got
}

func TestGetitem(t *testing.T) {
	tests := []struct {
		name      string
		shape     tensor.Shape
		expr      any
		wantShape tensor.Shape
		want      []float32
	}{
		// empty indexing
		{"scalar empty", tensor.Shape{}, Expr{}, tensor.Shape{}, []float32{0}},
		{"vector empty", tensor.Shape{3}, Expr{}, tensor.Shape{3}, []float32{0, 1, 2}},
		{"cube empty", tensor.Shape{2, 2, 2}, Expr{}, tensor.Shape{2, 2, 2}, []float32{0, 1, 2, 3, 4, 5, 6, 7}},

		// integer indexing, single item
		{"int 0", tensor.Shape{3}, 0, tensor.Shape{}, []float32{0}},
		{"int 1", tensor.Shape{3}, 1, tensor.Shape{}, []float32{1}},
		{"int 2", tensor.Shape{3}, 2, tensor.Shape{}, []float32{2}},
		{"int -1", tensor.Shape{3}, -1, tensor.Shape{}, []float32{2}},
		{"row 0", tensor.Shape{2, 3}, 0, tensor.Shape{3}, []float32{0, 1, 2}},
		{"row 1", tensor.Shape{2, 3}, 1, tensor.Shape{3}, []float32{3, 4, 5}},
		{"int8 -1", tensor.Shape{2, 3}, int8(-1), tensor.Shape{3}, []float32{3, 4, 5}},
		{"int32 0", tensor.Shape{2, 3}, int32(0), tensor.Shape{3}, []float32{0, 1, 2}},
		{"uint64 1", tensor.Shape{2, 3}, uint64(1), tensor.Shape{3}, []float32{3, 4, 5}},

		// integer indexing, tuple
		{"tuple -1", tensor.Shape{3}, Expr{-1}, tensor.Shape{}, []float32{2}},
		{"tuple row", tensor.Shape{2, 3}, Expr{1}, tensor.Shape{3}, []float32{3, 4, 5}},
		{"tuple 0 0", tensor.Shape{2, 3}, Expr{0, 0}, tensor.Shape{}, []float32{0}},
		{"tuple 1 1", tensor.Shape{2, 3}, Expr{1, 1}, tensor.Shape{}, []float32{4}},
		{"tuple 0 -2 3", tensor.Shape{2, 3, 4}, Expr{0, -2, 3}, tensor.Shape{}, []float32{7}},
		{"tuple 1 0", tensor.Shape{2, 3, 4}, Expr{1, 0}, tensor.Shape{4}, []float32{12, 13, 14, 15}},

		// slice indexing
		{"[:]", tensor.Shape{3}, S(), tensor.Shape{3}, []float32{0, 1, 2}},
		{"[:2]", tensor.Shape{3}, S(2), tensor.Shape{2}, []float32{0, 1}},
		{"[0:3]", tensor.Shape{3}, S(0, 3), tensor.Shape{3}, []float32{0, 1, 2}},
		{"[1:3]", tensor.Shape{3}, Expr{S(1, 3)}, tensor.Shape{2}, []float32{1, 2}},
		{"[0:0]", tensor.Shape{3}, S(0, 0), tensor.Shape{0}, []float32{}},
		{"[0:1]", tensor.Shape{3}, S(0, 1), tensor.Shape{1}, []float32{0}},
		{"[2:0:-1]", tensor.Shape{3}, S(2, 0, -1), tensor.Shape{2}, []float32{2, 1}},
		{"[-2:-1]", tensor.Shape{3}, S(-2, -1), tensor.Shape{1}, []float32{1}},
		{"[2::-1]", tensor.Shape{3}, S(2, nil, -1), tensor.Shape{3}, []float32{2, 1, 0}},
		{"[:0:1]", tensor.Shape{3}, S(nil, 0, 1), tensor.Shape{0}, []float32{}},
		{"[:-1:-1]", tensor.Shape{3}, S(nil, -1, -1), tensor.Shape{0}, []float32{}},
		{"[:-2:-1]", tensor.Shape{3}, Expr{S(nil, -2, -1)}, tensor.Shape{1}, []float32{2}},
		{"[0:6:2]", tensor.Shape{6}, S(0, 6, 2), tensor.Shape{3}, []float32{0, 2, 4}},
		{"[1:6:2]", tensor.Shape{6}, S(1, 6, 2), tensor.Shape{3}, []float32{1, 3, 5}},
		{"[5::-2]", tensor.Shape{6}, S(5, nil, -2), tensor.Shape{3}, []float32{5, 3, 1}},
		{"[50:1:-1]", tensor.Shape{6}, Expr{S(50, 1, -1)}, tensor.Shape{4}, []float32{5, 4, 3, 2}},
		{"[3:3:1]", tensor.Shape{6}, Expr{S(3, 3, 1)}, tensor.Shape{0}, []float32{}},
		{"[3:3:-2]", tensor.Shape{6}, Expr{S(3, 3, -2)}, tensor.Shape{0}, []float32{}},
		{"[50:50:1]", tensor.Shape{6}, Expr{S(50, 50, 1)}, tensor.Shape{0}, []float32{}},
		{"[50:50:-2]", tensor.Shape{6}, Expr{S(50, 50, -2)}, tensor.Shape{0}, []float32{}},
		{"[-50:-50:1]", tensor.Shape{6}, Expr{S(-50, -50, 1)}, tensor.Shape{0}, []float32{}},
		{"[-50:-50:-2]", tensor.Shape{6}, Expr{S(-50, -50, -2)}, tensor.Shape{0}, []float32{}},
		{"[:, :]", tensor.Shape{2, 3}, Expr{S(), S()}, tensor.Shape{2, 3}, []float32{0, 1, 2, 3, 4, 5}},
		{"[:1, :2]", tensor.Shape{2, 3}, Expr{S(1), S(2)}, tensor.Shape{1, 2}, []float32{0, 1}},
		{"[0:2, 0:-1]", tensor.Shape{2, 3}, Expr{S(0, 2), S(0, -1)}, tensor.Shape{2, 2}, []float32{0, 1, 3, 4}},
		{"[0::-1, 2:3]", tensor.Shape{2, 3}, Expr{S(0, nil, -1), S(2, 3)}, tensor.Shape{1, 1}, []float32{2}},
		{"[0:, -2:0:-1]", tensor.Shape{2, 3}, Expr{S(0, nil, nil), S(-2, 0, -1)}, tensor.Shape{2, 1}, []float32{1, 4}},
		{"[1:2, 0:2]", tensor.Shape{2, 3}, Expr{S(1, 2), S(0, 2)}, tensor.Shape{1, 2}, []float32{3, 4}},
		{"[-2::-1, 0:3]", tensor.Shape{2, 3}, Expr{S(-2, nil, -1), S(0, 3)}, tensor.Shape{1, 3}, []float32{0, 1, 2}},
		{"[-2::-1, -3::-1]", tensor.Shape{2, 3}, Expr{S(-2, nil, -1), S(-3, nil, -1)}, tensor.Shape{1, 1}, []float32{0}},
		{"[-2::-1, ::-2]", tensor.Shape{2, 3}, Expr{S(-2, nil, -1), S(nil, nil, -2)}, tensor.Shape{1, 2}, []float32{2, 0}},
		{"[1:2, ::1]", tensor.Shape{2, 3}, Expr{S(1, 2), S(nil, nil, 1)}, tensor.Shape{1, 3}, []float32{3, 4, 5}},
		{"[1:2, ::2]", tensor.Shape{2, 3}, Expr{S(1, 2), S(nil, nil, 2)}, tensor.Shape{1, 2}, []float32{3, 5}},
		{"[:1, -2:3, 1::-1]", tensor.Shape{2, 3, 4}, Expr{S(1), S(-2, 3), S(1, nil, -1)}, tensor.Shape{1, 2, 2}, []float32{5, 4, 9, 8}},

		// newaxis indexing
		{"scalar newaxis", tensor.Shape{}, NewAxis, tensor.Shape{1}, []float32{0}},
		{"vector newaxis", tensor.Shape{3}, NewAxis, tensor.Shape{1, 3}, []float32{0, 1, 2}},
		{"scalar tuple newaxis", tensor.Shape{}, Expr{NewAxis}, tensor.Shape{1}, []float32{0}},
		{"nil is newaxis", tensor.Shape{3}, Expr{nil}, tensor.Shape{1, 3}, []float32{0, 1, 2}},
		{"two newaxis", tensor.Shape{2, 3}, Expr{NewAxis, NewAxis}, tensor.Shape{1, 1, 2, 3}, []float32{0, 1, 2, 3, 4, 5}},

		// mixed indexing
		{"[0, 1:3]", tensor.Shape{2, 3}, Expr{0, S(1, 3)}, tensor.Shape{2}, []float32{1, 2}},
		{"[1:3, 1]", tensor.Shape{4, 3}, Expr{S(1, 3), 1}, tensor.Shape{2}, []float32{4, 7}},
		{"[1, :2, 1:3]", tensor.Shape{2, 3, 4}, Expr{1, S(2), S(1, 3)}, tensor.Shape{2, 2}, []float32{13, 14, 17, 18}},
		{"[1, newaxis, 1:3]", tensor.Shape{2, 3}, Expr{1, NewAxis, S(1, 3)}, tensor.Shape{1, 2}, []float32{4, 5}},
		{"[0:1, 1:2, 1:3, newaxis]", tensor.Shape{2, 3, 4}, Expr{S(0, 1), S(1, 2), S(1, 3), NewAxis}, tensor.Shape{1, 1, 2, 1}, []float32{5, 6}},
		{"[0:1, 1:2, newaxis, 1:3]", tensor.Shape{2, 3, 4}, Expr{S(0, 1), S(1, 2), NewAxis, S(1, 3)}, tensor.Shape{1, 1, 1, 2}, []float32{5, 6}},
		{"[0:1, newaxis, 1:2, 1:3]", tensor.Shape{2, 3, 4}, Expr{S(0, 1), NewAxis, S(1, 2), S(1, 3)}, tensor.Shape{1, 1, 1, 2}, []float32{5, 6}},
		{"[newaxis, 0:1, 1:2, 1:3]", tensor.Shape{2, 3, 4}, Expr{NewAxis, S(0, 1), S(1, 2), S(1, 3)}, tensor.Shape{1, 1, 1, 2}, []float32{5, 6}},
		{"[1, :2, newaxis, 1:3, newaxis]", tensor.Shape{2, 3, 4}, Expr{1, S(2), NewAxis, S(1, 3), NewAxis}, tensor.Shape{2, 1, 2, 1}, []float32{13, 14, 17, 18}},

		// ellipsis
		{"[..., 1]", tensor.Shape{2, 3, 4}, Expr{Ellipsis, 1}, tensor.Shape{2, 3}, []float32{1, 5, 9, 13, 17, 21}},
		{"[0, ...]", tensor.Shape{2, 3, 4}, Expr{0, Ellipsis}, tensor.Shape{3, 4}, []float32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
		{"[1, ..., 2]", tensor.Shape{2, 3, 4}, Expr{1, Ellipsis, 2}, tensor.Shape{3}, []float32{14, 18, 22}},
		{"[..., newaxis]", tensor.Shape{3}, Expr{Ellipsis, NewAxis}, tensor.Shape{3, 1}, []float32{0, 1, 2}},
		{"[...] on scalar", tensor.Shape{}, Ellipsis, tensor.Shape{}, []float32{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := arange(t, tt.shape)

			b, err := Get(a, tt.expr)
			require.NoError(t, err)

			if diff := cmp.Diff(tt.wantShape, b.Shape()); diff != "" {
				t.Errorf("shape mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.want, values(t, b))
			assert.True(t, b.SharesBuffer(a), "result must be a view")
		})
	}
}

func TestGetitemErrors(t *testing.T) {
	tests := []struct {
		name  string
		shape tensor.Shape
		expr  any
		want  error
	}{
		{"int past end", tensor.Shape{2, 3}, 2, tensor.ErrDimension},
		{"int before start", tensor.Shape{2, 3}, Expr{0, -4}, tensor.ErrDimension},
		{"int on empty axis", tensor.Shape{0}, 0, tensor.ErrDimension},
		{"int on scalar", tensor.Shape{}, 0, tensor.ErrDimension},
		{"too many items", tensor.Shape{2, 3}, Expr{0, 0, 0}, tensor.ErrDimension},
		{"too many with ellipsis", tensor.Shape{2}, Expr{0, Ellipsis, 0}, tensor.ErrDimension},
		{"uint64 overflow", tensor.Shape{2}, uint64(1 << 63), tensor.ErrDimension},
		{"zero step", tensor.Shape{3}, S(nil, nil, 0), tensor.ErrValue},
		{"two ellipses", tensor.Shape{2, 3}, Expr{Ellipsis, Ellipsis}, tensor.ErrValue},
		{"unsupported type", tensor.Shape{2, 3}, "x", tensor.ErrValue},
		{"float item", tensor.Shape{2, 3}, 1.5, tensor.ErrValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := arange(t, tt.shape)
			b, err := Get(a, tt.expr)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, b)
		})
	}
}

func TestResolveStridesAndOffset(t *testing.T) {
	a := arange(t, tensor.Shape{2, 3})

	tests := []struct {
		name        string
		expr        Expr
		wantStrides []int
		wantOffset  int
	}{
		{"identity", Expr{}, []int{12, 4}, 0},
		{"row", Expr{1}, []int{4}, 12},
		{"reversed columns", Expr{S(), S(nil, nil, -2)}, []int{12, -8}, 8},
		{"newaxis is stride 0", Expr{NewAxis, 1}, []int{0, 4}, 12},
		{"element", Expr{-1, -1}, []int{}, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Get(a, tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStrides, b.Strides())
			assert.Equal(t, tt.wantOffset, b.Offset())
		})
	}
}

func TestGetitemZeroSizedOffsets(t *testing.T) {
	a, err := tensor.Arange(6, tensor.Int32, tensor.CPU)
	require.NoError(t, err)

	b, err := Get(a, S(3, 3))
	require.NoError(t, err)
	assert.Equal(t, 0, b.NumElements())
	assert.Equal(t, 12, b.Offset())

	// Slicing an empty view must not move the offset.
	c, err := Get(b, S(2, nil))
	require.NoError(t, err)
	assert.Equal(t, 0, c.NumElements())
	assert.Equal(t, b.Offset(), c.Offset())
}

func TestEmptySliceOffsetUsesClampedStart(t *testing.T) {
	a, err := tensor.Arange(6, tensor.Int32, tensor.CPU)
	require.NoError(t, err)

	tests := []struct {
		slice Slice
		want  int
	}{
		{S(50, 50, 1), 24},
		{S(50, 50, -2), 20},
		{S(-50, -50, 1), 0},
		{S(-50, -50, -2), -4},
		{S(3, 3, -2), 12},
	}

	for _, tt := range tests {
		b, err := Get(a, tt.slice)
		require.NoError(t, err)
		assert.Equal(t, 0, b.NumElements(), "%v", tt.slice)
		assert.Equal(t, tt.want, b.Offset(), "%v", tt.slice)
	}
}

func TestSliceComposition(t *testing.T) {
	a := arange(t, tensor.Shape{6})

	// a[1:6:2][::-1] is a[5::-2]
	step1, err := Get(a, S(1, 6, 2))
	require.NoError(t, err)
	composed, err := Get(step1, S(nil, nil, -1))
	require.NoError(t, err)

	direct, err := Get(a, S(5, nil, -2))
	require.NoError(t, err)

	assert.Equal(t, direct.Shape(), composed.Shape())
	assert.Equal(t, direct.Strides(), composed.Strides())
	assert.Equal(t, direct.Offset(), composed.Offset())
	assert.Equal(t, []float32{5, 3, 1}, values(t, composed))

	// a[2:][1:3] is a[3:5]
	tail, err := Get(a, S(2, nil))
	require.NoError(t, err)
	inner, err := Get(tail, S(1, 3))
	require.NoError(t, err)
	direct, err = Get(a, S(3, 5))
	require.NoError(t, err)
	assert.Equal(t, direct.Offset(), inner.Offset())
	assert.Equal(t, direct.Strides(), inner.Strides())
	assert.Equal(t, direct.Shape(), inner.Shape())
}

func TestViewSeesSourceWrites(t *testing.T) {
	a, err := tensor.Arange(6, tensor.Uint8, tensor.CPU)
	require.NoError(t, err)

	b, err := Get(a, S(1, nil, 2))
	require.NoError(t, err)

	a.Data()[3] = 100
	got, err := tensor.ToSlice[uint8](b)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 100, 5}, got)
}

func TestSliceIndices(t *testing.T) {
	tests := []struct {
		slice                 Slice
		n                     int
		start, step, length int
	}{
		{S(), 5, 0, 1, 5},
		{S(nil, nil, -1), 5, 4, -1, 5},
		{S(-100, 100), 5, 0, 1, 5},
		{S(100, -100, -1), 5, 4, -1, 5},
		{S(1, 4, 2), 5, 1, 2, 2},
		{S(4, 1, -2), 5, 4, -2, 2},
		{S(2, nil), 0, 0, 1, 0},
		{S(nil, nil, -1), 0, -1, -1, 0},
	}

	for _, tt := range tests {
		start, step, length, err := tt.slice.Indices(tt.n)
		require.NoError(t, err)
		assert.Equal(t, tt.start, start, "%v start", tt.slice)
		assert.Equal(t, tt.step, step, "%v step", tt.slice)
		assert.Equal(t, tt.length, length, "%v length", tt.slice)
	}
}
