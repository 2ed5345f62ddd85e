package tensor

// StridedIter walks the multi-indices of a shape in row-major order and keeps
// one byte offset per operand up to date, so that kernels never recompute a
// full dot product per element.
//
// Operand k starts at bases[k] and advances by strides[k][axis] along each
// axis. Strides may be zero (broadcast) or negative (reversed axis).
type StridedIter struct {
	shape   Shape
	strides [][]int
	bases   []int
	index   []int
	offsets []int
}

// NewStridedIter creates an iterator positioned at the first element.
func NewStridedIter(shape Shape, bases []int, strides ...[]int) *StridedIter {
	it := &StridedIter{
		shape:   shape,
		strides: strides,
		bases:   bases,
		index:   make([]int, len(shape)),
		offsets: make([]int, len(bases)),
	}
	copy(it.offsets, bases)
	return it
}

// Offsets returns the current byte offset of every operand.
// The slice is owned by the iterator; don't modify it.
func (it *StridedIter) Offsets() []int {
	return it.offsets
}

// Seek positions the iterator at the row-major linear position pos.
func (it *StridedIter) Seek(pos int) {
	copy(it.offsets, it.bases)
	for axis := len(it.shape) - 1; axis >= 0; axis-- {
		dim := it.shape[axis]
		if dim == 0 {
			it.index[axis] = 0
			continue
		}
		i := pos % dim
		pos /= dim
		it.index[axis] = i
		for k, s := range it.strides {
			it.offsets[k] += i * s[axis]
		}
	}
}

// Next advances to the following element, carrying into higher axes.
func (it *StridedIter) Next() {
	for axis := len(it.shape) - 1; axis >= 0; axis-- {
		it.index[axis]++
		if it.index[axis] < it.shape[axis] {
			for k, s := range it.strides {
				it.offsets[k] += s[axis]
			}
			return
		}
		// Overflowed: rewind this axis and carry.
		it.index[axis] = 0
		for k, s := range it.strides {
			it.offsets[k] -= (it.shape[axis] - 1) * s[axis]
		}
	}
}
