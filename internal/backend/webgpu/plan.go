package webgpu

import (
	"encoding/binary"
	"math"

	"github.com/born-ml/ndview/internal/tensor"
)

// workgroupSize is the default number of threads per workgroup.
const workgroupSize = 256

const (
	// maxRank is the number of axes the kernels unroll.
	maxRank = 8

	// maxInvocations bounds a single one-dimensional dispatch.
	maxInvocations = 65535 * workgroupSize
)

// Kernel parameter layout. Both kernels read an array<i32> whose header is
// followed by maxRank-sized blocks.
const (
	gatherHeader = 5 // count, rank, words, srcOffset, axisStride
	selectHeader = 5 // count, rank, words, xOffset, yOffset
)

// wordsPerElement returns the number of u32 words per element, or false for
// dtypes the kernels do not move.
func wordsPerElement(dt tensor.DataType) (int, bool) {
	switch dt.Size() {
	case 4:
		return 1, true
	case 8:
		return 2, true
	}
	return 0, false
}

// toWords converts a byte stride or offset into u32 words.
func toWords(bytes int) (int32, bool) {
	if bytes%4 != 0 {
		return 0, false
	}
	w := bytes / 4
	if w > math.MaxInt32 || w < math.MinInt32 {
		return 0, false
	}
	return int32(w), true
}

func stridesToWords(dst []int32, strides []int) bool {
	for i, s := range strides {
		w, ok := toWords(s)
		if !ok {
			return false
		}
		dst[i] = w
	}
	return true
}

func dispatchable(shape tensor.Shape, dt tensor.DataType) (int, bool) {
	words, ok := wordsPerElement(dt)
	if !ok || len(shape) > maxRank {
		return 0, false
	}
	n := shape.NumElements()
	if n == 0 || n > maxInvocations {
		return 0, false
	}
	return words, true
}

// gatherParams packs a gather plan for the gather kernel. ok is false when
// the plan must run on the host instead.
func gatherParams(p *tensor.GatherPlan) (params []int32, indices []int32, ok bool) {
	words, ok := dispatchable(p.Shape, p.Source.Array.DType())
	if !ok {
		return nil, nil, false
	}

	params = make([]int32, gatherHeader+3*maxRank)
	params[0] = int32(p.Shape.NumElements())
	params[1] = int32(len(p.Shape))
	params[2] = int32(words)
	if params[3], ok = toWords(p.Source.Offset); !ok {
		return nil, nil, false
	}
	if params[4], ok = toWords(p.AxisStride); !ok {
		return nil, nil, false
	}
	for i, d := range p.Shape {
		params[gatherHeader+i] = int32(d)
	}
	if !stridesToWords(params[gatherHeader+maxRank:], p.Source.Strides) {
		return nil, nil, false
	}
	for i, s := range p.IndexStrides {
		params[gatherHeader+2*maxRank+i] = int32(s)
	}

	indices = make([]int32, max(len(p.Indices), 1))
	for i, v := range p.Indices {
		if v > math.MaxInt32 {
			return nil, nil, false
		}
		indices[i] = int32(v)
	}
	return params, indices, true
}

// selectParams packs a select plan for the select kernel. The condition is
// uploaded as a packed u32 mask in its own shape, so its strides are
// recomputed for that layout.
func selectParams(p *tensor.SelectPlan) ([]int32, bool) {
	words, ok := dispatchable(p.Shape, p.DType)
	if !ok {
		return nil, false
	}

	condShape := p.Condition.Array.Shape()
	condStrides, err := tensor.BroadcastStrides(condShape, condShape.ComputeStrides(), p.Shape)
	if err != nil {
		return nil, false
	}

	params := make([]int32, selectHeader+4*maxRank)
	params[0] = int32(p.Shape.NumElements())
	params[1] = int32(len(p.Shape))
	params[2] = int32(words)
	if params[3], ok = toWords(p.X.Offset); !ok {
		return nil, false
	}
	if params[4], ok = toWords(p.Y.Offset); !ok {
		return nil, false
	}
	for i, d := range p.Shape {
		params[selectHeader+i] = int32(d)
	}
	for i, s := range condStrides {
		params[selectHeader+maxRank+i] = int32(s)
	}
	if !stridesToWords(params[selectHeader+2*maxRank:], p.X.Strides) ||
		!stridesToWords(params[selectHeader+3*maxRank:], p.Y.Strides) {
		return nil, false
	}
	return params, true
}

// conditionMask converts packed condition elements into one u32 per element.
func conditionMask(dt tensor.DataType, packed []byte) []uint32 {
	size := dt.Size()
	mask := make([]uint32, len(packed)/size)
	for i := range mask {
		if tensor.Truthy(dt, packed[i*size:(i+1)*size]) {
			mask[i] = 1
		}
	}
	return mask
}

// padWords returns data padded with zeros to a non-zero multiple of 4 bytes.
func padWords(data []byte) []byte {
	n := max((len(data)+3)&^3, 4)
	if n == len(data) {
		return data
	}
	out := make([]byte, n)
	copy(out, data)
	return out
}

func int32Bytes(v []int32) []byte {
	out := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(out[4*i:], uint32(x))
	}
	return out
}

func uint32Bytes(v []uint32) []byte {
	out := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(out[4*i:], x)
	}
	return out
}
