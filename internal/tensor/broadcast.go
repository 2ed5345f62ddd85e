package tensor

import "fmt"

// BroadcastShapes implements NumPy-style broadcasting rules over any number
// of shapes.
//
// Rules:
// 1. Compare shapes element-wise from right to left
// 2. Dimensions are compatible if:
//   - They are equal, OR
//   - One of them is 1
//
// 3. Missing dimensions are treated as 1
//
// Examples:
//
//	(3, 1) + (3, 5) → (3, 5)
//	(2, 3) + (1, 3) + (1, 3) → (2, 3)
//	(4, 5) + (3, 4, 1) + (1, 5) → (3, 4, 5)
//	(3, 4) + (3, 5) → ErrShapeMismatch
func BroadcastShapes(shapes ...Shape) (Shape, error) {
	maxLen := 0
	for _, s := range shapes {
		maxLen = max(maxLen, len(s))
	}

	result := make(Shape, maxLen)
	for i := range result {
		result[i] = 1
	}

	for _, s := range shapes {
		offset := maxLen - len(s)
		for i, dim := range s {
			out := result[offset+i]
			switch {
			case dim == out:
			case out == 1:
				result[offset+i] = dim
			case dim == 1:
			default:
				return nil, fmt.Errorf("shapes %v not compatible for broadcasting (dimension %d: %d vs %d): %w",
					shapes, offset+i, out, dim, ErrShapeMismatch)
			}
		}
	}

	return result, nil
}

// BroadcastStrides returns virtual strides that read an array of shape and
// strides as if it had shape out. Padded and size-1 axes that are stretched
// get stride 0; nothing is copied.
func BroadcastStrides(shape Shape, strides []int, out Shape) ([]int, error) {
	if len(shape) > len(out) {
		return nil, fmt.Errorf("cannot broadcast shape %v to %v: %w", shape, out, ErrShapeMismatch)
	}

	offset := len(out) - len(shape)
	result := make([]int, len(out))
	for i := range out {
		inIdx := i - offset
		switch {
		case inIdx < 0:
			// Padded dimension
		case shape[inIdx] == out[i]:
			result[i] = strides[inIdx]
		case shape[inIdx] == 1:
			// Broadcast dimension
		default:
			return nil, fmt.Errorf("cannot broadcast shape %v to %v: %w", shape, out, ErrShapeMismatch)
		}
	}
	return result, nil
}
