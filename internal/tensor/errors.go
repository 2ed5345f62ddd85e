package tensor

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the resolver, the engines and the backends.
// Callers match with errors.Is; every returned error wraps one of these.
var (
	// ErrDimension reports rank/axis mismatches, integer indices out of range
	// and too many index items.
	ErrDimension = errors.New("dimension error")

	// ErrValue reports invalid argument values such as a zero slice step.
	ErrValue = errors.New("value error")

	// ErrIndexOutOfBounds reports an invalid gather index.
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrBackendMismatch reports operands living on different devices.
	ErrBackendMismatch = errors.New("backend mismatch")

	// ErrShapeMismatch reports shapes that cannot be broadcast together.
	ErrShapeMismatch = fmt.Errorf("shape mismatch: %w", ErrDimension)

	// ErrDType reports an unsupported dtype or dtype combination.
	ErrDType = fmt.Errorf("invalid dtype: %w", ErrValue)

	// ErrUnavailable reports a backend that cannot run on this host.
	ErrUnavailable = errors.New("backend unavailable")
)
