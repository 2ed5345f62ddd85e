package tensor

// Backend defines the capability interface every compute backend implements.
// Backends own the physical data movement; the resolver and the broadcast
// planner only compute metadata and never call into a backend.
//
// Implementations:
//   - Native: pure Go strided loops with chunked parallelism
//   - WebGPU: compute shaders via go-webgpu (Windows)
type Backend interface {
	// ReadStrided packs the elements addressed by x into a new row-major
	// byte slice.
	ReadStrided(x *RawTensor) ([]byte, error)

	// WriteStrided scatters packed row-major bytes into the elements
	// addressed by x. Writes are visible through every view of the buffer.
	WriteStrided(x *RawTensor, data []byte) error

	// Cast returns a new contiguous array holding x converted to dtype.
	Cast(x *RawTensor, dtype DataType) (*RawTensor, error)

	// Gather executes a gather plan into a new contiguous array.
	Gather(p *GatherPlan) (*RawTensor, error)

	// Select executes a ternary select plan into a new contiguous array.
	Select(p *SelectPlan) (*RawTensor, error)

	// Synchronize blocks until all work enqueued on the backend is complete.
	Synchronize() error

	// Metadata
	Name() string
	Device() Device
}

// Operand describes how an array is read in the output's index space:
// one byte stride per output axis (zero on broadcast axes) and a byte
// offset into the array's buffer.
type Operand struct {
	Array   *RawTensor
	Strides []int
	Offset  int
}

// GatherPlan is the data movement for take. For output position p the
// source element lives at
//
//	Source.Offset + Σ p[i]*Source.Strides[i] + Indices[Σ p[i]*IndexStrides[i]]*AxisStride
//
// Indices are already normalized into [0, extent).
type GatherPlan struct {
	Shape        Shape
	Source       Operand
	Indices      []int
	IndexStrides []int
	AxisStride   int
}

// SelectPlan is the data movement for where. X and Y share DType; the
// condition may have any dtype and is read as a truthiness predicate.
type SelectPlan struct {
	Shape     Shape
	DType     DataType
	Condition Operand
	X         Operand
	Y         Operand
}
