package orc

// numericValue constrains the element types of the numeric vector batches.
type numericValue interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// numericVector is implemented by every numeric batch; the integer, boolean,
// byte, and floating point decoders use it to reach the typed value array
// without enumerating the concrete batch types.
type numericVector[T numericValue] interface {
	ColumnVectorBatch
	Values() []T
}

// LongVectorBatch holds 64-bit integer values. It is the default vector for
// every integer column kind and for boolean and byte columns when narrow
// vectors are not requested.
type LongVectorBatch struct {
	batchBase
	Data []int64
}

// NewLongVectorBatch returns a LongVectorBatch with the given capacity.
func NewLongVectorBatch(capacity int) *LongVectorBatch {
	return &LongVectorBatch{batchBase: makeBatchBase(capacity), Data: make([]int64, capacity)}
}

func (b *LongVectorBatch) Values() []int64 { return b.Data }

func (b *LongVectorBatch) Resize(capacity int) {
	b.resizeBase(capacity)
	b.Data = growSlice(b.Data, capacity)
}

// IntVectorBatch holds 32-bit integer values (tight vector for int columns).
type IntVectorBatch struct {
	batchBase
	Data []int32
}

// NewIntVectorBatch returns an IntVectorBatch with the given capacity.
func NewIntVectorBatch(capacity int) *IntVectorBatch {
	return &IntVectorBatch{batchBase: makeBatchBase(capacity), Data: make([]int32, capacity)}
}

func (b *IntVectorBatch) Values() []int32 { return b.Data }

func (b *IntVectorBatch) Resize(capacity int) {
	b.resizeBase(capacity)
	b.Data = growSlice(b.Data, capacity)
}

// ShortVectorBatch holds 16-bit integer values (tight vector for smallint
// columns).
type ShortVectorBatch struct {
	batchBase
	Data []int16
}

// NewShortVectorBatch returns a ShortVectorBatch with the given capacity.
func NewShortVectorBatch(capacity int) *ShortVectorBatch {
	return &ShortVectorBatch{batchBase: makeBatchBase(capacity), Data: make([]int16, capacity)}
}

func (b *ShortVectorBatch) Values() []int16 { return b.Data }

func (b *ShortVectorBatch) Resize(capacity int) {
	b.resizeBase(capacity)
	b.Data = growSlice(b.Data, capacity)
}

// ByteVectorBatch holds 8-bit integer values (tight vector for boolean and
// tinyint columns).
type ByteVectorBatch struct {
	batchBase
	Data []int8
}

// NewByteVectorBatch returns a ByteVectorBatch with the given capacity.
func NewByteVectorBatch(capacity int) *ByteVectorBatch {
	return &ByteVectorBatch{batchBase: makeBatchBase(capacity), Data: make([]int8, capacity)}
}

func (b *ByteVectorBatch) Values() []int8 { return b.Data }

func (b *ByteVectorBatch) Resize(capacity int) {
	b.resizeBase(capacity)
	b.Data = growSlice(b.Data, capacity)
}

// DoubleVectorBatch holds 64-bit floating point values.
type DoubleVectorBatch struct {
	batchBase
	Data []float64
}

// NewDoubleVectorBatch returns a DoubleVectorBatch with the given capacity.
func NewDoubleVectorBatch(capacity int) *DoubleVectorBatch {
	return &DoubleVectorBatch{batchBase: makeBatchBase(capacity), Data: make([]float64, capacity)}
}

func (b *DoubleVectorBatch) Values() []float64 { return b.Data }

func (b *DoubleVectorBatch) Resize(capacity int) {
	b.resizeBase(capacity)
	b.Data = growSlice(b.Data, capacity)
}

// FloatVectorBatch holds 32-bit floating point values (tight vector for
// float columns).
type FloatVectorBatch struct {
	batchBase
	Data []float32
}

// NewFloatVectorBatch returns a FloatVectorBatch with the given capacity.
func NewFloatVectorBatch(capacity int) *FloatVectorBatch {
	return &FloatVectorBatch{batchBase: makeBatchBase(capacity), Data: make([]float32, capacity)}
}

func (b *FloatVectorBatch) Values() []float32 { return b.Data }

func (b *FloatVectorBatch) Resize(capacity int) {
	b.resizeBase(capacity)
	b.Data = growSlice(b.Data, capacity)
}
