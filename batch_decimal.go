package orc

// TimestampVectorBatch holds seconds since the Unix epoch and a nanosecond
// component in [0, 1e9). For negative timestamps the nanoseconds still count
// forward, so -0.000000001s is stored as seconds -1, nanoseconds 999999999.
type TimestampVectorBatch struct {
	batchBase
	Data        []int64
	Nanoseconds []int64
}

// NewTimestampVectorBatch returns a TimestampVectorBatch with the given
// capacity.
func NewTimestampVectorBatch(capacity int) *TimestampVectorBatch {
	return &TimestampVectorBatch{
		batchBase:   makeBatchBase(capacity),
		Data:        make([]int64, capacity),
		Nanoseconds: make([]int64, capacity),
	}
}

func (b *TimestampVectorBatch) Resize(capacity int) {
	b.resizeBase(capacity)
	b.Data = growSlice(b.Data, capacity)
	b.Nanoseconds = growSlice(b.Nanoseconds, capacity)
}

// Decimal64VectorBatch holds decimal values whose precision fits 18 digits.
// Values are unscaled integers at the column's declared scale; ReadScales is
// decoder scratch holding the per-value scale read from the file before
// rescaling.
type Decimal64VectorBatch struct {
	batchBase
	Precision  int32
	Scale      int32
	Values     []int64
	ReadScales []int64
}

// NewDecimal64VectorBatch returns a Decimal64VectorBatch with the given
// capacity.
func NewDecimal64VectorBatch(capacity int) *Decimal64VectorBatch {
	return &Decimal64VectorBatch{
		batchBase:  makeBatchBase(capacity),
		Values:     make([]int64, capacity),
		ReadScales: make([]int64, capacity),
	}
}

func (b *Decimal64VectorBatch) Resize(capacity int) {
	b.resizeBase(capacity)
	b.Values = growSlice(b.Values, capacity)
	b.ReadScales = growSlice(b.ReadScales, capacity)
}

// Decimal128VectorBatch holds decimal values of up to 38 digits.
type Decimal128VectorBatch struct {
	batchBase
	Precision  int32
	Scale      int32
	Values     []Int128
	ReadScales []int64
}

// NewDecimal128VectorBatch returns a Decimal128VectorBatch with the given
// capacity.
func NewDecimal128VectorBatch(capacity int) *Decimal128VectorBatch {
	return &Decimal128VectorBatch{
		batchBase:  makeBatchBase(capacity),
		Values:     make([]Int128, capacity),
		ReadScales: make([]int64, capacity),
	}
}

func (b *Decimal128VectorBatch) Resize(capacity int) {
	b.resizeBase(capacity)
	b.Values = growSlice(b.Values, capacity)
	b.ReadScales = growSlice(b.ReadScales, capacity)
}
