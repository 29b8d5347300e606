package orc

// DefaultBatchCapacity is the row capacity batches are created with when the
// caller does not specify one.
const DefaultBatchCapacity = 1024

// ColumnVectorBatch is one node of the mutable batch tree a row reader
// decodes into. Concrete batches add typed value arrays; the interface
// carries the null mask and sizing shared by all of them.
//
// notNull holds one byte per row, 1 when the row is present. hasNulls is
// true when at least one of the first NumElements entries is 0; when it is
// false the contents of notNull are not meaningful.
type ColumnVectorBatch interface {
	// Capacity returns the number of rows the batch can hold before a
	// Resize is required.
	Capacity() int

	// NumElements returns the number of decoded rows.
	NumElements() int

	// SetNumElements records the number of decoded rows.
	SetNumElements(int)

	// HasNulls reports whether any of the decoded rows is null.
	HasNulls() bool

	// SetHasNulls records whether any of the decoded rows is null.
	SetHasNulls(bool)

	// NotNull returns the per-row presence mask, sized to the capacity.
	NotNull() []byte

	// Resize grows the batch to hold capacity rows, discarding contents.
	Resize(capacity int)
}

type batchBase struct {
	capacity    int
	numElements int
	hasNulls    bool
	notNull     []byte
}

func makeBatchBase(capacity int) batchBase {
	return batchBase{capacity: capacity, notNull: make([]byte, capacity)}
}

func (b *batchBase) Capacity() int { return b.capacity }

func (b *batchBase) NumElements() int { return b.numElements }

func (b *batchBase) SetNumElements(n int) { b.numElements = n }

func (b *batchBase) HasNulls() bool { return b.hasNulls }

func (b *batchBase) SetHasNulls(hasNulls bool) { b.hasNulls = hasNulls }

func (b *batchBase) NotNull() []byte { return b.notNull }

func (b *batchBase) resizeBase(capacity int) {
	b.capacity = capacity
	b.notNull = growSlice(b.notNull, capacity)
}

// growSlice returns s grown to length n, reusing the backing array when it
// already has the capacity. Contents beyond the old length are zero only for
// freshly allocated arrays; batches treat resized contents as undefined.
func growSlice[T any](s []T, n int) []T {
	if cap(s) >= n {
		return s[:n]
	}
	return make([]T, n)
}

// NewRowBatch builds the batch tree matching the type tree rooted at t.
// selected is indexed by column id and prunes unselected subtrees; nil
// selects everything. When tightNumeric is set, boolean, byte, smallint,
// int, and float columns produce narrow vectors instead of widening to
// 64 bits. When encoded is set, string columns produce dictionary-index
// batches for use with NextEncoded.
func (t *Type) NewRowBatch(capacity int, selected []bool, tightNumeric, encoded bool) ColumnVectorBatch {
	switch t.kind {
	case Boolean, Byte:
		if tightNumeric {
			return NewByteVectorBatch(capacity)
		}
		return NewLongVectorBatch(capacity)
	case Short:
		if tightNumeric {
			return NewShortVectorBatch(capacity)
		}
		return NewLongVectorBatch(capacity)
	case Int:
		if tightNumeric {
			return NewIntVectorBatch(capacity)
		}
		return NewLongVectorBatch(capacity)
	case Long, Date:
		return NewLongVectorBatch(capacity)
	case Float:
		if tightNumeric {
			return NewFloatVectorBatch(capacity)
		}
		return NewDoubleVectorBatch(capacity)
	case Double:
		return NewDoubleVectorBatch(capacity)
	case String, Binary, Varchar, Char, Geometry, Geography:
		if encoded {
			return NewEncodedStringVectorBatch(capacity)
		}
		return NewStringVectorBatch(capacity)
	case Timestamp, TimestampInstant:
		return NewTimestampVectorBatch(capacity)
	case Decimal:
		if t.precision > 0 && t.precision <= maxPrecision64 {
			return NewDecimal64VectorBatch(capacity)
		}
		return NewDecimal128VectorBatch(capacity)
	case List:
		var elements ColumnVectorBatch
		if isSelected(selected, t.children[0]) {
			elements = t.children[0].NewRowBatch(capacity, selected, tightNumeric, encoded)
		}
		return NewListVectorBatch(capacity, elements)
	case Map:
		var keys, elements ColumnVectorBatch
		if isSelected(selected, t.children[0]) {
			keys = t.children[0].NewRowBatch(capacity, selected, tightNumeric, encoded)
		}
		if isSelected(selected, t.children[1]) {
			elements = t.children[1].NewRowBatch(capacity, selected, tightNumeric, encoded)
		}
		return NewMapVectorBatch(capacity, keys, elements)
	case Struct:
		var fields []ColumnVectorBatch
		for _, child := range t.children {
			if isSelected(selected, child) {
				fields = append(fields, child.NewRowBatch(capacity, selected, tightNumeric, encoded))
			}
		}
		return NewStructVectorBatch(capacity, fields...)
	case Union:
		children := make([]ColumnVectorBatch, len(t.children))
		for i, child := range t.children {
			if isSelected(selected, child) {
				children[i] = child.NewRowBatch(capacity, selected, tightNumeric, encoded)
			}
		}
		return NewUnionVectorBatch(capacity, children...)
	default:
		panic("orc: NewRowBatch: unhandled type kind " + t.kind.String())
	}
}

func isSelected(selected []bool, t *Type) bool {
	if selected == nil {
		return true
	}
	return selected[t.columnID]
}
