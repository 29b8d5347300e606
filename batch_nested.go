package orc

// ListVectorBatch holds list rows as an offsets array into a single child
// batch. Offsets has numElements+1 meaningful entries: row i's elements span
// child positions Offsets[i] to Offsets[i+1], and Offsets[numElements] is
// the child batch's element count. Null rows are zero width.
type ListVectorBatch struct {
	batchBase
	Offsets  []int64
	Elements ColumnVectorBatch
}

// NewListVectorBatch returns a ListVectorBatch with the given capacity.
// elements may be nil when the child column is not selected.
func NewListVectorBatch(capacity int, elements ColumnVectorBatch) *ListVectorBatch {
	return &ListVectorBatch{
		batchBase: makeBatchBase(capacity),
		Offsets:   make([]int64, capacity+1),
		Elements:  elements,
	}
}

func (b *ListVectorBatch) Resize(capacity int) {
	b.resizeBase(capacity)
	b.Offsets = growSlice(b.Offsets, capacity+1)
}

// MapVectorBatch holds map rows with the same offsets layout as lists,
// shared by the key and value child batches.
type MapVectorBatch struct {
	batchBase
	Offsets  []int64
	Keys     ColumnVectorBatch
	Elements ColumnVectorBatch
}

// NewMapVectorBatch returns a MapVectorBatch with the given capacity.
// keys and elements may be nil when the corresponding child column is not
// selected.
func NewMapVectorBatch(capacity int, keys, elements ColumnVectorBatch) *MapVectorBatch {
	return &MapVectorBatch{
		batchBase: makeBatchBase(capacity),
		Offsets:   make([]int64, capacity+1),
		Keys:      keys,
		Elements:  elements,
	}
}

func (b *MapVectorBatch) Resize(capacity int) {
	b.resizeBase(capacity)
	b.Offsets = growSlice(b.Offsets, capacity+1)
}

// StructVectorBatch holds one child batch per selected field; every child
// has the same number of elements as the struct itself.
type StructVectorBatch struct {
	batchBase
	Fields []ColumnVectorBatch
}

// NewStructVectorBatch returns a StructVectorBatch over the given field
// batches.
func NewStructVectorBatch(capacity int, fields ...ColumnVectorBatch) *StructVectorBatch {
	return &StructVectorBatch{batchBase: makeBatchBase(capacity), Fields: fields}
}

func (b *StructVectorBatch) Resize(capacity int) {
	b.resizeBase(capacity)
}

// UnionVectorBatch holds a tag per row selecting the variant, and per-row
// offsets into the chosen variant's child batch. Children is indexed by tag;
// unselected variants hold nil.
type UnionVectorBatch struct {
	batchBase
	Tags     []byte
	Offsets  []uint64
	Children []ColumnVectorBatch
}

// NewUnionVectorBatch returns a UnionVectorBatch over the given variant
// batches.
func NewUnionVectorBatch(capacity int, children ...ColumnVectorBatch) *UnionVectorBatch {
	return &UnionVectorBatch{
		batchBase: makeBatchBase(capacity),
		Tags:      make([]byte, capacity),
		Offsets:   make([]uint64, capacity),
		Children:  children,
	}
}

func (b *UnionVectorBatch) Resize(capacity int) {
	b.resizeBase(capacity)
	b.Tags = growSlice(b.Tags, capacity)
	b.Offsets = growSlice(b.Offsets, capacity)
}
