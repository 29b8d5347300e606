package orc

// StringVectorBatch holds variable-length byte values. Data[i] is a slice
// into Blob for direct columns or into the stripe dictionary blob for
// dictionary columns; Length[i] carries the same length for vectorized
// consumers that want a flat array.
type StringVectorBatch struct {
	batchBase
	Data   [][]byte
	Length []int64
	Blob   []byte
}

// NewStringVectorBatch returns a StringVectorBatch with the given capacity.
func NewStringVectorBatch(capacity int) *StringVectorBatch {
	return &StringVectorBatch{
		batchBase: makeBatchBase(capacity),
		Data:      make([][]byte, capacity),
		Length:    make([]int64, capacity),
	}
}

func (b *StringVectorBatch) Resize(capacity int) {
	b.resizeBase(capacity)
	b.Data = growSlice(b.Data, capacity)
	b.Length = growSlice(b.Length, capacity)
}

// StringDictionary is the per-stripe dictionary of a dictionary-encoded
// string column. Offsets has one more entry than the dictionary has items;
// entry i spans Blob[Offsets[i]:Offsets[i+1]]. The dictionary is built once
// per stripe and shared read-only between the decoder and every batch
// emitted in encoded mode.
type StringDictionary struct {
	Offsets []int64
	Blob    []byte
}

// Size returns the number of dictionary entries.
func (d *StringDictionary) Size() int { return len(d.Offsets) - 1 }

// Entry returns the i-th dictionary entry.
func (d *StringDictionary) Entry(i int) []byte {
	return d.Blob[d.Offsets[i]:d.Offsets[i+1]]
}

// EncodedStringVectorBatch holds dictionary indices instead of materialized
// strings. Index[i] is a position in Dictionary for present rows.
type EncodedStringVectorBatch struct {
	batchBase
	Index      []int64
	Dictionary *StringDictionary
	IsEncoded  bool
}

// NewEncodedStringVectorBatch returns an EncodedStringVectorBatch with the
// given capacity.
func NewEncodedStringVectorBatch(capacity int) *EncodedStringVectorBatch {
	return &EncodedStringVectorBatch{
		batchBase: makeBatchBase(capacity),
		Index:     make([]int64, capacity),
	}
}

func (b *EncodedStringVectorBatch) Resize(capacity int) {
	b.resizeBase(capacity)
	b.Index = growSlice(b.Index, capacity)
}
