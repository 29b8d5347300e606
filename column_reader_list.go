package orc

import (
	"github.com/orc-go/orc-go/format"
	"github.com/orc-go/orc-go/internal/memory"
)

// listColumnReader decodes list columns. LENGTH holds one element count per
// row; the counts are converted to a prefix sum in place so the batch ends
// up with offsets, and the child decodes the total element count with no
// incoming mask, tracking its own nullability.
type listColumnReader struct {
	columnReader
	rle   IntegerRleDecoder
	child ColumnReader
}

func newListColumnReader(t *Type, stripe StripeStreams, tightNumeric, throwOnOverflow bool) (ColumnReader, error) {
	base, err := newColumnReader(t, stripe)
	if err != nil {
		return nil, err
	}
	encoding, err := stripe.Encoding(base.columnID)
	if err != nil {
		return nil, err
	}
	version, err := rleVersionForEncoding(encoding.Kind)
	if err != nil {
		return nil, err
	}
	stream, err := stripe.OpenStream(base.columnID, format.StreamLength, true)
	if err != nil {
		return nil, err
	}
	if stream == nil {
		return nil, parseErrorf("LENGTH stream not found in list column %d", base.columnID)
	}
	rle, err := NewIntegerRleDecoder(stream, false, version, stripe.Metrics())
	if err != nil {
		return nil, err
	}
	r := &listColumnReader{columnReader: base, rle: rle}
	childType := t.Child(0)
	if stripe.SelectedColumns()[childType.ColumnID()] {
		r.child, err = buildReader(childType, stripe, tightNumeric, throwOnOverflow, true)
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

// lengthsToOffsets rewrites decoded lengths into a prefix sum and returns
// the total child count. Null rows keep the running offset, zero width.
func lengthsToOffsets(offsets []int64, numValues int, notNull []byte) int64 {
	var total int64
	for i := 0; i < numValues; i++ {
		if notNull == nil || notNull[i] != 0 {
			length := offsets[i]
			offsets[i] = total
			total += length
		} else {
			offsets[i] = total
		}
	}
	offsets[numValues] = total
	return total
}

func (r *listColumnReader) next(batch ColumnVectorBatch, numValues int, notNull []byte, encoded bool) error {
	if err := r.nextPresent(batch, numValues, notNull); err != nil {
		return err
	}
	b, err := batchAs[*ListVectorBatch](batch, r.columnID)
	if err != nil {
		return err
	}
	mask := batchNotNull(batch)
	if err := r.rle.Next(b.Offsets[:numValues], mask); err != nil {
		return err
	}
	total := lengthsToOffsets(b.Offsets, numValues, mask)
	if r.child != nil {
		if encoded {
			return r.child.NextEncoded(b.Elements, int(total), nil)
		}
		return r.child.Next(b.Elements, int(total), nil)
	}
	return nil
}

func (r *listColumnReader) Next(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	return r.next(batch, numValues, notNull, false)
}

func (r *listColumnReader) NextEncoded(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	return r.next(batch, numValues, notNull, true)
}

// sumLengths drains numValues entries of the LENGTH stream and returns the
// total child count they cover.
func sumLengths(rle IntegerRleDecoder, numValues int) (int64, error) {
	scratch := memory.GetInt64s(1024)
	defer memory.PutInt64s(scratch)
	var total int64
	for numValues > 0 {
		step := numValues
		if step > len(scratch.Data) {
			step = len(scratch.Data)
		}
		if err := rle.Next(scratch.Data[:step], nil); err != nil {
			return 0, err
		}
		for _, length := range scratch.Data[:step] {
			total += length
		}
		numValues -= step
	}
	return total, nil
}

func (r *listColumnReader) Skip(numValues int) (int, error) {
	nonNull, err := r.skipPresent(numValues)
	if err != nil {
		return 0, err
	}
	if r.child == nil {
		return nonNull, r.rle.Skip(nonNull)
	}
	total, err := sumLengths(r.rle, nonNull)
	if err != nil {
		return 0, err
	}
	_, err = r.child.Skip(int(total))
	return nonNull, err
}

func (r *listColumnReader) SeekToRowGroup(positions PositionMap) error {
	if err := r.seekPresent(positions); err != nil {
		return err
	}
	if err := r.rle.Seek(positions[r.columnID]); err != nil {
		return err
	}
	if r.child != nil {
		return r.child.SeekToRowGroup(positions)
	}
	return nil
}
