package orc

import (
	"github.com/orc-go/orc-go/format"
	"github.com/orc-go/orc-go/internal/memory"
)

// integerColumnReader decodes smallint, int, bigint, and date columns with
// signed integer RLE. The run-length decoders produce int64; narrow element
// types are filled through a pooled scratch vector.
type integerColumnReader[T int16 | int32 | int64] struct {
	columnReader
	rle IntegerRleDecoder
}

func newIntegerColumnReader[T int16 | int32 | int64](t *Type, stripe StripeStreams) (ColumnReader, error) {
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
	stream, err := stripe.OpenStream(base.columnID, format.StreamData, true)
	if err != nil {
		return nil, err
	}
	if stream == nil {
		return nil, parseErrorf("DATA stream not found in integer column %d", base.columnID)
	}
	rle, err := NewIntegerRleDecoder(stream, true, version, stripe.Metrics())
	if err != nil {
		return nil, err
	}
	return &integerColumnReader[T]{columnReader: base, rle: rle}, nil
}

func (r *integerColumnReader[T]) Next(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	if err := r.nextPresent(batch, numValues, notNull); err != nil {
		return err
	}
	b, err := numericValuesOf[T](batch, r.columnID)
	if err != nil {
		return err
	}
	values := b.Values()
	if out, ok := any(values).([]int64); ok {
		return r.rle.Next(out[:numValues], batchNotNull(batch))
	}
	scratch := memory.GetInt64s(numValues)
	defer memory.PutInt64s(scratch)
	if err := r.rle.Next(scratch.Data[:numValues], batchNotNull(batch)); err != nil {
		return err
	}
	for i := 0; i < numValues; i++ {
		values[i] = T(scratch.Data[i])
	}
	return nil
}

func (r *integerColumnReader[T]) NextEncoded(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	return r.Next(batch, numValues, notNull)
}

func (r *integerColumnReader[T]) Skip(numValues int) (int, error) {
	nonNull, err := r.skipPresent(numValues)
	if err != nil {
		return 0, err
	}
	return nonNull, r.rle.Skip(nonNull)
}

func (r *integerColumnReader[T]) SeekToRowGroup(positions PositionMap) error {
	if err := r.seekPresent(positions); err != nil {
		return err
	}
	return r.rle.Seek(positions[r.columnID])
}
