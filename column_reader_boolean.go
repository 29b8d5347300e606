package orc

import (
	"github.com/orc-go/orc-go/format"
	"github.com/orc-go/orc-go/internal/unsafecast"
)

// booleanColumnReader decodes a boolean column's bit-packed DATA stream into
// an integer vector of element type T.
//
// The boolean RLE decoder produces one byte per row. Those bytes are written
// into the front of the typed output array, then sign-expanded in place,
// walking backward so the expansion does not clobber bytes it has not read
// yet. Byte columns share the trick, so both readers are built on it.
type booleanColumnReader[T int8 | int64] struct {
	columnReader
	rle ByteRleDecoder
}

func newBooleanColumnReader[T int8 | int64](t *Type, stripe StripeStreams) (ColumnReader, error) {
	base, err := newColumnReader(t, stripe)
	if err != nil {
		return nil, err
	}
	stream, err := stripe.OpenStream(base.columnID, format.StreamData, true)
	if err != nil {
		return nil, err
	}
	if stream == nil {
		return nil, parseErrorf("DATA stream not found in boolean column %d", base.columnID)
	}
	return &booleanColumnReader[T]{columnReader: base, rle: NewBooleanRleDecoder(stream)}, nil
}

func (r *booleanColumnReader[T]) Next(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	if err := r.nextPresent(batch, numValues, notNull); err != nil {
		return err
	}
	b, err := numericValuesOf[T](batch, r.columnID)
	if err != nil {
		return err
	}
	values := b.Values()
	bytes := unsafecast.Slice[byte](values)[:numValues]
	if err := r.rle.Next(bytes, batchNotNull(batch)); err != nil {
		return err
	}
	expandBytesToIntegers(values, numValues)
	return nil
}

func (r *booleanColumnReader[T]) NextEncoded(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	return r.Next(batch, numValues, notNull)
}

func (r *booleanColumnReader[T]) Skip(numValues int) (int, error) {
	nonNull, err := r.skipPresent(numValues)
	if err != nil {
		return 0, err
	}
	return nonNull, r.rle.Skip(nonNull)
}

func (r *booleanColumnReader[T]) SeekToRowGroup(positions PositionMap) error {
	if err := r.seekPresent(positions); err != nil {
		return err
	}
	return r.rle.Seek(positions[r.columnID])
}

// byteColumnReader decodes a tinyint column's byte RLE DATA stream, using
// the same in-place expansion as the boolean reader.
type byteColumnReader[T int8 | int64] struct {
	columnReader
	rle ByteRleDecoder
}

func newByteColumnReader[T int8 | int64](t *Type, stripe StripeStreams) (ColumnReader, error) {
	base, err := newColumnReader(t, stripe)
	if err != nil {
		return nil, err
	}
	stream, err := stripe.OpenStream(base.columnID, format.StreamData, true)
	if err != nil {
		return nil, err
	}
	if stream == nil {
		return nil, parseErrorf("DATA stream not found in byte column %d", base.columnID)
	}
	return &byteColumnReader[T]{columnReader: base, rle: NewByteRleDecoder(stream)}, nil
}

func (r *byteColumnReader[T]) Next(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	if err := r.nextPresent(batch, numValues, notNull); err != nil {
		return err
	}
	b, err := numericValuesOf[T](batch, r.columnID)
	if err != nil {
		return err
	}
	values := b.Values()
	bytes := unsafecast.Slice[byte](values)[:numValues]
	if err := r.rle.Next(bytes, batchNotNull(batch)); err != nil {
		return err
	}
	expandBytesToIntegers(values, numValues)
	return nil
}

func (r *byteColumnReader[T]) NextEncoded(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	return r.Next(batch, numValues, notNull)
}

func (r *byteColumnReader[T]) Skip(numValues int) (int, error) {
	nonNull, err := r.skipPresent(numValues)
	if err != nil {
		return 0, err
	}
	return nonNull, r.rle.Skip(nonNull)
}

func (r *byteColumnReader[T]) SeekToRowGroup(positions PositionMap) error {
	if err := r.seekPresent(positions); err != nil {
		return err
	}
	return r.rle.Seek(positions[r.columnID])
}

// expandBytesToIntegers widens the first numValues bytes of the array to its
// element type in place. The walk is backward so each destination is written
// after its source byte is read.
func expandBytesToIntegers[T int8 | int64](values []T, numValues int) {
	var zero T
	if _, ok := any(zero).(int8); ok {
		return
	}
	bytes := unsafecast.Slice[byte](values)
	for i := numValues - 1; i >= 0; i-- {
		values[i] = T(int8(bytes[i]))
	}
}
