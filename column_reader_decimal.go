package orc

import (
	"fmt"
	"io"

	"github.com/orc-go/orc-go/format"
)

// decimal64ColumnReader decodes decimal columns of up to 18 digits in the
// varint layout: DATA holds one zig-zag varint per value, SECONDARY holds
// each value's scale with signed RLE. Values are rescaled from the scale
// they were written at to the column's declared scale before storing.
type decimal64ColumnReader struct {
	columnReader
	valueStream  Stream
	buf          []byte
	precision    int32
	scale        int32
	scaleDecoder IntegerRleDecoder
}

func newDecimal64Base(t *Type, stripe StripeStreams) (decimal64ColumnReader, error) {
	base, err := newColumnReader(t, stripe)
	if err != nil {
		return decimal64ColumnReader{}, err
	}
	r := decimal64ColumnReader{
		columnReader: base,
		precision:    int32(t.Precision()),
		scale:        int32(t.Scale()),
	}
	r.valueStream, err = stripe.OpenStream(base.columnID, format.StreamData, true)
	if err != nil {
		return r, err
	}
	if r.valueStream == nil {
		return r, parseErrorf("DATA stream not found in decimal column %d", base.columnID)
	}
	encoding, err := stripe.Encoding(base.columnID)
	if err != nil {
		return r, err
	}
	version, err := rleVersionForEncoding(encoding.Kind)
	if err != nil {
		return r, err
	}
	stream, err := stripe.OpenStream(base.columnID, format.StreamSecondary, true)
	if err != nil {
		return r, err
	}
	if stream == nil {
		return r, parseErrorf("SECONDARY stream not found in decimal column %d", base.columnID)
	}
	r.scaleDecoder, err = NewIntegerRleDecoder(stream, true, version, stripe.Metrics())
	return r, err
}

func newDecimal64ColumnReader(t *Type, stripe StripeStreams) (ColumnReader, error) {
	r, err := newDecimal64Base(t, stripe)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *decimal64ColumnReader) readBuffer() error {
	for len(r.buf) == 0 {
		chunk, err := r.valueStream.Next()
		if err == io.EOF {
			return parseErrorf("read past end of stream %s", r.valueStream.Name())
		}
		if err != nil {
			return err
		}
		r.buf = chunk
	}
	return nil
}

func (r *decimal64ColumnReader) readByte() (byte, error) {
	if err := r.readBuffer(); err != nil {
		return 0, err
	}
	b := r.buf[0]
	r.buf = r.buf[1:]
	return b, nil
}

func (r *decimal64ColumnReader) readInt64(currentScale int32) (int64, error) {
	var value uint64
	var offset uint
	for {
		ch, err := r.readByte()
		if err != nil {
			return 0, err
		}
		value |= uint64(ch&0x7f) << offset
		offset += 7
		if ch&0x80 == 0 {
			break
		}
	}
	v := unZigZag(value)
	switch {
	case r.scale > currentScale && r.scale-currentScale <= maxPrecision64:
		v *= powersOfTen[r.scale-currentScale]
	case r.scale < currentScale && currentScale-r.scale <= maxPrecision64:
		v /= powersOfTen[currentScale-r.scale]
	case r.scale != currentScale:
		return 0, parseErrorf("decimal scale out of range in column %d", r.columnID)
	}
	return v, nil
}

func (r *decimal64ColumnReader) Next(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	if err := r.nextPresent(batch, numValues, notNull); err != nil {
		return err
	}
	b, err := batchAs[*Decimal64VectorBatch](batch, r.columnID)
	if err != nil {
		return err
	}
	mask := batchNotNull(batch)
	if err := r.scaleDecoder.Next(b.ReadScales[:numValues], mask); err != nil {
		return err
	}
	b.Precision = r.precision
	b.Scale = r.scale
	for i := 0; i < numValues; i++ {
		if mask != nil && mask[i] == 0 {
			continue
		}
		b.Values[i], err = r.readInt64(int32(b.ReadScales[i]))
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *decimal64ColumnReader) NextEncoded(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	return r.Next(batch, numValues, notNull)
}

// skipValues advances past n varints by counting terminator bytes, the ones
// with the continuation bit clear.
func (r *decimal64ColumnReader) skipValues(n int) error {
	skipped := 0
	for skipped < n {
		if err := r.readBuffer(); err != nil {
			return err
		}
		if r.buf[0]&0x80 == 0 {
			skipped++
		}
		r.buf = r.buf[1:]
	}
	return nil
}

func (r *decimal64ColumnReader) Skip(numValues int) (int, error) {
	nonNull, err := r.skipPresent(numValues)
	if err != nil {
		return 0, err
	}
	if err := r.skipValues(nonNull); err != nil {
		return 0, err
	}
	return nonNull, r.scaleDecoder.Skip(nonNull)
}

func (r *decimal64ColumnReader) SeekToRowGroup(positions PositionMap) error {
	if err := r.seekPresent(positions); err != nil {
		return err
	}
	if err := r.valueStream.Seek(positions[r.columnID]); err != nil {
		return err
	}
	if err := r.scaleDecoder.Seek(positions[r.columnID]); err != nil {
		return err
	}
	r.buf = nil
	return nil
}

// decimal128ColumnReader extends the varint layout to 38 digits, reading
// each varint into an Int128 accumulator.
type decimal128ColumnReader struct {
	decimal64ColumnReader
}

func newDecimal128ColumnReader(t *Type, stripe StripeStreams) (ColumnReader, error) {
	base, err := newDecimal64Base(t, stripe)
	if err != nil {
		return nil, err
	}
	return &decimal128ColumnReader{decimal64ColumnReader: base}, nil
}

func (r *decimal128ColumnReader) readInt128(currentScale int32) (Int128, error) {
	var value Int128
	var offset uint
	for {
		ch, err := r.readByte()
		if err != nil {
			return value, err
		}
		value.orShifted(uint64(ch&0x7f), offset)
		offset += 7
		if ch&0x80 == 0 {
			break
		}
	}
	value.unZigZag()
	return scaleInt128(value, int(r.scale), int(currentScale)), nil
}

func (r *decimal128ColumnReader) Next(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	if err := r.nextPresent(batch, numValues, notNull); err != nil {
		return err
	}
	b, err := batchAs[*Decimal128VectorBatch](batch, r.columnID)
	if err != nil {
		return err
	}
	mask := batchNotNull(batch)
	if err := r.scaleDecoder.Next(b.ReadScales[:numValues], mask); err != nil {
		return err
	}
	b.Precision = r.precision
	b.Scale = r.scale
	for i := 0; i < numValues; i++ {
		if mask != nil && mask[i] == 0 {
			continue
		}
		b.Values[i], err = r.readInt128(int32(b.ReadScales[i]))
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *decimal128ColumnReader) NextEncoded(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	return r.Next(batch, numValues, notNull)
}

// decimal64V2ColumnReader decodes the decimal-as-long layout: DIRECT_V2
// columns whose values are ordinary signed RLE v2 longs already at the
// declared scale, with no SECONDARY stream.
type decimal64V2ColumnReader struct {
	columnReader
	valueDecoder IntegerRleDecoder
	precision    int32
	scale        int32
}

func newDecimal64V2ColumnReader(t *Type, stripe StripeStreams) (ColumnReader, error) {
	base, err := newColumnReader(t, stripe)
	if err != nil {
		return nil, err
	}
	stream, err := stripe.OpenStream(base.columnID, format.StreamData, true)
	if err != nil {
		return nil, err
	}
	if stream == nil {
		return nil, parseErrorf("DATA stream not found in decimal column %d", base.columnID)
	}
	valueDecoder, err := NewIntegerRleDecoder(stream, true, RleV2, stripe.Metrics())
	if err != nil {
		return nil, err
	}
	return &decimal64V2ColumnReader{
		columnReader: base,
		valueDecoder: valueDecoder,
		precision:    int32(t.Precision()),
		scale:        int32(t.Scale()),
	}, nil
}

func (r *decimal64V2ColumnReader) Next(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	if err := r.nextPresent(batch, numValues, notNull); err != nil {
		return err
	}
	b, err := batchAs[*Decimal64VectorBatch](batch, r.columnID)
	if err != nil {
		return err
	}
	if err := r.valueDecoder.Next(b.Values[:numValues], batchNotNull(batch)); err != nil {
		return err
	}
	b.Precision = r.precision
	b.Scale = r.scale
	return nil
}

func (r *decimal64V2ColumnReader) NextEncoded(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	return r.Next(batch, numValues, notNull)
}

func (r *decimal64V2ColumnReader) Skip(numValues int) (int, error) {
	nonNull, err := r.skipPresent(numValues)
	if err != nil {
		return 0, err
	}
	return nonNull, r.valueDecoder.Skip(nonNull)
}

func (r *decimal64V2ColumnReader) SeekToRowGroup(positions PositionMap) error {
	if err := r.seekPresent(positions); err != nil {
		return err
	}
	return r.valueDecoder.Seek(positions[r.columnID])
}

// Hive 0.11 decimals are unbounded on the wire, so the reader enforces the
// 38-digit range of the modern type.
var (
	hive11DecimalMin = NewInt128(-0x4b3b4ca85a86c47b, 0xf675ddc000000001)
	hive11DecimalMax = NewInt128(0x4b3b4ca85a86c47a, 0x098a223fffffffff)
)

// decimalHive11ColumnReader decodes decimal columns written by Hive 0.11,
// which recorded neither precision nor scale. The scale is forced
// stripe-wide by the caller, and values beyond 38 digits either fail the
// read or are coerced to null with a warning, depending on policy.
type decimalHive11ColumnReader struct {
	decimal64ColumnReader
	throwOnOverflow bool
	errWriter       io.Writer
}

func newDecimalHive11ColumnReader(t *Type, stripe StripeStreams) (ColumnReader, error) {
	base, err := newDecimal64Base(t, stripe)
	if err != nil {
		return nil, err
	}
	base.scale = stripe.ForcedScaleOnHive11Decimal()
	return &decimalHive11ColumnReader{
		decimal64ColumnReader: base,
		throwOnOverflow:       stripe.ThrowOnHive11DecimalOverflow(),
		errWriter:             stripe.ErrorWriter(),
	}, nil
}

// readInt128 reads one value and reports whether it fits 38 digits. The
// byte-count check flags values that overran 128 bits during accumulation;
// the stream is still drained to the terminator byte so later rows stay
// aligned.
func (r *decimalHive11ColumnReader) readInt128(currentScale int32) (Int128, bool, error) {
	var value Int128
	var offset uint
	ok := true
	for {
		ch, err := r.readByte()
		if err != nil {
			return value, false, err
		}
		work := uint64(ch & 0x7f)
		if offset > 128 || (offset == 126 && work > 3) {
			ok = false
		}
		value.orShifted(work, offset)
		offset += 7
		if ch&0x80 == 0 {
			break
		}
	}
	if !ok {
		return value, false, nil
	}
	value.unZigZag()
	value = scaleInt128(value, int(r.scale), int(currentScale))
	ok = value.Cmp(hive11DecimalMin) >= 0 && value.Cmp(hive11DecimalMax) <= 0
	return value, ok, nil
}

func (r *decimalHive11ColumnReader) Next(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	if err := r.nextPresent(batch, numValues, notNull); err != nil {
		return err
	}
	b, err := batchAs[*Decimal128VectorBatch](batch, r.columnID)
	if err != nil {
		return err
	}
	mask := batchNotNull(batch)
	if err := r.scaleDecoder.Next(b.ReadScales[:numValues], mask); err != nil {
		return err
	}
	b.Precision = r.precision
	b.Scale = r.scale
	for i := 0; i < numValues; i++ {
		if mask != nil && mask[i] == 0 {
			continue
		}
		value, ok, err := r.readInt128(int32(b.ReadScales[i]))
		if err != nil {
			return err
		}
		if !ok {
			if r.throwOnOverflow {
				return parseErrorf("Hive 0.11 decimal in column %d was more than 38 digits", r.columnID)
			}
			fmt.Fprintf(r.errWriter, "Warning: Hive 0.11 decimal with more than 38 digits replaced by NULL.\n")
			if !b.HasNulls() {
				// the mask was not written when the batch had no nulls, so
				// mark every row present before nulling this one
				rowMask := b.NotNull()
				for j := 0; j < numValues; j++ {
					rowMask[j] = 1
				}
				b.SetHasNulls(true)
			}
			b.NotNull()[i] = 0
			continue
		}
		b.Values[i] = value
	}
	return nil
}

func (r *decimalHive11ColumnReader) NextEncoded(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	return r.Next(batch, numValues, notNull)
}
