package orc

import (
	"github.com/orc-go/orc-go/format"
	"github.com/orc-go/orc-go/internal/memory"
)

// ColumnReader decodes one column of one stripe into vector batches. A
// reader owns its substreams for the stripe's lifetime and is not safe for
// concurrent use; independent stripes get independent reader trees.
type ColumnReader interface {
	// Next decodes numValues logical rows into batch. notNull, when not
	// nil, is the parent's presence mask over those rows; a row is present
	// only when both the parent mask and the column's own PRESENT stream
	// say so.
	Next(batch ColumnVectorBatch, numValues int, notNull []byte) error

	// NextEncoded is Next, except dictionary-encoded string columns emit
	// dictionary indices plus a shared dictionary handle instead of
	// materialized strings. Composite readers recurse in encoded mode.
	NextEncoded(batch ColumnVectorBatch, numValues int, notNull []byte) error

	// Skip advances past numValues logical rows and returns the number of
	// non-null payload values consumed, leaving every owned stream aligned
	// for the following call.
	Skip(numValues int) (int, error)

	// SeekToRowGroup repositions every owned substream to the row group
	// whose positions the map holds, then recurses into children.
	SeekToRowGroup(positions PositionMap) error
}

// columnReader carries the state shared by every decoder: the column id,
// the PRESENT stream decoder when the column has one, and the metrics sink.
type columnReader struct {
	columnID       int
	notNullDecoder ByteRleDecoder
	metrics        *ReaderMetrics
}

func newColumnReader(t *Type, stripe StripeStreams) (columnReader, error) {
	r := columnReader{columnID: t.ColumnID(), metrics: stripe.Metrics()}
	stream, err := stripe.OpenStream(r.columnID, format.StreamPresent, true)
	if err != nil {
		return r, err
	}
	if stream != nil {
		r.notNullDecoder = NewBooleanRleDecoder(stream)
	}
	return r, nil
}

// nextPresent establishes batch's null mask for numValues rows, combining
// the column's PRESENT stream with the incoming parent mask, and sizes the
// batch. It mirrors the head of every decoder's Next.
func (r *columnReader) nextPresent(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	if numValues > batch.Capacity() {
		batch.Resize(numValues)
	}
	batch.SetNumElements(numValues)
	r.metrics.addDecoded(numValues)
	mask := batch.NotNull()
	if r.notNullDecoder != nil {
		if notNull != nil {
			copy(mask[:numValues], notNull[:numValues])
		} else {
			for i := 0; i < numValues; i++ {
				mask[i] = 1
			}
		}
		if err := r.notNullDecoder.Next(mask[:numValues], notNull); err != nil {
			return err
		}
		for i := 0; i < numValues; i++ {
			if mask[i] == 0 {
				batch.SetHasNulls(true)
				return nil
			}
		}
	} else if notNull != nil {
		batch.SetHasNulls(true)
		copy(mask[:numValues], notNull[:numValues])
		return nil
	}
	batch.SetHasNulls(false)
	return nil
}

// batchNotNull returns the mask payload decoders should pass to their
// substream decoders: nil when the batch has no nulls.
func batchNotNull(batch ColumnVectorBatch) []byte {
	if batch.HasNulls() {
		return batch.NotNull()[:batch.NumElements()]
	}
	return nil
}

// skipPresent pages through numValues entries of the PRESENT stream and
// returns how many of them are non-null, which is the number of payload
// values the caller must discard.
func (r *columnReader) skipPresent(numValues int) (int, error) {
	r.metrics.addSkipped(numValues)
	if r.notNullDecoder == nil {
		return numValues, nil
	}
	buf := memory.GetBytes(4096)
	defer memory.PutBytes(buf)
	remaining := numValues
	nonNull := numValues
	for remaining > 0 {
		chunk := remaining
		if chunk > len(buf.Data) {
			chunk = len(buf.Data)
		}
		if err := r.notNullDecoder.Next(buf.Data[:chunk], nil); err != nil {
			return 0, err
		}
		for _, b := range buf.Data[:chunk] {
			if b == 0 {
				nonNull--
			}
		}
		remaining -= chunk
	}
	return nonNull, nil
}

func (r *columnReader) seekPresent(positions PositionMap) error {
	r.metrics.addSeek()
	if r.notNullDecoder != nil {
		return r.notNullDecoder.Seek(positions[r.columnID])
	}
	return nil
}

// NewColumnReader materializes the decoder tree for the type rooted at t
// over one stripe. When tightNumeric is set, boolean, byte, smallint, int,
// and float columns decode into narrow vectors. throwOnOverflow controls
// whether schema evolution conversions fail or saturate on narrowing loss.
func NewColumnReader(t *Type, stripe StripeStreams, tightNumeric, throwOnOverflow bool) (ColumnReader, error) {
	return buildReader(t, stripe, tightNumeric, throwOnOverflow, true)
}

func buildReader(t *Type, stripe StripeStreams, tightNumeric, throwOnOverflow, convertToReadType bool) (ColumnReader, error) {
	if convertToReadType {
		if evolution := stripe.Evolution(); evolution != nil && evolution.NeedConvert(t) {
			return evolution.NewConvertReader(t, stripe, tightNumeric, throwOnOverflow)
		}
	}

	switch t.Kind() {
	case Boolean:
		if tightNumeric {
			return newBooleanColumnReader[int8](t, stripe)
		}
		return newBooleanColumnReader[int64](t, stripe)
	case Byte:
		if tightNumeric {
			return newByteColumnReader[int8](t, stripe)
		}
		return newByteColumnReader[int64](t, stripe)
	case Short:
		if tightNumeric {
			return newIntegerColumnReader[int16](t, stripe)
		}
		return newIntegerColumnReader[int64](t, stripe)
	case Int:
		if tightNumeric {
			return newIntegerColumnReader[int32](t, stripe)
		}
		return newIntegerColumnReader[int64](t, stripe)
	case Long, Date:
		return newIntegerColumnReader[int64](t, stripe)
	case Float:
		if tightNumeric {
			return newDoubleColumnReader[float32](t, stripe, 4)
		}
		return newDoubleColumnReader[float64](t, stripe, 4)
	case Double:
		return newDoubleColumnReader[float64](t, stripe, 8)
	case String, Binary, Varchar, Char, Geometry, Geography:
		encoding, err := stripe.Encoding(t.ColumnID())
		if err != nil {
			return nil, err
		}
		switch encoding.Kind {
		case format.EncodingDictionary, format.EncodingDictionaryV2:
			return newStringDictionaryColumnReader(t, stripe)
		case format.EncodingDirect, format.EncodingDirectV2:
			return newStringDirectColumnReader(t, stripe)
		default:
			return nil, unsupportedErrorf("string encoding %s for column %d", encoding.Kind, t.ColumnID())
		}
	case Timestamp:
		return newTimestampColumnReader(t, stripe, false)
	case TimestampInstant:
		return newTimestampColumnReader(t, stripe, true)
	case Decimal:
		// precision 0 marks a file written by Hive 0.11, which recorded
		// neither precision nor scale
		if t.Precision() == 0 {
			return newDecimalHive11ColumnReader(t, stripe)
		}
		if t.Precision() <= maxPrecision64 {
			if stripe.DecimalAsLong() {
				return newDecimal64V2ColumnReader(t, stripe)
			}
			return newDecimal64ColumnReader(t, stripe)
		}
		return newDecimal128ColumnReader(t, stripe)
	case List:
		return newListColumnReader(t, stripe, tightNumeric, throwOnOverflow)
	case Map:
		return newMapColumnReader(t, stripe, tightNumeric, throwOnOverflow)
	case Struct:
		return newStructColumnReader(t, stripe, tightNumeric, throwOnOverflow)
	case Union:
		return newUnionColumnReader(t, stripe, tightNumeric, throwOnOverflow)
	default:
		return nil, unsupportedErrorf("no reader for type %s", t.Kind())
	}
}

// batchAs narrows a ColumnVectorBatch to the concrete type a decoder
// produces, reporting a parse error instead of panicking when the caller
// supplied a mismatched batch tree.
func batchAs[T any](batch ColumnVectorBatch, columnID int) (T, error) {
	b, ok := batch.(T)
	if !ok {
		var zero T
		return zero, parseErrorf("wrong batch type %T for column %d", batch, columnID)
	}
	return b, nil
}

// numericValuesOf narrows a batch to a numeric vector with element type T.
func numericValuesOf[T numericValue](batch ColumnVectorBatch, columnID int) (numericVector[T], error) {
	b, ok := batch.(numericVector[T])
	if !ok {
		return nil, parseErrorf("wrong batch type %T for column %d", batch, columnID)
	}
	return b, nil
}
