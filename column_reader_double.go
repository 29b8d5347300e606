package orc

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/orc-go/orc-go/format"
	"github.com/orc-go/orc-go/internal/unsafecast"
)

// hostIsLittleEndian gates the bulk copy fast path of the floating point
// reader, which moves IEEE-754 little-endian payload bytes straight into the
// output vector.
var hostIsLittleEndian = binary.NativeEndian.Uint16([]byte{0x01, 0x02}) == 0x0201

// doubleColumnReader decodes float and double columns. The DATA stream is
// raw little-endian IEEE-754 values, bytesPerValue wide. T is the output
// element type; float columns may widen into float64 vectors.
type doubleColumnReader[T float32 | float64] struct {
	columnReader
	stream        Stream
	buf           []byte
	bytesPerValue int
}

func newDoubleColumnReader[T float32 | float64](t *Type, stripe StripeStreams, bytesPerValue int) (ColumnReader, error) {
	base, err := newColumnReader(t, stripe)
	if err != nil {
		return nil, err
	}
	stream, err := stripe.OpenStream(base.columnID, format.StreamData, true)
	if err != nil {
		return nil, err
	}
	if stream == nil {
		return nil, parseErrorf("DATA stream not found in double column %d", base.columnID)
	}
	return &doubleColumnReader[T]{
		columnReader:  base,
		stream:        stream,
		bytesPerValue: bytesPerValue,
	}, nil
}

func (r *doubleColumnReader[T]) readByte() (byte, error) {
	for len(r.buf) == 0 {
		chunk, err := r.stream.Next()
		if err == io.EOF {
			return 0, parseErrorf("unexpected end of stream %s", r.stream.Name())
		}
		if err != nil {
			return 0, err
		}
		r.buf = chunk
	}
	b := r.buf[0]
	r.buf = r.buf[1:]
	return b, nil
}

func (r *doubleColumnReader[T]) readValue() (T, error) {
	if len(r.buf) >= r.bytesPerValue {
		var v T
		if r.bytesPerValue == 4 {
			v = T(math.Float32frombits(binary.LittleEndian.Uint32(r.buf)))
		} else {
			v = T(math.Float64frombits(binary.LittleEndian.Uint64(r.buf)))
		}
		r.buf = r.buf[r.bytesPerValue:]
		return v, nil
	}
	var bits uint64
	for i := 0; i < r.bytesPerValue; i++ {
		b, err := r.readByte()
		if err != nil {
			return 0, err
		}
		bits |= uint64(b) << uint(i*8)
	}
	if r.bytesPerValue == 4 {
		return T(math.Float32frombits(uint32(bits))), nil
	}
	return T(math.Float64frombits(bits)), nil
}

func (r *doubleColumnReader[T]) Next(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	if err := r.nextPresent(batch, numValues, notNull); err != nil {
		return err
	}
	b, err := numericValuesOf[T](batch, r.columnID)
	if err != nil {
		return err
	}
	values := b.Values()
	mask := batchNotNull(batch)
	if mask != nil {
		for i := 0; i < numValues; i++ {
			if mask[i] == 0 {
				continue
			}
			values[i], err = r.readValue()
			if err != nil {
				return err
			}
		}
		return nil
	}
	start := 0
	// Contiguous doubles with no nulls copy straight out of the stream
	// buffer on little-endian hosts.
	if out, ok := any(values).([]float64); ok && r.bytesPerValue == 8 && hostIsLittleEndian {
		buffered := len(r.buf) / 8
		if buffered > numValues {
			buffered = numValues
		}
		if buffered > 0 {
			copy(unsafecast.Slice[byte](out[:buffered]), r.buf[:buffered*8])
			r.buf = r.buf[buffered*8:]
			start = buffered
		}
	}
	for i := start; i < numValues; i++ {
		values[i], err = r.readValue()
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *doubleColumnReader[T]) NextEncoded(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	return r.Next(batch, numValues, notNull)
}

func (r *doubleColumnReader[T]) Skip(numValues int) (int, error) {
	nonNull, err := r.skipPresent(numValues)
	if err != nil {
		return 0, err
	}
	toSkip := nonNull * r.bytesPerValue
	if toSkip <= len(r.buf) {
		r.buf = r.buf[toSkip:]
		return nonNull, nil
	}
	toSkip -= len(r.buf)
	r.buf = nil
	if err := r.stream.Skip(toSkip); err != nil {
		return 0, err
	}
	return nonNull, nil
}

func (r *doubleColumnReader[T]) SeekToRowGroup(positions PositionMap) error {
	if err := r.seekPresent(positions); err != nil {
		return err
	}
	if err := r.stream.Seek(positions[r.columnID]); err != nil {
		return err
	}
	r.buf = nil
	return nil
}
