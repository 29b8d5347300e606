package orc

import (
	"io"

	"github.com/orc-go/orc-go/format"
	"github.com/orc-go/orc-go/internal/memory"
)

// stringDirectColumnReader decodes direct-encoded string, char, varchar,
// binary, geometry, and geography columns. LENGTH is unsigned RLE; DATA is
// the concatenated value bytes. Chunks borrowed from DATA can end mid-value,
// so the unconsumed remainder carries over between calls.
type stringDirectColumnReader struct {
	columnReader
	lengthRle  IntegerRleDecoder
	blobStream Stream
	last       []byte
}

func newStringDirectColumnReader(t *Type, stripe StripeStreams) (ColumnReader, error) {
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
		return nil, parseErrorf("LENGTH stream not found in string column %d", base.columnID)
	}
	lengthRle, err := NewIntegerRleDecoder(stream, false, version, stripe.Metrics())
	if err != nil {
		return nil, err
	}
	blobStream, err := stripe.OpenStream(base.columnID, format.StreamData, true)
	if err != nil {
		return nil, err
	}
	if blobStream == nil {
		return nil, parseErrorf("DATA stream not found in string column %d", base.columnID)
	}
	return &stringDirectColumnReader{
		columnReader: base,
		lengthRle:    lengthRle,
		blobStream:   blobStream,
	}, nil
}

// computeSize sums the lengths of the present rows.
func computeSize(lengths []int64, notNull []byte) int64 {
	var total int64
	for i, length := range lengths {
		if notNull == nil || notNull[i] != 0 {
			total += length
		}
	}
	return total
}

func (r *stringDirectColumnReader) Next(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	if err := r.nextPresent(batch, numValues, notNull); err != nil {
		return err
	}
	b, err := batchAs[*StringVectorBatch](batch, r.columnID)
	if err != nil {
		return err
	}
	mask := batchNotNull(batch)
	lengths := b.Length[:numValues]
	if err := r.lengthRle.Next(lengths, mask); err != nil {
		return err
	}
	for i, length := range lengths {
		if (mask == nil || mask[i] != 0) && length < 0 {
			return parseErrorf("negative value length in column %d", r.columnID)
		}
	}
	totalLength := computeSize(lengths, mask)

	// pull bytes into the blob, draining the carried-over chunk first
	b.Blob = growSlice(b.Blob, int(totalLength))
	blob := b.Blob
	buffered := 0
	for buffered+len(r.last) < int(totalLength) {
		buffered += copy(blob[buffered:], r.last)
		chunk, err := r.blobStream.Next()
		if err == io.EOF {
			return parseErrorf("unexpected end of stream %s", r.blobStream.Name())
		}
		if err != nil {
			return err
		}
		r.last = chunk
	}
	if buffered < int(totalLength) {
		more := int(totalLength) - buffered
		copy(blob[buffered:], r.last[:more])
		r.last = r.last[more:]
	}

	var pos int64
	for i := 0; i < numValues; i++ {
		if mask == nil || mask[i] != 0 {
			b.Data[i] = blob[pos : pos+lengths[i]]
			pos += lengths[i]
		}
	}
	return nil
}

func (r *stringDirectColumnReader) NextEncoded(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	return r.Next(batch, numValues, notNull)
}

func (r *stringDirectColumnReader) Skip(numValues int) (int, error) {
	nonNull, err := r.skipPresent(numValues)
	if err != nil {
		return 0, err
	}
	scratch := memory.GetInt64s(1024)
	defer memory.PutInt64s(scratch)
	var totalBytes int64
	done := 0
	for done < nonNull {
		step := nonNull - done
		if step > len(scratch.Data) {
			step = len(scratch.Data)
		}
		if err := r.lengthRle.Next(scratch.Data[:step], nil); err != nil {
			return 0, err
		}
		totalBytes += computeSize(scratch.Data[:step], nil)
		done += step
	}
	if totalBytes <= int64(len(r.last)) {
		r.last = r.last[totalBytes:]
		return nonNull, nil
	}
	totalBytes -= int64(len(r.last))
	r.last = nil
	reader := streamByteReader{stream: r.blobStream}
	if err := reader.skipBytes(totalBytes); err != nil {
		return 0, err
	}
	return nonNull, nil
}

func (r *stringDirectColumnReader) SeekToRowGroup(positions PositionMap) error {
	if err := r.seekPresent(positions); err != nil {
		return err
	}
	if err := r.blobStream.Seek(positions[r.columnID]); err != nil {
		return err
	}
	if err := r.lengthRle.Seek(positions[r.columnID]); err != nil {
		return err
	}
	r.last = nil
	return nil
}
