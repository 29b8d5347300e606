package orc

import "github.com/orc-go/orc-go/format"

// timestampColumnReader decodes timestamp columns. DATA holds seconds
// relative to the writer's epoch (2015-01-01 in the writer's zone) with
// signed RLE; SECONDARY holds nanoseconds with unsigned RLE, the low three
// bits of each value coding the trailing decimal zeros removed by the writer
// (a nonzero code z stands for z+1 zeros).
//
// TIMESTAMP_INSTANT columns force both sides to GMT; plain timestamps are
// wall-clock values and get shifted when reader and writer zone rules
// differ at the instant being read.
type timestampColumnReader struct {
	columnReader
	secondsRle     IntegerRleDecoder
	nanoRle        IntegerRleDecoder
	writerTimezone *Timezone
	readerTimezone *Timezone
	epochOffset    int64
	sameTimezone   bool
}

func newTimestampColumnReader(t *Type, stripe StripeStreams, instant bool) (ColumnReader, error) {
	base, err := newColumnReader(t, stripe)
	if err != nil {
		return nil, err
	}
	writerTZ := stripe.WriterTimezone()
	readerTZ := stripe.ReaderTimezone()
	if instant {
		writerTZ = GMT
		readerTZ = GMT
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
		return nil, parseErrorf("DATA stream not found in timestamp column %d", base.columnID)
	}
	secondsRle, err := NewIntegerRleDecoder(stream, true, version, stripe.Metrics())
	if err != nil {
		return nil, err
	}
	stream, err = stripe.OpenStream(base.columnID, format.StreamSecondary, true)
	if err != nil {
		return nil, err
	}
	if stream == nil {
		return nil, parseErrorf("SECONDARY stream not found in timestamp column %d", base.columnID)
	}
	nanoRle, err := NewIntegerRleDecoder(stream, false, version, stripe.Metrics())
	if err != nil {
		return nil, err
	}
	return &timestampColumnReader{
		columnReader:   base,
		secondsRle:     secondsRle,
		nanoRle:        nanoRle,
		writerTimezone: writerTZ,
		readerTimezone: readerTZ,
		epochOffset:    writerTZ.Epoch(),
		sameTimezone:   writerTZ == readerTZ,
	}, nil
}

func (r *timestampColumnReader) Next(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	if err := r.nextPresent(batch, numValues, notNull); err != nil {
		return err
	}
	b, err := batchAs[*TimestampVectorBatch](batch, r.columnID)
	if err != nil {
		return err
	}
	mask := batchNotNull(batch)
	secs := b.Data
	nanos := b.Nanoseconds
	if err := r.secondsRle.Next(secs[:numValues], mask); err != nil {
		return err
	}
	if err := r.nanoRle.Next(nanos[:numValues], mask); err != nil {
		return err
	}
	for i := 0; i < numValues; i++ {
		if mask != nil && mask[i] == 0 {
			continue
		}
		zeros := nanos[i] & 0x7
		nanos[i] >>= 3
		if zeros != 0 {
			for j := int64(0); j <= zeros; j++ {
				nanos[i] *= 10
			}
		}
		writerTime := secs[i] + r.epochOffset
		if !r.sameTimezone {
			// shift to the same wall clock reading when the zone rules differ
			wv := r.writerTimezone.Variant(writerTime)
			rv := r.readerTimezone.Variant(writerTime)
			if !wv.HasSameRule(rv) {
				// the shift itself can cross a DST boundary in the reader
				// zone, so look up the offset again at the adjusted instant
				adjustedTime := writerTime + wv.GmtOffset - rv.GmtOffset
				adjustedReader := r.readerTimezone.Variant(adjustedTime)
				writerTime = writerTime + wv.GmtOffset - adjustedReader.GmtOffset
			}
		}
		secs[i] = writerTime
		if secs[i] < 0 && nanos[i] > 999999 {
			secs[i]--
		}
	}
	return nil
}

func (r *timestampColumnReader) NextEncoded(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	return r.Next(batch, numValues, notNull)
}

func (r *timestampColumnReader) Skip(numValues int) (int, error) {
	nonNull, err := r.skipPresent(numValues)
	if err != nil {
		return 0, err
	}
	if err := r.secondsRle.Skip(nonNull); err != nil {
		return 0, err
	}
	return nonNull, r.nanoRle.Skip(nonNull)
}

func (r *timestampColumnReader) SeekToRowGroup(positions PositionMap) error {
	if err := r.seekPresent(positions); err != nil {
		return err
	}
	if err := r.secondsRle.Seek(positions[r.columnID]); err != nil {
		return err
	}
	return r.nanoRle.Seek(positions[r.columnID])
}
