package orc

import "github.com/orc-go/orc-go/format"

// mapColumnReader decodes map columns with the same LENGTH semantics as
// lists; the key and value children both decode the total entry count, and
// either may be unselected.
type mapColumnReader struct {
	columnReader
	rle           IntegerRleDecoder
	keyReader     ColumnReader
	elementReader ColumnReader
}

func newMapColumnReader(t *Type, stripe StripeStreams, tightNumeric, throwOnOverflow bool) (ColumnReader, error) {
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
		return nil, parseErrorf("LENGTH stream not found in map column %d", base.columnID)
	}
	rle, err := NewIntegerRleDecoder(stream, false, version, stripe.Metrics())
	if err != nil {
		return nil, err
	}
	r := &mapColumnReader{columnReader: base, rle: rle}
	selected := stripe.SelectedColumns()
	keyType := t.Child(0)
	if selected[keyType.ColumnID()] {
		r.keyReader, err = buildReader(keyType, stripe, tightNumeric, throwOnOverflow, true)
		if err != nil {
			return nil, err
		}
	}
	elementType := t.Child(1)
	if selected[elementType.ColumnID()] {
		r.elementReader, err = buildReader(elementType, stripe, tightNumeric, throwOnOverflow, true)
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *mapColumnReader) next(batch ColumnVectorBatch, numValues int, notNull []byte, encoded bool) error {
	if err := r.nextPresent(batch, numValues, notNull); err != nil {
		return err
	}
	b, err := batchAs[*MapVectorBatch](batch, r.columnID)
	if err != nil {
		return err
	}
	mask := batchNotNull(batch)
	if err := r.rle.Next(b.Offsets[:numValues], mask); err != nil {
		return err
	}
	total := lengthsToOffsets(b.Offsets, numValues, mask)
	if r.keyReader != nil {
		if encoded {
			err = r.keyReader.NextEncoded(b.Keys, int(total), nil)
		} else {
			err = r.keyReader.Next(b.Keys, int(total), nil)
		}
		if err != nil {
			return err
		}
	}
	if r.elementReader != nil {
		if encoded {
			return r.elementReader.NextEncoded(b.Elements, int(total), nil)
		}
		return r.elementReader.Next(b.Elements, int(total), nil)
	}
	return nil
}

func (r *mapColumnReader) Next(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	return r.next(batch, numValues, notNull, false)
}

func (r *mapColumnReader) NextEncoded(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	return r.next(batch, numValues, notNull, true)
}

func (r *mapColumnReader) Skip(numValues int) (int, error) {
	nonNull, err := r.skipPresent(numValues)
	if err != nil {
		return 0, err
	}
	if r.keyReader == nil && r.elementReader == nil {
		return nonNull, r.rle.Skip(nonNull)
	}
	total, err := sumLengths(r.rle, nonNull)
	if err != nil {
		return 0, err
	}
	if r.keyReader != nil {
		if _, err := r.keyReader.Skip(int(total)); err != nil {
			return 0, err
		}
	}
	if r.elementReader != nil {
		if _, err := r.elementReader.Skip(int(total)); err != nil {
			return 0, err
		}
	}
	return nonNull, nil
}

func (r *mapColumnReader) SeekToRowGroup(positions PositionMap) error {
	if err := r.seekPresent(positions); err != nil {
		return err
	}
	if err := r.rle.Seek(positions[r.columnID]); err != nil {
		return err
	}
	if r.keyReader != nil {
		if err := r.keyReader.SeekToRowGroup(positions); err != nil {
			return err
		}
	}
	if r.elementReader != nil {
		return r.elementReader.SeekToRowGroup(positions)
	}
	return nil
}
