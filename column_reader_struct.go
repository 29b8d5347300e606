package orc

import "github.com/orc-go/orc-go/format"

// structColumnReader decodes struct columns, which have no payload stream
// of their own: the computed mask is handed to every selected child with
// the same row count.
type structColumnReader struct {
	columnReader
	children []ColumnReader
}

func newStructColumnReader(t *Type, stripe StripeStreams, tightNumeric, throwOnOverflow bool) (ColumnReader, error) {
	base, err := newColumnReader(t, stripe)
	if err != nil {
		return nil, err
	}
	encoding, err := stripe.Encoding(base.columnID)
	if err != nil {
		return nil, err
	}
	if encoding.Kind != format.EncodingDirect {
		return nil, parseErrorf("unknown encoding %s for struct column %d", encoding.Kind, base.columnID)
	}
	r := &structColumnReader{columnReader: base}
	selected := stripe.SelectedColumns()
	for i := 0; i < t.NumChildren(); i++ {
		child := t.Child(i)
		if selected[child.ColumnID()] {
			reader, err := buildReader(child, stripe, tightNumeric, throwOnOverflow, true)
			if err != nil {
				return nil, err
			}
			r.children = append(r.children, reader)
		}
	}
	return r, nil
}

func (r *structColumnReader) next(batch ColumnVectorBatch, numValues int, notNull []byte, encoded bool) error {
	if err := r.nextPresent(batch, numValues, notNull); err != nil {
		return err
	}
	b, err := batchAs[*StructVectorBatch](batch, r.columnID)
	if err != nil {
		return err
	}
	mask := batchNotNull(batch)
	for i, child := range r.children {
		if encoded {
			err = child.NextEncoded(b.Fields[i], numValues, mask)
		} else {
			err = child.Next(b.Fields[i], numValues, mask)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *structColumnReader) Next(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	return r.next(batch, numValues, notNull, false)
}

func (r *structColumnReader) NextEncoded(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	return r.next(batch, numValues, notNull, true)
}

func (r *structColumnReader) Skip(numValues int) (int, error) {
	nonNull, err := r.skipPresent(numValues)
	if err != nil {
		return 0, err
	}
	for _, child := range r.children {
		if _, err := child.Skip(nonNull); err != nil {
			return 0, err
		}
	}
	return nonNull, nil
}

func (r *structColumnReader) SeekToRowGroup(positions PositionMap) error {
	if err := r.seekPresent(positions); err != nil {
		return err
	}
	for _, child := range r.children {
		if err := child.SeekToRowGroup(positions); err != nil {
			return err
		}
	}
	return nil
}
