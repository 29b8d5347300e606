package orc

import (
	"github.com/orc-go/orc-go/format"
	"github.com/orc-go/orc-go/internal/memory"
)

// unionColumnReader decodes union columns. DATA is a byte RLE stream of
// variant tags, one per present row; each child then decodes as many rows
// as its tag occurred, and the batch's offsets map row i to its position in
// child Tags[i].
type unionColumnReader struct {
	columnReader
	rle      ByteRleDecoder
	children []ColumnReader
	counts   []int64
}

func newUnionColumnReader(t *Type, stripe StripeStreams, tightNumeric, throwOnOverflow bool) (ColumnReader, error) {
	base, err := newColumnReader(t, stripe)
	if err != nil {
		return nil, err
	}
	stream, err := stripe.OpenStream(base.columnID, format.StreamData, true)
	if err != nil {
		return nil, err
	}
	if stream == nil {
		return nil, parseErrorf("DATA stream not found in union column %d", base.columnID)
	}
	r := &unionColumnReader{
		columnReader: base,
		rle:          NewByteRleDecoder(stream),
		children:     make([]ColumnReader, t.NumChildren()),
		counts:       make([]int64, t.NumChildren()),
	}
	selected := stripe.SelectedColumns()
	for i := 0; i < t.NumChildren(); i++ {
		child := t.Child(i)
		if selected[child.ColumnID()] {
			r.children[i], err = buildReader(child, stripe, tightNumeric, throwOnOverflow, true)
			if err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}

func (r *unionColumnReader) next(batch ColumnVectorBatch, numValues int, notNull []byte, encoded bool) error {
	if err := r.nextPresent(batch, numValues, notNull); err != nil {
		return err
	}
	b, err := batchAs[*UnionVectorBatch](batch, r.columnID)
	if err != nil {
		return err
	}
	mask := batchNotNull(batch)
	if err := r.rle.Next(b.Tags[:numValues], mask); err != nil {
		return err
	}
	for i := range r.counts {
		r.counts[i] = 0
	}
	numChildren := byte(len(r.children))
	for i := 0; i < numValues; i++ {
		if mask != nil && mask[i] == 0 {
			continue
		}
		tag := b.Tags[i]
		if tag >= numChildren {
			return parseErrorf("union tag %d out of range in column %d", tag, r.columnID)
		}
		b.Offsets[i] = uint64(r.counts[tag])
		r.counts[tag]++
	}
	for i, child := range r.children {
		if child == nil {
			continue
		}
		if encoded {
			err = child.NextEncoded(b.Children[i], int(r.counts[i]), nil)
		} else {
			err = child.Next(b.Children[i], int(r.counts[i]), nil)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *unionColumnReader) Next(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	return r.next(batch, numValues, notNull, false)
}

func (r *unionColumnReader) NextEncoded(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	return r.next(batch, numValues, notNull, true)
}

func (r *unionColumnReader) Skip(numValues int) (int, error) {
	nonNull, err := r.skipPresent(numValues)
	if err != nil {
		return 0, err
	}
	for i := range r.counts {
		r.counts[i] = 0
	}
	buf := memory.GetBytes(1024)
	defer memory.PutBytes(buf)
	remaining := nonNull
	for remaining > 0 {
		chunk := remaining
		if chunk > len(buf.Data) {
			chunk = len(buf.Data)
		}
		if err := r.rle.Next(buf.Data[:chunk], nil); err != nil {
			return 0, err
		}
		for _, tag := range buf.Data[:chunk] {
			if int(tag) >= len(r.counts) {
				return 0, parseErrorf("union tag %d out of range in column %d", tag, r.columnID)
			}
			r.counts[tag]++
		}
		remaining -= chunk
	}
	for i, child := range r.children {
		if r.counts[i] != 0 && child != nil {
			if _, err := child.Skip(int(r.counts[i])); err != nil {
				return 0, err
			}
		}
	}
	return nonNull, nil
}

func (r *unionColumnReader) SeekToRowGroup(positions PositionMap) error {
	if err := r.seekPresent(positions); err != nil {
		return err
	}
	if err := r.rle.Seek(positions[r.columnID]); err != nil {
		return err
	}
	for _, child := range r.children {
		if child != nil {
			if err := child.SeekToRowGroup(positions); err != nil {
				return err
			}
		}
	}
	return nil
}
