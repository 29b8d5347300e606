package orc

import "github.com/orc-go/orc-go/format"

// stringDictionaryColumnReader decodes dictionary-encoded string columns.
// The dictionary is assembled once per stripe from the LENGTH and
// DICTIONARY_DATA streams; DATA then carries one dictionary index per row.
// In encoded mode the indices are emitted as-is together with a handle to
// the shared dictionary.
type stringDictionaryColumnReader struct {
	columnReader
	dictionary *StringDictionary
	rle        IntegerRleDecoder
}

func newStringDictionaryColumnReader(t *Type, stripe StripeStreams) (ColumnReader, error) {
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
	dictSize := int(encoding.DictionarySize)

	stream, err := stripe.OpenStream(base.columnID, format.StreamData, true)
	if err != nil {
		return nil, err
	}
	if stream == nil {
		return nil, parseErrorf("DATA stream not found in dictionary column %d", base.columnID)
	}
	rle, err := NewIntegerRleDecoder(stream, false, version, stripe.Metrics())
	if err != nil {
		return nil, err
	}

	stream, err = stripe.OpenStream(base.columnID, format.StreamLength, false)
	if err != nil {
		return nil, err
	}
	if dictSize > 0 && stream == nil {
		return nil, parseErrorf("LENGTH stream not found in dictionary column %d", base.columnID)
	}

	dictionary := &StringDictionary{Offsets: make([]int64, dictSize+1)}
	if dictSize > 0 {
		lengthRle, err := NewIntegerRleDecoder(stream, false, version, stripe.Metrics())
		if err != nil {
			return nil, err
		}
		// decode lengths into the offsets array shifted by one, then turn
		// them into a prefix sum in place
		if err := lengthRle.Next(dictionary.Offsets[1:], nil); err != nil {
			return nil, err
		}
		for i := 1; i <= dictSize; i++ {
			if dictionary.Offsets[i] < 0 {
				return nil, parseErrorf("negative dictionary entry length in column %d", base.columnID)
			}
			dictionary.Offsets[i] += dictionary.Offsets[i-1]
		}
		blobSize := dictionary.Offsets[dictSize]
		blobStream, err := stripe.OpenStream(base.columnID, format.StreamDictionaryData, false)
		if err != nil {
			return nil, err
		}
		if blobSize > 0 && blobStream == nil {
			return nil, parseErrorf("DICTIONARY_DATA stream not found in dictionary column %d", base.columnID)
		}
		dictionary.Blob = make([]byte, blobSize)
		if blobSize > 0 {
			if err := readFully(dictionary.Blob, blobStream); err != nil {
				return nil, err
			}
		}
	}

	return &stringDictionaryColumnReader{
		columnReader: base,
		dictionary:   dictionary,
		rle:          rle,
	}, nil
}

func (r *stringDictionaryColumnReader) Next(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	if err := r.nextPresent(batch, numValues, notNull); err != nil {
		return err
	}
	b, err := batchAs[*StringVectorBatch](batch, r.columnID)
	if err != nil {
		return err
	}
	mask := batchNotNull(batch)
	// the length array doubles as the index buffer before being rewritten
	lengths := b.Length[:numValues]
	if err := r.rle.Next(lengths, mask); err != nil {
		return err
	}
	dictSize := int64(r.dictionary.Size())
	for i := 0; i < numValues; i++ {
		if mask != nil && mask[i] == 0 {
			continue
		}
		entry := lengths[i]
		if entry < 0 || entry >= dictSize {
			return parseErrorf("dictionary entry %d out of range in column %d", entry, r.columnID)
		}
		b.Data[i] = r.dictionary.Entry(int(entry))
		lengths[i] = int64(len(b.Data[i]))
	}
	return nil
}

func (r *stringDictionaryColumnReader) NextEncoded(batch ColumnVectorBatch, numValues int, notNull []byte) error {
	if err := r.nextPresent(batch, numValues, notNull); err != nil {
		return err
	}
	b, err := batchAs[*EncodedStringVectorBatch](batch, r.columnID)
	if err != nil {
		return err
	}
	b.IsEncoded = true
	b.Dictionary = r.dictionary
	return r.rle.Next(b.Index[:numValues], batchNotNull(batch))
}

func (r *stringDictionaryColumnReader) Skip(numValues int) (int, error) {
	nonNull, err := r.skipPresent(numValues)
	if err != nil {
		return 0, err
	}
	return nonNull, r.rle.Skip(nonNull)
}

func (r *stringDictionaryColumnReader) SeekToRowGroup(positions PositionMap) error {
	if err := r.seekPresent(positions); err != nil {
		return err
	}
	return r.rle.Seek(positions[r.columnID])
}
