// Package format holds the wire-level representation of ORC stripe metadata.
//
// Stripe footers are protocol buffer messages; this package decodes the
// subset the column readers need (the stream directory, the per-column
// encodings, and the writer timezone) directly from the protobuf wire format.
package format

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// StreamKind identifies one of the byte streams stored for a column inside a
// stripe. Values match the Stream.Kind enum of the ORC protobuf definition.
type StreamKind int32

const (
	StreamPresent StreamKind = iota
	StreamData
	StreamLength
	StreamDictionaryData
	StreamDictionaryCount
	StreamSecondary
	StreamRowIndex
	StreamBloomFilter
	StreamBloomFilterUTF8
)

func (k StreamKind) String() string {
	switch k {
	case StreamPresent:
		return "PRESENT"
	case StreamData:
		return "DATA"
	case StreamLength:
		return "LENGTH"
	case StreamDictionaryData:
		return "DICTIONARY_DATA"
	case StreamDictionaryCount:
		return "DICTIONARY_COUNT"
	case StreamSecondary:
		return "SECONDARY"
	case StreamRowIndex:
		return "ROW_INDEX"
	case StreamBloomFilter:
		return "BLOOM_FILTER"
	case StreamBloomFilterUTF8:
		return "BLOOM_FILTER_UTF8"
	default:
		return fmt.Sprintf("StreamKind(%d)", int32(k))
	}
}

// ColumnEncodingKind identifies how a column's values are encoded. The
// DIRECT/DICTIONARY split selects the decoder; the V2 suffix selects the
// second version of the run-length encoding.
type ColumnEncodingKind int32

const (
	EncodingDirect ColumnEncodingKind = iota
	EncodingDictionary
	EncodingDirectV2
	EncodingDictionaryV2
)

func (k ColumnEncodingKind) String() string {
	switch k {
	case EncodingDirect:
		return "DIRECT"
	case EncodingDictionary:
		return "DICTIONARY"
	case EncodingDirectV2:
		return "DIRECT_V2"
	case EncodingDictionaryV2:
		return "DICTIONARY_V2"
	default:
		return fmt.Sprintf("ColumnEncodingKind(%d)", int32(k))
	}
}

// Stream is one entry of a stripe footer's stream directory. Streams are
// stored back to back in the stripe body in directory order.
type Stream struct {
	Kind   StreamKind
	Column uint32
	Length uint64
}

// ColumnEncoding describes the encoding of one column in one stripe.
type ColumnEncoding struct {
	Kind           ColumnEncodingKind
	DictionarySize uint32
}

// StripeFooter is the decoded stripe footer message.
type StripeFooter struct {
	Streams        []Stream
	Columns        []ColumnEncoding
	WriterTimezone string
}

var errTruncated = errors.New("format: truncated stripe footer")

func consumeField(data []byte) (protowire.Number, protowire.Type, int, error) {
	num, typ, n := protowire.ConsumeTag(data)
	if n < 0 {
		return 0, 0, 0, protowire.ParseError(n)
	}
	return num, typ, n, nil
}

// ParseStripeFooter decodes a stripe footer from its protobuf encoding.
func ParseStripeFooter(data []byte) (*StripeFooter, error) {
	footer := new(StripeFooter)
	for len(data) > 0 {
		num, typ, n, err := consumeField(data)
		if err != nil {
			return nil, fmt.Errorf("format: stripe footer: %w", err)
		}
		data = data[n:]
		switch {
		case num == 1 && typ == protowire.BytesType:
			msg, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, errTruncated
			}
			data = data[n:]
			stream, err := parseStream(msg)
			if err != nil {
				return nil, err
			}
			footer.Streams = append(footer.Streams, stream)
		case num == 2 && typ == protowire.BytesType:
			msg, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, errTruncated
			}
			data = data[n:]
			encoding, err := parseColumnEncoding(msg)
			if err != nil {
				return nil, err
			}
			footer.Columns = append(footer.Columns, encoding)
		case num == 3 && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(data)
			if n < 0 {
				return nil, errTruncated
			}
			data = data[n:]
			footer.WriterTimezone = s
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, errTruncated
			}
			data = data[n:]
		}
	}
	return footer, nil
}

func parseStream(data []byte) (Stream, error) {
	var stream Stream
	for len(data) > 0 {
		num, typ, n, err := consumeField(data)
		if err != nil {
			return stream, fmt.Errorf("format: stream entry: %w", err)
		}
		data = data[n:]
		if typ != protowire.VarintType {
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return stream, errTruncated
			}
			data = data[n:]
			continue
		}
		v, n := protowire.ConsumeVarint(data)
		if n < 0 {
			return stream, errTruncated
		}
		data = data[n:]
		switch num {
		case 1:
			stream.Kind = StreamKind(v)
		case 2:
			stream.Column = uint32(v)
		case 3:
			stream.Length = v
		}
	}
	return stream, nil
}

func parseColumnEncoding(data []byte) (ColumnEncoding, error) {
	var encoding ColumnEncoding
	for len(data) > 0 {
		num, typ, n, err := consumeField(data)
		if err != nil {
			return encoding, fmt.Errorf("format: column encoding: %w", err)
		}
		data = data[n:]
		if typ != protowire.VarintType {
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return encoding, errTruncated
			}
			data = data[n:]
			continue
		}
		v, n := protowire.ConsumeVarint(data)
		if n < 0 {
			return encoding, errTruncated
		}
		data = data[n:]
		switch num {
		case 1:
			encoding.Kind = ColumnEncodingKind(v)
		case 2:
			encoding.DictionarySize = uint32(v)
		}
	}
	return encoding, nil
}

// AppendStripeFooter appends the protobuf encoding of footer to b. The writer
// path is out of scope for this library; the encoder exists so stripe footers
// can be constructed for fixtures and tooling.
func AppendStripeFooter(b []byte, footer *StripeFooter) []byte {
	for _, stream := range footer.Streams {
		var msg []byte
		msg = protowire.AppendTag(msg, 1, protowire.VarintType)
		msg = protowire.AppendVarint(msg, uint64(stream.Kind))
		msg = protowire.AppendTag(msg, 2, protowire.VarintType)
		msg = protowire.AppendVarint(msg, uint64(stream.Column))
		msg = protowire.AppendTag(msg, 3, protowire.VarintType)
		msg = protowire.AppendVarint(msg, stream.Length)
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, msg)
	}
	for _, encoding := range footer.Columns {
		var msg []byte
		msg = protowire.AppendTag(msg, 1, protowire.VarintType)
		msg = protowire.AppendVarint(msg, uint64(encoding.Kind))
		msg = protowire.AppendTag(msg, 2, protowire.VarintType)
		msg = protowire.AppendVarint(msg, uint64(encoding.DictionarySize))
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, msg)
	}
	if footer.WriterTimezone != "" {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendString(b, footer.WriterTimezone)
	}
	return b
}
