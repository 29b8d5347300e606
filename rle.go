package orc

import "github.com/orc-go/orc-go/format"

// RleVersion selects between the two run-length encodings used by ORC. The
// version is implied by the column encoding kind rather than stored on the
// stream itself.
type RleVersion int

const (
	RleV1 RleVersion = iota + 1
	RleV2
)

func rleVersionForEncoding(kind format.ColumnEncodingKind) (RleVersion, error) {
	switch kind {
	case format.EncodingDirect, format.EncodingDictionary:
		return RleV1, nil
	case format.EncodingDirectV2, format.EncodingDictionaryV2:
		return RleV2, nil
	default:
		return 0, parseErrorf("unknown column encoding kind %s", kind)
	}
}

// ByteRleDecoder decodes the byte run-length encoding used by boolean
// bit-streams, tinyint columns, and union tag streams.
//
// Next fills out[i] for every i where notNull is nil or notNull[i] != 0;
// null positions consume no encoded value and are left untouched.
type ByteRleDecoder interface {
	Next(out []byte, notNull []byte) error
	Skip(n int) error
	Seek(positions *PositionProvider) error
}

// IntegerRleDecoder decodes integer run-length encodings (v1 or v2) with
// the same null-mask contract as ByteRleDecoder.
type IntegerRleDecoder interface {
	Next(out []int64, notNull []byte) error
	Skip(n int) error
	Seek(positions *PositionProvider) error
}

// NewByteRleDecoder returns a decoder for a byte run-length encoded stream.
func NewByteRleDecoder(stream Stream) ByteRleDecoder {
	return &byteRleDecoder{reader: streamByteReader{stream: stream}}
}

// NewBooleanRleDecoder returns a decoder for a boolean run-length encoded
// stream: a byte RLE stream whose bytes are bit-packed values, most
// significant bit first.
func NewBooleanRleDecoder(stream Stream) ByteRleDecoder {
	return &booleanRleDecoder{rle: byteRleDecoder{reader: streamByteReader{stream: stream}}}
}

// NewIntegerRleDecoder returns a decoder for an integer run-length encoded
// stream of the given version. Signed streams store values zig-zag encoded.
func NewIntegerRleDecoder(stream Stream, signed bool, version RleVersion, metrics *ReaderMetrics) (IntegerRleDecoder, error) {
	switch version {
	case RleV1:
		return &intRleV1Decoder{
			reader:  streamByteReader{stream: stream},
			signed:  signed,
			metrics: metrics,
		}, nil
	case RleV2:
		return &intRleV2Decoder{
			reader:  streamByteReader{stream: stream},
			signed:  signed,
			metrics: metrics,
		}, nil
	default:
		return nil, parseErrorf("unknown RLE version %d", version)
	}
}
