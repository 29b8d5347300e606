// Package compress provides the block codecs used by ORC stripes.
//
// Streams inside a stripe are cut into compression blocks; each block is
// decoded independently, so codecs only expose a one-shot Decode. The zlib
// kind is raw DEFLATE without the zlib wrapper, per the ORC specification.
package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Kind is the compression algorithm recorded in the file postscript.
// Values match the CompressionKind enum of the ORC protobuf definition.
type Kind int32

const (
	None Kind = iota
	Zlib
	Snappy
	Lzo
	Lz4
	Zstd
)

func (k Kind) String() string {
	switch k {
	case None:
		return "NONE"
	case Zlib:
		return "ZLIB"
	case Snappy:
		return "SNAPPY"
	case Lzo:
		return "LZO"
	case Lz4:
		return "LZ4"
	case Zstd:
		return "ZSTD"
	default:
		return fmt.Sprintf("Kind(%d)", int32(k))
	}
}

// Codec decodes single compression blocks.
type Codec interface {
	// Name returns the codec's CompressionKind name.
	Name() string

	// Decode decompresses src into dst and returns the decompressed bytes.
	// dst's capacity is the block size negotiated at file open; codecs may
	// return a slice of dst or an internally grown buffer.
	Decode(dst, src []byte) ([]byte, error)
}

// Lookup returns the codec for the given kind. None maps to a nil codec,
// meaning streams are stored without block framing.
func Lookup(kind Kind) (Codec, error) {
	switch kind {
	case None:
		return nil, nil
	case Zlib:
		return zlibCodec{}, nil
	case Snappy:
		return snappyCodec{}, nil
	case Lz4:
		return lz4Codec{}, nil
	case Zstd:
		return newZstdCodec()
	default:
		return nil, fmt.Errorf("compress: no codec for %s", kind)
	}
}

type zlibCodec struct{}

func (zlibCodec) Name() string { return "ZLIB" }

func (zlibCodec) Decode(dst, src []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(src))
	defer r.Close()
	dst = dst[:0]
	var scratch [4096]byte
	for {
		n, err := r.Read(scratch[:])
		dst = append(dst, scratch[:n]...)
		if err == io.EOF {
			return dst, nil
		}
		if err != nil {
			return nil, fmt.Errorf("compress: zlib: %w", err)
		}
	}
}

type snappyCodec struct{}

func (snappyCodec) Name() string { return "SNAPPY" }

func (snappyCodec) Decode(dst, src []byte) ([]byte, error) {
	out, err := snappy.Decode(dst[:cap(dst)], src)
	if err != nil {
		return nil, fmt.Errorf("compress: snappy: %w", err)
	}
	return out, nil
}

type lz4Codec struct{}

func (lz4Codec) Name() string { return "LZ4" }

func (lz4Codec) Decode(dst, src []byte) ([]byte, error) {
	n, err := lz4.UncompressBlock(src, dst[:cap(dst)])
	if err != nil {
		return nil, fmt.Errorf("compress: lz4: %w", err)
	}
	return dst[:n], nil
}

type zstdCodec struct {
	decoder *zstd.Decoder
}

func newZstdCodec() (Codec, error) {
	decoder, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
	)
	if err != nil {
		return nil, fmt.Errorf("compress: zstd: %w", err)
	}
	return zstdCodec{decoder: decoder}, nil
}

func (c zstdCodec) Name() string { return "ZSTD" }

func (c zstdCodec) Decode(dst, src []byte) ([]byte, error) {
	out, err := c.decoder.DecodeAll(src, dst[:0])
	if err != nil {
		return nil, fmt.Errorf("compress: zstd: %w", err)
	}
	return out, nil
}
