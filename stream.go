package orc

import (
	"io"
	"math"

	"github.com/orc-go/orc-go/compress"
)

// PositionProvider yields the integer checkpoints recorded in a row-group
// index entry. Each stream consumes its cursors in a fixed order: a
// compressed stream takes a block offset then an uncompressed offset, an
// uncompressed stream takes a single byte offset, and the run-length
// decoders take additional sub-cursors after their stream.
type PositionProvider struct {
	positions []uint64
	index     int
}

// NewPositionProvider returns a provider over the given checkpoint values.
func NewPositionProvider(positions []uint64) *PositionProvider {
	return &PositionProvider{positions: positions}
}

// Next consumes and returns the next checkpoint. Consuming past the end is a
// caller bug and panics.
func (p *PositionProvider) Next() uint64 {
	v := p.positions[p.index]
	p.index++
	return v
}

// PositionMap holds one PositionProvider per column id for a row-group seek.
type PositionMap map[int]*PositionProvider

// Stream is a seekable byte stream belonging to one column of one stripe.
// Next hands out borrowed chunks that stay valid until the following call.
type Stream interface {
	// Next returns the next chunk of the stream, or io.EOF when exhausted.
	Next() ([]byte, error)

	// Skip advances the stream by n bytes.
	Skip(n int) error

	// Seek repositions the stream to the checkpoint the provider yields.
	Seek(positions *PositionProvider) error

	// Name identifies the stream in errors, e.g. "column 3 DATA".
	Name() string
}

type bufferStream struct {
	name   string
	data   []byte
	offset int
	chunk  int
}

// NewBufferStream returns an in-memory Stream over data.
func NewBufferStream(name string, data []byte) Stream {
	return &bufferStream{name: name, data: data}
}

// NewChunkedBufferStream returns an in-memory Stream that hands out at most
// chunkSize bytes per Next call, so callers' carry-over handling gets
// exercised the way a buffered file stream would.
func NewChunkedBufferStream(name string, data []byte, chunkSize int) Stream {
	return &bufferStream{name: name, data: data, chunk: chunkSize}
}

func (s *bufferStream) Next() ([]byte, error) {
	if s.offset >= len(s.data) {
		return nil, io.EOF
	}
	end := len(s.data)
	if s.chunk > 0 && s.offset+s.chunk < end {
		end = s.offset + s.chunk
	}
	out := s.data[s.offset:end]
	s.offset = end
	return out, nil
}

func (s *bufferStream) Skip(n int) error {
	if s.offset+n > len(s.data) {
		return parseErrorf("skip past end of stream %s", s.name)
	}
	s.offset += n
	return nil
}

func (s *bufferStream) Seek(positions *PositionProvider) error {
	offset := int(positions.Next())
	if offset > len(s.data) {
		return parseErrorf("seek past end of stream %s", s.name)
	}
	s.offset = offset
	return nil
}

func (s *bufferStream) Name() string { return s.name }

// decompressStream decodes the ORC compression block framing: each block
// starts with a 3-byte little-endian header holding (length << 1) | original,
// where original means the block bytes are stored without compression.
type decompressStream struct {
	name      string
	codec     compress.Codec
	data      []byte
	blockSize int
	offset    int
	remaining []byte
	scratch   []byte
}

// NewDecompressStream returns a Stream decoding compression block framing
// from data with the given codec. blockSize is the compression chunk size
// from the file postscript; it bounds the decoded size of one block.
func NewDecompressStream(name string, codec compress.Codec, data []byte, blockSize int) Stream {
	return &decompressStream{
		name:      name,
		codec:     codec,
		data:      data,
		blockSize: blockSize,
	}
}

func (s *decompressStream) readBlock() error {
	if s.offset+3 > len(s.data) {
		if s.offset >= len(s.data) {
			return io.EOF
		}
		return parseErrorf("truncated block header in stream %s", s.name)
	}
	header := int(s.data[s.offset]) | int(s.data[s.offset+1])<<8 | int(s.data[s.offset+2])<<16
	s.offset += 3
	original := header&1 != 0
	length := header >> 1
	if s.offset+length > len(s.data) {
		return parseErrorf("truncated block in stream %s", s.name)
	}
	block := s.data[s.offset : s.offset+length]
	s.offset += length
	if original {
		s.remaining = block
		return nil
	}
	if cap(s.scratch) < s.blockSize {
		s.scratch = make([]byte, s.blockSize)
	}
	out, err := s.codec.Decode(s.scratch[:s.blockSize], block)
	if err != nil {
		return parseErrorf("decompress stream %s: %v", s.name, err)
	}
	s.remaining = out
	return nil
}

func (s *decompressStream) Next() ([]byte, error) {
	for len(s.remaining) == 0 {
		if err := s.readBlock(); err != nil {
			return nil, err
		}
	}
	out := s.remaining
	s.remaining = nil
	return out, nil
}

func (s *decompressStream) Skip(n int) error {
	for n > 0 {
		if len(s.remaining) == 0 {
			if err := s.readBlock(); err != nil {
				return err
			}
			continue
		}
		step := n
		if step > len(s.remaining) {
			step = len(s.remaining)
		}
		s.remaining = s.remaining[step:]
		n -= step
	}
	return nil
}

func (s *decompressStream) Seek(positions *PositionProvider) error {
	blockOffset := int(positions.Next())
	uncompressedOffset := int(positions.Next())
	if blockOffset > len(s.data) {
		return parseErrorf("seek past end of stream %s", s.name)
	}
	s.offset = blockOffset
	s.remaining = nil
	return s.Skip(uncompressedOffset)
}

func (s *decompressStream) Name() string { return s.name }

// streamByteReader adapts the chunked Next contract to byte-at-a-time and
// bulk reads, keeping the borrowed remainder between calls.
type streamByteReader struct {
	stream Stream
	buf    []byte
}

func (r *streamByteReader) readByte() (byte, error) {
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

// reset drops the buffered remainder, required after the underlying stream
// is repositioned.
func (r *streamByteReader) reset() {
	r.buf = nil
}

// skipBytes advances past n bytes, draining the buffered remainder before
// skipping on the stream in int-sized steps.
func (r *streamByteReader) skipBytes(n int64) error {
	if n <= int64(len(r.buf)) {
		r.buf = r.buf[n:]
		return nil
	}
	n -= int64(len(r.buf))
	r.buf = nil
	for n > 0 {
		step := n
		if step > math.MaxInt32 {
			step = math.MaxInt32
		}
		if err := r.stream.Skip(int(step)); err != nil {
			return err
		}
		n -= step
	}
	return nil
}

// readVarint reads one unsigned base-128 varint.
func (r *streamByteReader) readVarint() (uint64, error) {
	var v uint64
	var shift uint
	for {
		b, err := r.readByte()
		if err != nil {
			return 0, err
		}
		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, nil
		}
		shift += 7
		if shift > 63 {
			return 0, parseErrorf("varint overflow in stream %s", r.stream.Name())
		}
	}
}

// readSignedVarint reads one zig-zag encoded varint.
func (r *streamByteReader) readSignedVarint() (int64, error) {
	u, err := r.readVarint()
	if err != nil {
		return 0, err
	}
	return unZigZag(u), nil
}

func unZigZag(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// readFully copies exactly len(out) bytes from the stream into out.
func readFully(out []byte, stream Stream) error {
	pos := 0
	for pos < len(out) {
		chunk, err := stream.Next()
		if err == io.EOF {
			return parseErrorf("unexpected end of stream %s", stream.Name())
		}
		if err != nil {
			return err
		}
		if pos+len(chunk) > len(out) {
			return parseErrorf("stream %s longer than expected", stream.Name())
		}
		copy(out[pos:], chunk)
		pos += len(chunk)
	}
	return nil
}
