package orc

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/orc-go/orc-go/compress"
)

func TestBufferStreamChunked(t *testing.T) {
	s := NewChunkedBufferStream("test", []byte("abcdefgh"), 3)
	var got []byte
	for {
		chunk, err := s.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if len(chunk) > 3 {
			t.Errorf("chunk of %d bytes, want at most 3", len(chunk))
		}
		got = append(got, chunk...)
	}
	if string(got) != "abcdefgh" {
		t.Errorf("got %q", got)
	}
}

func TestBufferStreamSeek(t *testing.T) {
	s := NewBufferStream("test", []byte("abcdefgh"))
	if err := s.Seek(NewPositionProvider([]uint64{5})); err != nil {
		t.Fatal(err)
	}
	chunk, err := s.Next()
	if err != nil {
		t.Fatal(err)
	}
	if string(chunk) != "fgh" {
		t.Errorf("got %q, want fgh", chunk)
	}
}

// frameOriginal wraps payload in an ORC compression block header marked as
// stored without compression.
func frameOriginal(payload []byte) []byte {
	header := len(payload)<<1 | 1
	return append([]byte{byte(header), byte(header >> 8), byte(header >> 16)}, payload...)
}

func frameCompressed(t *testing.T, payload []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(payload); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	header := buf.Len() << 1
	return append([]byte{byte(header), byte(header >> 8), byte(header >> 16)}, buf.Bytes()...)
}

func TestDecompressStreamOriginalBlock(t *testing.T) {
	codec, err := compress.Lookup(compress.Zlib)
	if err != nil {
		t.Fatal(err)
	}
	data := frameOriginal([]byte("hello world"))
	s := NewDecompressStream("test", codec, data, 64)
	chunk, err := s.Next()
	if err != nil {
		t.Fatal(err)
	}
	if string(chunk) != "hello world" {
		t.Errorf("got %q", chunk)
	}
}

func TestDecompressStreamCompressedBlocks(t *testing.T) {
	codec, err := compress.Lookup(compress.Zlib)
	if err != nil {
		t.Fatal(err)
	}
	payload1 := bytes.Repeat([]byte("orc"), 20)
	payload2 := []byte("tail block")
	data := append(frameCompressed(t, payload1), frameCompressed(t, payload2)...)
	s := NewDecompressStream("test", codec, data, 256)
	var got []byte
	for {
		chunk, err := s.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, chunk...)
	}
	want := append(append([]byte{}, payload1...), payload2...)
	if !bytes.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDecompressStreamSkipAndSeek(t *testing.T) {
	codec, err := compress.Lookup(compress.Zlib)
	if err != nil {
		t.Fatal(err)
	}
	block1 := frameOriginal([]byte("0123456789"))
	block2 := frameOriginal([]byte("abcdefghij"))
	data := append(append([]byte{}, block1...), block2...)
	s := NewDecompressStream("test", codec, data, 64)
	if err := s.Skip(12); err != nil {
		t.Fatal(err)
	}
	chunk, err := s.Next()
	if err != nil {
		t.Fatal(err)
	}
	if string(chunk) != "cdefghij" {
		t.Errorf("after skip got %q, want cdefghij", chunk)
	}
	// seek to block 2, 4 bytes in
	if err := s.Seek(NewPositionProvider([]uint64{uint64(len(block1)), 4})); err != nil {
		t.Fatal(err)
	}
	chunk, err = s.Next()
	if err != nil {
		t.Fatal(err)
	}
	if string(chunk) != "efghij" {
		t.Errorf("after seek got %q, want efghij", chunk)
	}
}

func TestReadFully(t *testing.T) {
	s := NewChunkedBufferStream("test", []byte("abcdefgh"), 3)
	out := make([]byte, 8)
	if err := readFully(out, s); err != nil {
		t.Fatal(err)
	}
	if string(out) != "abcdefgh" {
		t.Errorf("got %q", out)
	}
}
