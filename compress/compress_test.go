package compress

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var testPayload = bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 32)

func testCodec(t *testing.T, kind Kind, compressed []byte) {
	t.Helper()
	codec, err := Lookup(kind)
	if err != nil {
		t.Fatal(err)
	}
	out, err := codec.Decode(make([]byte, len(testPayload)), compressed)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, testPayload) {
		t.Errorf("%s round trip mismatch: %d bytes out, want %d", kind, len(out), len(testPayload))
	}
}

func TestZlibCodec(t *testing.T) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(testPayload); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	testCodec(t, Zlib, buf.Bytes())
}

func TestSnappyCodec(t *testing.T) {
	testCodec(t, Snappy, snappy.Encode(nil, testPayload))
}

func TestLz4Codec(t *testing.T) {
	dst := make([]byte, lz4.CompressBlockBound(len(testPayload)))
	var c lz4.Compressor
	n, err := c.CompressBlock(testPayload, dst)
	if err != nil {
		t.Fatal(err)
	}
	testCodec(t, Lz4, dst[:n])
}

func TestZstdCodec(t *testing.T) {
	w, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	testCodec(t, Zstd, w.EncodeAll(testPayload, nil))
}

func TestLookupNone(t *testing.T) {
	codec, err := Lookup(None)
	if err != nil || codec != nil {
		t.Errorf("Lookup(None) = %v, %v, want nil codec", codec, err)
	}
}

func TestLookupLzo(t *testing.T) {
	if _, err := Lookup(Lzo); err == nil {
		t.Error("Lookup(LZO) should fail, no codec is wired")
	}
}
