package orc

import (
	"reflect"
	"testing"
)

// encodeVarint appends the unsigned base-128 varint encoding of v.
func encodeVarint(b []byte, v uint64) []byte {
	for v >= 0x80 {
		b = append(b, byte(v)|0x80)
		v >>= 7
	}
	return append(b, byte(v))
}

func zigZag(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

// intRleV1Literal encodes values as a single literal run of integer RLE v1.
func intRleV1Literal(signed bool, values ...int64) []byte {
	b := []byte{byte(256 - len(values))}
	for _, v := range values {
		if signed {
			b = encodeVarint(b, zigZag(v))
		} else {
			b = encodeVarint(b, uint64(v))
		}
	}
	return b
}

// byteRleLiteral encodes values as a single literal run of byte RLE.
func byteRleLiteral(values ...byte) []byte {
	return append([]byte{byte(256 - len(values))}, values...)
}

// packBits packs bits into bytes, most significant bit first, for boolean
// RLE payloads.
func packBits(bits ...byte) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, bit := range bits {
		if bit != 0 {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}

func TestByteRleRun(t *testing.T) {
	// control 0x02 is a run of 5 copies
	d := NewByteRleDecoder(NewBufferStream("test", []byte{0x02, 0xFF}))
	out := make([]byte, 5)
	if err := d.Next(out, nil); err != nil {
		t.Fatal(err)
	}
	for i, v := range out {
		if v != 0xFF {
			t.Errorf("out[%d] = %#x, want 0xff", i, v)
		}
	}
}

func TestByteRleLiteral(t *testing.T) {
	d := NewByteRleDecoder(NewBufferStream("test", byteRleLiteral(1, 2, 3, 4)))
	out := make([]byte, 4)
	if err := d.Next(out, nil); err != nil {
		t.Fatal(err)
	}
	if want := []byte{1, 2, 3, 4}; !reflect.DeepEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestByteRleNotNull(t *testing.T) {
	d := NewByteRleDecoder(NewBufferStream("test", byteRleLiteral(7, 8)))
	out := make([]byte, 4)
	notNull := []byte{1, 0, 0, 1}
	if err := d.Next(out, notNull); err != nil {
		t.Fatal(err)
	}
	if out[0] != 7 || out[3] != 8 {
		t.Errorf("got %v, want values 7 and 8 at the present rows", out)
	}
}

func TestByteRleSkip(t *testing.T) {
	d := NewByteRleDecoder(NewBufferStream("test", byteRleLiteral(1, 2, 3, 4, 5)))
	if err := d.Skip(3); err != nil {
		t.Fatal(err)
	}
	out := make([]byte, 2)
	if err := d.Next(out, nil); err != nil {
		t.Fatal(err)
	}
	if want := []byte{4, 5}; !reflect.DeepEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestBooleanRle(t *testing.T) {
	// a run of 0xFF bytes decodes to all ones regardless of length read
	d := NewBooleanRleDecoder(NewBufferStream("test", []byte{0x02, 0xFF}))
	out := make([]byte, 3)
	if err := d.Next(out, nil); err != nil {
		t.Fatal(err)
	}
	if want := []byte{1, 1, 1}; !reflect.DeepEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestBooleanRlePattern(t *testing.T) {
	payload := packBits(1, 0, 1, 1, 0, 0, 1, 0, 1, 1)
	d := NewBooleanRleDecoder(NewBufferStream("test", byteRleLiteral(payload...)))
	out := make([]byte, 10)
	if err := d.Next(out, nil); err != nil {
		t.Fatal(err)
	}
	if want := []byte{1, 0, 1, 1, 0, 0, 1, 0, 1, 1}; !reflect.DeepEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestBooleanRleSkipAcrossBytes(t *testing.T) {
	bits := make([]byte, 20)
	for i := range bits {
		bits[i] = byte(i % 2)
	}
	d := NewBooleanRleDecoder(NewBufferStream("test", byteRleLiteral(packBits(bits...)...)))
	if err := d.Skip(13); err != nil {
		t.Fatal(err)
	}
	out := make([]byte, 7)
	if err := d.Next(out, nil); err != nil {
		t.Fatal(err)
	}
	if want := []byte{1, 0, 1, 0, 1, 0, 1}; !reflect.DeepEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestIntRleV1Literal(t *testing.T) {
	// literal run of five zig-zag varints
	d, err := NewIntegerRleDecoder(NewBufferStream("test", []byte{0xFB, 0x01, 0x02, 0x03, 0x04, 0x05}), true, RleV1, nil)
	if err != nil {
		t.Fatal(err)
	}
	out := make([]int64, 5)
	if err := d.Next(out, nil); err != nil {
		t.Fatal(err)
	}
	if want := []int64{-1, 1, -2, 2, -3}; !reflect.DeepEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestIntRleV1Run(t *testing.T) {
	// run of 8 values starting at 10 with delta 2
	data := encodeVarint([]byte{0x05, 0x02}, 10)
	d, err := NewIntegerRleDecoder(NewBufferStream("test", data), false, RleV1, nil)
	if err != nil {
		t.Fatal(err)
	}
	out := make([]int64, 8)
	if err := d.Next(out, nil); err != nil {
		t.Fatal(err)
	}
	if want := []int64{10, 12, 14, 16, 18, 20, 22, 24}; !reflect.DeepEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestIntRleV1NegativeDelta(t *testing.T) {
	data := encodeVarint([]byte{0x00, 0xFF}, 100)
	d, err := NewIntegerRleDecoder(NewBufferStream("test", data), false, RleV1, nil)
	if err != nil {
		t.Fatal(err)
	}
	out := make([]int64, 3)
	if err := d.Next(out, nil); err != nil {
		t.Fatal(err)
	}
	if want := []int64{100, 99, 98}; !reflect.DeepEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestIntRleV1SkipAcrossRuns(t *testing.T) {
	data := encodeVarint([]byte{0x01, 0x01}, 5) // run: 5, 6, 7, 8
	data = append(data, intRleV1Literal(false, 40, 41)...)
	d, err := NewIntegerRleDecoder(NewBufferStream("test", data), false, RleV1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Skip(5); err != nil {
		t.Fatal(err)
	}
	out := make([]int64, 1)
	if err := d.Next(out, nil); err != nil {
		t.Fatal(err)
	}
	if out[0] != 41 {
		t.Errorf("got %d, want 41", out[0])
	}
}

func TestIntRleV2ShortRepeat(t *testing.T) {
	d, err := NewIntegerRleDecoder(NewBufferStream("test", []byte{0x0A, 0x27, 0x10}), false, RleV2, nil)
	if err != nil {
		t.Fatal(err)
	}
	out := make([]int64, 5)
	if err := d.Next(out, nil); err != nil {
		t.Fatal(err)
	}
	if want := []int64{10000, 10000, 10000, 10000, 10000}; !reflect.DeepEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestIntRleV2Direct(t *testing.T) {
	data := []byte{0x5E, 0x03, 0x5C, 0xA1, 0xAB, 0x1E, 0xDE, 0xAD, 0xBE, 0xEF}
	d, err := NewIntegerRleDecoder(NewBufferStream("test", data), false, RleV2, nil)
	if err != nil {
		t.Fatal(err)
	}
	out := make([]int64, 4)
	if err := d.Next(out, nil); err != nil {
		t.Fatal(err)
	}
	if want := []int64{23713, 43806, 57005, 48879}; !reflect.DeepEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestIntRleV2Delta(t *testing.T) {
	data := []byte{0xC6, 0x09, 0x02, 0x02, 0x22, 0x42, 0x42, 0x46}
	d, err := NewIntegerRleDecoder(NewBufferStream("test", data), false, RleV2, nil)
	if err != nil {
		t.Fatal(err)
	}
	out := make([]int64, 10)
	if err := d.Next(out, nil); err != nil {
		t.Fatal(err)
	}
	if want := []int64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}; !reflect.DeepEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestIntRleV2PatchedBase(t *testing.T) {
	data := []byte{
		0x8E, 0x13, 0x2B, 0x21, 0x07, 0xD0, 0x1E, 0x00, 0x14, 0x70,
		0x28, 0x32, 0x3C, 0x46, 0x50, 0x5A, 0x64, 0x6E, 0x78, 0x82,
		0x8C, 0x96, 0xA0, 0xAA, 0xB4, 0xBE, 0xFC, 0xE8,
	}
	d, err := NewIntegerRleDecoder(NewBufferStream("test", data), false, RleV2, nil)
	if err != nil {
		t.Fatal(err)
	}
	out := make([]int64, 20)
	if err := d.Next(out, nil); err != nil {
		t.Fatal(err)
	}
	want := []int64{
		2030, 2000, 2020, 1000000, 2040, 2050, 2060, 2070, 2080, 2090,
		2100, 2110, 2120, 2130, 2140, 2150, 2160, 2170, 2180, 2190,
	}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestIntRleV2SignedDelta(t *testing.T) {
	// delta with width 0: base 10, fixed step -2, 4 values
	data := []byte{0xC0, 0x03}
	data = encodeVarint(data, zigZag(10))
	data = encodeVarint(data, zigZag(-2))
	d, err := NewIntegerRleDecoder(NewBufferStream("test", data), true, RleV2, nil)
	if err != nil {
		t.Fatal(err)
	}
	out := make([]int64, 4)
	if err := d.Next(out, nil); err != nil {
		t.Fatal(err)
	}
	if want := []int64{10, 8, 6, 4}; !reflect.DeepEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestIntRleV2Skip(t *testing.T) {
	data := []byte{0xC6, 0x09, 0x02, 0x02, 0x22, 0x42, 0x42, 0x46}
	d, err := NewIntegerRleDecoder(NewBufferStream("test", data), false, RleV2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Skip(7); err != nil {
		t.Fatal(err)
	}
	out := make([]int64, 3)
	if err := d.Next(out, nil); err != nil {
		t.Fatal(err)
	}
	if want := []int64{19, 23, 29}; !reflect.DeepEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestByteRleSeek(t *testing.T) {
	// two literal runs; seek to the second run's start, then one value in
	data := append(byteRleLiteral(1, 2, 3), byteRleLiteral(4, 5, 6)...)
	d := NewByteRleDecoder(NewBufferStream("test", data))
	if err := d.Seek(NewPositionProvider([]uint64{4, 1})); err != nil {
		t.Fatal(err)
	}
	out := make([]byte, 2)
	if err := d.Next(out, nil); err != nil {
		t.Fatal(err)
	}
	if want := []byte{5, 6}; !reflect.DeepEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestBooleanRleSeek(t *testing.T) {
	bits := []byte{1, 0, 1, 1, 0, 0, 1, 0, 1, 1, 1, 0}
	d := NewBooleanRleDecoder(NewBufferStream("test", byteRleLiteral(packBits(bits...)...)))
	// stream offset 0, byte run offset 1, bit offset 2 => logical row 10
	if err := d.Seek(NewPositionProvider([]uint64{0, 1, 2})); err != nil {
		t.Fatal(err)
	}
	out := make([]byte, 2)
	if err := d.Next(out, nil); err != nil {
		t.Fatal(err)
	}
	if want := []byte{1, 0}; !reflect.DeepEqual(out, want) {
		t.Errorf("got %v, want %v", out, want)
	}
}
