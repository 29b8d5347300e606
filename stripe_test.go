package orc

import (
	"reflect"
	"testing"

	"github.com/orc-go/orc-go/compress"
	"github.com/orc-go/orc-go/format"
)

// buildStripeBody concatenates streams in footer directory order.
func buildStripeBody(footer *format.StripeFooter, streams map[streamKey][]byte) []byte {
	var body []byte
	for i := range footer.Streams {
		entry := &footer.Streams[i]
		data := streams[streamKey{int(entry.Column), entry.Kind}]
		entry.Length = uint64(len(data))
		body = append(body, data...)
	}
	return body
}

func TestStripeStreamsEndToEnd(t *testing.T) {
	schema := NewSchema(NewStructType(
		[]string{"id", "name"},
		NewPrimitiveType(Long),
		NewPrimitiveType(String),
	))
	streams := map[streamKey][]byte{
		{1, format.StreamData}:   intRleV1Literal(true, 100, 200, 300),
		{2, format.StreamLength}: intRleV1Literal(false, 2, 3, 4),
		{2, format.StreamData}:   []byte("hiorcgood"),
	}
	footer := &format.StripeFooter{
		Streams: []format.Stream{
			{Kind: format.StreamData, Column: 1},
			{Kind: format.StreamLength, Column: 2},
			{Kind: format.StreamData, Column: 2},
		},
		Columns: []format.ColumnEncoding{
			{Kind: format.EncodingDirect},
			{Kind: format.EncodingDirect},
			{Kind: format.EncodingDirect},
		},
	}
	body := buildStripeBody(footer, streams)

	// the footer itself goes over the wire and back
	parsed, err := format.ParseStripeFooter(format.AppendStripeFooter(nil, footer))
	if err != nil {
		t.Fatal(err)
	}
	stripe, err := NewStripeStreams(parsed, body, StripeConfig{})
	if err != nil {
		t.Fatal(err)
	}
	reader, err := NewColumnReader(schema, stripe, false, false)
	if err != nil {
		t.Fatal(err)
	}
	batch := schema.NewRowBatch(4, nil, false, false).(*StructVectorBatch)
	if err := reader.Next(batch, 3, nil); err != nil {
		t.Fatal(err)
	}
	ids := batch.Fields[0].(*LongVectorBatch)
	if want := []int64{100, 200, 300}; !reflect.DeepEqual(ids.Data[:3], want) {
		t.Errorf("ids = %v, want %v", ids.Data[:3], want)
	}
	names := batch.Fields[1].(*StringVectorBatch)
	want := []string{"hi", "orc", "good"}
	for i, w := range want {
		if string(names.Data[i]) != w {
			t.Errorf("names[%d] = %q, want %q", i, names.Data[i], w)
		}
	}
}

func TestStripeStreamsCompressed(t *testing.T) {
	codec, err := compress.Lookup(compress.Zlib)
	if err != nil {
		t.Fatal(err)
	}
	streams := map[streamKey][]byte{
		{0, format.StreamData}: frameOriginal(intRleV1Literal(true, 7, 8, 9)),
	}
	footer := &format.StripeFooter{
		Streams: []format.Stream{{Kind: format.StreamData, Column: 0}},
		Columns: []format.ColumnEncoding{{Kind: format.EncodingDirect}},
	}
	body := buildStripeBody(footer, streams)
	stripe, err := NewStripeStreams(footer, body, StripeConfig{Codec: codec, BlockSize: 256})
	if err != nil {
		t.Fatal(err)
	}
	reader, err := NewColumnReader(leafSchema(Long), stripe, false, false)
	if err != nil {
		t.Fatal(err)
	}
	batch := NewLongVectorBatch(4)
	if err := reader.Next(batch, 3, nil); err != nil {
		t.Fatal(err)
	}
	if want := []int64{7, 8, 9}; !reflect.DeepEqual(batch.Data[:3], want) {
		t.Errorf("data = %v, want %v", batch.Data[:3], want)
	}
}

func TestStripeStreamsWriterTimezone(t *testing.T) {
	footer := &format.StripeFooter{WriterTimezone: "America/Los_Angeles"}
	stripe, err := NewStripeStreams(footer, nil, StripeConfig{})
	if err != nil {
		t.Skipf("timezone database unavailable: %v", err)
	}
	if got := stripe.WriterTimezone().Name(); got != "America/Los_Angeles" {
		t.Errorf("writer timezone = %s", got)
	}
	if stripe.ReaderTimezone() != GMT {
		t.Error("reader timezone should default to GMT")
	}
}

func TestStripeStreamsMissingStream(t *testing.T) {
	stripe, err := NewStripeStreams(&format.StripeFooter{}, nil, StripeConfig{})
	if err != nil {
		t.Fatal(err)
	}
	stream, err := stripe.OpenStream(5, format.StreamData, true)
	if err != nil {
		t.Fatal(err)
	}
	if stream != nil {
		t.Error("missing stream should come back nil")
	}
}
