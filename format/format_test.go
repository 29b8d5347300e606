package format

import (
	"reflect"
	"testing"
)

func TestStripeFooterRoundTrip(t *testing.T) {
	footer := &StripeFooter{
		Streams: []Stream{
			{Kind: StreamPresent, Column: 1, Length: 12},
			{Kind: StreamData, Column: 1, Length: 345},
			{Kind: StreamLength, Column: 2, Length: 6},
			{Kind: StreamDictionaryData, Column: 2, Length: 789},
		},
		Columns: []ColumnEncoding{
			{Kind: EncodingDirect},
			{Kind: EncodingDirectV2},
			{Kind: EncodingDictionaryV2, DictionarySize: 42},
		},
		WriterTimezone: "America/Los_Angeles",
	}
	parsed, err := ParseStripeFooter(AppendStripeFooter(nil, footer))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(parsed, footer) {
		t.Errorf("got %+v, want %+v", parsed, footer)
	}
}

func TestParseStripeFooterEmpty(t *testing.T) {
	footer, err := ParseStripeFooter(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(footer.Streams) != 0 || len(footer.Columns) != 0 {
		t.Errorf("empty footer parsed to %+v", footer)
	}
}

func TestParseStripeFooterTruncated(t *testing.T) {
	data := AppendStripeFooter(nil, &StripeFooter{
		Streams: []Stream{{Kind: StreamData, Column: 3, Length: 100}},
	})
	if _, err := ParseStripeFooter(data[:len(data)-2]); err == nil {
		t.Error("truncated footer parsed without error")
	}
}

func TestStreamKindString(t *testing.T) {
	if got := StreamSecondary.String(); got != "SECONDARY" {
		t.Errorf("got %s", got)
	}
	if got := EncodingDictionaryV2.String(); got != "DICTIONARY_V2" {
		t.Errorf("got %s", got)
	}
}
