package orc

import (
	"io"
	"strconv"

	"github.com/orc-go/orc-go/compress"
	"github.com/orc-go/orc-go/format"
)

// StripeStreams hands the column readers everything they need from one
// stripe: the per-(column, kind) byte streams, the column encodings, the
// writer and reader timezones, and the decode policy flags.
type StripeStreams interface {
	// OpenStream returns the stream of the given kind for the given column,
	// or nil when the stream is not stored or not projected. required is a
	// hint that the caller cannot proceed without the stream; enforcement is
	// the caller's, since several kinds are legitimately absent (a PRESENT
	// stream for a column with no nulls, DICTIONARY_DATA for an empty
	// dictionary).
	OpenStream(columnID int, kind format.StreamKind, required bool) (Stream, error)

	// Encoding returns the column's encoding for this stripe.
	Encoding(columnID int) (format.ColumnEncoding, error)

	// SelectedColumns returns the projection bit set, indexed by column id.
	SelectedColumns() []bool

	// WriterTimezone returns the timezone timestamps were written in.
	WriterTimezone() *Timezone

	// ReaderTimezone returns the timezone timestamps are read into.
	ReaderTimezone() *Timezone

	// ForcedScaleOnHive11Decimal returns the stripe-wide scale applied to
	// decimal columns written by Hive 0.11, which did not record one.
	ForcedScaleOnHive11Decimal() int32

	// ThrowOnHive11DecimalOverflow selects between failing and coercing to
	// null when a Hive 0.11 decimal exceeds 38 digits.
	ThrowOnHive11DecimalOverflow() bool

	// DecimalAsLong reports whether DIRECT_V2 decimal columns with
	// precision at most 18 store their values as plain RLE v2 longs.
	DecimalAsLong() bool

	// ErrorWriter returns the sink for decode warnings.
	ErrorWriter() io.Writer

	// Evolution returns the schema evolution collaborator, or nil when the
	// read schema matches the file schema.
	Evolution() SchemaEvolution

	// Metrics returns the shared reader metrics, or nil.
	Metrics() *ReaderMetrics
}

// SchemaEvolution is consulted by the reader factory when the read schema
// differs from the file schema. When NeedConvert reports true for a node,
// the factory dispatches to NewConvertReader instead of building a physical
// decoder; the returned wrapper owns the conversion.
type SchemaEvolution interface {
	NeedConvert(t *Type) bool
	NewConvertReader(t *Type, stripe StripeStreams, tightNumeric, throwOnOverflow bool) (ColumnReader, error)
}

// StripeConfig carries the caller-supplied context a stripe reader cannot
// derive from the stripe itself.
type StripeConfig struct {
	// Codec decodes compression blocks; nil reads streams unframed.
	Codec compress.Codec

	// BlockSize is the compression chunk size from the file postscript.
	BlockSize int

	// Selected is the projection bit set; nil selects every column.
	Selected []bool

	// ReaderTimezone defaults to GMT when nil.
	ReaderTimezone *Timezone

	ForcedScaleOnHive11Decimal   int32
	ThrowOnHive11DecimalOverflow bool
	DecimalAsLong                bool

	// ErrorWriter defaults to io.Discard when nil.
	ErrorWriter io.Writer

	Evolution SchemaEvolution
	Metrics   *ReaderMetrics
}

// stripeStreams serves streams out of a stripe body using the footer's
// stream directory. Streams are stored back to back in directory order.
type stripeStreams struct {
	footer   *format.StripeFooter
	body     []byte
	config   StripeConfig
	writerTZ *Timezone
	maxCol   int
}

// NewStripeStreams returns a StripeStreams over a stripe body and its
// decoded footer. The body must contain the streams in footer directory
// order, index streams included if the footer lists them.
func NewStripeStreams(footer *format.StripeFooter, body []byte, config StripeConfig) (StripeStreams, error) {
	writerTZ := GMT
	if footer.WriterTimezone != "" {
		tz, err := LoadTimezone(footer.WriterTimezone)
		if err != nil {
			return nil, err
		}
		writerTZ = tz
	}
	if config.ReaderTimezone == nil {
		config.ReaderTimezone = GMT
	}
	if config.ErrorWriter == nil {
		config.ErrorWriter = io.Discard
	}
	maxCol := 0
	for _, stream := range footer.Streams {
		if int(stream.Column) > maxCol {
			maxCol = int(stream.Column)
		}
	}
	return &stripeStreams{
		footer:   footer,
		body:     body,
		config:   config,
		writerTZ: writerTZ,
		maxCol:   maxCol,
	}, nil
}

func (s *stripeStreams) OpenStream(columnID int, kind format.StreamKind, required bool) (Stream, error) {
	offset := uint64(0)
	for _, stream := range s.footer.Streams {
		if int(stream.Column) == columnID && stream.Kind == kind {
			if offset+stream.Length > uint64(len(s.body)) {
				return nil, parseErrorf("stream %s of column %d extends past stripe end", kind, columnID)
			}
			name := streamName(columnID, kind)
			data := s.body[offset : offset+stream.Length]
			if s.config.Codec == nil {
				return NewBufferStream(name, data), nil
			}
			return NewDecompressStream(name, s.config.Codec, data, s.config.BlockSize), nil
		}
		offset += stream.Length
	}
	return nil, nil
}

func (s *stripeStreams) Encoding(columnID int) (format.ColumnEncoding, error) {
	if columnID < 0 || columnID >= len(s.footer.Columns) {
		return format.ColumnEncoding{}, parseErrorf("no encoding for column %d", columnID)
	}
	return s.footer.Columns[columnID], nil
}

func (s *stripeStreams) SelectedColumns() []bool {
	if s.config.Selected != nil {
		return s.config.Selected
	}
	selected := make([]bool, s.maxCol+1)
	for i := range selected {
		selected[i] = true
	}
	return selected
}

func (s *stripeStreams) WriterTimezone() *Timezone { return s.writerTZ }

func (s *stripeStreams) ReaderTimezone() *Timezone { return s.config.ReaderTimezone }

func (s *stripeStreams) ForcedScaleOnHive11Decimal() int32 {
	return s.config.ForcedScaleOnHive11Decimal
}

func (s *stripeStreams) ThrowOnHive11DecimalOverflow() bool {
	return s.config.ThrowOnHive11DecimalOverflow
}

func (s *stripeStreams) DecimalAsLong() bool { return s.config.DecimalAsLong }

func (s *stripeStreams) ErrorWriter() io.Writer { return s.config.ErrorWriter }

func (s *stripeStreams) Evolution() SchemaEvolution { return s.config.Evolution }

func (s *stripeStreams) Metrics() *ReaderMetrics { return s.config.Metrics }

func streamName(columnID int, kind format.StreamKind) string {
	return "column " + strconv.Itoa(columnID) + " " + kind.String()
}
