package orc

import "sync/atomic"

// ReaderMetrics accumulates counters across every decoder of a reader.
// Counters are atomic so independent stripe readers may share one instance.
type ReaderMetrics struct {
	// ValuesDecoded counts logical rows produced by Next calls, nulls
	// included.
	ValuesDecoded atomic.Int64

	// ValuesSkipped counts logical rows consumed by Skip calls.
	ValuesSkipped atomic.Int64

	// RowGroupSeeks counts SeekToRowGroup calls, one per decoder in the
	// tree, composite decoders included.
	RowGroupSeeks atomic.Int64
}

func (m *ReaderMetrics) addDecoded(n int) {
	if m != nil {
		m.ValuesDecoded.Add(int64(n))
	}
}

func (m *ReaderMetrics) addSkipped(n int) {
	if m != nil {
		m.ValuesSkipped.Add(int64(n))
	}
}

func (m *ReaderMetrics) addSeek() {
	if m != nil {
		m.RowGroupSeeks.Add(1)
	}
}
