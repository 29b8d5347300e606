package orc

import "testing"

func TestBatchResizeGrows(t *testing.T) {
	batch := NewLongVectorBatch(4)
	if batch.Capacity() != 4 {
		t.Fatalf("capacity = %d, want 4", batch.Capacity())
	}
	batch.Resize(100)
	if batch.Capacity() != 100 {
		t.Errorf("capacity = %d, want 100", batch.Capacity())
	}
	if len(batch.Data) != 100 || len(batch.NotNull()) != 100 {
		t.Errorf("arrays sized %d/%d, want 100", len(batch.Data), len(batch.NotNull()))
	}
}

func TestBatchResizeKeepsBackingArrayWhenLargeEnough(t *testing.T) {
	batch := NewLongVectorBatch(100)
	data := &batch.Data[0]
	batch.Resize(10)
	if &batch.Data[0] != data {
		t.Error("shrinking resize reallocated the value array")
	}
}

func TestListBatchOffsetsHaveOneExtraSlot(t *testing.T) {
	batch := NewListVectorBatch(8, NewLongVectorBatch(8))
	if len(batch.Offsets) != 9 {
		t.Errorf("offsets sized %d, want 9", len(batch.Offsets))
	}
	batch.Resize(16)
	if len(batch.Offsets) != 17 {
		t.Errorf("offsets sized %d after resize, want 17", len(batch.Offsets))
	}
}

func TestStringDictionaryEntry(t *testing.T) {
	d := &StringDictionary{Offsets: []int64{0, 1, 3, 6}, Blob: []byte("abbccc")}
	if d.Size() != 3 {
		t.Errorf("size = %d, want 3", d.Size())
	}
	for i, want := range []string{"a", "bb", "ccc"} {
		if got := string(d.Entry(i)); got != want {
			t.Errorf("entry %d = %q, want %q", i, got, want)
		}
	}
}
