package orc

import (
	"testing"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

func TestSchemaAssignsPreorderColumnIDs(t *testing.T) {
	schema := NewSchema(NewStructType(
		[]string{"id", "tags", "attrs"},
		NewPrimitiveType(Long),
		NewListType(NewPrimitiveType(String)),
		NewMapType(NewPrimitiveType(String), NewPrimitiveType(Double)),
	))
	ids := []int{
		schema.ColumnID(),
		schema.Child(0).ColumnID(),
		schema.Child(1).ColumnID(),
		schema.Child(1).Child(0).ColumnID(),
		schema.Child(2).ColumnID(),
		schema.Child(2).Child(0).ColumnID(),
		schema.Child(2).Child(1).ColumnID(),
	}
	for i, id := range ids {
		if id != i {
			t.Errorf("column %d got id %d", i, id)
		}
	}
	if got := schema.MaximumColumnID(); got != 6 {
		t.Errorf("MaximumColumnID() = %d, want 6", got)
	}
}

func TestTypeString(t *testing.T) {
	schema := NewSchema(NewStructType(
		[]string{"id", "price", "tags", "variant", "name"},
		NewPrimitiveType(Long),
		NewDecimalType(10, 2),
		NewListType(NewPrimitiveType(String)),
		NewUnionType(NewPrimitiveType(Int), NewVarcharType(20)),
		NewCharType(8),
	))
	want := "struct<id:bigint,price:decimal(10,2),tags:array<string>," +
		"variant:uniontype<int,varchar(20)>,name:char(8)>"
	got := schema.String()
	if got != want {
		edits := myers.ComputeEdits(span.URIFromPath("schema"), want, got)
		t.Errorf("schema dump mismatch:\n%s", gotextdiff.ToUnified("want", "got", want, edits))
	}
}

func TestNewRowBatchShape(t *testing.T) {
	schema := NewSchema(NewStructType(
		[]string{"flag", "n", "s"},
		NewPrimitiveType(Boolean),
		NewPrimitiveType(Int),
		NewPrimitiveType(String),
	))
	wide := schema.NewRowBatch(16, nil, false, false).(*StructVectorBatch)
	if _, ok := wide.Fields[0].(*LongVectorBatch); !ok {
		t.Errorf("boolean field = %T, want *LongVectorBatch", wide.Fields[0])
	}
	if _, ok := wide.Fields[1].(*LongVectorBatch); !ok {
		t.Errorf("int field = %T, want *LongVectorBatch", wide.Fields[1])
	}
	tight := schema.NewRowBatch(16, nil, true, false).(*StructVectorBatch)
	if _, ok := tight.Fields[0].(*ByteVectorBatch); !ok {
		t.Errorf("tight boolean field = %T, want *ByteVectorBatch", tight.Fields[0])
	}
	if _, ok := tight.Fields[1].(*IntVectorBatch); !ok {
		t.Errorf("tight int field = %T, want *IntVectorBatch", tight.Fields[1])
	}
	encoded := schema.NewRowBatch(16, nil, false, true).(*StructVectorBatch)
	if _, ok := encoded.Fields[2].(*EncodedStringVectorBatch); !ok {
		t.Errorf("encoded string field = %T, want *EncodedStringVectorBatch", encoded.Fields[2])
	}
}
