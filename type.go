package orc

import (
	"fmt"
	"strings"
)

// TypeKind enumerates the column types of the ORC format. Values match the
// Type.Kind enum of the protobuf definition.
type TypeKind int32

const (
	Boolean TypeKind = iota
	Byte
	Short
	Int
	Long
	Float
	Double
	String
	Binary
	Timestamp
	List
	Map
	Struct
	Union
	Decimal
	Date
	Varchar
	Char
	TimestampInstant
	Geometry
	Geography
)

func (k TypeKind) String() string {
	switch k {
	case Boolean:
		return "boolean"
	case Byte:
		return "tinyint"
	case Short:
		return "smallint"
	case Int:
		return "int"
	case Long:
		return "bigint"
	case Float:
		return "float"
	case Double:
		return "double"
	case String:
		return "string"
	case Binary:
		return "binary"
	case Timestamp:
		return "timestamp"
	case List:
		return "array"
	case Map:
		return "map"
	case Struct:
		return "struct"
	case Union:
		return "uniontype"
	case Decimal:
		return "decimal"
	case Date:
		return "date"
	case Varchar:
		return "varchar"
	case Char:
		return "char"
	case TimestampInstant:
		return "timestamp with local time zone"
	case Geometry:
		return "geometry"
	case Geography:
		return "geography"
	default:
		return fmt.Sprintf("TypeKind(%d)", int32(k))
	}
}

// Type is a node of the schema tree. Column ids are assigned by NewSchema in
// pre-order so that a column's streams can be located by id inside a stripe.
type Type struct {
	kind       TypeKind
	columnID   int
	children   []*Type
	fieldNames []string
	precision  int
	scale      int
	maxLength  int
}

// NewPrimitiveType returns a leaf type of the given kind.
func NewPrimitiveType(kind TypeKind) *Type {
	return &Type{kind: kind}
}

// NewDecimalType returns a decimal type. Hive 0.11 files carry precision 0;
// modern files use 1 to 38.
func NewDecimalType(precision, scale int) *Type {
	return &Type{kind: Decimal, precision: precision, scale: scale}
}

// NewVarcharType returns a varchar type with the given maximum length.
func NewVarcharType(maxLength int) *Type {
	return &Type{kind: Varchar, maxLength: maxLength}
}

// NewCharType returns a char type with the given maximum length.
func NewCharType(maxLength int) *Type {
	return &Type{kind: Char, maxLength: maxLength}
}

// NewListType returns a list type with the given element type.
func NewListType(element *Type) *Type {
	return &Type{kind: List, children: []*Type{element}}
}

// NewMapType returns a map type with the given key and value types.
func NewMapType(key, value *Type) *Type {
	return &Type{kind: Map, children: []*Type{key, value}}
}

// NewStructType returns a struct type. names and fields must have equal
// length.
func NewStructType(names []string, fields ...*Type) *Type {
	if len(names) != len(fields) {
		panic("orc: NewStructType: mismatched field names and types")
	}
	return &Type{kind: Struct, children: fields, fieldNames: names}
}

// NewUnionType returns a union type over the given variants.
func NewUnionType(variants ...*Type) *Type {
	return &Type{kind: Union, children: variants}
}

// NewSchema assigns pre-order column ids to the tree rooted at root and
// returns root.
func NewSchema(root *Type) *Type {
	root.assignIDs(0)
	return root
}

func (t *Type) assignIDs(next int) int {
	t.columnID = next
	next++
	for _, child := range t.children {
		next = child.assignIDs(next)
	}
	return next
}

// Kind returns the type's kind.
func (t *Type) Kind() TypeKind { return t.kind }

// ColumnID returns the pre-order column id assigned by NewSchema.
func (t *Type) ColumnID() int { return t.columnID }

// NumChildren returns the number of subtypes.
func (t *Type) NumChildren() int { return len(t.children) }

// Child returns the i-th subtype.
func (t *Type) Child(i int) *Type { return t.children[i] }

// FieldName returns the i-th field name of a struct type.
func (t *Type) FieldName(i int) string { return t.fieldNames[i] }

// Precision returns a decimal type's precision.
func (t *Type) Precision() int { return t.precision }

// Scale returns a decimal type's scale.
func (t *Type) Scale() int { return t.scale }

// MaxLength returns a char or varchar type's maximum length.
func (t *Type) MaxLength() int { return t.maxLength }

// MaximumColumnID returns the largest column id in the tree rooted at t.
func (t *Type) MaximumColumnID() int {
	max := t.columnID
	for _, child := range t.children {
		if id := child.MaximumColumnID(); id > max {
			max = id
		}
	}
	return max
}

// String renders the type in Hive syntax, e.g.
// struct<id:bigint,tags:array<string>>.
func (t *Type) String() string {
	var b strings.Builder
	t.writeString(&b)
	return b.String()
}

func (t *Type) writeString(b *strings.Builder) {
	switch t.kind {
	case Decimal:
		fmt.Fprintf(b, "decimal(%d,%d)", t.precision, t.scale)
	case Varchar, Char:
		fmt.Fprintf(b, "%s(%d)", t.kind, t.maxLength)
	case List:
		b.WriteString("array<")
		t.children[0].writeString(b)
		b.WriteString(">")
	case Map:
		b.WriteString("map<")
		t.children[0].writeString(b)
		b.WriteString(",")
		t.children[1].writeString(b)
		b.WriteString(">")
	case Struct:
		b.WriteString("struct<")
		for i, child := range t.children {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(t.fieldNames[i])
			b.WriteString(":")
			child.writeString(b)
		}
		b.WriteString(">")
	case Union:
		b.WriteString("uniontype<")
		for i, child := range t.children {
			if i > 0 {
				b.WriteString(",")
			}
			child.writeString(b)
		}
		b.WriteString(">")
	default:
		b.WriteString(t.kind.String())
	}
}
