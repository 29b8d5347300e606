// Package orc implements the stripe read path of the ORC columnar file
// format: given the byte streams of one stripe, a tree of column readers
// decodes rows into vectorized batches.
//
// A reader tree is built once per stripe with NewColumnReader and driven
// with Next, Skip, and SeekToRowGroup. Batches are created from the schema
// with Type.NewRowBatch and reused across calls. A reader instance must not
// be shared between goroutines; decode stripes in parallel by building
// independent trees.
package orc
