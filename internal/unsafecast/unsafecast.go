// Package unsafecast exposes functions to bypass the Go type system and
// reinterpret slices between compatible memory layouts.
//
// The decode path uses these conversions to avoid copies: the boolean and
// byte column decoders write run-length-decoded bytes into the front of an
// int64 vector before expanding them in place, and the double decoder copies
// IEEE-754 little-endian payload bytes straight into a float64 vector.
package unsafecast

import "unsafe"

// The slice type mirrors the memory layout of Go slices, using an
// unsafe.Pointer for the backing array so the garbage collector keeps
// tracking the reference.
type slice struct {
	ptr unsafe.Pointer
	len int
	cap int
}

// Slice converts the data slice of type []From to a slice of type []To
// sharing the same backing array. The length and capacity of the returned
// slice are scaled by the size ratio of the two element types.
//
// The function performs no compatibility checks; converting between layouts
// that disagree on pointer placement corrupts memory.
func Slice[To, From any](data []From) []To {
	var zf From
	var zt To
	var s = slice{
		ptr: *(*unsafe.Pointer)(unsafe.Pointer(&data)),
		len: int((uintptr(len(data)) * unsafe.Sizeof(zf)) / unsafe.Sizeof(zt)),
		cap: int((uintptr(cap(data)) * unsafe.Sizeof(zf)) / unsafe.Sizeof(zt)),
	}
	return *(*[]To)(unsafe.Pointer(&s))
}

// BytesToString converts a byte slice to a string sharing the backing array.
// The caller must not modify data while the returned string is reachable.
func BytesToString(data []byte) string {
	return unsafe.String(unsafe.SliceData(data), len(data))
}

// StringToBytes applies the inverse conversion of BytesToString.
func StringToBytes(data string) []byte {
	return unsafe.Slice(unsafe.StringData(data), len(data))
}
