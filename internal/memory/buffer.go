// Package memory provides pooled scratch buffers shared by the column
// decoders. Skip paths and narrow integer decoding need short-lived byte and
// int64 slices of varying sizes; pooling them in power-of-two buckets keeps
// the steady-state decode loop allocation-free.
package memory

import (
	"math/bits"
	"sync"
)

const (
	minBucketBits = 10 // 1 KiB
	maxBucketBits = 23 // 8 MiB
	numBuckets    = maxBucketBits - minBucketBits + 1
)

// Bytes is a pooled byte slice. The Data field holds at least the requested
// number of bytes; the bucket index routes the slice back to its pool.
type Bytes struct {
	Data   []byte
	bucket int
}

// Int64s is a pooled int64 slice.
type Int64s struct {
	Data   []int64
	bucket int
}

var bytePools [numBuckets]sync.Pool

var int64Pools [numBuckets]sync.Pool

func findBucket(n int) int {
	if n <= 0 {
		return 0
	}
	bitLen := bits.Len(uint(n - 1))
	if bitLen < minBucketBits {
		return 0
	}
	bucket := bitLen - minBucketBits
	if bucket >= numBuckets {
		return numBuckets - 1
	}
	return bucket
}

func bucketSize(bucket int) int {
	return 1 << (minBucketBits + bucket)
}

// GetBytes returns a pooled byte slice with length at least n.
// Oversized requests fall back to a plain allocation in the last bucket.
func GetBytes(n int) *Bytes {
	bucket := findBucket(n)
	size := bucketSize(bucket)
	if size < n {
		size = n
	}
	if b, _ := bytePools[bucket].Get().(*Bytes); b != nil && len(b.Data) >= n {
		return b
	}
	return &Bytes{Data: make([]byte, size), bucket: bucket}
}

// PutBytes returns a slice obtained from GetBytes to its pool.
func PutBytes(b *Bytes) {
	if b == nil || b.Data == nil {
		return
	}
	bytePools[b.bucket].Put(b)
}

// GetInt64s returns a pooled int64 slice with length at least n.
func GetInt64s(n int) *Int64s {
	bucket := findBucket(8 * n)
	size := bucketSize(bucket) / 8
	if size < n {
		size = n
	}
	if b, _ := int64Pools[bucket].Get().(*Int64s); b != nil && len(b.Data) >= n {
		return b
	}
	return &Int64s{Data: make([]int64, size), bucket: bucket}
}

// PutInt64s returns a slice obtained from GetInt64s to its pool.
func PutInt64s(b *Int64s) {
	if b == nil || b.Data == nil {
		return
	}
	int64Pools[b.bucket].Put(b)
}
