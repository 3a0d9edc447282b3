package maat

import "github.com/cespare/xxhash/v2"

// HashFunc maps a Serializable to a position in [0, capacity).
type HashFunc func(Serializable) uint64

// newHashFunc returns a pure function bound to capacity: serialize the
// argument, take a 64-bit content hash of the bytes, and reduce modulo
// capacity. Stable across calls for a fixed capacity.
func newHashFunc(capacity uint64) HashFunc {
	return func(s Serializable) uint64 {
		return xxhash.Sum64String(s.Serialize()) % capacity
	}
}
