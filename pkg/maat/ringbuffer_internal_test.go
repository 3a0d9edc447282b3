package maat

import "testing"

type stringOccupant string

func (s stringOccupant) Serialize() string { return string(s) }

func TestRingBufferAddFindsItsOwnBucket(t *testing.T) {
	rb := newRingBuffer[stringOccupant](1000)
	data := stringOccupant("I'm good")

	rb.add(data)

	h := rb.hashFn()(data)
	bucket, ok := rb.findNearest(h)
	if !ok {
		t.Fatal("expected to find a bucket")
	}
	if !bucket.Contains(data) {
		t.Fatal("bucket does not contain the inserted occupant")
	}
}

func TestRingBufferAddIsIdempotentUnderValueEquality(t *testing.T) {
	rb := newRingBuffer[stringOccupant](1000)
	data := stringOccupant("I'm good")

	rb.add(data)
	rb.add(data)

	bucket, ok := rb.findNearest(rb.hashFn()(data))
	if !ok {
		t.Fatal("expected to find a bucket")
	}
	if bucket.Len() != 1 {
		t.Fatalf("expected bucket of size 1, got %d", bucket.Len())
	}
}

func TestRingBufferRemoveDropsEmptyBucket(t *testing.T) {
	rb := newRingBuffer[stringOccupant](1000)
	data := stringOccupant("to be deleted")
	rb.add(data)

	rb.remove(data)

	if rb.len() != 0 {
		t.Fatalf("expected no non-empty buckets, got %d", rb.len())
	}
	if _, ok := rb.findNearest(rb.hashFn()(data)); ok {
		t.Fatal("expected no bucket to be found after removal")
	}
}

func TestRingBufferFindNearestWraps(t *testing.T) {
	rb := newRingBuffer[stringOccupant](8)
	// Find a payload that hashes strictly between the first and last
	// positions, so the loop below queries positions under the occupant
	// (plain successor search) and positions above it (which only
	// wrap-around can resolve).
	var only stringOccupant
	var pos uint64
	for i := 0; ; i++ {
		candidate := stringOccupant(string(rune('a' + i%26)))
		p := rb.hashFn()(candidate)
		if p != 0 && p != 7 {
			only = candidate
			pos = p
			break
		}
	}
	rb.add(only)

	for h := uint64(0); h < 8; h++ {
		bucket, ok := rb.findNearest(h)
		if !ok {
			t.Fatalf("findNearest(%d): expected a bucket (single occupant at %d)", h, pos)
		}
		if !bucket.Contains(only) {
			t.Fatalf("findNearest(%d): expected the single occupant", h)
		}
	}
}

func TestRingBufferEmptyFindsNothing(t *testing.T) {
	rb := newRingBuffer[stringOccupant](1000)
	if _, ok := rb.findNearest(42); ok {
		t.Fatal("expected no bucket in an empty ring buffer")
	}
}
