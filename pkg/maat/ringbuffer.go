package maat

import "github.com/google/btree"

// Occupant is anything a ringBuffer can hold: comparable so a bucket
// can be a value-equality Set, and Serializable so the ring's own hash
// function can place it.
type Occupant interface {
	comparable
	Serializable
}

// bucketEntry is one occupied position in the ring. Buckets are
// materialized lazily (created on first insert, dropped on last
// removal), so the tree only ever holds occupied positions and
// successor search costs O(log k) in the number of occupied
// positions, not O(log C) in the ring's full capacity.
type bucketEntry[T Occupant] struct {
	pos       uint64
	occupants *Set[T]
}

// ringBuffer is a bucketed circular index of capacity C: a sparse,
// ordered map from position in [0, C) to the set of occupants hashing
// there, plus a hash function bound to its own capacity.
type ringBuffer[T Occupant] struct {
	capacity uint64
	tree     *btree.BTreeG[bucketEntry[T]]
	hash     HashFunc
}

func newRingBuffer[T Occupant](capacity uint64) *ringBuffer[T] {
	less := func(a, b bucketEntry[T]) bool { return a.pos < b.pos }
	return &ringBuffer[T]{
		capacity: capacity,
		tree:     btree.NewG[bucketEntry[T]](32, less),
		hash:     newHashFunc(capacity),
	}
}

// hashFn returns the ring's own hash function, pure and stable for the
// lifetime of this ringBuffer.
func (r *ringBuffer[T]) hashFn() HashFunc {
	return r.hash
}

// add inserts x into the bucket at H(x). Idempotent under value
// equality: adding an equal occupant twice leaves the bucket
// unchanged.
func (r *ringBuffer[T]) add(x T) {
	pos := r.hash(x)
	if entry, ok := r.tree.Get(bucketEntry[T]{pos: pos}); ok {
		entry.occupants.Add(x)
		return
	}
	occupants := NewSet[T]()
	occupants.Add(x)
	r.tree.ReplaceOrInsert(bucketEntry[T]{pos: pos, occupants: occupants})
}

// remove erases x from the bucket at H(x), dropping the bucket
// entirely once it empties.
func (r *ringBuffer[T]) remove(x T) {
	pos := r.hash(x)
	entry, ok := r.tree.Get(bucketEntry[T]{pos: pos})
	if !ok {
		return
	}
	entry.occupants.Remove(x)
	if entry.occupants.Len() == 0 {
		r.tree.Delete(bucketEntry[T]{pos: pos})
	}
}

// findNearest returns the bucket at h if non-empty, otherwise the next
// strictly-greater non-empty bucket, wrapping around to the smallest
// non-empty bucket if none exists above h. Only an empty ring yields
// (nil, false).
func (r *ringBuffer[T]) findNearest(h uint64) (*Set[T], bool) {
	var found *Set[T]
	r.tree.AscendGreaterOrEqual(bucketEntry[T]{pos: h}, func(entry bucketEntry[T]) bool {
		found = entry.occupants
		return false
	})
	if found != nil {
		return found, true
	}

	r.tree.Ascend(func(entry bucketEntry[T]) bool {
		found = entry.occupants
		return false
	})
	if found != nil {
		return found, true
	}
	return nil, false
}

// len returns the number of non-empty buckets.
func (r *ringBuffer[T]) len() int {
	return r.tree.Len()
}
