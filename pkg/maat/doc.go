// Package maat implements a consistent-hashing ring that routes an
// opaque, serializable request to one physical backend node out of a
// dynamic set of nodes.
//
// Two pieces compose: ringBuffer is a bucketed circular index keyed by
// a bounded-precision hash, and Ring sits on top of it, maintaining the
// directories that relate a physical node to the virtual replicas that
// represent it on the ring, and picking a single physical owner out of
// whatever occupies the bucket a request lands on.
//
// The package is a synchronous, single-owner data structure: no
// operation here blocks, suspends, or performs I/O, and none of it
// logs. Callers sharing one Ring across goroutines wrap it themselves
// (see pkg/concurrency.ConcurrentRing for a ready-made wrapper).
package maat
