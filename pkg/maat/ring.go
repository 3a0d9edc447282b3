package maat

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	apperrors "github.com/ngothanh/maat-hash/pkg/errors"
)

// RandSource is the tie-break PRNG pick consults when a bucket's
// physical-owner set has more than one member. *rand.Rand (from
// math/rand/v2) satisfies this already; tests inject a seeded source
// for determinism.
type RandSource interface {
	IntN(n int) int
}

type globalRandSource struct{}

func (globalRandSource) IntN(n int) int { return rand.IntN(n) }

// Option configures a Ring at construction time.
type Option func(*Ring)

// WithRandSource overrides pick's tie-break PRNG. Use this in tests
// that need deterministic collision resolution.
func WithRandSource(src RandSource) Option {
	return func(r *Ring) { r.rand = src }
}

// Ring is MaatRing: it presents a node-level join/leave/route protocol
// and hides the replica bookkeeping from callers. It is a synchronous,
// single-owner data structure. See pkg/concurrency.ConcurrentRing for
// a wrapper that adds locking for concurrent callers.
type Ring struct {
	replicas int
	ring     *ringBuffer[Node]

	// nodeReplicas, replicaNode, and nodes are the three directories
	// relating a physical node to the virtual replicas standing in for
	// it on the ring, and back.
	nodeReplicas map[string]map[string]struct{}
	replicaNode  map[string]string
	nodes        map[string]Node

	rand RandSource
}

// NewRing creates an empty ring. capacity is the ring's modulus and
// must be at least 1; replicas is the number of virtual positions
// created per accepted physical node and must be non-negative.
func NewRing(capacity uint64, replicas int, opts ...Option) (*Ring, error) {
	if capacity < 1 {
		return nil, apperrors.InvalidArgument(fmt.Sprintf("capacity must be >= 1, got %d", capacity), nil)
	}
	if replicas < 0 {
		return nil, apperrors.InvalidArgument(fmt.Sprintf("replicas must be >= 0, got %d", replicas), nil)
	}

	r := &Ring{
		replicas:     replicas,
		ring:         newRingBuffer[Node](capacity),
		nodeReplicas: make(map[string]map[string]struct{}),
		replicaNode:  make(map[string]string),
		nodes:        make(map[string]Node),
		rand:         globalRandSource{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Accept joins a physical node to the ring: the node itself plus a
// configured number of freshly-identified virtual replicas are placed
// on the ring, and the directories are updated to relate them.
//
// Accept requires node.IsPhysical(); re-accepting an id already
// present is a no-op (idempotent per node.ID(), matching the common
// case of an upstream membership watcher retrying a join it cannot
// tell already succeeded).
func (r *Ring) Accept(node Node) error {
	if !node.IsPhysical() {
		return apperrors.InvalidArgument("accept requires a physical node", nil)
	}
	if _, exists := r.nodes[node.ID()]; exists {
		return nil
	}

	replicas := make([]Node, r.replicas)
	replicaIDs := make(map[string]struct{}, r.replicas)
	for i := range replicas {
		v := node.replicate()
		replicas[i] = v
		replicaIDs[v.ID()] = struct{}{}
	}

	for _, v := range replicas {
		r.ring.add(v)
		r.replicaNode[v.ID()] = node.ID()
		r.nodes[v.ID()] = v
	}
	r.nodeReplicas[node.ID()] = replicaIDs
	r.nodes[node.ID()] = node
	r.ring.add(node)
	return nil
}

// Remove leaves a physical node from the ring: the node and every one
// of its replicas are erased from the directories and the ring. After
// Remove returns successfully, no id associated with node appears in
// any directory or on the ring.
func (r *Ring) Remove(node Node) error {
	replicaIDs, ok := r.nodeReplicas[node.ID()]
	if !ok {
		return apperrors.NotFound(fmt.Sprintf("unknown node id %q", node.ID()), ErrUnknownNode)
	}

	// Resolve every replica up front, before mutating anything, so a
	// missing directory entry bails out with the ring and directories
	// still exactly as they were. Mutating as we went would risk
	// leaving the ring half-dismantled if the invariant breach surfaced
	// partway through the loop.
	replicas := make([]Node, 0, len(replicaIDs))
	for id := range replicaIDs {
		v, ok := r.nodes[id]
		if !ok {
			return apperrors.Internal(fmt.Sprintf("replica id %q missing from node directory", id), nil)
		}
		replicas = append(replicas, v)
	}

	for _, v := range replicas {
		r.ring.remove(v)
		delete(r.replicaNode, v.ID())
		delete(r.nodes, v.ID())
	}
	r.ring.remove(node)
	delete(r.nodeReplicas, node.ID())
	delete(r.nodes, node.ID())
	return nil
}

// Route hashes request into the ring's own coordinate space, finds the
// nearest occupied bucket clockwise (wrapping if necessary), and picks
// a single physical owner from it.
func (r *Ring) Route(request Serializable) (Node, error) {
	h := r.ring.hashFn()(request)
	bucket, ok := r.ring.findNearest(h)
	if !ok {
		return Node{}, apperrors.NotFound("route on empty ring", ErrEmptyRing)
	}
	return r.pick(bucket)
}

// pick collapses a bucket's occupants down to a single physical
// owner. A bucket is almost always owned by exactly one physical node;
// when two or more physical nodes collide into the same bucket, one is
// chosen uniformly at random so that load from the collision is spread
// symmetrically rather than always favoring one node.
func (r *Ring) pick(bucket *Set[Node]) (Node, error) {
	occupants := bucket.Values()
	if len(occupants) == 1 {
		return r.resolvePhysicalOwner(occupants[0])
	}

	physicalIDs := make(map[string]struct{}, len(occupants))
	for _, o := range occupants {
		if o.IsPhysical() {
			physicalIDs[o.ID()] = struct{}{}
			continue
		}
		owner, ok := r.replicaNode[o.ID()]
		if !ok {
			return Node{}, apperrors.Internal(fmt.Sprintf("replica id %q has no owning physical node", o.ID()), nil)
		}
		physicalIDs[owner] = struct{}{}
	}

	if len(physicalIDs) == 1 {
		for id := range physicalIDs {
			return r.lookupNode(id)
		}
	}

	ids := make([]string, 0, len(physicalIDs))
	for id := range physicalIDs {
		ids = append(ids, id)
	}
	// Sort first so that, given a seeded RandSource, the tie-break is
	// reproducible independent of map iteration order.
	sort.Strings(ids)
	return r.lookupNode(ids[r.rand.IntN(len(ids))])
}

func (r *Ring) resolvePhysicalOwner(occupant Node) (Node, error) {
	if occupant.IsPhysical() {
		return occupant, nil
	}
	owner, ok := r.replicaNode[occupant.ID()]
	if !ok {
		return Node{}, apperrors.Internal(fmt.Sprintf("replica id %q has no owning physical node", occupant.ID()), nil)
	}
	return r.lookupNode(owner)
}

func (r *Ring) lookupNode(id string) (Node, error) {
	node, ok := r.nodes[id]
	if !ok {
		return Node{}, apperrors.Internal(fmt.Sprintf("directory references unknown id %q", id), nil)
	}
	return node, nil
}

// Size returns the number of currently accepted physical nodes.
func (r *Ring) Size() int {
	return len(r.nodeReplicas)
}

// Nodes returns a snapshot of every currently accepted physical node.
func (r *Ring) Nodes() []Node {
	out := make([]Node, 0, len(r.nodeReplicas))
	for id := range r.nodeReplicas {
		out = append(out, r.nodes[id])
	}
	return out
}

// String renders a print-friendly dump of occupied ring positions, one
// line per occupant (physical or virtual) in ascending position order,
// useful for tests and diagnostics. Occupants sharing a position are
// listed in unspecified order.
func (r *Ring) String() string {
	var b strings.Builder
	r.ring.tree.Ascend(func(entry bucketEntry[Node]) bool {
		for _, node := range entry.occupants.Values() {
			fmt.Fprintf(&b, "%d: %s\n", entry.pos, node)
		}
		return true
	})
	return b.String()
}
