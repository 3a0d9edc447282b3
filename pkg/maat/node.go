package maat

import (
	"fmt"

	"github.com/google/uuid"
)

// Node is a ring occupant: a physical backend or one of its virtual
// replicas. Node is a concrete record, not an interface: the ring
// never needs heterogeneous node types, so there is nothing to gain
// from dynamic dispatch here. Equality is full-tuple equality (id,
// serialized form, and the physical flag all have to match), which a
// plain comparable struct gives for free.
type Node struct {
	id         string
	serialized string
	isPhysical bool
}

// NewServer builds a physical node addressed by ip:port. This is the
// library's one concrete node shape; callers needing a different
// physical identity construct their own Serializable and route
// requests through it directly rather than through Node.
func NewServer(ip string, port int) Node {
	return Node{
		id:         uuid.NewString(),
		serialized: fmt.Sprintf("%s@%d", ip, port),
		isPhysical: true,
	}
}

// ID returns the node's immutable unique identity.
func (n Node) ID() string {
	return n.id
}

// IsPhysical reports whether n was introduced by the caller (true) or
// produced by replicate as a virtual stand-in (false).
func (n Node) IsPhysical() bool {
	return n.isPhysical
}

// Serialize implements Serializable.
func (n Node) Serialize() string {
	return n.serialized
}

// replicate returns a fresh non-physical Node standing in for n at an
// additional ring position. Its serialized form is salted with its own
// id: the source this library is based on serialized every replica
// identically to its physical parent (same ip@port), so all of a
// node's replicas collided onto the same bucket and the virtual-node
// mechanism did nothing. Salting with the replica's id gives each
// replica an independent hash position.
func (n Node) replicate() Node {
	replicaID := uuid.NewString()
	return Node{
		id:         replicaID,
		serialized: fmt.Sprintf("%s#%s", n.serialized, replicaID),
		isPhysical: false,
	}
}

// String renders the node for diagnostics.
func (n Node) String() string {
	kind := "virtual"
	if n.isPhysical {
		kind = "physical"
	}
	return fmt.Sprintf("%s(%s, %s)", kind, n.id, n.serialized)
}
