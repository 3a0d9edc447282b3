package concurrency

import (
	"github.com/ngothanh/maat-hash/pkg/maat"
)

// ConcurrentRing guards a *maat.Ring with a named, instrumented
// read-write lock so that multiple goroutines can share one ring
// instance safely. maat.Ring itself holds no lock: it expects exactly
// this kind of external wrapper, per the package's own doc comment.
//
// Route takes the read lock, since it never mutates the ring's
// directories; Accept and Remove take the write lock.
type ConcurrentRing struct {
	ring *maat.Ring
	mu   *SmartRWMutex
}

// NewConcurrentRing wraps ring with a read-write mutex named for
// logging/debug purposes.
func NewConcurrentRing(ring *maat.Ring, cfg MutexConfig) *ConcurrentRing {
	if cfg.Name == "" {
		cfg.Name = "ConcurrentRing"
	}
	return &ConcurrentRing{
		ring: ring,
		mu:   NewSmartRWMutex(cfg),
	}
}

// Accept joins node to the ring under the write lock.
func (c *ConcurrentRing) Accept(node maat.Node) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ring.Accept(node)
}

// Remove leaves node from the ring under the write lock.
func (c *ConcurrentRing) Remove(node maat.Node) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ring.Remove(node)
}

// Route resolves request to its owning node under the read lock.
func (c *ConcurrentRing) Route(request maat.Serializable) (maat.Node, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ring.Route(request)
}

// Size reports the number of accepted physical nodes under the read
// lock.
func (c *ConcurrentRing) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ring.Size()
}

// Nodes returns a snapshot of accepted physical nodes under the read
// lock.
func (c *ConcurrentRing) Nodes() []maat.Node {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ring.Nodes()
}
