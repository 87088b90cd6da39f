package state

import "sync/atomic"

// NeighborInfo is the control-plane-supplied descriptor for one remote
// RBridge, as installed by the daemon that maintains the TRILL topology.
type NeighborInfo struct {
	// AdjSNPA is the outer-Ethernet MAC of the RBridge directly adjacent on
	// the physical link used to reach this neighbour.
	AdjSNPA [6]byte
	// Adjacencies are the nicknames reachable through this node when it is
	// used as a distribution-tree root.
	Adjacencies []Nickname
	// DTRoots are the distribution-tree root nicknames this node advertises
	// as using.
	DTRoots []Nickname
}

// RbrNode is a reference-counted record wrapping a NeighborInfo. It is
// shared between the NeighborTable slot that owns it and any in-flight
// forwarding operation that has looked it up; the table's own reference is
// one among many, and the node is only eligible for collection once every
// holder has released it.
type RbrNode struct {
	Info NeighborInfo

	refs atomic.Int32
}

// NewRbrNode creates a node with a single reference, held by the caller
// (normally the table slot it is about to be installed into).
func NewRbrNode(info NeighborInfo) *RbrNode {
	n := &RbrNode{Info: info}
	n.refs.Store(1)
	return n
}

// retain adds one reference and returns the node, for chaining at lookup
// sites.
func (n *RbrNode) retain() *RbrNode {
	n.refs.Add(1)
	return n
}

// release drops one reference. It never frees anything explicitly — Go's
// collector reclaims the node once nothing holds a pointer to it — but it
// is still meaningful: refs reaching zero is the signal tests use to assert
// that eviction plus reader drain was clean.
func (n *RbrNode) release() int32 {
	return n.refs.Add(-1)
}

// RefCount reports the current reference count, for diagnostics and tests.
func (n *RbrNode) RefCount() int32 {
	return n.refs.Load()
}

// OwnedHandle is a temporary ownership share on an RbrNode returned from a
// NeighborTable lookup. Callers must call Release exactly once.
type OwnedHandle struct {
	node *RbrNode
}

// Node returns the underlying neighbour record. It remains valid until
// Release is called.
func (h *OwnedHandle) Node() *RbrNode {
	if h == nil {
		return nil
	}
	return h.node
}

// Release drops the reference this handle represents. Safe to call on a nil
// handle (a miss from a lookup that found nothing).
func (h *OwnedHandle) Release() {
	if h == nil || h.node == nil {
		return
	}
	h.node.release()
	h.node = nil
}
