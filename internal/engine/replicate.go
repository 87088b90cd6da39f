package engine

import (
	"github.com/google/uuid"

	"github.com/trillbridge/rbridge/internal/pktbuf"
	"github.com/trillbridge/rbridge/internal/stats"
	"github.com/trillbridge/rbridge/internal/state"
)

// Replicate implements the distribution-tree Replicator of §4.6: for
// every surviving adjacency of the egress node, forward a copy; the first
// surviving adjacency reuses buf itself (deferred, per §9's "avoid one
// copy on the arrival path" optimisation) and every later one gets a
// true clone, since each copy's outer addresses are rewritten in place.
// sourceOuterMAC, when non-nil, prunes the adjacency the frame arrived
// on. If no adjacency survives and freeOnExhaustion is set, buf is
// simply dropped (there is nothing further to do with it; Go's collector
// reclaims it once this call returns).
func (e *Engine) Replicate(buf *pktbuf.Buffer, egressNick, ingressNick state.Nickname, sourceOuterMAC *[6]byte, vid uint16, freeOnExhaustion bool, isRx bool) Result {
	root := e.State.Neighbors.Lookup(egressNick)
	if root == nil {
		return e.drop("replicate", state.KindUnknownNeighbor, isRx)
	}
	adjacencies := root.Node().Info.Adjacencies
	root.Release()

	traceID := uuid.New()

	var saved state.Nickname
	savedFound := false

	for _, a := range adjacencies {
		if !state.Valid(a) || a == ingressNick {
			continue
		}
		ah := e.State.Neighbors.Lookup(a)
		if ah == nil {
			continue
		}
		adjSNPA := ah.Node().Info.AdjSNPA
		ah.Release()

		if sourceOuterMAC != nil && adjSNPA == *sourceOuterMAC {
			continue
		}

		if !savedFound {
			saved = a
			savedFound = true
			continue
		}

		clone := buf.Copy()
		if e.Log != nil {
			e.Log.Debug("replicate clone", "trace", traceID, "adjacency", a)
		}
		e.ForwardFrame(clone, a, vid)
	}

	if savedFound {
		if e.Log != nil {
			e.Log.Debug("replicate original", "trace", traceID, "adjacency", saved)
		}
		e.ForwardFrame(buf, saved, vid)
	}
	// else: no adjacency survived pruning — buf has no receiver and is
	// simply left unforwarded. freeOnExhaustion only distinguishes
	// whether the caller still holds another reference to this buffer
	// (the receive path's original, decapsulated separately) or handed
	// Replicate sole ownership (the Encapsulator's own buffer); either
	// way there's nothing further for Replicate itself to do here.

	stats.FramesReplicated.Add(1)
	return Consumed
}
