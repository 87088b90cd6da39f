package engine

import (
	"github.com/trillbridge/rbridge/internal/bridge"
	"github.com/trillbridge/rbridge/internal/header"
	"github.com/trillbridge/rbridge/internal/pktbuf"
	"github.com/trillbridge/rbridge/internal/stats"
	"github.com/trillbridge/rbridge/internal/state"
)

// ForwardFrame implements the unicast Forwarder of §4.5: resolve the
// egress neighbour, decrement hop count, rewrite outer addresses, and
// hand off to either the per-port forward primitive (on an fdb hit) or
// the TRILL-flood primitive.
func (e *Engine) ForwardFrame(buf *pktbuf.Buffer, egressNick state.Nickname, vid uint16) Result {
	handle := e.State.Neighbors.Lookup(egressNick)
	if handle == nil {
		return e.drop("forward", state.KindUnknownNeighbor, false)
	}
	defer handle.Release()

	outer := bridge.Ethernet(buf.Bytes())
	th := header.New(buf.Bytes()[bridge.EthernetHeaderSize:])
	th.DecrementHopCount()

	adjSNPA := handle.Node().Info.AdjSNPA
	outer.SetSrcMAC(e.State.Device().OwnMAC())
	outer.SetDstMAC(adjSNPA)

	// The fdb is keyed on the outer next-hop MAC just written above, not
	// the inner destination: rbr_fwd_finish resolves __br_fdb_get against
	// eth_hdr(skb)->h_dest after rbr_fwd has already rewritten it to the
	// adjacency's adj_snpa, which is how a transit RBridge resolves an
	// egress port for a station several hops away.
	entry, found := e.FDB.Get(adjSNPA, vid)
	if found {
		e.FDB.Refresh(adjSNPA, vid)
		outer.SetSrcMAC(entry.Port.MAC())
		e.Forward.Forward(entry.Port, buf)
	} else {
		e.Forward.TrillFloodForward(buf)
	}

	stats.FramesForwarded.Add(1)
	return Consumed
}
