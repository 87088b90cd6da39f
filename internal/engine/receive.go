package engine

import (
	"github.com/trillbridge/rbridge/internal/bridge"
	"github.com/trillbridge/rbridge/internal/header"
	"github.com/trillbridge/rbridge/internal/pktbuf"
	"github.com/trillbridge/rbridge/internal/state"
)

// receiveTRILL implements §4.9: the receive path for a frame that
// arrived on a fabric port with the TRILL EtherType.
func (e *Engine) receiveTRILL(port bridge.Port, buf *pktbuf.Buffer, vid uint16) Result {
	outer := bridge.Ethernet(buf.Bytes())

	// The outer-MAC drop rule (§9 design note): without this check,
	// flooded TRILL frames circulate the fabric until hop-count expiry.
	if outer.DstMAC() != port.MAC() {
		return e.drop("receive", state.KindLoopDetected, true)
	}

	if buf.Len() < bridge.EthernetHeaderSize+header.Size {
		return e.drop("receive", state.KindMalformedHeader, true)
	}
	th, err := header.Parse(buf.Bytes()[bridge.EthernetHeaderSize:])
	if err != nil {
		return e.dropWrap("receive", state.KindMalformedHeader, true, err)
	}

	trhSize := th.TotalSize()
	need := bridge.EthernetHeaderSize + trhSize + bridge.EthernetHeaderSize
	if buf.Len() < need {
		return e.drop("receive", state.KindMalformedHeader, true)
	}

	buf.SetEncapsulated(bridge.EthernetHeaderSize + trhSize)

	egress := state.Nickname(th.EgressNick())
	ingress := state.Nickname(th.IngressNick())
	if !state.Valid(egress) || !state.Valid(ingress) {
		return e.drop("receive", state.KindInvalidNickname, true)
	}
	if th.Version() != header.ProtocolVersion {
		return e.drop("receive", state.KindMalformedHeader, true)
	}
	localNick := e.State.LocalNick()
	if ingress == localNick {
		return e.drop("receive", state.KindLoopDetected, true)
	}

	var frameVNI *uint32
	if th.OptLen() == 0 {
		// no extension present; nothing to validate or extract.
	} else if !e.VNTEnabled {
		return e.drop("receive", state.KindMalformedHeader, true)
	} else {
		if th.ExtensionSize() < optExtensionSize {
			return e.drop("receive", state.KindMalformedHeader, true)
		}
		vntBytes := buf.Bytes()[bridge.EthernetHeaderSize+header.Size+header.OptSize:]
		vnt, err := header.ParseVnt(vntBytes)
		if err != nil {
			return e.dropWrap("receive", state.KindMalformedHeader, true, err)
		}
		// Intended semantics per §9 open question 1: compare the
		// extension's own type accessor against VntExtensionType.
		if vnt.Type() != header.VntExtensionType {
			return e.drop("receive", state.KindMalformedHeader, true)
		}
		vni := vnt.VNI()
		frameVNI = &vni
	}

	if !th.MultiDestination() {
		return e.receiveUnicast(port, buf, th, egress, ingress, localNick, vid, frameVNI)
	}
	return e.receiveMultiDestination(port, buf, th, egress, ingress, vid, frameVNI)
}

func (e *Engine) receiveUnicast(port bridge.Port, buf *pktbuf.Buffer, th header.Trill, egress, ingress, localNick state.Nickname, vid uint16, frameVNI *uint32) Result {
	if egress == ingress {
		return e.drop("receive_unicast", state.KindLoopDetected, true)
	}
	if egress == localNick {
		return e.Decapsulate(port, buf, ingress, vid, frameVNI)
	}
	if th.HopCount() > 0 {
		outer := bridge.Ethernet(buf.Bytes())
		e.FDB.Update(port, outer.SrcMAC(), vid)
		return e.ForwardFrame(buf, egress, vid)
	}
	return e.drop("receive_unicast", state.KindHopCountExhausted, true)
}

func (e *Engine) receiveMultiDestination(port bridge.Port, buf *pktbuf.Buffer, th header.Trill, egress, ingress state.Nickname, vid uint16, frameVNI *uint32) Result {
	dest := e.State.Neighbors.Lookup(egress)
	if dest == nil {
		return e.drop("receive_multi", state.KindUnknownNeighbor, true)
	}
	adjacencies := dest.Node().Info.Adjacencies
	dest.Release()

	outerSrc := bridge.Ethernet(buf.Bytes()).SrcMAC()

	adjacencyOK := false
	for _, a := range adjacencies {
		ah := e.State.Neighbors.Lookup(a)
		if ah == nil {
			continue
		}
		match := ah.Node().Info.AdjSNPA == outerSrc
		ah.Release()
		if match {
			adjacencyOK = true
			break
		}
	}
	if !adjacencyOK {
		return e.drop("receive_multi", state.KindWrongAdjacency, true)
	}

	if !e.rpfCheck(ingress, egress) {
		return e.drop("receive_multi", state.KindFailedRpf, true)
	}

	if th.HopCount() == 0 {
		return e.drop("receive_multi", state.KindHopCountExhausted, true)
	}

	clone := buf.Copy()
	e.Replicate(clone, egress, ingress, &outerSrc, vid, false, true)
	return e.Decapsulate(port, buf, ingress, vid, frameVNI)
}

// rpfCheck implements the reverse-path-forwarding check of §4.9 step 7:
// the ingress node must advertise egress among its dt_roots, except that
// a node advertising no dt_roots at all is accepted only when egress is
// this bridge's own configured tree_root. An ingress node absent from the
// NeighborTable is not the exception case — it is always a drop, matching
// rbr_recv's source_node == NULL check.
func (e *Engine) rpfCheck(ingress, egress state.Nickname) bool {
	h := e.State.Neighbors.Lookup(ingress)
	if h == nil {
		return false
	}
	defer h.Release()
	roots := h.Node().Info.DTRoots
	if len(roots) == 0 {
		return egress == e.State.TreeRoot()
	}
	for _, r := range roots {
		if r == egress {
			return true
		}
	}
	return false
}
