package engine

import (
	"github.com/trillbridge/rbridge/internal/bridge"
	"github.com/trillbridge/rbridge/internal/header"
	"github.com/trillbridge/rbridge/internal/pktbuf"
	"github.com/trillbridge/rbridge/internal/state"
)

// Encapsulate implements §4.4: it takes an end-station frame and a
// resolved egress nickname decision (state.NicknameNone meaning "flood on
// the distribution tree") and either replicates it on the tree or pushes
// a unicast TRILL header and hands it to Forward.
func (e *Engine) Encapsulate(buf *pktbuf.Buffer, egressNick state.Nickname, ingressPort bridge.Port, vid uint16) Result {
	localNick := e.State.LocalNick()
	if !state.Valid(localNick) {
		return e.drop("encapsulate", state.KindInvalidNickname, false)
	}

	if egressNick == state.NicknameNone {
		return e.encapsulateFlood(buf, localNick, ingressPort, vid)
	}

	if !state.Valid(egressNick) {
		return e.drop("encapsulate", state.KindInvalidNickname, false)
	}

	vni, hasVNI := e.portVNI(ingressPort)
	if err := e.pushTrill(buf, false, localNick, egressNick, vni, hasVNI); err != nil {
		return e.dropWrap("encapsulate", state.KindAllocationFailure, false, err)
	}
	return e.ForwardFrame(buf, egressNick, vid)
}

func (e *Engine) encapsulateFlood(buf *pktbuf.Buffer, localNick state.Nickname, ingressPort bridge.Port, vid uint16) Result {
	rootNick := e.distributionTreeRoot(localNick)
	if !state.Valid(rootNick) {
		return e.drop("encapsulate", state.KindInvalidNickname, false)
	}

	localCopy := buf.Copy()
	e.deliverLocalFlood(localCopy, ingressPort)

	vni, hasVNI := e.portVNI(ingressPort)
	if err := e.pushTrill(buf, true, localNick, rootNick, vni, hasVNI); err != nil {
		return e.dropWrap("encapsulate", state.KindAllocationFailure, false, err)
	}
	return e.Replicate(buf, rootNick, localNick, nil, vid, true, false)
}

// distributionTreeRoot resolves the root to encapsulate toward when no
// explicit egress nickname was given: the local node's own advertised
// dt_roots[0] if it has any, else the bridge's configured tree_root.
func (e *Engine) distributionTreeRoot(localNick state.Nickname) state.Nickname {
	if h := e.State.Neighbors.Lookup(localNick); h != nil {
		defer h.Release()
		if roots := h.Node().Info.DTRoots; len(roots) > 0 {
			return roots[0]
		}
	}
	return e.State.TreeRoot()
}

func (e *Engine) deliverLocalFlood(buf *pktbuf.Buffer, ingressPort bridge.Port) {
	if e.VNTEnabled && e.VNI != nil {
		if vni, ok := e.portVNI(ingressPort); ok {
			if group, found := e.VNI.FindVNI(vni); found {
				e.VNI.FloodDeliver(group, buf, false)
				return
			}
		}
	}
	e.Forward.EndstationDeliver(buf)
}

func (e *Engine) portVNI(port bridge.Port) (uint32, bool) {
	if port == nil || e.PortInfo == nil {
		return 0, false
	}
	return e.PortInfo.VNIID(port)
}

// pushTrill performs the encapsulation procedure of §4.4: reinsert any
// accelerated VLAN tag, push the optional opt/VNT extension when a VNI is
// configured, push the TRILL header, push the outer Ethernet header, and
// mark the buffer encapsulated.
func (e *Engine) pushTrill(buf *pktbuf.Buffer, multiDest bool, ingress, egress state.Nickname, vni uint32, hasVNI bool) error {
	if err := buf.ReinsertVLANTag(); err != nil {
		return err
	}

	var optLen uint8
	if hasVNI && e.VNTEnabled {
		region, err := buf.Push(optExtensionSize)
		if err != nil {
			return err
		}
		opt := header.NewOpt(region[:header.OptSize])
		opt.SetFlag(0)
		opt.SetFlow(0)
		vnt := header.NewVnt(region[header.OptSize:])
		vnt.SetType(header.VntExtensionType)
		vnt.SetVNI(vni)
		optLen = uint8(optExtensionSize / 4)
	}

	thBytes, err := buf.Push(header.Size)
	if err != nil {
		return err
	}
	th := header.New(thBytes)
	th.SetVersion(header.ProtocolVersion)
	th.SetMultiDestination(multiDest)
	th.SetOptLen(optLen)
	// ForwardFrame unconditionally decrements hop count on every hop,
	// including this frame's first one; set one above the configured
	// default so DefaultHopCount is what the wire shows after that first
	// decrement (§8 scenario 1: a freshly encapsulated unicast frame is
	// emitted with hop == H_init, not H_init-1).
	th.SetHopCount(e.DefaultHopCount + 1)
	th.SetEgressNick(uint16(egress))
	th.SetIngressNick(uint16(ingress))

	outerBytes, err := buf.Push(bridge.EthernetHeaderSize)
	if err != nil {
		return err
	}
	outer := bridge.Ethernet(outerBytes)
	outer.SetType(bridge.EtherTypeTRILL)

	buf.SetEncapsulated(bridge.EthernetHeaderSize + header.Size + int(optLen)*4)
	return nil
}
