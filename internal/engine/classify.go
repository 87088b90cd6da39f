package engine

import (
	"github.com/trillbridge/rbridge/internal/bridge"
	"github.com/trillbridge/rbridge/internal/pktbuf"
	"github.com/trillbridge/rbridge/internal/state"
)

// HandleFrame is the receive entry point of §4.8: it filters out
// non-applicable frames, distinguishes guest-port traffic from fabric
// traffic, short-circuits local-guest-to-local-guest delivery, and
// otherwise routes to Encapsulate or the TRILL receive path.
func (e *Engine) HandleFrame(buf *pktbuf.Buffer, isLoopback bool) Result {
	if !e.State.Enabled() {
		return Pass
	}
	if isLoopback {
		return Pass
	}

	if buf.Len() < bridge.EthernetHeaderSize {
		return e.drop("classify", state.KindMalformedHeader, true)
	}
	outer := bridge.Ethernet(buf.Bytes())
	srcMAC := outer.SrcMAC()
	if !bridge.IsValidUnicastMAC(srcMAC) {
		return e.drop("classify", state.KindInvalidSourceMac, true)
	}

	vid, ok := e.Forward.AllowedIngress(buf)
	if !ok {
		return e.drop("classify", state.KindVlanIngressDenied, true)
	}

	dstMAC := outer.DstMAC()
	if bridge.IsBPDUGroupMAC(dstMAC) {
		if port, ok := e.PortInfo.PortOf(buf); ok {
			e.FDB.Update(port, srcMAC, vid)
		}
		return Consumed
	}

	port, ok := e.PortInfo.PortOf(buf)
	if !ok {
		return e.drop("classify", state.KindMalformedHeader, true)
	}

	if e.PortInfo.TrillFlag(port) {
		return e.handleGuestPort(port, buf, outer, srcMAC, dstMAC, vid)
	}
	return e.handleFabricPort(port, buf, outer, dstMAC, vid)
}

func (e *Engine) handleGuestPort(port bridge.Port, buf *pktbuf.Buffer, outer bridge.Ethernet, srcMAC, dstMAC [6]byte, vid uint16) Result {
	if e.PortInfo.IsLocalGuestPort(port, dstMAC, vid) {
		// Migration nickname reset (SUPPLEMENTED FEATURES item 2): a
		// plain Update, not UpdateWithNick, clears any stale ingress
		// nickname recorded for a MAC that has since migrated onto a
		// local guest port.
		e.FDB.Update(port, srcMAC, vid)

		entry, found := e.FDB.Get(dstMAC, vid)
		if !found {
			e.Forward.EndstationDeliver(buf)
			return Consumed
		}
		if e.VNTEnabled {
			srcVNI, srcOK := e.PortInfo.VNIID(port)
			dstVNI, dstOK := e.PortInfo.VNIID(entry.Port)
			if srcOK != dstOK || (srcOK && srcVNI != dstVNI) {
				return e.drop("classify_guest", state.KindVlanIngressDenied, true)
			}
		}
		e.Forward.Deliver(entry.Port, buf)
		return Consumed
	}

	nick := e.NickRes.LookupNickFromMAC(port, dstMAC, vid)
	e.FDB.Update(port, srcMAC, vid)
	return e.Encapsulate(buf, nick, port, vid)
}

func (e *Engine) handleFabricPort(port bridge.Port, buf *pktbuf.Buffer, outer bridge.Ethernet, dstMAC [6]byte, vid uint16) Result {
	if outer.Type() == bridge.EtherTypeTRILL {
		return e.receiveTRILL(port, buf, vid)
	}
	if dstMAC == e.State.Device().OwnMAC() {
		e.Forward.HandleFrameFinish(buf)
		return Consumed
	}
	return e.drop("classify_fabric", state.KindMalformedHeader, true)
}
