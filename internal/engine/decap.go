package engine

import (
	"github.com/trillbridge/rbridge/internal/bridge"
	"github.com/trillbridge/rbridge/internal/pktbuf"
	"github.com/trillbridge/rbridge/internal/stats"
	"github.com/trillbridge/rbridge/internal/state"
)

// Decapsulate implements §4.7: strip the TRILL header and extensions,
// learn the inner source against ingressNick, and deliver locally —
// either to the fdb-resolved port, the VNI flood set, or the bridge's
// end-station flood primitive. frameVNI is the VNI carried by the frame's
// VNT extension, if any, captured by the caller before this call strips
// the extension bytes away.
func (e *Engine) Decapsulate(port bridge.Port, buf *pktbuf.Buffer, ingressNick state.Nickname, vid uint16, frameVNI *uint32) Result {
	buf.Decapsulate()

	if buf.Len() < bridge.EthernetHeaderSize {
		return e.drop("decapsulate", state.KindMalformedHeader, true)
	}
	inner := bridge.Ethernet(buf.Bytes())
	srcMAC := inner.SrcMAC()
	dstMAC := inner.DstMAC()

	e.FDB.UpdateWithNick(port, srcMAC, vid, ingressNick)

	entry, found := e.FDB.Get(dstMAC, vid)
	if found {
		if e.VNTEnabled && frameVNI != nil {
			destVNI, ok := e.PortInfo.VNIID(entry.Port)
			if !ok || destVNI != *frameVNI {
				return e.drop("decapsulate", state.KindVlanIngressDenied, true)
			}
		}
		e.Forward.Deliver(entry.Port, buf)
	} else if e.VNTEnabled && frameVNI != nil && e.VNI != nil {
		if group, ok := e.VNI.FindVNI(*frameVNI); ok {
			e.VNI.FloodDeliver(group, buf, false)
		} else {
			e.Forward.EndstationDeliver(buf)
		}
	} else {
		e.Forward.EndstationDeliver(buf)
	}

	stats.FramesDecapsulated.Add(1)
	return Consumed
}
