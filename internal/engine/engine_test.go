package engine_test

import (
	"bytes"
	"testing"

	"github.com/trillbridge/rbridge/internal/bridge"
	"github.com/trillbridge/rbridge/internal/engine"
	"github.com/trillbridge/rbridge/internal/header"
	"github.com/trillbridge/rbridge/internal/pktbuf"
	"github.com/trillbridge/rbridge/internal/state"
	"github.com/trillbridge/rbridge/internal/testbridge"
)

var (
	macMA  = [6]byte{0, 0, 0, 0, 0, 0xA1}
	macMB  = [6]byte{0, 0, 0, 0, 0, 0xA2}
	macMC  = [6]byte{0, 0, 0, 0, 0, 0xA3}
	macMD  = [6]byte{0, 0, 0, 0, 0, 0xA4}
	macMR  = [6]byte{0, 0, 0, 0, 0, 0xA5}
	macMZ  = [6]byte{0, 0, 0, 0, 0, 0xA6}
	macES1 = [6]byte{0, 0, 0, 0, 1, 0xB1}
	macES2 = [6]byte{0, 0, 0, 0, 1, 0xB2}

	// Device addresses of the local ports the fdb resolves each adjacency
	// through, keyed on the adjacency's own adj_snpa (the outer next-hop
	// MAC), the way rbr_fwd_finish resolves __br_fdb_get.
	macPortToB = [6]byte{0, 0, 0, 0, 2, 0xC1}
	macPortToC = [6]byte{0, 0, 0, 0, 2, 0xC2}
	macPortToD = [6]byte{0, 0, 0, 0, 2, 0xC3}

	nickA = state.Nickname(0x0001)
	nickB = state.Nickname(0x0002)
	nickC = state.Nickname(0x0003)
	nickD = state.Nickname(0x0004)
	nickZ = state.Nickname(0x0005)
	nickW = state.Nickname(0x0006)
)

const vid = 10

func ethFrame(dst, src [6]byte, etherType uint16, payload []byte) []byte {
	f := make([]byte, bridge.EthernetHeaderSize+len(payload))
	e := bridge.Ethernet(f)
	e.SetDstMAC(dst)
	e.SetSrcMAC(src)
	e.SetType(etherType)
	copy(f[bridge.EthernetHeaderSize:], payload)
	return f
}

func trillFrame(outerDst, outerSrc [6]byte, multiDest bool, hop uint8, egress, ingress state.Nickname, inner []byte) []byte {
	f := make([]byte, bridge.EthernetHeaderSize+header.Size+len(inner))
	outer := bridge.Ethernet(f)
	outer.SetDstMAC(outerDst)
	outer.SetSrcMAC(outerSrc)
	outer.SetType(bridge.EtherTypeTRILL)

	th := header.New(f[bridge.EthernetHeaderSize:])
	th.SetVersion(header.ProtocolVersion)
	th.SetMultiDestination(multiDest)
	th.SetOptLen(0)
	th.SetHopCount(hop)
	th.SetEgressNick(uint16(egress))
	th.SetIngressNick(uint16(ingress))

	copy(f[bridge.EthernetHeaderSize+header.Size:], inner)
	return f
}

func newEngine(br *testbridge.Bridge, localNick state.Nickname) (*engine.Engine, *state.RbrState) {
	rs := state.Enable(br, false, nil)
	if localNick != state.NicknameNone {
		rs.SetLocalNick(localNick)
	}
	eng := &engine.Engine{
		State:           rs,
		FDB:             br,
		Forward:         br,
		PortInfo:        br,
		STP:             br,
		NickRes:         br,
		VNI:             br,
		DefaultHopCount: 32,
	}
	return eng, rs
}

// Scenario 1: unicast encapsulation on a guest port.
func TestScenario1UnicastEncap(t *testing.T) {
	br := testbridge.New("A", macMA)
	eng, rs := newEngine(br, nickA)
	if err := rs.InstallNeighbor(nickB, state.NeighborInfo{AdjSNPA: macMB}); err != nil {
		t.Fatalf("InstallNeighbor: %v", err)
	}
	br.NickOf[macES2] = nickB
	br.IngressPort = &testbridge.Port{PortID: 1, Guest: true}
	br.AllowedVID = vid
	portToB := &testbridge.Port{PortID: 2, PortName: "toB", PortMAC: macPortToB}
	br.Update(portToB, macMB, vid)

	inner := ethFrame(macES2, macES1, 0x0800, []byte("payload"))
	buf := pktbuf.New(inner, engine.EncapHeadroom(false))

	if got := eng.HandleFrame(buf, false); got != engine.Consumed {
		t.Fatalf("HandleFrame = %v, want Consumed", got)
	}

	if len(br.Forwarded) != 1 {
		t.Fatalf("Forwarded count = %d, want 1", len(br.Forwarded))
	}
	data := br.Forwarded[0].Data
	outer := bridge.Ethernet(data)
	if outer.SrcMAC() != macPortToB || outer.DstMAC() != macMB {
		t.Fatalf("outer = %x->%x, want %x->%x", outer.SrcMAC(), outer.DstMAC(), macPortToB, macMB)
	}
	th := header.New(data[bridge.EthernetHeaderSize:])
	if th.Version() != header.ProtocolVersion || th.MultiDestination() || th.HopCount() != 32 {
		t.Fatalf("trill header = %+v", th)
	}
	if th.EgressNick() != uint16(nickB) || th.IngressNick() != uint16(nickA) {
		t.Fatalf("nicks = egress %d ingress %d", th.EgressNick(), th.IngressNick())
	}
	gotInner := data[bridge.EthernetHeaderSize+header.Size:]
	if !bytes.Equal(gotInner, inner) {
		t.Fatalf("inner frame mutated: got %x, want %x", gotInner, inner)
	}
}

// Scenario 2: unicast transit forwarding.
func TestScenario2UnicastTransit(t *testing.T) {
	br := testbridge.New("B", macMB)
	eng, rs := newEngine(br, nickB)
	if err := rs.InstallNeighbor(nickC, state.NeighborInfo{AdjSNPA: macMC}); err != nil {
		t.Fatalf("InstallNeighbor: %v", err)
	}
	fabricPort := &testbridge.Port{PortID: 1, Guest: false, PortMAC: macMB}
	br.IngressPort = fabricPort
	br.AllowedVID = vid
	portToC := &testbridge.Port{PortID: 2, PortName: "toC", PortMAC: macPortToC}
	br.Update(portToC, macMC, vid)

	inner := ethFrame(macES2, macES1, 0x0800, nil)
	frame := trillFrame(macMB, macMA, false, 5, nickC, nickA, inner)
	buf := pktbuf.New(frame, 0)

	if got := eng.HandleFrame(buf, false); got != engine.Consumed {
		t.Fatalf("HandleFrame = %v, want Consumed", got)
	}
	if len(br.Forwarded) != 1 {
		t.Fatalf("Forwarded count = %d, want 1", len(br.Forwarded))
	}
	data := br.Forwarded[0].Data
	outer := bridge.Ethernet(data)
	if outer.SrcMAC() != macPortToC || outer.DstMAC() != macMC {
		t.Fatalf("outer = %x->%x, want %x->%x", outer.SrcMAC(), outer.DstMAC(), macPortToC, macMC)
	}
	th := header.New(data[bridge.EthernetHeaderSize:])
	if th.HopCount() != 4 {
		t.Fatalf("HopCount() = %d, want 4", th.HopCount())
	}
}

// Scenario 3: decapsulation with an fdb hit.
func TestScenario3Decap(t *testing.T) {
	br := testbridge.New("C", macMC)
	eng, rs := newEngine(br, nickC)
	fabricPort := &testbridge.Port{PortID: 1, Guest: false, PortMAC: macMC}
	br.IngressPort = fabricPort
	br.AllowedVID = vid

	p := &testbridge.Port{PortID: 2, PortName: "p2"}
	br.Update(p, macES2, vid)

	inner := ethFrame(macES2, macES1, 0x0800, []byte("hi"))
	frame := trillFrame(macMC, macMB, false, 3, nickC, nickA, inner)
	buf := pktbuf.New(frame, 0)

	if got := eng.HandleFrame(buf, false); got != engine.Consumed {
		t.Fatalf("HandleFrame = %v, want Consumed", got)
	}
	if len(br.Delivered) != 1 {
		t.Fatalf("Delivered count = %d, want 1", len(br.Delivered))
	}
	if !bytes.Equal(br.Delivered[0].Data, inner) {
		t.Fatalf("delivered = %x, want %x", br.Delivered[0].Data, inner)
	}
	entry, ok := br.Get(macES1, vid)
	if !ok || entry.Nick != nickA || !entry.HasNick {
		t.Fatalf("fdb learning = %+v, %v, want nick %d", entry, ok, nickA)
	}
	_ = rs
}

// Scenario 4: multi-destination replication with link pruning.
func TestScenario4MultiDestReplication(t *testing.T) {
	br := testbridge.New("R", macMR)
	eng, rs := newEngine(br, nickA)
	if err := rs.SetTreeRoot(nickA); err != nil {
		t.Fatalf("SetTreeRoot: %v", err)
	}
	if err := rs.InstallNeighbor(nickA, state.NeighborInfo{Adjacencies: []state.Nickname{nickB, nickD}}); err != nil {
		t.Fatalf("InstallNeighbor(A): %v", err)
	}
	if err := rs.InstallNeighbor(nickB, state.NeighborInfo{AdjSNPA: macMB}); err != nil {
		t.Fatalf("InstallNeighbor(B): %v", err)
	}
	if err := rs.InstallNeighbor(nickD, state.NeighborInfo{AdjSNPA: macMD}); err != nil {
		t.Fatalf("InstallNeighbor(D): %v", err)
	}
	if err := rs.InstallNeighbor(nickZ, state.NeighborInfo{AdjSNPA: macMZ, DTRoots: nil}); err != nil {
		t.Fatalf("InstallNeighbor(Z): %v", err)
	}
	fabricPort := &testbridge.Port{PortID: 1, Guest: false, PortMAC: macMR}
	br.IngressPort = fabricPort
	br.AllowedVID = vid
	portToD := &testbridge.Port{PortID: 2, PortName: "toD", PortMAC: macPortToD}
	br.Update(portToD, macMD, vid)

	inner := ethFrame(macES2, macES1, 0x0800, nil)
	frame := trillFrame(macMR, macMB, true, 5, nickA, nickZ, inner)
	buf := pktbuf.New(frame, 0)

	if got := eng.HandleFrame(buf, false); got != engine.Consumed {
		t.Fatalf("HandleFrame = %v, want Consumed", got)
	}

	if len(br.Forwarded) != 1 {
		t.Fatalf("Forwarded count = %d, want 1 (only D)", len(br.Forwarded))
	}
	outer := bridge.Ethernet(br.Forwarded[0].Data)
	if outer.SrcMAC() != macPortToD || outer.DstMAC() != macMD {
		t.Fatalf("replicated outer = %x->%x, want %x->%x", outer.SrcMAC(), outer.DstMAC(), macPortToD, macMD)
	}
	th := header.New(br.Forwarded[0].Data[bridge.EthernetHeaderSize:])
	if th.HopCount() != 4 {
		t.Fatalf("replicated HopCount() = %d, want 4", th.HopCount())
	}
	if len(br.Delivered) != 1 && len(br.EndstationFloods) != 1 {
		t.Fatalf("expected one local decapsulation delivery, got Delivered=%d EndstationFloods=%d", len(br.Delivered), len(br.EndstationFloods))
	}
}

// Scenario 5: RPF failure.
func TestScenario5RPFFailure(t *testing.T) {
	br := testbridge.New("R", macMR)
	eng, rs := newEngine(br, nickA)
	if err := rs.SetTreeRoot(nickA); err != nil {
		t.Fatalf("SetTreeRoot: %v", err)
	}
	if err := rs.InstallNeighbor(nickA, state.NeighborInfo{Adjacencies: []state.Nickname{nickB, nickD}}); err != nil {
		t.Fatalf("InstallNeighbor(A): %v", err)
	}
	if err := rs.InstallNeighbor(nickB, state.NeighborInfo{AdjSNPA: macMB}); err != nil {
		t.Fatalf("InstallNeighbor(B): %v", err)
	}
	if err := rs.InstallNeighbor(nickD, state.NeighborInfo{AdjSNPA: macMD}); err != nil {
		t.Fatalf("InstallNeighbor(D): %v", err)
	}
	if err := rs.InstallNeighbor(nickZ, state.NeighborInfo{AdjSNPA: macMZ, DTRoots: []state.Nickname{nickW}}); err != nil {
		t.Fatalf("InstallNeighbor(Z): %v", err)
	}
	fabricPort := &testbridge.Port{PortID: 1, Guest: false, PortMAC: macMR}
	br.IngressPort = fabricPort
	br.AllowedVID = vid

	inner := ethFrame(macES2, macES1, 0x0800, nil)
	frame := trillFrame(macMR, macMB, true, 5, nickA, nickZ, inner)
	buf := pktbuf.New(frame, 0)

	if got := eng.HandleFrame(buf, false); got != engine.Consumed {
		t.Fatalf("HandleFrame = %v, want Consumed", got)
	}
	if len(br.Forwarded) != 0 {
		t.Fatalf("Forwarded count = %d, want 0 on RPF failure", len(br.Forwarded))
	}
	if len(br.Delivered) != 0 || len(br.EndstationFloods) != 0 {
		t.Fatalf("expected no local delivery on RPF failure")
	}
	if br.RxDropped != 1 {
		t.Fatalf("RxDropped = %d, want 1", br.RxDropped)
	}
}

// RPF failure: a multi-destination frame whose ingress nickname is absent
// from the NeighborTable entirely must drop even when egress happens to
// equal the local tree root. An unknown ingress is never the "no
// dt_roots advertised" exception case.
func TestRPFFailureUnknownIngress(t *testing.T) {
	br := testbridge.New("R", macMR)
	eng, rs := newEngine(br, nickA)
	if err := rs.SetTreeRoot(nickA); err != nil {
		t.Fatalf("SetTreeRoot: %v", err)
	}
	if err := rs.InstallNeighbor(nickA, state.NeighborInfo{Adjacencies: []state.Nickname{nickB}}); err != nil {
		t.Fatalf("InstallNeighbor(A): %v", err)
	}
	if err := rs.InstallNeighbor(nickB, state.NeighborInfo{AdjSNPA: macMB}); err != nil {
		t.Fatalf("InstallNeighbor(B): %v", err)
	}
	fabricPort := &testbridge.Port{PortID: 1, Guest: false, PortMAC: macMR}
	br.IngressPort = fabricPort
	br.AllowedVID = vid

	// nickZ is never installed in the NeighborTable.
	inner := ethFrame(macES2, macES1, 0x0800, nil)
	frame := trillFrame(macMR, macMB, true, 5, nickA, nickZ, inner)
	buf := pktbuf.New(frame, 0)

	if got := eng.HandleFrame(buf, false); got != engine.Consumed {
		t.Fatalf("HandleFrame = %v, want Consumed", got)
	}
	if len(br.Forwarded) != 0 {
		t.Fatalf("Forwarded count = %d, want 0 on RPF failure from unknown ingress", len(br.Forwarded))
	}
	if len(br.Delivered) != 0 || len(br.EndstationFloods) != 0 {
		t.Fatalf("expected no local delivery on RPF failure from unknown ingress")
	}
	if br.RxDropped != 1 {
		t.Fatalf("RxDropped = %d, want 1", br.RxDropped)
	}
}

// Scenario 6: self-loop guard on the receive path.
func TestScenario6LoopGuard(t *testing.T) {
	br := testbridge.New("A", macMA)
	eng, _ := newEngine(br, nickA)
	fabricPort := &testbridge.Port{PortID: 1, Guest: false, PortMAC: macMA}
	br.IngressPort = fabricPort
	br.AllowedVID = vid

	inner := ethFrame(macES2, macES1, 0x0800, nil)
	frame := trillFrame(macMA, macMB, false, 5, nickC, nickA, inner)
	buf := pktbuf.New(frame, 0)

	if got := eng.HandleFrame(buf, false); got != engine.Consumed {
		t.Fatalf("HandleFrame = %v, want Consumed", got)
	}
	if len(br.Forwarded) != 0 || len(br.Delivered) != 0 {
		t.Fatalf("loop guard let a frame through: forwarded=%d delivered=%d", len(br.Forwarded), len(br.Delivered))
	}
	if br.RxDropped != 1 {
		t.Fatalf("RxDropped = %d, want 1", br.RxDropped)
	}
}

// Boundary: hop_count = 0 on a unicast transit frame is always dropped.
func TestBoundaryHopCountZero(t *testing.T) {
	br := testbridge.New("B", macMB)
	eng, rs := newEngine(br, nickB)
	if err := rs.InstallNeighbor(nickC, state.NeighborInfo{AdjSNPA: macMC}); err != nil {
		t.Fatalf("InstallNeighbor: %v", err)
	}
	fabricPort := &testbridge.Port{PortID: 1, Guest: false, PortMAC: macMB}
	br.IngressPort = fabricPort
	br.AllowedVID = vid

	inner := ethFrame(macES2, macES1, 0x0800, nil)
	frame := trillFrame(macMB, macMA, false, 0, nickC, nickA, inner)
	buf := pktbuf.New(frame, 0)

	if got := eng.HandleFrame(buf, false); got != engine.Consumed {
		t.Fatalf("HandleFrame = %v, want Consumed", got)
	}
	if len(br.Forwarded) != 0 {
		t.Fatalf("Forwarded count = %d, want 0", len(br.Forwarded))
	}
}

// Boundary: a buffer shorter than trh_size+ETH_HLEN is dropped as
// malformed.
func TestBoundaryShortBuffer(t *testing.T) {
	br := testbridge.New("B", macMB)
	eng, _ := newEngine(br, nickB)
	fabricPort := &testbridge.Port{PortID: 1, Guest: false, PortMAC: macMB}
	br.IngressPort = fabricPort
	br.AllowedVID = vid

	frame := trillFrame(macMB, macMA, false, 5, nickC, nickA, nil)
	short := frame[:bridge.EthernetHeaderSize+header.Size-2]
	buf := pktbuf.New(short, 0)

	if got := eng.HandleFrame(buf, false); got != engine.Consumed {
		t.Fatalf("HandleFrame = %v, want Consumed", got)
	}
	if br.RxDropped != 1 {
		t.Fatalf("RxDropped = %d, want 1", br.RxDropped)
	}
}

// Boundary: disabling TRILL makes HandleFrame a pure pass-through.
func TestDisabledPassesThrough(t *testing.T) {
	br := testbridge.New("B", macMB)
	eng, rs := newEngine(br, nickB)
	rs.Disable()

	frame := ethFrame(macES2, macES1, 0x0800, nil)
	buf := pktbuf.New(frame, 0)

	if got := eng.HandleFrame(buf, false); got != engine.Pass {
		t.Fatalf("HandleFrame = %v, want Pass", got)
	}
}
