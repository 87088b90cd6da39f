// Package testbridge is an in-memory stand-in for everything the engine
// package treats as an external collaborator (§6), in the spirit of the
// teacher's own mock package: just enough behaviour to drive engine
// tests, with every call recorded for assertions.
package testbridge

import (
	"github.com/trillbridge/rbridge/internal/bridge"
	"github.com/trillbridge/rbridge/internal/pktbuf"
	"github.com/trillbridge/rbridge/internal/stats"
	"github.com/trillbridge/rbridge/internal/state"
)

// Port is a fake bridge.Port.
type Port struct {
	PortID   uint32
	PortName string
	PortMAC  [6]byte
	Guest    bool
	VNI      *uint32
}

func (p *Port) ID() uint32      { return p.PortID }
func (p *Port) Name() string    { return p.PortName }
func (p *Port) MAC() [6]byte    { return p.PortMAC }

// VNIGroup is a fake bridge.VNIGroup.
type VNIGroup struct {
	Vid uint32
}

func (g *VNIGroup) ID() uint32 { return g.Vid }

type fdbKey struct {
	mac [6]byte
	vid uint16
}

// Call records one invocation of an outbound delivery primitive.
type Call struct {
	Port Port
	Data []byte
}

// Bridge implements bridge.FDB, bridge.Forward, bridge.PortInfo,
// bridge.STP, bridge.NickResolution, bridge.VNI, and state.Device all at
// once, backed by plain maps and slices.
type Bridge struct {
	BridgeName string
	BridgeMAC  [6]byte

	RxDropped int
	TxDropped int

	IngressPort *Port
	AllowedVID  uint16
	AllowIngress bool

	LocalGuest func(port bridge.Port, mac [6]byte, vid uint16) bool
	NickOf     map[[6]byte]state.Nickname

	fdb       map[fdbKey]bridge.FDBEntry
	Refreshed []fdbKey

	Forwarded        []Call
	Delivered        []Call
	EndstationFloods [][]byte
	TrillFloods      [][]byte
	Finished         [][]byte
	VNIFloods        []Call

	stpRunning bool
	STPStopped bool

	vniGroups map[uint32]*VNIGroup
}

// New constructs an empty Bridge ready for tests to populate.
func New(name string, mac [6]byte) *Bridge {
	return &Bridge{
		BridgeName:   name,
		BridgeMAC:    mac,
		AllowIngress: true,
		fdb:          make(map[fdbKey]bridge.FDBEntry),
		NickOf:       make(map[[6]byte]state.Nickname),
		vniGroups:    make(map[uint32]*VNIGroup),
	}
}

// --- state.Device ---

func (b *Bridge) Name() string    { return b.BridgeName }
func (b *Bridge) OwnMAC() [6]byte { return b.BridgeMAC }
func (b *Bridge) BumpRxDropped()  { b.RxDropped++; stats.DropKind(true) }
func (b *Bridge) BumpTxDropped()  { b.TxDropped++; stats.DropKind(false) }

// --- bridge.FDB ---

func (b *Bridge) Get(mac [6]byte, vid uint16) (bridge.FDBEntry, bool) {
	e, ok := b.fdb[fdbKey{mac, vid}]
	return e, ok
}

func (b *Bridge) Update(port bridge.Port, mac [6]byte, vid uint16) {
	b.fdb[fdbKey{mac, vid}] = bridge.FDBEntry{Port: port}
}

func (b *Bridge) UpdateWithNick(port bridge.Port, mac [6]byte, vid uint16, nick state.Nickname) {
	b.fdb[fdbKey{mac, vid}] = bridge.FDBEntry{Port: port, Nick: nick, HasNick: true}
}

func (b *Bridge) Refresh(mac [6]byte, vid uint16) {
	b.Refreshed = append(b.Refreshed, fdbKey{mac, vid})
}

// --- bridge.Forward ---

func (b *Bridge) Forward(port bridge.Port, buf *pktbuf.Buffer) {
	b.Forwarded = append(b.Forwarded, snapshot(port, buf))
}

func (b *Bridge) Deliver(port bridge.Port, buf *pktbuf.Buffer) {
	b.Delivered = append(b.Delivered, snapshot(port, buf))
}

func (b *Bridge) EndstationDeliver(buf *pktbuf.Buffer) {
	b.EndstationFloods = append(b.EndstationFloods, append([]byte{}, buf.Bytes()...))
}

func (b *Bridge) TrillFloodForward(buf *pktbuf.Buffer) {
	b.TrillFloods = append(b.TrillFloods, append([]byte{}, buf.Bytes()...))
}

func (b *Bridge) HandleFrameFinish(buf *pktbuf.Buffer) {
	b.Finished = append(b.Finished, append([]byte{}, buf.Bytes()...))
}

func (b *Bridge) AllowedIngress(buf *pktbuf.Buffer) (uint16, bool) {
	return b.AllowedVID, b.AllowIngress
}

// --- bridge.PortInfo ---

func (b *Bridge) PortOf(buf *pktbuf.Buffer) (bridge.Port, bool) {
	if b.IngressPort == nil {
		return nil, false
	}
	return b.IngressPort, true
}

func (b *Bridge) IsLocalGuestPort(port bridge.Port, mac [6]byte, vid uint16) bool {
	if b.LocalGuest == nil {
		return false
	}
	return b.LocalGuest(port, mac, vid)
}

func (b *Bridge) TrillFlag(port bridge.Port) bool {
	p, ok := port.(*Port)
	return ok && p.Guest
}

func (b *Bridge) VNIID(port bridge.Port) (uint32, bool) {
	p, ok := port.(*Port)
	if !ok || p.VNI == nil {
		return 0, false
	}
	return *p.VNI, true
}

// --- bridge.STP ---

func (b *Bridge) Running() bool { return b.stpRunning }
func (b *Bridge) Stop()         { b.stpRunning = false; b.STPStopped = true }

// SetSTPRunning lets a test put the fake bridge into "STP running" state
// before calling state.Enable.
func (b *Bridge) SetSTPRunning(running bool) { b.stpRunning = running }

// --- bridge.NickResolution ---

func (b *Bridge) LookupNickFromMAC(port bridge.Port, mac [6]byte, vid uint16) state.Nickname {
	if nick, ok := b.NickOf[mac]; ok {
		return nick
	}
	return state.NicknameNone
}

// --- bridge.VNI ---

func (b *Bridge) AddVNIGroup(id uint32) *VNIGroup {
	g := &VNIGroup{Vid: id}
	b.vniGroups[id] = g
	return g
}

func (b *Bridge) FindVNI(id uint32) (bridge.VNIGroup, bool) {
	g, ok := b.vniGroups[id]
	if !ok {
		return nil, false
	}
	return g, true
}

func (b *Bridge) FloodDeliver(group bridge.VNIGroup, buf *pktbuf.Buffer, freeOnExhaustion bool) {
	g, _ := group.(*VNIGroup)
	var port Port
	if g != nil {
		port.PortID = g.Vid
	}
	b.VNIFloods = append(b.VNIFloods, snapshot(&port, buf))
}

func snapshot(port bridge.Port, buf *pktbuf.Buffer) Call {
	var p Port
	if fp, ok := port.(*Port); ok && fp != nil {
		p = *fp
	}
	return Call{Port: p, Data: append([]byte{}, buf.Bytes()...)}
}
