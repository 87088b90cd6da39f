// Package bridge defines the narrow interfaces the RBridge core uses to
// reach into its hosting Ethernet bridge — MAC learning, forwarding
// primitives, port/VLAN policy, STP, nickname resolution, and the
// optional VNI flood domain — without depending on the bridge's full
// implementation (§6, "External Interfaces"). The bridge itself is
// assembled and owned elsewhere; this package only names what the core
// needs from it.
package bridge

import (
	"github.com/trillbridge/rbridge/internal/pktbuf"
	"github.com/trillbridge/rbridge/internal/state"
)

// Port is an opaque handle to one bridge port. Implementations are free
// to back it with whatever the hosting bridge uses internally.
type Port interface {
	// ID uniquely identifies the port within its bridge.
	ID() uint32
	// Name identifies the port for log lines.
	Name() string
	// MAC is the device address of this specific port, used to overwrite
	// the outer source MAC on an fdb hit (§4.5 step 4) — distinct from
	// the bridge's own MAC on multi-port bridges.
	MAC() [6]byte
}

// FDBEntry is one hit from the bridge's MAC forwarding database.
type FDBEntry struct {
	Port Port
	// Nick is the ingress nickname this MAC was last learned behind, if
	// any — set by UpdateWithNick, cleared by a plain Update.
	Nick    state.Nickname
	HasNick bool
}

// FDB is the bridge's MAC address forwarding database (§6 bridge_fdb).
type FDB interface {
	// Get looks up mac at vid.
	Get(mac [6]byte, vid uint16) (FDBEntry, bool)
	// Update learns mac behind port at vid, clearing any previously
	// recorded ingress nickname (used for local-guest and BPDU learning,
	// and for the migration-nickname-reset supplemented feature).
	Update(port Port, mac [6]byte, vid uint16)
	// UpdateWithNick learns mac behind port at vid, recording ingressNick
	// as the TRILL nickname the frame arrived from.
	UpdateWithNick(port Port, mac [6]byte, vid uint16, ingressNick state.Nickname)
	// Refresh touches the "used" timestamp of mac's entry at vid without
	// otherwise changing it (§4.5 step 4).
	Refresh(mac [6]byte, vid uint16)
}

// Forward is the bridge's set of outbound delivery primitives (§6
// bridge_forward).
type Forward interface {
	// Forward transmits buf out port, taking ownership of it.
	Forward(port Port, buf *pktbuf.Buffer)
	// Deliver hands buf to an end station attached to port.
	Deliver(port Port, buf *pktbuf.Buffer)
	// EndstationDeliver floods buf to every local end-station (guest)
	// port on the bridge.
	EndstationDeliver(buf *pktbuf.Buffer)
	// TrillFloodForward sends buf out every fabric port, used when the
	// fdb has no entry for the next hop's adj_snpa (a frame whose egress
	// nickname is not in the NeighborTable is dropped instead).
	TrillFloodForward(buf *pktbuf.Buffer)
	// HandleFrameFinish returns buf to the bridge's normal receive path
	// once TRILL processing has decided to pass it through unmodified.
	HandleFrameFinish(buf *pktbuf.Buffer)
	// AllowedIngress applies VLAN ingress policy to buf, returning the
	// resolved VLAN id, or ok=false if the frame is rejected.
	AllowedIngress(buf *pktbuf.Buffer) (vid uint16, ok bool)
}

// PortInfo answers per-port questions the core needs during
// classification (§6 bridge_port).
type PortInfo interface {
	// PortOf resolves the ingress port a buffer arrived on.
	PortOf(buf *pktbuf.Buffer) (Port, bool)
	// IsLocalGuestPort reports whether mac is reachable on a local guest
	// port of the bridge port's own bridge at vid.
	IsLocalGuestPort(port Port, mac [6]byte, vid uint16) bool
	// TrillFlag reports whether port is guest-facing (end-station side)
	// as opposed to fabric-facing.
	TrillFlag(port Port) bool
	// VNIID returns the per-port VNI configured on port, if any.
	VNIID(port Port) (uint32, bool)
}

// STP is the bridge's spanning-tree controller (§6 stp). TRILL and STP
// are mutually exclusive on a bridge (invariant 1).
type STP interface {
	// Running reports whether STP is currently active on the bridge.
	Running() bool
	// Stop halts STP so TRILL can be enabled.
	Stop()
}

// NickResolution is the control-plane-maintained MAC-to-nickname mapping
// consulted when encapsulating a frame toward an unknown inner
// destination (§6 nick_resolution).
type NickResolution interface {
	// LookupNickFromMAC resolves the egress nickname to reach mac at vid
	// from port. It returns state.NicknameNone to request flooding on
	// the distribution tree rather than unicast.
	LookupNickFromMAC(port Port, mac [6]byte, vid uint16) state.Nickname
}

// VNIGroup identifies one virtual-network flood domain.
type VNIGroup interface {
	ID() uint32
}

// VNI is the optional virtual-network-tagging flood domain, consulted
// only when an Engine has VNT enabled (§6 vni, gated per SUPPLEMENTED
// FEATURES item 3).
type VNI interface {
	// FindVNI resolves a VNI value to its flood group.
	FindVNI(vniID uint32) (VNIGroup, bool)
	// FloodDeliver floods buf to every member of group.
	// freeOnExhaustion mirrors the Replicator's own free-on-exhaustion
	// contract for the case where the group has no members.
	FloodDeliver(group VNIGroup, buf *pktbuf.Buffer, freeOnExhaustion bool)
}
