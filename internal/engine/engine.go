// Package engine implements the RBridge forwarding core: ingress
// classification, encapsulation, unicast forwarding, distribution-tree
// replication, and decapsulation (§4).
package engine

import (
	"log/slog"

	"github.com/trillbridge/rbridge/internal/bridge"
	"github.com/trillbridge/rbridge/internal/ratelimit"
	"github.com/trillbridge/rbridge/internal/state"
)

// Result is what a receive-path call tells its caller to do with the
// buffer, per §5's "consumed"/"pass" buffer-ownership contract.
type Result int

const (
	// Consumed means the engine took ownership of the buffer — it has
	// been forwarded, replicated, delivered, or dropped.
	Consumed Result = iota
	// Pass means the engine declined the buffer; it remains owned by the
	// caller, which should hand it to the bridge's normal receive path.
	Pass
)

// Engine wires the forwarding core to one bridge's state and its
// external collaborators (§6). All fields except State are optional only
// in the sense that a nil VNI/STP is fine when VNTEnabled is false /
// enable is never called; Log and Limiter default to no-ops if nil.
type Engine struct {
	Log     *slog.Logger
	Limiter *ratelimit.Limiter

	State *state.RbrState

	FDB      bridge.FDB
	Forward  bridge.Forward
	PortInfo bridge.PortInfo
	STP      bridge.STP
	NickRes  bridge.NickResolution
	VNI      bridge.VNI

	// VNTEnabled toggles the virtual-network-tagging extension at
	// runtime (SUPPLEMENTED FEATURES item 3; §9 design note 2).
	VNTEnabled bool

	// DefaultHopCount is the hop count a freshly encapsulated frame
	// starts with.
	DefaultHopCount uint8

	// Headroom records the spare front space callers intend to reserve
	// when constructing Buffers for this engine. The engine itself never
	// reads it; a Buffer's headroom is whatever pktbuf.New was given, and
	// encapsulation needs at least EncapHeadroom(vntExtension).
	Headroom int
}

// EncapHeadroom reports the minimum headroom an Engine needs to push the
// outer Ethernet header, the TRILL header, and (if withExtension) the
// opt/VNT extension, plus any pending accelerated VLAN tag reinsertion.
func EncapHeadroom(withExtension bool) int {
	n := bridge.EthernetHeaderSize + trillHeaderSize + vlanTagSize
	if withExtension {
		n += optExtensionSize
	}
	return n
}
