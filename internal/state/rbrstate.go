package state

import (
	"sync"
	"sync/atomic"
)

// RbrState is the per-bridge RBridge container: the neighbour database plus
// the small scalar fields that gate the data plane. It is created on
// enable and torn down on disable (§3, §4.2).
type RbrState struct {
	// Neighbors is read by the data plane without any locking beyond what
	// NeighborTable itself provides.
	Neighbors NeighborTable

	dev Device

	// localNick, treeRoot and enabled are read by the data plane without
	// locks; writers hold mu. A reader observing a stale value only ever
	// causes a frame to be treated as "no local nickname yet" and dropped,
	// which is an accepted race per §5.
	localNick atomic.Uint32
	treeRoot  atomic.Uint32
	enabled   atomic.Bool

	mu sync.Mutex
}

// Enable brings TRILL up on a bridge. STP and TRILL are mutually exclusive
// (invariant 1 of §3); if STP is currently running on the bridge, stopSTP
// stops it before RbrState is attached.
func Enable(dev Device, stpRunning bool, stopSTP func()) *RbrState {
	if stpRunning && stopSTP != nil {
		stopSTP()
	}
	rs := &RbrState{dev: dev}
	rs.localNick.Store(uint32(NicknameNone))
	rs.treeRoot.Store(uint32(NicknameNone))
	rs.enabled.Store(true)
	return rs
}

// Disable tears TRILL down: it clears the enabled flag first (so any frame
// arriving mid-teardown observes "disabled" and is handed back to the
// bridge's standard path), then evicts every neighbour (invariant 4).
// Reference-counting on RbrNode means a frame that already captured a
// handle before this call continues safely until it releases it.
func (rs *RbrState) Disable() {
	rs.mu.Lock()
	rs.enabled.Store(false)
	rs.mu.Unlock()

	rs.Neighbors.EvictAll()
}

// Enabled reports whether TRILL processing is currently active.
func (rs *RbrState) Enabled() bool {
	return rs.enabled.Load()
}

// LocalNick returns the nickname assigned to this RBridge, or NicknameNone
// if the control plane hasn't assigned one yet.
func (rs *RbrState) LocalNick() Nickname {
	return Nickname(rs.localNick.Load())
}

// SetLocalNick installs the nickname the control plane has assigned to this
// RBridge.
func (rs *RbrState) SetLocalNick(nick Nickname) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.localNick.Store(uint32(nick))
}

// TreeRoot returns the nominated distribution-tree root nickname.
func (rs *RbrState) TreeRoot() Nickname {
	return Nickname(rs.treeRoot.Load())
}

// SetTreeRoot updates the distribution-tree root. It fails with ErrNotFound
// if nick is not a valid nickname, and is a no-op (but not an error) if
// nick already equals the current root.
func (rs *RbrState) SetTreeRoot(nick Nickname) error {
	if !Valid(nick) {
		return ErrNotFound
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if Nickname(rs.treeRoot.Load()) == nick {
		return nil
	}
	rs.treeRoot.Store(uint32(nick))
	return nil
}

// Device returns the hosting bridge's device/statistics interface.
func (rs *RbrState) Device() Device {
	return rs.dev
}

// InstallNeighbor upserts the NeighborInfo for nick. It fails with
// ErrNotFound if nick is not a valid nickname.
func (rs *RbrState) InstallNeighbor(nick Nickname, info NeighborInfo) error {
	if !Valid(nick) {
		return ErrNotFound
	}
	rs.Neighbors.Install(nick, NewRbrNode(info))
	return nil
}

// EvictNeighbor removes the NeighborInfo for nick, if any. It fails with
// ErrNotFound if nick is not a valid nickname.
func (rs *RbrState) EvictNeighbor(nick Nickname) error {
	if !Valid(nick) {
		return ErrNotFound
	}
	rs.Neighbors.Evict(nick)
	return nil
}
