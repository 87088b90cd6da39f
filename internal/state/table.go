package state

import (
	"sync"
	"sync/atomic"
)

// NeighborTable is the fixed-size, nickname-indexed map from a 16-bit
// nickname to an optional RbrNode. Only valid nicknames may carry a
// non-empty slot (invariant 2 of the data model).
//
// Readers never block writers and vice versa: lookups follow an
// acquire-load of the slot pointer, which is published with release
// semantics by Install/Evict, so a reader that observes a non-nil slot
// always observes a fully-initialised RbrNode. Writers — the control-plane
// upsert/evict RPCs — serialize on writeMu, which stands in for "the
// bridge's lock" of §4.1.
type NeighborTable struct {
	slots   [NicknameSpace]atomic.Pointer[RbrNode]
	writeMu sync.Mutex
}

// Lookup returns an owned handle to the node at nick, or a nil handle if
// nick is invalid or the slot is empty. The caller must call Release on the
// returned handle exactly once.
func (t *NeighborTable) Lookup(nick Nickname) *OwnedHandle {
	if !Valid(nick) {
		return nil
	}
	n := t.slots[nick].Load()
	if n == nil {
		return nil
	}
	return &OwnedHandle{node: n.retain()}
}

// Install publishes node into nick's slot, releasing the table's reference
// to whatever previously occupied it. It requires Valid(nick); callers that
// violate that invariant get a no-op, mirroring the source's
// VALID_NICK(nickname) guard rather than panicking on a control-plane
// mistake.
func (t *NeighborTable) Install(nick Nickname, node *RbrNode) {
	if !Valid(nick) {
		return
	}
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	old := t.slots[nick].Swap(node)
	if old != nil {
		old.release()
	}
}

// Evict clears nick's slot, releasing the table's reference to whatever
// occupied it. A no-op if the slot was already empty or nick is invalid.
func (t *NeighborTable) Evict(nick Nickname) {
	if !Valid(nick) {
		return
	}
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	old := t.slots[nick].Swap(nil)
	if old != nil {
		old.release()
	}
}

// EvictAll evicts every occupied slot in the valid nickname range. Used when
// TRILL is disabled on a bridge, per invariant 4.
func (t *NeighborTable) EvictAll() {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	for nick := range NicknameSpace {
		n := Nickname(nick)
		if !Valid(n) {
			continue
		}
		old := t.slots[n].Swap(nil)
		if old != nil {
			old.release()
		}
	}
}
