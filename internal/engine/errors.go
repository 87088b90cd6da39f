package engine

import (
	"github.com/trillbridge/rbridge/internal/state"
)

// drop records a failure per §7's policy: bump the bridge device's rx/tx
// dropped counter, emit a rate-limited warning naming the site, and
// always return Consumed — every drop site in this engine ends its
// handling right here.
func (e *Engine) drop(op string, kind state.Kind, isRx bool) Result {
	return e.dropWrap(op, kind, isRx, nil)
}

func (e *Engine) dropWrap(op string, kind state.Kind, isRx bool, err error) Result {
	var de *state.DropError
	if err != nil {
		de = state.DropWrap(op, kind, err)
	} else {
		de = state.Drop(op, kind)
	}
	e.warn(de)
	if isRx {
		e.State.Device().BumpRxDropped()
	} else {
		e.State.Device().BumpTxDropped()
	}
	return Consumed
}

func (e *Engine) warn(de *state.DropError) {
	key := de.Op + ":" + de.Kind.String()
	if e.Limiter != nil && !e.Limiter.Allow(key) {
		return
	}
	if e.Log != nil {
		e.Log.Warn(de.Error(), "op", de.Op, "kind", de.Kind.String())
	}
}
