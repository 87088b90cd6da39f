// Package pktbuf implements the buffer-ownership discipline of §5: a
// single mutable byte-backed frame with growable headroom at the front,
// in the spirit of the gVisor-derived Prependable/PacketBuffer pattern,
// but self-contained — this core pushes and pulls fixed-size protocol
// headers rather than a stack of typed header views.
package pktbuf

import "errors"

// ErrNoHeadroom is returned by Push when the buffer doesn't have enough
// reserved space at the front to accommodate the requested header. The
// engine wraps this into a state.DropError with KindAllocationFailure.
var ErrNoHeadroom = errors.New("pktbuf: insufficient headroom")

// Buffer is one frame in flight through the engine: a backing array with
// a movable start offset, so pushing a header is a pointer-arithmetic
// operation rather than an allocation, as long as headroom was reserved
// up front.
type Buffer struct {
	buf   []byte
	start int
	end   int

	// encapsulated and innerOffset track the §4.4/§4.7 "mark as
	// encapsulated" bookkeeping: when true, innerOffset is the byte
	// offset (relative to buf, not start) where the original inner frame
	// begins, saved across the TRILL push/pull so Decapsulate can restore
	// it in one step.
	encapsulated bool
	innerOffset  int

	// accelVLAN carries the out-of-band hardware-accelerated VLAN tag, if
	// any, that arrived with this frame — the "accelerated tag
	// reinsertion" supplemented feature.
	hasAccelVLAN bool
	accelVLANTCI uint16
}

// New wraps frame with headroom bytes of reserved space in front of it,
// copying frame into the tail of a larger backing array. headroom should
// be sized for the largest header stack this frame may need pushed onto
// it (outer Ethernet + TRILL header + extensions).
func New(frame []byte, headroom int) *Buffer {
	buf := make([]byte, headroom+len(frame))
	copy(buf[headroom:], frame)
	return &Buffer{buf: buf, start: headroom, end: len(buf)}
}

// Bytes returns the buffer's current active view: everything from the
// current front (after any pushes/pulls) to the end.
func (b *Buffer) Bytes() []byte {
	return b.buf[b.start:b.end]
}

// Len reports the length of the active view.
func (b *Buffer) Len() int {
	return b.end - b.start
}

// Headroom reports how many bytes remain available for Push before it
// would fail.
func (b *Buffer) Headroom() int {
	return b.start
}

// Push reserves n bytes immediately in front of the active view and
// returns them for the caller to fill in (a header being pushed onto the
// frame). It fails with ErrNoHeadroom if not enough headroom remains.
func (b *Buffer) Push(n int) ([]byte, error) {
	if n > b.start {
		return nil, ErrNoHeadroom
	}
	b.start -= n
	return b.buf[b.start : b.start+n], nil
}

// PullFront removes n bytes from the front of the active view, advancing
// past a header that has been consumed (decapsulation). It panics if n
// exceeds the active view's length — a caller bug, not a runtime
// condition.
func (b *Buffer) PullFront(n int) {
	if n > b.Len() {
		panic("pktbuf: PullFront beyond buffer length")
	}
	b.start += n
}

// SetEncapsulated marks the buffer as carrying a TRILL-encapsulated inner
// frame, saving innerHeaderLen (the size of everything pushed in front of
// the inner frame: outer Ethernet + TRILL header + extensions) so a later
// Decapsulate can find the inner frame's offset directly.
func (b *Buffer) SetEncapsulated(innerHeaderLen int) {
	b.encapsulated = true
	b.innerOffset = b.start + innerHeaderLen
}

// Encapsulated reports whether SetEncapsulated has been called since the
// last Decapsulate.
func (b *Buffer) Encapsulated() bool {
	return b.encapsulated
}

// Decapsulate restores the active view to the saved inner frame offset
// and clears the encapsulated flag, per §4.7 step 2 ("reset headers so
// the inner Ethernet frame becomes the current packet").
func (b *Buffer) Decapsulate() {
	b.start = b.innerOffset
	b.encapsulated = false
}

// SetAccelVLAN records an out-of-band hardware-accelerated VLAN tag that
// arrived with this frame but is not present inline in its bytes.
func (b *Buffer) SetAccelVLAN(tci uint16) {
	b.hasAccelVLAN = true
	b.accelVLANTCI = tci
}

// HasAccelVLAN reports whether an out-of-band VLAN tag is pending
// reinsertion.
func (b *Buffer) HasAccelVLAN() bool {
	return b.hasAccelVLAN
}

// Copy produces a true, independent deep copy of the buffer — required
// before replicating to a second destination, since every replicated
// copy has its outer addresses rewritten in place per hop (§4.6, §9).
// Unlike Push/PullFront, the copy's headroom exactly matches the
// original's current headroom; no extra is reserved since a clone
// destined for Forward never needs to push another header.
func (b *Buffer) Copy() *Buffer {
	buf := make([]byte, len(b.buf))
	copy(buf, b.buf)
	return &Buffer{
		buf:          buf,
		start:        b.start,
		end:          b.end,
		encapsulated: b.encapsulated,
		innerOffset:  b.innerOffset,
		hasAccelVLAN: b.hasAccelVLAN,
		accelVLANTCI: b.accelVLANTCI,
	}
}
