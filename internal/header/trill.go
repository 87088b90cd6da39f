// Package header implements bit-exact serialization and parsing of the
// TRILL shim header and its optional extension area (§4.3). Each type is a
// thin, zero-copy view over a byte slice, in the style of the standard
// library's net/http or the gVisor-derived header packages: accessors
// shift/mask against the underlying bytes rather than copying into a Go
// struct.
package header

import "encoding/binary"

// ProtocolVersion is the fixed TRILL protocol version this implementation
// speaks and expects on receipt.
const ProtocolVersion = 0

// Size is the fixed portion of the TRILL shim header: the 16-bit flags
// word plus the two 16-bit nicknames, padded to an 8-octet boundary so the
// optional extension area that follows starts 4-octet aligned.
const Size = 8

const (
	flagsOff   = 0
	egressOff  = 2
	ingressOff = 4
	// bytes 6:8 are reserved padding, always zero on the wire.
)

const (
	versionShift = 14
	versionMask  = 0x3
	reservedMask = 0x3 // bits 13:12, read via reservedShift
	reservedShift = 12
	multiDestBit = 1 << 11
	optLenShift  = 6
	optLenMask   = 0x1f
	hopCountMask = 0x3f
)

// Trill is a view over a TRILL shim header stored in a byte slice. The
// slice must be at least Size bytes; a Trill never copies the bytes it
// wraps.
type Trill []byte

// New wraps b as a Trill header view. It panics if b is shorter than Size,
// mirroring the standard library's header-view constructors (e.g.
// net.IPv4/IPv6 on undersized slices) — callers are expected to have
// already validated length via ErrShort before constructing a view.
func New(b []byte) Trill {
	if len(b) < Size {
		panic("header: buffer shorter than trill header size")
	}
	return Trill(b[:Size])
}

func (h Trill) flags() uint16 { return binary.BigEndian.Uint16(h[flagsOff:]) }

func (h Trill) setFlags(v uint16) { binary.BigEndian.PutUint16(h[flagsOff:], v) }

// Version returns the 2-bit protocol version field.
func (h Trill) Version() uint8 {
	return uint8((h.flags() >> versionShift) & versionMask)
}

// SetVersion sets the 2-bit protocol version field.
func (h Trill) SetVersion(v uint8) {
	f := h.flags() &^ (versionMask << versionShift)
	h.setFlags(f | (uint16(v)&versionMask)<<versionShift)
}

// Reserved returns the 2-bit reserved field. Receivers must ignore its
// value; it is exposed only for header round-trip tests.
func (h Trill) Reserved() uint8 {
	return uint8((h.flags() >> reservedShift) & reservedMask)
}

// MultiDestination reports whether this is a multi-destination
// (distribution-tree) frame as opposed to a unicast one.
func (h Trill) MultiDestination() bool {
	return h.flags()&multiDestBit != 0
}

// SetMultiDestination sets or clears the multi-destination bit.
func (h Trill) SetMultiDestination(md bool) {
	f := h.flags()
	if md {
		f |= multiDestBit
	} else {
		f &^= multiDestBit
	}
	h.setFlags(f)
}

// OptLen returns the option/extension length in 4-octet units.
func (h Trill) OptLen() uint8 {
	return uint8((h.flags() >> optLenShift) & optLenMask)
}

// SetOptLen sets the option/extension length in 4-octet units. Values
// above 31 are truncated by the 5-bit field; callers must pre-validate.
func (h Trill) SetOptLen(n uint8) {
	f := h.flags() &^ (optLenMask << optLenShift)
	h.setFlags(f | (uint16(n)&optLenMask)<<optLenShift)
}

// HopCount returns the 6-bit hop count.
func (h Trill) HopCount() uint8 {
	return uint8(h.flags() & hopCountMask)
}

// SetHopCount sets the 6-bit hop count.
func (h Trill) SetHopCount(n uint8) {
	f := h.flags() &^ hopCountMask
	h.setFlags(f | uint16(n)&hopCountMask)
}

// DecrementHopCount decrements the hop count in place. Callers must check
// HopCount() > 0 before calling; it does not guard against underflow.
func (h Trill) DecrementHopCount() {
	h.SetHopCount(h.HopCount() - 1)
}

// EgressNick returns the 16-bit egress nickname field.
func (h Trill) EgressNick() uint16 {
	return binary.BigEndian.Uint16(h[egressOff:])
}

// SetEgressNick sets the 16-bit egress nickname field.
func (h Trill) SetEgressNick(n uint16) {
	binary.BigEndian.PutUint16(h[egressOff:], n)
}

// IngressNick returns the 16-bit ingress nickname field.
func (h Trill) IngressNick() uint16 {
	return binary.BigEndian.Uint16(h[ingressOff:])
}

// SetIngressNick sets the 16-bit ingress nickname field.
func (h Trill) SetIngressNick(n uint16) {
	binary.BigEndian.PutUint16(h[ingressOff:], n)
}

// ExtensionSize reports the byte length of the optional extension area
// that follows this fixed header, per trh_size = Size + opt_len*4 (§4.9).
func (h Trill) ExtensionSize() int {
	return int(h.OptLen()) * 4
}

// TotalSize reports Size plus the extension area.
func (h Trill) TotalSize() int {
	return Size + h.ExtensionSize()
}
