package header

import "encoding/binary"

// OptSize is the fixed size of the TrillOpt extension block.
const OptSize = 8

// Opt is a view over the 8-octet option block that follows the fixed
// TRILL header when opt_len > 0: two 32-bit fields, opt_flag and opt_flow
// (§4.3). This implementation doesn't interpret either field — they're
// opaque to the forwarding core. Encapsulation writes both as zero,
// forwarding leaves them untouched, and decapsulation strips them.
type Opt []byte

// NewOpt wraps b as an Opt view. Panics if b is shorter than OptSize.
func NewOpt(b []byte) Opt {
	if len(b) < OptSize {
		panic("header: buffer shorter than trill opt size")
	}
	return Opt(b[:OptSize])
}

// Flag returns the opt_flag field.
func (o Opt) Flag() uint32 { return binary.BigEndian.Uint32(o[0:]) }

// SetFlag sets the opt_flag field.
func (o Opt) SetFlag(v uint32) { binary.BigEndian.PutUint32(o[0:], v) }

// Flow returns the opt_flow field.
func (o Opt) Flow() uint32 { return binary.BigEndian.Uint32(o[4:]) }

// SetFlow sets the opt_flow field.
func (o Opt) SetFlow(v uint32) { binary.BigEndian.PutUint32(o[4:], v) }
