package bridge

import "encoding/binary"

// EthernetHeaderSize is the size of a (non-VLAN-tagged) Ethernet header:
// destination MAC, source MAC, EtherType.
const EthernetHeaderSize = 14

const (
	ethDst  = 0
	ethSrc  = 6
	ethType = 12
)

// Ethernet is a zero-copy view over an Ethernet header, grounded on the
// same byte-slice-with-accessors pattern used throughout this core for
// TRILL headers.
type Ethernet []byte

// DstMAC returns the destination address field.
func (e Ethernet) DstMAC() [6]byte {
	var mac [6]byte
	copy(mac[:], e[ethDst:ethDst+6])
	return mac
}

// SetDstMAC sets the destination address field.
func (e Ethernet) SetDstMAC(mac [6]byte) {
	copy(e[ethDst:ethDst+6], mac[:])
}

// SrcMAC returns the source address field.
func (e Ethernet) SrcMAC() [6]byte {
	var mac [6]byte
	copy(mac[:], e[ethSrc:ethSrc+6])
	return mac
}

// SetSrcMAC sets the source address field.
func (e Ethernet) SetSrcMAC(mac [6]byte) {
	copy(e[ethSrc:ethSrc+6], mac[:])
}

// Type returns the EtherType field.
func (e Ethernet) Type() uint16 {
	return binary.BigEndian.Uint16(e[ethType:])
}

// SetType sets the EtherType field.
func (e Ethernet) SetType(t uint16) {
	binary.BigEndian.PutUint16(e[ethType:], t)
}

// IsValidUnicastMAC reports whether mac is usable as a source address: not
// the all-zero address, and not a multicast/broadcast address (low bit of
// the first octet clear).
func IsValidUnicastMAC(mac [6]byte) bool {
	if mac == [6]byte{} {
		return false
	}
	return mac[0]&1 == 0
}
