package pktbuf

import "encoding/binary"

// vlanTPID is the 802.1Q tag protocol identifier.
const vlanTPID = 0x8100

// vlanTagSize is the size of an inline 802.1Q tag (2-octet TPID + 2-octet
// TCI) inserted between the source MAC and the EtherType.
const vlanTagSize = 4

// ethAddrPairSize is the combined size of the destination and source MAC
// address fields at the front of an Ethernet frame.
const ethAddrPairSize = 12

// ReinsertVLANTag reinserts a pending out-of-band VLAN tag inline,
// immediately after the source MAC address, and clears the pending flag.
// It is a no-op if no accelerated tag is pending. Grounded on the
// original rbr_encaps's vlan_insert_tag call: some NICs strip the 802.1Q
// tag out of the frame bytes and hand it to the stack as metadata instead
// ("hardware VLAN acceleration"); before this frame can be encapsulated
// and forwarded onto the fabric, that tag must be put back inline, since
// the outer frame carries no such side channel.
func (b *Buffer) ReinsertVLANTag() error {
	if !b.hasAccelVLAN {
		return nil
	}
	if _, err := b.Push(vlanTagSize); err != nil {
		return err
	}
	data := b.Bytes()
	// The Push shifted everything back by vlanTagSize; slide the two MAC
	// addresses back down to the front and drop the tag into the gap that
	// opens up right after them.
	copy(data[0:ethAddrPairSize], data[vlanTagSize:ethAddrPairSize+vlanTagSize])
	binary.BigEndian.PutUint16(data[ethAddrPairSize:], vlanTPID)
	binary.BigEndian.PutUint16(data[ethAddrPairSize+2:], b.accelVLANTCI)
	b.hasAccelVLAN = false
	return nil
}
