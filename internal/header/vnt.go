package header

import "encoding/binary"

// VntSize is the fixed size of the virtual-network-tagging extension that
// may follow a TrillOpt block.
const VntSize = 4

// VntExtensionType is the extension-type value a Vnt header must carry in
// its Type field for the TRILL receive path to accept it (§4.9 step 5,
// §9 open question 1).
const VntExtensionType = 1

const (
	vntAppBit     = 1 << 15
	vntNCBit      = 1 << 14
	vntTypeShift  = 9
	vntTypeMask   = 0x1f
	vntMUBit      = 1 << 8
	vntVNIHiMask  = 0xff // bits 7:0 of flags16 hold VNI[23:16]
)

// Vnt is a view over the 4-octet VNT extension: {flags16, reserved16},
// the flags16 word carrying App/NC/Type/MU bits plus the high byte of a
// 24-bit VNI, and reserved16 carrying the low 16 bits of that VNI
// (§4.3). This split is this implementation's own choice for how the
// 24-bit VNI is packed across the two 16-bit extension words; the spec
// names the fields but not their exact bit order.
type Vnt []byte

// NewVnt wraps b as a Vnt view. Panics if b is shorter than VntSize.
func NewVnt(b []byte) Vnt {
	if len(b) < VntSize {
		panic("header: buffer shorter than vnt extension size")
	}
	return Vnt(b[:VntSize])
}

func (v Vnt) flags16() uint16 { return binary.BigEndian.Uint16(v[0:]) }

func (v Vnt) setFlags16(f uint16) { binary.BigEndian.PutUint16(v[0:], f) }

// App reports the App bit.
func (v Vnt) App() bool { return v.flags16()&vntAppBit != 0 }

// SetApp sets or clears the App bit.
func (v Vnt) SetApp(b bool) {
	f := v.flags16()
	if b {
		f |= vntAppBit
	} else {
		f &^= vntAppBit
	}
	v.setFlags16(f)
}

// NC reports the "no-check" bit.
func (v Vnt) NC() bool { return v.flags16()&vntNCBit != 0 }

// SetNC sets or clears the "no-check" bit.
func (v Vnt) SetNC(b bool) {
	f := v.flags16()
	if b {
		f |= vntNCBit
	} else {
		f &^= vntNCBit
	}
	v.setFlags16(f)
}

// Type returns the 5-bit extension-type field; the receive path requires
// this equal VntExtensionType.
func (v Vnt) Type() uint8 {
	return uint8((v.flags16() >> vntTypeShift) & vntTypeMask)
}

// SetType sets the 5-bit extension-type field.
func (v Vnt) SetType(t uint8) {
	f := v.flags16() &^ (vntTypeMask << vntTypeShift)
	v.setFlags16(f | (uint16(t)&vntTypeMask)<<vntTypeShift)
}

// MU reports the "multi-user" bit.
func (v Vnt) MU() bool { return v.flags16()&vntMUBit != 0 }

// SetMU sets or clears the "multi-user" bit.
func (v Vnt) SetMU(b bool) {
	f := v.flags16()
	if b {
		f |= vntMUBit
	} else {
		f &^= vntMUBit
	}
	v.setFlags16(f)
}

func (v Vnt) reserved16() uint16 { return binary.BigEndian.Uint16(v[2:]) }

func (v Vnt) setReserved16(r uint16) { binary.BigEndian.PutUint16(v[2:], r) }

// VNI returns the 24-bit virtual-network identifier, reassembled from the
// low byte of flags16 and all of reserved16.
func (v Vnt) VNI() uint32 {
	hi := uint32(v.flags16() & vntVNIHiMask)
	lo := uint32(v.reserved16())
	return hi<<16 | lo
}

// SetVNI sets the 24-bit virtual-network identifier, splitting it across
// flags16's low byte and reserved16. Values above 0xFFFFFF are truncated.
func (v Vnt) SetVNI(vni uint32) {
	vni &= 0xFFFFFF
	f := v.flags16() &^ vntVNIHiMask
	v.setFlags16(f | uint16(vni>>16)&vntVNIHiMask)
	v.setReserved16(uint16(vni & 0xFFFF))
}
