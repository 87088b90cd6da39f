package bridge

// EtherTypeTRILL is the outer Ethernet EtherType value that identifies a
// TRILL-encapsulated frame (§6, "Wire formats").
const EtherTypeTRILL = 0x22F3

// bpduGroupMAC is the well-known bridge-group address BPDUs are sent to.
// TRILL must not forward frames addressed to it (§4.8 step 5).
var bpduGroupMAC = [6]byte{0x01, 0x80, 0xC2, 0x00, 0x00, 0x00}

// IsBPDUGroupMAC reports whether mac is the TRILL BPDU group address.
func IsBPDUGroupMAC(mac [6]byte) bool {
	return mac == bpduGroupMAC
}
