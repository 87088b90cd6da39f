package state

// Device is the narrow slice of the hosting bridge that the RBridge core
// needs for device identity and drop statistics. The bridge itself — MAC
// learning, VLAN filtering, the rest of the forwarding path — lives outside
// this module; Device is how the core reaches back into it without
// depending on the whole bridge type.
type Device interface {
	// Name identifies the bridge for log lines.
	Name() string
	// OwnMAC is the bridge device's own outer-Ethernet source address.
	OwnMAC() [6]byte
	// BumpRxDropped increments the bridge's rx_dropped counter by one.
	BumpRxDropped()
	// BumpTxDropped increments the bridge's tx_dropped counter by one.
	BumpTxDropped()
}
