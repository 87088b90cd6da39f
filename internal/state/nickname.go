// Package state holds the per-bridge RBridge state: the nickname-indexed
// neighbour database, the small scalar fields that gate the data plane
// (local nickname, tree root, enabled flag), and the reference-counting
// discipline that keeps a neighbour record alive under concurrent readers.
package state

// Nickname is the 16-bit RBridge identifier carried in the TRILL shim
// header's egress/ingress fields.
type Nickname uint16

const (
	// NicknameNone marks "no nickname assigned" — the zero value.
	NicknameNone Nickname = 0x0000
	// NicknameReserved is the all-ones sentinel, also never a usable nickname.
	NicknameReserved Nickname = 0xFFFF
	// NicknameSpace is the size of the full 16-bit nickname keyspace.
	NicknameSpace = 1 << 16
)

// Valid reports whether nick is usable as an RBridge identifier, i.e. it is
// neither NicknameNone nor NicknameReserved.
func Valid(nick Nickname) bool {
	return nick != NicknameNone && nick != NicknameReserved
}
