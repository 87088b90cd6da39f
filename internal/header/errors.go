package header

import "errors"

// ErrShort is returned by the Parse helpers when a buffer is too small to
// hold the header or extension it claims to carry. The engine wraps this
// into a state.DropError with KindMalformedHeader.
var ErrShort = errors.New("header: buffer too short")

// Parse validates b is at least Size bytes and returns a Trill view over
// it. It does not validate extension length; callers check OptLen against
// remaining buffer length themselves (§8 boundary: "opt_len larger than
// remaining header").
func Parse(b []byte) (Trill, error) {
	if len(b) < Size {
		return nil, ErrShort
	}
	return Trill(b[:Size]), nil
}

// ParseOpt validates b is at least OptSize bytes and returns an Opt view.
func ParseOpt(b []byte) (Opt, error) {
	if len(b) < OptSize {
		return nil, ErrShort
	}
	return Opt(b[:OptSize]), nil
}

// ParseVnt validates b is at least VntSize bytes and returns a Vnt view.
func ParseVnt(b []byte) (Vnt, error) {
	if len(b) < VntSize {
		return nil, ErrShort
	}
	return Vnt(b[:VntSize]), nil
}
