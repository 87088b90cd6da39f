package engine

import "github.com/trillbridge/rbridge/internal/header"

const (
	trillHeaderSize  = header.Size
	optExtensionSize = header.OptSize + header.VntSize
	vlanTagSize      = 4
)
