package blocks

import "errors"

var (
	// ErrMalformedBlock marks a block whose payload does not fit its declared type.
	ErrMalformedBlock = errors.New("malformed block")
	// ErrRenderFailed marks a renderer that panicked.
	ErrRenderFailed = errors.New("block render failed")
)
