package bbs

import "errors"

// ErrOperation is the single error returned by every failing operation in
// this package. Argument errors, malformed encodings, and verification
// failures are deliberately indistinguishable so that callers cannot build
// an oracle out of the failure category.
var ErrOperation = errors.New("bbs: operation failed")

// zeroize overwrites b. Used on buffers that held secret key material
// before they go back to the allocator.
func zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
