package bbs

import (
	"crypto/sha256"
	"hash"

	"golang.org/x/crypto/sha3"
)

// expander is the streaming form of the expand_message primitive from
// RFC 9380. The output is identical for any chunking of the input message;
// the domain separation tag and output length are bound at finalization.
type expander interface {
	update(chunk []byte)
	finalize(dst []byte, outLen int) ([]byte, error)
}

const (
	// SHA-256 parameters for expand_message_xmd.
	xmdBlockLen  = 64 // r_in_bytes
	xmdDigestLen = 32 // b_in_bytes

	maxDSTLen = 255
	maxOutLen = 65535
)

// xmdExpander implements expand_message_xmd with SHA-256 (RFC 9380 §5.3.1).
// The Z_pad prefix is absorbed at construction so that message chunks can be
// streamed directly into the inner hash.
type xmdExpander struct {
	h hash.Hash
}

func newXMDExpander() expander {
	h := sha256.New()
	var zPad [xmdBlockLen]byte
	h.Write(zPad[:])
	return &xmdExpander{h: h}
}

func (e *xmdExpander) update(chunk []byte) {
	e.h.Write(chunk)
}

func (e *xmdExpander) finalize(dst []byte, outLen int) ([]byte, error) {
	if len(dst) > maxDSTLen || outLen <= 0 || outLen > maxOutLen {
		return nil, ErrOperation
	}
	ell := (outLen + xmdDigestLen - 1) / xmdDigestLen
	if ell > 255 {
		return nil, ErrOperation
	}
	dstPrime := append(append(make([]byte, 0, len(dst)+1), dst...), byte(len(dst)))

	// b_0 = H(Z_pad || msg || l_i_b_str || 0x00 || DST_prime)
	e.h.Write([]byte{byte(outLen >> 8), byte(outLen)})
	e.h.Write([]byte{0})
	e.h.Write(dstPrime)
	b0 := e.h.Sum(nil)

	out := make([]byte, 0, ell*xmdDigestLen)
	prev := make([]byte, xmdDigestLen)
	h := sha256.New()
	for i := 1; i <= ell; i++ {
		h.Reset()
		if i == 1 {
			h.Write(b0)
		} else {
			xored := make([]byte, xmdDigestLen)
			for j := range xored {
				xored[j] = b0[j] ^ prev[j]
			}
			h.Write(xored)
		}
		h.Write([]byte{byte(i)})
		h.Write(dstPrime)
		prev = h.Sum(prev[:0])
		out = append(out, prev...)
	}
	return out[:outLen], nil
}

// xofExpander implements expand_message_xof with SHAKE-256 (RFC 9380
// §5.3.2, k = 128 security bits).
type xofExpander struct {
	h sha3.ShakeHash
}

func newXOFExpander() expander {
	return &xofExpander{h: sha3.NewShake256()}
}

func (e *xofExpander) update(chunk []byte) {
	e.h.Write(chunk)
}

func (e *xofExpander) finalize(dst []byte, outLen int) ([]byte, error) {
	if len(dst) > maxDSTLen || outLen <= 0 || outLen > maxOutLen {
		return nil, ErrOperation
	}
	// msg || I2OSP(len_in_bytes, 2) || DST || I2OSP(len(DST), 1)
	e.h.Write([]byte{byte(outLen >> 8), byte(outLen)})
	e.h.Write(dst)
	e.h.Write([]byte{byte(len(dst))})
	out := make([]byte, outLen)
	if _, err := e.h.Read(out); err != nil {
		return nil, ErrOperation
	}
	return out, nil
}
