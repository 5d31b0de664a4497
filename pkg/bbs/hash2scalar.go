package bbs

import (
	bls12381 "github.com/kilic/bls12-381"
)

// scalarHasher is the streaming hash_to_scalar transcript: an expand_message
// stream targeting 48 output octets whose result is reduced modulo r. The
// domain separation tag is supplied at finalization, matching the order the
// signing and proof transcripts need it in.
type scalarHasher struct {
	exp expander
}

func (s *Suite) newScalarHasher() *scalarHasher {
	return &scalarHasher{exp: s.newExpander()}
}

func (h *scalarHasher) update(chunk []byte) {
	h.exp.update(chunk)
}

// finalize closes the stream and returns the resulting scalar. A zero result
// fails the whole operation; the probability is negligible and masking it
// would hide implementation bugs.
func (h *scalarHasher) finalize(dst []byte) (*bls12381.Fr, error) {
	out, err := h.exp.finalize(dst, expandLen)
	if err != nil {
		return nil, err
	}
	r, zero := reduceWide(out)
	if zero {
		return nil, ErrOperation
	}
	return r, nil
}

// hashToScalar is the one-shot form over the concatenation of chunks.
func (s *Suite) hashToScalar(dst []byte, chunks ...[]byte) (*bls12381.Fr, error) {
	h := s.newScalarHasher()
	for _, c := range chunks {
		h.update(c)
	}
	return h.finalize(dst)
}
