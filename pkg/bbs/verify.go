package bbs

import (
	bls12381 "github.com/kilic/bls12-381"
)

// Verify checks an 80-octet signature over the ordered message list under
// pk. Any failure — malformed input or a failed pairing equation — yields
// the same error.
func (s *Suite) Verify(pk, signature, header []byte, messages ...[]byte) error {
	if len(signature) != SignatureLen {
		return ErrOperation
	}
	c := newCurveOps()
	L := uint64(len(messages))

	a, err := c.decodeG1(signature[:g1Len])
	if err != nil {
		return err
	}
	if c.g1.IsZero(a) {
		return ErrOperation
	}
	e, err := decodeScalar(signature[g1Len:])
	if err != nil {
		return err
	}
	w, err := c.decodeG2(pk)
	if err != nil {
		return err
	}
	if c.g2.IsZero(w) {
		return ErrOperation
	}

	gens, err := s.newGeneratorStream(c)
	if err != nil {
		return err
	}
	dom, err := s.newDomainCalc(c, pk, L)
	if err != nil {
		return err
	}

	q1, err := gens.next()
	if err != nil {
		return err
	}
	if err := dom.update(q1); err != nil {
		return err
	}

	b, err := c.basePoint(s)
	if err != nil {
		return err
	}
	tmp := &bls12381.PointG1{}
	for _, msg := range messages {
		hi, err := gens.next()
		if err != nil {
			return err
		}
		if err := dom.update(hi); err != nil {
			return err
		}
		ms, err := s.hashToScalar(s.mapDST, msg)
		if err != nil {
			return err
		}
		c.g1.MulScalar(tmp, hi, ms)
		c.g1.Add(b, b, tmp)
	}
	domain, err := dom.finalize(header)
	if err != nil {
		return err
	}
	c.g1.MulScalar(tmp, q1, domain)
	c.g1.Add(b, b, tmp)

	// e(A, W + e*P2) * e(B, -P2) must be the identity of Gt.
	t2 := &bls12381.PointG2{}
	c.g2.MulScalar(t2, c.g2.One(), e)
	c.g2.Add(t2, w, t2)

	eng := bls12381.NewEngine()
	eng.AddPair(a, t2)
	eng.AddPairInv(b, c.g2.One())
	if !eng.Check() {
		return ErrOperation
	}
	return nil
}
