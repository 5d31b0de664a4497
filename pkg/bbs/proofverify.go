package bbs

import (
	bls12381 "github.com/kilic/bls12-381"
)

// ProofVerify checks a selective disclosure proof against the disclosed
// messages. numMessages is the total message count L of the original
// signature; disclosedMessages must line up one-to-one with
// disclosedIndexes. Every failure mode yields the same error.
func (s *Suite) ProofVerify(pk, proof []byte, numMessages int, header, presentationHeader []byte, disclosedIndexes []int, disclosedMessages ...[]byte) error {
	L := numMessages
	if L < 0 || len(disclosedMessages) != len(disclosedIndexes) || len(disclosedIndexes) > L {
		return ErrOperation
	}
	if err := validateDisclosed(disclosedIndexes, L); err != nil {
		return err
	}
	numUndisclosed := L - len(disclosedIndexes)
	if len(proof) != ProofLen(numUndisclosed) {
		return ErrOperation
	}
	c := newCurveOps()

	w, err := c.decodeG2(pk)
	if err != nil {
		return err
	}
	if c.g2.IsZero(w) {
		return ErrOperation
	}

	abar, err := c.decodeG1(proof[:g1Len])
	if err != nil {
		return err
	}
	if c.g1.IsZero(abar) {
		return ErrOperation
	}
	bbar, err := c.decodeG1(proof[g1Len : 2*g1Len])
	if err != nil {
		return err
	}
	dPt, err := c.decodeG1(proof[2*g1Len : 3*g1Len])
	if err != nil {
		return err
	}
	off := 3 * g1Len
	eHat, err := decodeScalar(proof[off : off+scalarLen])
	if err != nil {
		return err
	}
	r1Hat, err := decodeScalar(proof[off+scalarLen : off+2*scalarLen])
	if err != nil {
		return err
	}
	r3Hat, err := decodeScalar(proof[off+2*scalarLen : off+3*scalarLen])
	if err != nil {
		return err
	}
	mHats := make([]*bls12381.Fr, numUndisclosed)
	off += 3 * scalarLen
	for j := range mHats {
		if mHats[j], err = decodeScalar(proof[off : off+scalarLen]); err != nil {
			return err
		}
		off += scalarLen
	}
	challenge, err := decodeScalar(proof[off:])
	if err != nil {
		return err
	}

	// T1 = c*Bbar + e^*Abar + r1^*D
	t1 := &bls12381.PointG1{}
	tmp := &bls12381.PointG1{}
	c.g1.MulScalar(t1, bbar, challenge)
	c.g1.MulScalar(tmp, abar, eHat)
	c.g1.Add(t1, t1, tmp)
	c.g1.MulScalar(tmp, dPt, r1Hat)
	c.g1.Add(t1, t1, tmp)

	gens, err := s.newGeneratorStream(c)
	if err != nil {
		return err
	}
	dom, err := s.newDomainCalc(c, pk, uint64(L))
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

	// One pass over the generator sequence: disclosed positions rebuild the
	// commitment Bv from the supplied messages, undisclosed positions
	// accumulate the proof's m^ responses onto T2.
	bv, err := c.basePoint(s)
	if err != nil {
		return err
	}
	t2 := &bls12381.PointG1{}
	c.g1.MulScalar(t2, dPt, r3Hat)
	disclosedScalars := make([]*bls12381.Fr, 0, len(disclosedIndexes))
	next, undisclosed := 0, 0
	for i := 0; i < L; i++ {
		hi, err := gens.next()
		if err != nil {
			return err
		}
		if err := dom.update(hi); err != nil {
			return err
		}
		if next < len(disclosedIndexes) && disclosedIndexes[next] == i {
			ms, err := s.hashToScalar(s.mapDST, disclosedMessages[next])
			if err != nil {
				return err
			}
			disclosedScalars = append(disclosedScalars, ms)
			c.g1.MulScalar(tmp, hi, ms)
			c.g1.Add(bv, bv, tmp)
			next++
		} else {
			c.g1.MulScalar(tmp, hi, mHats[undisclosed])
			c.g1.Add(t2, t2, tmp)
			undisclosed++
		}
	}

	domain, err := dom.finalize(header)
	if err != nil {
		return err
	}
	c.g1.MulScalar(tmp, q1, domain)
	c.g1.Add(bv, bv, tmp)
	c.g1.MulScalar(tmp, bv, challenge)
	c.g1.Add(t2, t2, tmp)

	expected, err := s.proofChallenge(c, proof[:3*g1Len], t1, t2, disclosedIndexes, disclosedScalars, domain, presentationHeader)
	if err != nil {
		return err
	}
	if !challenge.Equal(expected) {
		return ErrOperation
	}

	// e(Abar, W) * e(Bbar, -P2) must be the identity of Gt.
	eng := bls12381.NewEngine()
	eng.AddPair(abar, w)
	eng.AddPairInv(bbar, c.g2.One())
	if !eng.Check() {
		return ErrOperation
	}
	return nil
}
