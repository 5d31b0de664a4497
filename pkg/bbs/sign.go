package bbs

import (
	bls12381 "github.com/kilic/bls12-381"
)

// Sign produces the deterministic 80-octet BBS signature (A, e) over an
// ordered message list under sk. The header is optional context bound into
// the signature; nil and empty are equivalent.
func (s *Suite) Sign(sk, pk, header []byte, messages ...[]byte) ([]byte, error) {
	if len(sk) != SecretKeyLen {
		return nil, ErrOperation
	}
	c := newCurveOps()
	L := uint64(len(messages))

	x, err := decodeNonzeroScalar(sk)
	if err != nil {
		return nil, err
	}
	defer func() { *x = bls12381.Fr{} }()

	gens, err := s.newGeneratorStream(c)
	if err != nil {
		return nil, err
	}
	dom, err := s.newDomainCalc(c, pk, L)
	if err != nil {
		return nil, err
	}

	// The scalar e is derived from SK, the domain and every message scalar.
	// The domain has to be absorbed before the message scalars, which forces
	// a full pass over the generators before the accumulation pass below.
	h2s := s.newScalarHasher()
	h2s.update(sk)

	for i := uint64(0); i < L+1; i++ {
		p, err := gens.next()
		if err != nil {
			return nil, err
		}
		if err := dom.update(p); err != nil {
			return nil, err
		}
	}
	domain, err := dom.finalize(header)
	if err != nil {
		return nil, err
	}
	h2s.update(scalarBytes(domain))

	gens, err = s.newGeneratorStream(c)
	if err != nil {
		return nil, err
	}
	q1, err := gens.next()
	if err != nil {
		return nil, err
	}

	b, err := c.basePoint(s)
	if err != nil {
		return nil, err
	}
	tmp := &bls12381.PointG1{}
	for _, msg := range messages {
		hi, err := gens.next()
		if err != nil {
			return nil, err
		}
		ms, err := s.hashToScalar(s.mapDST, msg)
		if err != nil {
			return nil, err
		}
		c.g1.MulScalar(tmp, hi, ms)
		c.g1.Add(b, b, tmp)
		h2s.update(scalarBytes(ms))
	}

	e, err := h2s.finalize(s.signatureDST)
	if err != nil {
		return nil, err
	}

	c.g1.MulScalar(tmp, q1, domain)
	c.g1.Add(b, b, tmp)

	// A = B * (SK + e)^-1
	exp := bls12381.NewFr()
	exp.Add(x, e)
	defer func() { *exp = bls12381.Fr{} }()
	if exp.IsZero() {
		return nil, ErrOperation
	}
	exp.Inverse(exp)

	a := &bls12381.PointG1{}
	c.g1.MulScalar(a, b, exp)
	if c.g1.IsZero(a) {
		return nil, ErrOperation
	}

	signature := make([]byte, 0, SignatureLen)
	signature = append(signature, c.g1.ToCompressed(a)...)
	signature = append(signature, scalarBytes(e)...)
	return signature, nil
}
