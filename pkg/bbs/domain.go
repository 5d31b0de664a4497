package bbs

import (
	bls12381 "github.com/kilic/bls12-381"
)

// domainCalc is the streaming transcript producing the domain scalar that
// binds every BBS operation to the public key, the generator sequence, the
// header and the suite. Exactly numMessages+1 point updates (Q_1 first,
// then H_1..H_L) must occur between construction and finalization.
type domainCalc struct {
	suite   *Suite
	c       *curveOps
	h       *scalarHasher
	pending uint64
}

func (s *Suite) newDomainCalc(c *curveOps, pk []byte, numMessages uint64) (*domainCalc, error) {
	if len(pk) != PublicKeyLen {
		return nil, ErrOperation
	}
	d := &domainCalc{suite: s, c: c, h: s.newScalarHasher(), pending: numMessages + 1}
	d.h.update(pk)
	d.h.update(i2osp8(numMessages))
	return d, nil
}

func (d *domainCalc) update(p *bls12381.PointG1) error {
	if d.pending == 0 {
		return ErrOperation
	}
	d.h.update(d.c.g1.ToCompressed(p))
	d.pending--
	return nil
}

func (d *domainCalc) finalize(header []byte) (*bls12381.Fr, error) {
	if d.pending != 0 {
		return nil, ErrOperation
	}
	d.h.update(d.suite.apiID)
	d.h.update(i2osp8(uint64(len(header))))
	d.h.update(header)
	return d.h.finalize(d.suite.challengeDST)
}
