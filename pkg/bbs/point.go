package bbs

import (
	"math/big"

	bls12381 "github.com/kilic/bls12-381"
)

// curveOps bundles the group contexts one operation works with. The kilic
// contexts carry scratch space, so every top-level operation allocates its
// own; nothing here is shared between calls.
type curveOps struct {
	g1 *bls12381.G1
	g2 *bls12381.G2
}

func newCurveOps() *curveOps {
	return &curveOps{
		g1: bls12381.NewG1(),
		g2: bls12381.NewG2(),
	}
}

// decodeG1 parses a 48-octet compressed G1 element, rejecting malformed
// encodings, points off the curve, and points outside the prime subgroup.
func (c *curveOps) decodeG1(in []byte) (*bls12381.PointG1, error) {
	if len(in) != g1Len {
		return nil, ErrOperation
	}
	p, err := c.g1.FromCompressed(in)
	if err != nil {
		return nil, ErrOperation
	}
	if !c.g1.InCorrectSubgroup(p) {
		return nil, ErrOperation
	}
	return p, nil
}

// decodeG2 parses a 96-octet compressed G2 element with the same checks.
func (c *curveOps) decodeG2(in []byte) (*bls12381.PointG2, error) {
	if len(in) != PublicKeyLen {
		return nil, ErrOperation
	}
	p, err := c.g2.FromCompressed(in)
	if err != nil {
		return nil, ErrOperation
	}
	if !c.g2.InCorrectSubgroup(p) {
		return nil, ErrOperation
	}
	return p, nil
}

// basePoint decodes the suite's fixed G1 point P1.
func (c *curveOps) basePoint(s *Suite) (*bls12381.PointG1, error) {
	return c.decodeG1(s.p1)
}

// hashToCurveG1 maps msg to a point of G1 with the hash_to_curve
// random-oracle construction of RFC 9380, using the suite's expand_message
// for hash_to_field. Cofactor clearing distributes over addition, so the sum
// of the two mapped points equals the draft's clear_cofactor(Q0 + Q1).
func (s *Suite) hashToCurveG1(c *curveOps, msg, dst []byte) (*bls12381.PointG1, error) {
	uniform, err := s.expandMessage(dst, 2*64, msg)
	if err != nil {
		return nil, err
	}
	p0, err := mapToCurve(c, uniform[:64])
	if err != nil {
		return nil, err
	}
	p1, err := mapToCurve(c, uniform[64:])
	if err != nil {
		return nil, err
	}
	r := &bls12381.PointG1{}
	c.g1.Add(r, p0, p1)
	return r, nil
}

// mapToCurve reduces a 64-octet hash_to_field element modulo the base field
// and applies the suite's SSWU map.
func mapToCurve(c *curveOps, wide []byte) (*bls12381.PointG1, error) {
	n := new(big.Int).SetBytes(wide)
	n.Mod(n, fpOrder)
	var fe [48]byte
	n.FillBytes(fe[:])
	p, err := c.g1.MapToCurve(fe[:])
	if err != nil {
		return nil, ErrOperation
	}
	return p, nil
}
