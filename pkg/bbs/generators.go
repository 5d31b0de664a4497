package bbs

import (
	"encoding/binary"

	bls12381 "github.com/kilic/bls12-381"
)

// generatorStream lazily derives the ordered G1 generator sequence
// Q_1, H_1, H_2, ... for a suite. The state is the 48-octet running seed
// followed by the 64-bit big-endian step counter; the sequence is fully
// determined by the suite's api_id.
type generatorStream struct {
	suite *Suite
	c     *curveOps
	state [expandLen + 8]byte
	n     uint64
}

func (s *Suite) newGeneratorStream(c *curveOps) (*generatorStream, error) {
	g := &generatorStream{suite: s, c: c, n: 1}
	v, err := s.expandMessage(s.seedDST, expandLen, s.seedDST)
	if err != nil {
		return nil, err
	}
	copy(g.state[:expandLen], v)
	return g, nil
}

// next emits the following generator. The first emission is Q_1.
func (g *generatorStream) next() (*bls12381.PointG1, error) {
	binary.BigEndian.PutUint64(g.state[expandLen:], g.n)
	v, err := g.suite.expandMessage(g.suite.seedDST, expandLen, g.state[:])
	if err != nil {
		return nil, err
	}
	copy(g.state[:expandLen], v)
	g.n++
	return g.suite.hashToCurveG1(g.c, v, g.suite.generatorDST)
}
