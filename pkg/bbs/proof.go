package bbs

import (
	"crypto/rand"
	"io"

	bls12381 "github.com/kilic/bls12-381"
)

// PRF supplies the random scalars for proof generation as 32-octet
// big-endian encodings below the group order. inputType selects the slot
// (0 = undisclosed message blinding, 1 = r_1, 2 = r_2, 3 = e~, 4 = r_1~,
// 5 = r_3~); input is the 0-based undisclosed position for slot 0 and zero
// otherwise. Implementations must be deterministic in (inputType, input).
type PRF func(inputType uint8, input uint64) ([]byte, error)

// prfSlotDSTs are the domain separation tags of the seeded PRF, indexed by
// input type.
var prfSlotDSTs = [6]string{
	"random msg scalar",
	"random r_1 scalar",
	"random r_2 scalar",
	"random e_t scalar",
	"random r1t scalar",
	"random r3t scalar",
}

// seededPRF derives every proof scalar from one 32-octet seed via
// hash_to_scalar, so no intermediate randomness needs to be stored.
func (s *Suite) seededPRF(seed []byte) PRF {
	return func(inputType uint8, input uint64) ([]byte, error) {
		if int(inputType) >= len(prfSlotDSTs) {
			return nil, ErrOperation
		}
		out, err := s.hashToScalar([]byte(prfSlotDSTs[inputType]), seed, i2osp8(input))
		if err != nil {
			return nil, err
		}
		return scalarBytes(out), nil
	}
}

// ProofGen creates a zero-knowledge proof of possession of a valid
// signature, disclosing exactly the messages at disclosedIndexes (which must
// be strictly ascending). The presentation header binds the proof to a
// single verifier context. Randomness is drawn from the OS entropy source.
func (s *Suite) ProofGen(pk, signature, header, presentationHeader []byte, disclosedIndexes []int, messages ...[]byte) ([]byte, error) {
	var seed [32]byte
	if _, err := io.ReadFull(rand.Reader, seed[:]); err != nil {
		return nil, ErrOperation
	}
	defer zeroize(seed[:])
	return s.ProofGenDet(pk, signature, header, presentationHeader, disclosedIndexes, s.seededPRF(seed[:]), messages...)
}

// ProofGenDet is ProofGen with caller-supplied randomness. It exists so
// fixture tests can reproduce proofs bit for bit; production callers should
// use ProofGen.
func (s *Suite) ProofGenDet(pk, signature, header, presentationHeader []byte, disclosedIndexes []int, prf PRF, messages ...[]byte) ([]byte, error) {
	L := len(messages)
	if err := validateDisclosed(disclosedIndexes, L); err != nil {
		return nil, err
	}
	if len(signature) != SignatureLen || len(pk) != PublicKeyLen {
		return nil, ErrOperation
	}
	numUndisclosed := L - len(disclosedIndexes)
	c := newCurveOps()

	a, err := c.decodeG1(signature[:g1Len])
	if err != nil {
		return nil, err
	}
	e, err := decodeScalar(signature[g1Len:])
	if err != nil {
		return nil, err
	}

	// The random scalars are wiped on every return path.
	var secrets []*bls12381.Fr
	defer func() { wipeScalars(secrets...) }()

	r1, err := prfScalar(prf, 1, 0)
	if err != nil {
		return nil, err
	}
	secrets = append(secrets, r1)
	r2, err := prfScalar(prf, 2, 0)
	if err != nil {
		return nil, err
	}
	secrets = append(secrets, r2)
	eTilde, err := prfScalar(prf, 3, 0)
	if err != nil {
		return nil, err
	}
	secrets = append(secrets, eTilde)
	r1Tilde, err := prfScalar(prf, 4, 0)
	if err != nil {
		return nil, err
	}
	secrets = append(secrets, r1Tilde)
	r3Tilde, err := prfScalar(prf, 5, 0)
	if err != nil {
		return nil, err
	}
	secrets = append(secrets, r3Tilde)
	if r2.IsZero() {
		return nil, ErrOperation
	}

	gens, err := s.newGeneratorStream(c)
	if err != nil {
		return nil, err
	}
	dom, err := s.newDomainCalc(c, pk, uint64(L))
	if err != nil {
		return nil, err
	}
	q1, err := gens.next()
	if err != nil {
		return nil, err
	}
	if err := dom.update(q1); err != nil {
		return nil, err
	}

	// Single pass over the messages: accumulate B, blind the undisclosed
	// generators onto T2, and materialize every message scalar once so the
	// challenge transcript can replay the disclosed ones later without a
	// second hashing pass.
	b, err := c.basePoint(s)
	if err != nil {
		return nil, err
	}
	t2 := c.g1.Zero()
	tmp := &bls12381.PointG1{}
	msgScalars := make([]*bls12381.Fr, L)
	mTildes := make([]*bls12381.Fr, 0, numUndisclosed)
	undisclosedScalars := make([]*bls12381.Fr, 0, numUndisclosed)
	next := 0
	for i := 0; i < L; i++ {
		hi, err := gens.next()
		if err != nil {
			return nil, err
		}
		if err := dom.update(hi); err != nil {
			return nil, err
		}
		ms, err := s.hashToScalar(s.mapDST, messages[i])
		if err != nil {
			return nil, err
		}
		msgScalars[i] = ms
		c.g1.MulScalar(tmp, hi, ms)
		c.g1.Add(b, b, tmp)

		if next < len(disclosedIndexes) && disclosedIndexes[next] == i {
			next++
			continue
		}
		mt, err := prfScalar(prf, 0, uint64(len(mTildes)))
		if err != nil {
			return nil, err
		}
		mTildes = append(mTildes, mt)
		secrets = append(secrets, mt)
		undisclosedScalars = append(undisclosedScalars, ms)
		c.g1.MulScalar(tmp, hi, mt)
		c.g1.Add(t2, t2, tmp)
	}

	domain, err := dom.finalize(header)
	if err != nil {
		return nil, err
	}
	c.g1.MulScalar(tmp, q1, domain)
	c.g1.Add(b, b, tmp)

	// D = r2*B, Abar = r1*r2*A, Bbar = r1*D - e*Abar
	dPt := &bls12381.PointG1{}
	c.g1.MulScalar(dPt, b, r2)
	abar := &bls12381.PointG1{}
	c.g1.MulScalar(abar, a, r1)
	c.g1.MulScalar(abar, abar, r2)
	bbar := &bls12381.PointG1{}
	c.g1.MulScalar(bbar, dPt, r1)
	c.g1.MulScalar(tmp, abar, e)
	c.g1.Neg(tmp, tmp)
	c.g1.Add(bbar, bbar, tmp)

	// T1 = r1~*D + e~*Abar, T2 += r3~*D
	t1 := &bls12381.PointG1{}
	c.g1.MulScalar(t1, dPt, r1Tilde)
	c.g1.MulScalar(tmp, abar, eTilde)
	c.g1.Add(t1, t1, tmp)
	c.g1.MulScalar(tmp, dPt, r3Tilde)
	c.g1.Add(t2, t2, tmp)

	proof := make([]byte, 0, ProofLen(numUndisclosed))
	proof = append(proof, c.g1.ToCompressed(abar)...)
	proof = append(proof, c.g1.ToCompressed(bbar)...)
	proof = append(proof, c.g1.ToCompressed(dPt)...)

	disclosedScalars := make([]*bls12381.Fr, len(disclosedIndexes))
	for i, idx := range disclosedIndexes {
		disclosedScalars[i] = msgScalars[idx]
	}
	challenge, err := s.proofChallenge(c, proof[:3*g1Len], t1, t2, disclosedIndexes, disclosedScalars, domain, presentationHeader)
	if err != nil {
		return nil, err
	}

	// Responses: e^ = e~ + e*c, r1^ = r1~ - r1*c, r3^ = r3~ - r2^-1*c,
	// m^_j = m~_j + msg_scalar_j*c.
	st := bls12381.NewFr()
	resp := bls12381.NewFr()

	st.Mul(e, challenge)
	resp.Add(eTilde, st)
	proof = append(proof, scalarBytes(resp)...)

	st.Mul(r1, challenge)
	resp.Sub(r1Tilde, st)
	proof = append(proof, scalarBytes(resp)...)

	r2Inv := bls12381.NewFr()
	r2Inv.Inverse(r2)
	st.Mul(r2Inv, challenge)
	resp.Sub(r3Tilde, st)
	proof = append(proof, scalarBytes(resp)...)

	for j, mt := range mTildes {
		st.Mul(undisclosedScalars[j], challenge)
		resp.Add(mt, st)
		proof = append(proof, scalarBytes(resp)...)
	}
	proof = append(proof, scalarBytes(challenge)...)

	wipeScalars(r2Inv, st, resp)
	return proof, nil
}

// proofChallenge absorbs the Fiat-Shamir transcript in the mandated order
// and returns the challenge scalar.
func (s *Suite) proofChallenge(c *curveOps, abarBbarD []byte, t1, t2 *bls12381.PointG1, disclosedIndexes []int, disclosedScalars []*bls12381.Fr, domain *bls12381.Fr, presentationHeader []byte) (*bls12381.Fr, error) {
	h := s.newScalarHasher()
	h.update(abarBbarD)
	h.update(c.g1.ToCompressed(t1))
	h.update(c.g1.ToCompressed(t2))
	h.update(i2osp8(uint64(len(disclosedIndexes))))
	for _, idx := range disclosedIndexes {
		h.update(i2osp8(uint64(idx)))
	}
	for _, ms := range disclosedScalars {
		h.update(scalarBytes(ms))
	}
	h.update(scalarBytes(domain))
	h.update(i2osp8(uint64(len(presentationHeader))))
	h.update(presentationHeader)
	return h.finalize(s.challengeDST)
}

func prfScalar(prf PRF, inputType uint8, input uint64) (*bls12381.Fr, error) {
	out, err := prf(inputType, input)
	if err != nil {
		return nil, ErrOperation
	}
	return decodeScalar(out)
}

// validateDisclosed rejects index lists that are not strictly ascending or
// reference positions outside [0, numMessages).
func validateDisclosed(disclosedIndexes []int, numMessages int) error {
	for i, idx := range disclosedIndexes {
		if idx < 0 || idx >= numMessages {
			return ErrOperation
		}
		if i > 0 && idx <= disclosedIndexes[i-1] {
			return ErrOperation
		}
	}
	return nil
}

func wipeScalars(scalars ...*bls12381.Fr) {
	for _, s := range scalars {
		*s = bls12381.Fr{}
	}
}
