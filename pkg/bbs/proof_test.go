package bbs

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type proofFixture struct {
	suite  *Suite
	kp     *KeyPair
	header []byte
	ph     []byte
	msgs   [][]byte
	sig    []byte
}

func newProofFixture(t *testing.T, suite *Suite, numMessages int) *proofFixture {
	t.Helper()
	kp := testKeyPair(t, suite)
	msgs := testMessages(numMessages)
	header := []byte("issuer-context")
	sig, err := suite.Sign(kp.PrivateKey, kp.PublicKey, header, msgs...)
	require.NoError(t, err)
	return &proofFixture{
		suite:  suite,
		kp:     kp,
		header: header,
		ph:     []byte("verifier-nonce-0001"),
		msgs:   msgs,
		sig:    sig,
	}
}

func (f *proofFixture) disclosed(indexes []int) [][]byte {
	out := make([][]byte, len(indexes))
	for i, idx := range indexes {
		out[i] = f.msgs[idx]
	}
	return out
}

func TestProofRoundTrip(t *testing.T) {
	patterns := [][]int{
		{},
		{0},
		{0, 2, 4, 6},
		{6},
		{0, 1, 2, 3, 4, 5, 6},
	}

	for _, suite := range Suites() {
		f := newProofFixture(t, suite, 7)
		for _, disclosed := range patterns {
			t.Run(fmt.Sprintf("%s/disclose-%v", suite.ID(), disclosed), func(t *testing.T) {
				proof, err := suite.ProofGen(f.kp.PublicKey, f.sig, f.header, f.ph, disclosed, f.msgs...)
				require.NoError(t, err)
				assert.Len(t, proof, ProofLen(len(f.msgs)-len(disclosed)))

				err = suite.ProofVerify(f.kp.PublicKey, proof, len(f.msgs), f.header, f.ph, disclosed, f.disclosed(disclosed)...)
				assert.NoError(t, err)
			})
		}
	}
}

func TestProofGenDetDeterministic(t *testing.T) {
	suite := BLS12381SHA256()
	f := newProofFixture(t, suite, 5)
	disclosed := []int{1, 3}

	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i * 7)
	}
	prf := suite.seededPRF(seed)

	proof1, err := suite.ProofGenDet(f.kp.PublicKey, f.sig, f.header, f.ph, disclosed, prf, f.msgs...)
	require.NoError(t, err)
	proof2, err := suite.ProofGenDet(f.kp.PublicKey, f.sig, f.header, f.ph, disclosed, prf, f.msgs...)
	require.NoError(t, err)
	assert.Equal(t, proof1, proof2)

	require.NoError(t, suite.ProofVerify(f.kp.PublicKey, proof1, len(f.msgs), f.header, f.ph, disclosed, f.disclosed(disclosed)...))

	// A different seed yields a different proof over the same statement.
	seed[0] ^= 0xff
	proof3, err := suite.ProofGenDet(f.kp.PublicKey, f.sig, f.header, f.ph, disclosed, suite.seededPRF(seed), f.msgs...)
	require.NoError(t, err)
	assert.NotEqual(t, proof1, proof3)
	require.NoError(t, suite.ProofVerify(f.kp.PublicKey, proof3, len(f.msgs), f.header, f.ph, disclosed, f.disclosed(disclosed)...))
}

func TestSeededPRFInputTypeRange(t *testing.T) {
	suite := BLS12381SHA256()
	prf := suite.seededPRF(make([]byte, 32))

	_, err := prf(5, 0)
	require.NoError(t, err)
	_, err = prf(6, 0)
	assert.ErrorIs(t, err, ErrOperation)
}

func TestProofVerifyRejectsTampering(t *testing.T) {
	suite := BLS12381SHA256()
	f := newProofFixture(t, suite, 5)
	disclosed := []int{0, 2}
	disclosedMsgs := f.disclosed(disclosed)

	proof, err := suite.ProofGen(f.kp.PublicKey, f.sig, f.header, f.ph, disclosed, f.msgs...)
	require.NoError(t, err)

	// Flip one bit in a sample of positions covering every component.
	positions := []int{0, g1Len, 2 * g1Len, 3 * g1Len, 3*g1Len + scalarLen, 3*g1Len + 2*scalarLen, 3*g1Len + 3*scalarLen, len(proof) - scalarLen, len(proof) - 1}
	for _, pos := range positions {
		tampered := append([]byte(nil), proof...)
		tampered[pos] ^= 0x01
		assert.ErrorIs(t, suite.ProofVerify(f.kp.PublicKey, tampered, len(f.msgs), f.header, f.ph, disclosed, disclosedMsgs...),
			ErrOperation, "position %d", pos)
	}
}

func TestProofVerifyRejectsChangedStatement(t *testing.T) {
	suite := BLS12381SHA256()
	f := newProofFixture(t, suite, 5)
	disclosed := []int{0, 2}
	disclosedMsgs := f.disclosed(disclosed)

	proof, err := suite.ProofGen(f.kp.PublicKey, f.sig, f.header, f.ph, disclosed, f.msgs...)
	require.NoError(t, err)

	t.Run("replaced disclosed message", func(t *testing.T) {
		swapped := [][]byte{disclosedMsgs[0], []byte("forged")}
		assert.ErrorIs(t, suite.ProofVerify(f.kp.PublicKey, proof, len(f.msgs), f.header, f.ph, disclosed, swapped...), ErrOperation)
	})

	t.Run("changed disclosed index", func(t *testing.T) {
		assert.ErrorIs(t, suite.ProofVerify(f.kp.PublicKey, proof, len(f.msgs), f.header, f.ph, []int{0, 3}, disclosedMsgs...), ErrOperation)
	})

	t.Run("changed presentation header", func(t *testing.T) {
		ph := append([]byte(nil), f.ph...)
		ph[0] ^= 0x01
		assert.ErrorIs(t, suite.ProofVerify(f.kp.PublicKey, proof, len(f.msgs), f.header, ph, disclosed, disclosedMsgs...), ErrOperation)
	})

	t.Run("changed header", func(t *testing.T) {
		assert.ErrorIs(t, suite.ProofVerify(f.kp.PublicKey, proof, len(f.msgs), []byte("other"), f.ph, disclosed, disclosedMsgs...), ErrOperation)
	})

	t.Run("changed message count", func(t *testing.T) {
		assert.ErrorIs(t, suite.ProofVerify(f.kp.PublicKey, proof, len(f.msgs)+1, f.header, f.ph, disclosed, disclosedMsgs...), ErrOperation)
	})

	t.Run("wrong public key", func(t *testing.T) {
		other, err := suite.GenerateKeyPair()
		require.NoError(t, err)
		assert.ErrorIs(t, suite.ProofVerify(other.PublicKey, proof, len(f.msgs), f.header, f.ph, disclosed, disclosedMsgs...), ErrOperation)
	})
}

func TestProofGenValidatesIndexes(t *testing.T) {
	suite := BLS12381SHA256()
	f := newProofFixture(t, suite, 3)

	for _, bad := range [][]int{{-1}, {3}, {1, 1}, {2, 0}} {
		_, err := suite.ProofGen(f.kp.PublicKey, f.sig, f.header, f.ph, bad, f.msgs...)
		assert.ErrorIs(t, err, ErrOperation, "indexes %v", bad)
	}
}

func TestProofVerifyValidatesShape(t *testing.T) {
	suite := BLS12381SHA256()
	f := newProofFixture(t, suite, 3)
	disclosed := []int{1}

	proof, err := suite.ProofGen(f.kp.PublicKey, f.sig, f.header, f.ph, disclosed, f.msgs...)
	require.NoError(t, err)

	t.Run("truncated proof", func(t *testing.T) {
		assert.ErrorIs(t, suite.ProofVerify(f.kp.PublicKey, proof[:len(proof)-1], 3, f.header, f.ph, disclosed, f.msgs[1]), ErrOperation)
	})

	t.Run("message count mismatch with indexes", func(t *testing.T) {
		assert.ErrorIs(t, suite.ProofVerify(f.kp.PublicKey, proof, 0, f.header, f.ph, disclosed, f.msgs[1]), ErrOperation)
	})

	t.Run("missing disclosed message", func(t *testing.T) {
		assert.ErrorIs(t, suite.ProofVerify(f.kp.PublicKey, proof, 3, f.header, f.ph, disclosed), ErrOperation)
	})
}
