package bbs

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentedRoundTrip(t *testing.T) {
	w := NewInstrumented(BLS12381SHA256(), zerolog.Nop())

	kp, err := w.GenerateKeyPair()
	require.NoError(t, err)

	msgs := testMessages(3)
	sig, err := w.Sign(kp.PrivateKey, kp.PublicKey, nil, msgs...)
	require.NoError(t, err)
	require.NoError(t, w.Verify(kp.PublicKey, sig, nil, msgs...))

	proof, err := w.ProofGen(kp.PublicKey, sig, nil, []byte("nonce"), []int{1}, msgs...)
	require.NoError(t, err)
	require.NoError(t, w.ProofVerify(kp.PublicKey, proof, 3, nil, []byte("nonce"), []int{1}, msgs[1]))

	m := w.Metrics()
	assert.Equal(t, int64(5), m.TotalOperations)
	assert.Equal(t, 1.0, m.SuccessRate)
	assert.True(t, m.SigningTime > 0)
}

func TestInstrumentedTracksFailures(t *testing.T) {
	w := NewInstrumented(BLS12381SHA256(), zerolog.Nop())

	err := w.Verify(make([]byte, PublicKeyLen), make([]byte, SignatureLen), nil)
	assert.ErrorIs(t, err, ErrOperation)

	m := w.Metrics()
	assert.Equal(t, int64(1), m.TotalOperations)
	assert.Equal(t, 0.0, m.SuccessRate)
}
