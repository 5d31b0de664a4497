package bbs

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashToScalarChunkingInvariance(t *testing.T) {
	msg := []byte("attribute value under test")
	dst := []byte("H2S-CHUNKING-DST")

	for _, suite := range Suites() {
		t.Run(suite.ID(), func(t *testing.T) {
			oneShot, err := suite.hashToScalar(dst, msg)
			require.NoError(t, err)

			for cut := 0; cut <= len(msg); cut++ {
				h := suite.newScalarHasher()
				h.update(msg[:cut])
				h.update(msg[cut:])
				got, err := h.finalize(dst)
				require.NoError(t, err)
				assert.True(t, oneShot.Equal(got), "split at %d diverged", cut)
			}
		})
	}
}

func TestHashToScalarRange(t *testing.T) {
	for _, suite := range Suites() {
		t.Run(suite.ID(), func(t *testing.T) {
			for i := 0; i < 16; i++ {
				s, err := suite.hashToScalar([]byte("range-dst"), []byte{byte(i)})
				require.NoError(t, err)
				assert.False(t, s.IsZero())

				n := new(big.Int).SetBytes(scalarBytes(s))
				assert.True(t, n.Cmp(frOrder) < 0)
			}
		})
	}
}

func TestHashToScalarDSTSeparation(t *testing.T) {
	suite := BLS12381SHA256()
	a, err := suite.hashToScalar([]byte("dst-one"), []byte("msg"))
	require.NoError(t, err)
	b, err := suite.hashToScalar([]byte("dst-two"), []byte("msg"))
	require.NoError(t, err)
	assert.False(t, a.Equal(b))
}

func TestDecodeScalarRejectsNonCanonical(t *testing.T) {
	// r itself is the smallest non-canonical encoding.
	var buf [scalarLen]byte
	frOrder.FillBytes(buf[:])
	_, err := decodeScalar(buf[:])
	assert.ErrorIs(t, err, ErrOperation)

	_, err = decodeScalar(make([]byte, scalarLen-1))
	assert.ErrorIs(t, err, ErrOperation)

	_, err = decodeNonzeroScalar(make([]byte, scalarLen))
	assert.ErrorIs(t, err, ErrOperation)
}
