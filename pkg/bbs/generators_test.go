package bbs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorStreamDeterminism(t *testing.T) {
	for _, suite := range Suites() {
		t.Run(suite.ID(), func(t *testing.T) {
			c := newCurveOps()
			first, err := suite.newGeneratorStream(c)
			require.NoError(t, err)
			second, err := suite.newGeneratorStream(c)
			require.NoError(t, err)

			for i := 0; i < 5; i++ {
				a, err := first.next()
				require.NoError(t, err)
				b, err := second.next()
				require.NoError(t, err)
				assert.Equal(t, c.g1.ToCompressed(a), c.g1.ToCompressed(b), "generator %d not deterministic", i)
				assert.False(t, c.g1.IsZero(a))
			}
		})
	}
}

func TestGeneratorStreamDistinct(t *testing.T) {
	suite := BLS12381SHA256()
	c := newCurveOps()
	gens, err := suite.newGeneratorStream(c)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 8; i++ {
		p, err := gens.next()
		require.NoError(t, err)
		enc := string(c.g1.ToCompressed(p))
		assert.False(t, seen[enc], "generator %d repeated", i)
		seen[enc] = true
	}
}

func TestGeneratorStreamsDifferAcrossSuites(t *testing.T) {
	c := newCurveOps()
	sha, err := BLS12381SHA256().newGeneratorStream(c)
	require.NoError(t, err)
	shake, err := BLS12381Shake256().newGeneratorStream(c)
	require.NoError(t, err)

	a, err := sha.next()
	require.NoError(t, err)
	b, err := shake.next()
	require.NoError(t, err)
	assert.NotEqual(t, c.g1.ToCompressed(a), c.g1.ToCompressed(b))
}

func TestSuiteBasePoints(t *testing.T) {
	for _, suite := range Suites() {
		t.Run(suite.ID(), func(t *testing.T) {
			c := newCurveOps()
			p1, err := c.basePoint(suite)
			require.NoError(t, err)
			assert.False(t, c.g1.IsZero(p1))
		})
	}
}
