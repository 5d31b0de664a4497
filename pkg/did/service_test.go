package did

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lugondev/bbs-signatures/pkg/bbs"
)

func newTestService(t *testing.T) DIDService {
	t.Helper()
	return NewService(bbs.BLS12381SHA256(), NewInMemoryRepository())
}

func TestGenerateDID(t *testing.T) {
	service := newTestService(t)

	did, keyPair, err := service.GenerateDID("example")
	require.NoError(t, err)

	assert.Equal(t, "example", did.Method)
	assert.NotEmpty(t, did.Identifier)
	assert.Contains(t, did.String(), "did:example:z")
	assert.Len(t, keyPair.PublicKey, bbs.PublicKeyLen)
	assert.Len(t, keyPair.PrivateKey, bbs.SecretKeyLen)

	// Identifiers are derived from the key, so two DIDs never collide
	did2, _, err := service.GenerateDID("example")
	require.NoError(t, err)
	assert.NotEqual(t, did.Identifier, did2.Identifier)
}

func TestCreateAndVerifyDIDDocument(t *testing.T) {
	service := newTestService(t)

	did, keyPair, err := service.GenerateDID("example")
	require.NoError(t, err)

	doc, err := service.CreateDIDDocument(did, keyPair)
	require.NoError(t, err)

	assert.Equal(t, did.String(), doc.ID)
	require.Len(t, doc.VerificationMethod, 1)
	assert.Equal(t, "Bls12381G2Key2020", doc.VerificationMethod[0].Type)

	assert.NoError(t, service.VerifyDIDDocument(doc))

	t.Run("public key round trip", func(t *testing.T) {
		pk, err := service.PublicKeyFromDocument(doc)
		require.NoError(t, err)
		assert.Equal(t, keyPair.PublicKey, pk)
	})

	t.Run("corrupted key rejected", func(t *testing.T) {
		bad := *doc
		bad.VerificationMethod = []VerificationMethod{doc.VerificationMethod[0]}
		bad.VerificationMethod[0].PublicKeyMultibase = "zinvalid"
		assert.Error(t, service.VerifyDIDDocument(&bad))
	})

	t.Run("dangling authentication rejected", func(t *testing.T) {
		bad := *doc
		bad.Authentication = []string{"did:example:missing#key-1"}
		assert.Error(t, service.VerifyDIDDocument(&bad))
	})
}

func TestRepositoryLifecycle(t *testing.T) {
	repo := NewInMemoryRepository()
	service := NewService(bbs.BLS12381Shake256(), repo)

	did, keyPair, err := service.GenerateDID("example")
	require.NoError(t, err)
	doc, err := service.CreateDIDDocument(did, keyPair)
	require.NoError(t, err)

	require.NoError(t, repo.Create(doc))

	resolved, err := service.ResolveDID(did.String())
	require.NoError(t, err)
	assert.Equal(t, doc.ID, resolved.ID)

	require.NoError(t, repo.Deactivate(did.String()))
	_, err = service.ResolveDID(did.String())
	assert.Error(t, err)
}
