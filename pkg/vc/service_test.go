package vc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lugondev/bbs-signatures/pkg/bbs"
)

const (
	testIssuerDID  = "did:example:issuer"
	testHolderDID  = "did:example:holder"
	testClaimNonce = "verifier-challenge-42"
)

func newTestService(t *testing.T) (CredentialService, *bbs.KeyPair) {
	t.Helper()
	suite := bbs.BLS12381SHA256()
	kp, err := suite.GenerateKeyPair()
	require.NoError(t, err)

	service := NewService(suite, NewInMemoryCredentialRepository(), NewInMemoryPresentationRepository())
	service.SetIssuerKeyPair(testIssuerDID, kp.PublicKey, kp.PrivateKey)
	return service, kp
}

func testClaims() []Claim {
	return []Claim{
		{Key: "name", Value: "Alice Example"},
		{Key: "dateOfBirth", Value: "1990-04-01"},
		{Key: "nationality", Value: "VN"},
		{Key: "licenseClass", Value: "B2"},
	}
}

func TestIssueAndVerifyCredential(t *testing.T) {
	service, _ := newTestService(t)

	credential, err := service.IssueCredential(testIssuerDID, testHolderDID, testClaims())
	require.NoError(t, err)

	assert.NotEmpty(t, credential.ID)
	assert.Equal(t, testIssuerDID, credential.Issuer)
	assert.Equal(t, testHolderDID, credential.CredentialSubject["id"])
	require.NotNil(t, credential.Proof)
	assert.Equal(t, []string{"id", "name", "dateOfBirth", "nationality", "licenseClass"}, credential.Proof.SignedClaimKeys)
	assert.Equal(t, 5, credential.Proof.TotalMessages)

	assert.NoError(t, service.VerifyCredential(credential))

	t.Run("tampered claim rejected", func(t *testing.T) {
		credential.CredentialSubject["name"] = "Mallory Example"
		assert.Error(t, service.VerifyCredential(credential))
		credential.CredentialSubject["name"] = "Alice Example"
	})

	t.Run("reserved claim key", func(t *testing.T) {
		_, err := service.IssueCredential(testIssuerDID, testHolderDID, []Claim{{Key: "id", Value: "x"}})
		assert.Error(t, err)
	})

	t.Run("unknown issuer", func(t *testing.T) {
		_, err := service.IssueCredential("did:example:stranger", testHolderDID, testClaims())
		assert.Error(t, err)
	})
}

func TestPresentationRoundTrip(t *testing.T) {
	service, _ := newTestService(t)

	credential, err := service.IssueCredential(testIssuerDID, testHolderDID, testClaims())
	require.NoError(t, err)

	request := SelectiveDisclosureRequest{
		CredentialID:       credential.ID,
		RevealedAttributes: []string{"nationality", "licenseClass"},
		Nonce:              testClaimNonce,
	}

	vp, err := service.CreatePresentation(testHolderDID, []*VerifiableCredential{credential}, []SelectiveDisclosureRequest{request})
	require.NoError(t, err)
	require.Len(t, vp.VerifiableCredential, 1)

	derived := vp.VerifiableCredential[0]
	assert.Equal(t, testHolderDID, derived.CredentialSubject["id"])
	assert.Equal(t, "VN", derived.CredentialSubject["nationality"])
	assert.NotContains(t, derived.CredentialSubject, "name")
	assert.NotContains(t, derived.CredentialSubject, "dateOfBirth")
	assert.Equal(t, testClaimNonce, derived.Proof.Nonce)

	assert.NoError(t, service.VerifyPresentation(vp))

	t.Run("modified disclosed value rejected", func(t *testing.T) {
		derived.CredentialSubject["nationality"] = "US"
		assert.Error(t, service.VerifyPresentation(vp))
		derived.CredentialSubject["nationality"] = "VN"
	})

	t.Run("modified nonce rejected", func(t *testing.T) {
		derived.Proof.Nonce = "replayed-nonce"
		assert.Error(t, service.VerifyPresentation(vp))
		derived.Proof.Nonce = testClaimNonce
	})

	t.Run("modified message count rejected", func(t *testing.T) {
		derived.Proof.TotalMessages++
		assert.Error(t, service.VerifyPresentation(vp))
		derived.Proof.TotalMessages--
	})
}

func TestVerifierOnlyNeedsPublicKey(t *testing.T) {
	service, kp := newTestService(t)

	credential, err := service.IssueCredential(testIssuerDID, testHolderDID, testClaims())
	require.NoError(t, err)

	vp, err := service.CreatePresentation(testHolderDID, []*VerifiableCredential{credential}, []SelectiveDisclosureRequest{{
		CredentialID:       credential.ID,
		RevealedAttributes: []string{"name"},
		Nonce:              testClaimNonce,
	}})
	require.NoError(t, err)

	// A separate verifier-side service that only knows the issuer public key
	verifier := NewService(bbs.BLS12381SHA256(), NewInMemoryCredentialRepository(), NewInMemoryPresentationRepository())
	verifier.RegisterIssuerPublicKey(testIssuerDID, kp.PublicKey)

	assert.NoError(t, verifier.VerifyPresentation(vp))
}

func TestCreatePresentationMismatch(t *testing.T) {
	service, _ := newTestService(t)
	credential, err := service.IssueCredential(testIssuerDID, testHolderDID, testClaims())
	require.NoError(t, err)

	_, err = service.CreatePresentation(testHolderDID, []*VerifiableCredential{credential}, nil)
	assert.Error(t, err)
}
