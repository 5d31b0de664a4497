package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lugondev/bbs-signatures/internal/holder"
	"github.com/lugondev/bbs-signatures/internal/issuer"
	"github.com/lugondev/bbs-signatures/internal/verifier"
	"github.com/lugondev/bbs-signatures/pkg/bbs"
	"github.com/lugondev/bbs-signatures/pkg/did"
	"github.com/lugondev/bbs-signatures/pkg/vc"
)

type world struct {
	issuerUC   *issuer.UseCase
	holderUC   *holder.UseCase
	verifierUC *verifier.UseCase
}

func newWorld(t *testing.T, suite *bbs.Suite) *world {
	t.Helper()
	didRepo := did.NewInMemoryRepository()
	didService := did.NewService(suite, didRepo)
	credRepo := vc.NewInMemoryCredentialRepository()
	presRepo := vc.NewInMemoryPresentationRepository()
	vcService := vc.NewService(suite, credRepo, presRepo)

	return &world{
		issuerUC:   issuer.NewUseCase(didService, didRepo, vcService),
		holderUC:   holder.NewUseCase(didService, vcService, credRepo),
		verifierUC: verifier.NewUseCase(didService, didRepo, vcService, presRepo),
	}
}

func TestFullLifecycle(t *testing.T) {
	for _, suite := range bbs.Suites() {
		t.Run(suite.ID(), func(t *testing.T) {
			w := newWorld(t, suite)

			issuerSetup, err := w.issuerUC.SetupIssuer("example")
			require.NoError(t, err)
			holderSetup, err := w.holderUC.SetupHolder("example")
			require.NoError(t, err)
			verifierSetup, err := w.verifierUC.SetupVerifier("example")
			require.NoError(t, err)
			assert.NotEqual(t, issuerSetup.DID.String(), verifierSetup.DID.String())

			claims := []vc.Claim{
				{Key: "name", Value: "Alice Example"},
				{Key: "dateOfBirth", Value: "1990-04-01"},
				{Key: "nationality", Value: "VN"},
			}
			credential, err := w.issuerUC.IssueCredential(issuerSetup.DID.String(), holderSetup.DID.String(), claims)
			require.NoError(t, err)
			require.NoError(t, w.holderUC.StoreCredential(credential))

			request, err := w.verifierUC.CreateVerificationRequest(verifier.CreateVerificationRequestParams{
				RequiredClaims: []string{"nationality"},
				TrustedIssuers: []string{issuerSetup.DID.String()},
			})
			require.NoError(t, err)
			require.NotEmpty(t, request.VerificationNonce)

			presentation, err := w.holderUC.CreatePresentation(holder.PresentationRequest{
				HolderDID:     holderSetup.DID.String(),
				CredentialIDs: []string{credential.ID},
				SelectiveDisclosure: []vc.SelectiveDisclosureRequest{{
					CredentialID:       credential.ID,
					RevealedAttributes: []string{"nationality"},
				}},
				Nonce: request.VerificationNonce,
			})
			require.NoError(t, err)

			// Hidden attributes never appear in the derived credential
			derived := presentation.VerifiableCredential[0]
			assert.NotContains(t, derived.CredentialSubject, "name")
			assert.NotContains(t, derived.CredentialSubject, "dateOfBirth")

			result, err := w.verifierUC.VerifyPresentation(verifier.VerificationRequest{
				Presentation:      presentation,
				RequiredClaims:    request.RequiredClaims,
				TrustedIssuers:    request.TrustedIssuers,
				VerificationNonce: request.VerificationNonce,
			})
			require.NoError(t, err)
			assert.True(t, result.Valid, "errors: %v", result.Errors)
			assert.Equal(t, "VN", result.RevealedClaims["nationality"])
		})
	}
}

func TestLifecycleRejectsWrongNonce(t *testing.T) {
	w := newWorld(t, bbs.BLS12381SHA256())

	issuerSetup, err := w.issuerUC.SetupIssuer("example")
	require.NoError(t, err)
	holderSetup, err := w.holderUC.SetupHolder("example")
	require.NoError(t, err)

	credential, err := w.issuerUC.IssueCredential(issuerSetup.DID.String(), holderSetup.DID.String(), []vc.Claim{
		{Key: "nationality", Value: "VN"},
	})
	require.NoError(t, err)
	require.NoError(t, w.holderUC.StoreCredential(credential))

	presentation, err := w.holderUC.CreatePresentation(holder.PresentationRequest{
		HolderDID:     holderSetup.DID.String(),
		CredentialIDs: []string{credential.ID},
		SelectiveDisclosure: []vc.SelectiveDisclosureRequest{{
			CredentialID:       credential.ID,
			RevealedAttributes: []string{"nationality"},
		}},
		Nonce: "holder-chosen-nonce",
	})
	require.NoError(t, err)

	result, err := w.verifierUC.VerifyPresentation(verifier.VerificationRequest{
		Presentation:      presentation,
		VerificationNonce: "verifier-expected-nonce",
	})
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestLifecycleRejectsUntrustedIssuer(t *testing.T) {
	w := newWorld(t, bbs.BLS12381SHA256())

	issuerSetup, err := w.issuerUC.SetupIssuer("example")
	require.NoError(t, err)
	holderSetup, err := w.holderUC.SetupHolder("example")
	require.NoError(t, err)

	credential, err := w.issuerUC.IssueCredential(issuerSetup.DID.String(), holderSetup.DID.String(), []vc.Claim{
		{Key: "nationality", Value: "VN"},
	})
	require.NoError(t, err)
	require.NoError(t, w.holderUC.StoreCredential(credential))

	presentation, err := w.holderUC.CreatePresentation(holder.PresentationRequest{
		HolderDID:     holderSetup.DID.String(),
		CredentialIDs: []string{credential.ID},
		SelectiveDisclosure: []vc.SelectiveDisclosureRequest{{
			CredentialID:       credential.ID,
			RevealedAttributes: []string{"nationality"},
		}},
		Nonce: "nonce",
	})
	require.NoError(t, err)

	result, err := w.verifierUC.VerifyPresentation(verifier.VerificationRequest{
		Presentation:      presentation,
		TrustedIssuers:    []string{"did:example:someone-else"},
		VerificationNonce: "nonce",
	})
	require.NoError(t, err)
	assert.False(t, result.Valid)
}
