package verifier

import (
	"crypto/rand"
	"fmt"

	"github.com/lugondev/bbs-signatures/pkg/bbs"
	"github.com/lugondev/bbs-signatures/pkg/did"
	"github.com/lugondev/bbs-signatures/pkg/vc"
)

// UseCase represents the verifier use case
type UseCase struct {
	didService did.DIDService
	didRepo    did.DIDRepository
	vcService  vc.CredentialService
	presRepo   vc.PresentationRepository
}

// NewUseCase creates a new verifier use case
func NewUseCase(didService did.DIDService, didRepo did.DIDRepository, vcService vc.CredentialService, presRepo vc.PresentationRepository) *UseCase {
	return &UseCase{
		didService: didService,
		didRepo:    didRepo,
		vcService:  vcService,
		presRepo:   presRepo,
	}
}

// VerifierSetup represents the setup process for a verifier
type VerifierSetup struct {
	DID     *did.DID
	DIDDoc  *did.DIDDocument
	KeyPair *bbs.KeyPair
}

// SetupVerifier sets up a new verifier with a DID identity. The document is
// published to the DID repository so holders can resolve who they are
// presenting to.
func (uc *UseCase) SetupVerifier(method string) (*VerifierSetup, error) {
	verifierDID, keyPair, err := uc.didService.GenerateDID(method)
	if err != nil {
		return nil, fmt.Errorf("failed to generate DID: %w", err)
	}

	didDoc, err := uc.didService.CreateDIDDocument(verifierDID, keyPair)
	if err != nil {
		return nil, fmt.Errorf("failed to create DID document: %w", err)
	}

	if err := uc.didRepo.Create(didDoc); err != nil {
		return nil, fmt.Errorf("failed to publish DID document: %w", err)
	}

	return &VerifierSetup{
		DID:     verifierDID,
		DIDDoc:  didDoc,
		KeyPair: keyPair,
	}, nil
}

// VerificationRequest represents a verification request
type VerificationRequest struct {
	Presentation      *vc.VerifiablePresentation
	RequiredClaims    []string
	TrustedIssuers    []string
	VerificationNonce string
}

// VerificationResult represents the result of verification
type VerificationResult struct {
	Valid           bool                   `json:"valid"`
	Errors          []string               `json:"errors,omitempty"`
	RevealedClaims  map[string]interface{} `json:"revealedClaims,omitempty"`
	HolderDID       string                 `json:"holderDid"`
	IssuerDIDs      []string               `json:"issuerDids"`
	CredentialTypes []string               `json:"credentialTypes"`
}

// VerifyPresentation verifies a verifiable presentation: it resolves every
// issuer DID to its public key, checks the BBS disclosure proofs, enforces
// the verifier nonce and collects the revealed claims.
func (uc *UseCase) VerifyPresentation(req VerificationRequest) (*VerificationResult, error) {
	if req.Presentation == nil {
		return nil, fmt.Errorf("presentation is required")
	}

	result := &VerificationResult{
		Valid:           true,
		Errors:          []string{},
		RevealedClaims:  make(map[string]interface{}),
		HolderDID:       req.Presentation.Holder,
		IssuerDIDs:      []string{},
		CredentialTypes: []string{},
	}

	for i, credential := range req.Presentation.VerifiableCredential {
		result.IssuerDIDs = append(result.IssuerDIDs, credential.Issuer)
		result.CredentialTypes = append(result.CredentialTypes, credential.Type...)

		if len(req.TrustedIssuers) > 0 && !contains(req.TrustedIssuers, credential.Issuer) {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("credential %d: issuer %s is not trusted", i, credential.Issuer))
			continue
		}

		// Resolve the issuer key so the VC service can check the proof
		if err := uc.registerIssuerKey(credential.Issuer); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("credential %d: %v", i, err))
			continue
		}

		if req.VerificationNonce != "" && (credential.Proof == nil || credential.Proof.Nonce != req.VerificationNonce) {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("credential %d: nonce mismatch", i))
			continue
		}

		for key, value := range credential.CredentialSubject {
			if key != "id" {
				result.RevealedClaims[key] = value
			}
		}
	}

	if result.Valid {
		if err := uc.vcService.VerifyPresentation(req.Presentation); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("presentation verification failed: %v", err))
		}
	}

	// Check that all required claims were disclosed
	for _, requiredClaim := range req.RequiredClaims {
		if _, exists := result.RevealedClaims[requiredClaim]; !exists {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("required claim '%s' is missing", requiredClaim))
		}
	}

	if result.Valid {
		if err := uc.presRepo.Store(req.Presentation); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to store presentation: %v", err))
		}
	}

	return result, nil
}

// registerIssuerKey resolves the issuer's DID document and hands its BBS
// public key to the VC service.
func (uc *UseCase) registerIssuerKey(issuerDID string) error {
	doc, err := uc.didService.ResolveDID(issuerDID)
	if err != nil {
		return fmt.Errorf("failed to resolve issuer DID: %w", err)
	}
	publicKey, err := uc.didService.PublicKeyFromDocument(doc)
	if err != nil {
		return fmt.Errorf("failed to extract issuer key: %w", err)
	}
	uc.vcService.RegisterIssuerPublicKey(issuerDID, publicKey)
	return nil
}

// CreateVerificationRequestParams holds the parameters of a new request
type CreateVerificationRequestParams struct {
	RequiredClaims    []string `json:"requiredClaims"`
	TrustedIssuers    []string `json:"trustedIssuers"`
	VerificationNonce string   `json:"verificationNonce"`
}

// CreateVerificationRequest creates a verification request, generating a
// fresh nonce when none is supplied
func (uc *UseCase) CreateVerificationRequest(params CreateVerificationRequestParams) (*CreateVerificationRequestParams, error) {
	if params.VerificationNonce == "" {
		raw := make([]byte, 16)
		if _, err := rand.Read(raw); err != nil {
			return nil, fmt.Errorf("failed to generate nonce: %w", err)
		}
		params.VerificationNonce = fmt.Sprintf("%x", raw)
	}

	return &params, nil
}

// ListVerifiedPresentations lists all verified presentations
func (uc *UseCase) ListVerifiedPresentations(verifierDID string) ([]*vc.VerifiablePresentation, error) {
	presentations, err := uc.presRepo.List("")
	if err != nil {
		return nil, fmt.Errorf("failed to list presentations: %w", err)
	}

	return presentations, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
