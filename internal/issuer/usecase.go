package issuer

import (
	"fmt"

	"github.com/lugondev/bbs-signatures/pkg/bbs"
	"github.com/lugondev/bbs-signatures/pkg/did"
	"github.com/lugondev/bbs-signatures/pkg/vc"
)

// UseCase represents the issuer use case
type UseCase struct {
	didService did.DIDService
	didRepo    did.DIDRepository
	vcService  vc.CredentialService
}

// NewUseCase creates a new issuer use case
func NewUseCase(didService did.DIDService, didRepo did.DIDRepository, vcService vc.CredentialService) *UseCase {
	return &UseCase{
		didService: didService,
		didRepo:    didRepo,
		vcService:  vcService,
	}
}

// IssuerSetup represents the setup process for an issuer
type IssuerSetup struct {
	DID     *did.DID
	DIDDoc  *did.DIDDocument
	KeyPair *bbs.KeyPair
}

// SetupIssuer sets up a new issuer with a DID and BBS signing keys
func (uc *UseCase) SetupIssuer(method string) (*IssuerSetup, error) {
	issuerDID, keyPair, err := uc.didService.GenerateDID(method)
	if err != nil {
		return nil, fmt.Errorf("failed to generate DID: %w", err)
	}

	didDoc, err := uc.didService.CreateDIDDocument(issuerDID, keyPair)
	if err != nil {
		return nil, fmt.Errorf("failed to create DID document: %w", err)
	}

	// Publish the document so holders and verifiers can resolve the key
	if err := uc.didRepo.Create(didDoc); err != nil {
		return nil, fmt.Errorf("failed to publish DID document: %w", err)
	}

	// Register the signing keys with the VC service
	uc.vcService.SetIssuerKeyPair(issuerDID.String(), keyPair.PublicKey, keyPair.PrivateKey)

	return &IssuerSetup{
		DID:     issuerDID,
		DIDDoc:  didDoc,
		KeyPair: keyPair,
	}, nil
}

// IssueCredential issues a credential for a subject
func (uc *UseCase) IssueCredential(issuerDID string, subjectDID string, claims []vc.Claim) (*vc.VerifiableCredential, error) {
	if issuerDID == "" || subjectDID == "" {
		return nil, fmt.Errorf("issuer and subject DIDs are required")
	}
	if len(claims) == 0 {
		return nil, fmt.Errorf("at least one claim is required")
	}

	credential, err := uc.vcService.IssueCredential(issuerDID, subjectDID, claims)
	if err != nil {
		return nil, fmt.Errorf("failed to issue credential: %w", err)
	}

	return credential, nil
}

// VerifyCredential verifies a credential issued by this issuer
func (uc *UseCase) VerifyCredential(credential *vc.VerifiableCredential) error {
	if err := uc.vcService.VerifyCredential(credential); err != nil {
		return fmt.Errorf("credential verification failed: %w", err)
	}
	return nil
}
