package dto

import "github.com/lugondev/bbs-signatures/pkg/vc"

// SetupVerifierRequest represents the request to setup a verifier
type SetupVerifierRequest struct {
	Method string `json:"method" validate:"required"`
}

// SetupVerifierResponse represents the response from setting up a verifier
type SetupVerifierResponse struct {
	DID    string `json:"did"`
	Status string `json:"status"`
}

// VerifyPresentationRequest represents the request to verify a presentation
type VerifyPresentationRequest struct {
	Presentation      *vc.VerifiablePresentation `json:"presentation" validate:"required"`
	RequiredClaims    []string                   `json:"requiredClaims"`
	TrustedIssuers    []string                   `json:"trustedIssuers"`
	VerificationNonce string                     `json:"verificationNonce"`
}

// VerifyPresentationResponse represents the verification outcome
type VerifyPresentationResponse struct {
	Valid          bool                   `json:"valid"`
	Errors         []string               `json:"errors,omitempty"`
	RevealedClaims map[string]interface{} `json:"revealedClaims,omitempty"`
	HolderDID      string                 `json:"holderDid"`
	IssuerDIDs     []string               `json:"issuerDids"`
}

// CreateVerificationRequestDTO represents a new verification request
type CreateVerificationRequestDTO struct {
	RequiredClaims []string `json:"requiredClaims"`
	TrustedIssuers []string `json:"trustedIssuers"`
	Nonce          string   `json:"nonce,omitempty"`
}
