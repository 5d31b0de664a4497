package dto

import "github.com/lugondev/bbs-signatures/pkg/vc"

// SetupHolderRequest represents the request to setup a holder
type SetupHolderRequest struct {
	Method string `json:"method" validate:"required"`
}

// SetupHolderResponse represents the response from setting up a holder
type SetupHolderResponse struct {
	DID    string `json:"did"`
	Status string `json:"status"`
}

// StoreCredentialRequest represents the request to store a credential
type StoreCredentialRequest struct {
	Credential *vc.VerifiableCredential `json:"credential" validate:"required"`
}

// ListCredentialsResponse represents the stored credentials of a holder
type ListCredentialsResponse struct {
	HolderDID   string                     `json:"holderDid"`
	Credentials []*vc.VerifiableCredential `json:"credentials"`
}

// DisclosureRequestDTO selects the attributes to reveal from one credential
type DisclosureRequestDTO struct {
	CredentialID       string   `json:"credentialId" validate:"required"`
	RevealedAttributes []string `json:"revealedAttributes"`
}

// CreatePresentationRequest represents the request to create a presentation
type CreatePresentationRequest struct {
	HolderDID           string                 `json:"holderDid" validate:"required"`
	SelectiveDisclosure []DisclosureRequestDTO `json:"selectiveDisclosure" validate:"required,min=1"`
	Nonce               string                 `json:"nonce"`
}

// CreatePresentationResponse represents the created presentation
type CreatePresentationResponse struct {
	PresentationID string                     `json:"presentationId"`
	Presentation   *vc.VerifiablePresentation `json:"presentation"`
}
