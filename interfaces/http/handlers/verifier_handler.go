package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lugondev/bbs-signatures/interfaces/http/dto"
	"github.com/lugondev/bbs-signatures/internal/verifier"
)

// VerifierHandler handles verifier-related HTTP requests
type VerifierHandler struct {
	verifierUC *verifier.UseCase
}

// NewVerifierHandler creates a new verifier handler
func NewVerifierHandler(verifierUC *verifier.UseCase) *VerifierHandler {
	return &VerifierHandler{
		verifierUC: verifierUC,
	}
}

// SetupVerifier handles POST /api/verifier/setup
func (h *VerifierHandler) SetupVerifier(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.SetupVerifierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, "Invalid request body", http.StatusBadRequest, err.Error())
		return
	}

	setup, err := h.verifierUC.SetupVerifier(req.Method)
	if err != nil {
		writeErrorResponse(w, "Failed to setup verifier", http.StatusInternalServerError, err.Error())
		return
	}

	response := dto.SetupVerifierResponse{
		DID:    setup.DID.String(),
		Status: "success",
	}

	writeSuccessResponse(w, response)
}

// VerifyPresentation handles POST /api/verifier/verify
func (h *VerifierHandler) VerifyPresentation(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.VerifyPresentationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, "Invalid request body", http.StatusBadRequest, err.Error())
		return
	}

	if req.Presentation == nil {
		writeErrorResponse(w, "Presentation is required", http.StatusBadRequest, "")
		return
	}

	result, err := h.verifierUC.VerifyPresentation(verifier.VerificationRequest{
		Presentation:      req.Presentation,
		RequiredClaims:    req.RequiredClaims,
		TrustedIssuers:    req.TrustedIssuers,
		VerificationNonce: req.VerificationNonce,
	})
	if err != nil {
		writeErrorResponse(w, "Failed to verify presentation", http.StatusInternalServerError, err.Error())
		return
	}

	response := dto.VerifyPresentationResponse{
		Valid:          result.Valid,
		Errors:         result.Errors,
		RevealedClaims: result.RevealedClaims,
		HolderDID:      result.HolderDID,
		IssuerDIDs:     result.IssuerDIDs,
	}

	writeSuccessResponse(w, response)
}

// CreateVerificationRequest handles POST /api/verifier/verification-request
func (h *VerifierHandler) CreateVerificationRequest(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.CreateVerificationRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, "Invalid request body", http.StatusBadRequest, err.Error())
		return
	}

	params, err := h.verifierUC.CreateVerificationRequest(verifier.CreateVerificationRequestParams{
		RequiredClaims:    req.RequiredClaims,
		TrustedIssuers:    req.TrustedIssuers,
		VerificationNonce: req.Nonce,
	})
	if err != nil {
		writeErrorResponse(w, "Failed to create verification request", http.StatusInternalServerError, err.Error())
		return
	}

	writeSuccessResponse(w, params)
}

// ListPresentations handles GET /api/verifier/presentations
func (h *VerifierHandler) ListPresentations(w http.ResponseWriter, r *http.Request) {
	enableCORS(w)

	if r.Method == http.MethodOptions {
		return
	}
	if r.Method != http.MethodGet {
		writeErrorResponse(w, "Method not allowed", http.StatusMethodNotAllowed, "")
		return
	}

	presentations, err := h.verifierUC.ListVerifiedPresentations(r.URL.Query().Get("verifierDid"))
	if err != nil {
		writeErrorResponse(w, "Failed to list presentations", http.StatusInternalServerError, err.Error())
		return
	}

	writeSuccessResponse(w, presentations)
}
