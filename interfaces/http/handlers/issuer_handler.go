package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lugondev/bbs-signatures/interfaces/http/dto"
	"github.com/lugondev/bbs-signatures/internal/issuer"
	"github.com/lugondev/bbs-signatures/pkg/vc"
)

// IssuerHandler handles issuer-related HTTP requests
type IssuerHandler struct {
	issuerUC *issuer.UseCase
}

// NewIssuerHandler creates a new issuer handler
func NewIssuerHandler(issuerUC *issuer.UseCase) *IssuerHandler {
	return &IssuerHandler{
		issuerUC: issuerUC,
	}
}

// SetupIssuer handles POST /api/issuer/setup
func (h *IssuerHandler) SetupIssuer(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.SetupIssuerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, "Invalid request body", http.StatusBadRequest, err.Error())
		return
	}

	setup, err := h.issuerUC.SetupIssuer(req.Method)
	if err != nil {
		writeErrorResponse(w, "Failed to setup issuer", http.StatusInternalServerError, err.Error())
		return
	}

	response := dto.SetupIssuerResponse{
		DID:    setup.DID.String(),
		Status: "success",
	}

	writeSuccessResponse(w, response)
}

// IssueCredential handles POST /api/issuer/credentials
func (h *IssuerHandler) IssueCredential(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.IssueCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, "Invalid request body", http.StatusBadRequest, err.Error())
		return
	}

	credential, err := h.issuerUC.IssueCredential(req.IssuerDID, req.SubjectDID, dto.ToVCClaims(req.Claims))
	if err != nil {
		writeErrorResponse(w, "Failed to issue credential", http.StatusInternalServerError, err.Error())
		return
	}

	response := dto.IssueCredentialResponse{
		CredentialID: credential.ID,
		Credential:   credential,
	}

	writeSuccessResponse(w, response)
}

// VerifyCredential handles POST /api/issuer/verify
func (h *IssuerHandler) VerifyCredential(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var credential vc.VerifiableCredential
	if err := json.NewDecoder(r.Body).Decode(&credential); err != nil {
		writeErrorResponse(w, "Invalid request body", http.StatusBadRequest, err.Error())
		return
	}

	if err := h.issuerUC.VerifyCredential(&credential); err != nil {
		writeSuccessResponse(w, dto.SuccessResponse{
			Message: "Credential verification completed",
			Data:    map[string]interface{}{"valid": false, "reason": err.Error()},
		})
		return
	}

	writeSuccessResponse(w, dto.SuccessResponse{
		Message: "Credential verification completed",
		Data:    map[string]interface{}{"valid": true},
	})
}
