package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lugondev/bbs-signatures/interfaces/http/dto"
	"github.com/lugondev/bbs-signatures/internal/holder"
	"github.com/lugondev/bbs-signatures/pkg/vc"
)

// HolderHandler handles holder-related HTTP requests
type HolderHandler struct {
	holderUC *holder.UseCase
}

// NewHolderHandler creates a new holder handler
func NewHolderHandler(holderUC *holder.UseCase) *HolderHandler {
	return &HolderHandler{
		holderUC: holderUC,
	}
}

// SetupHolder handles POST /api/holder/setup
func (h *HolderHandler) SetupHolder(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.SetupHolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, "Invalid request body", http.StatusBadRequest, err.Error())
		return
	}

	setup, err := h.holderUC.SetupHolder(req.Method)
	if err != nil {
		writeErrorResponse(w, "Failed to setup holder", http.StatusInternalServerError, err.Error())
		return
	}

	response := dto.SetupHolderResponse{
		DID:    setup.DID.String(),
		Status: "success",
	}

	writeSuccessResponse(w, response)
}

// StoreCredential handles POST /api/holder/credentials
func (h *HolderHandler) StoreCredential(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.StoreCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, "Invalid request body", http.StatusBadRequest, err.Error())
		return
	}

	if req.Credential == nil {
		writeErrorResponse(w, "Credential is required", http.StatusBadRequest, "")
		return
	}

	if err := h.holderUC.StoreCredential(req.Credential); err != nil {
		writeErrorResponse(w, "Failed to store credential", http.StatusInternalServerError, err.Error())
		return
	}

	writeSuccessResponse(w, dto.SuccessResponse{Message: "Credential stored"})
}

// ListCredentials handles GET /api/holder/credentials/list
func (h *HolderHandler) ListCredentials(w http.ResponseWriter, r *http.Request) {
	enableCORS(w)

	if r.Method == http.MethodOptions {
		return
	}
	if r.Method != http.MethodGet {
		writeErrorResponse(w, "Method not allowed", http.StatusMethodNotAllowed, "")
		return
	}

	holderDID := r.URL.Query().Get("holderDid")
	if holderDID == "" {
		writeErrorResponse(w, "holderDid query parameter is required", http.StatusBadRequest, "")
		return
	}

	credentials, err := h.holderUC.ListCredentials(holderDID)
	if err != nil {
		writeErrorResponse(w, "Failed to list credentials", http.StatusInternalServerError, err.Error())
		return
	}

	response := dto.ListCredentialsResponse{
		HolderDID:   holderDID,
		Credentials: credentials,
	}

	writeSuccessResponse(w, response)
}

// CreatePresentation handles POST /api/holder/presentations
func (h *HolderHandler) CreatePresentation(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.CreatePresentationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, "Invalid request body", http.StatusBadRequest, err.Error())
		return
	}

	credentialIDs := make([]string, len(req.SelectiveDisclosure))
	disclosures := make([]vc.SelectiveDisclosureRequest, len(req.SelectiveDisclosure))
	for i, sd := range req.SelectiveDisclosure {
		credentialIDs[i] = sd.CredentialID
		disclosures[i] = vc.SelectiveDisclosureRequest{
			CredentialID:       sd.CredentialID,
			RevealedAttributes: sd.RevealedAttributes,
		}
	}

	presentation, err := h.holderUC.CreatePresentation(holder.PresentationRequest{
		HolderDID:           req.HolderDID,
		CredentialIDs:       credentialIDs,
		SelectiveDisclosure: disclosures,
		Nonce:               req.Nonce,
	})
	if err != nil {
		writeErrorResponse(w, "Failed to create presentation", http.StatusInternalServerError, err.Error())
		return
	}

	response := dto.CreatePresentationResponse{
		PresentationID: presentation.ID,
		Presentation:   presentation,
	}

	writeSuccessResponse(w, response)
}
