package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lugondev/bbs-signatures/interfaces/http/dto"
)

// writeErrorResponse writes an error response to the HTTP response writer
func writeErrorResponse(w http.ResponseWriter, message string, statusCode int, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResp := dto.ErrorResponse{
		Error:   message,
		Code:    statusCode,
		Details: details,
	}

	json.NewEncoder(w).Encode(errorResp)
}

// writeSuccessResponse writes a success response to the HTTP response writer
func writeSuccessResponse(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(data)
}

// enableCORS enables CORS for the response
func enableCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
}

// requirePost handles CORS preflight and rejects non-POST methods. It
// reports whether the caller should continue.
func requirePost(w http.ResponseWriter, r *http.Request) bool {
	enableCORS(w)

	if r.Method == http.MethodOptions {
		return false
	}
	if r.Method != http.MethodPost {
		writeErrorResponse(w, "Method not allowed", http.StatusMethodNotAllowed, "")
		return false
	}
	return true
}
