package utils

import (
	"encoding/json"
	"net/http"

	"ROBOTICS-BOOK_BACK-END/internal/dto"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteErrorResponse writes a JSON error body with a human-readable message
func WriteErrorResponse(w http.ResponseWriter, status int, errorText, message string) {
	WriteJSONResponse(w, status, dto.ErrorResponse{
		Error:   errorText,
		Message: message,
	})
}
