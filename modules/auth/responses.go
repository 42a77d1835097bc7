package auth

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/contexta-app/contexta/pkg/validator"
)

// maxBodyBytes caps request bodies; auth payloads are tiny.
const maxBodyBytes = 1 << 20

// response is the envelope every endpoint returns.
type response struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    any                 `json:"data,omitempty"`
	Errors  []map[string]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func respondOK(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, response{Success: true, Message: message, Data: data})
}

func respondCreated(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusCreated, response{Success: true, Message: message, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, response{Success: false, Message: message})
}

func respondValidationErrors(w http.ResponseWriter, ve validator.ValidationErrors) {
	fields := make([]map[string]string, 0, len(ve))
	for _, e := range ve {
		fields = append(fields, map[string]string{
			"field":   e.Field,
			"message": e.Message,
		})
	}
	writeJSON(w, http.StatusBadRequest, response{
		Success: false,
		Message: "Validation failed",
		Errors:  fields,
	})
}

// decodeRequest parses the JSON body into req and runs its validation.
// Returns false after writing the error response when anything fails.
func decodeRequest(w http.ResponseWriter, r *http.Request, req interface{ Validate() error }) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	// Trailing garbage after the JSON object is a malformed request too.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}

	if err := req.Validate(); err != nil {
		if ve := validator.ExtractValidationErrors(err); ve != nil {
			respondValidationErrors(w, ve)
		} else {
			respondError(w, http.StatusBadRequest, "Validation failed")
		}
		return false
	}

	return true
}
