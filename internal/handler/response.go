package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"banking-ledger/internal/model"
	"banking-ledger/internal/service"
)

const maxBodyBytes = 1 << 20

// statusByCode maps service error codes to HTTP statuses
var statusByCode = map[string]int{
	model.ErrCodeValidation:              http.StatusBadRequest,
	model.ErrCodeInvalidInput:            http.StatusBadRequest,
	model.ErrCodeInvalidAmount:           http.StatusBadRequest,
	model.ErrCodeNotFound:                http.StatusNotFound,
	model.ErrCodeClientNotFound:          http.StatusNotFound,
	model.ErrCodeNoAccount:               http.StatusNotFound,
	model.ErrCodeDuplicateClient:         http.StatusConflict,
	model.ErrCodeDuplicateAccount:        http.StatusConflict,
	model.ErrCodeInsufficientFunds:       http.StatusUnprocessableEntity,
	model.ErrCodeLimitExceeded:           http.StatusUnprocessableEntity,
	model.ErrCodeWithdrawalCountExceeded: http.StatusUnprocessableEntity,
}

// handleServiceError converts service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	var serviceErr *service.ServiceError
	if errors.As(err, &serviceErr) {
		if status, ok := statusByCode[serviceErr.Code]; ok {
			writeErrorResponse(w, status, serviceErr.Message, serviceErr.Code)
			return
		}
	}

	// Unknown error
	writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", model.ErrCodeInternalError)
}

// decodeBody decodes a JSON request body into dst. An empty body is accepted when allowEmpty is set.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, allowEmpty bool) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return true
		}
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error(), model.ErrCodeInvalidInput)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	// headers are already sent, nothing useful can be done with an encode error
	_ = json.NewEncoder(w).Encode(body)
}

func writeErrorResponse(w http.ResponseWriter, statusCode int, message, code string) {
	writeJSON(w, statusCode, model.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", model.ErrCodeInvalidInput)
}
