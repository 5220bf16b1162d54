package handler

import (
	"net/http"
	"strconv"

	"banking-ledger/internal/model"
	"banking-ledger/internal/service"
)

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// OpenAccount handles POST /v1/clients/{id}/accounts
func (h *AccountHandler) OpenAccount(w http.ResponseWriter, r *http.Request, clientID string) {
	var req model.OpenAccountRequest
	if !decodeBody(w, r, &req, true) {
		return
	}

	response, err := h.accountService.OpenAccount(r.Context(), clientID, &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

// ListAccounts handles GET /v1/accounts
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	response, err := h.accountService.ListAccounts(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// GetStatement handles GET /v1/clients/{id}/statement
func (h *AccountHandler) GetStatement(w http.ResponseWriter, r *http.Request, clientID string) {
	var accountNumber *int
	if raw := r.URL.Query().Get("account_number"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeErrorResponse(w, http.StatusBadRequest, "Invalid account_number parameter", model.ErrCodeInvalidInput)
			return
		}
		accountNumber = &n
	}

	response, err := h.accountService.GetStatement(r.Context(), clientID, accountNumber)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
