package handler

import (
	"context"
	"net/http"

	"banking-ledger/internal/model"
	"banking-ledger/internal/service"
)

// TransactionHandler handles deposit and withdrawal HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// Deposit handles POST /v1/clients/{id}/deposits
func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request, clientID string) {
	h.post(w, r, clientID, h.transactionService.Deposit)
}

// Withdraw handles POST /v1/clients/{id}/withdrawals
func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request, clientID string) {
	h.post(w, r, clientID, h.transactionService.Withdraw)
}

type postFunc func(ctx context.Context, clientID string, req *model.TransactionRequest) (*model.TransactionResponse, error)

func (h *TransactionHandler) post(w http.ResponseWriter, r *http.Request, clientID string, fn postFunc) {
	var req model.TransactionRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	response, err := fn(r.Context(), clientID, &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}
