package handler

import (
	"net/http"

	"banking-ledger/internal/model"
	"banking-ledger/internal/service"
)

// ClientHandler handles client-related HTTP requests
type ClientHandler struct {
	clientService *service.ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
	}
}

// RegisterClient handles POST /v1/clients
func (h *ClientHandler) RegisterClient(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterClientRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	response, err := h.clientService.RegisterClient(r.Context(), &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

// GetClient handles GET /v1/clients/{id}
func (h *ClientHandler) GetClient(w http.ResponseWriter, r *http.Request, clientID string) {
	response, err := h.clientService.GetClient(r.Context(), clientID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
