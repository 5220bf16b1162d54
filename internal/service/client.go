package service

import (
	"context"

	"go.uber.org/zap"

	"banking-ledger/internal/ledger"
	"banking-ledger/internal/model"
)

// ClientService handles client registration and lookup
type ClientService struct {
	ledger *ledger.Ledger
	logger *zap.Logger
}

// NewClientService creates a new client service
func NewClientService(l *ledger.Ledger, logger *zap.Logger) *ClientService {
	return &ClientService{
		ledger: l,
		logger: logger,
	}
}

// RegisterClient registers a new client
func (s *ClientService) RegisterClient(ctx context.Context, req *model.RegisterClientRequest) (*model.ClientResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return nil, fromValidation(err)
	}
	birthDate, err := req.ParsedBirthDate()
	if err != nil {
		return nil, fromValidation(err)
	}

	client, err := s.ledger.RegisterClient(req.ID, req.Name, birthDate, req.Address)
	if err != nil {
		s.logger.Info("client registration rejected",
			zap.String("client_id", req.ID),
			zap.Error(err),
		)
		return nil, fromLedger(err)
	}

	s.logger.Info("client registered", zap.String("client_id", client.ID()))
	return toClientResponse(client), nil
}

// GetClient retrieves a client by id
func (s *ClientService) GetClient(ctx context.Context, id string) (*model.ClientResponse, error) {
	client, err := s.ledger.FindClient(id)
	if err != nil {
		return nil, fromLedger(err)
	}
	return toClientResponse(client), nil
}

func toClientResponse(c *ledger.Client) *model.ClientResponse {
	accounts := c.Accounts()
	numbers := make([]int, 0, len(accounts))
	for _, a := range accounts {
		numbers = append(numbers, a.Number())
	}

	resp := &model.ClientResponse{
		ID:             c.ID(),
		Name:           c.Name(),
		Address:        c.Address(),
		AccountNumbers: numbers,
	}
	if !c.BirthDate().IsZero() {
		resp.BirthDate = c.BirthDate().Format(model.DateLayout)
	}
	return resp
}
