package service

import (
	"context"

	"go.uber.org/zap"

	"banking-ledger/internal/ledger"
	"banking-ledger/internal/model"
)

// AccountService handles account opening, listing and statements
type AccountService struct {
	ledger *ledger.Ledger
	logger *zap.Logger
}

// NewAccountService creates a new account service
func NewAccountService(l *ledger.Ledger, logger *zap.Logger) *AccountService {
	return &AccountService{
		ledger: l,
		logger: logger,
	}
}

// OpenAccount opens a current account for an existing client
func (s *AccountService) OpenAccount(ctx context.Context, clientID string, req *model.OpenAccountRequest) (*model.AccountResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return nil, fromValidation(err)
	}

	var (
		account *ledger.Account
		err     error
	)
	if req.AccountNumber != nil {
		account, err = s.ledger.OpenAccount(clientID, *req.AccountNumber)
	} else {
		account, err = s.ledger.OpenNextAccount(clientID)
	}
	if err != nil {
		s.logger.Info("account opening rejected",
			zap.String("client_id", clientID),
			zap.Error(err),
		)
		return nil, fromLedger(err)
	}

	s.logger.Info("account opened",
		zap.String("client_id", clientID),
		zap.Int("account_number", account.Number()),
		zap.String("branch_code", account.Branch()),
	)
	return toAccountResponse(account), nil
}

// ListAccounts lists every account in opening order
func (s *AccountService) ListAccounts(ctx context.Context) (*model.ListAccountsResponse, error) {
	accounts := s.ledger.Accounts()

	resp := &model.ListAccountsResponse{
		Accounts: make([]model.AccountSummary, 0, len(accounts)),
	}
	for _, a := range accounts {
		resp.Accounts = append(resp.Accounts, model.AccountSummary{
			AccountNumber: a.Number(),
			BranchCode:    a.Branch(),
			OwnerName:     a.Owner().Name(),
		})
	}
	return resp, nil
}

// GetStatement returns the history and balance of one of the client's accounts.
// A nil account number selects the client's primary account.
func (s *AccountService) GetStatement(ctx context.Context, clientID string, accountNumber *int) (*model.StatementResponse, error) {
	client, err := s.ledger.FindClient(clientID)
	if err != nil {
		return nil, fromLedger(err)
	}

	number := 0
	if accountNumber != nil {
		number = *accountNumber
	}
	account, err := client.SelectAccount(number)
	if err != nil {
		return nil, fromLedger(err)
	}

	entries, balance := account.Statement()
	resp := &model.StatementResponse{
		ClientID:      client.ID(),
		AccountNumber: account.Number(),
		BranchCode:    account.Branch(),
		Entries:       make([]model.EntryResponse, 0, len(entries)),
		Balance:       balance,
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, toEntryResponse(e))
	}
	return resp, nil
}

func toAccountResponse(a *ledger.Account) *model.AccountResponse {
	resp := &model.AccountResponse{
		AccountNumber: a.Number(),
		BranchCode:    a.Branch(),
		OwnerID:       a.Owner().ID(),
		OwnerName:     a.Owner().Name(),
		Balance:       a.Balance(),
	}
	if limits, ok := a.Limits(); ok {
		resp.WithdrawalLimit = limits.WithdrawalAmount
		resp.WithdrawalCountLimit = limits.WithdrawalCount
	}
	return resp
}

func toEntryResponse(e ledger.Entry) model.EntryResponse {
	return model.EntryResponse{
		ID:           e.ID,
		Kind:         e.Kind.String(),
		Amount:       e.Amount,
		BalanceAfter: e.BalanceAfter,
		Timestamp:    e.Timestamp,
	}
}
