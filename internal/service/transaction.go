package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"banking-ledger/internal/ledger"
	"banking-ledger/internal/model"
)

// EntrySink receives every entry the ledger records
type EntrySink interface {
	Record(ctx context.Context, entry *model.JournalEntry) error
}

// TransactionService handles deposits and withdrawals
type TransactionService struct {
	ledger         *ledger.Ledger
	sink           EntrySink
	journalTimeout time.Duration
	logger         *zap.Logger
}

// NewTransactionService creates a new transaction service. sink may be nil.
func NewTransactionService(l *ledger.Ledger, sink EntrySink, journalTimeout time.Duration, logger *zap.Logger) *TransactionService {
	if journalTimeout <= 0 {
		journalTimeout = 5 * time.Second
	}
	return &TransactionService{
		ledger:         l,
		sink:           sink,
		journalTimeout: journalTimeout,
		logger:         logger,
	}
}

// Deposit credits one of the client's accounts
func (s *TransactionService) Deposit(ctx context.Context, clientID string, req *model.TransactionRequest) (*model.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fromValidation(err)
	}
	return s.post(ctx, clientID, req.AccountNumber, ledger.NewDeposit(req.Amount))
}

// Withdraw debits one of the client's accounts, subject to its withdrawal limits
func (s *TransactionService) Withdraw(ctx context.Context, clientID string, req *model.TransactionRequest) (*model.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fromValidation(err)
	}
	return s.post(ctx, clientID, req.AccountNumber, ledger.NewWithdrawal(req.Amount))
}

func (s *TransactionService) post(ctx context.Context, clientID string, accountNumber *int, tx ledger.Transaction) (*model.TransactionResponse, error) {
	number := 0
	if accountNumber != nil {
		number = *accountNumber
	}

	fields := []zap.Field{
		zap.String("client_id", clientID),
		zap.String("kind", tx.Kind().String()),
		zap.String("amount", tx.Amount().String()),
	}

	account, entry, err := s.ledger.Post(clientID, number, tx)
	if account != nil {
		fields = append(fields, zap.Int("account_number", account.Number()))
	}
	if err != nil {
		s.logger.Info("transaction rejected", append(fields, zap.Error(err))...)
		return nil, fromLedger(err)
	}

	s.logger.Info("transaction recorded", append(fields,
		zap.String("entry_id", entry.ID.String()),
		zap.String("balance_after", entry.BalanceAfter.String()),
	)...)

	s.export(ctx, account, entry)

	return &model.TransactionResponse{
		ClientID:      clientID,
		AccountNumber: account.Number(),
		Entry:         toEntryResponse(entry),
		Balance:       entry.BalanceAfter,
	}, nil
}

// export hands the entry to the journal. The ledger has already committed,
// so a failure is logged and never returned to the caller.
func (s *TransactionService) export(ctx context.Context, account *ledger.Account, entry ledger.Entry) {
	if s.sink == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.journalTimeout)
	defer cancel()

	err := s.sink.Record(ctx, &model.JournalEntry{
		ID:            entry.ID,
		ClientID:      account.Owner().ID(),
		AccountNumber: account.Number(),
		BranchCode:    account.Branch(),
		Kind:          entry.Kind.String(),
		Amount:        entry.Amount,
		BalanceAfter:  entry.BalanceAfter,
		RecordedAt:    entry.Timestamp,
	})
	if err != nil {
		s.logger.Error("failed to export entry to journal",
			zap.String("entry_id", entry.ID.String()),
			zap.Int("account_number", account.Number()),
			zap.Error(err),
		)
	}
}
