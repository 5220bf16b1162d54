package model

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionRequest represents a deposit or withdrawal request.
// Without an account number the client's primary account is used.
type TransactionRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	AccountNumber *int            `json:"account_number,omitempty"`
}

// UnmarshalJSON implements custom JSON unmarshaling for TransactionRequest.
// The amount may be sent as a JSON string or number and is required.
func (r *TransactionRequest) UnmarshalJSON(data []byte) error {
	var temp struct {
		Amount        json.RawMessage `json:"amount"`
		AccountNumber *int            `json:"account_number,omitempty"`
	}

	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}

	if len(temp.Amount) == 0 || string(temp.Amount) == "null" {
		return errors.New("amount is required")
	}

	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(temp.Amount); err != nil {
		return err
	}
	r.Amount = amount
	r.AccountNumber = temp.AccountNumber

	return nil
}

// Validate validates the transaction request.
// The sign of the amount is left to the ledger so it reports INVALID_AMOUNT itself.
func (r *TransactionRequest) Validate() error {
	if !r.Amount.Equal(r.Amount.Truncate(2)) {
		return &ValidationError{
			Field:   "amount",
			Message: "amount cannot have more than 2 decimal places",
		}
	}

	if r.AccountNumber != nil && *r.AccountNumber < 1 {
		return &ValidationError{
			Field:   "account_number",
			Message: "account number must be positive",
		}
	}

	return nil
}

// EntryResponse represents one history entry
type EntryResponse struct {
	ID           uuid.UUID       `json:"id"`
	Kind         string          `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Timestamp    time.Time       `json:"timestamp"`
}

// TransactionResponse represents the outcome of a successful deposit or withdrawal
type TransactionResponse struct {
	ClientID      string          `json:"client_id"`
	AccountNumber int             `json:"account_number"`
	Entry         EntryResponse   `json:"entry"`
	Balance       decimal.Decimal `json:"balance"`
}

// StatementResponse represents an account history with the balance at the same instant
type StatementResponse struct {
	ClientID      string          `json:"client_id"`
	AccountNumber int             `json:"account_number"`
	BranchCode    string          `json:"branch_code"`
	Entries       []EntryResponse `json:"entries"`
	Balance       decimal.Decimal `json:"balance"`
}

// JournalEntry is a recorded ledger entry as exported to the journal
type JournalEntry struct {
	ID            uuid.UUID       `db:"id"`
	ClientID      string          `db:"client_id"`
	AccountNumber int             `db:"account_number"`
	BranchCode    string          `db:"branch_code"`
	Kind          string          `db:"kind"`
	Amount        decimal.Decimal `db:"amount"`
	BalanceAfter  decimal.Decimal `db:"balance_after"`
	RecordedAt    time.Time       `db:"recorded_at"`
}
