package model

import (
	"github.com/shopspring/decimal"
)

// OpenAccountRequest represents the request to open an account.
// Without an account number the next sequential number is assigned.
type OpenAccountRequest struct {
	AccountNumber *int `json:"account_number,omitempty"`
}

// AccountResponse represents an account with its current balance and policy
type AccountResponse struct {
	AccountNumber        int             `json:"account_number"`
	BranchCode           string          `json:"branch_code"`
	OwnerID              string          `json:"owner_id"`
	OwnerName            string          `json:"owner_name"`
	Balance              decimal.Decimal `json:"balance"`
	WithdrawalLimit      decimal.Decimal `json:"withdrawal_limit"`
	WithdrawalCountLimit int             `json:"withdrawal_count_limit"`
}

// AccountSummary is one row of the account listing
type AccountSummary struct {
	AccountNumber int    `json:"account_number"`
	BranchCode    string `json:"branch_code"`
	OwnerName     string `json:"owner_name"`
}

// ListAccountsResponse represents the response for listing every account
type ListAccountsResponse struct {
	Accounts []AccountSummary `json:"accounts"`
}

// Validate validates the open account request
func (r *OpenAccountRequest) Validate() error {
	if r.AccountNumber != nil && *r.AccountNumber < 1 {
		return &ValidationError{
			Field:   "account_number",
			Message: "account number must be positive",
		}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}
