package ledger

import "errors"

// Ledger errors
var (
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrLimitExceeded           = errors.New("withdrawal amount limit exceeded")
	ErrWithdrawalCountExceeded = errors.New("withdrawal count limit exceeded")
	ErrClientNotFound          = errors.New("client not found")
	ErrNoAccount               = errors.New("client has no such account")
	ErrDuplicateClient         = errors.New("client already exists")
	ErrDuplicateAccount        = errors.New("account number already in use")
	ErrInvalidAccountNumber    = errors.New("account number must be positive")
)
