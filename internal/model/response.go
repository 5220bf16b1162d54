package model

import "time"

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string        `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Version   string        `json:"version"`
	Ledger    LedgerHealth  `json:"ledger"`
	Journal   JournalHealth `json:"journal"`
}

// LedgerHealth summarizes the in-memory registry
type LedgerHealth struct {
	Clients  int `json:"clients"`
	Accounts int `json:"accounts"`
}

// JournalHealth represents connectivity to the optional entry journal
type JournalHealth struct {
	Status         string `json:"status"` // healthy, unhealthy or disabled
	ConnectionPool string `json:"connection_pool,omitempty"`
}

// Common error codes
const (
	ErrCodeValidation              = "VALIDATION_ERROR"
	ErrCodeInvalidInput            = "INVALID_INPUT"
	ErrCodeNotFound                = "NOT_FOUND"
	ErrCodeInternalError           = "INTERNAL_ERROR"
	ErrCodeInvalidAmount           = "INVALID_AMOUNT"
	ErrCodeInsufficientFunds       = "INSUFFICIENT_FUNDS"
	ErrCodeLimitExceeded           = "LIMIT_EXCEEDED"
	ErrCodeWithdrawalCountExceeded = "WITHDRAWAL_COUNT_EXCEEDED"
	ErrCodeClientNotFound          = "CLIENT_NOT_FOUND"
	ErrCodeNoAccount               = "NO_ACCOUNT"
	ErrCodeDuplicateClient         = "DUPLICATE_CLIENT"
	ErrCodeDuplicateAccount        = "DUPLICATE_ACCOUNT"
)
