package service

import (
	"errors"

	"banking-ledger/internal/ledger"
	"banking-ledger/internal/model"
)

// ServiceError represents a service-level error
type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// ledgerErrors maps every ledger rejection to the code and message callers see
var ledgerErrors = []struct {
	err     error
	code    string
	message string
}{
	{ledger.ErrInvalidAmount, model.ErrCodeInvalidAmount, "Amount must be greater than zero"},
	{ledger.ErrInsufficientFunds, model.ErrCodeInsufficientFunds, "Insufficient funds"},
	{ledger.ErrLimitExceeded, model.ErrCodeLimitExceeded, "Withdrawal amount exceeds the account limit"},
	{ledger.ErrWithdrawalCountExceeded, model.ErrCodeWithdrawalCountExceeded, "Withdrawal count limit reached"},
	{ledger.ErrClientNotFound, model.ErrCodeClientNotFound, "Client not found"},
	{ledger.ErrNoAccount, model.ErrCodeNoAccount, "Client has no such account"},
	{ledger.ErrDuplicateClient, model.ErrCodeDuplicateClient, "A client with this id already exists"},
	{ledger.ErrDuplicateAccount, model.ErrCodeDuplicateAccount, "Account number already in use"},
	{ledger.ErrInvalidAccountNumber, model.ErrCodeValidation, "Account number must be positive"},
}

// fromLedger converts a ledger error into a ServiceError, passing unknown errors through
func fromLedger(err error) error {
	for _, m := range ledgerErrors {
		if errors.Is(err, m.err) {
			return &ServiceError{Code: m.code, Message: m.message}
		}
	}
	return err
}

// fromValidation converts a model validation error into a ServiceError
func fromValidation(err error) error {
	if validationErr, ok := err.(*model.ValidationError); ok {
		return &ServiceError{
			Code:    model.ErrCodeValidation,
			Message: validationErr.Message,
		}
	}
	return err
}
