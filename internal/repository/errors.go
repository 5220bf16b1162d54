package repository

import "errors"

// Repository errors
var (
	ErrJournalSchemaMissing = errors.New("journal table does not exist")
	ErrJournalUnavailable   = errors.New("journal database unavailable")
)
