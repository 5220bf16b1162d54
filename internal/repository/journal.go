package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"banking-ledger/internal/model"
)

// Postgres error classes and codes the journal reacts to
const (
	pqCodeUndefinedTable    = "42P01"
	pqClassConnection       = "08"
	pqClassInsufficientRsrc = "53"
)

// JournalRepository exports recorded ledger entries to Postgres.
// Rows are only ever inserted; the ledger never reads them back.
type JournalRepository struct {
	db *sql.DB
}

// NewJournalRepository creates a new journal repository
func NewJournalRepository(db *sql.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// EnsureSchema creates the journal table if it does not exist yet
func (r *JournalRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS ledger_entries (
			id             UUID PRIMARY KEY,
			client_id      TEXT NOT NULL,
			account_number INTEGER NOT NULL,
			branch_code    TEXT NOT NULL,
			kind           TEXT NOT NULL,
			amount         NUMERIC(20, 2) NOT NULL,
			balance_after  NUMERIC(20, 2) NOT NULL,
			recorded_at    TIMESTAMPTZ NOT NULL
		)
	`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create journal table: %w", classify(err))
	}

	return nil
}

// Record inserts an entry. Replaying an entry that was already exported is a no-op.
func (r *JournalRepository) Record(ctx context.Context, entry *model.JournalEntry) error {
	query := `
		INSERT INTO ledger_entries (id, client_id, account_number, branch_code, kind, amount, balance_after, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.ClientID,
		entry.AccountNumber,
		entry.BranchCode,
		entry.Kind,
		entry.Amount,
		entry.BalanceAfter,
		entry.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record journal entry: %w", classify(err))
	}

	return nil
}

// Ping checks the journal database is reachable
func (r *JournalRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping journal: %w", classify(err))
	}
	return nil
}

// Stats returns the connection pool statistics
func (r *JournalRepository) Stats() sql.DBStats {
	return r.db.Stats()
}

// classify maps Postgres errors onto repository errors, leaving others untouched
func classify(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch {
	case pqErr.Code == pqCodeUndefinedTable:
		return fmt.Errorf("%w: %s", ErrJournalSchemaMissing, pqErr.Message)
	case pqErr.Code.Class() == pqClassConnection, pqErr.Code.Class() == pqClassInsufficientRsrc:
		return fmt.Errorf("%w: %s", ErrJournalUnavailable, pqErr.Message)
	}
	return err
}
