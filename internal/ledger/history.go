package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry is one recorded transaction in an account history
type Entry struct {
	ID           uuid.UUID       `json:"id"`
	Kind         Kind            `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Timestamp    time.Time       `json:"timestamp"`
}

// History is the append-only log of an account's successful transactions.
// It is not safe for concurrent use; the owning Account serializes access.
type History struct {
	entries []Entry
}

func newHistory() *History {
	return &History{entries: make([]Entry, 0, 8)}
}

func (h *History) append(kind Kind, amount, balanceAfter decimal.Decimal, at time.Time) Entry {
	e := Entry{
		ID:           uuid.New(),
		Kind:         kind,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		Timestamp:    at,
	}
	h.entries = append(h.entries, e)
	return e
}

// Entries returns a copy of the recorded entries in insertion order
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of recorded entries
func (h *History) Len() int {
	return len(h.entries)
}

// Count returns how many entries of the given kind were recorded at or after since.
// A zero since counts the whole history.
func (h *History) Count(kind Kind, since time.Time) int {
	n := 0
	for i := len(h.entries) - 1; i >= 0; i-- {
		e := h.entries[i]
		if !since.IsZero() && e.Timestamp.Before(since) {
			break
		}
		if e.Kind == kind {
			n++
		}
	}
	return n
}
