package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind identifies the type of a transaction
type Kind uint8

const (
	KindDeposit Kind = iota + 1
	KindWithdrawal
)

// String returns the lowercase name used in statements and JSON
func (k Kind) String() string {
	switch k {
	case KindDeposit:
		return "deposit"
	case KindWithdrawal:
		return "withdrawal"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	if k != KindDeposit && k != KindWithdrawal {
		return nil, fmt.Errorf("unknown transaction kind %d", k)
	}
	return []byte(k.String()), nil
}

// ParseKind is the inverse of Kind.String
func ParseKind(s string) (Kind, error) {
	switch s {
	case "deposit":
		return KindDeposit, nil
	case "withdrawal":
		return KindWithdrawal, nil
	}
	return 0, fmt.Errorf("unknown transaction kind %q", s)
}

// Transaction is a monetary movement that knows how to apply itself to an account.
// The amount is not validated until Register is called.
type Transaction interface {
	Kind() Kind
	Amount() decimal.Decimal
	Register(a *Account) (Entry, error)
}

// Deposit credits an account
type Deposit struct {
	amount decimal.Decimal
}

// NewDeposit creates a deposit of the given amount
func NewDeposit(amount decimal.Decimal) Deposit {
	return Deposit{amount: amount}
}

func (d Deposit) Kind() Kind              { return KindDeposit }
func (d Deposit) Amount() decimal.Decimal { return d.amount }

// Register deposits the amount and records it in the account history.
// Nothing is recorded when the deposit is rejected.
func (d Deposit) Register(a *Account) (Entry, error) {
	return a.apply(d, a.deposit)
}

// Withdrawal debits an account, subject to the account's withdrawal policy
type Withdrawal struct {
	amount decimal.Decimal
}

// NewWithdrawal creates a withdrawal of the given amount
func NewWithdrawal(amount decimal.Decimal) Withdrawal {
	return Withdrawal{amount: amount}
}

func (w Withdrawal) Kind() Kind              { return KindWithdrawal }
func (w Withdrawal) Amount() decimal.Decimal { return w.amount }

// Register withdraws the amount and records it in the account history.
// Nothing is recorded when the withdrawal is rejected.
func (w Withdrawal) Register(a *Account) (Entry, error) {
	return a.apply(w, a.withdraw)
}

var (
	_ Transaction = Deposit{}
	_ Transaction = Withdrawal{}
)
