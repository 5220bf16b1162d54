package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultBranchCode is the branch every account is opened in unless configured otherwise
const DefaultBranchCode = "0001"

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// Window is the period over which withdrawals are counted against the count limit
type Window uint8

const (
	// WindowDaily counts withdrawals made since local midnight
	WindowDaily Window = iota
	// WindowAllTime counts every withdrawal in the account history
	WindowAllTime
)

func (w Window) String() string {
	switch w {
	case WindowDaily:
		return "daily"
	case WindowAllTime:
		return "all-time"
	default:
		return "unknown"
	}
}

// ParseWindow parses the names returned by Window.String
func ParseWindow(s string) (Window, error) {
	switch s {
	case "daily", "":
		return WindowDaily, nil
	case "all-time":
		return WindowAllTime, nil
	}
	return 0, fmt.Errorf("unknown withdrawal window %q", s)
}

// Limits is the withdrawal policy of a current account
type Limits struct {
	WithdrawalAmount decimal.Decimal
	WithdrawalCount  int
	Window           Window
	Location         *time.Location
}

// DefaultLimits returns the standard current account policy: 500 per withdrawal, 3 withdrawals a day
func DefaultLimits() Limits {
	return Limits{
		WithdrawalAmount: decimal.NewFromInt(500),
		WithdrawalCount:  3,
		Window:           WindowDaily,
		Location:         time.Local,
	}
}

// windowStart returns the earliest timestamp that still counts against the limit.
// The zero time means no lower bound.
func (l *Limits) windowStart(now time.Time) time.Time {
	if l.Window == WindowAllTime {
		return time.Time{}
	}
	loc := l.Location
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	y, m, d := local.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Account holds a balance and the history of transactions applied to it.
// An account with limits is a current account.
type Account struct {
	mu      sync.Mutex
	number  int
	branch  string
	owner   *Client
	balance decimal.Decimal
	history *History
	limits  *Limits
	now     Clock
}

// NewAccount creates a basic account with no withdrawal policy
func NewAccount(number int, branch string, owner *Client) *Account {
	return newAccount(number, branch, owner, nil, time.Now)
}

// NewCurrentAccount creates an account governed by the given withdrawal limits
func NewCurrentAccount(number int, branch string, owner *Client, limits Limits) *Account {
	return newAccount(number, branch, owner, &limits, time.Now)
}

func newAccount(number int, branch string, owner *Client, limits *Limits, now Clock) *Account {
	if now == nil {
		now = time.Now
	}
	return &Account{
		number:  number,
		branch:  branch,
		owner:   owner,
		balance: decimal.Zero,
		history: newHistory(),
		limits:  limits,
		now:     now,
	}
}

func (a *Account) Number() int    { return a.number }
func (a *Account) Branch() string { return a.branch }
func (a *Account) Owner() *Client { return a.owner }

// IsCurrent reports whether the account carries a withdrawal policy
func (a *Account) IsCurrent() bool {
	return a.limits != nil
}

// Limits returns the account's withdrawal policy, if any
func (a *Account) Limits() (Limits, bool) {
	if a.limits == nil {
		return Limits{}, false
	}
	return *a.limits, true
}

// Balance returns the current balance
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Entries returns a copy of the account history
func (a *Account) Entries() []Entry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.history.Entries()
}

// Statement returns the history and the balance as of the same instant
func (a *Account) Statement() ([]Entry, decimal.Decimal) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.history.Entries(), a.balance
}

// deposit requires a.mu
func (a *Account) deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	a.balance = a.balance.Add(amount)
	return nil
}

// withdraw requires a.mu
func (a *Account) withdraw(amount decimal.Decimal) error {
	if a.limits != nil {
		if amount.GreaterThan(a.limits.WithdrawalAmount) {
			return ErrLimitExceeded
		}
		since := a.limits.windowStart(a.now())
		if a.history.Count(KindWithdrawal, since) >= a.limits.WithdrawalCount {
			return ErrWithdrawalCountExceeded
		}
	}

	if amount.GreaterThan(a.balance) {
		return ErrInsufficientFunds
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	a.balance = a.balance.Sub(amount)
	return nil
}

// apply runs op and records tx in the history as a single critical section
func (a *Account) apply(tx Transaction, op func(decimal.Decimal) error) (Entry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := op(tx.Amount()); err != nil {
		return Entry{}, err
	}
	return a.history.append(tx.Kind(), tx.Amount(), a.balance, a.now()), nil
}

// String renders the account the way listings show it
func (a *Account) String() string {
	owner := ""
	if a.owner != nil {
		owner = a.owner.Name()
	}
	return fmt.Sprintf("branch %s account %d holder %s", a.branch, a.number, owner)
}
