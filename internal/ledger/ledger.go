// Package ledger holds the in-memory banking core: clients, their accounts,
// deposit and withdrawal transactions, and the per-account history.
package ledger

import (
	"sync"
	"time"
)

// Config fixes the policy applied to every account the ledger opens
type Config struct {
	BranchCode string
	Limits     Limits
	Clock      Clock
}

// DefaultConfig returns branch 0001 with the default current account limits
func DefaultConfig() Config {
	return Config{
		BranchCode: DefaultBranchCode,
		Limits:     DefaultLimits(),
		Clock:      time.Now,
	}
}

// Ledger is the registry of all clients and accounts
type Ledger struct {
	mu       sync.RWMutex
	cfg      Config
	clients  map[string]*Client
	order    []*Client
	accounts []*Account
	byNumber map[int]*Account
	next     int // lowest candidate for the next sequential number
}

// New creates an empty ledger
func New(cfg Config) *Ledger {
	if cfg.BranchCode == "" {
		cfg.BranchCode = DefaultBranchCode
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Ledger{
		cfg:      cfg,
		clients:  make(map[string]*Client),
		byNumber: make(map[int]*Account),
		next:     1,
	}
}

// BranchCode returns the branch accounts are opened in
func (l *Ledger) BranchCode() string {
	return l.cfg.BranchCode
}

// RegisterClient adds a new client. An existing client with the same id is left untouched.
func (l *Ledger) RegisterClient(id, name string, birthDate time.Time, address string) (*Client, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.clients[id]; ok {
		return nil, ErrDuplicateClient
	}
	c := NewClient(id, name, birthDate, address)
	l.clients[id] = c
	l.order = append(l.order, c)
	return c, nil
}

// FindClient looks up a client by identifier
func (l *Ledger) FindClient(id string) (*Client, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	c, ok := l.clients[id]
	if !ok {
		return nil, ErrClientNotFound
	}
	return c, nil
}

// Clients returns all clients in registration order
func (l *Ledger) Clients() []*Client {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*Client, len(l.order))
	copy(out, l.order)
	return out
}

// NextAccountNumber returns the number the next opened account would receive
func (l *Ledger) NextAccountNumber() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.nextFree()
}

// nextFree skips numbers already taken by explicitly numbered accounts. Requires l.mu.
func (l *Ledger) nextFree() int {
	n := l.next
	for l.byNumber[n] != nil {
		n++
	}
	return n
}

// OpenAccount opens a current account with the given number for an existing client
func (l *Ledger) OpenAccount(clientID string, number int) (*Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.openAccount(clientID, number)
}

// OpenNextAccount opens a current account with the lowest free sequential number
func (l *Ledger) OpenNextAccount(clientID string) (*Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, err := l.openAccount(clientID, l.nextFree())
	if err != nil {
		return nil, err
	}
	l.next = a.Number() + 1
	return a, nil
}

// openAccount requires l.mu
func (l *Ledger) openAccount(clientID string, number int) (*Account, error) {
	c, ok := l.clients[clientID]
	if !ok {
		return nil, ErrClientNotFound
	}
	if number < 1 {
		return nil, ErrInvalidAccountNumber
	}
	if _, taken := l.byNumber[number]; taken {
		return nil, ErrDuplicateAccount
	}

	limits := l.cfg.Limits
	a := newAccount(number, l.cfg.BranchCode, c, &limits, l.cfg.Clock)
	l.accounts = append(l.accounts, a)
	l.byNumber[number] = a
	c.addAccount(a)
	return a, nil
}

// Accounts returns every account in opening order
func (l *Ledger) Accounts() []*Account {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*Account, len(l.accounts))
	copy(out, l.accounts)
	return out
}

// SelectPrimaryAccount returns the client's first opened account
func (l *Ledger) SelectPrimaryAccount(c *Client) (*Account, error) {
	return c.PrimaryAccount()
}

// ExecuteTransaction registers tx against the client's account
func (l *Ledger) ExecuteTransaction(c *Client, a *Account, tx Transaction) (Entry, error) {
	return c.Execute(a, tx)
}

// Post finds the client, selects the account (0 for the primary one) and registers tx against it.
// The selected account is returned even when the transaction is rejected.
func (l *Ledger) Post(clientID string, accountNumber int, tx Transaction) (*Account, Entry, error) {
	c, err := l.FindClient(clientID)
	if err != nil {
		return nil, Entry{}, err
	}
	a, err := c.SelectAccount(accountNumber)
	if err != nil {
		return nil, Entry{}, err
	}
	entry, err := l.ExecuteTransaction(c, a, tx)
	return a, entry, err
}
