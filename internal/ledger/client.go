package ledger

import (
	"sync"
	"time"
)

// Client is an account holder identified by a tax/identity number
type Client struct {
	id        string
	name      string
	birthDate time.Time
	address   string

	mu       sync.RWMutex
	accounts []*Account
}

// NewClient creates a client with no accounts
func NewClient(id, name string, birthDate time.Time, address string) *Client {
	return &Client{
		id:        id,
		name:      name,
		birthDate: birthDate,
		address:   address,
	}
}

func (c *Client) ID() string           { return c.id }
func (c *Client) Name() string         { return c.name }
func (c *Client) BirthDate() time.Time { return c.birthDate }
func (c *Client) Address() string      { return c.address }

// Accounts returns the client's accounts in the order they were opened
func (c *Client) Accounts() []*Account {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

func (c *Client) addAccount(a *Account) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accounts = append(c.accounts, a)
}

// PrimaryAccount returns the first account the client opened
func (c *Client) PrimaryAccount() (*Account, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.accounts) == 0 {
		return nil, ErrNoAccount
	}
	return c.accounts[0], nil
}

// Account returns the client's account with the given number
func (c *Client) Account(number int) (*Account, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, a := range c.accounts {
		if a.number == number {
			return a, nil
		}
	}
	return nil, ErrNoAccount
}

// SelectAccount returns the numbered account, or the primary account when number is 0.
// Account numbers start at 1 so 0 never names a real account.
func (c *Client) SelectAccount(number int) (*Account, error) {
	if number == 0 {
		return c.PrimaryAccount()
	}
	return c.Account(number)
}

// Execute registers tx against one of the client's own accounts
func (c *Client) Execute(a *Account, tx Transaction) (Entry, error) {
	if a == nil || a.owner != c {
		return Entry{}, ErrNoAccount
	}
	return tx.Register(a)
}
