package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"banking-ledger/internal/ledger"
	"banking-ledger/internal/model"
)

type fakeSink struct {
	mu      sync.Mutex
	entries []*model.JournalEntry
	err     error
	ctxErr  error
}

func (s *fakeSink) Record(ctx context.Context, entry *model.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctxErr = ctx.Err()
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entry)
	return nil
}

type fixture struct {
	clients      *ClientService
	accounts     *AccountService
	transactions *TransactionService
	sink         *fakeSink
	logs         *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	now := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)
	cfg := ledger.DefaultConfig()
	cfg.Limits.Location = time.UTC
	cfg.Clock = func() time.Time { return now }
	l := ledger.New(cfg)

	sink := &fakeSink{}
	return &fixture{
		clients:      NewClientService(l, logger),
		accounts:     NewAccountService(l, logger),
		transactions: NewTransactionService(l, sink, time.Second, logger),
		sink:         sink,
		logs:         logs,
	}
}

func (f *fixture) clientWithAccount(t *testing.T, id string) {
	t.Helper()
	_, err := f.clients.RegisterClient(context.Background(), &model.RegisterClientRequest{ID: id, Name: "Client " + id})
	require.NoError(t, err)
	_, err = f.accounts.OpenAccount(context.Background(), id, &model.OpenAccountRequest{})
	require.NoError(t, err)
}

func amount(s string) *model.TransactionRequest {
	return &model.TransactionRequest{Amount: decimal.RequireFromString(s)}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var svcErr *ServiceError
	require.True(t, errors.As(err, &svcErr), "expected ServiceError, got %v", err)
	assert.Equal(t, code, svcErr.Code)
}

func TestClientService_RegisterClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.clients.RegisterClient(ctx, &model.RegisterClientRequest{
		ID:        " 123 ",
		Name:      "Ana Souza",
		BirthDate: "17-05-1990",
		Address:   "Rua A, 1",
	})
	require.NoError(t, err)
	assert.Equal(t, "123", resp.ID)
	assert.Equal(t, "1990-05-17", resp.BirthDate)
	assert.Empty(t, resp.AccountNumbers)

	_, err = f.clients.RegisterClient(ctx, &model.RegisterClientRequest{ID: "123", Name: "Other"})
	assertCode(t, err, model.ErrCodeDuplicateClient)

	_, err = f.clients.RegisterClient(ctx, &model.RegisterClientRequest{ID: "456"})
	assertCode(t, err, model.ErrCodeValidation)

	got, err := f.clients.GetClient(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", got.Name)

	_, err = f.clients.GetClient(ctx, "missing")
	assertCode(t, err, model.ErrCodeClientNotFound)
}

func TestAccountService_OpenAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.accounts.OpenAccount(ctx, "nobody", &model.OpenAccountRequest{})
	assertCode(t, err, model.ErrCodeClientNotFound)

	_, err = f.clients.RegisterClient(ctx, &model.RegisterClientRequest{ID: "1", Name: "Ana"})
	require.NoError(t, err)

	first, err := f.accounts.OpenAccount(ctx, "1", &model.OpenAccountRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.AccountNumber)
	assert.Equal(t, ledger.DefaultBranchCode, first.BranchCode)
	assert.Equal(t, "Ana", first.OwnerName)
	assert.True(t, first.Balance.IsZero())
	assert.True(t, decimal.NewFromInt(500).Equal(first.WithdrawalLimit))
	assert.Equal(t, 3, first.WithdrawalCountLimit)

	explicit, err := f.accounts.OpenAccount(ctx, "1", &model.OpenAccountRequest{AccountNumber: intPtr(10)})
	require.NoError(t, err)
	assert.Equal(t, 10, explicit.AccountNumber)

	_, err = f.accounts.OpenAccount(ctx, "1", &model.OpenAccountRequest{AccountNumber: intPtr(10)})
	assertCode(t, err, model.ErrCodeDuplicateAccount)

	_, err = f.accounts.OpenAccount(ctx, "1", &model.OpenAccountRequest{AccountNumber: intPtr(0)})
	assertCode(t, err, model.ErrCodeValidation)

	client, err := f.clients.GetClient(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 10}, client.AccountNumbers)

	list, err := f.accounts.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, list.Accounts, 2)
	assert.Equal(t, model.AccountSummary{AccountNumber: 1, BranchCode: ledger.DefaultBranchCode, OwnerName: "Ana"}, list.Accounts[0])
}

func TestAccountService_ListAccounts_Empty(t *testing.T) {
	f := newFixture(t)

	list, err := f.accounts.ListAccounts(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, list.Accounts)
	assert.Empty(t, list.Accounts)
}

func TestTransactionService_DepositAndWithdraw(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.clientWithAccount(t, "1")

	dep, err := f.transactions.Deposit(ctx, "1", amount("1000"))
	require.NoError(t, err)
	assert.Equal(t, 1, dep.AccountNumber)
	assert.Equal(t, "deposit", dep.Entry.Kind)
	assert.True(t, decimal.NewFromInt(1000).Equal(dep.Balance))

	wd, err := f.transactions.Withdraw(ctx, "1", amount("200"))
	require.NoError(t, err)
	assert.Equal(t, "withdrawal", wd.Entry.Kind)
	assert.True(t, decimal.NewFromInt(800).Equal(wd.Balance))

	stmt, err := f.accounts.GetStatement(ctx, "1", nil)
	require.NoError(t, err)
	require.Len(t, stmt.Entries, 2)
	assert.Equal(t, dep.Entry.ID, stmt.Entries[0].ID)
	assert.Equal(t, wd.Entry.ID, stmt.Entries[1].ID)
	assert.True(t, decimal.NewFromInt(800).Equal(stmt.Balance))

	require.Len(t, f.sink.entries, 2)
	assert.Equal(t, "1", f.sink.entries[0].ClientID)
	assert.Equal(t, ledger.DefaultBranchCode, f.sink.entries[0].BranchCode)
	assert.Equal(t, dep.Entry.ID, f.sink.entries[0].ID)
	assert.Equal(t, "withdrawal", f.sink.entries[1].Kind)
	assert.True(t, decimal.NewFromInt(800).Equal(f.sink.entries[1].BalanceAfter))
}

func TestTransactionService_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, f *fixture)
		clientID string
		withdraw bool
		req      *model.TransactionRequest
		wantCode string
	}{
		{
			name:     "unknown client",
			clientID: "ghost",
			req:      amount("10"),
			wantCode: model.ErrCodeClientNotFound,
		},
		{
			name: "client without accounts",
			setup: func(t *testing.T, f *fixture) {
				_, err := f.clients.RegisterClient(context.Background(), &model.RegisterClientRequest{ID: "1", Name: "Ana"})
				require.NoError(t, err)
			},
			clientID: "1",
			req:      amount("10"),
			wantCode: model.ErrCodeNoAccount,
		},
		{
			name:     "unknown account number",
			setup:    func(t *testing.T, f *fixture) { f.clientWithAccount(t, "1") },
			clientID: "1",
			req:      &model.TransactionRequest{Amount: decimal.NewFromInt(10), AccountNumber: intPtr(99)},
			wantCode: model.ErrCodeNoAccount,
		},
		{
			name:     "zero deposit",
			setup:    func(t *testing.T, f *fixture) { f.clientWithAccount(t, "1") },
			clientID: "1",
			req:      amount("0"),
			wantCode: model.ErrCodeInvalidAmount,
		},
		{
			name:     "negative withdrawal",
			setup:    func(t *testing.T, f *fixture) { f.clientWithAccount(t, "1") },
			clientID: "1",
			withdraw: true,
			req:      amount("-5"),
			wantCode: model.ErrCodeInvalidAmount,
		},
		{
			name:     "withdrawal above balance",
			setup:    func(t *testing.T, f *fixture) { f.clientWithAccount(t, "1") },
			clientID: "1",
			withdraw: true,
			req:      amount("50"),
			wantCode: model.ErrCodeInsufficientFunds,
		},
		{
			name:     "withdrawal above limit is checked before balance",
			setup:    func(t *testing.T, f *fixture) { f.clientWithAccount(t, "1") },
			clientID: "1",
			withdraw: true,
			req:      amount("600"),
			wantCode: model.ErrCodeLimitExceeded,
		},
		{
			name:     "too many decimal places",
			setup:    func(t *testing.T, f *fixture) { f.clientWithAccount(t, "1") },
			clientID: "1",
			req:      amount("1.005"),
			wantCode: model.ErrCodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(t, f)
			}

			var err error
			if tt.withdraw {
				_, err = f.transactions.Withdraw(context.Background(), tt.clientID, tt.req)
			} else {
				_, err = f.transactions.Deposit(context.Background(), tt.clientID, tt.req)
			}

			assertCode(t, err, tt.wantCode)
			assert.Empty(t, f.sink.entries)
		})
	}
}

func TestTransactionService_WithdrawalCountLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.clientWithAccount(t, "1")

	_, err := f.transactions.Deposit(ctx, "1", amount("1000"))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = f.transactions.Withdraw(ctx, "1", amount("10"))
		require.NoError(t, err)
	}

	_, err = f.transactions.Withdraw(ctx, "1", amount("10"))
	assertCode(t, err, model.ErrCodeWithdrawalCountExceeded)

	stmt, err := f.accounts.GetStatement(ctx, "1", intPtr(1))
	require.NoError(t, err)
	assert.Len(t, stmt.Entries, 4)
	assert.True(t, decimal.NewFromInt(970).Equal(stmt.Balance))

	rejected := f.logs.FilterMessage("transaction rejected").All()
	require.Len(t, rejected, 1)
	assert.Equal(t, zapcore.InfoLevel, rejected[0].Level)
	assert.Equal(t, int64(1), rejected[0].ContextMap()["account_number"])
}

func TestTransactionService_JournalFailureDoesNotFailTransaction(t *testing.T) {
	f := newFixture(t)
	f.sink.err = errors.New("connection refused")
	f.clientWithAccount(t, "1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := f.transactions.Deposit(ctx, "1", amount("25"))

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(25).Equal(resp.Balance))
	assert.NoError(t, f.sink.ctxErr, "export must not inherit request cancellation")

	failures := f.logs.FilterMessage("failed to export entry to journal").All()
	require.Len(t, failures, 1)
	assert.Equal(t, zapcore.ErrorLevel, failures[0].Level)
}

func TestTransactionService_NilSink(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	l := ledger.New(ledger.DefaultConfig())
	clients := NewClientService(l, zap.New(core))
	accounts := NewAccountService(l, zap.New(core))
	transactions := NewTransactionService(l, nil, 0, zap.New(core))

	_, err := clients.RegisterClient(context.Background(), &model.RegisterClientRequest{ID: "1", Name: "Ana"})
	require.NoError(t, err)
	_, err = accounts.OpenAccount(context.Background(), "1", &model.OpenAccountRequest{})
	require.NoError(t, err)

	resp, err := transactions.Deposit(context.Background(), "1", amount("5"))

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5).Equal(resp.Balance))
}

func TestAccountService_GetStatement_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.accounts.GetStatement(ctx, "ghost", nil)
	assertCode(t, err, model.ErrCodeClientNotFound)

	_, err = f.clients.RegisterClient(ctx, &model.RegisterClientRequest{ID: "1", Name: "Ana"})
	require.NoError(t, err)

	_, err = f.accounts.GetStatement(ctx, "1", nil)
	assertCode(t, err, model.ErrCodeNoAccount)
}

func TestFromLedger_PassesUnknownErrorsThrough(t *testing.T) {
	boom := errors.New("boom")

	assert.Same(t, boom, fromLedger(boom))
	assertCode(t, fromLedger(ledger.ErrInsufficientFunds), model.ErrCodeInsufficientFunds)
}

func intPtr(n int) *int {
	return &n
}
