// Package ledger owns account balances and the append-only transaction log.
// Every balance mutation writes exactly one transaction row in the same unit
// of work that updates the balance, which keeps the invariant that a balance
// always equals the sum of its recorded transaction amounts.
package ledger

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"MonkeyStarApi/internal/models"
	"MonkeyStarApi/internal/store"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount must be positive")
)

// Ledger serializes balance operations per account: a keyed mutex orders
// them in-process and the store's Atomic makes each one a single unit of
// work. Operations on different accounts never contend.
type Ledger struct {
	store store.AccountStore

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func New(st store.AccountStore) *Ledger {
	return &Ledger{store: st, locks: make(map[int64]*sync.Mutex)}
}

func (l *Ledger) accountLock(id int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	return m
}

// WithAccount runs fn under accountID's lock inside one storage unit of
// work. Composite operations (game rounds, withdrawal requests) use it to
// bundle a balance mutation with their own writes.
func (l *Ledger) WithAccount(ctx context.Context, accountID int64, fn func(tx store.AccountStore) error) error {
	m := l.accountLock(accountID)
	m.Lock()
	defer m.Unlock()

	return l.store.Atomic(ctx, fn)
}

// Apply records one signed balance mutation inside an already-open unit of
// work: balance update plus one transaction row. A mutation that would take
// the balance below zero is refused with ErrInsufficientFunds and writes
// nothing. Returns the new balance.
func Apply(ctx context.Context, tx store.AccountStore, accountID int64,
	amount decimal.Decimal, kind models.TransactionKind, description string) (decimal.Decimal, error) {

	account, err := tx.GetAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	next := account.Balance.Add(amount)
	if next.IsNegative() {
		return decimal.Zero, ErrInsufficientFunds
	}

	account.Balance = next
	if err := tx.UpsertAccount(ctx, account); err != nil {
		return decimal.Zero, err
	}

	err = tx.AppendTransaction(ctx, &models.Transaction{
		ID:          uuid.NewString(),
		AccountID:   accountID,
		Amount:      amount,
		Kind:        kind,
		Description: description,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		return decimal.Zero, err
	}

	return next, nil
}

// Credit increases the balance by amount (> 0) and appends one transaction.
func (l *Ledger) Credit(ctx context.Context, accountID int64, amount decimal.Decimal,
	kind models.TransactionKind, description string) (decimal.Decimal, error) {

	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}

	var balance decimal.Decimal
	err := l.WithAccount(ctx, accountID, func(tx store.AccountStore) error {
		var err error
		balance, err = Apply(ctx, tx, accountID, amount, kind, description)
		return err
	})
	return balance, err
}

// Debit decreases the balance by amount (> 0), refusing with
// ErrInsufficientFunds when the balance does not cover it; no transaction is
// written in that case.
func (l *Ledger) Debit(ctx context.Context, accountID int64, amount decimal.Decimal,
	kind models.TransactionKind, description string) (decimal.Decimal, error) {

	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}

	var balance decimal.Decimal
	err := l.WithAccount(ctx, accountID, func(tx store.AccountStore) error {
		var err error
		balance, err = Apply(ctx, tx, accountID, amount.Neg(), kind, description)
		return err
	})
	return balance, err
}

// Balance returns the current balance or store.ErrNotFound.
func (l *Ledger) Balance(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	account, err := l.store.GetAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}
