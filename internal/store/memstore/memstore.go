// Package memstore is an in-memory store.AccountStore used by tests.
package memstore

import (
	"context"
	"sync"
	"time"

	"MonkeyStarApi/internal/models"
	"MonkeyStarApi/internal/store"
)

// Store keeps every record type in plain maps and slices under one mutex.
// Atomic snapshots the data before running fn and restores it on error, so
// partial writes are never observable, matching the postgres behavior.
type Store struct {
	mu sync.Mutex
	d  *data

	// Error injection for failure-path tests.
	AppendTransactionErr error
	CreateWithdrawalErr  error
}

type data struct {
	accounts    map[int64]models.Account
	txns        []models.Transaction
	edges       []models.ReferralEdge
	sponsors    []models.Sponsor
	subs        []models.SponsorSubscription
	withdrawals []models.Withdrawal
	sponsorSeq  int64
	edgeSeq     int64
	subSeq      int64
}

func New() *Store {
	return &Store{d: &data{accounts: make(map[int64]models.Account)}}
}

func (d *data) clone() *data {
	cp := &data{
		accounts:    make(map[int64]models.Account, len(d.accounts)),
		txns:        append([]models.Transaction(nil), d.txns...),
		edges:       append([]models.ReferralEdge(nil), d.edges...),
		sponsors:    append([]models.Sponsor(nil), d.sponsors...),
		subs:        append([]models.SponsorSubscription(nil), d.subs...),
		withdrawals: append([]models.Withdrawal(nil), d.withdrawals...),
		sponsorSeq:  d.sponsorSeq,
		edgeSeq:     d.edgeSeq,
		subSeq:      d.subSeq,
	}
	for id, acc := range d.accounts {
		cp.accounts[id] = acc
	}
	return cp
}

// tx is the unlocked view handed to Atomic callbacks. Store's own methods
// lock and delegate to it.
type tx struct {
	s *Store
}

func (t *tx) GetAccount(_ context.Context, id int64) (*models.Account, error) {
	acc, ok := t.s.d.accounts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := acc
	return &cp, nil
}

func (t *tx) UpsertAccount(_ context.Context, account *models.Account) error {
	t.s.d.accounts[account.ID] = *account
	return nil
}

func (t *tx) ListAccountsByReferrer(_ context.Context, referrerID int64) ([]models.Account, error) {
	var out []models.Account
	for _, acc := range t.s.d.accounts {
		if acc.ReferrerID != nil && *acc.ReferrerID == referrerID {
			out = append(out, acc)
		}
	}
	return out, nil
}

func (t *tx) ListAllAccounts(_ context.Context) ([]models.Account, error) {
	out := make([]models.Account, 0, len(t.s.d.accounts))
	for _, acc := range t.s.d.accounts {
		out = append(out, acc)
	}
	return out, nil
}

func (t *tx) AppendTransaction(_ context.Context, txn *models.Transaction) error {
	if t.s.AppendTransactionErr != nil {
		return t.s.AppendTransactionErr
	}
	t.s.d.txns = append(t.s.d.txns, *txn)
	return nil
}

func (t *tx) ListTransactions(_ context.Context, accountID int64) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, txn := range t.s.d.txns {
		if txn.AccountID == accountID {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (t *tx) CreateReferralEdge(_ context.Context, edge *models.ReferralEdge) error {
	t.s.d.edgeSeq++
	edge.ID = t.s.d.edgeSeq
	t.s.d.edges = append(t.s.d.edges, *edge)
	return nil
}

func (t *tx) ListSponsors(_ context.Context) ([]models.Sponsor, error) {
	return append([]models.Sponsor(nil), t.s.d.sponsors...), nil
}

func (t *tx) CreateSponsor(_ context.Context, sponsor *models.Sponsor) error {
	t.s.d.sponsorSeq++
	sponsor.ID = t.s.d.sponsorSeq
	t.s.d.sponsors = append(t.s.d.sponsors, *sponsor)
	return nil
}

func (t *tx) GetSubscriptionStatus(_ context.Context, accountID int64) ([]models.SponsorSubscription, error) {
	var out []models.SponsorSubscription
	for _, sub := range t.s.d.subs {
		if sub.AccountID == accountID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (t *tx) SetSubscriptionStatus(_ context.Context, accountID, sponsorID int64, subscribed bool) error {
	for i, sub := range t.s.d.subs {
		if sub.AccountID == accountID && sub.SponsorID == sponsorID {
			t.s.d.subs[i].IsSubscribed = subscribed
			t.s.d.subs[i].LastCheckedAt = time.Now()
			return nil
		}
	}
	t.s.d.subSeq++
	t.s.d.subs = append(t.s.d.subs, models.SponsorSubscription{
		ID:            t.s.d.subSeq,
		AccountID:     accountID,
		SponsorID:     sponsorID,
		IsSubscribed:  subscribed,
		LastCheckedAt: time.Now(),
	})
	return nil
}

func (t *tx) CreateWithdrawal(_ context.Context, w *models.Withdrawal) (*models.Withdrawal, error) {
	if t.s.CreateWithdrawalErr != nil {
		return nil, t.s.CreateWithdrawalErr
	}
	t.s.d.withdrawals = append(t.s.d.withdrawals, *w)
	cp := *w
	return &cp, nil
}

func (t *tx) Stats(_ context.Context) (*models.Stats, error) {
	var stats models.Stats
	for _, acc := range t.s.d.accounts {
		stats.TotalAccounts++
		stats.TotalBalance = stats.TotalBalance.Add(acc.Balance)
		stats.TotalWagered = stats.TotalWagered.Add(acc.TotalWagered)
	}
	for _, w := range t.s.d.withdrawals {
		if w.Status == models.WithdrawalStatusPending {
			stats.PendingWithdrawals++
		}
	}
	return &stats, nil
}

// Atomic inside an Atomic reuses the already-open unit.
func (t *tx) Atomic(ctx context.Context, fn func(tx store.AccountStore) error) error {
	return fn(t)
}

func (s *Store) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&tx{s}).GetAccount(ctx, id)
}

func (s *Store) UpsertAccount(ctx context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&tx{s}).UpsertAccount(ctx, account)
}

func (s *Store) ListAccountsByReferrer(ctx context.Context, referrerID int64) ([]models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&tx{s}).ListAccountsByReferrer(ctx, referrerID)
}

func (s *Store) ListAllAccounts(ctx context.Context) ([]models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&tx{s}).ListAllAccounts(ctx)
}

func (s *Store) AppendTransaction(ctx context.Context, txn *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&tx{s}).AppendTransaction(ctx, txn)
}

func (s *Store) ListTransactions(ctx context.Context, accountID int64) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&tx{s}).ListTransactions(ctx, accountID)
}

func (s *Store) CreateReferralEdge(ctx context.Context, edge *models.ReferralEdge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&tx{s}).CreateReferralEdge(ctx, edge)
}

func (s *Store) ListSponsors(ctx context.Context) ([]models.Sponsor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&tx{s}).ListSponsors(ctx)
}

func (s *Store) CreateSponsor(ctx context.Context, sponsor *models.Sponsor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&tx{s}).CreateSponsor(ctx, sponsor)
}

func (s *Store) GetSubscriptionStatus(ctx context.Context, accountID int64) ([]models.SponsorSubscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&tx{s}).GetSubscriptionStatus(ctx, accountID)
}

func (s *Store) SetSubscriptionStatus(ctx context.Context, accountID, sponsorID int64, subscribed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&tx{s}).SetSubscriptionStatus(ctx, accountID, sponsorID, subscribed)
}

func (s *Store) CreateWithdrawal(ctx context.Context, w *models.Withdrawal) (*models.Withdrawal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&tx{s}).CreateWithdrawal(ctx, w)
}

func (s *Store) Stats(ctx context.Context) (*models.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&tx{s}).Stats(ctx)
}

func (s *Store) Atomic(ctx context.Context, fn func(tx store.AccountStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.d.clone()
	if err := fn(&tx{s}); err != nil {
		s.d = snapshot
		return err
	}
	return nil
}

// Withdrawals exposes the created withdrawal rows for assertions.
func (s *Store) Withdrawals() []models.Withdrawal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Withdrawal(nil), s.d.withdrawals...)
}

// ReferralEdges exposes the created edges for assertions.
func (s *Store) ReferralEdges() []models.ReferralEdge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ReferralEdge(nil), s.d.edges...)
}
