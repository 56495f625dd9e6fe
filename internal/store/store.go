// Package store defines the narrow persistence boundary of the rewards core.
// Production runs against postgres (pgstore); tests run against memstore.
package store

import (
	"context"
	"errors"

	"MonkeyStarApi/internal/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrUnavailable wraps any lower-level storage failure. The core never
	// retries; callers own request-level timeouts and cancellation.
	ErrUnavailable = errors.New("storage unavailable")
)

// AccountStore is the durable storage consumed by the ledger, the referral
// graph and the withdrawal gate. Implementations must make Atomic a real
// unit of work: either every write inside fn is visible or none is.
type AccountStore interface {
	GetAccount(ctx context.Context, id int64) (*models.Account, error)
	UpsertAccount(ctx context.Context, account *models.Account) error
	ListAccountsByReferrer(ctx context.Context, referrerID int64) ([]models.Account, error)
	ListAllAccounts(ctx context.Context) ([]models.Account, error)

	AppendTransaction(ctx context.Context, txn *models.Transaction) error
	ListTransactions(ctx context.Context, accountID int64) ([]models.Transaction, error)

	CreateReferralEdge(ctx context.Context, edge *models.ReferralEdge) error

	ListSponsors(ctx context.Context) ([]models.Sponsor, error)
	CreateSponsor(ctx context.Context, sponsor *models.Sponsor) error
	GetSubscriptionStatus(ctx context.Context, accountID int64) ([]models.SponsorSubscription, error)
	SetSubscriptionStatus(ctx context.Context, accountID, sponsorID int64, subscribed bool) error

	CreateWithdrawal(ctx context.Context, w *models.Withdrawal) (*models.Withdrawal, error)

	Stats(ctx context.Context) (*models.Stats, error)

	// Atomic runs fn against a view of the store scoped to one unit of work.
	// Writes made through that view commit together or not at all.
	Atomic(ctx context.Context, fn func(tx AccountStore) error) error
}
