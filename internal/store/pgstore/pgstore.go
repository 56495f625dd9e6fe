package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"MonkeyStarApi/internal/models"
	"MonkeyStarApi/internal/store"
)

// Store implements store.AccountStore on top of gorm/postgres. A Store built
// from a transaction handle scopes every call to that transaction, which is
// how Atomic works.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the schema for every record type.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Account{},
		&models.Transaction{},
		&models.ReferralEdge{},
		&models.Sponsor{},
		&models.SponsorSubscription{},
		&models.Withdrawal{},
	)
}

func wrapStorage(err error) error {
	return fmt.Errorf("%w: %w", store.ErrUnavailable, err)
}

func (s *Store) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	var account models.Account
	err := s.db.WithContext(ctx).First(&account, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	} else if err != nil {
		return nil, wrapStorage(err)
	}

	return &account, nil
}

func (s *Store) UpsertAccount(ctx context.Context, account *models.Account) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(account).Error
	if err != nil {
		return wrapStorage(err)
	}

	return nil
}

func (s *Store) ListAccountsByReferrer(ctx context.Context, referrerID int64) ([]models.Account, error) {
	var accounts []models.Account
	err := s.db.WithContext(ctx).
		Where("referrer_id = ?", referrerID).
		Find(&accounts).Error
	if err != nil {
		return nil, wrapStorage(err)
	}

	return accounts, nil
}

func (s *Store) ListAllAccounts(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&accounts).Error
	if err != nil {
		return nil, wrapStorage(err)
	}

	return accounts, nil
}

func (s *Store) AppendTransaction(ctx context.Context, txn *models.Transaction) error {
	if err := s.db.WithContext(ctx).Create(txn).Error; err != nil {
		return wrapStorage(err)
	}

	return nil
}

func (s *Store) ListTransactions(ctx context.Context, accountID int64) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := s.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&txns).Error
	if err != nil {
		return nil, wrapStorage(err)
	}

	return txns, nil
}

func (s *Store) CreateReferralEdge(ctx context.Context, edge *models.ReferralEdge) error {
	if err := s.db.WithContext(ctx).Create(edge).Error; err != nil {
		return wrapStorage(err)
	}

	return nil
}

func (s *Store) ListSponsors(ctx context.Context) ([]models.Sponsor, error) {
	var sponsors []models.Sponsor
	if err := s.db.WithContext(ctx).Find(&sponsors).Error; err != nil {
		return nil, wrapStorage(err)
	}

	return sponsors, nil
}

func (s *Store) CreateSponsor(ctx context.Context, sponsor *models.Sponsor) error {
	if err := s.db.WithContext(ctx).Create(sponsor).Error; err != nil {
		return wrapStorage(err)
	}

	return nil
}

func (s *Store) GetSubscriptionStatus(ctx context.Context, accountID int64) ([]models.SponsorSubscription, error) {
	var subs []models.SponsorSubscription
	err := s.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Find(&subs).Error
	if err != nil {
		return nil, wrapStorage(err)
	}

	return subs, nil
}

func (s *Store) SetSubscriptionStatus(ctx context.Context, accountID, sponsorID int64, subscribed bool) error {
	sub := models.SponsorSubscription{
		AccountID:     accountID,
		SponsorID:     sponsorID,
		IsSubscribed:  subscribed,
		LastCheckedAt: time.Now(),
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}, {Name: "sponsor_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_subscribed", "last_checked_at"}),
		}).
		Create(&sub).Error
	if err != nil {
		return wrapStorage(err)
	}

	return nil
}

func (s *Store) CreateWithdrawal(ctx context.Context, w *models.Withdrawal) (*models.Withdrawal, error) {
	if err := s.db.WithContext(ctx).Create(w).Error; err != nil {
		return nil, wrapStorage(err)
	}

	return w, nil
}

func (s *Store) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Account{}).Count(&stats.TotalAccounts).Error; err != nil {
		return nil, wrapStorage(err)
	}

	row := db.Model(&models.Account{}).
		Select("COALESCE(SUM(balance), 0), COALESCE(SUM(total_wagered), 0)").
		Row()
	if err := row.Scan(&stats.TotalBalance, &stats.TotalWagered); err != nil {
		return nil, wrapStorage(err)
	}

	err := db.Model(&models.Withdrawal{}).
		Where("status = ?", models.WithdrawalStatusPending).
		Count(&stats.PendingWithdrawals).Error
	if err != nil {
		return nil, wrapStorage(err)
	}

	return &stats, nil
}

func (s *Store) Atomic(ctx context.Context, fn func(tx store.AccountStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}
