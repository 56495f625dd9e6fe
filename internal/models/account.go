package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is keyed by the Telegram user id. ReferrerID is fixed at creation
// and never updated afterwards.
type Account struct {
	ID           int64           `gorm:"primaryKey"`
	Username     string          `gorm:"index"`
	Balance      decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	TotalWagered decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	GamesPlayed  int
	GamesWon     int
	ReferrerID   *int64 `gorm:"index"`
	LastClickAt  *time.Time
	CreatedAt    time.Time
}

func (a *Account) HasReferrer() bool {
	return a.ReferrerID != nil && *a.ReferrerID != a.ID
}
