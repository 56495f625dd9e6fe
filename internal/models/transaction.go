package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	TransactionClick          TransactionKind = "click"
	TransactionGameWin        TransactionKind = "game_win"
	TransactionGameLose       TransactionKind = "game_lose"
	TransactionReferralBonus  TransactionKind = "referral_bonus"
	TransactionReferralIncome TransactionKind = "referral_income"
	TransactionWithdrawal     TransactionKind = "withdrawal"
)

// Transaction rows are append-only: nothing in the codebase updates or
// deletes them after creation.
type Transaction struct {
	ID          string          `gorm:"primaryKey;type:uuid"`
	AccountID   int64           `gorm:"index;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Kind        TransactionKind `gorm:"type:varchar(32);not null;index"`
	Description string
	CreatedAt   time.Time
}
