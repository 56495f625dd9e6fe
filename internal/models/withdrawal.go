package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	WithdrawalStatusPending  = "pending"
	WithdrawalStatusApproved = "approved"
	WithdrawalStatusRejected = "rejected"
)

// Withdrawal is created by the gate with status pending; the transition to
// approved or rejected happens out-of-band.
type Withdrawal struct {
	ID        string          `gorm:"primaryKey;type:uuid"`
	AccountID int64           `gorm:"index;not null"`
	Amount    decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Status    string          `gorm:"type:varchar(16);not null;index"`
	CreatedAt time.Time
}
