package models

import "github.com/shopspring/decimal"

// Stats is the admin dashboard aggregate, computed on demand.
type Stats struct {
	TotalAccounts      int64
	TotalBalance       decimal.Decimal
	TotalWagered       decimal.Decimal
	PendingWithdrawals int64
}
